package inventory

import (
	"regexp"

	"github.com/erp/storesetup/internal/domain/shared"
)

// DefaultSourceCode is the code of the source every installation starts with
const DefaultSourceCode = "default"

var sourceCodePattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// Source is a physical or logical location stock is held at
type Source struct {
	Code    string `validate:"required,max=255"`
	Name    string `validate:"required,max=255"`
	Enabled bool
}

// NewSource creates an enabled source
func NewSource(code, name string) (*Source, error) {
	s := &Source{Code: code, Name: name, Enabled: true}
	if err := shared.ValidateStruct(s); err != nil {
		return nil, err
	}
	if !sourceCodePattern.MatchString(code) {
		return nil, shared.NewDomainError("INVALID_SOURCE_CODE", "Source code can only contain letters, numbers, underscores, and hyphens")
	}
	return s, nil
}
