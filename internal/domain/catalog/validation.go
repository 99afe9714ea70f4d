package catalog

import (
	"regexp"

	"github.com/erp/storesetup/internal/domain/shared"
	"github.com/go-playground/validator/v10"
)

var (
	// SKUs are free text in most storefronts but may not contain whitespace.
	skuPattern = regexp.MustCompile(`^\S+$`)
	// URL keys are lowercase path segments joined by hyphens.
	urlKeyPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
)

func init() {
	v := shared.Validator()
	_ = v.RegisterValidation("sku", func(fl validator.FieldLevel) bool {
		return skuPattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("urlkey", func(fl validator.FieldLevel) bool {
		return urlKeyPattern.MatchString(fl.Field().String())
	})
}
