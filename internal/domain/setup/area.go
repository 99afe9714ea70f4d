package setup

import (
	"context"

	"github.com/erp/storesetup/internal/domain/shared"
)

// AreaCode names the application area code runs under
type AreaCode string

const (
	AreaGlobal     AreaCode = "global"
	AreaAdminhtml  AreaCode = "adminhtml"
	AreaFrontend   AreaCode = "frontend"
	AreaCrontab    AreaCode = "crontab"
	AreaWebapiRest AreaCode = "webapi_rest"
	AreaGraphQL    AreaCode = "graphql"
)

// ErrAreaCodeNotSet is returned when the area code is read before being set
var ErrAreaCodeNotSet = shared.NewDomainError("AREA_CODE_NOT_SET", "Area code is not set")

// Valid returns true for a known area code
func (a AreaCode) Valid() bool {
	switch a {
	case AreaGlobal, AreaAdminhtml, AreaFrontend, AreaCrontab, AreaWebapiRest, AreaGraphQL:
		return true
	}
	return false
}

// ParseAreaCode converts s into an AreaCode
func ParseAreaCode(s string) (AreaCode, error) {
	a := AreaCode(s)
	if !a.Valid() {
		return "", shared.NewDomainError("INVALID_AREA_CODE", "Unknown area code: "+s)
	}
	return a, nil
}

type areaKey struct{}

// WithArea returns a context carrying the area code
func WithArea(ctx context.Context, area AreaCode) context.Context {
	return context.WithValue(ctx, areaKey{}, area)
}

// AreaFromContext returns the area code carried by ctx, if any
func AreaFromContext(ctx context.Context) (AreaCode, bool) {
	a, ok := ctx.Value(areaKey{}).(AreaCode)
	return a, ok
}
