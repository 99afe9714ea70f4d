package setup

import (
	"context"
	"sync"

	"github.com/erp/storesetup/internal/domain/setup"
	"github.com/erp/storesetup/internal/domain/shared"
)

// State holds the application area of the running process.
// The area is set once; code that needs a different area for a while
// runs under EmulateAreaCode.
type State struct {
	mu        sync.Mutex
	areaCode  setup.AreaCode
	emulating bool
}

// NewState creates a state with no area set
func NewState() *State {
	return &State{}
}

// SetAreaCode sets the process area; it can only be set once
func (s *State) SetAreaCode(area setup.AreaCode) error {
	if !area.Valid() {
		return shared.NewDomainError("INVALID_AREA_CODE", "Unknown area code: "+string(area))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.areaCode != "" {
		return shared.NewDomainError(shared.ErrInvalidState.Code, "Area code is already set")
	}
	s.areaCode = area
	return nil
}

// AreaCode returns the current area, or ErrAreaCodeNotSet
func (s *State) AreaCode() (setup.AreaCode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.areaCode == "" {
		return "", setup.ErrAreaCodeNotSet
	}
	return s.areaCode, nil
}

// IsAreaCodeEmulated reports whether an EmulateAreaCode call is in progress
func (s *State) IsAreaCodeEmulated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.emulating
}

// EmulateAreaCode runs fn with area as the current area and restores the
// previous area afterwards, including when fn returns an error or panics.
// fn receives a context carrying the emulated area.
func (s *State) EmulateAreaCode(ctx context.Context, area setup.AreaCode, fn func(ctx context.Context) error) error {
	if !area.Valid() {
		return shared.NewDomainError("INVALID_AREA_CODE", "Unknown area code: "+string(area))
	}

	s.mu.Lock()
	prevArea, prevEmulating := s.areaCode, s.emulating
	s.areaCode, s.emulating = area, true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.areaCode, s.emulating = prevArea, prevEmulating
		s.mu.Unlock()
	}()

	return fn(setup.WithArea(ctx, area))
}
