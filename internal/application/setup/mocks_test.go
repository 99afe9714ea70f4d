package setup

import (
	"context"
	"time"

	"github.com/erp/storesetup/internal/domain/setup"
	"github.com/stretchr/testify/mock"
)

// MockPatchHistory is a mock implementation of setup.PatchHistory
type MockPatchHistory struct {
	mock.Mock
}

func (m *MockPatchHistory) IsApplied(ctx context.Context, name string) (bool, error) {
	args := m.Called(ctx, name)
	return args.Bool(0), args.Error(1)
}

func (m *MockPatchHistory) MarkApplied(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}

func (m *MockPatchHistory) List(ctx context.Context) ([]setup.AppliedPatch, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]setup.AppliedPatch), args.Error(1)
}

// MockLocker is a mock implementation of setup.Locker
type MockLocker struct {
	mock.Mock
}

func (m *MockLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (setup.Lock, error) {
	args := m.Called(ctx, key, ttl)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(setup.Lock), args.Error(1)
}

func (m *MockLocker) Close() error {
	args := m.Called()
	return args.Error(0)
}

// MockLock is a mock implementation of setup.Lock
type MockLock struct {
	mock.Mock
}

func (m *MockLock) Release(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// testPatch is a data patch whose behaviour is set per test
type testPatch struct {
	name    string
	deps    []string
	aliases []string
	apply   func(ctx context.Context) error
	calls   int
}

func newTestPatch(name string, deps ...string) *testPatch {
	return &testPatch{name: name, deps: deps}
}

func (p *testPatch) Name() string           { return p.name }
func (p *testPatch) Dependencies() []string { return p.deps }
func (p *testPatch) Aliases() []string      { return p.aliases }

func (p *testPatch) Apply(ctx context.Context) error {
	p.calls++
	if p.apply != nil {
		return p.apply(ctx)
	}
	return nil
}
