package setup

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/erp/storesetup/internal/domain/setup"
	"github.com/erp/storesetup/internal/infrastructure/logger"
	"github.com/erp/storesetup/internal/infrastructure/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap"
)

func newLockedLocker(t *testing.T) (*MockLocker, *MockLock) {
	t.Helper()
	lock := new(MockLock)
	lock.On("Release", mock.Anything).Return(nil)
	locker := new(MockLocker)
	locker.On("Acquire", mock.Anything, DefaultLockKey, DefaultLockTTL).Return(lock, nil)
	return locker, lock
}

func TestApplier_ApplyAll(t *testing.T) {
	ctx := context.Background()
	stores := newTestPatch("stores")
	demo := newTestPatch("demo", "stores")
	old := newTestPatch("old")

	r := NewRegistry()
	require.NoError(t, r.Register(demo, stores, old))

	history := new(MockPatchHistory)
	history.On("IsApplied", mock.Anything, "stores").Return(false, nil)
	history.On("IsApplied", mock.Anything, "demo").Return(false, nil)
	history.On("IsApplied", mock.Anything, "old").Return(true, nil)
	history.On("MarkApplied", mock.Anything, "stores").Return(nil)
	history.On("MarkApplied", mock.Anything, "demo").Return(nil)

	locker, lock := newLockedLocker(t)
	a := NewApplier(r, history, locker, zap.NewNop())

	report, err := a.ApplyAll(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, report.RunID)
	assert.Equal(t, []string{"stores", "demo"}, report.Applied)
	assert.Equal(t, []string{"old"}, report.Skipped)
	assert.Equal(t, 1, stores.calls)
	assert.Equal(t, 1, demo.calls)
	assert.Equal(t, 0, old.calls)

	history.AssertExpectations(t)
	locker.AssertExpectations(t)
	lock.AssertExpectations(t)
}

func TestApplier_ApplyAll_PatchContext(t *testing.T) {
	p := newTestPatch("demo")
	p.apply = func(ctx context.Context) error {
		assert.NotEmpty(t, logger.GetRunID(ctx))
		assert.Equal(t, "demo", logger.GetPatch(ctx))
		_, hasDeadline := ctx.Deadline()
		assert.True(t, hasDeadline)
		return nil
	}

	r := NewRegistry()
	require.NoError(t, r.Register(p))
	history := new(MockPatchHistory)
	history.On("IsApplied", mock.Anything, "demo").Return(false, nil)
	history.On("MarkApplied", mock.Anything, "demo").Return(nil)
	locker, _ := newLockedLocker(t)

	a := NewApplier(r, history, locker, nil, WithPatchTimeout(time.Minute))
	_, err := a.ApplyAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, p.calls)
}

func TestApplier_ApplyAll_StopsAtFirstFailure(t *testing.T) {
	boom := errors.New("boom")
	first := newTestPatch("first")
	failing := newTestPatch("failing", "first")
	failing.apply = func(ctx context.Context) error { return boom }
	last := newTestPatch("last", "failing")

	r := NewRegistry()
	require.NoError(t, r.Register(first, failing, last))

	history := new(MockPatchHistory)
	history.On("IsApplied", mock.Anything, mock.Anything).Return(false, nil)
	history.On("MarkApplied", mock.Anything, "first").Return(nil)
	locker, lock := newLockedLocker(t)

	a := NewApplier(r, history, locker, zap.NewNop())
	report, err := a.ApplyAll(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "apply patch failing")
	assert.Equal(t, []string{"first"}, report.Applied)
	assert.Equal(t, 0, last.calls)
	history.AssertNotCalled(t, "MarkApplied", mock.Anything, "failing")
	lock.AssertCalled(t, "Release", mock.Anything)
}

func TestApplier_ApplyAll_AliasRecorded(t *testing.T) {
	p := newTestPatch("catalog.demo_product")
	p.aliases = []string{"DemoProduct"}

	r := NewRegistry()
	require.NoError(t, r.Register(p))

	history := new(MockPatchHistory)
	history.On("IsApplied", mock.Anything, "catalog.demo_product").Return(false, nil)
	history.On("IsApplied", mock.Anything, "DemoProduct").Return(true, nil)
	history.On("MarkApplied", mock.Anything, "catalog.demo_product").Return(nil)
	locker, _ := newLockedLocker(t)

	a := NewApplier(r, history, locker, zap.NewNop())
	report, err := a.ApplyAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"catalog.demo_product"}, report.Skipped)
	assert.Equal(t, 0, p.calls)
	history.AssertExpectations(t)
}

func TestApplier_ApplyAll_LockHeld(t *testing.T) {
	p := newTestPatch("demo")
	r := NewRegistry()
	require.NoError(t, r.Register(p))

	locker := new(MockLocker)
	locker.On("Acquire", mock.Anything, "custom", 30*time.Second).Return(nil, setup.ErrLockHeld)
	history := new(MockPatchHistory)

	a := NewApplier(r, history, locker, zap.NewNop(), WithLockKey("custom"), WithLockTTL(30*time.Second))
	_, err := a.ApplyAll(context.Background())

	assert.ErrorIs(t, err, setup.ErrLockHeld)
	assert.Equal(t, 0, p.calls)
	history.AssertNotCalled(t, "IsApplied", mock.Anything, mock.Anything)
}

func TestApplier_ApplyAll_OrderError(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(newTestPatch("demo", "missing")))
	locker := new(MockLocker)

	a := NewApplier(r, new(MockPatchHistory), locker, zap.NewNop())
	_, err := a.ApplyAll(context.Background())

	require.Error(t, err)
	locker.AssertNotCalled(t, "Acquire", mock.Anything, mock.Anything, mock.Anything)
}

func TestApplier_ApplyAll_HistoryError(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(newTestPatch("demo")))

	dbErr := errors.New("connection refused")
	history := new(MockPatchHistory)
	history.On("IsApplied", mock.Anything, "demo").Return(false, dbErr)
	locker, lock := newLockedLocker(t)

	a := NewApplier(r, history, locker, zap.NewNop())
	_, err := a.ApplyAll(context.Background())

	assert.ErrorIs(t, err, dbErr)
	lock.AssertCalled(t, "Release", mock.Anything)
}

func TestApplier_ApplyAll_SpansAndMetrics(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	metrics, err := telemetry.NewSetupMetrics(mp.Meter("test"))
	require.NoError(t, err)

	ok := newTestPatch("ok")
	bad := newTestPatch("bad", "ok")
	bad.apply = func(ctx context.Context) error { return errors.New("boom") }

	r := NewRegistry()
	require.NoError(t, r.Register(newTestPatch("done"), ok, bad))
	history := new(MockPatchHistory)
	history.On("IsApplied", mock.Anything, "done").Return(true, nil)
	history.On("IsApplied", mock.Anything, mock.Anything).Return(false, nil)
	history.On("MarkApplied", mock.Anything, "ok").Return(nil)
	locker, _ := newLockedLocker(t)

	a := NewApplier(r, history, locker, zap.NewNop())
	a.SetMetrics(metrics)
	_, err = a.ApplyAll(context.Background())
	require.Error(t, err)

	spans := recorder.Ended()
	require.Len(t, spans, 2)
	assert.Equal(t, "setup.patch.apply", spans[0].Name())
	assert.Equal(t, codes.Ok, spans[0].Status().Code)
	assert.Equal(t, codes.Error, spans[1].Status().Code)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	byOutcome := map[string]int64{}
	for _, sm := range rm.ScopeMetrics {
		for _, md := range sm.Metrics {
			if sum, isSum := md.Data.(metricdata.Sum[int64]); isSum {
				for _, dp := range sum.DataPoints {
					outcome, _ := dp.Attributes.Value(attribute.Key("outcome"))
					byOutcome[outcome.AsString()] += dp.Value
				}
			}
		}
	}
	assert.Equal(t, int64(1), byOutcome[telemetry.OutcomeApplied])
	assert.Equal(t, int64(1), byOutcome[telemetry.OutcomeSkipped])
	assert.Equal(t, int64(1), byOutcome[telemetry.OutcomeFailed])
}

func TestApplier_Status(t *testing.T) {
	applied := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	renamed := newTestPatch("catalog.demo_product", "stores")
	renamed.aliases = []string{"DemoProduct"}

	r := NewRegistry()
	require.NoError(t, r.Register(renamed, newTestPatch("stores"), newTestPatch("pending")))

	history := new(MockPatchHistory)
	history.On("List", mock.Anything).Return([]setup.AppliedPatch{
		{Name: "stores", AppliedAt: applied},
		{Name: "DemoProduct", AppliedAt: applied.Add(time.Second)},
	}, nil)

	a := NewApplier(r, history, new(MockLocker), zap.NewNop())
	statuses, err := a.Status(context.Background())
	require.NoError(t, err)
	require.Len(t, statuses, 3)

	assert.Equal(t, "stores", statuses[0].Name)
	assert.True(t, statuses[0].Applied)
	assert.Equal(t, applied, *statuses[0].AppliedAt)

	assert.Equal(t, "catalog.demo_product", statuses[1].Name)
	assert.True(t, statuses[1].Applied)

	assert.Equal(t, "pending", statuses[2].Name)
	assert.False(t, statuses[2].Applied)
	assert.Nil(t, statuses[2].AppliedAt)
}
