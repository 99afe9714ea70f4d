package setup

import (
	"context"
	"fmt"
	"time"

	"github.com/erp/storesetup/internal/domain/setup"
	"github.com/erp/storesetup/internal/infrastructure/logger"
	"github.com/erp/storesetup/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Default run lock settings
const (
	DefaultLockKey = "storesetup:upgrade"
	DefaultLockTTL = 10 * time.Minute
)

// Report summarises one upgrade run
type Report struct {
	RunID    string
	Applied  []string
	Skipped  []string
	Duration time.Duration
}

// PatchStatus is one line of the patch:status listing
type PatchStatus struct {
	Name      string
	Applied   bool
	AppliedAt *time.Time
}

// Applier applies registered data patches that are not yet in the history
type Applier struct {
	registry     *Registry
	history      setup.PatchHistory
	locker       setup.Locker
	logger       *zap.Logger
	metrics      *telemetry.SetupMetrics
	lockKey      string
	lockTTL      time.Duration
	patchTimeout time.Duration
}

// ApplierOption configures an Applier
type ApplierOption func(*Applier)

// WithLockKey sets the run lock key
func WithLockKey(key string) ApplierOption {
	return func(a *Applier) {
		if key != "" {
			a.lockKey = key
		}
	}
}

// WithLockTTL sets how long the run lock is held at most
func WithLockTTL(ttl time.Duration) ApplierOption {
	return func(a *Applier) {
		if ttl > 0 {
			a.lockTTL = ttl
		}
	}
}

// WithPatchTimeout bounds each patch's Apply; zero means no timeout
func WithPatchTimeout(d time.Duration) ApplierOption {
	return func(a *Applier) {
		a.patchTimeout = d
	}
}

// NewApplier creates an applier
func NewApplier(registry *Registry, history setup.PatchHistory, locker setup.Locker, zapLogger *zap.Logger, opts ...ApplierOption) *Applier {
	if zapLogger == nil {
		zapLogger = zap.NewNop()
	}
	a := &Applier{
		registry: registry,
		history:  history,
		locker:   locker,
		logger:   zapLogger,
		lockKey:  DefaultLockKey,
		lockTTL:  DefaultLockTTL,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// SetMetrics sets the setup metrics collector
func (a *Applier) SetMetrics(m *telemetry.SetupMetrics) {
	a.metrics = m
}

// ApplyAll applies every pending patch in dependency order.
// It stops at the first failing patch; patches applied before it stay recorded.
func (a *Applier) ApplyAll(ctx context.Context) (*Report, error) {
	start := time.Now()
	report := &Report{RunID: uuid.New().String()}
	ctx, log := logger.WithRunID(ctx, a.logger, report.RunID)

	patches, err := a.registry.Ordered()
	if err != nil {
		return report, fmt.Errorf("order patches: %w", err)
	}

	lock, err := a.locker.Acquire(ctx, a.lockKey, a.lockTTL)
	if err != nil {
		return report, fmt.Errorf("acquire setup lock %s: %w", a.lockKey, err)
	}
	defer func() {
		if rerr := lock.Release(context.WithoutCancel(ctx)); rerr != nil {
			log.Warn("Failed to release setup lock", zap.String("lock_key", a.lockKey), zap.Error(rerr))
		}
	}()

	log.Info("Setup upgrade started", zap.Int("patches", len(patches)))

	for _, p := range patches {
		applied, err := a.isApplied(ctx, p)
		if err != nil {
			return report, err
		}
		if applied {
			report.Skipped = append(report.Skipped, p.Name())
			if a.metrics != nil {
				a.metrics.RecordSkipped(ctx, p.Name())
			}
			log.Debug("Patch already applied", zap.String("patch", p.Name()))
			continue
		}

		if err := a.apply(ctx, log, p); err != nil {
			report.Duration = time.Since(start)
			return report, err
		}
		report.Applied = append(report.Applied, p.Name())
	}

	report.Duration = time.Since(start)
	log.Info("Setup upgrade finished",
		zap.Int("applied", len(report.Applied)),
		zap.Int("skipped", len(report.Skipped)),
		zap.Duration("duration", report.Duration))
	return report, nil
}

// isApplied checks the patch name and its aliases against the history.
// A patch recorded only under an alias is recorded under its current name too.
func (a *Applier) isApplied(ctx context.Context, p setup.DataPatch) (bool, error) {
	ok, err := a.history.IsApplied(ctx, p.Name())
	if err != nil {
		return false, fmt.Errorf("check patch history for %s: %w", p.Name(), err)
	}
	if ok {
		return true, nil
	}

	for _, alias := range p.Aliases() {
		ok, err := a.history.IsApplied(ctx, alias)
		if err != nil {
			return false, fmt.Errorf("check patch history for %s: %w", alias, err)
		}
		if ok {
			if err := a.history.MarkApplied(ctx, p.Name()); err != nil {
				return false, fmt.Errorf("record patch %s: %w", p.Name(), err)
			}
			return true, nil
		}
	}
	return false, nil
}

func (a *Applier) apply(ctx context.Context, log *zap.Logger, p setup.DataPatch) (err error) {
	name := p.Name()
	ctx, span := telemetry.StartSpan(ctx, "setup.patch.apply", "patch", name)
	defer span.End()
	ctx, log = logger.WithPatch(ctx, log, name)

	if a.patchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.patchTimeout)
		defer cancel()
	}

	start := time.Now()
	defer func() {
		if err != nil {
			telemetry.RecordError(span, err)
			if a.metrics != nil {
				a.metrics.RecordFailed(ctx, name, time.Since(start))
			}
			logger.L(ctx).Error("Patch failed", zap.Error(err))
		}
	}()

	log.Info("Applying patch")
	if err = p.Apply(ctx); err != nil {
		return fmt.Errorf("apply patch %s: %w", name, err)
	}
	if err = a.history.MarkApplied(ctx, name); err != nil {
		return fmt.Errorf("record patch %s: %w", name, err)
	}

	d := time.Since(start)
	telemetry.SetOK(span)
	if a.metrics != nil {
		a.metrics.RecordApplied(ctx, name, d)
	}
	log.Info("Patch applied", zap.Duration("duration", d))
	return nil
}

// Status lists every registered patch with its applied state, in apply order
func (a *Applier) Status(ctx context.Context) ([]PatchStatus, error) {
	patches, err := a.registry.Ordered()
	if err != nil {
		return nil, fmt.Errorf("order patches: %w", err)
	}

	recorded, err := a.history.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list patch history: %w", err)
	}
	appliedAt := make(map[string]time.Time, len(recorded))
	for _, r := range recorded {
		appliedAt[r.Name] = r.AppliedAt
	}

	statuses := make([]PatchStatus, 0, len(patches))
	for _, p := range patches {
		status := PatchStatus{Name: p.Name()}
		for _, name := range append([]string{p.Name()}, p.Aliases()...) {
			if at, ok := appliedAt[name]; ok {
				status.Applied = true
				status.AppliedAt = &at
				break
			}
		}
		statuses = append(statuses, status)
	}
	return statuses, nil
}
