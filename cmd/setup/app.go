package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	appsetup "github.com/erp/storesetup/internal/application/setup"
	"github.com/erp/storesetup/internal/application/seed"
	"github.com/erp/storesetup/internal/domain/setup"
	"github.com/erp/storesetup/internal/infrastructure/cache"
	"github.com/erp/storesetup/internal/infrastructure/config"
	"github.com/erp/storesetup/internal/infrastructure/logger"
	"github.com/erp/storesetup/internal/infrastructure/migration"
	"github.com/erp/storesetup/internal/infrastructure/persistence"
	"github.com/erp/storesetup/internal/infrastructure/telemetry"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

// app wires the setup pipeline for one CLI invocation
type app struct {
	cfg       *config.Config
	log       *zap.Logger
	providers *telemetry.Providers
	db        *persistence.Database
	locker    setup.Locker
	applier   *appsetup.Applier
}

func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	logCfg := logger.ForEnvironment(cfg.App.Env).Override(cfg.Log.Level, cfg.Log.Format, cfg.Log.Output)
	bootLog, err := logger.New(logCfg)
	if err != nil {
		return nil, fmt.Errorf("initialize logger: %w", err)
	}

	providers, err := telemetry.Init(ctx, cfg.Telemetry, bootLog)
	if err != nil {
		return nil, fmt.Errorf("initialize telemetry: %w", err)
	}

	log, err := logger.New(logCfg, telemetry.NewZapOTELCore(providers.Logs, logger.ParseLevel(logCfg.Level)))
	if err != nil {
		_ = providers.Shutdown(ctx)
		return nil, fmt.Errorf("initialize logger: %w", err)
	}

	a := &app{cfg: cfg, log: log, providers: providers}

	log.Info("Storefront setup started",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("db_driver", cfg.Database.Driver),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Database.LogLevel))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.db = db

	tracingCfg := telemetry.DefaultDBTracingConfig()
	tracingCfg.Enabled = cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled
	if cfg.Database.Driver == "sqlite" {
		tracingCfg.DBSystem = "sqlite"
	}
	if err := telemetry.NewDBTracingPlugin(tracingCfg, log).Register(db.DB); err != nil {
		a.Close()
		return nil, fmt.Errorf("register database tracing: %w", err)
	}

	locker, err := cache.NewLockerFactory(cfg.Redis,
		cache.WithLogger(log),
		cache.WithInMemoryFallback(cfg.Setup.AllowInMemoryLock),
	).CreateLocker()
	if err != nil {
		a.Close()
		return nil, err
	}
	a.locker = locker

	stores := persistence.NewGormStoreRepository(db.DB)
	services := seed.Services{
		Stores:        stores,
		StoreManager:  stores,
		AttributeSets: persistence.NewGormAttributeSetResolver(db.DB),
		Categories:    persistence.NewGormCategoryRepository(db.DB),
		CategoryLinks: persistence.NewGormCategoryLinkManagement(db.DB),
		Products:      persistence.NewGormProductRepository(db.DB),
		Sources:       persistence.NewGormSourceRepository(db.DB),
		SourceItems:   persistence.NewGormSourceItemsSaver(db.DB),
	}

	state := appsetup.NewState()
	if err := state.SetAreaCode(setup.AreaGlobal); err != nil {
		a.Close()
		return nil, err
	}

	registry := appsetup.NewRegistry()
	if err := seed.Register(registry, state, services); err != nil {
		a.Close()
		return nil, err
	}

	a.applier = appsetup.NewApplier(registry, persistence.NewGormPatchHistory(db.DB), locker, log,
		appsetup.WithLockKey(cfg.Setup.LockKey),
		appsetup.WithLockTTL(cfg.Setup.LockTTL),
		appsetup.WithPatchTimeout(cfg.Setup.PatchTimeout),
	)

	metrics, err := telemetry.NewSetupMetrics(providers.Meter.Meter(telemetry.TracerName))
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("create setup metrics: %w", err)
	}
	a.applier.SetMetrics(metrics)

	return a, nil
}

// Upgrade brings the schema up to date unless skipped, then applies pending data patches
func (a *app) Upgrade(ctx context.Context) error {
	if !a.cfg.Setup.SkipSchema {
		if err := a.migrateUp(); err != nil {
			return err
		}
	}

	report, err := a.applier.ApplyAll(ctx)
	if err != nil {
		return err
	}
	a.log.Info("Upgrade complete",
		zap.String("run_id", report.RunID),
		zap.Strings("applied", report.Applied),
		zap.Int("skipped", len(report.Skipped)),
		zap.Duration("duration", report.Duration),
	)
	return nil
}

// PatchStatus prints every registered patch with its applied time
func (a *app) PatchStatus(ctx context.Context, out io.Writer) error {
	statuses, err := a.applier.Status(ctx)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PATCH\tSTATUS\tAPPLIED AT")
	for _, s := range statuses {
		status, at := "pending", "-"
		if s.Applied {
			status = "applied"
			at = s.AppliedAt.Format(time.RFC3339)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", s.Name, status, at)
	}
	return w.Flush()
}

// Migrate runs a schema migration subcommand; version is used by force only
func (a *app) Migrate(command string, version int) error {
	if a.cfg.Database.Driver == "sqlite" {
		if command != "up" {
			return fmt.Errorf("migrate %s is only supported on postgres", command)
		}
		return a.migrateUp()
	}

	return a.withMigrator(func(m *migration.Migrator) error {
		switch command {
		case "up":
			return m.Up()
		case "down":
			return m.Down()
		case "version":
			current, dirty, err := m.Version()
			if err != nil {
				return err
			}
			if current == 0 {
				a.log.Info("No migrations applied")
			} else {
				a.log.Info("Current migration version", zap.Uint("version", current), zap.Bool("dirty", dirty))
			}
			return nil
		case "force":
			return m.Force(version)
		default:
			return fmt.Errorf("unknown migrate subcommand %q", command)
		}
	})
}

func (a *app) migrateUp() error {
	if a.cfg.Database.Driver == "sqlite" {
		a.log.Info("Migrating sqlite schema from models")
		return a.db.AutoMigrate()
	}
	return a.withMigrator(func(m *migration.Migrator) error { return m.Up() })
}

// withMigrator opens a dedicated connection for golang-migrate, which closes it on Close
func (a *app) withMigrator(fn func(m *migration.Migrator) error) error {
	sqlDB, err := sql.Open("postgres", a.cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("open migration connection: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return fmt.Errorf("ping database: %w", err)
	}

	m, err := migration.New(sqlDB, a.cfg.Setup.MigrationsPath, a.log)
	if err != nil {
		_ = sqlDB.Close()
		return err
	}
	defer func() {
		if cerr := m.Close(); cerr != nil {
			a.log.Warn("Failed to close migrator", zap.Error(cerr))
		}
	}()
	return fn(m)
}

// Close releases everything newApp opened, in reverse order
func (a *app) Close() {
	if a.locker != nil {
		if err := a.locker.Close(); err != nil {
			a.log.Warn("Failed to close locker", zap.Error(err))
		}
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.log.Error("Error closing database", zap.Error(err))
		}
	}
	if a.providers != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := a.providers.Shutdown(shutdownCtx); err != nil {
			a.log.Warn("Telemetry shutdown failed", zap.Error(err))
		}
	}
	_ = logger.Sync(a.log)
}
