package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/erp/storesetup/internal/infrastructure/config"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newCLI().RunContext(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "setup: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func newCLI() *cli.App {
	return &cli.App{
		Name:  "setup",
		Usage: "Storefront schema and data setup",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Usage: "path to config.toml (default: search ., ./config, /etc/storesetup)",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "log level override (debug, info, warn, error)",
			},
			&cli.BoolFlag{
				Name:  "skip-schema",
				Usage: "do not run schema migrations before data patches",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "upgrade",
				Usage:  "apply schema migrations and pending data patches",
				Action: withApp(func(c *cli.Context, a *app) error { return a.Upgrade(c.Context) }),
			},
			{
				Name:   "patch:status",
				Usage:  "list data patches and whether they are applied",
				Action: withApp(func(c *cli.Context, a *app) error { return a.PatchStatus(c.Context, c.App.Writer) }),
			},
			{
				Name:  "migrate",
				Usage: "manage the schema",
				Subcommands: []*cli.Command{
					{
						Name:   "up",
						Usage:  "apply all pending schema migrations",
						Action: withApp(func(c *cli.Context, a *app) error { return a.Migrate("up", 0) }),
					},
					{
						Name:   "down",
						Usage:  "roll back all schema migrations",
						Action: withApp(func(c *cli.Context, a *app) error { return a.Migrate("down", 0) }),
					},
					{
						Name:   "version",
						Usage:  "show the current schema version",
						Action: withApp(func(c *cli.Context, a *app) error { return a.Migrate("version", 0) }),
					},
					{
						Name:      "force",
						Usage:     "force set the schema version (use with caution)",
						ArgsUsage: "<version>",
						Action: withApp(func(c *cli.Context, a *app) error {
							if c.NArg() < 1 {
								return cli.Exit("version required. Usage: setup migrate force <version>", 1)
							}
							version, err := strconv.Atoi(c.Args().First())
							if err != nil {
								return fmt.Errorf("invalid version number %q", c.Args().First())
							}
							return a.Migrate("force", version)
						}),
					},
				},
			},
		},
	}
}

// withApp loads configuration, wires the app and closes it after action
func withApp(action func(c *cli.Context, a *app) error) cli.ActionFunc {
	return func(c *cli.Context) error {
		cfg, err := loadConfig(c.String("config"))
		if err != nil {
			return fmt.Errorf("load configuration: %w", err)
		}
		if level := c.String("log-level"); level != "" {
			cfg.Log.Level = level
		}
		if c.Bool("skip-schema") {
			cfg.Setup.SkipSchema = true
		}

		a, err := newApp(c.Context, cfg)
		if err != nil {
			return err
		}
		defer a.Close()

		if err := action(c, a); err != nil {
			a.log.Error("Command failed", zap.String("command", c.Command.FullName()), zap.Error(err))
			return err
		}
		return nil
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	return config.Load()
}
