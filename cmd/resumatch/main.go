package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/kailas-cloud/resumatch/internal/config"
	logpkg "github.com/kailas-cloud/resumatch/internal/logger"
	"github.com/kailas-cloud/resumatch/internal/version"
)

func main() {
	app := &cli.App{
		Name:    "resumatch",
		Usage:   "Resume upload, search and job matching service",
		Version: fmt.Sprintf("%s (commit %s, built %s)", version.Version, version.Commit, version.Date),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "env",
				Usage:   "Environment name selecting config/<env>.yaml",
				Value:   config.GetEnv(),
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Explicit config file path; overrides --env lookup",
				EnvVars: []string{"RESUMATCH_CONFIG"},
			},
		},
		Commands: []*cli.Command{
			serveCommand(),
			migrateCommand(),
			scoreCommand(),
		},
		Action: serveAction,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "resumatch:", err)
		os.Exit(1)
	}
}

// loadConfig reads the config selected by the global flags.
func loadConfig(c *cli.Context) (config.Config, error) {
	if path := c.String("config"); path != "" {
		return config.LoadFile(path) //nolint:wrapcheck // already descriptive
	}
	return config.Load(c.String("env")) //nolint:wrapcheck // already descriptive
}

func newLogger(c *cli.Context, cfg config.Config) (*zap.Logger, error) {
	logger, err := logpkg.NewLogger(c.String("env"), cfg.Logging.Level)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return logger, nil
}
