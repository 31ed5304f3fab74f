package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/financial-times/myft.go/internal/commands"
)

// Build information. Populated at build-time via -ldflags flag.
var (
	version = "dev"
	commit  = "HEAD"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var closeLog func() error

	flags := &commands.Flags{}

	app := &cli.Command{
		Name:      "myft",
		Usage:     "Talk to the myFT personalisation API",
		UsageText: "myft [global options] command [command options]",
		Version:   fmt.Sprintf("%s (%s)", version, commit),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error)",
				Sources:     cli.EnvVars("MYFT_LOG_LEVEL"),
				Value:       "info",
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file (defaults to stderr)",
				Sources:     cli.EnvVars("MYFT_LOG_FILE"),
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "log-format",
				Usage:       "log format (json, text)",
				Sources:     cli.EnvVars("MYFT_LOG_FORMAT"),
				Value:       "json",
				Destination: &flags.LogFormat,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to a YAML config file, the environment is used when empty",
				Sources:     cli.EnvVars("MYFT_CONFIG"),
				Destination: &flags.ConfigPath,
			},
			&cli.StringFlag{
				Name:        "env-file",
				Usage:       "dotenv file loaded before the configuration is read",
				Value:       ".env",
				Destination: &flags.EnvFile,
			},
			&cli.StringFlag{
				Name:        "api-root",
				Usage:       "override the API root of the configuration",
				Destination: &flags.APIRoot,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			if err := flags.LoadEnv(); err != nil {
				return ctx, err
			}

			var err error
			closeLog, err = flags.SetupLogger(os.Stderr)
			if err != nil {
				return ctx, err
			}

			if err := flags.ResolveConfig(); err != nil {
				return ctx, fmt.Errorf("load config: %w", err)
			}
			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			if closeLog != nil {
				return closeLog()
			}
			return nil
		},
	}

	app = commands.NewActorCmd(flags).Register(app)
	app = commands.NewRelationshipCmd(flags).Register(app)
	app = commands.NewPurgeCmd(flags).Register(app)
	app = commands.NewURLCmd().Register(app)
	app = commands.NewNotificationsCmd(flags).Register(app)
	app = commands.NewPrefsCmd(flags).Register(app)

	exitCode := 0
	if err := app.Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		exitCode = 1
	}

	stop()
	os.Exit(exitCode)
}
