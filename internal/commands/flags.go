package commands

import (
	"errors"
	"fmt"
	"io"
	"io/fs"

	"github.com/goccy/go-json"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"

	"github.com/financial-times/myft.go"
	"github.com/financial-times/myft.go/pkg/logger"
	"github.com/financial-times/myft.go/pkg/logger/slog"
)

type Flags struct {
	LogLevel   string
	LogFile    string
	LogFormat  string
	ConfigPath string
	EnvFile    string
	APIRoot    string

	// Config is resolved in the Before hook and available to all commands
	Config myft.Config

	// Client is built from Config on first use unless set beforehand
	Client *myft.Client

	Logger logger.Logger
}

// LoadEnv loads the .env file into the process environment. A missing file is not
// an error. Variables already set are kept.
func (f *Flags) LoadEnv() error {
	if f.EnvFile == "" {
		return nil
	}
	if err := godotenv.Load(f.EnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", f.EnvFile, err)
	}
	return nil
}

// SetupLogger builds Logger from the log flags. Format "text" writes logfmt through
// log/slog, anything else writes zerolog JSON lines. The returned func closes the log file.
func (f *Flags) SetupLogger(stderr io.Writer) (func() error, error) {
	build := logger.New().FromBuffer(stderr).WithLevel(f.LogLevel)
	if f.LogFile != "" {
		build = build.FromPath(f.LogFile)
	}
	logData, err := build.Make()
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}

	switch f.LogFormat {
	case "text":
		var w io.Writer = stderr
		if logData.LogFile != nil {
			w = logData.LogFile
		}
		text, err := slog.NewText(w, f.LogLevel)
		if err != nil {
			_ = logData.Close()
			return nil, fmt.Errorf("setup logger: %w", err)
		}
		f.Logger = text
	default:
		f.Logger = logData.AsLogger()
	}
	return logData.Close, nil
}

// ResolveConfig reads the config file when one is given, or the environment
// otherwise, and applies the --api-root flag on top.
func (f *Flags) ResolveConfig() error {
	var (
		cfg myft.Config
		err error
	)
	if f.ConfigPath != "" {
		cfg, err = myft.LoadConfig(f.ConfigPath)
	} else {
		cfg, err = myft.ConfigFromEnv()
	}
	if err != nil {
		return err
	}

	if f.APIRoot != "" {
		cfg.APIRoot = f.APIRoot
	}
	f.Config = cfg
	return nil
}

func (f *Flags) client() (*myft.Client, error) {
	if f.Client != nil {
		return f.Client, nil
	}
	if err := f.Config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	c, err := myft.New(f.Config, myft.WithLogger(f.logger()))
	if err != nil {
		return nil, err
	}
	f.Client = c
	return c, nil
}

func (f *Flags) logger() logger.Logger {
	if f.Logger == nil {
		return logger.Nop()
	}
	return f.Logger
}

func requireArgs(c *cli.Command, n int) error {
	if c.Args().Len() < n {
		return fmt.Errorf("expected %d arguments, got %d. usage: %s", n, c.Args().Len(), c.UsageText)
	}
	return nil
}

// parseData decodes a JSON argument. An empty argument is no data.
func parseData(s string) (any, error) {
	if s == "" {
		return nil, nil
	}
	var v any
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return nil, fmt.Errorf("data must be JSON: %w", err)
	}
	return v, nil
}

func writeJSON(c *cli.Command, raw []byte) error {
	w := c.Root().Writer
	if _, err := w.Write(raw); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w)
	return err
}
