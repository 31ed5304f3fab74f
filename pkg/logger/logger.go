// Package logger provides the structured logging contract used across the myFT client,
// with a zerolog backend and a file/buffer builder for applications.
package logger

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

const (
	permission = 0664
)

// Logger is the logging contract shared by the client, the notification poller
// and the user preferences client. Args are alternating key/value pairs.
type Logger interface {
	Error(msg string, args ...any)
	Warn(msg string, args ...any)
	Info(msg string, args ...any)
	Debug(msg string, args ...any)
}

// Zerolog adapts a zerolog.Logger to Logger.
type Zerolog struct {
	l zerolog.Logger
}

var _ Logger = (*Zerolog)(nil)

func NewZerolog(l zerolog.Logger) *Zerolog {
	return &Zerolog{l: l}
}

func (z *Zerolog) Error(msg string, args ...any) { z.l.Error().Fields(args).Msg(msg) }
func (z *Zerolog) Warn(msg string, args ...any)  { z.l.Warn().Fields(args).Msg(msg) }
func (z *Zerolog) Info(msg string, args ...any)  { z.l.Info().Fields(args).Msg(msg) }
func (z *Zerolog) Debug(msg string, args ...any) { z.l.Debug().Fields(args).Msg(msg) }

// Default writes timestamped JSON lines to stderr at info level.
func Default() Logger {
	return NewZerolog(zerolog.New(os.Stderr).With().Timestamp().Logger().Level(zerolog.InfoLevel))
}

// Nop discards everything.
func Nop() Logger {
	return NewZerolog(zerolog.Nop())
}

type LogBuild struct {
	writer io.Writer
	path   string
	level  string
}

type LogData struct {
	LogFile *os.File
	Logger  zerolog.Logger
}

func New() *LogBuild {
	return &LogBuild{}
}

func (build *LogBuild) FromPath(path string) *LogBuild {
	build.path = path
	return build
}

func (build *LogBuild) FromBuffer(w io.Writer) *LogBuild {
	build.writer = w
	return build
}

// WithLevel sets the minimum level by name (debug, info, warn, error).
// An empty name keeps zerolog's default.
func (build *LogBuild) WithLevel(level string) *LogBuild {
	build.level = level
	return build
}

func (build *LogBuild) Make() (logData *LogData, err error) {
	logData = new(LogData)
	var writer io.Writer = os.Stderr
	if build.writer != nil {
		writer = build.writer
	}
	if build.path != "" {
		logData.LogFile, err = os.OpenFile(build.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, permission)
		if err != nil {
			return nil, err
		}
		writer = zerolog.SyncWriter(logData.LogFile)
	}
	logData.Logger = zerolog.New(writer).With().Timestamp().Logger()
	if build.level != "" {
		lvl, err := zerolog.ParseLevel(build.level)
		if err != nil {
			_ = logData.Close()
			return nil, err
		}
		logData.Logger = logData.Logger.Level(lvl)
	}
	return logData, nil
}

// AsLogger returns the built logger behind the Logger interface.
func (logData *LogData) AsLogger() Logger {
	return NewZerolog(logData.Logger)
}

// Close releases the log file, if any.
func (logData *LogData) Close() error {
	if logData.LogFile == nil {
		return nil
	}
	return logData.LogFile.Close()
}
