// Package slog adapts log/slog to the myFT logger contract, for applications that
// already route their logs through a slog.Handler.
package slog

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/financial-times/myft.go/pkg/logger"
)

type SlogHandler struct {
	logger *slog.Logger
}

var _ logger.Logger = (*SlogHandler)(nil)

func New(h slog.Handler) *SlogHandler {
	return &SlogHandler{logger: slog.New(h)}
}

// NewText writes logfmt lines to w at the named level (debug, info, warn, error).
// An empty level means info.
func NewText(w io.Writer, level string) (*SlogHandler, error) {
	var lvl slog.Level
	if level != "" {
		if err := lvl.UnmarshalText([]byte(level)); err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", level, err)
		}
	}
	return New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}

// With returns a logger that adds args to every record.
func (handler *SlogHandler) With(args ...any) *SlogHandler {
	return &SlogHandler{logger: handler.logger.With(args...)}
}

func (handler *SlogHandler) Error(msg string, args ...any) {
	handler.logger.Error(msg, args...)
}

func (handler *SlogHandler) Warn(msg string, args ...any) {
	handler.logger.Warn(msg, args...)
}

func (handler *SlogHandler) Info(msg string, args ...any) {
	handler.logger.Info(msg, args...)
}

func (handler *SlogHandler) Debug(msg string, args ...any) {
	handler.logger.Debug(msg, args...)
}
