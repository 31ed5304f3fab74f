package slog_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"testing"

	rawslog "log/slog"

	"github.com/stretchr/testify/require"

	"github.com/financial-times/myft.go/pkg/logger/slog"
)

type testMethod struct {
	fn    func(msg string, args ...any)
	level rawslog.Level
}

var (
	LogText         = "Test Log Value"
	CustomFieldName = "subject"
	CustomFieldVal  = "Article:12345"
)

type testLogJSON struct {
	Level     string `json:"level"`
	Msg       string `json:"msg"`
	CustomVal string `json:"subject"`
}

func TestLogger(t *testing.T) {
	buffer := bytes.NewBuffer([]byte{})

	// level needs to be set to debug for log all
	handler := rawslog.NewJSONHandler(buffer, &rawslog.HandlerOptions{Level: rawslog.LevelDebug})
	logger := slog.New(handler)

	testMethods := []testMethod{
		{fn: logger.Error, level: rawslog.LevelError},
		{fn: logger.Warn, level: rawslog.LevelWarn},
		{fn: logger.Info, level: rawslog.LevelInfo},
		{fn: logger.Debug, level: rawslog.LevelDebug},
	}

	for _, v := range testMethods {
		t.Run(fmt.Sprintf("testing %s", v.level.String()), func(t *testing.T) {
			buffer.Reset()
			v.fn(LogText, CustomFieldName, CustomFieldVal)

			var got testLogJSON
			require.NoError(t, json.Unmarshal(buffer.Bytes(), &got))
			require.Equal(t, v.level.String(), got.Level)
			require.Equal(t, LogText, got.Msg)
			require.Equal(t, CustomFieldVal, got.CustomVal)
		})
	}
}

func TestTextLevel(t *testing.T) {
	var buffer bytes.Buffer
	logger, err := slog.NewText(&buffer, "warn")
	require.NoError(t, err)

	logger.Info("dropped")
	logger.With("user", "abcd").Warn("poll failed", "status", 503)

	out := buffer.String()
	require.NotContains(t, out, "dropped")
	require.Contains(t, out, "level=WARN")
	require.Contains(t, out, `msg="poll failed"`)
	require.Contains(t, out, "user=abcd")
	require.Contains(t, out, "status=503")
}

func TestTextInvalidLevel(t *testing.T) {
	_, err := slog.NewText(&bytes.Buffer{}, "loud")
	require.Error(t, err)
}
