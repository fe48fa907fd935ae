package log

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"trace":   LevelTrace,
		"debug":   slog.LevelDebug,
		"":        slog.LevelInfo,
		"info":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"error":   slog.LevelError,
		"verbose": slog.LevelInfo,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseLevel(in), "level %q", in)
	}
}

func TestNewHandler_Terminal(t *testing.T) {
	var stdout, stderr bytes.Buffer
	logger := slog.New(NewHandler(slog.LevelDebug, &stdout, &stderr, nil))

	logger.Debug("dbg")
	logger.Info("hello")
	logger.Error("boom")

	assert.Contains(t, stdout.String(), "msg=dbg")
	assert.Contains(t, stdout.String(), "msg=hello")
	assert.NotContains(t, stdout.String(), "boom")
	assert.Contains(t, stderr.String(), "msg=boom")
	assert.NotContains(t, stderr.String(), "hello")
}

func TestNewHandler_File(t *testing.T) {
	var stdout, stderr, file bytes.Buffer
	logger := slog.New(NewHandler(slog.LevelInfo, &stdout, &stderr, &file))

	logger.Debug("hidden")
	logger.Info("hello", "vt", 2)
	logger.Error("boom")

	assert.Empty(t, stdout.String())
	assert.Equal(t, 1, strings.Count(stderr.String(), "\n"))
	assert.Contains(t, stderr.String(), "msg=boom")
	assert.Contains(t, file.String(), "msg=hello vt=2")
	assert.Contains(t, file.String(), "msg=boom")
	assert.NotContains(t, file.String(), "hidden")
}

func TestNewHandler_WithAttrs(t *testing.T) {
	var stdout, stderr bytes.Buffer
	logger := slog.New(NewHandler(slog.LevelInfo, &stdout, &stderr, nil)).
		With("tty", "/dev/tty2").
		WithGroup("key")

	logger.Info("pressed", "code", 30)

	assert.Contains(t, stdout.String(), "tty=/dev/tty2 key.code=30")
}

func TestSetupLogger_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vtinput.log")

	logger, closers, err := SetupLogger(Config{Level: "debug", File: path})
	require.NoError(t, err)
	require.Len(t, closers, 1)

	logger.Debug("written")
	for _, c := range closers {
		require.NoError(t, c.Close())
	}

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "msg=written")
}

func TestSetupLogger_BadFile(t *testing.T) {
	_, _, err := SetupLogger(Config{File: filepath.Join(t.TempDir(), "missing", "x.log")})
	assert.Error(t, err)
}
