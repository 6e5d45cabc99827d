package main

import (
	"bytes"
	"errors"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShutdownClosesLogBeforeReporting(t *testing.T) {
	var logs, stderr bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	var order []string
	closeLog := func() {
		order = append(order, "close")
		assert.Contains(t, logs.String(), "db gone", "error is logged before the file closes")
	}

	code := shutdown(errors.New("db gone"), logger, closeLog, &stderr)
	order = append(order, "exit")

	assert.Equal(t, 1, code)
	assert.Equal(t, []string{"close", "exit"}, order)
	assert.Equal(t, "daybreak: db gone\n", stderr.String())
}

func TestShutdownCleanExit(t *testing.T) {
	var stderr bytes.Buffer
	closed := false
	code := shutdown(nil, slog.New(slog.NewTextHandler(&stderr, nil)), func() { closed = true }, &stderr)
	assert.Equal(t, 0, code)
	assert.True(t, closed)
	assert.Empty(t, stderr.String())
}

func TestOpenLoggerWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "daybreak.log")
	t.Cleanup(func() { log.SetOutput(os.Stderr) })
	logger, closeLog, err := openLogger(path)
	require.NoError(t, err)
	logger.Warn("phase empty", "phase", "afternoon")
	closeLog()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "phase=afternoon")
}

func TestGenerateSeed(t *testing.T) {
	a, err := generateSeed()
	require.NoError(t, err)
	b, err := generateSeed()
	require.NoError(t, err)
	assert.Len(t, a, 24)
	assert.NotEqual(t, a, b)
}
