package logging

import (
	"bytes"
	"log/slog"
	"testing"

	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
)

func TestParseLevel(t *testing.T) {
	level, err := ParseLevel("warn")
	assert.NilError(t, err)
	assert.Equal(t, level, slog.LevelWarn)

	level, err = ParseLevel("DEBUG")
	assert.NilError(t, err)
	assert.Equal(t, level, slog.LevelDebug)

	_, err = ParseLevel("loud")
	assert.ErrorContains(t, err, "invalid log level")
}

func TestSetupLogger_ConsoleOnly(t *testing.T) {
	var buf bytes.Buffer
	logger, cleanup := SetupLogger(Options{Level: slog.LevelInfo, Output: &buf})
	defer cleanup()

	logger.Debug("hidden")
	logger.Info("table loaded", slog.String("table", "releves"))

	out := buf.String()
	assert.Check(t, is.Contains(out, "table=releves"))
	assert.Check(t, !bytes.Contains(buf.Bytes(), []byte("hidden")))
}

func TestMultiHandler_FansOut(t *testing.T) {
	var a, b bytes.Buffer
	h := &multiHandler{handlers: []slog.Handler{
		slog.NewTextHandler(&a, &slog.HandlerOptions{Level: slog.LevelInfo}),
		slog.NewTextHandler(&b, &slog.HandlerOptions{Level: slog.LevelError}),
	}}
	logger := slog.New(h).With(slog.String("run_id", "r1"))

	logger.Info("step applied")
	logger.Error("run failed")

	assert.Check(t, is.Contains(a.String(), "step applied"))
	assert.Check(t, is.Contains(a.String(), "run_id=r1"))
	assert.Check(t, is.Contains(b.String(), "run failed"))
	assert.Check(t, !bytes.Contains(b.Bytes(), []byte("step applied")))
}
