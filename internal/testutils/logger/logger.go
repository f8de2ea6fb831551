package logger

import (
	"io"
	"log/slog"
	"strings"
	"testing"
)

/*
New returns a logger for test t on debug level, output is routed
through t.Log so it is only shown for failed tests (unless -v flag
is used).
*/
func New(t testing.TB) *slog.Logger {
	return NewLvl(t, slog.LevelDebug)
}

func NewLvl(t testing.TB, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(
		&testWriter{t: t},
		&slog.HandlerOptions{Level: level},
	))
}

// NOP returns a logger which doesn't log (ie /dev/null).
func NOP() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.Level(100)}))
}

type testWriter struct {
	t testing.TB
}

func (w *testWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(strings.TrimSuffix(string(p), "\n"))
	return len(p), nil
}
