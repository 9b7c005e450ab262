package log_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/luxfi/parity/log"
)

func TestNoOpLoggerDoesNotPanic(t *testing.T) {
	l := log.NewNoOpLogger()
	assert.NotPanics(t, func() {
		l.Info("test", zap.Int("n", 1))
		l.Warn("test")
		l.Error("test")
		l.Debug("test")
		_ = l.Sync()
	})
}

func TestWithReturnsIndependentLogger(t *testing.T) {
	l := log.NewNoOpLogger()
	child := l.With(zap.String("component", "test"))
	assert.NotPanics(t, func() { child.Info("hi") })
}

func TestNewAcceptsEmptyLevel(t *testing.T) {
	l := log.New("")
	assert.NotNil(t, l)
}

func TestNewStderrAcceptsLevel(t *testing.T) {
	l := log.NewStderr("debug")
	assert.NotNil(t, l)
}
