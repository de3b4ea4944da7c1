package httputil

import (
	"go.uber.org/zap"
)

// LeveledZap adapts zap to retryablehttp's LeveledLogger. Errors are logged
// as warnings since the request is usually retried.
type LeveledZap struct {
	inner *zap.SugaredLogger
}

func NewLeveledZap(logger *zap.Logger) LeveledZap {
	if logger == nil {
		logger = zap.NewNop()
	}
	return LeveledZap{inner: logger.Sugar()}
}

func (l LeveledZap) Error(msg string, keysAndValues ...interface{}) {
	l.inner.Warnw(msg, keysAndValues...)
}

func (l LeveledZap) Warn(msg string, keysAndValues ...interface{}) {
	l.inner.Warnw(msg, keysAndValues...)
}

func (l LeveledZap) Info(msg string, keysAndValues ...interface{}) {
	l.inner.Infow(msg, keysAndValues...)
}

func (l LeveledZap) Debug(msg string, keysAndValues ...interface{}) {
	l.inner.Debugw(msg, keysAndValues...)
}
