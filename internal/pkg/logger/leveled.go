package logger

import "go.uber.org/zap"

// Leveled adapts a zap logger to the key/value logger interface used by
// hashicorp/go-retryablehttp (Error/Info/Debug/Warn with variadic pairs).
type Leveled struct {
	s *zap.SugaredLogger
}

func NewLeveled(l *zap.Logger) *Leveled {
	return &Leveled{s: l.Sugar()}
}

func (l *Leveled) Error(msg string, keysAndValues ...interface{}) {
	l.s.Errorw(msg, keysAndValues...)
}

func (l *Leveled) Info(msg string, keysAndValues ...interface{}) {
	l.s.Infow(msg, keysAndValues...)
}

func (l *Leveled) Debug(msg string, keysAndValues ...interface{}) {
	l.s.Debugw(msg, keysAndValues...)
}

func (l *Leveled) Warn(msg string, keysAndValues ...interface{}) {
	l.s.Warnw(msg, keysAndValues...)
}
