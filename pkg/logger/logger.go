package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	DEBUG int = iota
	INFO
	WARNING
	ERROR
	SILENCE
)

type Logger interface {
	Debugf(msg string, a ...any)
	Infof(msg string, a ...any)
	Warnf(msg string, a ...any)
	Errorf(msg string, a ...any)
}

type defaultLogger struct {
	sugar *zap.SugaredLogger
}

// NewLogger builds a development logger at the given level. SILENCE drops every
// record.
func NewLogger(level int) *defaultLogger {
	return newLogger(zap.NewDevelopmentConfig(), level)
}

// NewProductionLogger is the JSON encoded variant used outside of local runs.
func NewProductionLogger(level int) *defaultLogger {
	return newLogger(zap.NewProductionConfig(), level)
}

func newLogger(cfg zap.Config, level int) *defaultLogger {
	if level >= SILENCE {
		return &defaultLogger{sugar: zap.NewNop().Sugar()}
	}

	cfg.Level = zap.NewAtomicLevelAt(zapLevel(level))
	cfg.DisableStacktrace = true
	l, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return &defaultLogger{sugar: zap.NewNop().Sugar()}
	}

	return &defaultLogger{sugar: l.Sugar()}
}

func ParseLevel(s string) int {
	switch s {
	case "debug", "DEBUG":
		return DEBUG
	case "warn", "warning", "WARN", "WARNING":
		return WARNING
	case "error", "ERROR":
		return ERROR
	case "silence", "SILENCE":
		return SILENCE
	default:
		return INFO
	}
}

func zapLevel(level int) zapcore.Level {
	switch level {
	case DEBUG:
		return zapcore.DebugLevel
	case WARNING:
		return zapcore.WarnLevel
	case ERROR:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

func (l *defaultLogger) Sync() {
	_ = l.sugar.Sync()
}

func (l *defaultLogger) Debugf(msg string, a ...any) {
	l.sugar.Debugf(msg, a...)
}

func (l *defaultLogger) Infof(msg string, a ...any) {
	l.sugar.Infof(msg, a...)
}

func (l *defaultLogger) Warnf(msg string, a ...any) {
	l.sugar.Warnf(msg, a...)
}

func (l *defaultLogger) Errorf(msg string, a ...any) {
	l.sugar.Errorf(msg, a...)
}
