package log

import "go.uber.org/zap"

// Package-level helpers over the global sugared logger.

// s loads the current sugared logger under the read lock; NewLog may swap
// the globals at any time.
func s() *zap.SugaredLogger {
	mu.RLock()
	defer mu.RUnlock()
	return sugar
}

func Info(args ...any) {
	s().Info(args...)
}

func Infof(format string, args ...any) {
	s().Infof(format, args...)
}

func Infow(msg string, keysAndValues ...any) {
	s().Infow(msg, keysAndValues...)
}

func Debug(args ...any) {
	s().Debug(args...)
}

func Debugf(format string, args ...any) {
	s().Debugf(format, args...)
}

func Debugw(msg string, keysAndValues ...any) {
	s().Debugw(msg, keysAndValues...)
}

func Warn(args ...any) {
	s().Warn(args...)
}

func Warnf(format string, args ...any) {
	s().Warnf(format, args...)
}

func Warnw(msg string, keysAndValues ...any) {
	s().Warnw(msg, keysAndValues...)
}

func Error(args ...any) {
	s().Error(args...)
}

func Errorf(format string, args ...any) {
	s().Errorf(format, args...)
}

func Errorw(msg string, keysAndValues ...any) {
	s().Errorw(msg, keysAndValues...)
}

func Fatalf(format string, args ...any) {
	s().Fatalf(format, args...)
}

// Sync flushes buffered log entries.
func Sync() error {
	mu.RLock()
	defer mu.RUnlock()
	if logger == nil {
		return nil
	}
	return logger.Sync()
}
