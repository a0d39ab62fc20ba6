package logger

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var infoLogger, fatalLogger *zap.Logger

var (
	serviceName = "default"
	nop         = zap.NewNop()
	initMu      sync.Mutex
)

func SetServiceName(newName string) string {
	oldName := serviceName
	serviceName = newName

	return oldName
}

// Init поднимает глобальные логгеры. level: debug|info|warn|error.
func Init(level string, development bool) error {
	initMu.Lock()
	defer initMu.Unlock()

	lvl := zapcore.InfoLevel
	if level != "" {
		if err := lvl.UnmarshalText([]byte(level)); err != nil {
			return fmt.Errorf("logger.Init: %w", err)
		}
	}

	cfg := zap.NewProductionConfig()
	if development {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	l, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return fmt.Errorf("logger.Init: %w", err)
	}

	infoLogger = l
	fatalLogger = l
	return nil
}

// Sync сбрасывает буферы, вызывать на остановке.
func Sync() {
	if infoLogger != nil {
		_ = infoLogger.Sync()
	}
}

// в тестах логгер не инициализирован: пишем в nop
func info() *zap.Logger {
	if infoLogger == nil {
		return nop
	}
	return infoLogger.With(zap.String("service", serviceName))
}

func Debug(format string, args ...interface{}) {
	info().Debug(fmt.Sprintf(format, args...))
}

func Info(format string, args ...interface{}) {
	info().Info(fmt.Sprintf(format, args...))
}

func Warn(format string, args ...interface{}) {
	info().Warn(fmt.Sprintf(format, args...))
}

func Error(format string, args ...interface{}) {
	info().Error(fmt.Sprintf(format, args...))
}

// Fatal пишет и завершает процесс. До Init пишет через production-логгер по умолчанию.
func Fatal(format string, args ...interface{}) {
	l := fatalLogger
	if l == nil {
		var err error
		if l, err = zap.NewProduction(); err != nil {
			panic(fmt.Sprintf(format, args...))
		}
	}

	msg := fmt.Sprintf(format, args...)
	l.With(
		zap.String("service", serviceName),
	).Fatal(msg)
}
