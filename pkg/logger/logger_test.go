package logger

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func withObserved(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	// паника вместо os.Exit, чтобы Fatal можно было проверить
	l := zap.New(core, zap.WithFatalHook(zapcore.WriteThenPanic))

	prevInfo, prevFatal := infoLogger, fatalLogger
	infoLogger, fatalLogger = l, l
	t.Cleanup(func() { infoLogger, fatalLogger = prevInfo, prevFatal })
	return logs
}

func TestPrintfStyleWithService(t *testing.T) {
	logs := withObserved(t)
	old := SetServiceName("signal_bot")
	t.Cleanup(func() { SetServiceName(old) })

	Warn("watcher: klines %s: %v", "BTCUSDT", "timeout")

	entries := logs.All()
	if len(entries) != 1 || entries[0].Message != "watcher: klines BTCUSDT: timeout" {
		t.Fatalf("entries %+v", entries)
	}
	if got := entries[0].ContextMap()["service"]; got != "signal_bot" {
		t.Errorf("service field %v", got)
	}
}

func TestFatal(t *testing.T) {
	logs := withObserved(t)

	defer func() {
		if recover() == nil {
			t.Fatal("Fatal must not return")
		}
		if logs.FilterLevelExact(zapcore.FatalLevel).Len() != 1 {
			t.Errorf("fatal entry not written: %+v", logs.All())
		}
	}()
	Fatal("bot: build app: %v", "missing provider")
}

func TestUninitializedIsNop(t *testing.T) {
	prev := infoLogger
	infoLogger = nil
	t.Cleanup(func() { infoLogger = prev })

	Info("nobody listens %d", 1)
	Sync()
}

func TestInitRejectsBadLevel(t *testing.T) {
	if err := Init("loud", false); err == nil {
		t.Fatal("expected error for unknown level")
	}
}
