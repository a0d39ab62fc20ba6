package runner

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"signal_bot/internal/metrics"
	health "signal_bot/internal/modules/health/service"
	"signal_bot/pkg/logger"
)

// FixedDelay
func FixedDelay(d time.Duration) func() time.Duration {
	return func() time.Duration { return d }
}

// JitterDelay: случайная пауза в [min, max].
func JitterDelay(min, max time.Duration) func() time.Duration {
	if max <= min {
		return FixedDelay(min)
	}
	return func() time.Duration {
		return min + time.Duration(rand.Int64N(int64(max-min)+1))
	}
}

// Task: периодическая задача. Следующий таймер взводится только после окончания
// текущего запуска, поэтому запуски не перекрываются.
type Task struct {
	Name    string
	Delay   func() time.Duration
	Run     func(ctx context.Context) error
	Metrics *metrics.Metrics
	Health  *health.State

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// Start запускает цикл в отдельной горутине. Повторный Start без Stop ничего не делает.
func (t *Task) Start(parent context.Context) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(parent)
	t.cancel = cancel
	t.done = make(chan struct{})

	go func() {
		defer close(t.done)
		t.loop(ctx)
	}()
	logger.Info("task %s started", t.Name)
}

// Stop отменяет цикл и ждёт текущий запуск.
func (t *Task) Stop() {
	t.mu.Lock()
	cancel, done := t.cancel, t.done
	t.cancel = nil
	t.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
	logger.Info("task %s stopped", t.Name)
}

func (t *Task) loop(ctx context.Context) {
	for {
		timer := time.NewTimer(t.Delay())
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}

		if err := t.RunOnce(ctx); err != nil {
			logger.Warn("task %s: %v", t.Name, err)
		}
	}
}

// RunOnce: один запуск с перехватом паники.
func (t *Task) RunOnce(ctx context.Context) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic: %v", p)
		}
		t.Metrics.ObserveTask(t.Name, err)
		t.Health.TouchTask(t.Name, err)
	}()
	return t.Run(ctx)
}
