package runner

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/multierr"

	"signal_bot/internal/metrics"
	"signal_bot/internal/models"
	"signal_bot/internal/notify"
	"signal_bot/internal/strategy"
	"signal_bot/pkg/logger"
)

type Candles interface {
	Klines(ctx context.Context, symbol, interval string, limit int) ([]models.Candle, error)
}

type Sink interface {
	Dispatch(ctx context.Context, recipients []int64, text string) error
}

type WatcherConfig struct {
	Symbols  []string
	Interval string
	Limit    int
}

// Watcher ведёт сигналы по цепочке свечи -> классификатор -> подписчики.
type Watcher struct {
	cfg      WatcherConfig
	market   Candles
	engine   strategy.Engine
	watchers *Watchers
	sink     Sink
	metrics  *metrics.Metrics

	mu       sync.Mutex
	lastSent map[string]time.Time // symbol|direction -> open time свечи
}

func NewWatcher(cfg WatcherConfig, market Candles, engine strategy.Engine, w *Watchers, sink Sink, m *metrics.Metrics) *Watcher {
	return &Watcher{
		cfg:      cfg,
		market:   market,
		engine:   engine,
		watchers: w,
		sink:     sink,
		metrics:  m,
		lastSent: make(map[string]time.Time),
	}
}

// Tick: один проход по всем символам. Без подписчиков в API не ходит.
func (w *Watcher) Tick(ctx context.Context) error {
	recipients := w.watchers.Recipients()
	if len(recipients) == 0 {
		return nil
	}

	var errs error
	for _, symbol := range w.cfg.Symbols {
		candles, err := w.market.Klines(ctx, symbol, w.cfg.Interval, w.cfg.Limit)
		if err != nil {
			logger.Warn("watcher: klines %s: %v", symbol, err)
			errs = multierr.Append(errs, err)
			continue
		}
		if len(candles) == 0 {
			continue
		}

		sig := w.engine.Evaluate(symbol, w.cfg.Interval, candles)
		if sig.IsNone() {
			continue
		}
		if !w.markSent(symbol, sig.Direction, candles[len(candles)-1].OpenTime) {
			logger.Debug("watcher: %s %s already sent for this candle", symbol, sig.Direction)
			continue
		}

		if w.metrics != nil {
			w.metrics.SignalsTotal.WithLabelValues(w.engine.Name(), string(sig.Direction)).Inc()
		}
		logger.Info("watcher: %s %s entry=%.6f", symbol, sig.Direction, sig.Entry)
		if err := w.sink.Dispatch(ctx, recipients, notify.FormatSignal(sig)); err != nil {
			errs = multierr.Append(errs, err)
		}
	}
	return errs
}

// markSent: true, если по этой свече в этом направлении ещё не слали.
func (w *Watcher) markSent(symbol string, dir models.Direction, openTime time.Time) bool {
	key := fmt.Sprintf("%s|%s", symbol, dir)

	w.mu.Lock()
	defer w.mu.Unlock()
	if last, ok := w.lastSent[key]; ok && last.Equal(openTime) {
		return false
	}
	w.lastSent[key] = openTime
	return true
}
