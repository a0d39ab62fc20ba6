package runner

import (
	"context"

	"go.uber.org/fx"

	"signal_bot/internal/metrics"
	"signal_bot/internal/modules/config"
	health "signal_bot/internal/modules/health/service"
	market "signal_bot/internal/modules/market/service"
	"signal_bot/internal/notify"
	"signal_bot/internal/strategy"
)

func NewWatcherFromConfig(cfg *config.Config, b *market.Binance, w *Watchers, d *notify.Dispatcher, m *metrics.Metrics) *Watcher {
	return NewWatcher(WatcherConfig{
		Symbols:  cfg.Watcher.Symbols,
		Interval: cfg.Watcher.Interval,
		Limit:    cfg.Watcher.Limit,
	}, b, strategy.NewEngine(strategy.KindRSI), w, d, m)
}

func Module() fx.Option {
	return fx.Module("runner",
		fx.Provide(
			NewWatchers,
			NewWatcherFromConfig,
		),
		fx.Invoke(func(
			lc fx.Lifecycle,
			ctx context.Context,
			cfg *config.Config,
			w *Watcher,
			m *metrics.Metrics,
			state *health.State,
		) {
			task := &Task{
				Name:    "watcher",
				Delay:   FixedDelay(cfg.Watcher.Every),
				Run:     w.Tick,
				Metrics: m,
				Health:  state,
			}
			lc.Append(fx.Hook{
				OnStart: func(_ context.Context) error {
					task.Start(ctx)
					return nil
				},
				OnStop: func(_ context.Context) error {
					task.Stop()
					return nil
				},
			})
		}),
	)
}
