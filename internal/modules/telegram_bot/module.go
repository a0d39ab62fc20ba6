package telegram

import (
	"context"

	"go.uber.org/fx"

	"signal_bot/internal/metrics"
	bybit "signal_bot/internal/modules/bybit/service"
	"signal_bot/internal/modules/config"
	health "signal_bot/internal/modules/health/service"
	market "signal_bot/internal/modules/market/service"
	"signal_bot/internal/modules/telegram_bot/service"
	"signal_bot/internal/notify"
	"signal_bot/internal/runner"
)

func NewRouter(
	cfg *config.Config,
	b *market.Binance,
	p2p *market.P2P,
	splash *bybit.Splash,
	w *runner.Watchers,
	m *metrics.Metrics,
) *service.Router {
	return service.NewRouter(service.RouterConfig{
		Fiat:     cfg.Binance.Fiat,
		Interval: cfg.Watcher.Interval,
	}, b, p2p, splash, w, m)
}

func NewTelegram(cfg *config.Config, r *service.Router, state *health.State) (*service.Telegram, error) {
	return service.NewTelegram(cfg.Telegram.Token, r, state)
}

func Module() fx.Option {
	return fx.Module("telegram",
		fx.Provide(
			NewRouter,
			NewTelegram,
		),

		// Адаптер: *service.Telegram -> notify.Sender, на нём рассылка вотчера и квестов
		fx.Provide(
			func(t *service.Telegram) notify.Sender {
				return t
			},
			notify.NewDispatcher,
		),
		// Запуск основного цикла через Lifecycle
		fx.Invoke(
			func(lc fx.Lifecycle, ctx context.Context, t *service.Telegram, state *health.State) {
				lc.Append(fx.Hook{
					OnStart: func(_ context.Context) error {
						t.Start(ctx)
						state.SetReady(true)
						return nil
					},
					OnStop: func(_ context.Context) error {
						state.SetReady(false)
						t.Stop()
						return nil
					},
				})
			},
		),
	)
}
