package quest

import (
	"context"
	"net/http"

	"go.uber.org/fx"

	"signal_bot/internal/metrics"
	"signal_bot/internal/modules/config"
	health "signal_bot/internal/modules/health/service"
	"signal_bot/internal/modules/quest/service"
	storage "signal_bot/internal/modules/storage/service"
	"signal_bot/internal/notify"
	"signal_bot/internal/runner"
	"signal_bot/pkg/logger"
)

func NewPoller(cfg *config.Config, c *http.Client, store storage.Store, d *notify.Dispatcher, m *metrics.Metrics) *service.Poller {
	return service.NewPoller(
		cfg.Quests.Feeds,
		cfg.Telegram.QuestRecipients,
		service.NewFeedClient(c, m),
		service.NewDeduplicator(store, cfg.Quests.SilentSeed),
		d,
		m,
	)
}

func Module() fx.Option {
	return fx.Module("quest",
		fx.Provide(NewPoller),
		fx.Invoke(func(lc fx.Lifecycle, ctx context.Context, cfg *config.Config, p *service.Poller, m *metrics.Metrics, state *health.State) {
			if len(cfg.Quests.Feeds) == 0 {
				logger.Info("quests: no feeds configured")
				return
			}
			task := &runner.Task{
				Name:    "quests",
				Delay:   runner.JitterDelay(cfg.Quests.MinDelay, cfg.Quests.MaxDelay),
				Run:     p.Tick,
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
