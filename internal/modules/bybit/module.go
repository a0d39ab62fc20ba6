package bybit

import (
	"net/http"

	"go.uber.org/fx"

	"signal_bot/internal/metrics"
	"signal_bot/internal/modules/bybit/service"
	"signal_bot/internal/modules/config"
)

func Module() fx.Option {
	return fx.Module("bybit",
		fx.Provide(
			func(cfg *config.Config, c *http.Client, m *metrics.Metrics) *service.Splash {
				return service.NewSplash(cfg.Bybit.BaseURL, c, m)
			},
		),
	)
}
