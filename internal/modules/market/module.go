package market

import (
	"net/http"

	"go.uber.org/fx"

	"signal_bot/internal/metrics"
	"signal_bot/internal/modules/config"
	"signal_bot/internal/modules/market/service"
)

func Module() fx.Option {
	return fx.Module("market",
		fx.Provide(
			func(cfg *config.Config, c *http.Client, m *metrics.Metrics) *service.Binance {
				return service.NewBinance(cfg.Binance.BaseURL, c, m)
			},
			func(cfg *config.Config, c *http.Client, m *metrics.Metrics) *service.P2P {
				return service.NewP2P(cfg.Binance.P2PURL, c, m)
			},
		),
	)
}
