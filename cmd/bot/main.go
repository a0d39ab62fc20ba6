package main

import (
	"context"
	"net/http"

	"go.uber.org/fx"

	"signal_bot/internal/helper"
	"signal_bot/internal/metrics"
	"signal_bot/internal/modules/bybit"
	"signal_bot/internal/modules/config"
	"signal_bot/internal/modules/health"
	"signal_bot/internal/modules/market"
	"signal_bot/internal/modules/quest"
	"signal_bot/internal/modules/storage"
	telegram "signal_bot/internal/modules/telegram_bot"
	"signal_bot/internal/runner"
	"signal_bot/pkg/logger"
	"signal_bot/pkg/tracing"
)

// корневой контекст фоновых задач, отменяется на остановке приложения
func newRootContext(lc fx.Lifecycle) context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			cancel()
			return nil
		},
	})
	return ctx
}

func initLogger(lc fx.Lifecycle, cfg *config.Config) error {
	logger.SetServiceName(cfg.Service.Name)
	tracing.SetServiceName(cfg.Service.Name)
	if err := logger.Init(cfg.Service.LogLevel, cfg.Service.Development); err != nil {
		return err
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			logger.Sync()
			return nil
		},
	})
	return nil
}

func initTracer(lc fx.Lifecycle, cfg *config.Config) error {
	_, closeFn, err := tracing.InitTracer(tracing.Config{
		Enabled: cfg.Tracing.Enabled,
		Host:    cfg.Tracing.Host,
		Port:    cfg.Tracing.Port,
	})
	if err != nil {
		return err
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			closeFn()
			return nil
		},
	})
	return nil
}

func newHTTPClient(cfg *config.Config) (*http.Client, error) {
	return helper.NewHTTPClient(cfg.HTTP.Timeout, cfg.HTTP.Proxy)
}

func main() {
	app := fx.New(
		fx.Provide(
			newRootContext,
			newHTTPClient,
			metrics.NewMetrics,
		),
		config.Module(),
		fx.Invoke(initLogger, initTracer),

		storage.Module(),
		market.Module(),
		bybit.Module(),
		runner.Module(),
		quest.Module(),
		telegram.Module(),
		health.Module(),
	)
	if err := app.Err(); err != nil {
		logger.Fatal("bot: build app: %v", err)
	}

	// блокирует до SIGINT/SIGTERM, затем OnStop в обратном порядке
	app.Run()
}
