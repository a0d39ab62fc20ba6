package storage

import (
	"context"
	"fmt"

	goredis "github.com/go-redis/redis/v8"
	"go.uber.org/fx"

	"signal_bot/internal/modules/config"
	"signal_bot/internal/modules/postgres"
	"signal_bot/internal/modules/storage/service"
	"signal_bot/pkg/logger"
)

// NewStore выбирает бэкенд по storage.backend.
func NewStore(ctx context.Context, lc fx.Lifecycle, cfg *config.Config) (service.Store, error) {
	switch cfg.Storage.Backend {
	case config.BackendRedis:
		client := goredis.NewClient(&goredis.Options{
			Addr:     cfg.Storage.Redis.Addr,
			Password: cfg.Storage.Redis.Password,
			DB:       cfg.Storage.Redis.DB,
		})
		lc.Append(fx.Hook{
			OnStart: func(ctx context.Context) error {
				if err := client.Ping(ctx).Err(); err != nil {
					return fmt.Errorf("redis ping %s: %w", cfg.Storage.Redis.Addr, err)
				}
				logger.Info("seen store: redis %s", cfg.Storage.Redis.Addr)
				return nil
			},
			OnStop: func(context.Context) error {
				return client.Close()
			},
		})
		return service.NewRedis(client), nil

	case config.BackendPostgres:
		tm, err := postgres.NewTxManager(ctx, lc, cfg)
		if err != nil {
			return nil, err
		}
		pg := service.NewPostgres(tm)
		lc.Append(fx.Hook{
			OnStart: func(ctx context.Context) error {
				logger.Info("seen store: postgres")
				return pg.Migrate(ctx)
			},
		})
		return pg, nil

	case config.BackendMemory:
		logger.Warn("seen store: memory, seen quests are lost on restart")
		return service.NewMemory(), nil
	}
	return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
}

func Module() fx.Option {
	return fx.Module("storage",
		fx.Provide(NewStore),
	)
}
