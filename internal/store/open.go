// Package store selects and opens the configured UserStore backend.
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/Bhupesh-Khordia/auth-service/internal/core/ports"
	mongostore "github.com/Bhupesh-Khordia/auth-service/internal/infrastructure/db/mongo"
	redisstore "github.com/Bhupesh-Khordia/auth-service/internal/infrastructure/db/redis"
	"github.com/Bhupesh-Khordia/auth-service/internal/pkg/config"
	"github.com/Bhupesh-Khordia/auth-service/internal/store/jsonfile"
	"github.com/Bhupesh-Khordia/auth-service/internal/store/memory"
)

// Open builds the backend named by cfg.StoreBackend and returns it along with
// its readiness checks and a cleanup function for connection teardown.
func Open(ctx context.Context, cfg *config.Config) (ports.UserStore, map[string]ports.HealthCheck, func(), error) {
	noop := func() {}

	switch cfg.StoreBackend {
	case config.BackendMemory:
		return memory.New(), nil, noop, nil

	case config.BackendFile:
		s, err := jsonfile.Open(cfg.UsersFile)
		if err != nil {
			return nil, nil, noop, err
		}
		return s, nil, noop, nil

	case config.BackendMongo:
		client, db, err := mongostore.Connect(ctx, mongostore.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
		})
		if err != nil {
			return nil, nil, noop, err
		}
		cleanup := func() {
			disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = client.Disconnect(disconnectCtx)
		}
		s, err := mongostore.NewUserStore(ctx, db)
		if err != nil {
			cleanup()
			return nil, nil, noop, err
		}
		checks := map[string]ports.HealthCheck{
			"mongodb": func(ctx context.Context) error { return client.Ping(ctx, nil) },
		}
		return s, checks, cleanup, nil

	case config.BackendRedis:
		client, err := redisstore.Connect(ctx, redisstore.Config{
			Addr: cfg.Redis.Addr,
			DB:   cfg.Redis.DB,
		})
		if err != nil {
			return nil, nil, noop, err
		}
		checks := map[string]ports.HealthCheck{
			"redis": func(ctx context.Context) error { return client.Ping(ctx).Err() },
		}
		return redisstore.NewUserStore(client), checks, func() { _ = client.Close() }, nil

	default:
		return nil, nil, noop, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}
