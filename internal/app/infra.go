package app

import (
	"context"

	"github.com/JoelCodes/w6d4-lecture-auth/internal/config"
	"github.com/JoelCodes/w6d4-lecture-auth/internal/db"
	"github.com/JoelCodes/w6d4-lecture-auth/internal/logger"
	"github.com/JoelCodes/w6d4-lecture-auth/internal/redis"
	"github.com/JoelCodes/w6d4-lecture-auth/internal/users"
)

type Infra struct {
	Directory users.Directory
	Redis     *redis.Client
	cleanup   func() error
}

// setupInfra connects the backing stores. Postgres is optional: with
// no DATABASE_DSN the service runs on the seeded in-memory directory.
func setupInfra(ctx context.Context, cfg config.Config) (*Infra, error) {

	var (
		directory users.Directory
		cleanup   func() error
	)

	if cfg.DatabaseDSN != "" {
		sqlDB, err := db.Open(ctx, cfg.DatabaseDSN)
		if err != nil {
			return nil, err
		}

		if err := db.RunKeystoneMigration(ctx, sqlDB); err != nil {
			return nil, err
		}

		directory = users.NewPostgresDirectory(sqlDB)
		cleanup = sqlDB.Close

		logger.Info("database ready", nil)
	} else {
		seeded, err := users.SeedDirectory()
		if err != nil {
			return nil, err
		}

		directory = seeded

		logger.Info("seeded in-memory directory ready", nil)
	}

	redisClient, err := redis.New(cfg.RedisAddr, cfg.RedisPassword)
	if err != nil {
		return nil, err
	}

	logger.Info("redis ready", nil)

	return &Infra{
		Directory: directory,
		Redis:     redisClient,
		cleanup:   cleanup,
	}, nil
}
