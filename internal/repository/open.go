package repository

import (
	"context"
	"fmt"

	"github.com/segyhp/debt-ledger/internal/config"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
)

// CloseFunc releases the connections opened for a store
type CloseFunc func(ctx context.Context) error

func noopClose(context.Context) error { return nil }

// Open builds the store selected by STORAGE_BACKEND
func Open(ctx context.Context, cfg *config.Config) (Store, CloseFunc, error) {
	switch cfg.Storage.Backend {
	case config.BackendMemory:
		return NewLedgerStore(NewMemoryBlob()), noopClose, nil

	case config.BackendFile:
		blob, err := NewFileBlob(cfg.Storage.LedgerFile)
		if err != nil {
			return nil, nil, err
		}
		return NewLedgerStore(blob), noopClose, nil

	case config.BackendRedis:
		client := NewRedisClient(cfg)
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		return NewLedgerStore(NewRedisBlob(client, cfg.Storage.RedisKey)), func(context.Context) error {
			return client.Close()
		}, nil

	case config.BackendPostgres:
		db, err := NewPostgresDB(cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		return NewPostgresStore(db), func(context.Context) error {
			return db.Close()
		}, nil

	case config.BackendMongo:
		conn, err := ConnectMongo(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to mongo: %w", err)
		}
		return NewMongoStore(conn.Database.Collection(cfg.Mongo.Collection)), conn.Close, nil
	}

	return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
}

func NewPostgresDB(cfg *config.Config) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", cfg.Database.URL)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	return db, nil
}

func NewRedisClient(cfg *config.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
}
