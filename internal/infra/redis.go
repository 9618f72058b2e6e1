package infra

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"edupath/internal/config"
	mem "edupath/pkg/memcache"
)

const keyPrefix = "edupath:"

// NewTTLStore returns a redis-backed store when an address is configured,
// and a process-local one otherwise.
func NewTTLStore(ctx context.Context, conf config.RedisConfig, log *zap.Logger) (mem.TTLStore, func() error, error) {
	if conf.Addr == "" {
		log.Info("Redis not configured, using in-memory TTL store")
		return mem.NewMemoryStore(), func() error { return nil }, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     conf.Addr,
		Password: conf.Password,
		DB:       conf.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("redis ping %s: %w", conf.Addr, err)
	}

	log.Info("Connected to redis", zap.String("addr", conf.Addr))
	return mem.NewRedisStore(client, keyPrefix), client.Close, nil
}
