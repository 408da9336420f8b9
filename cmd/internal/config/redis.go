package config

import (
	"context"
	"time"

	"meety/cmd/internal/lock"

	"github.com/labstack/gommon/log"
	"github.com/redis/go-redis/v9"
)

// NewRedisClient returns nil when no address is configured or the server
// does not answer a ping, so callers can fall back to running unlocked.
func NewRedisClient(cfg *Config) *redis.Client {
	if cfg.RedisAddr == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Warnf("redis at %s unreachable, booking lock disabled: %v", cfg.RedisAddr, err)
		_ = client.Close()
		return nil
	}
	return client
}

func NewLocker(cfg *Config) lock.Locker {
	rdb := NewRedisClient(cfg)
	if rdb == nil {
		return lock.Noop{}
	}
	return lock.NewRedisLocker(rdb, cfg.LockTTL, cfg.LockWait)
}
