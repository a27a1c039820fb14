package utils

import (
	"context"
	"fmt"
	"time"

	"bookly/config"

	"github.com/go-redis/redis/v8"
)

// CacheClient backs the availability read-through cache.
var CacheClient *redis.Client

// NewRedisClient connects to the configured Redis server on db and pings it.
func NewRedisClient(db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       db,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis db %d: %w", db, err)
	}
	return client, nil
}

// InitCache initializes the cache client on REDIS_CACHE_DB.
func InitCache() error {
	client, err := NewRedisClient(config.AppConfig.RedisCacheDB)
	if err != nil {
		return err
	}
	CacheClient = client
	return nil
}
