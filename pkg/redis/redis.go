package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sweetcrumb/cakeshop-backend/config"
	"github.com/sweetcrumb/cakeshop-backend/pkg/logger"
)

var client *redis.Client

// Init initializes the Redis connection
func Init(cfg *config.RedisConfig) error {
	logger.Info("Initializing Redis connection", map[string]interface{}{
		"host": cfg.Host,
		"port": cfg.Port,
		"db":   cfg.DB,
	})

	client = redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Error("Failed to connect to Redis", err, map[string]interface{}{
			"host": cfg.Host,
			"port": cfg.Port,
		})
		client = nil
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info("Redis connection established successfully", nil)
	return nil
}

// GetClient returns the Redis client instance, nil when Redis is not configured
func GetClient() *redis.Client {
	return client
}

// Close closes the Redis connection
func Close() error {
	if client != nil {
		logger.Info("Closing Redis connection", nil)
		return client.Close()
	}
	return nil
}

// BlacklistToken marks a token as revoked until its natural expiry
func BlacklistToken(ctx context.Context, token string, expiry time.Duration) error {
	if client == nil {
		return nil
	}
	return client.Set(ctx, blacklistKey(token), "1", expiry).Err()
}

// IsTokenBlacklisted reports whether a token has been revoked.
// Redis being unavailable is treated as not blacklisted.
func IsTokenBlacklisted(ctx context.Context, token string) bool {
	if client == nil {
		return false
	}
	exists, err := client.Exists(ctx, blacklistKey(token)).Result()
	if err != nil {
		logger.Warn("Failed to check token blacklist", map[string]interface{}{
			"error": err.Error(),
		})
		return false
	}
	return exists > 0
}

func blacklistKey(token string) string {
	return "auth:blacklist:" + token
}

// CacheGet reads a cached value; ok is false on miss or when Redis is down
func CacheGet(ctx context.Context, key string) (string, bool) {
	if client == nil {
		return "", false
	}
	val, err := client.Get(ctx, key).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

// CacheSet stores a value with a TTL; errors are logged, not returned
func CacheSet(ctx context.Context, key, value string, ttl time.Duration) {
	if client == nil {
		return
	}
	if err := client.Set(ctx, key, value, ttl).Err(); err != nil {
		logger.Warn("Failed to write cache entry", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
	}
}

// CacheDelete drops a cached value
func CacheDelete(ctx context.Context, key string) {
	if client == nil {
		return
	}
	if err := client.Del(ctx, key).Err(); err != nil {
		logger.Warn("Failed to delete cache entry", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
	}
}
