package database

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/yourusername/quiz-srs/internal/config"
	apperrors "github.com/yourusername/quiz-srs/internal/pkg/errors"
)

const (
	redisModeSingle   = "single"
	redisModeSentinel = "sentinel"
	redisModeCluster  = "cluster"

	redisDialTimeout = 3 * time.Second
	redisPingTimeout = 5 * time.Second
)

// redisOptions собирает опции универсального клиента из конфигурации.
// Ошибка здесь — ошибка настройки, а не недоступность Redis.
func redisOptions(cfg config.RedisConfig) (*redis.UniversalOptions, string, error) {
	addresses := cfg.Addrs
	if len(addresses) == 0 {
		if cfg.Addr == "" {
			return nil, "", fmt.Errorf("redis configuration error: Addrs or Addr must be provided")
		}
		addresses = []string{cfg.Addr}
	}

	options := &redis.UniversalOptions{
		Addrs:       addresses,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: redisDialTimeout,
	}
	if cfg.MaxRetries != 0 {
		options.MaxRetries = cfg.MaxRetries
	}
	if cfg.MinRetryBackoff != 0 {
		options.MinRetryBackoff = time.Duration(cfg.MinRetryBackoff) * time.Millisecond
	}
	if cfg.MaxRetryBackoff != 0 {
		options.MaxRetryBackoff = time.Duration(cfg.MaxRetryBackoff) * time.Millisecond
	}

	mode := cfg.Mode
	if mode == "" {
		mode = redisModeSingle
	}
	switch mode {
	case redisModeSentinel:
		if cfg.MasterName == "" {
			return nil, "", fmt.Errorf("redis sentinel mode requires MasterName")
		}
		options.MasterName = cfg.MasterName
	case redisModeCluster:
	case redisModeSingle:
		// Несколько адресов без MasterName NewUniversalClient принял бы за кластер
		if len(addresses) > 1 {
			options.Addrs = addresses[:1]
		}
	default:
		return nil, "", fmt.Errorf("unsupported redis mode: %s", mode)
	}
	return options, mode, nil
}

// NewUniversalRedisClient создает клиент Redis (single, sentinel, cluster) и проверяет подключение.
// Недоступный сервер возвращается как ErrStoreUnavailable: вызывающий может работать без Redis.
func NewUniversalRedisClient(cfg config.RedisConfig) (redis.UniversalClient, error) {
	options, mode, err := redisOptions(cfg)
	if err != nil {
		return nil, err
	}

	var client redis.UniversalClient
	if mode == redisModeCluster {
		// Кластер и с одним адресом-затравкой
		client = redis.NewClusterClient(options.Cluster())
	} else {
		client = redis.NewUniversalClient(options)
	}

	ctx, cancel := context.WithTimeout(context.Background(), redisPingTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis (mode: %s, addrs: %v): %w: %v", mode, options.Addrs, apperrors.ErrStoreUnavailable, err)
	}
	return client, nil
}
