// Package cache содержит Redis-реализацию списка отозванных токенов.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"notekeep/internal/config"
	"notekeep/internal/ports/services"
	"notekeep/pkg/logger"
)

// Константы для логирования.
const (
	LogMethodRevoke    = "Revoke"
	LogMethodIsRevoked = "IsRevoked"

	ErrorFailedToConnect = "failed to connect to redis"
	ErrorFailedToRevoke  = "failed to store revoked token in redis"
	ErrorFailedToCheck   = "failed to check token in redis"
	ErrorFailedToClose   = "failed to close redis connection"
)

// denylistKeyPrefix - префикс ключей отозванных токенов.
const denylistKeyPrefix = "denylist:"

// RedisDenylist реализует интерфейс services.TokenDenylist поверх Redis.
// Запись живет до естественного истечения срока токена и исчезает сама.
type RedisDenylist struct {
	client *redis.Client
}

// NewRedisDenylist создает новый список отозванных токенов.
func NewRedisDenylist(ctx context.Context, cfg *config.RedisConfig) (*RedisDenylist, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.GetAddress(),
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  cfg.ConnectTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdle,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrorFailedToConnect, err)
	}

	return &RedisDenylist{client: client}, nil
}

// Revoke помечает токен отозванным до указанного момента.
func (d *RedisDenylist) Revoke(ctx context.Context, tokenID string, until time.Time) error {
	log := logger.Log(ctx).With(zap.String("method", LogMethodRevoke), zap.String("tokenID", tokenID))

	ttl := time.Until(until)
	if ttl <= 0 {
		// Срок токена уже истек, отзывать нечего.
		return nil
	}

	if err := d.client.Set(ctx, denylistKeyPrefix+tokenID, "1", ttl).Err(); err != nil {
		log.Error(ctx, ErrorFailedToRevoke, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrorFailedToRevoke, err)
	}

	return nil
}

// IsRevoked сообщает, отозван ли токен.
func (d *RedisDenylist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	log := logger.Log(ctx).With(zap.String("method", LogMethodIsRevoked), zap.String("tokenID", tokenID))

	err := d.client.Get(ctx, denylistKeyPrefix+tokenID).Err()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		log.Error(ctx, ErrorFailedToCheck, zap.Error(err))
		return false, fmt.Errorf("%s: %w", ErrorFailedToCheck, err)
	}

	return true, nil
}

// Close закрывает соединение с Redis.
func (d *RedisDenylist) Close() error {
	if err := d.client.Close(); err != nil {
		return fmt.Errorf("%s: %w", ErrorFailedToClose, err)
	}
	return nil
}

// Проверка реализации интерфейса.
var _ services.TokenDenylist = (*RedisDenylist)(nil)
