package cache

import (
	"context"
	"encoding/json"
	"errors"
	"sync/atomic"
	"time"

	"campus-jobs/internal/config"
	"campus-jobs/internal/pkg/logger"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const defaultTTL = 10 * time.Minute

// Redis is a JSON cache that degrades to a no-op when the server cannot be
// reached: reads miss and writes succeed silently.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
	log    *zap.Logger

	warnedUnavailable atomic.Bool
}

func NewRedis(ctx context.Context, cfg config.RedisConfig, log *zap.Logger) *Redis {
	log = logger.OrNop(log).Named("cache")
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		log.Warn("redis unavailable, bypassing cache", zap.String("addr", cfg.Addr()), zap.Error(err))
		_ = client.Close()
		return &Redis{ttl: cfg.TTL, log: log}
	}

	return NewRedisWithClient(client, cfg.TTL, log)
}

func NewRedisWithClient(client *redis.Client, ttl time.Duration, log *zap.Logger) *Redis {
	return &Redis{client: client, ttl: ttl, log: logger.OrNop(log)}
}

func (r *Redis) isUnavailable() bool {
	return r == nil || r.client == nil
}

func (r *Redis) warnUnavailableOnce(err error) {
	if r.warnedUnavailable.CompareAndSwap(false, true) {
		r.log.Warn("redis command failed, cache degraded", zap.Error(err))
	}
}

// Enabled reports whether a server was reachable at startup.
func (r *Redis) Enabled() bool {
	return !r.isUnavailable()
}

func (r *Redis) Ping(ctx context.Context) error {
	if r.isUnavailable() {
		return errors.New("redis unavailable")
	}
	return r.client.Ping(ctx).Err()
}

func (r *Redis) Close() error {
	if r.isUnavailable() {
		return nil
	}
	return r.client.Close()
}

func (r *Redis) TTL() time.Duration {
	if r == nil || r.ttl <= 0 {
		return defaultTTL
	}
	return r.ttl
}

func (r *Redis) GetJSON(ctx context.Context, key string, out any) (bool, error) {
	if r.isUnavailable() {
		return false, nil
	}
	b, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		r.warnUnavailableOnce(err)
		return false, err
	}
	if len(b) == 0 {
		return false, nil
	}
	if err := json.Unmarshal(b, out); err != nil {
		return false, err
	}
	return true, nil
}

// SetJSON stores value under key; a non-positive ttl uses the configured one.
func (r *Redis) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	if r.isUnavailable() {
		return nil
	}
	if ttl <= 0 {
		ttl = r.TTL()
	}
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, key, b, ttl).Err(); err != nil {
		r.warnUnavailableOnce(err)
		return err
	}
	return nil
}

// GetInt reads a counter; a missing key reads as zero.
func (r *Redis) GetInt(ctx context.Context, key string) (int64, error) {
	if r.isUnavailable() {
		return 0, nil
	}
	n, err := r.client.Get(ctx, key).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		r.warnUnavailableOnce(err)
		return 0, err
	}
	return n, nil
}

func (r *Redis) Incr(ctx context.Context, key string) (int64, error) {
	if r.isUnavailable() {
		return 0, nil
	}
	n, err := r.client.Incr(ctx, key).Result()
	if err != nil {
		r.warnUnavailableOnce(err)
		return 0, err
	}
	return n, nil
}
