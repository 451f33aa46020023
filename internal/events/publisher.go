// Package events publishes program lifecycle notifications on the event bus.
package events

import (
	"context"
	"fmt"
	"time"

	"fitsync/training-service/internal/config"

	goredis "github.com/redis/go-redis/v9"
)

// Publisher delivers a serialized event on a topic. Delivery is at most once.
type Publisher interface {
	Publish(ctx context.Context, topic string, payload []byte) error
}

// RedisPublisher publishes each event on the Redis channel named after its topic.
type RedisPublisher struct {
	rdb *goredis.Client
}

// NewRedisPublisher builds the client without dialing; go-redis connects lazily,
// so an unavailable broker only surfaces as publish errors.
func NewRedisPublisher(cfg config.RedisConfig) *RedisPublisher {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: 5 * time.Second,
	})
	return &RedisPublisher{rdb: rdb}
}

func (p *RedisPublisher) Ping(ctx context.Context) error {
	if err := p.rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	return nil
}

func (p *RedisPublisher) Publish(ctx context.Context, topic string, payload []byte) error {
	if p == nil || p.rdb == nil {
		return fmt.Errorf("redis publisher not initialized")
	}
	return p.rdb.Publish(ctx, topic, payload).Err()
}

func (p *RedisPublisher) Close() error {
	if p == nil || p.rdb == nil {
		return nil
	}
	return p.rdb.Close()
}
