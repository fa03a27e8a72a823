package redis

import (
	"context"
	"errors"
	"time"

	"placementhub-backend/internal/domain"

	goredis "github.com/redis/go-redis/v9"
)

const prepKeyPrefix = "prep:"

type prepCache struct {
	client *goredis.Client
}

// NewPrepCache stores generated prep content in Redis. With a nil client
// every lookup misses and writes are dropped.
func NewPrepCache(client *goredis.Client) domain.PrepCache {
	if client == nil {
		return nopCache{}
	}
	return &prepCache{client: client}
}

func (p *prepCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := p.client.Get(ctx, prepKeyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return val, true, nil
}

func (p *prepCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return p.client.Set(ctx, prepKeyPrefix+key, value, ttl).Err()
}

type nopCache struct{}

func (nopCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }

func (nopCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
