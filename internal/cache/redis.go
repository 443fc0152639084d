// Package cache keeps a read-through copy of the vaccine catalog in Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/CdtaAq/Vaccine-Ticketing-System/internal/models"

	"github.com/go-redis/redis/v8"
)

const (
	vaccinesKey    = "vaccine-api:vaccines"
	vaccinesGenKey = "vaccine-api:vaccines:gen"
)

// ErrStale is returned by SetVaccines when the catalog was invalidated after
// the caller's read.
var ErrStale = errors.New("vaccine cache generation changed")

type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedis connects lazily; the first command reports an unreachable server.
func NewRedis(url string, ttl time.Duration) (*Redis, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	return &Redis{client: redis.NewClient(opts), ttl: ttl}, nil
}

func newRedisWithOptions(opts *redis.Options, ttl time.Duration) *Redis {
	return &Redis{client: redis.NewClient(opts), ttl: ttl}
}

// GetVaccines returns the cached list and the current generation; ok is false
// on a miss. Pass gen to SetVaccines when filling the miss.
func (c *Redis) GetVaccines(ctx context.Context) (v []models.Vaccine, gen int64, ok bool, err error) {
	vals, err := c.client.MGet(ctx, vaccinesGenKey, vaccinesKey).Result()
	if err != nil {
		return nil, 0, false, err
	}
	if s, isStr := vals[0].(string); isStr {
		if gen, err = strconv.ParseInt(s, 10, 64); err != nil {
			return nil, 0, false, err
		}
	}
	raw, isStr := vals[1].(string)
	if !isStr {
		return nil, gen, false, nil
	}
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return nil, gen, false, err
	}
	return v, gen, true, nil
}

// SetVaccines stores v only if no invalidation happened since the read that
// returned gen; otherwise it returns ErrStale.
func (c *Redis) SetVaccines(ctx context.Context, gen int64, v []models.Vaccine) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		cur, err := tx.Get(ctx, vaccinesGenKey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if cur != gen {
			return ErrStale
		}
		_, err = tx.TxPipelined(ctx, func(p redis.Pipeliner) error {
			p.Set(ctx, vaccinesKey, raw, c.ttl)
			return nil
		})
		return err
	}, vaccinesGenKey)
	if errors.Is(err, redis.TxFailedErr) {
		return ErrStale
	}
	return err
}

// InvalidateVaccines drops the list and bumps the generation so in-flight
// fills started before it are discarded.
func (c *Redis) InvalidateVaccines(ctx context.Context) error {
	_, err := c.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Incr(ctx, vaccinesGenKey)
		p.Del(ctx, vaccinesKey)
		return nil
	})
	return err
}

func (c *Redis) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *Redis) Close() error {
	return c.client.Close()
}
