// Package cache keeps the public booked-slot projection of each store.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/BruksfildServices01/store-scheduler/internal/dto"
)

// Lookup is one cache read. On a miss Gen is the generation a refill must
// present to Set.
type Lookup struct {
	Slots []dto.BookedSlotDTO
	Hit   bool
	Gen   int64
}

// BookedCache stores the rendered booked-slot list per store.
// Invalidate bumps the store's generation, and Set skips the write when the
// generation moved since the Get that produced gen, so a refill computed
// before an invalidation never lands.
type BookedCache interface {
	Get(ctx context.Context, storeID uint) (Lookup, error)
	Set(ctx context.Context, storeID uint, gen int64, slots []dto.BookedSlotDTO) error
	Invalidate(ctx context.Context, storeID uint) error
}

func bookedKey(storeID uint) string {
	return fmt.Sprintf("booked:store:%d", storeID)
}

func generationKey(storeID uint) string {
	return fmt.Sprintf("booked:store:%d:gen", storeID)
}

type RedisBookedCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisBookedCache(rdb *redis.Client, ttl time.Duration) *RedisBookedCache {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &RedisBookedCache{rdb: rdb, ttl: ttl}
}

func (c *RedisBookedCache) Get(ctx context.Context, storeID uint) (Lookup, error) {
	vals, err := c.rdb.MGet(ctx, bookedKey(storeID), generationKey(storeID)).Result()
	if err != nil {
		return Lookup{}, err
	}

	gen, err := parseGeneration(vals[1])
	if err != nil {
		return Lookup{}, err
	}

	raw, ok := vals[0].(string)
	if !ok {
		return Lookup{Gen: gen}, nil
	}

	var slots []dto.BookedSlotDTO
	if err := json.Unmarshal([]byte(raw), &slots); err != nil {
		return Lookup{Gen: gen}, fmt.Errorf("decode booked cache: %w", err)
	}
	return Lookup{Slots: slots, Hit: true, Gen: gen}, nil
}

func (c *RedisBookedCache) Set(ctx context.Context, storeID uint, gen int64, slots []dto.BookedSlotDTO) error {
	raw, err := json.Marshal(slots)
	if err != nil {
		return err
	}

	genKey := generationKey(storeID)
	err = c.rdb.Watch(ctx, func(tx *redis.Tx) error {
		cur, err := tx.Get(ctx, genKey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if cur != gen {
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(p redis.Pipeliner) error {
			p.Set(ctx, bookedKey(storeID), raw, c.ttl)
			return nil
		})
		return err
	}, genKey)

	// an invalidation slipped in between WATCH and EXEC
	if errors.Is(err, redis.TxFailedErr) {
		return nil
	}
	return err
}

func (c *RedisBookedCache) Invalidate(ctx context.Context, storeID uint) error {
	_, err := c.rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Incr(ctx, generationKey(storeID))
		p.Del(ctx, bookedKey(storeID))
		return nil
	})
	return err
}

func parseGeneration(v interface{}) (int64, error) {
	s, ok := v.(string)
	if !ok {
		return 0, nil
	}
	gen, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("decode booked generation: %w", err)
	}
	return gen, nil
}

// Nop never hits; used when no Redis is configured.
type Nop struct{}

func (Nop) Get(context.Context, uint) (Lookup, error)                    { return Lookup{}, nil }
func (Nop) Set(context.Context, uint, int64, []dto.BookedSlotDTO) error { return nil }
func (Nop) Invalidate(context.Context, uint) error                      { return nil }

// New connects to url and pings it. An empty url yields Nop.
func New(ctx context.Context, url string, ttl time.Duration) (BookedCache, func() error, error) {
	if url == "" {
		return Nop{}, func() error { return nil }, nil
	}

	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, nil, fmt.Errorf("parse REDIS_URL: %w", err)
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, nil, fmt.Errorf("redis ping: %w", err)
	}
	return NewRedisBookedCache(rdb, ttl), rdb.Close, nil
}

var (
	_ BookedCache = (*RedisBookedCache)(nil)
	_ BookedCache = Nop{}
)
