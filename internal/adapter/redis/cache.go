// Package redis caches popularity rankings in Redis.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	goredis "github.com/redis/go-redis/v9"

	"filmorate/internal/domain"
	"filmorate/internal/metrics"
)

// DefaultTTL bounds how long a ranking survives a missed invalidation.
const DefaultTTL = time.Minute

const (
	keyPrefix     = "filmorate:popular:"
	generationKey = keyPrefix + "generation"
)

// Config holds the connection settings.
type Config struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// Connect creates a client and pings the server.
func Connect(ctx context.Context, cfg Config) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	return client, nil
}

// RankingCache implements domain.RankingCache. The current generation is a
// counter key; each ranking is a key per generation and size holding a JSON
// array of film ids. Rankings of past generations are never read again and
// expire with their TTL.
type RankingCache struct {
	client   goredis.UniversalClient
	ttl      time.Duration
	requests *prometheus.CounterVec
}

var _ domain.RankingCache = (*RankingCache)(nil)

// NewRankingCache wraps client. requests may be nil.
func NewRankingCache(client goredis.UniversalClient, ttl time.Duration, requests *prometheus.CounterVec) *RankingCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RankingCache{client: client, ttl: ttl, requests: requests}
}

func key(gen uint64, count int) string {
	return keyPrefix + strconv.FormatUint(gen, 10) + ":" + strconv.Itoa(count)
}

// Generation returns the current generation, zero before the first invalidation.
func (c *RankingCache) Generation(ctx context.Context) (uint64, error) {
	gen, err := c.client.Get(ctx, generationKey).Uint64()
	if errors.Is(err, goredis.Nil) {
		return 0, nil
	}
	if err != nil {
		c.observe(metrics.CacheError)
		return 0, fmt.Errorf("get ranking generation: %w", err)
	}
	return gen, nil
}

// PopularIDs returns the ranking cached for count in gen.
func (c *RankingCache) PopularIDs(ctx context.Context, gen uint64, count int) ([]int64, bool, error) {
	raw, err := c.client.Get(ctx, key(gen, count)).Bytes()
	if errors.Is(err, goredis.Nil) {
		c.observe(metrics.CacheMiss)
		return nil, false, nil
	}
	if err != nil {
		c.observe(metrics.CacheError)
		return nil, false, fmt.Errorf("get ranking: %w", err)
	}
	var ids []int64
	if err := json.Unmarshal(raw, &ids); err != nil {
		c.observe(metrics.CacheError)
		return nil, false, fmt.Errorf("decode ranking: %w", err)
	}
	c.observe(metrics.CacheHit)
	return ids, true, nil
}

// SetPopularIDs stores the ranking for count in gen.
func (c *RankingCache) SetPopularIDs(ctx context.Context, gen uint64, count int, ids []int64) error {
	if ids == nil {
		ids = []int64{}
	}
	raw, err := json.Marshal(ids)
	if err != nil {
		return err
	}
	if err := c.client.Set(ctx, key(gen, count), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("set ranking: %w", err)
	}
	return nil
}

// InvalidatePopular starts a new generation.
func (c *RankingCache) InvalidatePopular(ctx context.Context) error {
	if err := c.client.Incr(ctx, generationKey).Err(); err != nil {
		return fmt.Errorf("advance ranking generation: %w", err)
	}
	return nil
}

func (c *RankingCache) observe(result string) {
	if c.requests != nil {
		c.requests.WithLabelValues(result).Inc()
	}
}
