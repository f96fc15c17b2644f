package redis

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"filmorate/internal/metrics"
)

func newCounter() *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{Name: "test_cache_requests_total"}, []string{"result"})
}

func TestKey(t *testing.T) {
	require.Equal(t, "filmorate:popular:0:10", key(0, 10))
	require.Equal(t, "filmorate:popular:7:3", key(7, 3))
}

func TestNewRankingCacheDefaultTTL(t *testing.T) {
	c := NewRankingCache(goredis.NewClient(&goredis.Options{Addr: "127.0.0.1:1"}), 0, nil)
	require.Equal(t, DefaultTTL, c.ttl)
}

func TestUnreachableServerReportsErrors(t *testing.T) {
	client := goredis.NewClient(&goredis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 200 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()
	requests := newCounter()
	c := NewRankingCache(client, time.Minute, requests)
	ctx := context.Background()

	_, ok, err := c.PopularIDs(ctx, 0, 10)
	require.Error(t, err)
	require.False(t, ok)
	require.Equal(t, 1.0, testutil.ToFloat64(requests.WithLabelValues(metrics.CacheError)))

	_, err = c.Generation(ctx)
	require.Error(t, err)
	require.Equal(t, 2.0, testutil.ToFloat64(requests.WithLabelValues(metrics.CacheError)))

	require.Error(t, c.SetPopularIDs(ctx, 0, 10, []int64{1}))
	require.Error(t, c.InvalidatePopular(ctx))

	_, err = Connect(ctx, Config{Addr: "127.0.0.1:1"})
	require.Error(t, err)
}

// Run locally:
//   GO_TEST_INTEGRATION=1 go test ./internal/adapter/redis -v -count=1

func startRedis(t *testing.T) *goredis.Client {
	t.Helper()
	if os.Getenv("GO_TEST_INTEGRATION") == "" {
		t.Skip("integration tests are disabled (set GO_TEST_INTEGRATION=1)")
	}

	ctx := context.Background()
	req := tc.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForListeningPort("6379/tcp").WithStartupTimeout(60 * time.Second),
	}
	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{ContainerRequest: req, Started: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Terminate(context.Background()) })

	host, err := c.Host(ctx)
	require.NoError(t, err)
	port, err := c.MappedPort(ctx, "6379/tcp")
	require.NoError(t, err)

	client, err := Connect(ctx, Config{Addr: fmt.Sprintf("%s:%s", host, port.Port())})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestIntegration_RankingCache(t *testing.T) {
	client := startRedis(t)
	requests := newCounter()
	c := NewRankingCache(client, time.Minute, requests)
	ctx := context.Background()

	gen, err := c.Generation(ctx)
	require.NoError(t, err)
	require.Zero(t, gen)

	_, ok, err := c.PopularIDs(ctx, gen, 10)
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, c.SetPopularIDs(ctx, gen, 10, []int64{3, 1, 2}))
	require.NoError(t, c.SetPopularIDs(ctx, gen, 2, nil))

	ids, ok, err := c.PopularIDs(ctx, gen, 10)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []int64{3, 1, 2}, ids)

	ids, ok, err = c.PopularIDs(ctx, gen, 2)
	require.NoError(t, err)
	require.True(t, ok)
	require.Empty(t, ids)

	ttl, err := client.TTL(ctx, key(gen, 10)).Result()
	require.NoError(t, err)
	require.Greater(t, ttl, time.Duration(0))

	require.NoError(t, c.InvalidatePopular(ctx))
	next, err := c.Generation(ctx)
	require.NoError(t, err)
	require.Equal(t, gen+1, next)

	_, ok, err = c.PopularIDs(ctx, next, 10)
	require.NoError(t, err)
	require.False(t, ok)

	// A ranking computed before the invalidation and written after it is
	// stored under the old generation and never served.
	require.NoError(t, c.SetPopularIDs(ctx, gen, 10, []int64{1, 2, 3}))
	_, ok, err = c.PopularIDs(ctx, next, 10)
	require.NoError(t, err)
	require.False(t, ok)

	require.Equal(t, 2.0, testutil.ToFloat64(requests.WithLabelValues(metrics.CacheHit)))
	require.Equal(t, 3.0, testutil.ToFloat64(requests.WithLabelValues(metrics.CacheMiss)))
}
