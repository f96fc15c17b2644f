package metrics

import (
	"database/sql"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func TestNewRegistersCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.CacheRequests.WithLabelValues(CacheHit).Inc()
	m.CacheRequests.WithLabelValues(CacheHit).Inc()
	m.StorageErrors.WithLabelValues("list users").Inc()

	require.Equal(t, 2.0, testutil.ToFloat64(m.CacheRequests.WithLabelValues(CacheHit)))
	require.Equal(t, 1.0, testutil.ToFloat64(m.StorageErrors.WithLabelValues("list users")))

	families, err := reg.Gather()
	require.NoError(t, err)
	names := map[string]bool{}
	for _, f := range families {
		names[f.GetName()] = true
	}
	require.True(t, names["filmorate_ranking_cache_requests_total"])
	require.True(t, names["filmorate_storage_errors_total"])
	require.True(t, names["go_goroutines"])
}

func TestRegisterDBStats(t *testing.T) {
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	defer db.Close()

	reg := prometheus.NewRegistry()
	require.NoError(t, RegisterDBStats(reg, db, "filmorate"))
	require.Error(t, RegisterDBStats(reg, db, "filmorate"), "duplicate registration")

	count, err := testutil.GatherAndCount(reg, "go_sql_open_connections")
	require.NoError(t, err)
	require.Equal(t, 1, count)
}
