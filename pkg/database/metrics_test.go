package database

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Collect needs a live pool, but Describe only touches descriptors, so the
// descriptor shape is testable without a database.
func describeAll(c *PoolStatsCollector) []*prometheus.Desc {
	ch := make(chan *prometheus.Desc, 16)
	c.Describe(ch)
	close(ch)

	descs := make([]*prometheus.Desc, 0, 16)
	for d := range ch {
		descs = append(descs, d)
	}
	return descs
}

func TestPoolStatsCollector_ImplementsCollector(t *testing.T) {
	var _ prometheus.Collector = NewPoolStatsCollector(nil, "catalog-api")
}

func TestPoolStatsCollector_DescribeCoversAllPoolStats(t *testing.T) {
	c := NewPoolStatsCollector(nil, "catalog-api")
	require.NotNil(t, c)

	descs := describeAll(c)
	assert.Len(t, descs, 12)

	expected := []string{
		"db_pool_acquired_connections",
		"db_pool_idle_connections",
		"db_pool_total_connections",
		"db_pool_max_connections",
		"db_pool_constructing_connections",
		"db_pool_acquire_count_total",
		"db_pool_acquire_duration_seconds_total",
		"db_pool_canceled_acquire_count_total",
		"db_pool_empty_acquire_count_total",
		"db_pool_new_connections_total",
		"db_pool_max_lifetime_destroy_total",
		"db_pool_max_idle_destroy_total",
	}

	for _, name := range expected {
		found := false
		for _, d := range descs {
			if strings.Contains(d.String(), name) {
				found = true
				break
			}
		}
		assert.True(t, found, "missing descriptor %q", name)
	}
}

func TestPoolStatsCollector_DescriptorsCarryServiceLabel(t *testing.T) {
	for _, d := range describeAll(NewPoolStatsCollector(nil, "catalog-api")) {
		assert.Contains(t, d.String(), "service", "descriptor %s lacks the service label", d)
	}
}
