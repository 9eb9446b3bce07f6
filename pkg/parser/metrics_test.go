package parser

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idevyatovsky-hpmd/haconfig/pkg/metrics"
)

func TestParseFromString_RecordsMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := metrics.NewParserMetrics(registry)
	p := New(WithMetrics(m))

	// Unique buffer so the first parse cannot hit the shared cache.
	config := "backend metrics-probe\n    server s1 10.9.9.9:80 check\n"

	_, err := p.ParseFromString(config)
	require.NoError(t, err)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ParsesTotal))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheMisses))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.CacheHits))

	_, err = p.ParseFromString(config)
	require.NoError(t, err)
	assert.Equal(t, 2.0, testutil.ToFloat64(m.ParsesTotal))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheHits))

	_, err = p.ParseFromString("")
	require.Error(t, err)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ParseErrors))
}
