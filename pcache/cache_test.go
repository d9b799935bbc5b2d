package pcache

import (
	"testing"
	"time"

	"simpl/engine/ast"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPCache_Get(t *testing.T) {
	cache, err := NewPCache(1<<10, 1<<4, 0)
	require.NoError(t, err)
	defer cache.Close()

	source := "result := 1"
	program := ast.Assign{Name: "result", Value: ast.Num{Value: 1}}

	// initially, should get nothing as this source was not set
	_, ok := cache.Get(source)
	assert.False(t, ok)

	assert.True(t, cache.Set(source, program))
	cache.Wait()

	found, ok := cache.Get(source)
	assert.True(t, ok)
	assert.Equal(t, program, found)

	// a different source misses even though the cache is warm
	_, ok = cache.Get("result := 2")
	assert.False(t, ok)
}

func TestPCache_TTL(t *testing.T) {
	cache, err := NewPCache(1<<10, 1<<4, 5*time.Second)
	require.NoError(t, err)
	defer cache.Close()

	source := "skip"
	assert.True(t, cache.Set(source, ast.Skip{}))
	cache.Wait()

	// can get its ttl, should be less or equal to initial ttl
	ttl, ok := cache.GetTTL(source)
	assert.True(t, ok)
	assert.LessOrEqual(t, ttl, 5*time.Second)
}

func TestPCache_IgnoresCollidingSource(t *testing.T) {
	cache, err := NewPCache(1<<10, 1<<4, 0)
	require.NoError(t, err)
	defer cache.Close()

	// plant an entry under the key of one source that claims another
	cache.Cache.Set(key("a := 1"), entry{source: "b := 1", program: ast.Skip{}}, 1)
	cache.Wait()
	_, ok := cache.Get("a := 1")
	assert.False(t, ok)
}

func TestRecordStats(t *testing.T) {
	cache, err := NewPCache(1<<10, 1<<4, 0)
	require.NoError(t, err)
	defer cache.Close()

	cache.Get("miss")
	RecordStats("test", cache)
	assert.Equal(t, float64(1), testutil.ToFloat64(cacheStatsGauge.WithLabelValues("misses", "test")))
}
