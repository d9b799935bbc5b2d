package pcache

import (
	"time"

	"simpl/engine/ast"

	"github.com/cespare/xxhash/v2"
	"github.com/dgraph-io/ristretto"
)

type entry struct {
	source  string
	program ast.Stmt
}

// PCache is an in-process cache of parsed programs. Entries are keyed by the
// xxhash of the source text; the text itself is kept to rule out collisions.
// Cached trees are immutable and may be evaluated concurrently.
type PCache struct {
	Cache *ristretto.Cache
	ttl   time.Duration
}

// NewPCache creates a new instance of PCache. Cost is measured in bytes of
// source. A zero ttl keeps entries until they are evicted.
// https://pkg.go.dev/github.com/dgraph-io/ristretto#Config
func NewPCache(maxCost int64, averageItemCost int64, ttl time.Duration) (PCache, error) {
	expectedMaxItems := maxCost / averageItemCost
	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 10 * expectedMaxItems,
		MaxCost:     maxCost,
		// Ristretto recommends BufferItems as `64`, but we have noticed a large number of sets being dropped,
		// therefore we set this value as `1024`
		BufferItems: 1 << 10,
		Metrics:     true,
	})
	if err != nil {
		return PCache{}, err
	}
	return PCache{
		Cache: cache,
		ttl:   ttl,
	}, nil
}

func key(source string) uint64 {
	return xxhash.Sum64String(source)
}

// Set is asynchronous: the program becomes visible to Get once the cache's
// buffers are drained (see Wait). It returns false if the set was dropped.
func (pc PCache) Set(source string, program ast.Stmt) bool {
	return pc.Cache.SetWithTTL(key(source), entry{source: source, program: program}, int64(len(source))+1, pc.ttl)
}

func (pc PCache) Get(source string) (ast.Stmt, bool) {
	v, ok := pc.Cache.Get(key(source))
	if !ok {
		return nil, false
	}
	e, ok := v.(entry)
	if !ok || e.source != source {
		return nil, false
	}
	return e.program, true
}

func (pc PCache) GetTTL(source string) (time.Duration, bool) {
	return pc.Cache.GetTTL(key(source))
}

func (pc PCache) Wait() {
	pc.Cache.Wait()
}

func (pc PCache) Close() {
	pc.Cache.Close()
}
