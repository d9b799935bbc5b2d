// Package test builds fully wired instances for tests of the services.
package test

import (
	"testing"
	"time"

	"simpl/engine"
	"simpl/fbadger"
	"simpl/instance"
	"simpl/pcache"
	"simpl/resource"
	"simpl/session"

	"github.com/samber/mo"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// Instance returns an instance with an in-memory session store and a small
// parse cache. Both are closed when the test finishes.
func Instance(t *testing.T) instance.Instance {
	logger := zap.NewNop()
	cache, err := pcache.NewPCache(1<<20, 1<<8, time.Minute)
	require.NoError(t, err)
	conf := fbadger.Config{
		Opts:  fbadger.Options(""),
		Scope: resource.NewInstanceScope(1),
	}
	db, err := conf.Materialize()
	require.NoError(t, err)
	t.Cleanup(func() {
		cache.Close()
		_ = db.Close()
	})
	return instance.Instance{
		ID:       1,
		Logger:   logger,
		Executor: engine.NewExecutor(mo.Some(cache), logger),
		PCache:   cache,
		Sessions: session.NewStore(db.(fbadger.DB), time.Hour, logger),
	}
}
