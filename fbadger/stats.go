package fbadger

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var cache_stats = promauto.NewGaugeVec(prometheus.GaugeOpts{
	Name: "badger_cache_stats",
	Help: "Stats about Badger cache",
}, []string{"metric"})

var size_stats = promauto.NewGaugeVec(prometheus.GaugeOpts{
	Name: "badger_size_bytes",
	Help: "Size of the LSM tree and value log of Badger",
}, []string{"component"})

func RecordBadgerStats(db DB) {
	lsm, vlog := db.Size()
	size_stats.WithLabelValues("lsm").Set(float64(lsm))
	size_stats.WithLabelValues("vlog").Set(float64(vlog))

	// caches are nil (and metrics with them) when badger runs without a block cache
	if blockMetrics := db.BlockCacheMetrics(); blockMetrics != nil {
		cache_stats.WithLabelValues("block:hits").Set(float64(blockMetrics.Hits()))
		cache_stats.WithLabelValues("block:misses").Set(float64(blockMetrics.Misses()))
		cache_stats.WithLabelValues("block:keys_evicted").Set(float64(blockMetrics.KeysEvicted()))
		cache_stats.WithLabelValues("block:ratio").Set(blockMetrics.Ratio())
	}
	if indexMetrics := db.IndexCacheMetrics(); indexMetrics != nil {
		cache_stats.WithLabelValues("index:hits").Set(float64(indexMetrics.Hits()))
		cache_stats.WithLabelValues("index:misses").Set(float64(indexMetrics.Misses()))
		cache_stats.WithLabelValues("index:keys_evicted").Set(float64(indexMetrics.KeysEvicted()))
		cache_stats.WithLabelValues("index:ratio").Set(indexMetrics.Ratio())
	}
}
