package pcache

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var cacheStatsGauge = promauto.NewGaugeVec(prometheus.GaugeOpts{
	Name: "pcache_ratio",
	Help: "Lifetime hits/misses of the parse cache",
}, []string{"metric", "name"})

func RecordStats(name string, p PCache) {
	m := p.Cache.Metrics
	cacheStatsGauge.WithLabelValues("hits", name).Set(float64(m.Hits()))
	cacheStatsGauge.WithLabelValues("misses", name).Set(float64(m.Misses()))
	cacheStatsGauge.WithLabelValues("ratio", name).Set(m.Ratio())

	cacheStatsGauge.WithLabelValues("sets_dropped", name).Set(float64(m.SetsDropped()))
	cacheStatsGauge.WithLabelValues("sets_rejected", name).Set(float64(m.SetsRejected()))
	cacheStatsGauge.WithLabelValues("gets_dropped", name).Set(float64(m.GetsDropped()))
	cacheStatsGauge.WithLabelValues("keys_evicted", name).Set(float64(m.KeysEvicted()))
}

// ReportStats calls RecordStats every interval until ctx is done.
func ReportStats(ctx context.Context, name string, p PCache, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			RecordStats(name, p)
		}
	}
}
