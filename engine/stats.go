package engine

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/atomic"
)

type Stats struct {
	Runs      atomic.Uint64
	Compiles  atomic.Uint64
	Failures  atomic.Uint64
	CacheHits atomic.Uint64
}

var stats = promauto.NewGaugeVec(prometheus.GaugeOpts{
	Name: "engine_stats",
	Help: "Lifetime counts of programs handled by the engine",
}, []string{"metric"})

func (s *Stats) Record() {
	stats.WithLabelValues("runs").Set(float64(s.Runs.Load()))
	stats.WithLabelValues("compiles").Set(float64(s.Compiles.Load()))
	stats.WithLabelValues("failures").Set(float64(s.Failures.Load()))
	stats.WithLabelValues("cache_hits").Set(float64(s.CacheHits.Load()))
}

// ReportStats records the stats every interval until ctx is done.
func (s *Stats) ReportStats(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Record()
		}
	}
}
