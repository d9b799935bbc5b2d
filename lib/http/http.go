package http

import (
	"math/rand"
	"net/http"
	"time"

	"simpl/lib/timer"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

func TimeoutMiddleware(timeout time.Duration) mux.MiddlewareFunc {
	return func(h http.Handler) http.Handler {
		return http.TimeoutHandler(h, timeout, "server timed out")
	}
}

// RateLimitingMiddleware lets at most maxConcurrentRequests requests in at
// once. The others wait for a slot or for their client to go away.
func RateLimitingMiddleware(maxConcurrentRequests int) mux.MiddlewareFunc {
	bucket := make(chan struct{}, maxConcurrentRequests)
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case bucket <- struct{}{}:
				defer func() { <-bucket }()
				h.ServeHTTP(w, r)
			case <-r.Context().Done():
				return
			}
		})
	}
}

// Tracer attaches a trace to every request and logs it when the request
// takes longer than slowThreshold, or with probability sampleRate otherwise.
func Tracer(logger *zap.Logger, slowThreshold time.Duration, sampleRate float64) mux.MiddlewareFunc {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := timer.WithTracing(r.Context())
			start := time.Now()
			h.ServeHTTP(w, r.WithContext(ctx))
			if time.Since(start) >= slowThreshold || rand.Float64() < sampleRate {
				if err := timer.LogTracingInfo(ctx, logger.With(zap.String("path", r.URL.Path))); err != nil {
					logger.Warn("failed to log trace", zap.Error(err))
				}
			}
		})
	}
}
