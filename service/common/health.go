package common

import (
	"fmt"
	"net/http"
	"time"

	"github.com/heptiolabs/healthcheck"
	"go.uber.org/zap"
)

type HealthCheckArgs struct {
	HealthPort uint `arg:"--health-port,env:HEALTH_PORT" default:"8082"`
}

// NewHealthHandler returns a handler serving /live and /ready. The server is
// ready only while every check passes.
func NewHealthHandler(checks map[string]healthcheck.Check) healthcheck.Handler {
	health := healthcheck.NewHandler()
	health.AddLivenessCheck("goroutine-threshold", healthcheck.GoroutineCountCheck(10000))
	for name, check := range checks {
		health.AddReadinessCheck(name, healthcheck.Timeout(check, time.Second))
	}
	return health
}

func StartHealthCheckServer(port uint, checks map[string]healthcheck.Check, logger *zap.Logger) {
	health := NewHealthHandler(checks)
	go func() {
		err := http.ListenAndServe(fmt.Sprintf(":%d", port), health)
		if err != nil {
			logger.Fatal("health check server stopped unexpectedly", zap.Error(err))
		}
	}()
}
