package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"simpl/instance"
	httplib "simpl/lib/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type ServerArgs struct {
	AppPort               uint          `arg:"--app-port,env:APP_PORT" default:"8003"`
	EvalTimeout           time.Duration `arg:"--eval-timeout,env:EVAL_TIMEOUT" default:"2s"`
	MaxConcurrentRequests int           `arg:"--max-concurrent-requests,env:MAX_CONCURRENT_REQUESTS" default:"1000"`
	SlowRequestThreshold  time.Duration `arg:"--slow-request-threshold,env:SLOW_REQUEST_THRESHOLD" default:"500ms"`
}

// NewRouter wires the handlers of the service and its middlewares.
func NewRouter(inst instance.Instance, args ServerArgs) *mux.Router {
	router := mux.NewRouter()
	router.Use(prometheusMiddleware)
	router.Use(httplib.RateLimitingMiddleware(args.MaxConcurrentRequests))
	router.Use(httplib.Tracer(inst.Logger, args.SlowRequestThreshold, 0))
	// a little slack over the evaluation timeout for loading and saving sessions
	router.Use(httplib.TimeoutMiddleware(args.EvalTimeout + time.Second))

	NewServer(inst, args.EvalTimeout).SetHandlers(router)
	return router
}

// Run serves the API until ctx is done, then shuts the server down.
func Run(ctx context.Context, inst instance.Instance, args ServerArgs) error {
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", args.AppPort),
		Handler: NewRouter(inst, args),
	}
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		inst.Logger.Info("starting http service", zap.String("addr", srv.Addr))
		// Note: e2e tests rely on this line to know that the server is ready
		inst.Logger.Info("server is ready...")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		inst.ReportStats(ctx, 10*time.Second)
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		inst.Logger.Info("shutting down http service")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
