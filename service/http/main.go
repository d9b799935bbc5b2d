package main

import (
	"context"
	"fmt"
	"io/ioutil"
	"log"
	"os"
	"os/signal"
	"syscall"

	"simpl/instance"
	"simpl/lib/utils/memory"
	"simpl/service/common"
	"simpl/service/http/server"

	"github.com/alexflint/go-arg"
	"github.com/heptiolabs/healthcheck"
	"go.uber.org/zap"
)

func main() {
	// Parse flags / environment variables.
	var flags struct {
		instance.InstanceArgs
		server.ServerArgs
		common.PrometheusArgs
		common.PprofArgs
		common.HealthCheckArgs
		memory.MemoryArgs
	}
	arg.MustParse(&flags)
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.SetOutput(ioutil.Discard)
	inst, err := instance.CreateFromArgs(&flags.InstanceArgs)
	if err != nil {
		panic(fmt.Sprintf("Failed to setup instance: %v", err))
	}
	defer func() {
		if err := inst.Close(); err != nil {
			inst.Logger.Error("failed to close instance", zap.Error(err))
		}
	}()

	// Start a prometheus server to export the metrics of the main router and
	// of the engine.
	common.StartPromMetricsServer(flags.MetricsPort, inst.Logger)
	// Start a pprof server to export the standard pprof endpoints.
	common.StartPprofServer(flags.PprofPort, inst.Logger)
	// The service is ready as long as sessions can be read.
	common.StartHealthCheckServer(flags.HealthPort, map[string]healthcheck.Check{
		"sessions": inst.Sessions.Ping,
	}, inst.Logger)

	stop, err := memory.RunMemoryWatchdog(flags.MemoryArgs, inst.Logger)
	if err != nil {
		inst.Logger.Fatal("failed to start memory watchdog", zap.Error(err))
	}
	defer stop()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	if err = server.Run(ctx, inst, flags.ServerArgs); err != nil {
		inst.Logger.Error("http service stopped unexpectedly", zap.Error(err))
		os.Exit(1)
	}
}
