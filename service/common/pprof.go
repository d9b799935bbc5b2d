package common

import (
	"fmt"
	"net/http"
	_ "net/http/pprof"

	"go.uber.org/zap"
)

type PprofArgs struct {
	// Zero disables the pprof server.
	PprofPort uint `arg:"--pprof-port,env:PPROF_PORT" default:"6060"`
}

// Start a server for the pprof endpoints registered on the default mux.
// Ref: https://pkg.go.dev/net/http/pprof
func StartPprofServer(port uint, logger *zap.Logger) {
	if port == 0 {
		return
	}
	go func() {
		err := http.ListenAndServe(fmt.Sprintf(":%d", port), nil)
		logger.Warn("pprof server stopped", zap.Error(err))
	}()
}
