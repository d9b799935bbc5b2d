package memory

import (
	"fmt"
	"time"

	"github.com/raulk/go-watchdog"
	"go.uber.org/zap"
)

func init() {
	// Set 90% memory utilization as the threshold for capturing heap profiles.
	watchdog.HeapProfileThreshold = 0.90
}

type MemoryArgs struct {
	// Zero disables the watchdog.
	WatchdogLimit  uint64        `arg:"--watchdog-limit,env:WATCHDOG_LIMIT" default:"0"`
	WatchdogFactor float64       `arg:"--watchdog-factor,env:WATCHDOG_FACTOR" default:"0.8"`
	WatchdogFreq   time.Duration `arg:"--watchdog-freq,env:WATCHDOG_FREQ" default:"1m"`
}

func (args MemoryArgs) Validate() error {
	if args.WatchdogFactor <= 0 || args.WatchdogFactor >= 1.0 {
		return fmt.Errorf("'factor' should be in (0.0, 1.0)")
	} else if args.WatchdogLimit == 0 {
		return fmt.Errorf("'limit' should be > 0")
	} else if args.WatchdogFreq <= 0 {
		return fmt.Errorf("'freq' should be > 0")
	}
	return nil
}

// RunMemoryWatchdog triggers GC more eagerly as the system's memory use
// approaches the configured limit. Long-running evaluations allocate little,
// but sessions and the parse cache grow with traffic. The returned function
// stops the watchdog.
func RunMemoryWatchdog(args MemoryArgs, logger *zap.Logger) (func(), error) {
	if args.WatchdogLimit == 0 {
		logger.Info("memory watchdog disabled")
		return func() {}, nil
	}
	if err := args.Validate(); err != nil {
		return nil, fmt.Errorf("invalid watchdog config [%+v]: %w", args, err)
	}
	err, stopFn := watchdog.SystemDriven(args.WatchdogLimit, args.WatchdogFreq, watchdog.NewAdaptivePolicy(args.WatchdogFactor))
	if err != nil {
		return nil, fmt.Errorf("failed to start memory watchdog: %w", err)
	}
	logger.Info("started memory watchdog", zap.Uint64("limit", args.WatchdogLimit), zap.Float64("factor", args.WatchdogFactor))
	return stopFn, nil
}
