package instance

import (
	"context"
	"fmt"
	"log"
	"time"

	"simpl/engine"
	"simpl/fbadger"
	"simpl/lib/tracer"
	"simpl/pcache"
	"simpl/resource"
	"simpl/session"

	"github.com/samber/mo"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type InstanceArgs struct {
	tracer.TracerArgs `json:"tracer_._tracer_args"`

	InstanceID    resource.RealmID `arg:"--instance-id,env:INSTANCE_ID" default:"1" json:"instance_id,omitempty"`
	Dev           bool             `arg:"--dev,env:DEV" default:"true" json:"dev,omitempty"`
	PCacheMaxCost int64            `arg:"--pcache-max-cost,env:PCACHE_MAX_COST" default:"67108864" json:"pcache_max_cost,omitempty"`
	PCacheTTL     time.Duration    `arg:"--pcache-ttl,env:PCACHE_TTL" default:"10m" json:"pcache_ttl,omitempty"`
	// SessionDir is where sessions are persisted. Sessions live in memory when empty.
	SessionDir string        `arg:"--session-dir,env:SESSION_DIR" default:"" json:"session_dir,omitempty"`
	SessionTTL time.Duration `arg:"--session-ttl,env:SESSION_TTL" default:"24h" json:"session_ttl,omitempty"`
}

func (args InstanceArgs) Valid() error {
	if args.PCacheMaxCost <= 0 {
		return fmt.Errorf("pcache max cost should be positive but was: %d", args.PCacheMaxCost)
	}
	if args.PCacheTTL < 0 || args.SessionTTL < 0 {
		return fmt.Errorf("ttls can not be negative")
	}
	return nil
}

// Instance holds everything a process needs to serve programs: the logger,
// the engine with its parse cache and the session store.
type Instance struct {
	ID       resource.RealmID
	Logger   *zap.Logger
	Executor engine.Executor
	// In-process cache of parsed programs
	PCache   pcache.PCache
	Sessions session.Store
	Args     InstanceArgs

	db       fbadger.DB
	shutdown func(context.Context) error
}

// NewLogger builds a development logger when dev is set and a JSON production
// logger otherwise, and makes it the global zap logger.
func NewLogger(dev bool) (*zap.Logger, error) {
	var logger *zap.Logger
	var err error
	if dev {
		logger, err = zap.NewDevelopment()
	} else {
		config := zap.NewProductionConfig()
		config.EncoderConfig.EncodeTime = zapcore.RFC3339TimeEncoder
		logger, err = config.Build(
			zap.AddCaller(),
			zap.AddStacktrace(zap.ErrorLevel),
		)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to construct logger: %v", err)
	}
	_ = zap.ReplaceGlobals(logger)
	return logger, nil
}

func CreateFromArgs(args *InstanceArgs) (Instance, error) {
	if err := args.Valid(); err != nil {
		return Instance{}, err
	}
	// First, create a structured logger that we can then use in other places.
	log.Print("Creating logger")
	logger, err := NewLogger(args.Dev)
	if err != nil {
		return Instance{}, err
	}
	return create(args, logger)
}

// create wires an instance around an existing logger.
func create(args *InstanceArgs, logger *zap.Logger) (Instance, error) {
	scope := resource.NewInstanceScope(args.InstanceID)
	logger = logger.With(zap.Uint32("instance_id", uint32(args.InstanceID)))

	logger.Info("Initializing tracer")
	shutdown, err := tracer.InitProvider(args.TracerArgs)
	if err != nil {
		return Instance{}, fmt.Errorf("failed to init tracer: %w", err)
	}

	logger.Info("Creating parse cache", zap.Int64("max_cost", args.PCacheMaxCost))
	cache, err := pcache.NewPCache(args.PCacheMaxCost, 1<<8, args.PCacheTTL)
	if err != nil {
		return Instance{}, fmt.Errorf("failed to create parse cache: %w", err)
	}

	logger.Info("Opening session store", zap.String("dir", args.SessionDir))
	conf := fbadger.Config{
		Opts:  fbadger.Options(args.SessionDir),
		Scope: scope,
	}
	db, err := conf.Materialize()
	if err != nil {
		cache.Close()
		return Instance{}, fmt.Errorf("failed to open session store: %w", err)
	}
	bdb := db.(fbadger.DB)

	return Instance{
		ID:       args.InstanceID,
		Logger:   logger,
		Executor: engine.NewExecutor(mo.Some(cache), logger),
		PCache:   cache,
		Sessions: session.NewStore(bdb, args.SessionTTL, logger),
		Args:     *args,
		db:       bdb,
		shutdown: shutdown,
	}, nil
}

// ReportStats exports the stats of the engine, the parse cache and the
// session store every interval until ctx is done.
func (i Instance) ReportStats(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			i.Executor.Stats().Record()
			pcache.RecordStats("programs", i.PCache)
			if i.db.DB != nil {
				fbadger.RecordBadgerStats(i.db)
			}
		}
	}
}

func (i Instance) Close() error {
	i.PCache.Close()
	var err error
	if i.shutdown != nil {
		err = i.shutdown(context.Background())
	}
	return multierr.Append(err, i.db.Close())
}
