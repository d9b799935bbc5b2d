package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"simpl/engine"
	"simpl/instance"
	"simpl/pcache"
	"simpl/service/http/server"

	"github.com/alexflint/go-arg"
	"github.com/samber/mo"
	"go.uber.org/zap"
)

// exit codes, following sysexits.h
const (
	exUsage   = 64
	exDataErr = 65
	exNoInput = 66
)

type SimplArgs struct {
	Source  string `arg:"positional" help:"program file to run; 'server' starts the http service, 'debug' a debugging prompt"`
	Mode    string `arg:"positional" help:"'debug' or 'compile', applied to the program file"`
	Debug   bool   `arg:"--debug" help:"print the tokens and the tree of every program"`
	Compile bool   `arg:"--compile" help:"print the equivalent C program instead of running"`
	Verbose bool   `arg:"--verbose,env:SIMPL_VERBOSE" help:"log to stderr"`
}

type mode uint8

const (
	modePrompt mode = iota
	modeFile
	modeServer
)

// resolve reads the mode of the tool off its positional arguments. The flags
// and the positional modes may be combined.
func resolve(args *SimplArgs) (mode, error) {
	switch args.Mode {
	case "":
	case "debug":
		args.Debug = true
	case "compile":
		args.Compile = true
	default:
		return 0, fmt.Errorf("unknown mode '%s', expected 'debug' or 'compile'", args.Mode)
	}
	switch {
	case args.Source == "":
		return modePrompt, nil
	case args.Source == "server" && args.Mode == "":
		return modeServer, nil
	case args.Source == "debug" && args.Mode == "":
		args.Debug = true
		return modePrompt, nil
	default:
		return modeFile, nil
	}
}

func main() {
	var flags struct {
		SimplArgs
		instance.InstanceArgs
		server.ServerArgs
	}
	p, err := arg.NewParser(arg.Config{Program: "simpl"}, &flags)
	if err != nil {
		panic(err)
	}
	err = p.Parse(os.Args[1:])
	if err == arg.ErrHelp {
		p.WriteHelp(os.Stdout)
		os.Exit(0)
	}
	var m mode
	if err == nil {
		m, err = resolve(&flags.SimplArgs)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		p.WriteUsage(os.Stderr)
		os.Exit(exUsage)
	}
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	if !flags.Verbose {
		log.SetOutput(io.Discard)
	}

	if m == modeServer {
		os.Exit(serve(&flags.InstanceArgs, flags.ServerArgs))
	}

	logger := zap.NewNop()
	if flags.Verbose {
		if logger, err = instance.NewLogger(true); err != nil {
			panic(err)
		}
	}
	c := cli{
		executor: engine.NewExecutor(mo.None[pcache.PCache](), logger),
		out:      os.Stdout,
		errOut:   os.Stderr,
		debug:    flags.Debug,
		compile:  flags.Compile,
	}
	switch m {
	case modeFile:
		os.Exit(c.runFile(flags.Source))
	default:
		c.prompt(context.Background(), os.Stdin)
	}
}

func serve(args *instance.InstanceArgs, serverArgs server.ServerArgs) int {
	inst, err := instance.CreateFromArgs(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to setup instance: %v\n", err)
		return 1
	}
	defer inst.Close()
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	if err = server.Run(ctx, inst, serverArgs); err != nil && !errors.Is(err, context.Canceled) {
		inst.Logger.Error("http service stopped unexpectedly", zap.Error(err))
		return 1
	}
	return 0
}
