// Package engine is the entry point into the simpl toolchain: it takes source
// text through the lexer and parser, then either evaluates or compiles the
// resulting program.
package engine

import (
	"context"
	"fmt"
	"strings"

	"simpl/engine/ast"
	"simpl/engine/compiler"
	"simpl/engine/interpreter"
	"simpl/engine/lexer"
	"simpl/engine/parser"
	"simpl/lib/timer"
	"simpl/lib/tracer"
	"simpl/pcache"

	"github.com/samber/lo"
	"github.com/samber/mo"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Result of a successful run. Env is the environment after the run and Value
// is the value bound to the result variable.
type Result struct {
	Env   *interpreter.Env
	Value int32
}

func (r Result) String() string {
	return fmt.Sprintf("%s := %d", compiler.ResultVariable, r.Value)
}

// Trace is what debug mode shows of a program: its tokens and its tree.
type Trace struct {
	Tokens []lexer.Token
	// Tree is empty when the program failed to parse.
	Tree string
}

func (t Trace) String() string {
	lines := lo.Map(t.Tokens, func(tok lexer.Token, _ int) string {
		return tok.String()
	})
	if t.Tree != "" {
		lines = append(lines, "program: "+t.Tree)
	}
	return strings.Join(lines, "\n")
}

type Executor struct {
	programs mo.Option[pcache.PCache]
	logger   *zap.Logger
	stats    *Stats
}

// NewExecutor returns an executor that caches parsed programs in programs,
// when present.
func NewExecutor(programs mo.Option[pcache.PCache], logger *zap.Logger) Executor {
	return Executor{
		programs: programs,
		logger:   logger,
		stats:    &Stats{},
	}
}

func (ex Executor) Stats() *Stats {
	return ex.stats
}

// parse turns source into a program. Every lexical error fails the parse,
// but the tokens are still parsed so that syntax errors are reported along
// with them.
func (ex Executor) parse(ctx context.Context, source string) (ast.Stmt, error) {
	if cache, ok := ex.programs.Get(); ok {
		if program, ok := cache.Get(source); ok {
			ex.stats.CacheHits.Inc()
			timer.Mark(ctx, "engine.cache_hit")
			return program, nil
		}
	}
	defer timer.Start("engine.parse").Stop()
	tokens, lexErr := lexer.Scan(source)
	timer.Mark(ctx, "engine.lexed")
	program, parseErr := parser.Parse(tokens)
	timer.Mark(ctx, "engine.parsed")
	if err := multierr.Combine(lexErr, parseErr); err != nil {
		return nil, err
	}
	if cache, ok := ex.programs.Get(); ok {
		cache.Set(source, program)
	}
	return program, nil
}

// RunProgram evaluates source. A carried environment is used in place and
// keeps the bindings made before a failure, as in an interactive session;
// without one the program runs against a fresh environment.
func (ex Executor) RunProgram(ctx context.Context, source string, carried mo.Option[*interpreter.Env]) (Result, error) {
	defer timer.Start("engine.run").Stop()
	span := tracer.StartSpan(ctx, "engine.run")
	defer span.End()
	ctx = span.Context()
	span.SetIntAttribute("source_bytes", len(source))
	ex.stats.Runs.Inc()

	env, ok := carried.Get()
	if !ok || env == nil {
		env = interpreter.NewEnv()
	}
	result, err := ex.run(ctx, source, env)
	if err != nil {
		ex.stats.Failures.Inc()
		span.RecordError(err)
		ex.logger.Debug("run failed", zap.Error(err))
	}
	return result, err
}

func (ex Executor) run(ctx context.Context, source string, env *interpreter.Env) (Result, error) {
	program, err := ex.parse(ctx, source)
	if err != nil {
		return Result{Env: env}, err
	}
	if _, err = interpreter.Eval(ctx, program, env); err != nil {
		return Result{Env: env}, err
	}
	timer.Mark(ctx, "engine.evaluated")
	value, err := env.Lookup(compiler.ResultVariable)
	if err != nil {
		return Result{Env: env}, err
	}
	return Result{Env: env, Value: value}, nil
}

// CompileProgram returns the C program equivalent to source.
func (ex Executor) CompileProgram(ctx context.Context, source string) (string, error) {
	defer timer.Start("engine.compile").Stop()
	span := tracer.StartSpan(ctx, "engine.compile")
	defer span.End()
	ex.stats.Compiles.Inc()

	program, err := ex.parse(span.Context(), source)
	if err == nil {
		var c string
		if c, err = compiler.Program(program); err == nil {
			return c, nil
		}
	}
	ex.stats.Failures.Inc()
	span.RecordError(err)
	ex.logger.Debug("compile failed", zap.Error(err))
	return "", err
}

// Debug lexes and parses source without running it. The trace holds every
// token scanned even when the source has errors.
func (ex Executor) Debug(source string) (Trace, error) {
	tokens, lexErr := lexer.Scan(source)
	trace := Trace{Tokens: tokens}
	program, parseErr := parser.Parse(tokens)
	if parseErr == nil {
		trace.Tree = ast.Print(program)
	}
	return trace, multierr.Combine(lexErr, parseErr)
}
