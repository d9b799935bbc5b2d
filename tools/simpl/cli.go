package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"simpl/engine"
	"simpl/engine/interpreter"
	"simpl/engine/lexer"
	"simpl/engine/parser"

	"github.com/samber/mo"
	"go.uber.org/multierr"
)

const promptText = ">> "

type cli struct {
	executor engine.Executor
	out      io.Writer
	errOut   io.Writer
	debug    bool
	compile  bool
}

// report prints every error err holds on its own line. Lexical and syntax
// errors are already tagged with their line.
func (c cli) report(err error) {
	for _, e := range multierr.Errors(err) {
		var lexErr *lexer.LexError
		var parseErr *parser.ParseError
		if errors.As(e, &lexErr) || errors.As(e, &parseErr) {
			fmt.Fprintln(c.errOut, e)
		} else {
			fmt.Fprintf(c.errOut, "Error: %v\n", e)
		}
	}
}

// run handles one program: its trace in debug mode, then either its C
// translation or the result of running it against env.
func (c cli) run(ctx context.Context, source string, env mo.Option[*interpreter.Env]) error {
	if c.debug {
		trace, err := c.executor.Debug(source)
		fmt.Fprintln(c.out, trace.String())
		if err != nil {
			return err
		}
	}
	if c.compile {
		program, err := c.executor.CompileProgram(ctx, source)
		if err != nil {
			return err
		}
		fmt.Fprintln(c.out, program)
		return nil
	}
	result, err := c.executor.RunProgram(ctx, source, env)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.out, result.String())
	return nil
}

func (c cli) runFile(path string) int {
	source, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(c.errOut, "Error: %v\n", err)
		return exNoInput
	}
	if err = c.run(context.Background(), string(source), mo.None[*interpreter.Env]()); err != nil {
		c.report(err)
		return exDataErr
	}
	return 0
}

// prompt reads programs line by line until in is exhausted. All lines share
// one environment, and a failing line keeps the bindings it made.
func (c cli) prompt(ctx context.Context, in io.Reader) {
	env := mo.Some(interpreter.NewEnv())
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(c.out, promptText)
		if !scanner.Scan() {
			break
		}
		if err := c.run(ctx, scanner.Text(), env); err != nil {
			c.report(err)
		}
	}
	fmt.Fprintln(c.out)
	if err := scanner.Err(); err != nil {
		fmt.Fprintf(c.errOut, "Error: %v\n", err)
	}
}
