package engine

import (
	"context"
	"errors"
	"strings"
	"testing"

	"simpl/engine/interpreter"
	"simpl/engine/lexer"
	"simpl/engine/parser"
	"simpl/lib/timer"
	"simpl/pcache"

	"github.com/samber/mo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const fixture = "result := 1; " +
	"if result <= 0 || 2 * 75 <= 1 + 500 + 0 " +
	"then result := 27 " +
	"else (); " +
	"i := 0; " +
	"while i + 1 <= 5" +
	"do (result := result + 2 * 0; i := i + 1); " +
	"if false || !!!false " +
	"then while result <= 28" +
	"do (result := result + 1); " +
	"else (); "

const fixtureMultiline = "" +
	"result := 0; \n" +
	"while result <= 6 do ( \n" +
	"    result := result + 2; \n" +
	"    a := result \n" +
	"); \n" +
	"if a > 10 \n" +
	"then result := a + a \n" +
	"else ( \n" +
	"a := 200 + a; \n" +
	"result := a; \n" +
	"); \n" +
	"result := 1000 + result; \n" +
	"skip"

func newExecutor() Executor {
	return NewExecutor(mo.None[pcache.PCache](), zap.NewNop())
}

func TestRunProgram(t *testing.T) {
	executor := newExecutor()
	scenarios := []struct {
		source string
		result int32
	}{
		{"x := 3; y := x + 4 * 2; result := y", 11},
		{"result := 0; while result <= 2 do result := result + 1", 3},
		{"if 1 = 1 then result := 10 else result := 20", 10},
		{"result := 10 - 3 - 2", 9},
		{fixture, 29},
		{fixtureMultiline, 1208},
	}
	for _, scenario := range scenarios {
		found, err := executor.RunProgram(context.Background(), scenario.source, mo.None[*interpreter.Env]())
		require.NoError(t, err, scenario.source)
		assert.Equal(t, scenario.result, found.Value, scenario.source)
		v, err := found.Env.Lookup("result")
		assert.NoError(t, err)
		assert.Equal(t, scenario.result, v)
	}
	assert.Equal(t, uint64(len(scenarios)), executor.Stats().Runs.Load())
	assert.Equal(t, uint64(0), executor.Stats().Failures.Load())
}

func TestRunProgram_Undefined(t *testing.T) {
	executor := newExecutor()
	found, err := executor.RunProgram(context.Background(), "result := y", mo.None[*interpreter.Env]())
	var undefined *interpreter.UndefinedVariableError
	require.True(t, errors.As(err, &undefined))
	assert.Equal(t, "y", undefined.Name)
	assert.False(t, found.Env.Contains("result"))

	// a program that never binds the result fails too
	_, err = executor.RunProgram(context.Background(), "x := 1", mo.None[*interpreter.Env]())
	require.True(t, errors.As(err, &undefined))
	assert.Equal(t, "result", undefined.Name)
	assert.Equal(t, uint64(2), executor.Stats().Failures.Load())
}

func TestRunProgram_LexErrorFailsRun(t *testing.T) {
	executor := newExecutor()
	// parses and evaluates fine once the stray character is dropped
	_, err := executor.RunProgram(context.Background(), "result := 1 $", mo.None[*interpreter.Env]())
	require.Error(t, err)
	var lexErr *lexer.LexError
	require.True(t, errors.As(err, &lexErr))
	assert.Equal(t, 1, lexErr.Line)

	// lexical and syntax errors are reported together
	_, err = executor.RunProgram(context.Background(), "result := $", mo.None[*interpreter.Env]())
	require.True(t, errors.As(err, &lexErr))
	var parseErr *parser.ParseError
	assert.True(t, errors.As(err, &parseErr))
}

func TestRunProgram_CarriedEnv(t *testing.T) {
	executor := newExecutor()
	env := interpreter.NewEnv()
	carried := mo.Some(env)

	_, err := executor.RunProgram(context.Background(), "x := 5", carried)
	require.Error(t, err)
	// the binding survives the missing result
	assert.True(t, env.Contains("x"))

	found, err := executor.RunProgram(context.Background(), "result := x * 2", carried)
	require.NoError(t, err)
	assert.Same(t, env, found.Env)
	assert.Equal(t, int32(10), found.Value)
	assert.Equal(t, "result := 10", found.String())

	_, err = executor.RunProgram(context.Background(), "result := result + z", carried)
	require.Error(t, err)
	v, _ := env.Lookup("result")
	assert.Equal(t, int32(10), v)
}

func TestRunProgram_Cached(t *testing.T) {
	cache, err := pcache.NewPCache(1<<16, 1<<6, 0)
	require.NoError(t, err)
	defer cache.Close()
	executor := NewExecutor(mo.Some(cache), zap.NewNop())

	source := "result := 6 * 7"
	found, err := executor.RunProgram(context.Background(), source, mo.None[*interpreter.Env]())
	require.NoError(t, err)
	assert.Equal(t, int32(42), found.Value)
	cache.Wait()

	ctx := timer.WithTracing(context.Background())
	found, err = executor.RunProgram(ctx, source, mo.None[*interpreter.Env]())
	require.NoError(t, err)
	assert.Equal(t, int32(42), found.Value)
	assert.Equal(t, uint64(1), executor.Stats().CacheHits.Load())
	assert.Equal(t, []string{"engine.cache_hit", "engine.evaluated"}, timer.Events(ctx))

	// programs that fail to parse are not cached
	_, err = executor.RunProgram(context.Background(), "result :=", mo.None[*interpreter.Env]())
	require.Error(t, err)
	cache.Wait()
	_, ok := cache.Get("result :=")
	assert.False(t, ok)
}

func TestRunProgram_Timeout(t *testing.T) {
	executor := newExecutor()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := executor.RunProgram(ctx, "while true do skip", mo.None[*interpreter.Env]())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCompileProgram(t *testing.T) {
	executor := newExecutor()
	found, err := executor.CompileProgram(context.Background(), "x := 3; y := x + 4 * 2; result := y")
	require.NoError(t, err)
	assert.Equal(t, "#include <stdio.h>\n"+
		"int main() {int v_result = 0;int v_x = 0;int v_y = 0;"+
		"v_x = 3; v_y = (v_x) + ((4) * (2)); v_result = v_y;"+
		" printf(\"result := %d\\n\", v_result);}", found)

	found, err = executor.CompileProgram(context.Background(), fixtureMultiline)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(found, "#include <stdio.h>\nint main() {int v_a = 0;int v_result = 0;"))

	_, err = executor.CompileProgram(context.Background(), "result := y")
	var undefined *interpreter.UndefinedVariableError
	require.True(t, errors.As(err, &undefined))
	assert.Equal(t, "y", undefined.Name)

	_, err = executor.CompileProgram(context.Background(), "result := (")
	var parseErr *parser.ParseError
	assert.True(t, errors.As(err, &parseErr))
	assert.Equal(t, uint64(4), executor.Stats().Compiles.Load())
}

func TestDebug(t *testing.T) {
	executor := newExecutor()
	trace, err := executor.Debug("x := 1; skip")
	require.NoError(t, err)
	assert.Len(t, trace.Tokens, 6)
	assert.Equal(t, "(seq: (assign: x, (num: 1)), (skip))", trace.Tree)
	lines := strings.Split(trace.String(), "\n")
	require.Len(t, lines, 7)
	assert.Equal(t, "Token{type=IDENTIFIER, lexeme='x', literal=null, line=1}", lines[0])
	assert.Equal(t, "program: (seq: (assign: x, (num: 1)), (skip))", lines[6])

	// tokens are still shown when parsing fails
	trace, err = executor.Debug("x := ")
	require.Error(t, err)
	assert.Len(t, trace.Tokens, 3)
	assert.Empty(t, trace.Tree)
	assert.Len(t, strings.Split(trace.String(), "\n"), 3)
}
