package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"simpl/engine"
	"simpl/pcache"

	"github.com/samber/mo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestResolve(t *testing.T) {
	scenarios := []struct {
		args    SimplArgs
		mode    mode
		debug   bool
		compile bool
	}{
		{SimplArgs{}, modePrompt, false, false},
		{SimplArgs{Source: "debug"}, modePrompt, true, false},
		{SimplArgs{Source: "server"}, modeServer, false, false},
		{SimplArgs{Source: "prog.simpl"}, modeFile, false, false},
		{SimplArgs{Source: "prog.simpl", Mode: "debug"}, modeFile, true, false},
		{SimplArgs{Source: "prog.simpl", Mode: "compile"}, modeFile, false, true},
		{SimplArgs{Source: "prog.simpl", Debug: true, Compile: true}, modeFile, true, true},
		// a program file may be called like a mode when a mode follows it
		{SimplArgs{Source: "server", Mode: "compile"}, modeFile, false, true},
	}
	for _, scenario := range scenarios {
		args := scenario.args
		found, err := resolve(&args)
		require.NoError(t, err)
		assert.Equal(t, scenario.mode, found, scenario.args)
		assert.Equal(t, scenario.debug, args.Debug, scenario.args)
		assert.Equal(t, scenario.compile, args.Compile, scenario.args)
	}

	_, err := resolve(&SimplArgs{Source: "prog.simpl", Mode: "optimize"})
	assert.Error(t, err)
}

func newCLI() (cli, *bytes.Buffer, *bytes.Buffer) {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	return cli{
		executor: engine.NewExecutor(mo.None[pcache.PCache](), zap.NewNop()),
		out:      out,
		errOut:   errOut,
	}, out, errOut
}

func writeProgram(t *testing.T, source string) string {
	path := filepath.Join(t.TempDir(), "prog.simpl")
	require.NoError(t, os.WriteFile(path, []byte(source), 0644))
	return path
}

func TestRunFile(t *testing.T) {
	c, out, errOut := newCLI()
	assert.Equal(t, 0, c.runFile(writeProgram(t, "x := 3; y := x + 4 * 2; result := y")))
	assert.Equal(t, "result := 11\n", out.String())
	assert.Empty(t, errOut.String())
}

func TestRunFile_Errors(t *testing.T) {
	c, out, errOut := newCLI()
	assert.Equal(t, exDataErr, c.runFile(writeProgram(t, "result := 1 $\n$")))
	assert.Empty(t, out.String())
	assert.Equal(t,
		"[line 1] Error: unexpected character '$'\n"+
			"[line 2] Error: unexpected character '$'\n",
		errOut.String())

	c, _, errOut = newCLI()
	assert.Equal(t, exDataErr, c.runFile(writeProgram(t, "result := y")))
	assert.Equal(t, "Error: undefined variable: 'y'\n", errOut.String())

	c, _, _ = newCLI()
	assert.Equal(t, exNoInput, c.runFile(filepath.Join(t.TempDir(), "missing.simpl")))
}

func TestRunFile_Compile(t *testing.T) {
	c, out, _ := newCLI()
	c.compile = true
	assert.Equal(t, 0, c.runFile(writeProgram(t, "result := 6 * 7")))
	assert.Equal(t, "#include <stdio.h>\nint main() {int v_result = 0;v_result = (6) * (7); printf(\"result := %d\\n\", v_result);}\n", out.String())
}

func TestRunFile_Debug(t *testing.T) {
	c, out, _ := newCLI()
	c.debug = true
	assert.Equal(t, 0, c.runFile(writeProgram(t, "result := 1")))
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 6)
	assert.Equal(t, "Token{type=IDENTIFIER, lexeme='result', literal=null, line=1}", lines[0])
	assert.Equal(t, "Token{type=NUMBER, lexeme='1', literal=1, line=1}", lines[2])
	assert.Equal(t, "program: (assign: result, (num: 1))", lines[4])
	assert.Equal(t, "result := 1", lines[5])
}

func TestPrompt(t *testing.T) {
	c, out, errOut := newCLI()
	in := strings.NewReader("result := 5\nx := result * 2; result := x + 1\nresult := nope\nresult := result - x\n")
	c.prompt(context.Background(), in)
	assert.Equal(t, ">> result := 5\n>> result := 11\n>> >> result := 1\n>> \n", out.String())
	assert.Equal(t, "Error: undefined variable: 'nope'\n", errOut.String())
}
