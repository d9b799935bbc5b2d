package interpreter

import (
	"fmt"
	"sort"

	"github.com/samber/lo"
)

type UndefinedVariableError struct {
	Name string
}

func (e *UndefinedVariableError) Error() string {
	return fmt.Sprintf("undefined variable: '%s'", e.Name)
}

// Env holds the variables of one program run, or of one interactive session
// when it is carried from line to line. A name is bound once it has been
// assigned; bindings are never removed.
type Env struct {
	table map[string]int32
}

func NewEnv() *Env {
	return &Env{table: make(map[string]int32)}
}

// EnvFromSnapshot creates an environment holding a copy of the given bindings.
func EnvFromSnapshot(bindings map[string]int32) *Env {
	e := &Env{table: make(map[string]int32, len(bindings))}
	for k, v := range bindings {
		e.table[k] = v
	}
	return e
}

func (e *Env) Lookup(name string) (int32, error) {
	if v, ok := e.table[name]; ok {
		return v, nil
	}
	return 0, &UndefinedVariableError{Name: name}
}

func (e *Env) Bind(name string, value int32) {
	e.table[name] = value
}

func (e *Env) Contains(name string) bool {
	_, ok := e.table[name]
	return ok
}

// Names returns the bound names in sorted order.
func (e *Env) Names() []string {
	names := lo.Keys(e.table)
	sort.Strings(names)
	return names
}

func (e *Env) Len() int {
	return len(e.table)
}

func (e *Env) Snapshot() map[string]int32 {
	return EnvFromSnapshot(e.table).table
}

func (e *Env) String() string {
	return fmt.Sprintf("%v", lo.Map(e.Names(), func(name string, _ int) string {
		return fmt.Sprintf("%s=%d", name, e.table[name])
	}))
}
