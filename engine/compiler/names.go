package compiler

import (
	"sort"

	"github.com/samber/lo"
)

// Names collects every variable a program assigns. It is the compile-time
// counterpart of the interpreter's environment and never holds values: each
// collected name is declared zero-initialized in the generated program.
type Names struct {
	set map[string]struct{}
}

func NewNames() *Names {
	return &Names{set: make(map[string]struct{})}
}

func (n *Names) Add(name string) {
	n.set[name] = struct{}{}
}

func (n *Names) Contains(name string) bool {
	_, ok := n.set[name]
	return ok
}

func (n *Names) Sorted() []string {
	names := lo.Keys(n.set)
	sort.Strings(names)
	return names
}
