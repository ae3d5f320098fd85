package semantic_analyzer

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/samber/lo"
)

type Symbol struct {
	Name string
	Type Type
	Line int
}

// SymbolTable is a flat name to symbol mapping. A later binding of the same
// name replaces the earlier one.
type SymbolTable struct {
	symbols map[string]Symbol
}

func NewSymbolTable() *SymbolTable {
	return &SymbolTable{
		symbols: make(map[string]Symbol),
	}
}

func (st *SymbolTable) Define(name string, t Type, line int) {
	st.symbols[name] = Symbol{
		Name: name,
		Type: t,
		Line: line,
	}
}

func (st *SymbolTable) Lookup(name string) (Symbol, bool) {
	symbol, ok := st.symbols[name]
	return symbol, ok
}

func (st *SymbolTable) Len() int {
	return len(st.symbols)
}

// Symbols returns every symbol ordered by name.
func (st *SymbolTable) Symbols() []Symbol {
	ret := lo.Values(st.symbols)
	slices.SortFunc(ret, func(a, b Symbol) int {
		return cmp.Compare(a.Name, b.Name)
	})
	return ret
}

func (st *SymbolTable) String() string {
	b := new(strings.Builder)
	for _, symbol := range st.Symbols() {
		fmt.Fprintf(b, "%s: %s (line %d)\n", symbol.Name, symbol.Type, symbol.Line)
	}
	return b.String()
}
