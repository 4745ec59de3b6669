package asm

import "fmt"

// SymbolTable maps label names to addresses. It is populated during Pass 1
// and treated as read-only during Pass 2, per spec.md §3.
type SymbolTable struct {
	addrs map[string]uint32
	order []string
}

func newSymbolTable() *SymbolTable {
	return &SymbolTable{addrs: make(map[string]uint32)}
}

// Define records a label's address. Redefining an existing label is always
// an error (spec.md §4.4).
func (st *SymbolTable) Define(name string, addr uint32, line int) error {
	if _, exists := st.addrs[name]; exists {
		return newError(ErrorDuplicateLabel, line, "label %q already defined", name)
	}
	st.addrs[name] = addr
	st.order = append(st.order, name)
	return nil
}

// Get looks up a label's address.
func (st *SymbolTable) Get(name string) (uint32, error) {
	addr, ok := st.addrs[name]
	if !ok {
		return 0, fmt.Errorf("undefined label %q", name)
	}
	return addr, nil
}

// SymbolEntry is one label/address pair exposed to the host, e.g. for a
// symbol-table dump (spec.md's "console logging of the symbol table" is an
// external collaborator concern, not the core's — see cmd/rv32).
type SymbolEntry struct {
	Name    string
	Address uint32
}

// Symbols returns every defined label in definition order.
func (st *SymbolTable) Symbols() []SymbolEntry {
	entries := make([]SymbolEntry, 0, len(st.order))
	for _, name := range st.order {
		entries = append(entries, SymbolEntry{Name: name, Address: st.addrs[name]})
	}
	return entries
}
