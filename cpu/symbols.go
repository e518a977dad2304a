// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"iter"
	"maps"
	"slices"
	"strings"
)

// Symbol is a label binding.
type Symbol struct {
	Ip     int // Instruction address of the next instruction.
	LineNo int // Line of the first definition.
}

// SymbolTable maps labels to instruction addresses.
// It is complete before any line is encoded, and read-only afterwards.
type SymbolTable struct {
	symbol map[string]Symbol
	lineIp []int // Instruction address in effect at each line.
	count  int   // Instructions seen.
}

// words splits a line into whitespace separated words.
func words(line string) []string {
	return strings.Fields(line)
}

// isComment is true if the word starts a line comment.
func isComment(word string) bool {
	return strings.Contains(word, "//")
}

// isLabel is true if the word defines a label.
func isLabel(word string) bool {
	return strings.HasSuffix(word, ":")
}

// BuildSymbols scans the source once, binding each label to the
// address of the instruction that follows it.
//
// Lines that are neither labels nor known instructions are skipped;
// the encoder reports them.
func BuildSymbols(lines []string) (st *SymbolTable) {
	st = &SymbolTable{
		symbol: make(map[string]Symbol, 16),
		lineIp: make([]int, len(lines)),
	}

	ip := 0
	for n, line := range lines {
		st.lineIp[n] = ip

		all := words(line)
		if len(all) == 0 || isComment(all[0]) {
			continue
		}

		if isLabel(all[0]) {
			label := strings.TrimSuffix(all[0], ":")
			if _, ok := st.symbol[label]; !ok {
				st.symbol[label] = Symbol{Ip: ip, LineNo: n + 1}
			}
			continue
		}

		if _, ok := LookupMnemonic(all[0]); ok {
			ip++
		}
	}

	st.count = ip

	return
}

// Lookup returns the instruction address of a label.
func (st *SymbolTable) Lookup(label string) (ip int, ok bool) {
	sym, ok := st.symbol[label]
	return sym.Ip, ok
}

// Symbol returns the full binding of a label.
func (st *SymbolTable) Symbol(label string) (sym Symbol, ok bool) {
	sym, ok = st.symbol[label]
	return
}

// Count returns the number of instructions in the source.
func (st *SymbolTable) Count() int {
	return st.count
}

// Len returns the number of labels.
func (st *SymbolTable) Len() int {
	return len(st.symbol)
}

// Ip returns the instruction address in effect at a 1-based line number.
func (st *SymbolTable) Ip(lineno int) int {
	if lineno < 1 || lineno > len(st.lineIp) {
		return st.count
	}
	return st.lineIp[lineno-1]
}

// All iterates over the labels and their addresses, in label order.
func (st *SymbolTable) All() iter.Seq2[string, int] {
	return func(yield func(label string, ip int) bool) {
		for _, label := range slices.Sorted(maps.Keys(st.symbol)) {
			if !yield(label, st.symbol[label].Ip) {
				return
			}
		}
	}
}
