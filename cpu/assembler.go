// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"errors"
	"io"
	"log"
	"slices"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/sync/errgroup"
)

// Assembler is a two pass assembler: labels are bound by BuildSymbols,
// then every line is encoded against the completed symbol table.
type Assembler struct {
	Verbose bool     // If set, verbosely logs the assembler actions.
	Workers int      // If greater than one, lines are encoded concurrently.
	Opcode  []Opcode // List of generated opcodes.

	Label *SymbolTable // Labels of the last assembled source.
}

// isNumeric is true if the word starts like an integer literal.
func isNumeric(word string) bool {
	word = strings.TrimLeft(word, "+-")
	return len(word) != 0 && unicode.IsDigit(rune(word[0]))
}

// sourceWords returns the words of a line, without any trailing comment.
func sourceWords(line string) []string {
	line, _, _ = strings.Cut(line, "//")
	return words(line)
}

// checkLabel validates a label definition line.
func (st *SymbolTable) checkLabel(all []string, lineno int) (err error) {
	// Integer literals always shadow labels.
	label := strings.TrimSuffix(all[0], ":")
	if len(label) == 0 {
		err = ErrLabelSyntax
		return
	}
	if _, perr := strconv.ParseInt(label, 10, 64); perr == nil || errors.Is(perr, strconv.ErrRange) {
		err = ErrLabelSyntax
		return
	}

	if len(all) > 1 && !isComment(all[1]) {
		err = ErrLabelSyntax
		return
	}

	sym, ok := st.symbol[label]
	if ok && sym.LineNo != lineno {
		err = ErrLabelDuplicate
		return
	}

	return
}

// immediate resolves a literal or label operand at instruction address ip.
// Labels resolve relative to the instruction after ip.
func (st *SymbolTable) immediate(word string, ip int) (value int, err error) {
	v64, err := strconv.ParseInt(word, 10, 64)
	if err == nil {
		if v64 < IMMEDIATE_MIN || v64 > IMMEDIATE_MAX {
			err = ErrImmediateRange
			return
		}
		value = int(v64)
		return
	}
	if errors.Is(err, strconv.ErrRange) {
		err = ErrImmediateRange
		return
	}
	err = nil

	label_ip, ok := st.Lookup(word)
	if ok {
		value = (label_ip - ip) - 1
		return
	}

	if isNumeric(word) {
		err = ErrImmediateInvalid
	} else {
		err = ErrLabelMissing(word)
	}

	return
}

// Encode encodes a single source line at instruction address ip.
//
// Blank, comment and label lines return a nil code, and next equals ip.
// Otherwise next is ip + 1. The lineno is the 1-based line number of the
// text in the source given to BuildSymbols.
func Encode(symbols *SymbolTable, ip int, lineno int, text string) (code *Code, next int, err error) {
	next = ip

	if symbols == nil {
		symbols = BuildSymbols(nil)
	}

	all := words(text)
	if len(all) == 0 || isComment(all[0]) {
		return
	}

	if isLabel(all[0]) {
		err = symbols.checkLabel(all, lineno)
		return
	}

	def, ok := LookupMnemonic(all[0])
	if !ok {
		err = ErrInstructionInvalid
		return
	}

	line, _, _ := strings.Cut(text, "//")
	line, err = symbols.expandExpressions(line, ip)
	if err != nil {
		return
	}

	args := words(line)[1:]
	if len(args) == 0 {
		err = ErrArgumentCount
		return
	}

	ra, ok := LookupRegister(strings.TrimSuffix(args[0], ","))
	if !ok {
		err = ErrOperandInvalid
		return
	}

	var encoded Code
	switch {
	case def.Class == CLASS_PAIR:
		if len(args) != 2 {
			err = ErrArgumentCount
			return
		}
		rb, ok := LookupRegister(args[1])
		if !ok {
			err = ErrOperandInvalid
			return
		}
		encoded = MakeCodePair(def.Op, ra, rb)
	case def.Op == OP_DISP:
		if len(args) != 1 {
			err = ErrArgumentCount
			return
		}
		encoded = MakeCodeDisp(ra)
	case def.Class == CLASS_IMMEDIATE:
		if len(args) != 2 {
			err = ErrArgumentCount
			return
		}
		var value int
		value, err = symbols.immediate(args[1], ip)
		if err != nil {
			return
		}
		var imm Word
		imm, err = ImmediateWord(value)
		if err != nil {
			return
		}
		encoded = MakeCodeImmediate(def.Op, ra, imm)
	default:
		err = ErrInstructionShape
		return
	}

	code = &encoded
	next = ip + 1

	return
}

// Parse parses an input stream into a Program.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	var lines []string

	scanner := bufio.NewScanner(input)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	err = scanner.Err()
	if err != nil {
		return
	}

	return asm.Assemble(lines)
}

// Assemble assembles source lines into a Program.
// The first error, in source order, aborts the assembly.
func (asm *Assembler) Assemble(lines []string) (prog *Program, err error) {
	asm.Opcode = asm.Opcode[:0]
	asm.Label = BuildSymbols(lines)

	if asm.Verbose {
		for label, ip := range asm.Label.All() {
			log.Printf("label %v: %v\n", label, ip)
		}
	}

	if asm.Workers > 1 {
		err = asm.encodeParallel(lines)
	} else {
		err = asm.encodeSequential(lines)
	}
	if err != nil {
		asm.Opcode = asm.Opcode[:0]
		return
	}

	prog = &Program{
		Opcodes: slices.Clone(asm.Opcode),
	}

	return
}

// emit records an encoded line.
func (asm *Assembler) emit(lineno int, ip int, line string, code *Code) {
	if code == nil {
		return
	}

	if asm.Verbose {
		log.Printf("%v: %v => %v\n", lineno, line, code.Binary())
	}

	opcode := Opcode{LineNo: lineno, Ip: ip, Words: sourceWords(line), Code: *code}
	asm.Opcode = append(asm.Opcode, opcode)
}

func (asm *Assembler) encodeSequential(lines []string) (err error) {
	ip := 0
	for n, line := range lines {
		lineno := n + 1

		var code *Code
		var next int
		code, next, err = Encode(asm.Label, ip, lineno, line)
		if err != nil {
			err = ErrSyntax{LineNo: lineno, Line: line, Err: err}
			return
		}

		asm.emit(lineno, ip, line, code)
		ip = next
	}

	return
}

// encodeParallel encodes every line concurrently, using the addresses
// already counted by BuildSymbols.
func (asm *Assembler) encodeParallel(lines []string) (err error) {
	codes := make([]*Code, len(lines))
	errs := make([]error, len(lines))

	var group errgroup.Group
	group.SetLimit(asm.Workers)
	for n, line := range lines {
		group.Go(func() error {
			codes[n], _, errs[n] = Encode(asm.Label, asm.Label.Ip(n+1), n+1, line)
			return nil
		})
	}
	_ = group.Wait()

	for n, line := range lines {
		lineno := n + 1
		if errs[n] != nil {
			err = ErrSyntax{LineNo: lineno, Line: line, Err: errs[n]}
			return
		}

		asm.emit(lineno, asm.Label.Ip(lineno), line, codes[n])
	}

	return
}
