package cpu

import (
	"iter"
)

// Opcode is a single assembled source line.
type Opcode struct {
	LineNo int      // Source line number.
	Ip     int      // Instruction address.
	Words  []string // Source words.
	Code   Code     // Encoded instruction.
}

// Address returns the memory address of the first word of the opcode.
func (op *Opcode) Address() int {
	return op.Ip * CODE_WORDS
}

type Program struct {
	Opcodes []Opcode
}

type Debug struct {
	*Opcode
	Index int
}

// Debug finds the opcode at a memory address.
func (prog *Program) Debug(address int) (dbg Debug) {
	for n, op := range prog.Opcodes {
		if address >= op.Address() && address < op.Address()+CODE_WORDS {
			dbg = Debug{
				Opcode: &prog.Opcodes[n],
				Index:  address - op.Address(),
			}
			break
		}
	}

	return
}

// Words iterates over the memory image, by address.
func (prog *Program) Words() iter.Seq2[int, Word] {
	return func(yield func(address int, word Word) bool) {
		for _, op := range prog.Opcodes {
			for n, word := range op.Code.Words {
				if !yield(op.Address()+n, word) {
					return
				}
			}
		}
	}
}

// Binary returns the memory image as binary text, indexed by address.
func (prog *Program) Binary() (bins []string) {
	bins = make([]string, 0, len(prog.Opcodes)*CODE_WORDS)
	for _, word := range prog.Words() {
		bins = append(bins, word.String())
	}

	return
}

// Disassemble rebuilds a program from a memory image.
func Disassemble(words []Word) (prog *Program, err error) {
	if len(words)%CODE_WORDS != 0 {
		err = ErrDecode
		return
	}

	prog = &Program{}
	for ip := range len(words) / CODE_WORDS {
		var code Code
		code, err = Decode(words[ip*CODE_WORDS], words[ip*CODE_WORDS+1])
		if err != nil {
			prog = nil
			return
		}
		prog.Opcodes = append(prog.Opcodes, Opcode{Ip: ip, Code: code})
	}

	return
}
