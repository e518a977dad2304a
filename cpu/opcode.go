package cpu

import (
	"fmt"
	"strings"
)

const (
	WORD_BITS  = 9                    // Bits in a memory word.
	WORD_MASK  = (1 << WORD_BITS) - 1 // Mask of the memory word bits.
	CODE_WORDS = 2                    // Memory words per instruction.

	IMMEDIATE_MIN = -(1 << (WORD_BITS - 1))    // Smallest encodable immediate.
	IMMEDIATE_MAX = (1 << (WORD_BITS - 1)) - 1 // Largest encodable immediate.
)

// CodeOp is a 3-bit instruction code.
type CodeOp int

const (
	OP_DISP = CodeOp(0) // disp
	OP_ADD  = CodeOp(1) // add
	OP_ADDI = CodeOp(2) // addi
	OP_SUB  = CodeOp(3) // sub
	OP_MUL  = CodeOp(4) // mul
	OP_SSI  = CodeOp(5) // ssi
	OP_BEZ  = CodeOp(6) // bez
	OP_MOVI = CodeOp(7) // movi
)

// Class is the operand arity class of an instruction.
type Class int

const (
	CLASS_PAIR      = Class(1) // register, register
	CLASS_IMMEDIATE = Class(2) // register, immediate or label
)

// Register is a 3-bit register code.
type Register int

const (
	REG_R0 = Register(0)
	REG_R1 = Register(1)
	REG_R2 = Register(2)
	REG_R3 = Register(3)
	REG_R4 = Register(4)
	REG_R5 = Register(5)
	REG_R6 = Register(6)
	REG_R7 = Register(7)
)

// Definition describes a single mnemonic.
type Definition struct {
	Mnemonic string
	Op       CodeOp
	Class    Class
}

// opcodeTable is indexed by CodeOp.
var opcodeTable = [...]Definition{
	{"disp", OP_DISP, CLASS_IMMEDIATE},
	{"add", OP_ADD, CLASS_PAIR},
	{"addi", OP_ADDI, CLASS_IMMEDIATE},
	{"sub", OP_SUB, CLASS_PAIR},
	{"mul", OP_MUL, CLASS_PAIR},
	{"ssi", OP_SSI, CLASS_IMMEDIATE},
	{"bez", OP_BEZ, CLASS_IMMEDIATE},
	{"movi", OP_MOVI, CLASS_IMMEDIATE},
}

// mnemonicMap maps mnemonics to their definitions.
var mnemonicMap = func() map[string]Definition {
	defs := make(map[string]Definition, len(opcodeTable))
	for _, def := range opcodeTable {
		defs[def.Mnemonic] = def
	}
	return defs
}()

// registerMap is a map of register names to register codes.
var registerMap = map[string]Register{
	"r0": REG_R0,
	"r1": REG_R1,
	"r2": REG_R2,
	"r3": REG_R3,
	"r4": REG_R4,
	"r5": REG_R5,
	"r6": REG_R6,
	"r7": REG_R7,
}

// LookupMnemonic returns the definition of a mnemonic.
func LookupMnemonic(mnemonic string) (def Definition, ok bool) {
	def, ok = mnemonicMap[mnemonic]
	return
}

// LookupRegister returns the code of a register name.
func LookupRegister(name string) (reg Register, ok bool) {
	reg, ok = registerMap[name]
	return
}

func (op CodeOp) String() string {
	if op < 0 || int(op) >= len(opcodeTable) {
		return fmt.Sprintf("CodeOp(%d)", int(op))
	}
	return opcodeTable[op].Mnemonic
}

// Class returns the arity class of the opcode.
func (op CodeOp) Class() Class {
	if op < 0 || int(op) >= len(opcodeTable) {
		return 0
	}
	return opcodeTable[op].Class
}

func (reg Register) String() string {
	return fmt.Sprintf("r%d", int(reg))
}

// Word is a single 9-bit memory word.
type Word uint16

// String returns the word as binary digits, most significant bit first.
func (w Word) String() string {
	return fmt.Sprintf("%09b", uint16(w)&WORD_MASK)
}

// ParseWord parses a word of binary digits.
func ParseWord(bits string) (w Word, err error) {
	if len(bits) != WORD_BITS || strings.Trim(bits, "01") != "" {
		err = ErrWordInvalid(bits)
		return
	}

	for _, bit := range bits {
		w = (w << 1) | Word(bit-'0')
	}

	return
}

// ImmediateWord encodes a value as a 9-bit two's complement word.
func ImmediateWord(value int) (w Word, err error) {
	if value < IMMEDIATE_MIN || value > IMMEDIATE_MAX {
		err = ErrImmediateRange
		return
	}

	w = Word(value) & WORD_MASK
	return
}

// Immediate decodes the word as a 9-bit two's complement value.
func (w Word) Immediate() int {
	value := int(w & WORD_MASK)
	if value > IMMEDIATE_MAX {
		value -= 1 << WORD_BITS
	}
	return value
}

// Code is a single encoded instruction.
type Code struct {
	Words [CODE_WORDS]Word
}

func makeHead(op CodeOp, ra Register, rb Register) Word {
	return Word(op&7)<<6 | Word(ra&7)<<3 | Word(rb&7)
}

// MakeCodePair encodes a register pair instruction.
func MakeCodePair(op CodeOp, ra Register, rb Register) Code {
	return Code{Words: [CODE_WORDS]Word{makeHead(op, ra, rb), 0}}
}

// MakeCodeDisp encodes a disp instruction.
func MakeCodeDisp(ra Register) Code {
	return Code{Words: [CODE_WORDS]Word{makeHead(OP_DISP, ra, 0), 0}}
}

// MakeCodeImmediate encodes a register plus immediate instruction.
func MakeCodeImmediate(op CodeOp, ra Register, imm Word) Code {
	return Code{Words: [CODE_WORDS]Word{makeHead(op, ra, 0), imm & WORD_MASK}}
}

// Op returns the opcode field.
func (code Code) Op() CodeOp {
	return CodeOp((code.Words[0] >> 6) & 7)
}

// Ra returns the first register field.
func (code Code) Ra() Register {
	return Register((code.Words[0] >> 3) & 7)
}

// Rb returns the second register field.
func (code Code) Rb() Register {
	return Register(code.Words[0] & 7)
}

// Immediate returns the value of the second word.
func (code Code) Immediate() int {
	return code.Words[1].Immediate()
}

// Binary returns the words as binary text.
func (code Code) Binary() []string {
	return []string{code.Words[0].String(), code.Words[1].String()}
}

// String returns the assembly text of the code.
func (code Code) String() string {
	op := code.Op()
	switch {
	case op == OP_DISP:
		return fmt.Sprintf("%v %v", op, code.Ra())
	case op.Class() == CLASS_PAIR:
		return fmt.Sprintf("%v %v %v", op, code.Ra(), code.Rb())
	default:
		return fmt.Sprintf("%v %v %d", op, code.Ra(), code.Immediate())
	}
}

// Decode decodes a pair of memory words.
// Bits that an encoded instruction always leaves clear must be clear.
func Decode(w1 Word, w2 Word) (code Code, err error) {
	if w1 > WORD_MASK || w2 > WORD_MASK {
		err = ErrDecode
		return
	}

	code = Code{Words: [CODE_WORDS]Word{w1, w2}}

	op := code.Op()
	switch {
	case op.Class() == CLASS_PAIR:
		if w2 != 0 {
			err = ErrDecode
		}
	case op == OP_DISP:
		if code.Rb() != 0 || w2 != 0 {
			err = ErrDecode
		}
	case op.Class() == CLASS_IMMEDIATE:
		if code.Rb() != 0 {
			err = ErrDecode
		}
	default:
		err = ErrInstructionShape
	}

	if err != nil {
		code = Code{}
	}

	return
}
