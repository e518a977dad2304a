package cpu

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgram_Debug(t *testing.T) {
	assert := assert.New(t)

	prog := &Program{
		Opcodes: []Opcode{
			{LineNo: 1, Ip: 0, Words: []string{"movi", "r0", "16"},
				Code: MakeCodeImmediate(OP_MOVI, REG_R0, 16)},
			{LineNo: 3, Ip: 1, Words: []string{"movi", "r1", "32"},
				Code: MakeCodeImmediate(OP_MOVI, REG_R1, 32)},
			{LineNo: 4, Ip: 2, Words: []string{"add", "r0", "r1"},
				Code: MakeCodePair(OP_ADD, REG_R0, REG_R1)},
		},
	}

	dbg := prog.Debug(0)
	assert.NotNil(dbg.Opcode)
	assert.Equal(1, dbg.Opcode.LineNo)
	assert.Equal(0, dbg.Index)

	dbg = prog.Debug(3)
	assert.NotNil(dbg.Opcode)
	assert.Equal(3, dbg.Opcode.LineNo)
	assert.Equal(1, dbg.Index)

	dbg = prog.Debug(4)
	assert.NotNil(dbg.Opcode)
	assert.Equal(4, dbg.Opcode.LineNo)
	assert.Equal(0, dbg.Index)
}

func TestProgram_Debug_NotFound(t *testing.T) {
	assert := assert.New(t)

	prog := &Program{
		Opcodes: []Opcode{
			{LineNo: 1, Ip: 0, Words: []string{"disp", "r0"}, Code: MakeCodeDisp(REG_R0)},
		},
	}

	dbg := prog.Debug(2)
	assert.Nil(dbg.Opcode)
	assert.Equal(0, dbg.Index)

	dbg = prog.Debug(-1)
	assert.Nil(dbg.Opcode)
}

func TestProgram_Words(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	prog, err := asm.Parse(strings.NewReader(strings.Join(countdown, "\n")))
	require.NoError(t, err)

	next := 0
	for address, word := range prog.Words() {
		assert.Equal(next, address)
		assert.Equal(countdownBinary[address], word.String())
		next++
	}
	assert.Equal(len(countdownBinary), next)

	// Early stop.
	for address := range prog.Words() {
		if address == 3 {
			break
		}
	}

	assert.Empty((&Program{}).Binary())
}

func TestDisassemble(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	prog, err := asm.Parse(strings.NewReader(strings.Join(countdown, "\n")))
	require.NoError(t, err)

	var words []Word
	for _, word := range prog.Words() {
		words = append(words, word)
	}

	dis, err := Disassemble(words)
	require.NoError(t, err)
	assert.Equal(prog.Binary(), dis.Binary())

	var text []string
	for _, op := range dis.Opcodes {
		text = append(text, op.Code.String())
	}
	assert.Equal([]string{
		"movi r1 3",
		"disp r1",
		"addi r1 -1",
		"bez r1 1",
		"bez r0 -4",
		"disp r1",
		"bez r0 -2",
	}, text)

	_, err = Disassemble(words[:3])
	assert.ErrorIs(err, ErrDecode)

	words[1] = 0
	words[3] = 1
	dis, err = Disassemble(words)
	assert.ErrorIs(err, ErrDecode)
	assert.Nil(dis)
}
