package cpu

import (
	"maps"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildSymbols(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		"// Count down",  // 1
		"start:",         // 2
		"	movi r1 3",     // 3
		"loop:",          // 4
		"",               // 5
		"	disp r1",       // 6
		"	addi r1 -1",    // 7
		"	jmp r1 loop",   // 8 unknown, not counted
		"	bez r1 done",   // 9
		"	bez r0 loop",   // 10
		"done:",          // 11
		"end: // spare",  // 12
	}

	st := BuildSymbols(program)

	assert.Equal(5, st.Count())
	assert.Equal(4, st.Len())

	for label, ip := range map[string]int{"start": 0, "loop": 1, "done": 5, "end": 5} {
		got, ok := st.Lookup(label)
		assert.True(ok, label)
		assert.Equal(ip, got, label)
	}

	_, ok := st.Lookup("jmp")
	assert.False(ok)

	sym, ok := st.Symbol("loop")
	assert.True(ok)
	assert.Equal(Symbol{Ip: 1, LineNo: 4}, sym)

	ips := []int{0, 0, 0, 1, 1, 1, 2, 3, 3, 4, 5, 5}
	for n, ip := range ips {
		assert.Equal(ip, st.Ip(n+1), "line %d", n+1)
	}
	assert.Equal(5, st.Ip(0))
	assert.Equal(5, st.Ip(100))

	var labels []string
	for label := range st.All() {
		labels = append(labels, label)
	}
	assert.Equal([]string{"done", "end", "loop", "start"}, labels)
	assert.Equal(map[string]int{"start": 0, "loop": 1, "done": 5, "end": 5}, maps.Collect(st.All()))
}

func TestBuildSymbolsDuplicate(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		"here:",
		"add r1 r2",
		"here:",
		"sub r1 r2",
	}

	st := BuildSymbols(program)

	sym, ok := st.Symbol("here")
	assert.True(ok)
	assert.Equal(Symbol{Ip: 0, LineNo: 1}, sym)
	assert.Equal(2, st.Count())
}

func TestBuildSymbolsNeverFails(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		"   ",
		":",
		"what is this",
		"add",
		"movi r9 loop",
		"//loop:",
	}

	st := BuildSymbols(program)
	assert.Equal(2, st.Count())

	_, ok := st.Lookup("loop")
	assert.False(ok)

	// An empty label is bound, and rejected by the encoder.
	ip, ok := st.Lookup("")
	assert.True(ok)
	assert.Equal(0, ip)
}
