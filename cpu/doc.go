// Package cpu implements the instruction set and assembler for the 9-bit
// teaching processor.
//
// The processor has eight registers (r0-r7) and eight opcodes. Every
// instruction occupies two 9-bit memory words: the first holds the opcode
// and register fields, the second is either zero or a two's complement
// immediate. Labels resolve to instruction addresses, and immediates that
// name a label encode the offset from the following instruction.
//
// The assembler runs two passes over the source. BuildSymbols binds the
// labels, then Encode translates each line against the completed table.
package cpu
