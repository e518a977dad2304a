package cpu

import (
	"errors"
	"strconv"

	"github.com/ezrec/mifasm/translate"
)

var f = translate.From

var (
	// Instruction decode errors
	ErrDecode = errors.New(f("decode"))

	// Assembler errors
	ErrInstructionInvalid = errors.New(f("instruction invalid"))
	ErrInstructionShape   = errors.New(f("instruction shape unknown"))
	ErrOperandInvalid     = errors.New(f("operand invalid"))
	ErrArgumentCount      = errors.New(f("argument count invalid"))
	ErrImmediateInvalid   = errors.New(f("immediate or label invalid"))
	ErrImmediateRange     = errors.New(f("immediate out of range"))
	ErrLabelDuplicate     = errors.New(f("label duplicated"))
	ErrLabelSyntax        = errors.New(f("label syntax"))
)

// ErrLabelMissing is a reference to a label that is never defined.
type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

// Is reports a missing label as an invalid immediate or label.
func (el ErrLabelMissing) Is(err error) bool {
	return err == ErrImmediateInvalid
}

type ErrWordInvalid string

func (err ErrWordInvalid) Error() string {
	return f("'%v' is not a %d bit word", string(err), WORD_BITS)
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}

// ErrSyntax locates an assembler error in the source.
type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

// Error reports the line number without locale digit grouping.
func (err ErrSyntax) Error() string {
	return f("line %v '%v' %v", strconv.Itoa(err.LineNo), err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}
