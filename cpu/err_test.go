package cpu

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/mifasm/translate"
)

func TestErrSyntax(t *testing.T) {
	assert := assert.New(t)

	assert.NoError(translate.SetLanguage("en-US"))

	err := error(ErrSyntax{LineNo: 12345, Line: "jmp r0", Err: ErrInstructionInvalid})
	assert.Equal("line 12345 'jmp r0' instruction invalid", err.Error())
	assert.ErrorIs(err, ErrInstructionInvalid)

	var syntax ErrSyntax
	assert.True(errors.As(err, &syntax))
	assert.Equal(12345, syntax.LineNo)
}
