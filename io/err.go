package io

import (
	"errors"
	"strconv"

	"github.com/ezrec/mifasm/translate"
)

var f = translate.From

var (
	// Image errors
	ErrImageFull   = errors.New(f("image full"))
	ErrImageWidth  = errors.New(f("image word width"))
	ErrImageRadix  = errors.New(f("image radix unsupported"))
	ErrImageHeader = errors.New(f("image header incomplete"))
)

// ErrImageSyntax locates a malformed line of an image.
type ErrImageSyntax struct {
	LineNo int
	Line   string
}

func (err ErrImageSyntax) Error() string {
	return f("image line %v '%v' malformed", strconv.Itoa(err.LineNo), err.Line)
}
