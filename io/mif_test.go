package io

import (
	"bytes"
	"errors"
	"slices"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const disp3 = `DEPTH = 32768;
WIDTH = 9;
ADDRESS_RADIX = DEC;
DATA_RADIX = BIN;
CONTENT
BEGIN
0 : 000011000;
1 : 000000000;
2 : 001001010;
3 : 000000000;
END;
`

func TestMifWriteTo(t *testing.T) {
	assert := assert.New(t)

	mif := NewMif([]string{"000011000", "000000000", "001001010", "000000000"})

	var buf bytes.Buffer
	n, err := mif.WriteTo(&buf)
	assert.NoError(err)
	assert.Equal(disp3, buf.String())
	assert.Equal(int64(len(disp3)), n)
}

func TestMifEmpty(t *testing.T) {
	assert := assert.New(t)

	mif := NewMif(nil)

	lines := slices.Collect(mif.Lines())
	assert.Equal([]string{
		"DEPTH = 32768;",
		"WIDTH = 9;",
		"ADDRESS_RADIX = DEC;",
		"DATA_RADIX = BIN;",
		"CONTENT",
		"BEGIN",
		"END;",
	}, lines)
}

func TestMifLines(t *testing.T) {
	assert := assert.New(t)

	data := make([]string, 20)
	for n := range data {
		data[n] = "000000001"
	}
	mif := NewMif(data)

	lines := slices.Collect(mif.Lines())
	assert.Equal(6+len(data)+1, len(lines))

	// Addresses increase by one from zero.
	for n, line := range lines[6 : 6+len(data)] {
		assert.True(strings.HasPrefix(line, strconv.Itoa(n)+" : "), line)
	}
}

func TestMifValidate(t *testing.T) {
	assert := assert.New(t)

	mif := &Mif{Depth: 2, Width: 9, Data: []string{"000000000", "000000000", "000000000"}}
	var buf bytes.Buffer
	_, err := mif.WriteTo(&buf)
	assert.ErrorIs(err, ErrImageFull)
	assert.Equal(0, buf.Len())

	mif = NewMif([]string{"0000"})
	assert.ErrorIs(mif.Validate(), ErrImageWidth)

	mif = NewMif([]string{"00000000x"})
	assert.ErrorIs(mif.Validate(), ErrImageWidth)
}

func TestReadMif(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	mif, err := ReadMif(strings.NewReader(disp3))
	require.NoError(err)
	assert.Equal(32768, mif.Depth)
	assert.Equal(9, mif.Width)
	assert.Equal([]string{"000011000", "000000000", "001001010", "000000000"}, mif.Data)

	// Round trip.
	var buf bytes.Buffer
	_, err = mif.WriteTo(&buf)
	require.NoError(err)
	assert.Equal(disp3, buf.String())

	// Comments, blank lines and spacing are tolerated.
	loose := "-- generated\nDEPTH=8;\n\nWIDTH = 9 ;\nCONTENT\nBEGIN\n  0 :000000001 ; -- one\nEND;\n"
	mif, err = ReadMif(strings.NewReader(loose))
	require.NoError(err)
	assert.Equal(8, mif.Depth)
	assert.Equal([]string{"000000001"}, mif.Data)
}

func TestReadMifErrors(t *testing.T) {
	assert := assert.New(t)

	header := "DEPTH = 4;\nWIDTH = 9;\nCONTENT\nBEGIN\n"

	table := []struct {
		text   string
		err    error
		lineno int
	}{
		{"", ErrImageHeader, 0},
		{"CONTENT\nBEGIN\nEND;\n", ErrImageHeader, 0},
		{"DEPTH = 4;\nWIDTH = 9;\nADDRESS_RADIX = HEX;\n", ErrImageRadix, 0},
		{"DEPTH = 4;\nWIDTH = 9;\nDATA_RADIX = HEX;\n", ErrImageRadix, 0},
		{"DEPTH = lots;\n", nil, 1},
		{"DEPTH = 4;\nWIDTH = 9;\nFOO;\n", nil, 3},
		{header + "0 : 000000000;\n", ErrImageHeader, 0},
		{header + "1 : 000000000;\nEND;\n", nil, 5},
		{header + "0 : 000000000\nEND;\n", nil, 5},
		{header + "0 000000000;\nEND;\n", nil, 5},
		{header + "END;\n0 : 000000000;\n", nil, 6},
		{header + "0 : 0;\nEND;\n", ErrImageWidth, 0},
		{header + "0 : 000000000;\n1 : 000000000;\n2 : 000000000;\n3 : 000000000;\n4 : 000000000;\nEND;\n", ErrImageFull, 0},
	}

	for _, entry := range table {
		mif, err := ReadMif(strings.NewReader(entry.text))
		assert.Error(err, entry.text)
		assert.Nil(mif, entry.text)
		if entry.err != nil {
			assert.ErrorIs(err, entry.err, entry.text)
			continue
		}
		var syntax ErrImageSyntax
		if assert.True(errors.As(err, &syntax), entry.text) {
			assert.Equal(entry.lineno, syntax.LineNo, entry.text)
		}
	}
}
