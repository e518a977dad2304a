package io

import (
	"bufio"
	"fmt"
	"io"
	"iter"
	"slices"
	"strconv"
	"strings"

	"github.com/ezrec/mifasm/internal"
)

const (
	MIF_DEPTH = 32768 // Words of program memory.
	MIF_WIDTH = 9     // Bits per word.
)

// Mif is a memory initialisation image with decimal addresses and
// binary data.
type Mif struct {
	Depth int      // Number of addressable words.
	Width int      // Bits per word.
	Data  []string // Binary text of each word, indexed by address.
}

// NewMif creates an image of the default geometry.
func NewMif(data []string) *Mif {
	return &Mif{
		Depth: MIF_DEPTH,
		Width: MIF_WIDTH,
		Data:  data,
	}
}

// Validate checks that the data fits the image geometry.
func (mif *Mif) Validate() (err error) {
	if len(mif.Data) > mif.Depth {
		err = ErrImageFull
		return
	}

	for _, word := range mif.Data {
		if len(word) != mif.Width || strings.Trim(word, "01") != "" {
			err = ErrImageWidth
			return
		}
	}

	return
}

func (mif *Mif) header() []string {
	return []string{
		fmt.Sprintf("DEPTH = %d;", mif.Depth),
		fmt.Sprintf("WIDTH = %d;", mif.Width),
		"ADDRESS_RADIX = DEC;",
		"DATA_RADIX = BIN;",
		"CONTENT",
		"BEGIN",
	}
}

// Lines iterates over the text lines of the image.
func (mif *Mif) Lines() iter.Seq[string] {
	data := internal.IterSeqMap(slices.All(mif.Data), func(address int, word string) string {
		return fmt.Sprintf("%d : %s;", address, word)
	})

	return internal.IterSeqConcat(
		slices.Values(mif.header()),
		data,
		slices.Values([]string{"END;"}),
	)
}

// WriteTo writes the image text. Nothing is written if the image
// does not validate.
func (mif *Mif) WriteTo(w io.Writer) (n int64, err error) {
	err = mif.Validate()
	if err != nil {
		return
	}

	bw := bufio.NewWriter(w)
	for line := range mif.Lines() {
		var wrote int
		wrote, err = bw.WriteString(line + "\n")
		n += int64(wrote)
		if err != nil {
			return
		}
	}

	err = bw.Flush()

	return
}

// ReadMif parses an image with decimal addresses and binary data.
// Addresses must start at zero and be contiguous.
func ReadMif(r io.Reader) (mif *Mif, err error) {
	var line string
	var lineno int

	defer func() {
		if err != nil {
			mif = nil
		}
	}()

	syntax := func() error {
		return ErrImageSyntax{LineNo: lineno, Line: line}
	}

	mif = &Mif{}
	content := false
	done := false

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lineno++
		line = scanner.Text()

		text, _, _ := strings.Cut(line, "--")
		text = strings.TrimSpace(text)
		if len(text) == 0 {
			continue
		}

		if done {
			err = syntax()
			return
		}

		if !content {
			key, value, ok := strings.Cut(strings.TrimSuffix(text, ";"), "=")
			key = strings.TrimSpace(key)
			value = strings.TrimSpace(value)
			switch {
			case text == "CONTENT":
			case text == "BEGIN":
				if mif.Depth == 0 || mif.Width == 0 {
					err = ErrImageHeader
					return
				}
				content = true
			case ok && key == "DEPTH":
				mif.Depth, err = strconv.Atoi(value)
				if err != nil || mif.Depth <= 0 {
					err = syntax()
					return
				}
			case ok && key == "WIDTH":
				mif.Width, err = strconv.Atoi(value)
				if err != nil || mif.Width <= 0 {
					err = syntax()
					return
				}
			case ok && key == "ADDRESS_RADIX":
				if value != "DEC" {
					err = ErrImageRadix
					return
				}
			case ok && key == "DATA_RADIX":
				if value != "BIN" {
					err = ErrImageRadix
					return
				}
			default:
				err = syntax()
				return
			}
			continue
		}

		if text == "END;" {
			done = true
			continue
		}

		addr, word, ok := strings.Cut(strings.TrimSuffix(text, ";"), ":")
		if !ok || !strings.HasSuffix(text, ";") {
			err = syntax()
			return
		}
		var address int
		address, err = strconv.Atoi(strings.TrimSpace(addr))
		if err != nil || address != len(mif.Data) {
			err = syntax()
			return
		}
		mif.Data = append(mif.Data, strings.TrimSpace(word))
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	if !done {
		err = ErrImageHeader
		return
	}

	err = mif.Validate()

	return
}
