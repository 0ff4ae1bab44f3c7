package isa

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// field is the text and binary layout of a fixed-width primitive.
type field struct {
	label  string // Context label for errors.
	prefix string // Text prefix, mandatory in decimal and optional in hex.
	bits   int    // Width in bits, a multiple of 8.
}

// size returns the binary width in bytes.
func (fd field) size() int {
	return fd.bits / 8
}

// digits returns the fixed hex width.
func (fd field) digits() int {
	return fd.bits / 4
}

func isDecimal(c byte) bool {
	return c >= '0' && c <= '9'
}

func isHex(c byte) bool {
	return isDecimal(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

// startsWithSpace is true if text begins with a whitespace rune. An
// invalid encoding is not whitespace.
func startsWithSpace(text string) bool {
	r, _ := utf8.DecodeRuneInString(text)
	return r != utf8.RuneError && unicode.IsSpace(r)
}

// leadingWord returns text up to the first whitespace rune.
func leadingWord(text string) string {
	end := strings.IndexFunc(text, unicode.IsSpace)
	if end < 0 {
		end = len(text)
	}

	return text[:end]
}

// parse reads a prefixed digit run in the radix selected by format.
func (fd field) parse(input string, format Format) (rest string, value uint64, err error) {
	defer func() {
		if err != nil {
			rest, value, err = "", 0, wrap(fd.label, err)
		}
	}()

	radix := 10
	isDigit := isDecimal
	switch {
	case format == FORMAT_DECIMAL:
	case format.IsHex():
		radix = 16
		isDigit = isHex
	default:
		err = ErrFormatInvalid
		return
	}

	if len(input) == 0 {
		err = ErrUnexpectedEnd
		return
	}

	text, prefixed := strings.CutPrefix(input, fd.prefix)
	if !prefixed {
		if radix == 10 {
			err = ErrMalformedOperand
			return
		}
		// A bare word naming an opcode starts the next instruction.
		if _, ok := lookupMnemonic(leadingWord(text)); ok {
			err = ErrUnexpectedEnd
			return
		}
	}

	n := 0
	for n < len(text) && isDigit(text[n]) {
		n++
	}

	// A digit run must be followed by a separator or the end of input.
	if n == 0 || (n < len(text) && !startsWithSpace(text[n:])) {
		err = ErrMalformedOperand
		return
	}

	value, err = strconv.ParseUint(text[:n], radix, fd.bits)
	if err != nil {
		err = ErrValueOutOfRange
		return
	}

	rest = text[n:]
	return
}

// format renders value. Hex is zero padded to the full width and carries
// no prefix; every other format renders prefixed decimal.
func (fd field) format(value uint64, format Format) (text string) {
	switch format {
	case FORMAT_HEX_UPPER:
		text = fmt.Sprintf("%0*X", fd.digits(), value)
	case FORMAT_HEX_LOWER:
		text = fmt.Sprintf("%0*x", fd.digits(), value)
	default:
		text = fd.prefix + strconv.FormatUint(value, 10)
	}

	return
}

// decode reads a big-endian value.
func (fd field) decode(input []byte) (rest []byte, value uint64, err error) {
	size := fd.size()
	if len(input) < size {
		err = wrap(fd.label, ErrUnexpectedEnd)
		return
	}

	for _, b := range input[:size] {
		value = (value << 8) | uint64(b)
	}

	rest = input[size:]
	return
}

// append writes value big-endian.
func (fd field) append(data []byte, value uint64) []byte {
	for shift := fd.bits - 8; shift >= 0; shift -= 8 {
		data = append(data, byte(value>>shift))
	}

	return data
}

// textScanner walks the operand list of a text instruction.
type textScanner struct {
	input  string
	format Format
}

// separator consumes the whitespace required before an operand.
func (ts *textScanner) separator(label string) (err error) {
	trimmed := strings.TrimLeftFunc(ts.input, unicode.IsSpace)

	switch {
	case len(trimmed) == 0:
		err = ErrUnexpectedEnd
	case len(trimmed) == len(ts.input):
		err = ErrMalformedOperand
	}

	ts.input = trimmed

	return wrap(label, err)
}

func (ts *textScanner) register() (reg RegisterIndex, err error) {
	err = ts.separator(registerField.label)
	if err != nil {
		return
	}

	ts.input, reg, err = ParseRegisterIndex(ts.input, ts.format)
	return
}

func (ts *textScanner) operand8() (value Operand8, err error) {
	err = ts.separator(operand8Field.label)
	if err != nil {
		return
	}

	ts.input, value, err = ParseOperand8(ts.input, ts.format)
	return
}

func (ts *textScanner) operand16() (value Operand16, err error) {
	err = ts.separator(operand16Field.label)
	if err != nil {
		return
	}

	ts.input, value, err = ParseOperand16(ts.input, ts.format)
	return
}

// binaryScanner walks the operand fields of a binary record.
type binaryScanner struct {
	input []byte
}

func (bs *binaryScanner) register() (reg RegisterIndex, err error) {
	bs.input, reg, err = DecodeRegisterIndex(bs.input)
	return
}

func (bs *binaryScanner) operand8() (value Operand8, err error) {
	bs.input, value, err = DecodeOperand8(bs.input)
	return
}

func (bs *binaryScanner) operand16() (value Operand16, err error) {
	bs.input, value, err = DecodeOperand16(bs.input)
	return
}
