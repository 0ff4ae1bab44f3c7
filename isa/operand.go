package isa

import (
	"encoding"
)

// Text prefixes of the primitive operands.
const (
	REGISTER_PREFIX = "$"
	OPERAND_PREFIX  = "#"
)

var (
	registerField  = field{label: "register", prefix: REGISTER_PREFIX, bits: 8}
	operand8Field  = field{label: "operand8", prefix: OPERAND_PREFIX, bits: 8}
	operand16Field = field{label: "operand16", prefix: OPERAND_PREFIX, bits: 16}
)

// Textual values render in any of the text formats.
type Textual interface {
	Text(format Format) string
}

var (
	_ Textual                 = RegisterIndex(0)
	_ encoding.BinaryAppender = RegisterIndex(0)
	_ Textual                 = Operand8(0)
	_ encoding.BinaryAppender = Operand8(0)
	_ Textual                 = Operand16(0)
	_ encoding.BinaryAppender = Operand16(0)
)

// RegisterIndex addresses a slot of the register file.
type RegisterIndex uint8

// ParseRegisterIndex parses '$' and a digit run in the radix of format.
func ParseRegisterIndex(input string, format Format) (rest string, reg RegisterIndex, err error) {
	rest, value, err := registerField.parse(input, format)
	reg = RegisterIndex(value)
	return
}

// DecodeRegisterIndex decodes a single byte.
func DecodeRegisterIndex(input []byte) (rest []byte, reg RegisterIndex, err error) {
	rest, value, err := registerField.decode(input)
	reg = RegisterIndex(value)
	return
}

func (reg RegisterIndex) Text(format Format) string {
	return registerField.format(uint64(reg), format)
}

func (reg RegisterIndex) String() string {
	return reg.Text(FORMAT_DECIMAL)
}

func (reg RegisterIndex) AppendBinary(data []byte) ([]byte, error) {
	return registerField.append(data, uint64(reg)), nil
}

// Operand8 is an 8-bit immediate.
type Operand8 uint8

// ParseOperand8 parses '#' and a digit run in the radix of format.
func ParseOperand8(input string, format Format) (rest string, value Operand8, err error) {
	rest, raw, err := operand8Field.parse(input, format)
	value = Operand8(raw)
	return
}

// DecodeOperand8 decodes a single byte.
func DecodeOperand8(input []byte) (rest []byte, value Operand8, err error) {
	rest, raw, err := operand8Field.decode(input)
	value = Operand8(raw)
	return
}

func (value Operand8) Text(format Format) string {
	return operand8Field.format(uint64(value), format)
}

func (value Operand8) String() string {
	return value.Text(FORMAT_DECIMAL)
}

func (value Operand8) AppendBinary(data []byte) ([]byte, error) {
	return operand8Field.append(data, uint64(value)), nil
}

// Operand16 is a 16-bit immediate.
type Operand16 uint16

// ParseOperand16 parses '#' and a digit run in the radix of format.
func ParseOperand16(input string, format Format) (rest string, value Operand16, err error) {
	rest, raw, err := operand16Field.parse(input, format)
	value = Operand16(raw)
	return
}

// DecodeOperand16 decodes two bytes, big-endian.
func DecodeOperand16(input []byte) (rest []byte, value Operand16, err error) {
	rest, raw, err := operand16Field.decode(input)
	value = Operand16(raw)
	return
}

func (value Operand16) Text(format Format) string {
	return operand16Field.format(uint64(value), format)
}

func (value Operand16) String() string {
	return value.Text(FORMAT_DECIMAL)
}

func (value Operand16) AppendBinary(data []byte) ([]byte, error) {
	return operand16Field.append(data, uint64(value)), nil
}
