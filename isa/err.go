package isa

import (
	"errors"

	"github.com/ezrec/lvm/translate"
)

var f = translate.From

var (
	// Operand errors
	ErrMalformedOperand = errors.New(f("malformed operand"))
	ErrValueOutOfRange  = errors.New(f("value out of range"))
	ErrUnexpectedEnd    = errors.New(f("unexpected end of input"))

	// Caller policy errors
	ErrTrailingInput = errors.New(f("trailing input"))
	ErrFormatInvalid = errors.New(f("format invalid"))

	// Registry errors
	ErrOpcodeDuplicate   = errors.New(f("opcode duplicated"))
	ErrDefinitionInvalid = errors.New(f("definition invalid"))
)

// Context labels, outermost first.
const (
	CONTEXT_PROGRAM     = "program"
	CONTEXT_INSTRUCTION = "instruction"
)

// ErrUnknownMnemonic is returned when no registered opcode has the mnemonic.
type ErrUnknownMnemonic string

func (err ErrUnknownMnemonic) Error() string {
	return f("unknown mnemonic '%v'", string(err))
}

func (err ErrUnknownMnemonic) Is(target error) (ok bool) {
	_, ok = target.(ErrUnknownMnemonic)
	return
}

// ErrUnknownOpcode is returned when no registered opcode has the id byte.
type ErrUnknownOpcode Opcode

func (err ErrUnknownOpcode) Error() string {
	return f("unknown opcode 0x%02x", uint8(err))
}

func (err ErrUnknownOpcode) Is(target error) (ok bool) {
	_, ok = target.(ErrUnknownOpcode)
	return
}

// ErrContext labels an error with the component that produced it.
// Nested contexts render as a path: program → instruction → load → register.
type ErrContext struct {
	Label string
	Err   error
}

func (err *ErrContext) Error() string {
	if _, nested := err.Err.(*ErrContext); nested {
		return f("%v → %v", err.Label, err.Err)
	}

	return f("%v: %v", err.Label, err.Err)
}

func (err *ErrContext) Unwrap() error {
	return err.Err
}

// wrap labels a non-nil error.
func wrap(label string, err error) error {
	if err == nil {
		return nil
	}

	return &ErrContext{Label: label, Err: err}
}
