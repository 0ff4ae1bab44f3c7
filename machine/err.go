package machine

import (
	"errors"

	"github.com/ezrec/lvm/isa"
	"github.com/ezrec/lvm/translate"
)

var f = translate.From

var (
	ErrInstructionUnsupported = errors.New(f("instruction unsupported"))
)

// ErrRegisterInvalid is returned for a register index outside the file.
type ErrRegisterInvalid uint8

func (err ErrRegisterInvalid) Error() string {
	return f("register $%d invalid", uint8(err))
}

func (err ErrRegisterInvalid) Is(target error) (ok bool) {
	_, ok = target.(ErrRegisterInvalid)
	return
}

// ErrApply locates the instruction of a program that failed.
type ErrApply struct {
	Index       int
	Instruction isa.Instruction
	Err         error
}

func (err *ErrApply) Error() string {
	return f("instruction %d '%v' %v", err.Index, err.Instruction, err.Err)
}

func (err *ErrApply) Unwrap() error {
	return err.Err
}
