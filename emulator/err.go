package emulator

import (
	"github.com/ezrec/lvm/isa"
	"github.com/ezrec/lvm/translate"
)

var f = translate.From

// ErrRuntime locates a failing instruction in the source listing.
type ErrRuntime struct {
	LineNo      int
	Instruction isa.Instruction
	Err         error
}

func (err *ErrRuntime) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Instruction, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
