// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package emulator steps a machine through an assembled listing.
package emulator

import (
	"fmt"
	"iter"
	"log"
	"strings"

	"github.com/ezrec/lvm/asm"
	"github.com/ezrec/lvm/internal"
	"github.com/ezrec/lvm/isa"
	"github.com/ezrec/lvm/machine"
)

// Emulator state. Machine + listing + instruction pointer.
type Emulator struct {
	Verbose          bool         // If set, enables verbose logging.
	*machine.Machine              // Reference to the machine simulation.
	Listing          *asm.Listing // Reference to the currently running listing.

	Ip int // Index of the next instruction to execute.
}

// NewEmulator creates a new emulator with an empty listing.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Machine: machine.NewMachine(),
		Listing: &asm.Listing{},
	}

	return
}

// opcodeDefines returns an OPCODE_<mnemonic> define per registered opcode.
func opcodeDefines() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for def := range isa.Definitions() {
			name := "OPCODE_" + strings.ToUpper(def.Mnemonic)
			if !yield(name, fmt.Sprintf("%v", def.Opcode)) {
				return
			}
		}
	}
}

// Defines returns an iterator over all of the defines
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(
		emu.Machine.Defines(),
		opcodeDefines(),
	)
}

// Reset the machine and rewind to the first instruction.
func (emu *Emulator) Reset() {
	emu.Machine.Verbose = emu.Verbose
	emu.Machine.Reset()
	emu.Ip = 0
}

// Ticks returns the total ticks since a reset.
func (emu *Emulator) Ticks() int {
	return emu.Machine.Ticks
}

// Instruction returns the next instruction to execute, or nil at the end.
func (emu *Emulator) Instruction() isa.Instruction {
	if emu.Ip < 0 || emu.Ip >= len(emu.Listing.Lines) {
		return nil
	}

	return emu.Listing.Lines[emu.Ip].Instruction
}

// LineNo returns the current line number for the executing instruction.
func (emu *Emulator) LineNo() int {
	return emu.Listing.LineNo(emu.Ip)
}

// Tick performs a single instruction of the emulator.
func (emu *Emulator) Tick() (done bool, err error) {
	// Set machine verbosity
	emu.Machine.Verbose = emu.Verbose

	inst := emu.Instruction()
	if inst == nil {
		done = true
		return
	}

	lineno := emu.LineNo()
	defer func() {
		if err != nil {
			err = &ErrRuntime{LineNo: lineno, Instruction: inst, Err: err}
		}
	}()

	if emu.Verbose {
		log.Printf("emulator: %d: %v", lineno, inst)
	}

	err = emu.Machine.Apply(inst)
	if err != nil {
		return
	}

	emu.Ip++

	return
}

// Run ticks the emulator until the listing is done.
func (emu *Emulator) Run() (err error) {
	var done bool
	for !done {
		done, err = emu.Tick()
		if err != nil {
			return
		}
	}

	return
}
