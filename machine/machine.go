// Package machine executes LVM instructions against a register file.
package machine

import (
	"fmt"
	"iter"
	"log"
	"maps"
	"strings"

	"github.com/ezrec/lvm/isa"
)

const (
	REGISTER_COUNT = 32 // Size of the register file.
	DUMP_COLUMNS   = 8  // Registers per line of a dump.
)

var _machine_defines = map[string]string{
	"REGISTER_COUNT": fmt.Sprintf("%v", REGISTER_COUNT),
	"REGISTER_LAST":  fmt.Sprintf("%v", REGISTER_COUNT-1),
}

// Machine is a register file of 16-bit registers.
type Machine struct {
	Verbose bool // Set to enable verbose logging.

	Register [REGISTER_COUNT]uint16 // Register file.
	Ticks    int                    // Instructions applied since reset.
}

// NewMachine creates a machine with all registers zeroed.
func NewMachine() (m *Machine) {
	m = &Machine{}
	return
}

// Defines returns the equates describing the machine, for the assembler.
func (m *Machine) Defines() iter.Seq2[string, string] {
	return maps.All(_machine_defines)
}

// Reset zeroes the registers and the tick counter.
func (m *Machine) Reset() {
	if m.Verbose {
		log.Printf("machine: reset")
	}

	clear(m.Register[:])
	m.Ticks = 0
}

// check validates a register index against the register file.
func (m *Machine) check(regs ...isa.RegisterIndex) (err error) {
	for _, reg := range regs {
		if int(reg) >= REGISTER_COUNT {
			err = ErrRegisterInvalid(reg)
			return
		}
	}

	return
}

// Apply executes a single instruction. A failing instruction leaves the
// registers unchanged.
func (m *Machine) Apply(inst isa.Instruction) (err error) {
	switch op := inst.(type) {
	case isa.Load:
		err = m.check(op.Register)
		if err != nil {
			return
		}
		m.Register[op.Register] = uint16(op.Value)
	case isa.Add:
		err = m.check(op.Source1, op.Source2, op.Dest)
		if err != nil {
			return
		}
		// Sums wrap at 16 bits.
		m.Register[op.Dest] = m.Register[op.Source1] + m.Register[op.Source2]
	default:
		err = ErrInstructionUnsupported
		return
	}

	m.Ticks++

	if m.Verbose {
		log.Printf("machine: %v", inst)
	}

	return
}

// Run applies every instruction of prog in order, stopping at the first
// failure.
func (m *Machine) Run(prog isa.Program) (err error) {
	for n, inst := range prog.All() {
		err = m.Apply(inst)
		if err != nil {
			err = &ErrApply{Index: n, Instruction: inst, Err: err}
			return
		}
	}

	return
}

// Text dumps the register file in decimal or hexadecimal.
func (m *Machine) Text(format isa.Format) (text string) {
	var lines []string
	for base := 0; base < REGISTER_COUNT; base += DUMP_COLUMNS {
		var cols []string
		for n := base; n < base+DUMP_COLUMNS && n < REGISTER_COUNT; n++ {
			val := m.Register[n]
			switch format {
			case isa.FORMAT_HEX_UPPER:
				cols = append(cols, fmt.Sprintf("%02X:%04X", n, val))
			case isa.FORMAT_HEX_LOWER:
				cols = append(cols, fmt.Sprintf("%02x:%04x", n, val))
			default:
				cols = append(cols, fmt.Sprintf("$%-2d:%5d", n, val))
			}
		}
		lines = append(lines, strings.Join(cols, " "))
	}

	text = strings.Join(lines, "\n")
	return
}

// String returns the register file in decimal.
func (m *Machine) String() string {
	return m.Text(isa.FORMAT_DECIMAL)
}
