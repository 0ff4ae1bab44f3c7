package isa

import (
	"iter"
	"reflect"
	"slices"
	"strings"
	"unicode"
)

// Program is an ordered sequence of instructions.
type Program struct {
	instructions []Instruction
}

// MakeProgram creates a program owning a copy of insts.
func MakeProgram(insts ...Instruction) Program {
	return Program{instructions: slices.Clone(insts)}
}

// ParseProgram parses whitespace separated instructions. Surrounding
// whitespace is ignored, and empty input is the empty program.
func ParseProgram(input string, format Format) (prog Program, err error) {
	var insts []Instruction

	rest := strings.TrimSpace(input)
	for len(rest) > 0 {
		var inst Instruction
		rest, inst, err = ParseInstruction(rest, format)
		if err != nil {
			err = wrap(CONTEXT_PROGRAM, err)
			return
		}
		insts = append(insts, inst)
		rest = strings.TrimLeftFunc(rest, unicode.IsSpace)
	}

	prog = Program{instructions: insts}
	return
}

// DecodeProgram decodes concatenated binary records. A remainder shorter
// than a record is an error.
func DecodeProgram(data []byte) (prog Program, err error) {
	var insts []Instruction

	rest := data
	for len(rest) > 0 {
		if len(rest) < RECORD_SIZE {
			err = wrap(CONTEXT_PROGRAM, wrap(CONTEXT_INSTRUCTION, ErrUnexpectedEnd))
			return
		}

		var inst Instruction
		rest, inst, err = DecodeInstruction(rest)
		if err != nil {
			err = wrap(CONTEXT_PROGRAM, err)
			return
		}
		insts = append(insts, inst)
	}

	prog = Program{instructions: insts}
	return
}

// Len returns the number of instructions.
func (prog Program) Len() int {
	return len(prog.instructions)
}

// At returns the instruction at index.
func (prog Program) At(index int) Instruction {
	return prog.instructions[index]
}

// All iterates over the instructions in order.
func (prog Program) All() iter.Seq2[int, Instruction] {
	return slices.All(prog.instructions)
}

// Instructions returns a copy of the instructions.
func (prog Program) Instructions() []Instruction {
	return slices.Clone(prog.instructions)
}

// Append returns a new program with insts added to the end.
func (prog Program) Append(insts ...Instruction) Program {
	return Program{instructions: slices.Concat(prog.instructions, insts)}
}

// Equal returns true if both programs hold the same instructions in order.
// An instruction with an Equal(Instruction) bool method decides for itself,
// and any other is compared deeply.
func (prog Program) Equal(other Program) bool {
	return slices.EqualFunc(prog.instructions, other.instructions, instructionEqual)
}

func instructionEqual(a, b Instruction) bool {
	if eq, ok := a.(interface{ Equal(Instruction) bool }); ok {
		return eq.Equal(b)
	}

	return reflect.DeepEqual(a, b)
}

// Text renders one instruction per line.
func (prog Program) Text(format Format) string {
	lines := make([]string, 0, len(prog.instructions))
	for _, inst := range prog.instructions {
		lines = append(lines, inst.Text(format))
	}

	return strings.Join(lines, "\n")
}

func (prog Program) String() string {
	return prog.Text(FORMAT_DECIMAL)
}

func (prog Program) MarshalText() ([]byte, error) {
	return []byte(prog.Text(FORMAT_DECIMAL)), nil
}

// AppendBinary appends every record, with no header or delimiter.
func (prog Program) AppendBinary(data []byte) (out []byte, err error) {
	out = data
	for _, inst := range prog.instructions {
		out, err = inst.AppendBinary(out)
		if err != nil {
			return
		}
	}

	return
}

func (prog Program) MarshalBinary() ([]byte, error) {
	return prog.AppendBinary(make([]byte, 0, RECORD_SIZE*len(prog.instructions)))
}

func (prog *Program) UnmarshalBinary(data []byte) (err error) {
	*prog, err = DecodeProgram(data)
	return
}

func (prog *Program) UnmarshalText(text []byte) (err error) {
	*prog, err = ParseProgram(string(text), FORMAT_DECIMAL)
	return
}
