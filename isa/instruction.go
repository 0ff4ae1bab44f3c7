package isa

import (
	"encoding"
	"fmt"
	"iter"
	"maps"
	"slices"
	"strings"
	"sync"
	"unicode"
)

// Opcode is the id byte leading a binary record.
type Opcode uint8

// RECORD_SIZE is the binary width of every instruction.
const RECORD_SIZE = 4

// Instruction is a decoded instruction of any opcode.
type Instruction interface {
	Textual
	encoding.BinaryAppender
	fmt.Stringer

	Mnemonic() string // Text form opcode name.
	Opcode() Opcode   // Binary form opcode id.
}

// Definition describes how an opcode reads itself from each form.
type Definition struct {
	Mnemonic string // Mnemonic, matched literally.
	Opcode   Opcode // Opcode id byte.

	// ParseText parses the operand list following the mnemonic.
	ParseText func(input string, format Format) (rest string, inst Instruction, err error)
	// DecodeBinary decodes the operand fields following the opcode byte.
	DecodeBinary func(input []byte) (rest []byte, inst Instruction, err error)
}

// label is the error context label of the opcode.
func (def *Definition) label() string {
	return strings.ToLower(def.Mnemonic)
}

var registry = struct {
	sync.RWMutex
	mnemonic map[string]*Definition
	opcode   map[Opcode]*Definition
}{
	mnemonic: map[string]*Definition{},
	opcode:   map[Opcode]*Definition{},
}

// Register adds an opcode definition to the dispatcher.
func Register(def Definition) (err error) {
	if len(def.Mnemonic) == 0 || strings.IndexFunc(def.Mnemonic, unicode.IsSpace) >= 0 ||
		def.ParseText == nil || def.DecodeBinary == nil {
		err = ErrDefinitionInvalid
		return
	}

	registry.Lock()
	defer registry.Unlock()

	_, has_mnemonic := registry.mnemonic[def.Mnemonic]
	_, has_opcode := registry.opcode[def.Opcode]
	if has_mnemonic || has_opcode {
		err = ErrOpcodeDuplicate
		return
	}

	registry.mnemonic[def.Mnemonic] = &def
	registry.opcode[def.Opcode] = &def

	return
}

// MustRegister registers def, and panics on failure.
func MustRegister(def Definition) {
	err := Register(def)
	if err != nil {
		panic(fmt.Sprintf("isa: register %v: %v", def.Mnemonic, err))
	}
}

func lookupMnemonic(mnemonic string) (def *Definition, ok bool) {
	registry.RLock()
	defer registry.RUnlock()

	def, ok = registry.mnemonic[mnemonic]
	return
}

func lookupOpcode(opcode Opcode) (def *Definition, ok bool) {
	registry.RLock()
	defer registry.RUnlock()

	def, ok = registry.opcode[opcode]
	return
}

// Definitions returns all registered opcodes in opcode id order.
func Definitions() iter.Seq[Definition] {
	registry.RLock()
	opcodes := slices.Sorted(maps.Keys(registry.opcode))
	defs := make([]Definition, 0, len(opcodes))
	for _, opcode := range opcodes {
		defs = append(defs, *registry.opcode[opcode])
	}
	registry.RUnlock()

	return slices.Values(defs)
}

// ParseInstruction parses one instruction from the start of input. The
// mnemonic selects the opcode; once it matches, operand failures are
// reported as is rather than trying another opcode.
func ParseInstruction(input string, format Format) (rest string, inst Instruction, err error) {
	defer func() {
		if err != nil {
			rest, inst, err = "", nil, wrap(CONTEXT_INSTRUCTION, err)
		}
	}()

	if !format.IsText() {
		err = ErrFormatInvalid
		return
	}

	if len(input) == 0 {
		err = ErrUnexpectedEnd
		return
	}

	mnemonic := leadingWord(input)
	def, ok := lookupMnemonic(mnemonic)
	if !ok {
		err = ErrUnknownMnemonic(mnemonic)
		return
	}

	rest, inst, err = def.ParseText(input[len(mnemonic):], format)
	err = wrap(def.label(), err)

	return
}

// ParseInstructionLine parses a line holding exactly one instruction,
// ignoring surrounding whitespace.
func ParseInstructionLine(line string, format Format) (inst Instruction, err error) {
	rest, inst, err := ParseInstruction(strings.TrimSpace(line), format)
	if err == nil && len(rest) != 0 {
		inst = nil
		err = wrap(CONTEXT_INSTRUCTION, ErrTrailingInput)
	}

	return
}

// DecodeInstruction decodes one binary record from the start of input.
func DecodeInstruction(input []byte) (rest []byte, inst Instruction, err error) {
	defer func() {
		if err != nil {
			rest, inst, err = nil, nil, wrap(CONTEXT_INSTRUCTION, err)
		}
	}()

	if len(input) == 0 {
		err = ErrUnexpectedEnd
		return
	}

	opcode := Opcode(input[0])
	def, ok := lookupOpcode(opcode)
	if !ok {
		err = ErrUnknownOpcode(opcode)
		return
	}

	rest, inst, err = def.DecodeBinary(input[1:])
	err = wrap(def.label(), err)

	return
}

// formatRecord renders a mnemonic and its operands as one line of text.
func formatRecord(mnemonic string, format Format, operands ...Textual) string {
	words := make([]string, 0, 1+len(operands))
	words = append(words, mnemonic)
	for _, operand := range operands {
		words = append(words, operand.Text(format))
	}

	return strings.Join(words, " ")
}

// appendRecord appends the opcode byte and the operand fields.
func appendRecord(data []byte, opcode Opcode, operands ...encoding.BinaryAppender) (out []byte, err error) {
	out = append(data, byte(opcode))
	for _, operand := range operands {
		out, err = operand.AppendBinary(out)
		if err != nil {
			return
		}
	}

	return
}
