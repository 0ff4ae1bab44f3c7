package asm

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/lvm/isa"
)

func TestAssembler(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	lst, err := asm.Parse(strings.NewReader(""))
	assert.NoError(err)
	assert.Equal(0, len(lst.Lines))
	assert.Equal(0, lst.Program().Len())

	assert.Equal("0", asm.Equate["LINENO"])
	assert.Equal("4", asm.Equate["RECORD_SIZE"])
}

func TestAssemblerProgram(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	program := []string{
		"; load and add",
		"",
		"LOAD $10 #500   ; r10 = 500",
		"  LOAD $20 #12",
		"ADD $10 $20 $30",
	}

	lst, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	assert.NoError(err)
	if err != nil {
		t.Fatal(err)
	}

	expected := []Line{
		{3, "LOAD $10 #500", isa.MakeLoad(10, 500)},
		{4, "LOAD $20 #12", isa.MakeLoad(20, 12)},
		{5, "ADD $10 $20 $30", isa.MakeAdd(10, 20, 30)},
	}
	assert.Equal(expected, lst.Lines)

	prog := lst.Program()
	data, err := prog.MarshalBinary()
	assert.NoError(err)
	assert.Equal([]byte{1, 10, 1, 0xF4, 1, 20, 0, 12, 2, 10, 20, 30}, data)

	assert.Equal(3, lst.LineNo(0))
	assert.Equal(5, lst.LineNo(2))
	assert.Equal(0, lst.LineNo(3))
	assert.Equal(0, lst.LineNo(-1))
}

func TestAssemblerHex(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{Format: isa.FORMAT_HEX_LOWER}
	program := []string{
		"LOAD 0a 01f4",
		".radix 10",
		"LOAD $10 #500",
		".radix 16",
		"ADD $0A $14 $1E",
	}

	lst, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	assert.NoError(err)

	prog := lst.Program()
	assert.Equal(3, prog.Len())
	assert.Equal(isa.MakeLoad(10, 500), prog.At(0))
	assert.Equal(isa.MakeLoad(10, 500), prog.At(1))
	assert.Equal(isa.MakeAdd(10, 20, 30), prog.At(2))
}

func TestAssemblerEqu(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	asm.Predefine("ACC", "10")
	program := []string{
		".equ CONST_10 10",
		"LOAD $ACC #CONST_10",
		"LOAD $1 #$(CONST_10 + CONST_10)",
		".equ CONST_30 $(2 * CONST_10 + CONST_10)",
		"LOAD $2 #CONST_30",
		"LOAD $3 #$(LINENO * 8 + 0x10)",
		".equ DST $31",
		"ADD $ACC $1 DST",
		"LOAD $4 #'A'",
		"LOAD $$(ACC + 1) #'\\n'",
	}

	lst, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	assert.NoError(err)
	if err != nil {
		t.Fatal(errors.Unwrap(err))
	}

	expected := []isa.Instruction{
		isa.MakeLoad(10, 10),
		isa.MakeLoad(1, 20),
		isa.MakeLoad(2, 30),
		isa.MakeLoad(3, 6*8+0x10),
		isa.MakeAdd(10, 1, 31),
		isa.MakeLoad(4, 'A'),
		isa.MakeLoad(11, '\n'),
	}
	assert.Equal(expected, lst.Program().Instructions())
	assert.Equal("ADD $10 $1 $31", lst.Lines[4].Text)
}

func TestAssemblerEquHex(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{Format: isa.FORMAT_HEX_UPPER}
	program := []string{
		".equ BASE 10",
		"LOAD $BASE #$(BASE + 0x10)",
	}

	lst, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	assert.NoError(err)
	assert.Equal(isa.MakeLoad(0x10, 0x20), lst.Program().At(0))
	assert.Equal("LOAD $10 #20", lst.Lines[0].Text)
}

func TestAssemblerErrors(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name   string
		source string
		lineno int
		err    error
	}){
		{"equ_syntax", ".equ A", 1, ErrEquateSyntax},
		{"equ_duplicate", ".equ A 1\n.equ A 2", 2, ErrEquateDuplicate},
		{"radix", ".radix 8", 1, ErrRadixSyntax},
		{"directive", ".org 0", 1, ErrDirectiveUnknown},
		{"mnemonic", "LOAD $1 #1\nJUMP $1", 2, isa.ErrUnknownMnemonic("")},
		{"operand", "\n\nLOAD $1 #70000", 3, isa.ErrValueOutOfRange},
		{"trailing", "ADD $1 $2 $3 $4", 1, isa.ErrTrailingInput},
		{"expression", "LOAD $1 #$(-1)", 1, ErrParseExpression("")},
	}

	for _, entry := range table {
		asm := &Assembler{}
		lst, err := asm.Parse(strings.NewReader(entry.source))
		assert.Nil(lst, entry.name)

		var syn *ErrSyntax
		if assert.True(errors.As(err, &syn), entry.name) {
			assert.Equal(entry.lineno, syn.LineNo, entry.name)
		}

		if _, ok := entry.err.(ErrParseExpression); ok {
			var expr ErrParseExpression
			assert.True(errors.As(err, &expr), entry.name)
			continue
		}
		assert.ErrorIs(err, entry.err, entry.name)
	}

	_, err := (&Assembler{}).Parse(strings.NewReader("LOAD $x #1"))
	assert.EqualError(err, "line 1 'LOAD $x #1' instruction → load → register: malformed operand")

	_, err = (&Assembler{Format: isa.FORMAT_BINARY}).Parse(strings.NewReader(""))
	assert.ErrorIs(err, isa.ErrFormatInvalid)
}

func TestAssemblerReuse(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	first, err := asm.Parse(strings.NewReader(".equ A 1\nLOAD $A #1"))
	assert.NoError(err)

	second, err := asm.Parse(strings.NewReader(".equ A 2\nLOAD $A #2"))
	assert.NoError(err)

	assert.Equal(isa.MakeLoad(1, 1), first.Program().At(0))
	assert.Equal(isa.MakeLoad(2, 2), second.Program().At(0))
}

func TestNewListing(t *testing.T) {
	assert := assert.New(t)

	prog := isa.MakeProgram(isa.MakeLoad(1, 2), isa.MakeAdd(1, 1, 3))
	lst := NewListing(prog)

	expected := []Line{
		{1, "LOAD $1 #2", isa.MakeLoad(1, 2)},
		{2, "ADD $1 $1 $3", isa.MakeAdd(1, 1, 3)},
	}
	assert.Equal(expected, lst.Lines)
	assert.True(prog.Equal(lst.Program()))
}
