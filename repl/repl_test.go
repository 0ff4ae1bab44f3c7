package repl

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/lvm/isa"
)

func doRun(input []string, t *testing.T, opts ...Option) (repl *Repl, output string) {
	out := &bytes.Buffer{}
	opts = append(opts,
		WithInput(strings.NewReader(strings.Join(input, "\n"))),
		WithOutput(out),
	)

	repl = NewRepl(opts...)
	err := repl.Run()
	assert.NoError(t, err)

	output = out.String()
	return
}

func TestNewRepl(t *testing.T) {
	assert := assert.New(t)

	repl := NewRepl(WithName("Test"), WithPrompt("*>"), WithFormat(isa.FORMAT_HEX_LOWER))
	assert.Equal("Test", repl.Name)
	assert.Equal("*>", repl.Prompt)
	assert.Equal(VERSION, repl.Version)
	assert.Equal(isa.FORMAT_HEX_LOWER, repl.Format)
	assert.NotNil(repl.Machine)
	assert.Equal(0, repl.Program.Len())
}

func TestReplExecute(t *testing.T) {
	assert := assert.New(t)

	repl, output := doRun([]string{
		"LOAD $10 #500",
		"  LOAD $20 #12  ",
		"ADD $10 $20 $30",
		":q",
		"LOAD $1 #1",
	}, t, WithName("Test"))

	expected := strings.Join([]string{
		"Welcome to `Test - 0.1.0` repl!",
		"> Executing: LOAD $10 #500",
		"> Executing: LOAD $20 #12",
		"> Executing: ADD $10 $20 $30",
		"> Quitting",
		"",
	}, "\n")
	assert.Equal(expected, output)

	assert.Equal(uint16(500), repl.Machine.Register[10])
	assert.Equal(uint16(12), repl.Machine.Register[20])
	assert.Equal(uint16(512), repl.Machine.Register[30])
	assert.Equal(uint16(0), repl.Machine.Register[1])
	assert.Equal(3, repl.Program.Len())
}

func TestReplUnknown(t *testing.T) {
	assert := assert.New(t)

	repl, output := doRun([]string{
		"JUMP $1",
		"LOAD $1 #1 #2",
		"LOAD $40 #1",
	}, t)

	assert.Contains(output, "Unknown: JUMP $1: instruction: unknown mnemonic 'JUMP'\n")
	assert.Contains(output, "Unknown: LOAD $1 #1 #2: instruction: trailing input\n")
	assert.Contains(output, "Executing: LOAD $40 #1\n")
	assert.Contains(output, "Error: register $40 invalid\n")
	assert.Equal(0, repl.Program.Len())
}

func TestReplCommands(t *testing.T) {
	assert := assert.New(t)

	repl, output := doRun([]string{
		":h",
		":hex",
		"LOAD 1F ABCD",
		":p",
		":dec",
		":p",
		":ix",
		":i",
		"",
	}, t)

	assert.Contains(output, "lvm repl - 0.1.0 repl\n")
	assert.Contains(output, "  :ix  - prints the registers in hexadecimal\n")
	assert.Contains(output, "Executing: LOAD $31 #43981\n")
	assert.Contains(output, "> LOAD 1F ABCD\n")
	assert.Contains(output, "> LOAD $31 #43981\n")
	assert.Contains(output, "1F:ABCD")
	assert.Contains(output, "$31:43981")
	assert.Equal(isa.FORMAT_DECIMAL, repl.Format)
	assert.Equal(uint16(0xABCD), repl.Machine.Register[31])
}
