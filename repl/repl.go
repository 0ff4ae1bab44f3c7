// Package repl is an interactive line-at-a-time front end to a machine.
package repl

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/ezrec/lvm/isa"
	"github.com/ezrec/lvm/machine"
	"github.com/ezrec/lvm/translate"
)

const (
	DEFAULT_NAME   = "lvm repl"
	DEFAULT_PROMPT = ">"
	VERSION        = "0.1.0"
)

var fprintf = translate.Fprintf

// Repl reads instructions or commands and applies them to a machine.
type Repl struct {
	Verbose bool // If set, the machine logs every instruction.

	Name    string     // Name shown by the banner and help.
	Version string     // Version shown by the banner and help.
	Prompt  string     // Prompt, followed by a space.
	Format  isa.Format // Text format of entered instructions.

	Machine *machine.Machine // Machine the instructions are applied to.
	Program isa.Program      // Instructions executed so far.

	input  io.Reader
	output io.Writer
}

// Option configures a Repl.
type Option func(repl *Repl)

// WithName sets the banner name.
func WithName(name string) Option {
	return func(repl *Repl) {
		repl.Name = name
	}
}

// WithPrompt sets the prompt.
func WithPrompt(prompt string) Option {
	return func(repl *Repl) {
		repl.Prompt = prompt
	}
}

// WithFormat sets the initial instruction format.
func WithFormat(format isa.Format) Option {
	return func(repl *Repl) {
		repl.Format = format
	}
}

// WithInput sets the line source.
func WithInput(input io.Reader) Option {
	return func(repl *Repl) {
		repl.input = input
	}
}

// WithOutput sets where responses are written.
func WithOutput(output io.Writer) Option {
	return func(repl *Repl) {
		repl.output = output
	}
}

// NewRepl creates a repl on stdin and stderr with a zeroed machine.
func NewRepl(opts ...Option) (repl *Repl) {
	repl = &Repl{
		Name:    DEFAULT_NAME,
		Version: VERSION,
		Prompt:  DEFAULT_PROMPT,
		Format:  isa.FORMAT_DECIMAL,
		Machine: machine.NewMachine(),
		input:   os.Stdin,
		output:  os.Stderr,
	}

	for _, opt := range opts {
		opt(repl)
	}

	return
}

// help writes the command summary.
func (repl *Repl) help() (err error) {
	lines := []struct {
		format string
		args   []any
	}{
		{"%v - %v repl\n", []any{repl.Name, repl.Version}},
		{"  :h   - prints the help\n", nil},
		{"  :q   - terminates the application\n", nil},
		{"  :i   - prints the registers in decimal\n", nil},
		{"  :ix  - prints the registers in hexadecimal\n", nil},
		{"  :dec - enter instructions in decimal\n", nil},
		{"  :hex - enter instructions in hexadecimal\n", nil},
		{"  :p   - prints the instructions executed so far\n", nil},
	}

	for _, line := range lines {
		_, err = fprintf(repl.output, line.format, line.args...)
		if err != nil {
			return
		}
	}

	return
}

// Execute handles a single line of input, and reports whether the repl
// should keep reading.
func (repl *Repl) Execute(line string) (more bool, err error) {
	more = true
	line = strings.TrimSpace(line)

	switch line {
	case "":
	case ":q":
		more = false
		_, err = fprintf(repl.output, "Quitting\n")
	case ":h":
		err = repl.help()
	case ":i":
		_, err = fprintf(repl.output, "%v\n", repl.Machine.Text(isa.FORMAT_DECIMAL))
	case ":ix":
		_, err = fprintf(repl.output, "%v\n", repl.Machine.Text(isa.FORMAT_HEX_UPPER))
	case ":dec":
		repl.Format = isa.FORMAT_DECIMAL
	case ":hex":
		repl.Format = isa.FORMAT_HEX_UPPER
	case ":p":
		if repl.Program.Len() != 0 {
			_, err = fprintf(repl.output, "%v\n", repl.Program.Text(repl.Format))
		}
	default:
		var inst isa.Instruction
		inst, err = isa.ParseInstructionLine(line, repl.Format)
		if err != nil {
			_, err = fprintf(repl.output, "Unknown: %v: %v\n", line, err)
			return
		}

		_, err = fprintf(repl.output, "Executing: %v\n", inst)
		if err != nil {
			return
		}

		repl.Machine.Verbose = repl.Verbose
		err = repl.Machine.Apply(inst)
		if err != nil {
			_, err = fprintf(repl.output, "Error: %v\n", err)
			return
		}

		repl.Program = repl.Program.Append(inst)
	}

	return
}

// Run writes the banner, then executes lines until ':q' or the end of
// input.
func (repl *Repl) Run() (err error) {
	_, err = fprintf(repl.output, "Welcome to `%v - %v` repl!\n", repl.Name, repl.Version)
	if err != nil {
		return
	}

	scanner := bufio.NewScanner(repl.input)
	for more := true; more; {
		_, err = fprintf(repl.output, "%v ", repl.Prompt)
		if err != nil {
			return
		}

		if !scanner.Scan() {
			err = scanner.Err()
			return
		}

		more, err = repl.Execute(scanner.Text())
		if err != nil {
			return
		}
	}

	return
}
