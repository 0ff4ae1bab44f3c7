// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package asm assembles LVM source text into a listing of instructions.
//
// Source is line oriented, with one instruction per line in the decimal or
// hexadecimal form of package isa. On top of that the assembler accepts
// ';' comments, '.equ NAME VALUE' equates, '.radix 10' or '.radix 16' to
// switch between the text forms, character literals ('A'), and
// compile-time '$(expr)' expressions evaluated with Starlark.
package asm

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/lvm/isa"
)

// Line is one assembled instruction and its source location.
type Line struct {
	LineNo      int             // Source line number, starting at 1.
	Text        string          // Source text after expansion.
	Instruction isa.Instruction // Decoded instruction.
}

// Listing is the result of an assembly.
type Listing struct {
	Lines []Line
}

// NewListing lists an already decoded program, numbering one line per
// instruction.
func NewListing(prog isa.Program) (lst *Listing) {
	lst = &Listing{}
	for n, inst := range prog.All() {
		lst.Lines = append(lst.Lines, Line{LineNo: n + 1, Text: inst.String(), Instruction: inst})
	}

	return
}

// Program returns the instructions of the listing.
func (lst *Listing) Program() isa.Program {
	insts := make([]isa.Instruction, 0, len(lst.Lines))
	for _, line := range lst.Lines {
		insts = append(insts, line.Instruction)
	}

	return isa.MakeProgram(insts...)
}

// LineNo returns the source line of an instruction index, or 0 if none.
func (lst *Listing) LineNo(index int) int {
	if index < 0 || index >= len(lst.Lines) {
		return 0
	}

	return lst.Lines[index].LineNo
}

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO":      "0",
	"RECORD_SIZE": fmt.Sprintf("%v", isa.RECORD_SIZE),
}

// Assembler is a single pass assembler for LVM source.
type Assembler struct {
	Verbose bool       // If set, verbosely logs the assembler actions.
	Format  isa.Format // Initial text format of the source.

	Equate map[string]string // Map of equates.

	predefine map[string]string // Predefines
	format    isa.Format        // Current text format.
	lines     []Line            // Assembled lines.
}

// Predefine defines a new equate or redefines an existing equate, applied
// at the start of every Parse.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// radix returns the numeric base of the current format.
func (asm *Assembler) radix() int {
	if asm.format.IsHex() {
		return 16
	}

	return 10
}

// render formats a number as a digit run in the current format.
func (asm *Assembler) render(value uint64) string {
	return strconv.FormatUint(value, asm.radix())
}

// valueOf returns the value of a simple word, ignoring an operand prefix.
func (asm *Assembler) valueOf(word string) (value uint64, err error) {
	digits := strings.TrimLeft(word, isa.REGISTER_PREFIX+isa.OPERAND_PREFIX)

	base := asm.radix()
	if lower := strings.ToLower(digits); strings.HasPrefix(lower, "0x") {
		base = 16
		digits = digits[2:]
	}

	value, err = strconv.ParseUint(digits, base, 32)
	if err != nil {
		err = ErrParseNumber(word)
		return
	}

	return
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value uint64, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		var value64 uint64
		value64, err = asm.valueOf(str)
		if err != nil {
			// Ignore non-integer equates.
			err = nil
			continue
		}
		pred[key] = starlark.MakeUint64(value64)
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value, ok = st_int.Uint64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	return
}

var (
	reCharacter  = regexp.MustCompile(`'\\?[^']'`)
	reExpression = regexp.MustCompile(`\$\([^\$]*\)`)
)

// substitute replaces a word naming an equate, bare or operand prefixed.
func (asm *Assembler) substitute(word string) string {
	equate, ok := asm.Equate[word]
	if ok {
		return equate
	}

	for _, prefix := range []string{isa.REGISTER_PREFIX, isa.OPERAND_PREFIX} {
		name, prefixed := strings.CutPrefix(word, prefix)
		if !prefixed {
			continue
		}
		equate, ok = asm.Equate[name]
		if ok {
			return prefix + strings.TrimLeft(equate, isa.REGISTER_PREFIX+isa.OPERAND_PREFIX)
		}
	}

	return word
}

// parseLine expands a single line, and returns the instruction text it
// holds, if any.
func (asm *Assembler) parseLine(line string, lineno int) (text string, err error) {
	// Set line number.
	asm.Equate["LINENO"] = asm.render(uint64(lineno))

	// Do 'x' evaluations
	line = reCharacter.ReplaceAllStringFunc(line, func(word string) string {
		str := word[1 : len(word)-1]
		if str[0] == '\\' {
			str = str[1:]
			switch str {
			case "\\":
				str = "\\"
			case "n":
				str = "\n"
			case "r":
				str = "\r"
			case "t":
				str = "\t"
			case "e":
				str = "\033"
			default:
				return word
			}
		} else if len(str) != 1 {
			return word
		}
		return asm.render(uint64(str[0]))
	})

	// Do $() evaluations
	line = reExpression.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return asm.render(value)
	})
	if err != nil {
		return
	}

	words := strings.Fields(line)
	if len(words) == 0 {
		return
	}

	switch words[0] {
	case ".equ":
		// .equ CONST VALUE
		if len(words) != 3 {
			err = ErrEquateSyntax
			return
		}
		_, ok := asm.Equate[words[1]]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		asm.Equate[words[1]] = words[2]
		return
	case ".radix":
		// .radix 10|16
		if len(words) != 2 {
			err = ErrRadixSyntax
			return
		}
		switch words[1] {
		case "10":
			asm.format = isa.FORMAT_DECIMAL
		case "16":
			if !asm.format.IsHex() {
				asm.format = isa.FORMAT_HEX_UPPER
			}
		default:
			err = ErrRadixSyntax
		}
		return
	}

	if strings.HasPrefix(words[0], ".") {
		err = ErrDirectiveUnknown
		return
	}

	for n, word := range words {
		words[n] = asm.substitute(word)
	}

	text = strings.Join(words, " ")
	return
}

// Parse parses an input stream into a listing of instructions.
func (asm *Assembler) Parse(input io.Reader) (lst *Listing, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	asm.lines = asm.lines[:0]
	asm.format = asm.Format
	if !asm.format.IsText() {
		err = isa.ErrFormatInvalid
		return
	}
	asm.Equate = maps.Clone(sysEquate)
	for attr, val := range asm.predefine {
		asm.Equate[attr] = val
	}

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Printf("%v: %v\n", lineno, text)
		}

		text_comment := strings.Split(text, ";")
		line = strings.TrimSpace(text_comment[0])

		var source string
		source, err = asm.parseLine(line, lineno)
		if err != nil {
			return
		}
		if len(source) == 0 {
			continue
		}

		var inst isa.Instruction
		inst, err = isa.ParseInstructionLine(source, asm.format)
		if err != nil {
			return
		}

		asm.lines = append(asm.lines, Line{LineNo: lineno, Text: source, Instruction: inst})
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	lst = &Listing{
		Lines: slices.Clone(asm.lines),
	}

	return
}
