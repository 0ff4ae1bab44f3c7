// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"fmt"
	"io"
	"iter"
	"maps"
	"os"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/tebeka/atexit"

	"github.com/ezrec/lvm/asm"
	"github.com/ezrec/lvm/emulator"
	"github.com/ezrec/lvm/internal"
	"github.com/ezrec/lvm/isa"
	"github.com/ezrec/lvm/repl"
	"github.com/ezrec/lvm/translate"
)

// predefines collects -D NAME=VALUE flags.
type predefines map[string]string

func (pd predefines) String() string {
	return fmt.Sprintf("%v", map[string]string(pd))
}

func (pd predefines) Set(define string) (err error) {
	name, value, ok := strings.Cut(define, "=")
	if !ok || len(name) == 0 {
		err = fmt.Errorf("%v: expected NAME=VALUE", define)
		return
	}

	pd[name] = value
	return
}

// load reads a listing from a text source or a binary program.
func load(compile string, binary string, format isa.Format, defines iter.Seq2[string, string], verbose bool) (lst *asm.Listing, err error) {
	switch {
	case len(compile) != 0:
		var inf *os.File
		inf, err = os.Open(compile)
		if err != nil {
			return
		}
		defer inf.Close()

		assembler := &asm.Assembler{Verbose: verbose, Format: format}
		for name, value := range defines {
			assembler.Predefine(name, value)
		}
		lst, err = assembler.Parse(inf)
	case len(binary) != 0:
		var data []byte
		data, err = os.ReadFile(binary)
		if err != nil {
			return
		}

		var prog isa.Program
		prog, err = isa.DecodeProgram(data)
		if err != nil {
			return
		}
		lst = asm.NewListing(prog)
	default:
		lst = &asm.Listing{}
	}

	return
}

// write encodes the program of a listing to w.
func write(w io.Writer, lst *asm.Listing, format isa.Format) (err error) {
	prog := lst.Program()

	var data []byte
	if format.IsText() {
		data = []byte(prog.Text(format))
		if len(data) != 0 {
			data = append(data, '\n')
		}
	} else {
		data, err = prog.MarshalBinary()
		if err != nil {
			return
		}
	}

	_, err = w.Write(data)
	return
}

func main() {
	var compile string
	var binary string
	var input string
	var output string
	var outfmt string
	var execute bool
	var interactive bool
	var verbose bool
	var dump bool
	var lang string

	defines := predefines{}

	flag.StringVar(&compile, "c", "", ".lvm source file to assemble")
	flag.StringVar(&binary, "b", "", "binary program file to load")
	flag.StringVar(&input, "f", "dec", "Source format (dec, hex)")
	flag.StringVar(&outfmt, "F", "dec", "Output format (dec, HEX, hex, bin)")
	flag.StringVar(&output, "o", "-", "Output file")
	flag.BoolVar(&execute, "x", false, "Execute the program, and print the registers")
	flag.BoolVar(&interactive, "r", false, "Interactive repl")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")
	flag.BoolVar(&dump, "dump", false, "Dump the assembled listing")
	flag.StringVar(&lang, "lang", "", "Message language (BCP 47 tag)")
	flag.Var(defines, "D", "Predefine an equate, as NAME=VALUE")

	flag.Parse()

	if flag.NArg() != 0 {
		atexit.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	if len(lang) != 0 {
		translate.SetLanguage(lang)
	}

	if len(compile) != 0 && len(binary) != 0 {
		atexit.Fatalf("%v: -c and -b are exclusive", os.Args[0])
	}

	inFormat, err := isa.ParseFormat(input)
	if err == nil && !inFormat.IsText() {
		err = isa.ErrFormatInvalid
	}
	if err != nil {
		atexit.Fatalf("-f %v: %v", input, err)
	}

	outFormat, err := isa.ParseFormat(outfmt)
	if err != nil {
		atexit.Fatalf("-F %v: %v", outfmt, err)
	}

	if interactive {
		rp := repl.NewRepl(repl.WithName("Language VM"), repl.WithFormat(inFormat))
		rp.Verbose = verbose
		err = rp.Run()
		if err != nil {
			atexit.Fatal(err)
		}
		atexit.Exit(0)
	}

	emu := emulator.NewEmulator()
	emu.Verbose = verbose

	// Command line defines override the emulator defines.
	all := internal.IterSeq2Concat(emu.Defines(), maps.All(defines))

	lst, err := load(compile, binary, inFormat, all, verbose)
	if err != nil {
		atexit.Fatal(err)
	}

	var ouf io.Writer = os.Stdout
	if output != "-" {
		file, err := os.Create(output)
		if err != nil {
			atexit.Fatalf("%v: %v", output, err)
		}
		atexit.Register(func() { file.Close() })
		ouf = file
	}

	if dump {
		spew.Fdump(os.Stderr, lst)
	}

	if !execute {
		err = write(ouf, lst, outFormat)
		if err != nil {
			atexit.Fatalf("%v: %v", output, err)
		}
		atexit.Exit(0)
	}

	emu.Listing = lst
	emu.Reset()
	err = emu.Run()
	if err != nil {
		atexit.Fatal(err)
	}

	regFormat := isa.FORMAT_DECIMAL
	if outFormat.IsHex() {
		regFormat = outFormat
	}
	fmt.Fprintln(ouf, emu.Machine.Text(regFormat))

	atexit.Exit(0)
}
