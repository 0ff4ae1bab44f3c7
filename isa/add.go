package isa

const (
	MNEMONIC_ADD = "ADD"
	OPCODE_ADD   = Opcode(2)
)

// Add stores the sum of two registers in a third. The registers may alias.
type Add struct {
	Source1 RegisterIndex
	Source2 RegisterIndex
	Dest    RegisterIndex
}

// MakeAdd creates an ADD instruction.
func MakeAdd(source1, source2, dest RegisterIndex) Add {
	return Add{Source1: source1, Source2: source2, Dest: dest}
}

func (add Add) Mnemonic() string { return MNEMONIC_ADD }
func (add Add) Opcode() Opcode   { return OPCODE_ADD }

func (add Add) Text(format Format) string {
	return formatRecord(MNEMONIC_ADD, format, add.Source1, add.Source2, add.Dest)
}

func (add Add) String() string {
	return add.Text(FORMAT_DECIMAL)
}

// AppendBinary appends the 4 byte record: opcode, source1, source2, dest.
func (add Add) AppendBinary(data []byte) ([]byte, error) {
	return appendRecord(data, OPCODE_ADD, add.Source1, add.Source2, add.Dest)
}

func (add Add) MarshalBinary() ([]byte, error) {
	return add.AppendBinary(make([]byte, 0, RECORD_SIZE))
}

func parseAdd(input string, format Format) (rest string, inst Instruction, err error) {
	scan := textScanner{input: input, format: format}

	var regs [3]RegisterIndex
	for n := range regs {
		regs[n], err = scan.register()
		if err != nil {
			return
		}
	}

	rest, inst = scan.input, MakeAdd(regs[0], regs[1], regs[2])
	return
}

func decodeAdd(input []byte) (rest []byte, inst Instruction, err error) {
	scan := binaryScanner{input: input}

	var regs [3]RegisterIndex
	for n := range regs {
		regs[n], err = scan.register()
		if err != nil {
			return
		}
	}

	rest, inst = scan.input, MakeAdd(regs[0], regs[1], regs[2])
	return
}

func init() {
	MustRegister(Definition{
		Mnemonic:     MNEMONIC_ADD,
		Opcode:       OPCODE_ADD,
		ParseText:    parseAdd,
		DecodeBinary: decodeAdd,
	})
}
