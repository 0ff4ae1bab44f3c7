package isa

const (
	MNEMONIC_LOAD = "LOAD"
	OPCODE_LOAD   = Opcode(1)
)

// Load stores a 16-bit immediate into a register.
type Load struct {
	Register RegisterIndex // Destination register.
	Value    Operand16     // Immediate to store.
}

// MakeLoad creates a LOAD instruction.
func MakeLoad(reg RegisterIndex, value Operand16) Load {
	return Load{Register: reg, Value: value}
}

func (load Load) Mnemonic() string { return MNEMONIC_LOAD }
func (load Load) Opcode() Opcode   { return OPCODE_LOAD }

func (load Load) Text(format Format) string {
	return formatRecord(MNEMONIC_LOAD, format, load.Register, load.Value)
}

func (load Load) String() string {
	return load.Text(FORMAT_DECIMAL)
}

// AppendBinary appends the 4 byte record: opcode, register, immediate.
func (load Load) AppendBinary(data []byte) ([]byte, error) {
	return appendRecord(data, OPCODE_LOAD, load.Register, load.Value)
}

func (load Load) MarshalBinary() ([]byte, error) {
	return load.AppendBinary(make([]byte, 0, RECORD_SIZE))
}

func parseLoad(input string, format Format) (rest string, inst Instruction, err error) {
	scan := textScanner{input: input, format: format}

	reg, err := scan.register()
	if err != nil {
		return
	}

	value, err := scan.operand16()
	if err != nil {
		return
	}

	rest, inst = scan.input, MakeLoad(reg, value)
	return
}

func decodeLoad(input []byte) (rest []byte, inst Instruction, err error) {
	scan := binaryScanner{input: input}

	reg, err := scan.register()
	if err != nil {
		return
	}

	value, err := scan.operand16()
	if err != nil {
		return
	}

	rest, inst = scan.input, MakeLoad(reg, value)
	return
}

func init() {
	MustRegister(Definition{
		Mnemonic:     MNEMONIC_LOAD,
		Opcode:       OPCODE_LOAD,
		ParseText:    parseLoad,
		DecodeBinary: decodeLoad,
	})
}
