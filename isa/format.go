package isa

// Format selects one of the instruction representations.
type Format int

//go:generate go tool stringer -linecomment -type=Format
const (
	FORMAT_DECIMAL   = Format(0) // dec
	FORMAT_HEX_UPPER = Format(1) // HEX
	FORMAT_HEX_LOWER = Format(2) // hex
	FORMAT_BINARY    = Format(3) // bin
)

// IsText returns true if the format is one of the assembly text forms.
func (format Format) IsText() bool {
	return format >= FORMAT_DECIMAL && format <= FORMAT_HEX_LOWER
}

// IsHex returns true for either case of hexadecimal text.
func (format Format) IsHex() bool {
	return format == FORMAT_HEX_UPPER || format == FORMAT_HEX_LOWER
}

// ParseFormat returns the format named by its String() form.
func ParseFormat(name string) (format Format, err error) {
	for format = FORMAT_DECIMAL; format <= FORMAT_BINARY; format++ {
		if format.String() == name {
			return
		}
	}

	format = FORMAT_DECIMAL
	err = ErrFormatInvalid
	return
}
