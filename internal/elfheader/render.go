package elfheader

import (
	"fmt"
	"io"
	"strings"
)

// Heading is the first line of the text report
const Heading = "ELF Header:"

// labelWidth is the column where values start, after the two-space indent
const labelWidth = 35

// RenderOptions controls which fields are rendered and how
type RenderOptions struct {
	// Full adds the remaining fixed header fields, as readelf -h does
	Full bool

	// PadAddresses zero-pads the entry point to the class word width
	PadAddresses bool
}

// Field is one labelled line of the report
type Field struct {
	Label string `json:"label" yaml:"label"`
	Value string `json:"value" yaml:"value"`
}

// PaddedLabel returns the label with its colon, padded to the value column
func (f Field) PaddedLabel() string {
	if f.Label == "Magic" {
		return "Magic:   "
	}
	return fmt.Sprintf("%-*s", labelWidth, f.Label+":")
}

// Line formats the field as a report line without the trailing newline
func (f Field) Line() string {
	return "  " + f.PaddedLabel() + f.Value
}

// Fields returns the fields taken from the identification block
func (id Identification) Fields() []Field {
	return []Field{
		{Label: "Magic", Value: id.MagicString()},
		{Label: "Class", Value: id.Class.String()},
		{Label: "Data", Value: id.Data.String()},
		{Label: "Version", Value: id.Version.String()},
		{Label: "OS/ABI", Value: id.OSABI.String()},
		{Label: "ABI Version", Value: fmt.Sprintf("%d", id.ABIVersion)},
	}
}

// Fields returns the report fields in output order. When the class-dependent
// fields cannot be decoded the identification fields are returned together with
// the reason.
func (v *View) Fields(opts RenderOptions) ([]Field, error) {
	fields := v.ident.Fields()
	h, err := v.Header()
	if err != nil {
		return fields, err
	}

	fields = append(fields, Field{Label: "Type", Value: h.Type.String()})
	if opts.Full {
		fields = append(fields,
			Field{Label: "Machine", Value: h.Machine.String()},
			Field{Label: "Version", Value: fmt.Sprintf("0x%x", h.Version)},
		)
	}
	fields = append(fields, Field{Label: "Entry point address", Value: FormatAddress(v.ident.Class, h.Entry, opts.PadAddresses)})
	if opts.Full {
		fields = append(fields,
			Field{Label: "Start of program headers", Value: fmt.Sprintf("%d (bytes into file)", h.ProgramHeaderOffset)},
			Field{Label: "Start of section headers", Value: fmt.Sprintf("%d (bytes into file)", h.SectionHeaderOffset)},
			Field{Label: "Flags", Value: fmt.Sprintf("0x%x", h.Flags)},
			Field{Label: "Size of this header", Value: fmt.Sprintf("%d (bytes)", h.HeaderSize)},
			Field{Label: "Size of program headers", Value: fmt.Sprintf("%d (bytes)", h.ProgramHeaderEntrySize)},
			Field{Label: "Number of program headers", Value: fmt.Sprintf("%d", h.ProgramHeaderCount)},
			Field{Label: "Size of section headers", Value: fmt.Sprintf("%d (bytes)", h.SectionHeaderEntrySize)},
			Field{Label: "Number of section headers", Value: fmt.Sprintf("%d", h.SectionHeaderCount)},
			Field{Label: "Section header string table index", Value: fmt.Sprintf("%d", h.SectionNameIndex)},
		)
	}
	return fields, nil
}

// FormatAddress renders an address for the given class. ELF32 addresses are
// 32-bit values, so padding uses 8 hex digits for them and 16 for ELF64.
func FormatAddress(class Class, addr uint64, pad bool) string {
	if class == Class32 {
		if pad {
			return fmt.Sprintf("0x%08x", uint32(addr))
		}
		return fmt.Sprintf("0x%x", uint32(addr))
	}
	if pad {
		return fmt.Sprintf("0x%016x", addr)
	}
	return fmt.Sprintf("0x%x", addr)
}

// WriteText writes the readelf-style report. The identification lines are
// written even when the remaining fields fail to decode; that error is returned.
func (v *View) WriteText(w io.Writer, opts RenderOptions) error {
	fields, ferr := v.Fields(opts)

	var sb strings.Builder
	sb.WriteString(Heading + "\n")
	for _, f := range fields {
		sb.WriteString(f.Line() + "\n")
	}
	if _, err := io.WriteString(w, sb.String()); err != nil {
		return err
	}
	return ferr
}

// Text returns the report produced by WriteText
func (v *View) Text(opts RenderOptions) (string, error) {
	var sb strings.Builder
	err := v.WriteText(&sb, opts)
	return sb.String(), err
}
