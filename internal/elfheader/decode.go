// Package elfheader decodes and renders the fixed header of ELF object files.
//
// Decoding is a pure function of the input buffer: the identification block is
// always interpreted once the magic matches, while the class-dependent fields are
// decoded only when the class and data bytes select a layout and enough bytes are
// present. A View keeps the reason those fields are missing so that the
// identification block can still be reported.
package elfheader

import (
	"bytes"
)

// View is an immutable snapshot of a decoded ELF header
type View struct {
	ident     Identification
	header    Header
	layout    layout
	headerErr error
}

// Decode interprets buf as the beginning of an ELF file.
//
// It fails with ErrTruncated when buf is shorter than the identification block
// and with ErrNotELF when the magic does not match. Problems with the fields after
// the identification block do not fail Decode; they are reported by View.Header.
func Decode(buf []byte) (*View, error) {
	if len(buf) < IdentSize {
		return nil, truncated("identification", IdentSize, len(buf))
	}
	if !bytes.Equal(buf[:len(Magic)], Magic[:]) {
		return nil, &DecodeError{Field: "magic", Err: ErrNotELF, Magic: [4]byte(buf[:4])}
	}

	v := &View{ident: parseIdentification([IdentSize]byte(buf[:IdentSize]))}

	l, err := selectLayout(v.ident.Class, v.ident.Data)
	if err != nil {
		v.headerErr = err
		return v, nil
	}
	v.layout = l

	h, err := decodeHeader(l, buf)
	if err != nil {
		v.headerErr = err
		return v, nil
	}
	v.header = h
	return v, nil
}

// Identification returns the decoded identification block
func (v *View) Identification() Identification {
	return v.ident
}

// Header returns the class-dependent header fields, or the reason they could not be decoded
func (v *View) Header() (Header, error) {
	if v.headerErr != nil {
		return Header{}, v.headerErr
	}
	return v.header, nil
}

// HeaderErr returns the reason the class-dependent fields are unavailable, if any
func (v *View) HeaderErr() error {
	return v.headerErr
}

// Entry returns the entry point address
func (v *View) Entry() (uint64, error) {
	h, err := v.Header()
	if err != nil {
		return 0, err
	}
	return h.Entry, nil
}

// Type returns the object file type
func (v *View) Type() (Type, error) {
	h, err := v.Header()
	if err != nil {
		return 0, err
	}
	return h.Type, nil
}

// LayoutName names the decode strategy that was used ("elf64-little", ...), or "" when none applies
func (v *View) LayoutName() string {
	return v.layout.name
}
