package elfheader

import (
	"fmt"
	"math"
)

// Header holds the fixed header fields that follow the identification block.
// Addresses and offsets are widened to 64 bits regardless of class.
type Header struct {
	Type                   Type    `json:"type" yaml:"type"`
	Machine                Machine `json:"machine" yaml:"machine"`
	Version                uint32  `json:"version" yaml:"version"`
	Entry                  uint64  `json:"entry" yaml:"entry"`
	ProgramHeaderOffset    uint64  `json:"phoff" yaml:"phoff"`
	SectionHeaderOffset    uint64  `json:"shoff" yaml:"shoff"`
	Flags                  uint32  `json:"flags" yaml:"flags"`
	HeaderSize             uint16  `json:"ehsize" yaml:"ehsize"`
	ProgramHeaderEntrySize uint16  `json:"phentsize" yaml:"phentsize"`
	ProgramHeaderCount     uint16  `json:"phnum" yaml:"phnum"`
	SectionHeaderEntrySize uint16  `json:"shentsize" yaml:"shentsize"`
	SectionHeaderCount     uint16  `json:"shnum" yaml:"shnum"`
	SectionNameIndex       uint16  `json:"shstrndx" yaml:"shstrndx"`
}

// decodeHeader reads the fixed header with the given layout. buf starts at offset 0 of the file.
func decodeHeader(l layout, buf []byte) (Header, error) {
	if len(buf) < l.size {
		return Header{}, truncated("header", l.size, len(buf))
	}

	r := &fieldReader{l: l, buf: buf, off: IdentSize}
	var h Header
	h.Type = Type(r.half())
	h.Machine = Machine(r.half())
	h.Version = r.word32()
	h.Entry = r.addr()
	h.ProgramHeaderOffset = r.addr()
	h.SectionHeaderOffset = r.addr()
	h.Flags = r.word32()
	h.HeaderSize = r.half()
	h.ProgramHeaderEntrySize = r.half()
	h.ProgramHeaderCount = r.half()
	h.SectionHeaderEntrySize = r.half()
	h.SectionHeaderCount = r.half()
	h.SectionNameIndex = r.half()
	return h, nil
}

// Encode serializes an identification block and header into a fixed header of
// 52 (ELF32) or 64 (ELF64) bytes in the byte order named by id.Data.
func Encode(id Identification, h Header) ([]byte, error) {
	if !id.HasMagic() {
		return nil, &DecodeError{Field: "magic", Err: ErrNotELF, Magic: [4]byte(id.Raw[:4])}
	}
	l, err := selectLayout(id.Class, id.Data)
	if err != nil {
		return nil, err
	}
	if l.word == 4 {
		words := []struct {
			name string
			v    uint64
		}{
			{"entry", h.Entry},
			{"phoff", h.ProgramHeaderOffset},
			{"shoff", h.SectionHeaderOffset},
		}
		for _, w := range words {
			if w.v > math.MaxUint32 {
				return nil, fmt.Errorf("%s 0x%x does not fit in %s", w.name, w.v, id.Class)
			}
		}
	}

	buf := make([]byte, l.size)
	copy(buf, id.Raw[:])
	w := &fieldWriter{l: l, buf: buf, off: IdentSize}
	w.half(uint16(h.Type))
	w.half(uint16(h.Machine))
	w.word32(h.Version)
	w.addr(h.Entry)
	w.addr(h.ProgramHeaderOffset)
	w.addr(h.SectionHeaderOffset)
	w.word32(h.Flags)
	w.half(h.HeaderSize)
	w.half(h.ProgramHeaderEntrySize)
	w.half(h.ProgramHeaderCount)
	w.half(h.SectionHeaderEntrySize)
	w.half(h.SectionHeaderCount)
	w.half(h.SectionNameIndex)
	return buf, nil
}
