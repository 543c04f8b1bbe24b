package elfheader

import (
	"encoding/binary"
)

// layout is the decode strategy for everything after the identification block.
// The four variants differ only in word width and byte order.
type layout struct {
	name  string
	order binary.ByteOrder
	word  int // width of addresses and offsets in bytes
	size  int // size of the fixed header
}

type layoutKey struct {
	class Class
	data  Data
}

var layouts = map[layoutKey]layout{
	{Class32, DataLittleEndian}: {name: "elf32-little", order: binary.LittleEndian, word: 4, size: Header32Size},
	{Class32, DataBigEndian}:    {name: "elf32-big", order: binary.BigEndian, word: 4, size: Header32Size},
	{Class64, DataLittleEndian}: {name: "elf64-little", order: binary.LittleEndian, word: 8, size: Header64Size},
	{Class64, DataBigEndian}:    {name: "elf64-big", order: binary.BigEndian, word: 8, size: Header64Size},
}

// selectLayout picks the decode strategy named by the two identification bytes
func selectLayout(class Class, data Data) (layout, error) {
	l, ok := layouts[layoutKey{class, data}]
	if !ok {
		return layout{}, &DecodeError{Field: "header", Err: ErrIndeterminateLayout, Class: class, Data: data}
	}
	return l, nil
}

// HeaderSize returns the fixed header size for a class, or 0 when the class is unknown
func HeaderSize(class Class) int {
	switch class {
	case Class32:
		return Header32Size
	case Class64:
		return Header64Size
	default:
		return 0
	}
}

// fieldReader walks the fixed header in file order
type fieldReader struct {
	l   layout
	buf []byte
	off int
}

func (r *fieldReader) half() uint16 {
	v := r.l.order.Uint16(r.buf[r.off:])
	r.off += 2
	return v
}

func (r *fieldReader) word32() uint32 {
	v := r.l.order.Uint32(r.buf[r.off:])
	r.off += 4
	return v
}

// addr reads an address or offset: 4 bytes for ELF32, 8 for ELF64
func (r *fieldReader) addr() uint64 {
	if r.l.word == 4 {
		return uint64(r.word32())
	}
	v := r.l.order.Uint64(r.buf[r.off:])
	r.off += 8
	return v
}

// fieldWriter is the inverse of fieldReader
type fieldWriter struct {
	l   layout
	buf []byte
	off int
}

func (w *fieldWriter) half(v uint16) {
	w.l.order.PutUint16(w.buf[w.off:], v)
	w.off += 2
}

func (w *fieldWriter) word32(v uint32) {
	w.l.order.PutUint32(w.buf[w.off:], v)
	w.off += 4
}

func (w *fieldWriter) addr(v uint64) {
	if w.l.word == 4 {
		w.word32(uint32(v))
		return
	}
	w.l.order.PutUint64(w.buf[w.off:], v)
	w.off += 8
}
