package elfheader

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteText_64Bit(t *testing.T) {
	v, err := Decode(elfHeader64LE)
	require.NoError(t, err)

	want := "ELF Header:\n" +
		"  Magic:   7f 45 4c 46 02 01 01 00 00 00 00 00 00 00 00 00 \n" +
		"  Class:                             ELF64\n" +
		"  Data:                              2's complement, little endian\n" +
		"  Version:                           1 (current)\n" +
		"  OS/ABI:                            UNIX - System V\n" +
		"  ABI Version:                       0\n" +
		"  Type:                              EXEC (Executable file)\n" +
		"  Entry point address:               0x401000\n"

	var buf bytes.Buffer
	require.NoError(t, v.WriteText(&buf, RenderOptions{}))
	assert.Equal(t, want, buf.String())
}

func TestWriteText_32BitFull(t *testing.T) {
	v, err := Decode(elfHeader32BE)
	require.NoError(t, err)

	want := "ELF Header:\n" +
		"  Magic:   7f 45 4c 46 01 02 01 03 00 00 00 00 00 00 00 00 \n" +
		"  Class:                             ELF32\n" +
		"  Data:                              2's complement, big endian\n" +
		"  Version:                           1 (current)\n" +
		"  OS/ABI:                            UNIX - Linux\n" +
		"  ABI Version:                       0\n" +
		"  Type:                              DYN (Shared object file)\n" +
		"  Machine:                           MIPS R3000\n" +
		"  Version:                           0x1\n" +
		"  Entry point address:               0x8048\n" +
		"  Start of program headers:          52 (bytes into file)\n" +
		"  Start of section headers:          4096 (bytes into file)\n" +
		"  Flags:                             0x70001007\n" +
		"  Size of this header:               52 (bytes)\n" +
		"  Size of program headers:           32 (bytes)\n" +
		"  Number of program headers:         9\n" +
		"  Size of section headers:           40 (bytes)\n" +
		"  Number of section headers:         26\n" +
		"  Section header string table index: 25\n"

	got, err := v.Text(RenderOptions{Full: true})
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestWriteText_UnknownClass(t *testing.T) {
	buf := bytes.Clone(elfHeader64LE)
	buf[4] = 5
	buf[7] = 0x42

	v, err := Decode(buf)
	require.NoError(t, err)

	want := "ELF Header:\n" +
		"  Magic:   7f 45 4c 46 05 01 01 42 00 00 00 00 00 00 00 00 \n" +
		"  Class:                             <unknown: 5>\n" +
		"  Data:                              2's complement, little endian\n" +
		"  Version:                           1 (current)\n" +
		"  OS/ABI:                            <unknown: 42>\n" +
		"  ABI Version:                       0\n"

	got, err := v.Text(RenderOptions{})
	require.ErrorIs(t, err, ErrIndeterminateLayout)
	assert.Equal(t, want, got)
}

func TestWriteText_Deterministic(t *testing.T) {
	for _, buf := range [][]byte{elfHeader64LE, elfHeader32BE, elfHeader64LE[:20]} {
		var outputs []string
		for i := 0; i < 2; i++ {
			v, err := Decode(buf)
			require.NoError(t, err)
			got, _ := v.Text(RenderOptions{Full: true})
			outputs = append(outputs, got)
		}
		assert.Equal(t, outputs[0], outputs[1])
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestWriteText_WriterError(t *testing.T) {
	v, err := Decode(elfHeader64LE)
	require.NoError(t, err)

	err = v.WriteText(failingWriter{}, RenderOptions{})
	assert.EqualError(t, err, "disk full")
}

func TestFormatAddress(t *testing.T) {
	tests := []struct {
		name  string
		class Class
		addr  uint64
		pad   bool
		want  string
	}{
		{name: "32-bit", class: Class32, addr: 0x8048, want: "0x8048"},
		{name: "32-bit padded", class: Class32, addr: 0x8048, pad: true, want: "0x00008048"},
		{name: "64-bit", class: Class64, addr: 0x400002, want: "0x400002"},
		{name: "64-bit padded", class: Class64, addr: 0x400002, pad: true, want: "0x0000000000400002"},
		{name: "zero", class: Class64, addr: 0, want: "0x0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatAddress(tt.class, tt.addr, tt.pad))
		})
	}
}

func TestEnumStrings(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"class none", ClassNone.String(), "none"},
		{"data none", DataNone.String(), "none"},
		{"data unknown", Data(3).String(), "<unknown: 3>"},
		{"version none", Version(0).String(), "0"},
		{"version unknown", Version(2).String(), "2 <unknown>"},
		{"osabi freebsd", OSABI(9).String(), "UNIX - FreeBSD"},
		{"osabi standalone", OSABI(255).String(), "Standalone App"},
		{"type none", TypeNone.String(), "NONE (None)"},
		{"type rel", TypeRelocatable.String(), "REL (Relocatable file)"},
		{"type core", TypeCore.String(), "CORE (Core file)"},
		{"type os specific", Type(0xfe10).String(), "OS Specific: (fe10)"},
		{"type processor specific", Type(0xff01).String(), "Processor Specific: (ff01)"},
		{"type unknown", Type(0x42).String(), "<unknown>: 42"},
		{"machine aarch64", Machine(183).String(), "AArch64"},
		{"machine unknown", Machine(0x1234).String(), "<unknown>: 0x1234"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}

	assert.True(t, Class32.Known())
	assert.False(t, Class(5).Known())
	assert.False(t, ClassNone.Known())
	assert.True(t, DataBigEndian.Known())
	assert.False(t, OSABI(200).Known())
	assert.True(t, TypeCore.Known())
	assert.False(t, Type(0xff01).Known())
	assert.True(t, Machine(62).Known())
}
