package elfheader

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleHeader() Header {
	return Header{
		Type:                   TypeExecutable,
		Machine:                Machine(0x3e),
		Version:                1,
		Entry:                  0x8048,
		ProgramHeaderOffset:    0x34,
		SectionHeaderOffset:    0x1234,
		Flags:                  0x5000400,
		HeaderSize:             52,
		ProgramHeaderEntrySize: 32,
		ProgramHeaderCount:     7,
		SectionHeaderEntrySize: 40,
		SectionHeaderCount:     29,
		SectionNameIndex:       28,
	}
}

func TestEncode_RoundTrip(t *testing.T) {
	tests := []struct {
		name      string
		class     Class
		data      Data
		order     binary.ByteOrder
		entrySize int
	}{
		{name: "32-bit little endian", class: Class32, data: DataLittleEndian, order: binary.LittleEndian, entrySize: 4},
		{name: "32-bit big endian", class: Class32, data: DataBigEndian, order: binary.BigEndian, entrySize: 4},
		{name: "64-bit little endian", class: Class64, data: DataLittleEndian, order: binary.LittleEndian, entrySize: 8},
		{name: "64-bit big endian", class: Class64, data: DataBigEndian, order: binary.BigEndian, entrySize: 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id := NewIdentification(tt.class, tt.data, VersionCurrent, OSABI(3), 0)
			h := sampleHeader()

			buf, err := Encode(id, h)
			require.NoError(t, err)
			require.Len(t, buf, HeaderSize(tt.class))

			// entry point bytes follow type, machine and version
			want := make([]byte, 8)
			if tt.entrySize == 4 {
				tt.order.PutUint32(want, uint32(h.Entry))
			} else {
				tt.order.PutUint64(want, h.Entry)
			}
			assert.Equal(t, want[:tt.entrySize], buf[24:24+tt.entrySize])

			v, err := Decode(buf)
			require.NoError(t, err)
			assert.Equal(t, id, v.Identification())

			got, err := v.Header()
			require.NoError(t, err)
			assert.Equal(t, h, got)
		})
	}
}

func TestEncode_Errors(t *testing.T) {
	t.Run("missing magic", func(t *testing.T) {
		_, err := Encode(Identification{Class: Class64, Data: DataLittleEndian}, Header{})
		assert.ErrorIs(t, err, ErrNotELF)
	})

	t.Run("unknown class", func(t *testing.T) {
		id := NewIdentification(Class(7), DataLittleEndian, VersionCurrent, 0, 0)
		_, err := Encode(id, Header{})
		assert.ErrorIs(t, err, ErrIndeterminateLayout)
	})

	t.Run("64-bit entry in 32-bit file", func(t *testing.T) {
		id := NewIdentification(Class32, DataBigEndian, VersionCurrent, 0, 0)
		_, err := Encode(id, Header{Entry: 0x100000000})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "entry 0x100000000 does not fit in ELF32")
	})
}

func TestNewIdentification(t *testing.T) {
	id := NewIdentification(Class64, DataBigEndian, VersionCurrent, OSABI(9), 2)

	assert.True(t, id.HasMagic())
	assert.Equal(t, [IdentSize]byte{0x7f, 'E', 'L', 'F', 2, 2, 1, 9, 2}, id.Raw)
	assert.Equal(t, Class64, id.Class)
	assert.Equal(t, DataBigEndian, id.Data)
	assert.Equal(t, OSABI(9), id.OSABI)
	assert.Equal(t, uint8(2), id.ABIVersion)
}
