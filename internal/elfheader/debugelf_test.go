package elfheader

import (
	"debug/elf"
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDecode_MatchesDebugELF decodes the running test binary and compares the
// result with the standard library's reader.
func TestDecode_MatchesDebugELF(t *testing.T) {
	exe, err := os.Executable()
	require.NoError(t, err)

	f, err := elf.Open(exe)
	if err != nil {
		t.Skipf("test binary is not an ELF file: %v", err)
	}
	defer f.Close()

	raw, err := os.Open(exe)
	require.NoError(t, err)
	defer raw.Close()

	buf := make([]byte, Header64Size)
	n, err := io.ReadFull(raw, buf)
	if err != nil && err != io.ErrUnexpectedEOF {
		require.NoError(t, err)
	}

	v, err := Decode(buf[:n])
	require.NoError(t, err)
	require.NoError(t, v.HeaderErr())

	id := v.Identification()
	assert.Equal(t, uint8(f.Class), uint8(id.Class))
	assert.Equal(t, uint8(f.Data), uint8(id.Data))
	assert.Equal(t, uint8(f.Version), uint8(id.Version))
	assert.Equal(t, uint8(f.OSABI), uint8(id.OSABI))
	assert.Equal(t, f.ABIVersion, id.ABIVersion)

	h, err := v.Header()
	require.NoError(t, err)
	assert.Equal(t, uint16(f.Type), uint16(h.Type))
	assert.Equal(t, uint16(f.Machine), uint16(h.Machine))
	assert.Equal(t, f.Entry, h.Entry)
	assert.Equal(t, len(f.Progs), int(h.ProgramHeaderCount))
}
