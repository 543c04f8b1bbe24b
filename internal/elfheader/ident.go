package elfheader

import (
	"debug/elf"
	"fmt"
	"strings"
)

// Sizes of the fixed parts of an ELF file
const (
	IdentSize    = 16 // EI_NIDENT
	Header32Size = 52 // sizeof(Elf32_Ehdr)
	Header64Size = 64 // sizeof(Elf64_Ehdr)
)

// Offsets into the identification block
const (
	offClass      = 4 // EI_CLASS
	offData       = 5 // EI_DATA
	offVersion    = 6 // EI_VERSION
	offOSABI      = 7 // EI_OSABI
	offABIVersion = 8 // EI_ABIVERSION
)

// Magic is the 4-byte sequence every ELF file starts with
var Magic = [4]byte{0x7f, 'E', 'L', 'F'}

// Class is the EI_CLASS byte: the word width of the file
type Class byte

const (
	ClassNone = Class(elf.ELFCLASSNONE)
	Class32   = Class(elf.ELFCLASS32)
	Class64   = Class(elf.ELFCLASS64)
)

// Known reports whether the class selects a word width
func (c Class) Known() bool {
	return c == Class32 || c == Class64
}

// String returns the readelf display name
func (c Class) String() string {
	switch c {
	case ClassNone:
		return "none"
	case Class32:
		return "ELF32"
	case Class64:
		return "ELF64"
	default:
		return fmt.Sprintf("<unknown: %x>", byte(c))
	}
}

// Data is the EI_DATA byte: the byte order of every multi-byte field after the identification block
type Data byte

const (
	DataNone         = Data(elf.ELFDATANONE)
	DataLittleEndian = Data(elf.ELFDATA2LSB)
	DataBigEndian    = Data(elf.ELFDATA2MSB)
)

// Known reports whether the encoding selects a byte order
func (d Data) Known() bool {
	return d == DataLittleEndian || d == DataBigEndian
}

// String returns the readelf display name
func (d Data) String() string {
	switch d {
	case DataNone:
		return "none"
	case DataLittleEndian:
		return "2's complement, little endian"
	case DataBigEndian:
		return "2's complement, big endian"
	default:
		return fmt.Sprintf("<unknown: %x>", byte(d))
	}
}

// Version is the EI_VERSION byte
type Version byte

// VersionCurrent is EV_CURRENT
const VersionCurrent = Version(elf.EV_CURRENT)

func (v Version) String() string {
	switch {
	case v == VersionCurrent:
		return "1 (current)"
	case v == Version(elf.EV_NONE):
		return "0"
	default:
		return fmt.Sprintf("%d <unknown>", byte(v))
	}
}

// OSABI is the EI_OSABI byte
type OSABI byte

var osabiNames = map[OSABI]string{
	OSABI(elf.ELFOSABI_NONE):       "UNIX - System V",
	OSABI(elf.ELFOSABI_HPUX):       "UNIX - HP-UX",
	OSABI(elf.ELFOSABI_NETBSD):     "UNIX - NetBSD",
	OSABI(elf.ELFOSABI_LINUX):      "UNIX - Linux",
	OSABI(elf.ELFOSABI_HURD):       "GNU/Hurd",
	OSABI(elf.ELFOSABI_86OPEN):     "86Open",
	OSABI(elf.ELFOSABI_SOLARIS):    "UNIX - Solaris",
	OSABI(elf.ELFOSABI_AIX):        "UNIX - AIX",
	OSABI(elf.ELFOSABI_IRIX):       "UNIX - IRIX",
	OSABI(elf.ELFOSABI_FREEBSD):    "UNIX - FreeBSD",
	OSABI(elf.ELFOSABI_TRU64):      "UNIX - TRU64",
	OSABI(elf.ELFOSABI_MODESTO):    "Novell - Modesto",
	OSABI(elf.ELFOSABI_OPENBSD):    "UNIX - OpenBSD",
	OSABI(elf.ELFOSABI_OPENVMS):    "VMS - OpenVMS",
	OSABI(elf.ELFOSABI_NSK):        "HP - Non-Stop Kernel",
	OSABI(elf.ELFOSABI_AROS):       "AROS",
	OSABI(elf.ELFOSABI_FENIXOS):    "FenixOS",
	OSABI(elf.ELFOSABI_CLOUDABI):   "Nuxi CloudABI",
	OSABI(elf.ELFOSABI_ARM):        "ARM",
	OSABI(elf.ELFOSABI_STANDALONE): "Standalone App",
}

// Known reports whether the ABI has a display name
func (o OSABI) Known() bool {
	_, ok := osabiNames[o]
	return ok
}

func (o OSABI) String() string {
	if name, ok := osabiNames[o]; ok {
		return name
	}
	return fmt.Sprintf("<unknown: %x>", byte(o))
}

// Identification is the decoded EI_NIDENT block
type Identification struct {
	Raw        [IdentSize]byte
	Class      Class
	Data       Data
	Version    Version
	OSABI      OSABI
	ABIVersion uint8
}

// NewIdentification builds an identification block with the ELF magic and the given fields.
// Padding bytes are zero.
func NewIdentification(class Class, data Data, version Version, osabi OSABI, abiVersion uint8) Identification {
	var raw [IdentSize]byte
	copy(raw[:], Magic[:])
	raw[offClass] = byte(class)
	raw[offData] = byte(data)
	raw[offVersion] = byte(version)
	raw[offOSABI] = byte(osabi)
	raw[offABIVersion] = abiVersion
	return parseIdentification(raw)
}

func parseIdentification(raw [IdentSize]byte) Identification {
	return Identification{
		Raw:        raw,
		Class:      Class(raw[offClass]),
		Data:       Data(raw[offData]),
		Version:    Version(raw[offVersion]),
		OSABI:      OSABI(raw[offOSABI]),
		ABIVersion: raw[offABIVersion],
	}
}

// HasMagic reports whether the block starts with the ELF magic
func (id Identification) HasMagic() bool {
	return [4]byte(id.Raw[:4]) == Magic
}

// MagicString renders all 16 identification bytes the way readelf does
func (id Identification) MagicString() string {
	var sb strings.Builder
	for _, b := range id.Raw {
		fmt.Fprintf(&sb, "%02x ", b)
	}
	return sb.String()
}
