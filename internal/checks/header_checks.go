package checks

import (
	"fmt"

	"github.com/raven-betanet/elfhdr/internal/elfheader"
)

// Table entry sizes defined by the ELF ABI
const (
	programHeaderEntrySize32 = 32 // sizeof(Elf32_Phdr)
	programHeaderEntrySize64 = 56 // sizeof(Elf64_Phdr)
	sectionHeaderEntrySize32 = 40 // sizeof(Elf32_Shdr)
	sectionHeaderEntrySize64 = 64 // sizeof(Elf64_Shdr)

	sectionIndexExtended = 0xffff // SHN_XINDEX
)

// DefaultChecks returns the header checks run by the check command, in report order
func DefaultChecks() []HeaderCheck {
	return []HeaderCheck{
		&IdentClassCheck{},
		&IdentDataCheck{},
		&IdentVersionCheck{},
		&HeaderLayoutCheck{},
		&FormatVersionCheck{},
		&HeaderSizeCheck{},
		&ProgramHeaderEntrySizeCheck{},
		&SectionHeaderEntrySizeCheck{},
		&SectionNameIndexCheck{},
		&EntryPointCheck{},
	}
}

// NewDefaultRegistry creates a registry holding DefaultChecks
func NewDefaultRegistry() *CheckRegistry {
	registry := NewCheckRegistry()
	for _, check := range DefaultChecks() {
		// IDs in DefaultChecks are unique
		_ = registry.Register(check)
	}
	return registry
}

func pass(msg string, args ...interface{}) CheckResult {
	return CheckResult{Status: StatusPass, Message: fmt.Sprintf(msg, args...)}
}

func fail(msg string, args ...interface{}) CheckResult {
	return CheckResult{Status: StatusFail, Message: fmt.Sprintf(msg, args...)}
}

func skip(msg string, args ...interface{}) CheckResult {
	return CheckResult{Status: StatusSkip, Message: fmt.Sprintf(msg, args...)}
}

// decodedHeader returns the header, or a skip result when it is unavailable
func decodedHeader(v *elfheader.View) (elfheader.Header, *CheckResult) {
	h, err := v.Header()
	if err != nil {
		result := skip("header not decoded: %v", err)
		return h, &result
	}
	return h, nil
}

// IdentClassCheck verifies that EI_CLASS names a word width
type IdentClassCheck struct{}

func (c *IdentClassCheck) ID() string { return "ident-class" }

func (c *IdentClassCheck) Description() string {
	return "EI_CLASS is ELF32 or ELF64"
}

func (c *IdentClassCheck) Execute(v *elfheader.View) CheckResult {
	class := v.Identification().Class
	if !class.Known() {
		return fail("unsupported class %s", class)
	}
	return pass("class %s", class)
}

// IdentDataCheck verifies that EI_DATA names a byte order
type IdentDataCheck struct{}

func (c *IdentDataCheck) ID() string { return "ident-data" }

func (c *IdentDataCheck) Description() string {
	return "EI_DATA is little or big endian"
}

func (c *IdentDataCheck) Execute(v *elfheader.View) CheckResult {
	data := v.Identification().Data
	if !data.Known() {
		return fail("unsupported data encoding %s", data)
	}
	return pass("data encoding %s", data)
}

// IdentVersionCheck verifies EI_VERSION
type IdentVersionCheck struct{}

func (c *IdentVersionCheck) ID() string { return "ident-version" }

func (c *IdentVersionCheck) Description() string {
	return "EI_VERSION is EV_CURRENT"
}

func (c *IdentVersionCheck) Execute(v *elfheader.View) CheckResult {
	version := v.Identification().Version
	if version != elfheader.VersionCurrent {
		return fail("identification version %s", version)
	}
	return pass("identification version %s", version)
}

// HeaderLayoutCheck verifies that the fields after the identification block decode
type HeaderLayoutCheck struct{}

func (c *HeaderLayoutCheck) ID() string { return "header-layout" }

func (c *HeaderLayoutCheck) Description() string {
	return "Fixed header is complete and decodable"
}

func (c *HeaderLayoutCheck) Execute(v *elfheader.View) CheckResult {
	if err := v.HeaderErr(); err != nil {
		return fail("%v", err)
	}
	return pass("decoded as %s", v.LayoutName())
}

// FormatVersionCheck verifies e_version
type FormatVersionCheck struct{}

func (c *FormatVersionCheck) ID() string { return "format-version" }

func (c *FormatVersionCheck) Description() string {
	return "e_version is EV_CURRENT"
}

func (c *FormatVersionCheck) Execute(v *elfheader.View) CheckResult {
	h, skipped := decodedHeader(v)
	if skipped != nil {
		return *skipped
	}
	if h.Version != uint32(elfheader.VersionCurrent) {
		return fail("format version %d", h.Version)
	}
	return pass("format version %d", h.Version)
}

// HeaderSizeCheck verifies that e_ehsize matches the class
type HeaderSizeCheck struct{}

func (c *HeaderSizeCheck) ID() string { return "header-size" }

func (c *HeaderSizeCheck) Description() string {
	return "e_ehsize matches the class"
}

func (c *HeaderSizeCheck) Execute(v *elfheader.View) CheckResult {
	h, skipped := decodedHeader(v)
	if skipped != nil {
		return *skipped
	}
	want := elfheader.HeaderSize(v.Identification().Class)
	if int(h.HeaderSize) != want {
		result := fail("header size %d, want %d", h.HeaderSize, want)
		result.Details = map[string]interface{}{"ehsize": h.HeaderSize, "expected": want}
		return result
	}
	return pass("header size %d", h.HeaderSize)
}

// ProgramHeaderEntrySizeCheck verifies e_phentsize when a program header table is present
type ProgramHeaderEntrySizeCheck struct{}

func (c *ProgramHeaderEntrySizeCheck) ID() string { return "phentsize" }

func (c *ProgramHeaderEntrySizeCheck) Description() string {
	return "e_phentsize matches the class"
}

func (c *ProgramHeaderEntrySizeCheck) Execute(v *elfheader.View) CheckResult {
	h, skipped := decodedHeader(v)
	if skipped != nil {
		return *skipped
	}
	if h.ProgramHeaderCount == 0 {
		return skip("no program header table")
	}
	want := programHeaderEntrySize64
	if v.Identification().Class == elfheader.Class32 {
		want = programHeaderEntrySize32
	}
	if int(h.ProgramHeaderEntrySize) != want {
		return fail("program header entry size %d, want %d", h.ProgramHeaderEntrySize, want)
	}
	return pass("%d program headers of %d bytes", h.ProgramHeaderCount, h.ProgramHeaderEntrySize)
}

// SectionHeaderEntrySizeCheck verifies e_shentsize when a section header table is present
type SectionHeaderEntrySizeCheck struct{}

func (c *SectionHeaderEntrySizeCheck) ID() string { return "shentsize" }

func (c *SectionHeaderEntrySizeCheck) Description() string {
	return "e_shentsize matches the class"
}

func (c *SectionHeaderEntrySizeCheck) Execute(v *elfheader.View) CheckResult {
	h, skipped := decodedHeader(v)
	if skipped != nil {
		return *skipped
	}
	if h.SectionHeaderOffset == 0 {
		return skip("no section header table")
	}
	want := sectionHeaderEntrySize64
	if v.Identification().Class == elfheader.Class32 {
		want = sectionHeaderEntrySize32
	}
	if int(h.SectionHeaderEntrySize) != want {
		return fail("section header entry size %d, want %d", h.SectionHeaderEntrySize, want)
	}
	return pass("section headers of %d bytes", h.SectionHeaderEntrySize)
}

// SectionNameIndexCheck verifies that e_shstrndx refers to an existing section
type SectionNameIndexCheck struct{}

func (c *SectionNameIndexCheck) ID() string { return "shstrndx" }

func (c *SectionNameIndexCheck) Description() string {
	return "e_shstrndx is within the section header table"
}

func (c *SectionNameIndexCheck) Execute(v *elfheader.View) CheckResult {
	h, skipped := decodedHeader(v)
	if skipped != nil {
		return *skipped
	}
	switch {
	case h.SectionNameIndex == 0:
		return pass("no section name string table")
	case h.SectionNameIndex == sectionIndexExtended:
		// real index lives in sh_link of section 0
		return skip("section name index stored in section 0")
	case h.SectionNameIndex >= h.SectionHeaderCount && h.SectionHeaderCount != 0:
		return fail("section name index %d, only %d sections", h.SectionNameIndex, h.SectionHeaderCount)
	case h.SectionHeaderCount == 0 && h.SectionHeaderOffset == 0:
		return fail("section name index %d without a section header table", h.SectionNameIndex)
	}
	return pass("section name index %d", h.SectionNameIndex)
}

// EntryPointCheck verifies that executables have an entry point
type EntryPointCheck struct{}

func (c *EntryPointCheck) ID() string { return "entry-point" }

func (c *EntryPointCheck) Description() string {
	return "Executables have a non-zero entry point"
}

func (c *EntryPointCheck) Execute(v *elfheader.View) CheckResult {
	h, skipped := decodedHeader(v)
	if skipped != nil {
		return *skipped
	}
	entry := elfheader.FormatAddress(v.Identification().Class, h.Entry, false)
	if h.Type != elfheader.TypeExecutable {
		return skip("%s, entry point %s", h.Type, entry)
	}
	if h.Entry == 0 {
		return fail("executable without entry point")
	}
	return pass("entry point %s", entry)
}
