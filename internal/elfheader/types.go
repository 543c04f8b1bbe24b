package elfheader

import (
	"debug/elf"
	"fmt"
)

// Type is the e_type field: the kind of object file
type Type uint16

const (
	TypeNone        = Type(elf.ET_NONE)
	TypeRelocatable = Type(elf.ET_REL)
	TypeExecutable  = Type(elf.ET_EXEC)
	TypeShared      = Type(elf.ET_DYN)
	TypeCore        = Type(elf.ET_CORE)
)

var typeNames = map[Type]string{
	TypeNone:        "NONE (None)",
	TypeRelocatable: "REL (Relocatable file)",
	TypeExecutable:  "EXEC (Executable file)",
	TypeShared:      "DYN (Shared object file)",
	TypeCore:        "CORE (Core file)",
}

// Known reports whether the type is one of the generic object types
func (t Type) Known() bool {
	_, ok := typeNames[t]
	return ok
}

// OSSpecific reports whether the type lies in ET_LOOS..ET_HIOS
func (t Type) OSSpecific() bool {
	return t >= Type(elf.ET_LOOS) && t <= Type(elf.ET_HIOS)
}

// ProcessorSpecific reports whether the type lies in ET_LOPROC..ET_HIPROC
func (t Type) ProcessorSpecific() bool {
	return t >= Type(elf.ET_LOPROC)
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	switch {
	case t.ProcessorSpecific():
		return fmt.Sprintf("Processor Specific: (%x)", uint16(t))
	case t.OSSpecific():
		return fmt.Sprintf("OS Specific: (%x)", uint16(t))
	default:
		return fmt.Sprintf("<unknown>: %x", uint16(t))
	}
}

// Machine is the e_machine field
type Machine uint16

var machineNames = map[Machine]string{
	Machine(elf.EM_NONE):        "None",
	Machine(elf.EM_M32):         "WE32100",
	Machine(elf.EM_SPARC):       "Sparc",
	Machine(elf.EM_386):         "Intel 80386",
	Machine(elf.EM_68K):         "MC68000",
	Machine(elf.EM_88K):         "MC88000",
	Machine(elf.EM_860):         "Intel 80860",
	Machine(elf.EM_MIPS):        "MIPS R3000",
	Machine(elf.EM_S370):        "IBM System/370",
	Machine(elf.EM_MIPS_RS3_LE): "MIPS R4000 big-endian",
	Machine(elf.EM_PARISC):      "HPPA",
	Machine(elf.EM_SPARC32PLUS): "Sparc v8+",
	Machine(elf.EM_960):         "Intel 80960",
	Machine(elf.EM_PPC):         "PowerPC",
	Machine(elf.EM_PPC64):       "PowerPC64",
	Machine(elf.EM_S390):        "IBM S/390",
	Machine(elf.EM_ARM):         "ARM",
	Machine(elf.EM_SH):          "Renesas / SuperH SH",
	Machine(elf.EM_SPARCV9):     "Sparc v9",
	Machine(elf.EM_IA_64):       "Intel IA-64",
	Machine(elf.EM_X86_64):      "Advanced Micro Devices X86-64",
	Machine(elf.EM_AVR):         "Atmel AVR 8-bit microcontroller",
	Machine(elf.EM_XTENSA):      "Tensilica Xtensa Processor",
	Machine(elf.EM_AARCH64):     "AArch64",
	Machine(elf.EM_TILEGX):      "Tilera TILE-Gx",
	Machine(elf.EM_RISCV):       "RISC-V",
	Machine(elf.EM_BPF):         "Linux BPF",
	Machine(elf.EM_LOONGARCH):   "LoongArch",
}

// Known reports whether the machine has a display name
func (m Machine) Known() bool {
	_, ok := machineNames[m]
	return ok
}

func (m Machine) String() string {
	if name, ok := machineNames[m]; ok {
		return name
	}
	return fmt.Sprintf("<unknown>: 0x%x", uint16(m))
}
