// loader.go - loads a raw binary image into main RAM and patches the reset vector
package main

import "fmt"

const defaultLoadAddr uint16 = 0x0800

// ProgramLoader loads machine-code images into a Machine's RAM at a fixed
// address, pointing the reset vector at the entry point so a fresh Reset
// starts execution there. PatchVectors is only meaningful when the machine
// was built without a real system ROM image (NewMachine(profile, nil)):
// the reset vector then lives in the zeroed placeholder ROM and must be
// patched directly, since ROMTarget never accepts writes through the bus.
type ProgramLoader struct {
	LoadAddr     uint16
	Entry        uint16
	PatchVectors bool
}

// NewProgramLoader creates a loader defaulting to $0800 if loadAddr is 0,
// with vector patching enabled (the common case: no real ROM image).
func NewProgramLoader(loadAddr, entry uint16) *ProgramLoader {
	if loadAddr == 0 {
		loadAddr = defaultLoadAddr
	}
	if entry == 0 {
		entry = loadAddr
	}
	return &ProgramLoader{LoadAddr: loadAddr, Entry: entry, PatchVectors: true}
}

// Load resets m, copies program into its main RAM at l.LoadAddr, optionally
// patches the RESET/NMI/IRQ vectors in the placeholder ROM to point at
// l.Entry, then resets the CPU so PC picks up the (possibly patched)
// vector.
func (l *ProgramLoader) Load(m *Machine, program []byte) error {
	endAddr := uint32(l.LoadAddr) + uint32(len(program))
	if endAddr > uint32(len(m.mainRAM.Data)) {
		return fmt.Errorf("loader: program too large: end=0x%X, limit=0x%X", endAddr, len(m.mainRAM.Data))
	}

	m.Reset()

	copy(m.mainRAM.Data[l.LoadAddr:], program)

	if l.PatchVectors {
		romBase := uint32(AddrSystemROMBase)
		writeVector := func(addr uint32) {
			m.systemROM.Data[addr-romBase] = byte(l.Entry)
			m.systemROM.Data[addr-romBase+1] = byte(l.Entry >> 8)
		}
		writeVector(0xFFFA) // NMI
		writeVector(0xFFFC) // RESET
		writeVector(0xFFFE) // IRQ/BRK
	}

	m.CPU.Reset()
	return nil
}
