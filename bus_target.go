// bus_target.go - byte-addressable targets wrapped behind the page map
//
// A BusTarget answers 8-bit accesses unconditionally; 16/32-bit accesses
// fall back to N consecutive byte accesses unless the target advertises
// atomic support and the access requested Atomic mode: a little-endian byte
// path underneath a fast wide accessor.
package main

import "encoding/binary"

// Capability is a bit in a BusTarget's capability set.
type Capability uint32

const (
	CapSupportsPeek Capability = 1 << iota
	CapSupportsPoke
	CapSupportsAtomic16
	CapSupportsAtomic32
	CapIsSideEffectFree
)

// BusTarget is anything a page map layer can route an access to: a raw RAM
// or ROM array, or a composite target that fans out by sub-region (the
// page-0 controller, see ext80col.go).
type BusTarget interface {
	Capabilities() Capability
	Read8(physAddr uint32, access BusAccess) (byte, bool)
	Write8(physAddr uint32, value byte, access BusAccess) bool
}

// RAMTarget is a plain read/write byte array.
type RAMTarget struct {
	Name string
	Data []byte
}

// NewRAMTarget allocates a zeroed RAM target of the given size.
func NewRAMTarget(name string, size int) *RAMTarget {
	return &RAMTarget{Name: name, Data: make([]byte, size)}
}

func (t *RAMTarget) Capabilities() Capability {
	return CapSupportsPeek | CapSupportsPoke | CapSupportsAtomic16 | CapSupportsAtomic32
}

func (t *RAMTarget) Read8(physAddr uint32, access BusAccess) (byte, bool) {
	if int(physAddr) >= len(t.Data) {
		return FloatingBus, false
	}
	return t.Data[physAddr], true
}

func (t *RAMTarget) Write8(physAddr uint32, value byte, access BusAccess) bool {
	if int(physAddr) >= len(t.Data) {
		return false
	}
	t.Data[physAddr] = value
	return true
}

// Read16/Write16 give the page map an atomic path when a layer and access
// both request it; they are not part of the BusTarget interface since only
// RAM-like targets can usefully support them.
func (t *RAMTarget) Read16(physAddr uint32) uint16 {
	if int(physAddr)+1 >= len(t.Data) {
		return uint16(FloatingBus) | uint16(FloatingBus)<<8
	}
	return binary.LittleEndian.Uint16(t.Data[physAddr:])
}

func (t *RAMTarget) Write16(physAddr uint32, value uint16) {
	if int(physAddr)+1 >= len(t.Data) {
		return
	}
	binary.LittleEndian.PutUint16(t.Data[physAddr:], value)
}

// ROMTarget is read-only; writes are rejected so the page-map permission
// check (or a direct attempt) surfaces TargetRejected rather than silently
// corrupting boot firmware.
type ROMTarget struct {
	Name string
	Data []byte
}

// NewROMTarget wraps an existing image; the slice is not copied so callers
// can share a single decoded ROM image across machine instances.
func NewROMTarget(name string, data []byte) *ROMTarget {
	return &ROMTarget{Name: name, Data: data}
}

func (t *ROMTarget) Capabilities() Capability {
	return CapSupportsPeek | CapSupportsAtomic16 | CapSupportsAtomic32
}

func (t *ROMTarget) Read8(physAddr uint32, access BusAccess) (byte, bool) {
	if int(physAddr) >= len(t.Data) {
		return FloatingBus, false
	}
	return t.Data[physAddr], true
}

func (t *ROMTarget) Write8(physAddr uint32, value byte, access BusAccess) bool {
	return false
}
