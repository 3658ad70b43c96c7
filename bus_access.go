// bus_access.go - value types describing a pending bus access
package main

// Address is a 24-bit virtual address. The 65C02 only ever drives the low
// 16 bits of it.
type Address uint32

const pageSize = 0x1000 // 4 KiB granularity

func pageOf(addr Address) Address { return addr / pageSize }

// AccessWidth is the bit width of a bus access.
type AccessWidth int

const (
	Width8  AccessWidth = 8
	Width16 AccessWidth = 16
	Width32 AccessWidth = 32
)

// AccessMode distinguishes a single native-width access from one decomposed
// into consecutive byte accesses.
type AccessMode int

const (
	Decomposed AccessMode = iota
	Atomic
)

// Intent records why an access is happening, which governs both the
// permission check a layer applies and side-effect suppression.
type Intent int

const (
	InstructionFetch Intent = iota
	DataRead
	DataWrite
	DebugRead
	DebugWrite
)

// AccessFlag is a bitset carried on a BusAccess.
type AccessFlag uint32

const (
	FlagNone          AccessFlag = 0
	FlagNoSideEffects AccessFlag = 1 << 0
)

// BusAccess describes one pending memory operation end to end, so that
// targets and the I/O dispatcher can make side-effect and permission
// decisions without threading extra parameters through every call.
type BusAccess struct {
	Address   Address
	Value     uint32
	Width     AccessWidth
	Mode      AccessMode
	Emulation bool
	Intent    Intent
	SourceID  int
	Cycle     Cycle
	Flags     AccessFlag
}

// NoSideEffects reports whether the access must not mutate target state —
// used by debuggers and the monitor to peek without disturbing latches.
func (a BusAccess) NoSideEffects() bool { return a.Flags&FlagNoSideEffects != 0 }

// FaultKind enumerates why a bus access failed.
type FaultKind int

const (
	FaultUnmapped FaultKind = iota
	FaultPermissionDenied
	FaultTargetRejected
)

// Fault describes a failed bus access. Reads fault to the floating-bus value
// 0xFF; writes are silently dropped unless a target opted into reporting.
type Fault struct {
	Kind    FaultKind
	Address Address
	Intent  Intent
}

// FloatingBus is the byte returned for an unmapped or faulting read.
const FloatingBus byte = 0xFF
