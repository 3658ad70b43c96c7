// memory_bus.go - layered 4 KiB page map over a 16 MiB virtual space
//
// The bus is an ordered stack of layers. Each layer maps a contiguous run of
// virtual pages to a target plus a physical base and a permission mask.
// Lookup walks the stack top-down and uses the first *active* layer that
// covers the page — language-card and auxiliary-memory bank switching is
// implemented by flipping a layer's active bit, never by rewriting the page
// table. This generalizes a flat single-mapping bus plus I/O region table
// into the layered model the Apple II's soft switches require.
package main

import (
	"sync"
)

// Permission is a bitmask of what a page may be used for.
type Permission uint8

const (
	PermRead Permission = 1 << iota
	PermWrite
	PermExec
)

// RegionTag annotates a layer for observability (debug monitor, tests) only
// — it plays no role in access routing.
type RegionTag int

const (
	RegionRAM RegionTag = iota
	RegionROM
	RegionIO
	RegionVideo
	RegionZeroPage
	RegionStack
)

// Layer is one entry in the page-map stack.
type Layer struct {
	Name         string
	StartPage    Address // inclusive, in 4 KiB pages
	EndPage      Address // inclusive
	Target       BusTarget
	PhysicalBase uint32
	Perms        Permission
	RegionTag    RegionTag
	Priority     int // higher wins when stacked; layers are kept sorted descending
	Active       bool
}

func (l *Layer) covers(page Address) bool {
	return l.Active && page >= l.StartPage && page <= l.EndPage
}

// MemoryBus is the 65C02-facing bus: a layered page map plus the last-fault
// record used by tests and the monitor.
type MemoryBus struct {
	mu     sync.RWMutex
	layers []*Layer // kept sorted by descending Priority
	lastFault *Fault
}

// NewMemoryBus creates an empty bus with no layers mapped.
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{}
}

// AddLayer inserts a layer into the stack, keeping layers sorted by
// descending priority so lookup can stop at the first match.
func (b *MemoryBus) AddLayer(l *Layer) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.layers = append(b.layers, l)
	// Stable insertion-sort by priority descending; layer counts are small
	// (a dozen or so) so this need not be fancy.
	for i := len(b.layers) - 1; i > 0 && b.layers[i].Priority > b.layers[i-1].Priority; i-- {
		b.layers[i], b.layers[i-1] = b.layers[i-1], b.layers[i]
	}
}

// SetLayerActive flips a named layer's active bit — the mechanism bank
// switching uses instead of rewriting the map.
func (b *MemoryBus) SetLayerActive(name string, active bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, l := range b.layers {
		if l.Name == name {
			l.Active = active
		}
	}
}

// SetLayerPermissions updates a named layer's permission mask, used by
// devices (the language card) whose write-enable state is independent of
// its active bit.
func (b *MemoryBus) SetLayerPermissions(name string, perms Permission) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, l := range b.layers {
		if l.Name == name {
			l.Perms = perms
		}
	}
}

// findLayer returns the topmost active layer covering page, or nil.
func (b *MemoryBus) findLayer(page Address) *Layer {
	for _, l := range b.layers {
		if l.covers(page) {
			return l
		}
	}
	return nil
}

func permissionFor(intent Intent) Permission {
	switch intent {
	case InstructionFetch:
		return PermExec
	case DataRead, DebugRead:
		return PermRead
	default: // DataWrite, DebugWrite
		return PermWrite
	}
}

// TryRead8 resolves the topmost active layer covering the address, checks
// permissions for the access's intent, and routes to the target — or
// records a fault and returns the floating-bus value.
func (b *MemoryBus) TryRead8(access BusAccess) (byte, *Fault) {
	b.mu.RLock()
	layer := b.findLayer(pageOf(access.Address))
	b.mu.RUnlock()

	if layer == nil {
		f := &Fault{Kind: FaultUnmapped, Address: access.Address, Intent: access.Intent}
		b.recordFault(f)
		return FloatingBus, f
	}

	needed := permissionFor(access.Intent)
	if access.Intent == DebugWrite {
		needed = 0 // poke bypasses the write-permission check
	}
	if needed != 0 && layer.Perms&needed == 0 {
		f := &Fault{Kind: FaultPermissionDenied, Address: access.Address, Intent: access.Intent}
		b.recordFault(f)
		return FloatingBus, f
	}

	pageBase := layer.StartPage * pageSize
	physAddr := layer.PhysicalBase + uint32(access.Address-pageBase)
	val, ok := layer.Target.Read8(physAddr, access)
	if !ok {
		f := &Fault{Kind: FaultTargetRejected, Address: access.Address, Intent: access.Intent}
		b.recordFault(f)
		return FloatingBus, f
	}
	return val, nil
}

// TryWrite8 is the write-side counterpart of TryRead8.
func (b *MemoryBus) TryWrite8(access BusAccess) *Fault {
	b.mu.RLock()
	layer := b.findLayer(pageOf(access.Address))
	b.mu.RUnlock()

	if layer == nil {
		f := &Fault{Kind: FaultUnmapped, Address: access.Address, Intent: access.Intent}
		b.recordFault(f)
		return f
	}

	needed := permissionFor(access.Intent)
	if access.Intent == DebugWrite {
		needed = 0
	}
	if needed != 0 && layer.Perms&needed == 0 {
		f := &Fault{Kind: FaultPermissionDenied, Address: access.Address, Intent: access.Intent}
		b.recordFault(f)
		return f
	}

	pageBase := layer.StartPage * pageSize
	physAddr := layer.PhysicalBase + uint32(access.Address-pageBase)
	if !layer.Target.Write8(physAddr, byte(access.Value), access) {
		f := &Fault{Kind: FaultTargetRejected, Address: access.Address, Intent: access.Intent}
		b.recordFault(f)
		return f
	}
	return nil
}

func (b *MemoryBus) recordFault(f *Fault) {
	b.mu.Lock()
	b.lastFault = f
	b.mu.Unlock()
}

// LastFault returns the most recent fault recorded by a read or write, or
// nil if none has occurred since the last Reset.
func (b *MemoryBus) LastFault() *Fault {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lastFault
}

// TryRead16/TryRead32 and TryWrite16/TryWrite32 decompose wide accesses into
// consecutive byte accesses unless Atomic mode is requested and the
// underlying layer's target is a *RAMTarget (the only target that
// implements the atomic fast path here). Each decomposed byte access is one
// bus operation; the CPU is responsible for charging a cycle per byte.
func (b *MemoryBus) TryRead16(access BusAccess) (uint16, *Fault) {
	if access.Mode == Atomic {
		b.mu.RLock()
		layer := b.findLayer(pageOf(access.Address))
		b.mu.RUnlock()
		if layer != nil {
			if ram, ok := layer.Target.(*RAMTarget); ok {
				pageBase := layer.StartPage * pageSize
				physAddr := layer.PhysicalBase + uint32(access.Address-pageBase)
				return ram.Read16(physAddr), nil
			}
		}
	}
	lo, f := b.TryRead8(byteAccess(access, access.Address, DataRead))
	if f != nil {
		return uint16(lo), f
	}
	hi, f := b.TryRead8(byteAccess(access, access.Address+1, DataRead))
	if f != nil {
		return uint16(lo), f
	}
	return uint16(lo) | uint16(hi)<<8, nil
}

func (b *MemoryBus) TryWrite16(access BusAccess, value uint16) *Fault {
	if access.Mode == Atomic {
		b.mu.RLock()
		layer := b.findLayer(pageOf(access.Address))
		b.mu.RUnlock()
		if layer != nil {
			if ram, ok := layer.Target.(*RAMTarget); ok {
				pageBase := layer.StartPage * pageSize
				physAddr := layer.PhysicalBase + uint32(access.Address-pageBase)
				ram.Write16(physAddr, value)
				return nil
			}
		}
	}
	lo := byteAccess(access, access.Address, DataWrite)
	lo.Value = uint32(value & 0xFF)
	if f := b.TryWrite8(lo); f != nil {
		return f
	}
	hi := byteAccess(access, access.Address+1, DataWrite)
	hi.Value = uint32(value >> 8)
	return b.TryWrite8(hi)
}

func byteAccess(template BusAccess, addr Address, intent Intent) BusAccess {
	a := template
	a.Address = addr
	a.Width = Width8
	a.Intent = intent
	return a
}

// Reset clears the recorded fault. It does not touch layer contents — RAM
// targets are reset by the caller (Machine.Reset) by zeroing their backing
// arrays directly.
func (b *MemoryBus) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lastFault = nil
}
