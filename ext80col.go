// ext80col.go - extended 80-column card: auxiliary RAM plus page-0 routing
//
// Owns the 64 KiB auxiliary RAM bank. $1000-$BFFF aux/main selection is
// implemented as ordinary layers (activate aux-read / aux-write layers over
// that range); $0000-$0FFF cannot be a layer because three different
// sub-regions within it route independently off different switches, so it
// is served by a composite BusTarget — Ext80ColPage0 below — that checks
// the live switch bits on every access instead.
package main

const auxMemSize = 0x10000

// Ext80Col owns auxiliary memory and the composite page-0 target, and
// implements 80STORE/RAMRD/RAMWRT/ALTZP/80COL/SLOTC3ROM/INTCXROM.
type Ext80Col struct {
	aux *RAMTarget

	store80    bool
	ramrd      bool
	ramwrt     bool
	altzp      bool
	col80      bool
	slotc3rom  bool
	intcxrom   bool

	page0   *Ext80ColPage0
	video   *VideoTiming
	bus     *MemoryBus
}

// NewExt80Col allocates the auxiliary RAM bank. video is used to forward
// the 80COL switch into mode derivation.
func NewExt80Col(video *VideoTiming) *Ext80Col {
	e := &Ext80Col{
		aux:   NewRAMTarget("aux-ram", auxMemSize),
		video: video,
	}
	e.page0 = &Ext80ColPage0{owner: e}
	return e
}

func (e *Ext80Col) Name() string     { return "Ext80Col" }
func (e *Ext80Col) Kind() DeviceKind { return KindMotherboard }
func (e *Ext80Col) Initialize(ctx *EventContext) {}

// AttachToBus registers an aux-read and aux-write layer over $1000-$BFFF
// (inactive until RAMRD/RAMWRT select them) and wires the page-0 composite
// target to cover $0000-$0FFF, replacing whatever main-RAM layer the
// machine set up there.
func (e *Ext80Col) AttachToBus(bus *MemoryBus, mainRAM *RAMTarget) {
	e.bus = bus
	bus.AddLayer(&Layer{
		Name: "aux-read-1000-bfff", StartPage: pageOf(0x1000), EndPage: pageOf(0xBFFF),
		Target: e.aux, PhysicalBase: 0x1000, Perms: PermRead, RegionTag: RegionRAM, Priority: 40, Active: false,
	})
	bus.AddLayer(&Layer{
		Name: "aux-write-1000-bfff", StartPage: pageOf(0x1000), EndPage: pageOf(0xBFFF),
		Target: e.aux, PhysicalBase: 0x1000, Perms: PermWrite, RegionTag: RegionRAM, Priority: 41, Active: false,
	})
	bus.AddLayer(&Layer{
		Name: "page0-composite", StartPage: pageOf(0x0000), EndPage: pageOf(0x0FFF),
		Target: e.page0, Perms: PermRead | PermWrite | PermExec, RegionTag: RegionZeroPage, Priority: 100, Active: true,
	})
}

func (e *Ext80Col) RegisterHandlers(d *IODispatcher) {
	reg := func(name string, offAddr, onAddr Address, set func(bool)) {
		d.RegisterWrite(byte(offAddr-AddrIOPageStart), name+"OFF", func(v byte, a BusAccess) bool { set(false); e.syncAuxLayers(); return true })
		d.RegisterWrite(byte(onAddr-AddrIOPageStart), name+"ON", func(v byte, a BusAccess) bool { set(true); e.syncAuxLayers(); return true })
	}
	reg("80STORE", Addr80STOREOff, Addr80STOREOn, func(v bool) { e.store80 = v })
	reg("RAMRD", AddrRAMRDOff, AddrRAMRDOn, func(v bool) { e.ramrd = v })
	reg("RAMWRT", AddrRAMWRTOff, AddrRAMWRTOn, func(v bool) { e.ramwrt = v })
	reg("INTCXROM", AddrINTCXROMOff, AddrINTCXROMOn, func(v bool) { e.intcxrom = v })
	reg("ALTZP", AddrALTZPOff, AddrALTZPOn, func(v bool) { e.altzp = v })
	reg("SLOTC3ROM", AddrSLOTC3ROMOff, AddrSLOTC3ROMOn, func(v bool) { e.slotc3rom = v })
	reg("80COL", Addr80COLOff, Addr80COLOn, func(v bool) {
		e.col80 = v
		if e.video != nil {
			e.video.Set80Column(v)
		}
	})
}

func (e *Ext80Col) syncAuxLayers() {
	e.bus.SetLayerActive("aux-read-1000-bfff", e.ramrd)
	e.bus.SetLayerActive("aux-write-1000-bfff", e.ramwrt)
}

func (e *Ext80Col) SoftSwitchStates() []SoftSwitchState {
	return []SoftSwitchState{
		{Name: "80STORE", IsOn: e.store80, Description: "page-2 steals aux select"},
		{Name: "RAMRD", IsOn: e.ramrd, Description: "read from aux bank"},
		{Name: "RAMWRT", IsOn: e.ramwrt, Description: "write to aux bank"},
		{Name: "ALTZP", IsOn: e.altzp, Description: "aux zero page + stack"},
		{Name: "80COL", IsOn: e.col80, Description: "80 column mode"},
		{Name: "INTCXROM", IsOn: e.intcxrom, Description: "internal ROM at $C100-$CFFF"},
		{Name: "SLOTC3ROM", IsOn: e.slotc3rom, Description: "slot 3 ROM enabled"},
	}
}

func (e *Ext80Col) Reset() {
	e.store80 = false
	e.ramrd = false
	e.ramwrt = false
	e.altzp = false
	e.col80 = false
	e.slotc3rom = false
	e.intcxrom = false
	if e.bus != nil {
		e.syncAuxLayers()
	}
}

// Ext80ColPage0 is the composite target covering $0000-$0FFF. It is not a
// layer in its own right; every access re-checks the live switch bits,
// which the owning Ext80Col caches as plain bools to avoid an indirect call
// on this hot path.
type Ext80ColPage0 struct {
	owner *Ext80Col
	main  *RAMTarget
}

// SetMainRAM installs the main-memory RAM target this composite falls back
// to when aux is not selected.
func (p *Ext80ColPage0) SetMainRAM(main *RAMTarget) { p.main = main }

func (p *Ext80ColPage0) Capabilities() Capability {
	return CapSupportsPeek | CapSupportsPoke
}

// selectAux decides, for a given page-0 address and read/write direction,
// whether the auxiliary bank should service it.
func (p *Ext80ColPage0) selectAux(addr uint32, isWrite bool) bool {
	e := p.owner
	switch {
	case addr < 0x0200: // zero page + stack
		return e.altzp
	case addr >= 0x0400 && addr < 0x0800: // text page 1
		if e.store80 {
			// With 80STORE on, the PAGE2 switch steals this window for
			// main/aux selection instead of display page flipping.
			return e.video != nil && e.video.Page2()
		}
		if isWrite {
			return e.ramwrt
		}
		return e.ramrd
	default:
		if isWrite {
			return e.ramwrt
		}
		return e.ramrd
	}
}

func (p *Ext80ColPage0) Read8(physAddr uint32, access BusAccess) (byte, bool) {
	if p.selectAux(physAddr, false) {
		return p.owner.aux.Read8(physAddr, access)
	}
	return p.main.Read8(physAddr, access)
}

func (p *Ext80ColPage0) Write8(physAddr uint32, value byte, access BusAccess) bool {
	if p.selectAux(physAddr, true) {
		return p.owner.aux.Write8(physAddr, value, access)
	}
	return p.main.Write8(physAddr, value, access)
}
