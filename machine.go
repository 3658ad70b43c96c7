// machine.go - wires scheduler, bus, devices, and CPU into one runnable unit
package main

// Machine owns every subsystem and is the unit the core pump (Corepump) and
// CLI driver advance.
type Machine struct {
	Profile MachineProfile

	Scheduler *Scheduler
	Signals   *SignalBus
	Bus       *MemoryBus
	CPU       *CPU

	mainRAM *RAMTarget
	systemROM *ROMTarget

	Keyboard *Keyboard
	Video    *VideoTiming
	CharGen  *CharGen
	Speaker  *Speaker
	LangCard *LanguageCard
	Ext80    *Ext80Col

	io *IODispatcher

	devices []Device

	// OnVBlank, when set by the host, runs at every VBL start after the
	// character generator's own frame work.
	OnVBlank func()
}

const (
	mainRAMSize   = 0xC000 // $0000-$BFFF
	systemROMSize = 0x3000 // $D000-$FFFF
	cpuSourceID   = 1
)

// NewMachine builds a machine for the given profile. romImage, if non-nil,
// must be exactly systemROMSize bytes; a nil image boots with an empty ROM
// and relies on monitor trap shims (see cpu6502_traps.go) for I/O.
func NewMachine(profile MachineProfile, romImage []byte) *Machine {
	m := &Machine{Profile: profile}

	m.Bus = NewMemoryBus()
	m.Signals = NewSignalBus()
	m.Scheduler = NewScheduler(m.Bus, m.Signals)
	m.CPU = NewCPU(m.Bus, m.Signals, cpuSourceID)

	m.mainRAM = NewRAMTarget("main-ram", mainRAMSize)
	rom := romImage
	if rom == nil {
		rom = make([]byte, systemROMSize)
	}
	m.systemROM = NewROMTarget("system-rom", rom)

	m.io = NewIODispatcher()

	m.Video = NewVideoTiming(profile)
	m.Keyboard = NewKeyboard(1020)
	m.CharGen = NewCharGen()
	m.Speaker = NewSpeaker()
	m.LangCard = NewLanguageCard()
	m.Ext80 = NewExt80Col(m.Video)

	m.devices = []Device{m.Keyboard, m.Video, m.CharGen, m.Speaker, m.LangCard, m.Ext80}

	// The character generator defers ALTCHAR swaps and advances its flash
	// phase at frame boundaries; the host's own frame hook chains after it.
	m.Video.VBlankCallback = func() {
		m.CharGen.OnVBlank()
		if m.OnVBlank != nil {
			m.OnVBlank()
		}
	}

	m.wireBus()
	m.wireDevices()

	return m
}

func (m *Machine) wireBus() {
	// Base RAM covers $0000-$BFFF at low priority; Ext80Col's page-0
	// composite target shadows $0000-$0FFF at higher priority, and the
	// language card's layers shadow $D000-$FFFF when enabled.
	m.Bus.AddLayer(&Layer{
		Name: "main-ram", StartPage: pageOf(0x0000), EndPage: pageOf(0xBFFF),
		Target: m.mainRAM, Perms: PermRead | PermWrite | PermExec, RegionTag: RegionRAM, Priority: 10, Active: true,
	})
	m.Bus.AddLayer(&Layer{
		Name: "system-rom", StartPage: pageOf(0xD000), EndPage: pageOf(0xFFFF),
		Target: m.systemROM, Perms: PermRead | PermExec, RegionTag: RegionROM, Priority: 10, Active: true,
	})
	m.Bus.AddLayer(&Layer{
		Name: "io-page", StartPage: pageOf(0xC000), EndPage: pageOf(0xC0FF),
		Target: m.io, Perms: PermRead | PermWrite, RegionTag: RegionIO, Priority: 20, Active: true,
	})

	m.LangCard.AttachToBus(m.Bus)
	m.Ext80.page0.SetMainRAM(m.mainRAM)
	if m.Profile.Has80Column() {
		m.Ext80.AttachToBus(m.Bus, m.mainRAM)
	}
}

func (m *Machine) wireDevices() {
	for _, d := range m.devices {
		if d == Device(m.Ext80) && !m.Profile.Has80Column() {
			continue // II+ boards leave the aux-memory switches unmapped
		}
		d.RegisterHandlers(m.io)
	}
}

// Reset powers the machine on: zeroes RAM, resets every device, and loads
// the CPU's PC from the reset vector.
func (m *Machine) Reset() {
	for i := range m.mainRAM.Data {
		m.mainRAM.Data[i] = 0
	}
	m.Signals.Reset()
	m.Scheduler.Reset()
	m.Bus.Reset()
	for _, d := range m.devices {
		d.Reset()
	}
	m.CPU.Reset()
	for _, d := range m.devices {
		d.Initialize(&EventContext{Scheduler: m.Scheduler, Bus: m.Bus, Signals: m.Signals, Now: m.Scheduler.Now()})
	}
}

// RunQuantum steps the CPU until the scheduler has advanced by at least
// quantum cycles total, or the CPU halts (Wai/Stp) with nothing scheduled
// before that point.
func (m *Machine) RunQuantum(quantum Cycle) {
	target := addCycle(m.Scheduler.Now(), quantum)
	for m.Scheduler.Now() < target {
		if m.CPU.RequestStop {
			return
		}
		ctx := &EventContext{Scheduler: m.Scheduler, Bus: m.Bus, Signals: m.Signals, Now: m.Scheduler.Now()}
		halt := m.CPU.Step(ctx)
		if halt == HaltWai || halt == HaltStp {
			next, ok := m.Scheduler.NextEventCycle()
			if !ok || next >= target {
				return
			}
			m.Scheduler.Advance(next - m.Scheduler.Now())
		}
	}
}

// LoadCharacterROM installs a decoded character ROM image.
func (m *Machine) LoadCharacterROM(data []byte) error {
	return m.CharGen.LoadCharacterROM(data)
}

// MainRAM exposes the raw RAM backing store for the loader and debug
// monitor.
func (m *Machine) MainRAM() *RAMTarget { return m.mainRAM }
