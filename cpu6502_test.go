package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestCPU(program []byte) (*CPU, *MemoryBus, *Scheduler) {
	bus := NewMemoryBus()
	signals := NewSignalBus()
	sched := NewScheduler(bus, signals)
	ram := NewRAMTarget("ram", 0x10000)
	copy(ram.Data, program)
	bus.AddLayer(&Layer{
		Name: "ram", StartPage: 0, EndPage: pageOf(0xFFFF),
		Target: ram, Perms: PermRead | PermWrite | PermExec, RegionTag: RegionRAM, Priority: 10, Active: true,
	})
	cpu := NewCPU(bus, signals, 1)
	cpu.Reset() // PC comes from the (zeroed) reset vector unless patched below
	return cpu, bus, sched
}

func stepOnce(cpu *CPU, bus *MemoryBus, sched *Scheduler) HaltState {
	ctx := &EventContext{Scheduler: sched, Bus: bus, Signals: sched.signals, Now: sched.Now()}
	return cpu.Step(ctx)
}

func TestCPULDAImmediate(t *testing.T) {
	cpu, bus, sched := newTestCPU([]byte{0xA9, 0x42, 0x00})
	cpu.PC = 0x0000

	stepOnce(cpu, bus, sched)

	require.Equal(t, byte(0x42), cpu.A)
	require.Equal(t, Cycle(2), sched.Now())
	require.False(t, cpu.getFlag(FlagZ))
	require.False(t, cpu.getFlag(FlagN))
}

func TestCPUInterruptPriority(t *testing.T) {
	cpu, bus, sched := newTestCPU(nil)
	cpu.PC = 0x0200
	cpu.setFlag(FlagI, false)

	// NMI vector -> $0300, IRQ vector -> $0400.
	writeVector := func(addr uint16, target uint16) {
		bus.TryWrite8(BusAccess{Address: Address(addr), Width: Width8, Intent: DebugWrite, Value: uint32(byte(target))})
		bus.TryWrite8(BusAccess{Address: Address(addr + 1), Width: Width8, Intent: DebugWrite, Value: uint32(byte(target >> 8))})
	}
	writeVector(0xFFFA, 0x0300)
	writeVector(0xFFFE, 0x0400)

	// The NMI handler is a bare RTI so the pre-interrupt I=0 status is
	// restored and the still-held IRQ can vector on the following step.
	bus.TryWrite8(BusAccess{Address: 0x0300, Width: Width8, Intent: DebugWrite, Value: 0x40})

	sched.signals.Assert(LineIRQ, 99)
	sched.signals.Assert(LineNMI, 99)

	stepOnce(cpu, bus, sched)
	require.Equal(t, uint16(0x0300), cpu.PC)
	require.False(t, sched.signals.ConsumeNMIEdge(), "NMI edge must be consumed by the first step")
	require.True(t, sched.signals.IsAsserted(LineIRQ), "IRQ hold is independent of the NMI edge")

	stepOnce(cpu, bus, sched) // RTI back to $0200 with I clear again
	require.Equal(t, uint16(0x0200), cpu.PC)

	stepOnce(cpu, bus, sched)
	require.Equal(t, uint16(0x0400), cpu.PC)
}

func TestCPULanguageCardLayerOff(t *testing.T) {
	m := NewMachine(ProfileIIe, nil)
	m.Reset()

	// Enable language card RAM read+write (bank 2), then write a marker.
	const lcRAMOn2WriteEnable = 0xC080 // read RAM bank 2, write-enable after the authentic double read
	peek := func(addr uint16) byte {
		v, _ := m.Bus.TryRead8(BusAccess{Address: Address(addr), Width: Width8, Intent: DebugRead})
		return v
	}
	peek(lcRAMOn2WriteEnable)
	peek(lcRAMOn2WriteEnable) // double read trips the write-enable latch

	m.Bus.TryWrite8(BusAccess{Address: 0xD000, Width: Width8, Intent: DebugWrite, Value: 0xAA})

	readBack, _ := m.Bus.TryRead8(BusAccess{Address: 0xD000, Width: Width8, Intent: DebugRead})
	require.Equal(t, byte(0xAA), readBack)

	m.Bus.SetLayerActive("langcard-bank2-d000", false)
	afterDisable, _ := m.Bus.TryRead8(BusAccess{Address: 0xD000, Width: Width8, Intent: DebugRead})
	require.NotEqual(t, byte(0xAA), afterDisable)
}

func TestCPUWAIWithMaskedIRQResumesWithoutVectoring(t *testing.T) {
	cpu, bus, sched := newTestCPU([]byte{0xCB, 0xEA}) // WAI; NOP
	cpu.PC = 0x0000
	cpu.setFlag(FlagI, true)

	halt := stepOnce(cpu, bus, sched)
	require.Equal(t, HaltWai, halt)

	sched.signals.Assert(LineIRQ, 7)
	stepOnce(cpu, bus, sched)
	require.Equal(t, HaltNone, cpu.Halt, "masked IRQ clears WAI")
	require.Equal(t, uint16(0x0002), cpu.PC, "execution resumed at the NOP, no vector taken")
}

func TestCPUSTPIsNotResumableByInterrupts(t *testing.T) {
	cpu, bus, sched := newTestCPU([]byte{0xDB})
	cpu.PC = 0x0000

	require.Equal(t, HaltStp, stepOnce(cpu, bus, sched))

	sched.signals.Assert(LineIRQ, 7)
	cpu.setFlag(FlagI, false)
	require.Equal(t, HaltStp, stepOnce(cpu, bus, sched))
}

func TestCPUAbsoluteXPageCrossCostsOneCycleOnReadOnly(t *testing.T) {
	// LDA $12F0,X with X=$20 crosses into $1310.
	cpu, bus, sched := newTestCPU([]byte{0xBD, 0xF0, 0x12})
	cpu.PC = 0x0000
	cpu.X = 0x20

	stepOnce(cpu, bus, sched)
	require.Equal(t, Cycle(5), sched.Now(), "opcode+2 operands+read+crossing penalty")

	// The same addressing shape on a store never takes the discount path.
	cpu2, bus2, sched2 := newTestCPU([]byte{0x9D, 0xF0, 0x12})
	cpu2.PC = 0x0000
	cpu2.X = 0x20
	stepOnce(cpu2, bus2, sched2)
	require.Equal(t, Cycle(4), sched2.Now(), "opcode+2 operands+write, no penalty")
}

func TestCPUJMPIndirectPageWrapIsFixed(t *testing.T) {
	cpu, bus, sched := newTestCPU([]byte{0x6C, 0xFF, 0x12})
	cpu.PC = 0x0000
	poke := func(addr uint16, v byte) {
		bus.TryWrite8(BusAccess{Address: Address(addr), Width: Width8, Intent: DebugWrite, Value: uint32(v)})
	}
	poke(0x12FF, 0x34)
	poke(0x1300, 0x12) // 65C02 fetches the high byte here, not at $1200
	poke(0x1200, 0x99)

	stepOnce(cpu, bus, sched)
	require.Equal(t, uint16(0x1234), cpu.PC)
}

func TestCPUBranchCycleAccounting(t *testing.T) {
	// BNE taken, same page: 2 (fetch+operand) + 1 taken.
	cpu, bus, sched := newTestCPU([]byte{0xD0, 0x02})
	cpu.PC = 0x0000
	cpu.setFlag(FlagZ, false)
	stepOnce(cpu, bus, sched)
	require.Equal(t, Cycle(3), sched.Now())
	require.Equal(t, uint16(0x0004), cpu.PC)

	// BNE not taken: just fetch+operand.
	cpu2, bus2, sched2 := newTestCPU([]byte{0xD0, 0x02})
	cpu2.PC = 0x0000
	cpu2.setFlag(FlagZ, true)
	stepOnce(cpu2, bus2, sched2)
	require.Equal(t, Cycle(2), sched2.Now())
	require.Equal(t, uint16(0x0002), cpu2.PC)
}

func TestCPUUnmappedFetchHaltsWithStp(t *testing.T) {
	bus := NewMemoryBus()
	signals := NewSignalBus()
	sched := NewScheduler(bus, signals)
	cpu := NewCPU(bus, signals, 1)
	cpu.PC = 0x4000 // nothing mapped at all

	ctx := &EventContext{Scheduler: sched, Bus: bus, Signals: signals, Now: sched.Now()}
	halt := cpu.Step(ctx)
	require.Equal(t, HaltStp, halt, "floating-bus fetch halts the core")
}
