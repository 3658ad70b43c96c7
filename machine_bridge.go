// machine_bridge.go - bridges BASIC PEEK/POKE/CALL and console I/O to a live Machine
package main

// callSentinel is a reserved address with no real ROM content; Call pushes
// it as a JSR-style return address and relies on a trap (installed once by
// NewMachineBridge) intercepting fetch there before the CPU ever reads it.
const callSentinel uint16 = 0x3F0

// MachineBridge adapts a Machine to the BASIC interpreter's Bridge and
// IOPort interfaces, letting PEEK/POKE/CALL statements and monitor ROM
// shims (RomCOUT/RomRDKEY) reach real machine state.
type MachineBridge struct {
	Machine *Machine
	Console BasicIO
}

func NewMachineBridge(m *Machine, console BasicIO) *MachineBridge {
	b := &MachineBridge{Machine: m, Console: console}
	m.CPU.RegisterTrap(callSentinel, func(c *CPU) TrapResult {
		c.RequestStop = true
		return TrapResult{Handled: true, ReturnMethod: TrapReturnNone}
	})
	InstallMonitorShims(m.CPU, b)
	return b
}

func (b *MachineBridge) Peek(addr uint16) byte {
	v, _ := b.Machine.Bus.TryRead8(BusAccess{Address: Address(addr), Width: Width8, Intent: DebugRead})
	return v
}

func (b *MachineBridge) Poke(addr uint16, value byte) {
	b.Machine.Bus.TryWrite8(BusAccess{Address: Address(addr), Width: Width8, Intent: DebugWrite, Value: uint32(value)})
}

// Call simulates JSR addr: pushes callSentinel-1 (RTS convention), jumps,
// and steps the CPU until the sentinel trap fires or a STP/halt occurs.
func (b *MachineBridge) Call(addr uint16) {
	cpu := b.Machine.CPU
	cpu.pushWord(callSentinel - 1)
	cpu.PC = addr
	cpu.RequestStop = false

	sched := b.Machine.Scheduler
	bus := b.Machine.Bus
	signals := b.Machine.Signals
	for !cpu.RequestStop {
		ctx := &EventContext{Scheduler: sched, Bus: bus, Signals: signals, Now: sched.Now()}
		halt := cpu.Step(ctx)
		if halt == HaltStp || halt == HaltHalted {
			break
		}
	}
	cpu.RequestStop = false
}

func (b *MachineBridge) WriteChar(v byte) { b.Console.Write(string([]byte{v})) }
func (b *MachineBridge) ReadChar() byte {
	v, _ := b.Console.ReadChar()
	return v
}
