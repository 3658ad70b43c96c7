// cpu6502.go - 65C02 register file, addressing modes, and the instruction cycle
//
// TCU accumulates the cycle cost of the instruction presently executing; it
// is committed to the scheduler in one call per instruction so observers
// never see a partially-charged instruction. This preserves the discipline
// of accumulating into a local counter and committing once, generalized
// from a single mutable register struct threaded through every addressing
// helper and opcode function.
package main

// HaltState is the CPU's current halt condition.
type HaltState int

const (
	HaltNone HaltState = iota
	HaltWai
	HaltStp
	HaltHalted
)

// StatusFlag is a bit position in the P register.
type StatusFlag byte

const (
	FlagC StatusFlag = 1 << 0
	FlagZ StatusFlag = 1 << 1
	FlagI StatusFlag = 1 << 2
	FlagD StatusFlag = 1 << 3
	FlagB StatusFlag = 1 << 4
	FlagU StatusFlag = 1 << 5
	FlagV StatusFlag = 1 << 6
	FlagN StatusFlag = 1 << 7
)

// TrapResult is what a registered trap handler reports after running in
// place of normal instruction fetch/execute.
type TrapResult struct {
	Handled       bool
	CyclesConsumed Cycle
	ReturnMethod  TrapReturnMethod
	ReturnAddress uint16
}

// TrapReturnMethod tells the CPU how to resume after a trap handler runs.
type TrapReturnMethod int

const (
	TrapReturnNone TrapReturnMethod = iota
	TrapReturnRTS
	TrapReturnRTI
)

// TrapHandler intercepts instruction fetch at a specific address.
type TrapHandler func(c *CPU) TrapResult

// TraceEntry is emitted to an attached listener after each instruction.
type TraceEntry struct {
	PC     uint16
	Opcode byte
	A, X, Y, SP byte
	P      byte
	Cycles Cycle
}

// CPU is a single 65C02 core bound to a bus and a signal bus.
type CPU struct {
	A, X, Y, SP byte
	PC          uint16
	P           byte

	Halt HaltState
	TCU  Cycle

	Bus     *MemoryBus
	Signals *SignalBus

	SourceID int

	cycleBase Cycle

	traps map[uint16]TrapHandler

	TraceListener func(TraceEntry)

	RequestStop bool
}

// NewCPU creates a CPU bound to bus and signals. Reset must be called
// before first Step to load PC from the reset vector.
func NewCPU(bus *MemoryBus, signals *SignalBus, sourceID int) *CPU {
	return &CPU{
		Bus:      bus,
		Signals:  signals,
		SourceID: sourceID,
		traps:    make(map[uint16]TrapHandler),
		P:        byte(FlagU) | byte(FlagI),
	}
}

func (c *CPU) getFlag(f StatusFlag) bool { return c.P&byte(f) != 0 }
func (c *CPU) setFlag(f StatusFlag, v bool) {
	if v {
		c.P |= byte(f)
	} else {
		c.P &^= byte(f)
	}
}

func (c *CPU) setZN(v byte) {
	c.setFlag(FlagZ, v == 0)
	c.setFlag(FlagN, v&0x80 != 0)
}

// RegisterTrap installs a handler consulted before instruction fetch at
// addr.
func (c *CPU) RegisterTrap(addr uint16, handler TrapHandler) {
	c.traps[addr] = handler
}

func (c *CPU) access(addr uint16, intent Intent, value byte) BusAccess {
	return BusAccess{
		Address:  Address(addr),
		Value:    uint32(value),
		Width:    Width8,
		Mode:     Decomposed,
		Intent:   intent,
		SourceID: c.SourceID,
		Cycle:    c.cycleBase + c.TCU,
	}
}

// readByte reads one operand/instruction byte and charges one TCU cycle. A
// fault halts the CPU with Stp and returns the floating-bus value.
func (c *CPU) readByte(addr uint16, intent Intent) byte {
	v, fault := c.Bus.TryRead8(c.access(addr, intent, 0))
	c.TCU++
	if fault != nil && fault.Kind == FaultUnmapped && intent != DebugRead {
		c.Halt = HaltStp
	}
	return v
}

func (c *CPU) writeByte(addr uint16, value byte) {
	c.Bus.TryWrite8(c.access(addr, DataWrite, value))
	c.TCU++
}

func (c *CPU) fetch() byte {
	v := c.readByte(c.PC, InstructionFetch)
	c.PC++
	return v
}

func (c *CPU) fetchWord() uint16 {
	lo := c.fetch()
	hi := c.fetch()
	return uint16(lo) | uint16(hi)<<8
}

func (c *CPU) push(v byte) {
	c.writeByte(0x0100|uint16(c.SP), v)
	c.SP--
}

func (c *CPU) pop() byte {
	c.SP++
	return c.readByte(0x0100|uint16(c.SP), DataRead)
}

func (c *CPU) pushWord(v uint16) {
	c.push(byte(v >> 8))
	c.push(byte(v))
}

func (c *CPU) popWord() uint16 {
	lo := c.pop()
	hi := c.pop()
	return uint16(lo) | uint16(hi)<<8
}

func samePage(a, b uint16) bool { return a&0xFF00 == b&0xFF00 }

// AddrMode enumerates every 65C02 addressing mode this core implements.
type AddrMode int

const (
	ModeImplied AddrMode = iota
	ModeAccumulator
	ModeImmediate
	ModeZeroPage
	ModeZeroPageX
	ModeZeroPageY
	ModeAbsolute
	ModeAbsoluteX
	ModeAbsoluteXWrite
	ModeAbsoluteY
	ModeAbsoluteYWrite
	ModeIndirectX
	ModeIndirectY
	ModeIndirect
	ModeAbsoluteIndirectX
	ModeZeroPageIndirect
	ModeRelative
)

// resolve computes the effective address for mode, fetching any operand
// bytes (charging TCU as it goes) and applying the 65C02 page-crossing
// discount rule: +1 cycle on a crossing read, never on a write.
func (c *CPU) resolve(mode AddrMode) uint16 {
	switch mode {
	case ModeZeroPage:
		return uint16(c.fetch())
	case ModeZeroPageX:
		return uint16(c.fetch() + c.X)
	case ModeZeroPageY:
		return uint16(c.fetch() + c.Y)
	case ModeAbsolute:
		return c.fetchWord()
	case ModeAbsoluteX:
		base := c.fetchWord()
		addr := base + uint16(c.X)
		if !samePage(base, addr) {
			c.TCU++
		}
		return addr
	case ModeAbsoluteXWrite:
		base := c.fetchWord()
		return base + uint16(c.X)
	case ModeAbsoluteY:
		base := c.fetchWord()
		addr := base + uint16(c.Y)
		if !samePage(base, addr) {
			c.TCU++
		}
		return addr
	case ModeAbsoluteYWrite:
		base := c.fetchWord()
		return base + uint16(c.Y)
	case ModeIndirectX:
		zp := c.fetch() + c.X
		lo := c.readByte(uint16(zp), DataRead)
		hi := c.readByte(uint16(zp+1), DataRead)
		return uint16(lo) | uint16(hi)<<8
	case ModeIndirectY:
		zp := c.fetch()
		lo := c.readByte(uint16(zp), DataRead)
		hi := c.readByte(uint16(zp+1), DataRead)
		base := uint16(lo) | uint16(hi)<<8
		addr := base + uint16(c.Y)
		if !samePage(base, addr) {
			c.TCU++
		}
		return addr
	case ModeZeroPageIndirect:
		zp := c.fetch()
		lo := c.readByte(uint16(zp), DataRead)
		hi := c.readByte(uint16(zp+1), DataRead)
		return uint16(lo) | uint16(hi)<<8
	case ModeIndirect:
		ptr := c.fetchWord()
		lo := c.readByte(ptr, DataRead)
		// 65C02 fixes the classic page-wrap bug: the high byte always
		// comes from ptr+1, never wrapping within the same page.
		hi := c.readByte(ptr+1, DataRead)
		return uint16(lo) | uint16(hi)<<8
	case ModeAbsoluteIndirectX:
		ptr := c.fetchWord() + uint16(c.X)
		lo := c.readByte(ptr, DataRead)
		hi := c.readByte(ptr+1, DataRead)
		return uint16(lo) | uint16(hi)<<8
	case ModeRelative:
		return uint16(int8(c.fetch()))
	default:
		return 0
	}
}

// Step runs exactly one full instruction cycle: signal poll, optional
// interrupt sequence or trap, fetch/execute, and TCU commit. ctx supplies
// the scheduler the committed cycles are charged against.
func (c *CPU) Step(ctx *EventContext) HaltState {
	c.TCU = 0
	c.cycleBase = ctx.Now

	// STP is terminal: only Reset recovers, and a stopped core must not
	// consume NMI edges out from under a future reset handler.
	if c.Halt == HaltStp {
		return c.Halt
	}

	if c.Signals.ConsumeNMIEdge() {
		c.Halt = HaltNone
		c.interruptSequence(0xFFFA, false)
		ctx.Scheduler.Advance(c.TCU)
		return c.Halt
	}
	if c.Signals.IsAsserted(LineIRQ) {
		if !c.getFlag(FlagI) {
			c.Halt = HaltNone
			c.interruptSequence(0xFFFE, false)
			ctx.Scheduler.Advance(c.TCU)
			return c.Halt
		}
		c.Halt = HaltNone // IRQ clears WAI even when masked, but does not vector
	}

	if c.Halt == HaltWai {
		return c.Halt
	}

	if trap, ok := c.traps[c.PC]; ok {
		result := trap(c)
		if result.Handled {
			c.TCU += result.CyclesConsumed
			switch result.ReturnMethod {
			case TrapReturnRTS:
				c.PC = c.popWord() + 1
				c.TCU += 6
			case TrapReturnRTI:
				c.P = c.pop() | byte(FlagU)
				c.PC = c.popWord()
				c.TCU += 6
			}
			ctx.Scheduler.Advance(c.TCU)
			return c.Halt
		}
	}

	opcode := c.fetch()
	entry := opcodeTable[opcode]
	entry.Exec(c, entry.Mode)

	if listener := c.TraceListener; listener != nil {
		listener(TraceEntry{PC: c.PC, Opcode: opcode, A: c.A, X: c.X, Y: c.Y, SP: c.SP, P: c.P, Cycles: c.TCU})
	}

	ctx.Scheduler.Advance(c.TCU)
	return c.Halt
}

func (c *CPU) interruptSequence(vector uint16, brk bool) {
	c.pushWord(c.PC)
	status := c.P | byte(FlagU)
	if brk {
		status |= byte(FlagB)
	} else {
		status &^= byte(FlagB)
	}
	c.push(status)
	c.setFlag(FlagI, true)
	lo := c.readByte(vector, DataRead)
	hi := c.readByte(vector+1, DataRead)
	c.PC = uint16(lo) | uint16(hi)<<8
	if !brk {
		// A hardware interrupt has no opcode/signature fetches; two
		// internal cycles round the five bus accesses out to seven.
		c.TCU += 2
	}
}

// Reset loads PC from the reset vector and puts the CPU in its documented
// power-on register state.
func (c *CPU) Reset() {
	c.SP = 0xFD
	c.P = byte(FlagU) | byte(FlagI)
	c.Halt = HaltNone
	lo := c.readByte(0xFFFC, DataRead)
	hi := c.readByte(0xFFFD, DataRead)
	c.PC = uint16(lo) | uint16(hi)<<8
	c.TCU = 0
}
