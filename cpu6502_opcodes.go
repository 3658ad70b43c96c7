// cpu6502_opcodes.go - 65C02 instruction dispatch table
//
// Each entry pairs an addressing mode with an exec function; the exec
// function calls resolve(mode) itself when it needs an effective address,
// so ModeImplied/ModeAccumulator instructions that never touch memory incur
// no addressing overhead.
package main

type opcodeEntry struct {
	Mnemonic string
	Mode     AddrMode
	Exec     func(c *CPU, mode AddrMode)
}

// load/store

func opLDA(c *CPU, mode AddrMode) {
	if mode == ModeImmediate {
		c.A = c.fetch()
	} else {
		c.A = c.readByte(c.resolve(mode), DataRead)
	}
	c.setZN(c.A)
}

func opLDX(c *CPU, mode AddrMode) {
	if mode == ModeImmediate {
		c.X = c.fetch()
	} else {
		c.X = c.readByte(c.resolve(mode), DataRead)
	}
	c.setZN(c.X)
}

func opLDY(c *CPU, mode AddrMode) {
	if mode == ModeImmediate {
		c.Y = c.fetch()
	} else {
		c.Y = c.readByte(c.resolve(mode), DataRead)
	}
	c.setZN(c.Y)
}

func opSTA(c *CPU, mode AddrMode) { c.writeByte(c.resolve(mode), c.A) }
func opSTX(c *CPU, mode AddrMode) { c.writeByte(c.resolve(mode), c.X) }
func opSTY(c *CPU, mode AddrMode) { c.writeByte(c.resolve(mode), c.Y) }
func opSTZ(c *CPU, mode AddrMode) { c.writeByte(c.resolve(mode), 0) }

// transfers

func opTAX(c *CPU, mode AddrMode) { c.X = c.A; c.setZN(c.X) }
func opTXA(c *CPU, mode AddrMode) { c.A = c.X; c.setZN(c.A) }
func opTAY(c *CPU, mode AddrMode) { c.Y = c.A; c.setZN(c.Y) }
func opTYA(c *CPU, mode AddrMode) { c.A = c.Y; c.setZN(c.A) }
func opTSX(c *CPU, mode AddrMode) { c.X = c.SP; c.setZN(c.X) }
func opTXS(c *CPU, mode AddrMode) { c.SP = c.X }

func opPHA(c *CPU, mode AddrMode) { c.push(c.A) }
func opPLA(c *CPU, mode AddrMode) { c.A = c.pop(); c.setZN(c.A) }
func opPHX(c *CPU, mode AddrMode) { c.push(c.X) }
func opPLX(c *CPU, mode AddrMode) { c.X = c.pop(); c.setZN(c.X) }
func opPHY(c *CPU, mode AddrMode) { c.push(c.Y) }
func opPLY(c *CPU, mode AddrMode) { c.Y = c.pop(); c.setZN(c.Y) }
func opPHP(c *CPU, mode AddrMode) { c.push(c.P | byte(FlagB) | byte(FlagU)) }
func opPLP(c *CPU, mode AddrMode) { c.P = (c.pop() &^ byte(FlagB)) | byte(FlagU) }

// arithmetic

func (c *CPU) addWithCarry(v byte) {
	carry := byte(0)
	if c.getFlag(FlagC) {
		carry = 1
	}
	if c.getFlag(FlagD) {
		// Decimal mode: BCD addition, as the 65C02 (unlike NMOS 6502)
		// correctly sets N/Z/V too.
		lo := (c.A & 0x0F) + (v & 0x0F) + carry
		hi := (c.A >> 4) + (v >> 4)
		if lo > 9 {
			lo += 6
			hi++
		}
		result16 := int(c.A) + int(v) + int(carry)
		c.setFlag(FlagV, (c.A^v)&0x80 == 0 && (c.A^byte(hi<<4))&0x80 != 0)
		if hi > 9 {
			hi += 6
			c.setFlag(FlagC, true)
		} else {
			c.setFlag(FlagC, false)
		}
		c.A = (hi << 4) | (lo & 0x0F)
		c.setFlag(FlagZ, byte(result16) == 0)
		c.setFlag(FlagN, c.A&0x80 != 0)
		c.TCU++ // 65C02 decimal-mode ADC/SBC cost one extra cycle
		return
	}
	sum := uint16(c.A) + uint16(v) + uint16(carry)
	result := byte(sum)
	c.setFlag(FlagC, sum > 0xFF)
	c.setFlag(FlagV, (c.A^v)&0x80 == 0 && (c.A^result)&0x80 != 0)
	c.A = result
	c.setZN(c.A)
}

func opADC(c *CPU, mode AddrMode) {
	var v byte
	if mode == ModeImmediate {
		v = c.fetch()
	} else {
		v = c.readByte(c.resolve(mode), DataRead)
	}
	c.addWithCarry(v)
}

func opSBC(c *CPU, mode AddrMode) {
	var v byte
	if mode == ModeImmediate {
		v = c.fetch()
	} else {
		v = c.readByte(c.resolve(mode), DataRead)
	}
	c.addWithCarry(v ^ 0xFF)
}

func opINC(c *CPU, mode AddrMode) {
	if mode == ModeAccumulator {
		c.A++
		c.setZN(c.A)
		return
	}
	addr := c.resolve(mode)
	v := c.readByte(addr, DataRead) + 1
	c.writeByte(addr, v)
	c.setZN(v)
}

func opDEC(c *CPU, mode AddrMode) {
	if mode == ModeAccumulator {
		c.A--
		c.setZN(c.A)
		return
	}
	addr := c.resolve(mode)
	v := c.readByte(addr, DataRead) - 1
	c.writeByte(addr, v)
	c.setZN(v)
}

func opINX(c *CPU, mode AddrMode) { c.X++; c.setZN(c.X) }
func opDEX(c *CPU, mode AddrMode) { c.X--; c.setZN(c.X) }
func opINY(c *CPU, mode AddrMode) { c.Y++; c.setZN(c.Y) }
func opDEY(c *CPU, mode AddrMode) { c.Y--; c.setZN(c.Y) }

// logic

func opAND(c *CPU, mode AddrMode) {
	var v byte
	if mode == ModeImmediate {
		v = c.fetch()
	} else {
		v = c.readByte(c.resolve(mode), DataRead)
	}
	c.A &= v
	c.setZN(c.A)
}

func opORA(c *CPU, mode AddrMode) {
	var v byte
	if mode == ModeImmediate {
		v = c.fetch()
	} else {
		v = c.readByte(c.resolve(mode), DataRead)
	}
	c.A |= v
	c.setZN(c.A)
}

func opEOR(c *CPU, mode AddrMode) {
	var v byte
	if mode == ModeImmediate {
		v = c.fetch()
	} else {
		v = c.readByte(c.resolve(mode), DataRead)
	}
	c.A ^= v
	c.setZN(c.A)
}

func opBIT(c *CPU, mode AddrMode) {
	var v byte
	if mode == ModeImmediate {
		v = c.fetch()
	} else {
		v = c.readByte(c.resolve(mode), DataRead)
		c.setFlag(FlagN, v&0x80 != 0)
		c.setFlag(FlagV, v&0x40 != 0)
	}
	c.setFlag(FlagZ, c.A&v == 0)
}

func opTRB(c *CPU, mode AddrMode) {
	addr := c.resolve(mode)
	v := c.readByte(addr, DataRead)
	c.setFlag(FlagZ, c.A&v == 0)
	c.writeByte(addr, v&^c.A)
}

func opTSB(c *CPU, mode AddrMode) {
	addr := c.resolve(mode)
	v := c.readByte(addr, DataRead)
	c.setFlag(FlagZ, c.A&v == 0)
	c.writeByte(addr, v|c.A)
}

// shifts/rotates

func opASL(c *CPU, mode AddrMode) {
	if mode == ModeAccumulator {
		c.setFlag(FlagC, c.A&0x80 != 0)
		c.A <<= 1
		c.setZN(c.A)
		return
	}
	addr := c.resolve(mode)
	v := c.readByte(addr, DataRead)
	c.setFlag(FlagC, v&0x80 != 0)
	v <<= 1
	c.writeByte(addr, v)
	c.setZN(v)
}

func opLSR(c *CPU, mode AddrMode) {
	if mode == ModeAccumulator {
		c.setFlag(FlagC, c.A&0x01 != 0)
		c.A >>= 1
		c.setZN(c.A)
		return
	}
	addr := c.resolve(mode)
	v := c.readByte(addr, DataRead)
	c.setFlag(FlagC, v&0x01 != 0)
	v >>= 1
	c.writeByte(addr, v)
	c.setZN(v)
}

func opROL(c *CPU, mode AddrMode) {
	oldCarry := byte(0)
	if c.getFlag(FlagC) {
		oldCarry = 1
	}
	if mode == ModeAccumulator {
		c.setFlag(FlagC, c.A&0x80 != 0)
		c.A = (c.A << 1) | oldCarry
		c.setZN(c.A)
		return
	}
	addr := c.resolve(mode)
	v := c.readByte(addr, DataRead)
	c.setFlag(FlagC, v&0x80 != 0)
	v = (v << 1) | oldCarry
	c.writeByte(addr, v)
	c.setZN(v)
}

func opROR(c *CPU, mode AddrMode) {
	oldCarry := byte(0)
	if c.getFlag(FlagC) {
		oldCarry = 0x80
	}
	if mode == ModeAccumulator {
		c.setFlag(FlagC, c.A&0x01 != 0)
		c.A = (c.A >> 1) | oldCarry
		c.setZN(c.A)
		return
	}
	addr := c.resolve(mode)
	v := c.readByte(addr, DataRead)
	c.setFlag(FlagC, v&0x01 != 0)
	v = (v >> 1) | oldCarry
	c.writeByte(addr, v)
	c.setZN(v)
}

// compare

func (c *CPU) compare(reg, v byte) {
	result := reg - v
	c.setFlag(FlagC, reg >= v)
	c.setZN(result)
}

func opCMP(c *CPU, mode AddrMode) {
	var v byte
	if mode == ModeImmediate {
		v = c.fetch()
	} else {
		v = c.readByte(c.resolve(mode), DataRead)
	}
	c.compare(c.A, v)
}

func opCPX(c *CPU, mode AddrMode) {
	var v byte
	if mode == ModeImmediate {
		v = c.fetch()
	} else {
		v = c.readByte(c.resolve(mode), DataRead)
	}
	c.compare(c.X, v)
}

func opCPY(c *CPU, mode AddrMode) {
	var v byte
	if mode == ModeImmediate {
		v = c.fetch()
	} else {
		v = c.readByte(c.resolve(mode), DataRead)
	}
	c.compare(c.Y, v)
}

// branches

func (c *CPU) branch(taken bool) {
	offset := int8(c.resolve(ModeRelative))
	if !taken {
		return
	}
	c.TCU++
	target := uint16(int32(c.PC) + int32(offset))
	if !samePage(c.PC, target) {
		c.TCU++
	}
	c.PC = target
}

func opBCC(c *CPU, mode AddrMode) { c.branch(!c.getFlag(FlagC)) }
func opBCS(c *CPU, mode AddrMode) { c.branch(c.getFlag(FlagC)) }
func opBEQ(c *CPU, mode AddrMode) { c.branch(c.getFlag(FlagZ)) }
func opBNE(c *CPU, mode AddrMode) { c.branch(!c.getFlag(FlagZ)) }
func opBMI(c *CPU, mode AddrMode) { c.branch(c.getFlag(FlagN)) }
func opBPL(c *CPU, mode AddrMode) { c.branch(!c.getFlag(FlagN)) }
func opBVC(c *CPU, mode AddrMode) { c.branch(!c.getFlag(FlagV)) }
func opBVS(c *CPU, mode AddrMode) { c.branch(c.getFlag(FlagV)) }
func opBRA(c *CPU, mode AddrMode) { c.branch(true) }

// jumps

func opJMP(c *CPU, mode AddrMode) { c.PC = c.resolve(mode) }

func opJSR(c *CPU, mode AddrMode) {
	addr := c.resolve(mode)
	c.pushWord(c.PC - 1)
	c.PC = addr
}

func opRTS(c *CPU, mode AddrMode) {
	c.PC = c.popWord() + 1
	c.TCU += 2
}

func opRTI(c *CPU, mode AddrMode) {
	c.P = (c.pop() &^ byte(FlagB)) | byte(FlagU)
	c.PC = c.popWord()
}

func opBRK(c *CPU, mode AddrMode) {
	c.fetch() // BRK's signature byte is fetched and discarded
	c.interruptSequence(0xFFFE, true)
}

// flags

func opCLC(c *CPU, mode AddrMode) { c.setFlag(FlagC, false) }
func opSEC(c *CPU, mode AddrMode) { c.setFlag(FlagC, true) }
func opCLI(c *CPU, mode AddrMode) { c.setFlag(FlagI, false) }
func opSEI(c *CPU, mode AddrMode) { c.setFlag(FlagI, true) }
func opCLD(c *CPU, mode AddrMode) { c.setFlag(FlagD, false) }
func opSED(c *CPU, mode AddrMode) { c.setFlag(FlagD, true) }
func opCLV(c *CPU, mode AddrMode) { c.setFlag(FlagV, false) }

// misc

func opNOP(c *CPU, mode AddrMode) {}
func opWAI(c *CPU, mode AddrMode) { c.Halt = HaltWai }
func opSTP(c *CPU, mode AddrMode) { c.Halt = HaltStp }

var opcodeTable = buildOpcodeTable()

func buildOpcodeTable() [256]opcodeEntry {
	var t [256]opcodeEntry
	for i := range t {
		t[i] = opcodeEntry{Mnemonic: "NOP", Mode: ModeImplied, Exec: opNOP}
	}
	set := func(op byte, mnemonic string, mode AddrMode, exec func(c *CPU, mode AddrMode)) {
		t[op] = opcodeEntry{Mnemonic: mnemonic, Mode: mode, Exec: exec}
	}

	set(0xA9, "LDA", ModeImmediate, opLDA)
	set(0xA5, "LDA", ModeZeroPage, opLDA)
	set(0xB5, "LDA", ModeZeroPageX, opLDA)
	set(0xAD, "LDA", ModeAbsolute, opLDA)
	set(0xBD, "LDA", ModeAbsoluteX, opLDA)
	set(0xB9, "LDA", ModeAbsoluteY, opLDA)
	set(0xA1, "LDA", ModeIndirectX, opLDA)
	set(0xB1, "LDA", ModeIndirectY, opLDA)
	set(0xB2, "LDA", ModeZeroPageIndirect, opLDA)

	set(0xA2, "LDX", ModeImmediate, opLDX)
	set(0xA6, "LDX", ModeZeroPage, opLDX)
	set(0xB6, "LDX", ModeZeroPageY, opLDX)
	set(0xAE, "LDX", ModeAbsolute, opLDX)
	set(0xBE, "LDX", ModeAbsoluteY, opLDX)

	set(0xA0, "LDY", ModeImmediate, opLDY)
	set(0xA4, "LDY", ModeZeroPage, opLDY)
	set(0xB4, "LDY", ModeZeroPageX, opLDY)
	set(0xAC, "LDY", ModeAbsolute, opLDY)
	set(0xBC, "LDY", ModeAbsoluteX, opLDY)

	set(0x85, "STA", ModeZeroPage, opSTA)
	set(0x95, "STA", ModeZeroPageX, opSTA)
	set(0x8D, "STA", ModeAbsolute, opSTA)
	set(0x9D, "STA", ModeAbsoluteXWrite, opSTA)
	set(0x99, "STA", ModeAbsoluteYWrite, opSTA)
	set(0x81, "STA", ModeIndirectX, opSTA)
	set(0x91, "STA", ModeIndirectY, opSTA)
	set(0x92, "STA", ModeZeroPageIndirect, opSTA)

	set(0x86, "STX", ModeZeroPage, opSTX)
	set(0x96, "STX", ModeZeroPageY, opSTX)
	set(0x8E, "STX", ModeAbsolute, opSTX)

	set(0x84, "STY", ModeZeroPage, opSTY)
	set(0x94, "STY", ModeZeroPageX, opSTY)
	set(0x8C, "STY", ModeAbsolute, opSTY)

	set(0x64, "STZ", ModeZeroPage, opSTZ)
	set(0x74, "STZ", ModeZeroPageX, opSTZ)
	set(0x9C, "STZ", ModeAbsolute, opSTZ)
	set(0x9E, "STZ", ModeAbsoluteXWrite, opSTZ)

	set(0xAA, "TAX", ModeImplied, opTAX)
	set(0x8A, "TXA", ModeImplied, opTXA)
	set(0xA8, "TAY", ModeImplied, opTAY)
	set(0x98, "TYA", ModeImplied, opTYA)
	set(0xBA, "TSX", ModeImplied, opTSX)
	set(0x9A, "TXS", ModeImplied, opTXS)

	set(0x48, "PHA", ModeImplied, opPHA)
	set(0x68, "PLA", ModeImplied, opPLA)
	set(0xDA, "PHX", ModeImplied, opPHX)
	set(0xFA, "PLX", ModeImplied, opPLX)
	set(0x5A, "PHY", ModeImplied, opPHY)
	set(0x7A, "PLY", ModeImplied, opPLY)
	set(0x08, "PHP", ModeImplied, opPHP)
	set(0x28, "PLP", ModeImplied, opPLP)

	set(0x69, "ADC", ModeImmediate, opADC)
	set(0x65, "ADC", ModeZeroPage, opADC)
	set(0x75, "ADC", ModeZeroPageX, opADC)
	set(0x6D, "ADC", ModeAbsolute, opADC)
	set(0x7D, "ADC", ModeAbsoluteX, opADC)
	set(0x79, "ADC", ModeAbsoluteY, opADC)
	set(0x61, "ADC", ModeIndirectX, opADC)
	set(0x71, "ADC", ModeIndirectY, opADC)
	set(0x72, "ADC", ModeZeroPageIndirect, opADC)

	set(0xE9, "SBC", ModeImmediate, opSBC)
	set(0xE5, "SBC", ModeZeroPage, opSBC)
	set(0xF5, "SBC", ModeZeroPageX, opSBC)
	set(0xED, "SBC", ModeAbsolute, opSBC)
	set(0xFD, "SBC", ModeAbsoluteX, opSBC)
	set(0xF9, "SBC", ModeAbsoluteY, opSBC)
	set(0xE1, "SBC", ModeIndirectX, opSBC)
	set(0xF1, "SBC", ModeIndirectY, opSBC)
	set(0xF2, "SBC", ModeZeroPageIndirect, opSBC)

	set(0x1A, "INC", ModeAccumulator, opINC)
	set(0xE6, "INC", ModeZeroPage, opINC)
	set(0xF6, "INC", ModeZeroPageX, opINC)
	set(0xEE, "INC", ModeAbsolute, opINC)
	set(0xFE, "INC", ModeAbsoluteXWrite, opINC)

	set(0x3A, "DEC", ModeAccumulator, opDEC)
	set(0xC6, "DEC", ModeZeroPage, opDEC)
	set(0xD6, "DEC", ModeZeroPageX, opDEC)
	set(0xCE, "DEC", ModeAbsolute, opDEC)
	set(0xDE, "DEC", ModeAbsoluteXWrite, opDEC)

	set(0xE8, "INX", ModeImplied, opINX)
	set(0xCA, "DEX", ModeImplied, opDEX)
	set(0xC8, "INY", ModeImplied, opINY)
	set(0x88, "DEY", ModeImplied, opDEY)

	set(0x29, "AND", ModeImmediate, opAND)
	set(0x25, "AND", ModeZeroPage, opAND)
	set(0x35, "AND", ModeZeroPageX, opAND)
	set(0x2D, "AND", ModeAbsolute, opAND)
	set(0x3D, "AND", ModeAbsoluteX, opAND)
	set(0x39, "AND", ModeAbsoluteY, opAND)
	set(0x21, "AND", ModeIndirectX, opAND)
	set(0x31, "AND", ModeIndirectY, opAND)
	set(0x32, "AND", ModeZeroPageIndirect, opAND)

	set(0x09, "ORA", ModeImmediate, opORA)
	set(0x05, "ORA", ModeZeroPage, opORA)
	set(0x15, "ORA", ModeZeroPageX, opORA)
	set(0x0D, "ORA", ModeAbsolute, opORA)
	set(0x1D, "ORA", ModeAbsoluteX, opORA)
	set(0x19, "ORA", ModeAbsoluteY, opORA)
	set(0x01, "ORA", ModeIndirectX, opORA)
	set(0x11, "ORA", ModeIndirectY, opORA)
	set(0x12, "ORA", ModeZeroPageIndirect, opORA)

	set(0x49, "EOR", ModeImmediate, opEOR)
	set(0x45, "EOR", ModeZeroPage, opEOR)
	set(0x55, "EOR", ModeZeroPageX, opEOR)
	set(0x4D, "EOR", ModeAbsolute, opEOR)
	set(0x5D, "EOR", ModeAbsoluteX, opEOR)
	set(0x59, "EOR", ModeAbsoluteY, opEOR)
	set(0x41, "EOR", ModeIndirectX, opEOR)
	set(0x51, "EOR", ModeIndirectY, opEOR)
	set(0x52, "EOR", ModeZeroPageIndirect, opEOR)

	set(0x89, "BIT", ModeImmediate, opBIT)
	set(0x24, "BIT", ModeZeroPage, opBIT)
	set(0x34, "BIT", ModeZeroPageX, opBIT)
	set(0x2C, "BIT", ModeAbsolute, opBIT)
	set(0x3C, "BIT", ModeAbsoluteX, opBIT)

	set(0x14, "TRB", ModeZeroPage, opTRB)
	set(0x1C, "TRB", ModeAbsolute, opTRB)
	set(0x04, "TSB", ModeZeroPage, opTSB)
	set(0x0C, "TSB", ModeAbsolute, opTSB)

	set(0x0A, "ASL", ModeAccumulator, opASL)
	set(0x06, "ASL", ModeZeroPage, opASL)
	set(0x16, "ASL", ModeZeroPageX, opASL)
	set(0x0E, "ASL", ModeAbsolute, opASL)
	set(0x1E, "ASL", ModeAbsoluteXWrite, opASL)

	set(0x4A, "LSR", ModeAccumulator, opLSR)
	set(0x46, "LSR", ModeZeroPage, opLSR)
	set(0x56, "LSR", ModeZeroPageX, opLSR)
	set(0x4E, "LSR", ModeAbsolute, opLSR)
	set(0x5E, "LSR", ModeAbsoluteXWrite, opLSR)

	set(0x2A, "ROL", ModeAccumulator, opROL)
	set(0x26, "ROL", ModeZeroPage, opROL)
	set(0x36, "ROL", ModeZeroPageX, opROL)
	set(0x2E, "ROL", ModeAbsolute, opROL)
	set(0x3E, "ROL", ModeAbsoluteXWrite, opROL)

	set(0x6A, "ROR", ModeAccumulator, opROR)
	set(0x66, "ROR", ModeZeroPage, opROR)
	set(0x76, "ROR", ModeZeroPageX, opROR)
	set(0x6E, "ROR", ModeAbsolute, opROR)
	set(0x7E, "ROR", ModeAbsoluteXWrite, opROR)

	set(0xC9, "CMP", ModeImmediate, opCMP)
	set(0xC5, "CMP", ModeZeroPage, opCMP)
	set(0xD5, "CMP", ModeZeroPageX, opCMP)
	set(0xCD, "CMP", ModeAbsolute, opCMP)
	set(0xDD, "CMP", ModeAbsoluteX, opCMP)
	set(0xD9, "CMP", ModeAbsoluteY, opCMP)
	set(0xC1, "CMP", ModeIndirectX, opCMP)
	set(0xD1, "CMP", ModeIndirectY, opCMP)
	set(0xD2, "CMP", ModeZeroPageIndirect, opCMP)

	set(0xE0, "CPX", ModeImmediate, opCPX)
	set(0xE4, "CPX", ModeZeroPage, opCPX)
	set(0xEC, "CPX", ModeAbsolute, opCPX)

	set(0xC0, "CPY", ModeImmediate, opCPY)
	set(0xC4, "CPY", ModeZeroPage, opCPY)
	set(0xCC, "CPY", ModeAbsolute, opCPY)

	set(0x90, "BCC", ModeRelative, opBCC)
	set(0xB0, "BCS", ModeRelative, opBCS)
	set(0xF0, "BEQ", ModeRelative, opBEQ)
	set(0xD0, "BNE", ModeRelative, opBNE)
	set(0x30, "BMI", ModeRelative, opBMI)
	set(0x10, "BPL", ModeRelative, opBPL)
	set(0x50, "BVC", ModeRelative, opBVC)
	set(0x70, "BVS", ModeRelative, opBVS)
	set(0x80, "BRA", ModeRelative, opBRA)

	set(0x4C, "JMP", ModeAbsolute, opJMP)
	set(0x6C, "JMP", ModeIndirect, opJMP)
	set(0x7C, "JMP", ModeAbsoluteIndirectX, opJMP) // (a,X) indexed-indirect jump
	set(0x20, "JSR", ModeAbsolute, opJSR)
	set(0x60, "RTS", ModeImplied, opRTS)
	set(0x40, "RTI", ModeImplied, opRTI)
	set(0x00, "BRK", ModeImplied, opBRK)

	set(0x18, "CLC", ModeImplied, opCLC)
	set(0x38, "SEC", ModeImplied, opSEC)
	set(0x58, "CLI", ModeImplied, opCLI)
	set(0x78, "SEI", ModeImplied, opSEI)
	set(0xD8, "CLD", ModeImplied, opCLD)
	set(0xF8, "SED", ModeImplied, opSED)
	set(0xB8, "CLV", ModeImplied, opCLV)

	set(0xEA, "NOP", ModeImplied, opNOP)
	set(0xCB, "WAI", ModeImplied, opWAI)
	set(0xDB, "STP", ModeImplied, opSTP)

	return t
}
