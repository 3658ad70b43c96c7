// debug_disasm.go - single-instruction 65C02 disassembler for the monitor
package main

import "fmt"

// operandLength returns how many bytes follow the opcode for mode.
func operandLength(mode AddrMode) int {
	switch mode {
	case ModeImplied, ModeAccumulator:
		return 0
	case ModeImmediate, ModeZeroPage, ModeZeroPageX, ModeZeroPageY,
		ModeIndirectX, ModeIndirectY, ModeZeroPageIndirect, ModeRelative:
		return 1
	default:
		return 2
	}
}

// DisassembleOne reads one instruction's bytes (via DebugRead, so it never
// disturbs device latches) at addr and returns its text form plus the
// address of the following instruction.
func DisassembleOne(bus *MemoryBus, addr uint16) (text string, next uint16) {
	peek := func(a uint16) byte {
		v, _ := bus.TryRead8(BusAccess{Address: Address(a), Width: Width8, Intent: DebugRead, Flags: FlagNoSideEffects})
		return v
	}

	opcode := peek(addr)
	entry := opcodeTable[opcode]
	length := operandLength(entry.Mode)

	switch length {
	case 0:
		return fmt.Sprintf("%04X: %02X        %s", addr, opcode, entry.Mnemonic), addr + 1
	case 1:
		operand := peek(addr + 1)
		return fmt.Sprintf("%04X: %02X %02X     %s %s", addr, opcode, operand, entry.Mnemonic, formatOperand1(entry.Mode, operand)), addr + 2
	default:
		lo := peek(addr + 1)
		hi := peek(addr + 2)
		word := uint16(lo) | uint16(hi)<<8
		return fmt.Sprintf("%04X: %02X %02X %02X  %s %s", addr, opcode, lo, hi, entry.Mnemonic, formatOperand2(entry.Mode, word)), addr + 3
	}
}

func formatOperand1(mode AddrMode, v byte) string {
	switch mode {
	case ModeImmediate:
		return fmt.Sprintf("#$%02X", v)
	case ModeZeroPage:
		return fmt.Sprintf("$%02X", v)
	case ModeZeroPageX:
		return fmt.Sprintf("$%02X,X", v)
	case ModeZeroPageY:
		return fmt.Sprintf("$%02X,Y", v)
	case ModeIndirectX:
		return fmt.Sprintf("($%02X,X)", v)
	case ModeIndirectY:
		return fmt.Sprintf("($%02X),Y", v)
	case ModeZeroPageIndirect:
		return fmt.Sprintf("($%02X)", v)
	case ModeRelative:
		return fmt.Sprintf("*%+d", int8(v))
	default:
		return fmt.Sprintf("$%02X", v)
	}
}

func formatOperand2(mode AddrMode, v uint16) string {
	switch mode {
	case ModeAbsoluteX, ModeAbsoluteXWrite:
		return fmt.Sprintf("$%04X,X", v)
	case ModeAbsoluteY, ModeAbsoluteYWrite:
		return fmt.Sprintf("$%04X,Y", v)
	case ModeIndirect:
		return fmt.Sprintf("($%04X)", v)
	case ModeAbsoluteIndirectX:
		return fmt.Sprintf("($%04X,X)", v)
	default:
		return fmt.Sprintf("$%04X", v)
	}
}
