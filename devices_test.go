package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func debugRead(m *Machine, addr Address) byte {
	v, _ := m.Bus.TryRead8(BusAccess{Address: addr, Width: Width8, Intent: DebugRead})
	return v
}

func peekNoSideEffects(m *Machine, addr Address) byte {
	v, _ := m.Bus.TryRead8(BusAccess{Address: addr, Width: Width8, Intent: DebugRead, Flags: FlagNoSideEffects})
	return v
}

func TestKeyboardStrobeAndClear(t *testing.T) {
	m := NewMachine(ProfileIIe, nil)
	m.Reset()

	m.Keyboard.KeyDown('A')
	require.Equal(t, byte('A')|0x80, debugRead(m, AddrKBD))

	// A NoSideEffects peek of $C010 must not clear the strobe.
	peekNoSideEffects(m, AddrKBDSTRB)
	require.Equal(t, byte('A')|0x80, debugRead(m, AddrKBD), "strobe survives a side-effect-free peek")

	// A plain read of $C010 clears it.
	debugRead(m, AddrKBDSTRB)
	require.Equal(t, byte('A'), debugRead(m, AddrKBD))
}

func TestKeyboardInjectionPumpWaitsForStrobeConsumption(t *testing.T) {
	m := NewMachine(ProfileIIe, nil)
	m.Reset()

	m.Keyboard.TypeString(m.Scheduler, "AB", 1)
	m.Scheduler.Advance(1)
	require.Equal(t, byte('A')|0x80, debugRead(m, AddrKBD))

	// The application hasn't read $C010 yet, so the pump must hold 'B'
	// back no matter how long we run.
	m.Scheduler.Advance(10 * 1020)
	require.Equal(t, byte('A')|0x80, debugRead(m, AddrKBD))

	debugRead(m, AddrKBDSTRB) // consume
	m.Scheduler.Advance(2 * 1020)
	require.Equal(t, byte('B')|0x80, debugRead(m, AddrKBD))
}

func TestVideoRDVBLIsInverted(t *testing.T) {
	m := NewMachine(ProfileIIe, nil)
	m.Reset()

	// Outside VBL, bit 7 is set.
	require.Equal(t, byte(0x80), debugRead(m, AddrRDVBLBAR))

	// Advance into the blanking interval: VBL starts at frame-vbl.
	m.Scheduler.Advance(framesCyclesDefault - vblDurationDefault)
	require.Equal(t, byte(0x00), debugRead(m, AddrRDVBLBAR), "bit 7 clear during VBL")

	m.Scheduler.Advance(vblDurationDefault)
	require.Equal(t, byte(0x80), debugRead(m, AddrRDVBLBAR))
}

func TestVideoModeStatusReads(t *testing.T) {
	m := NewMachine(ProfileIIe, nil)
	m.Reset()

	require.Equal(t, byte(0x80), debugRead(m, AddrRDTEXT), "text mode at power-on")

	m.Bus.TryWrite8(BusAccess{Address: AddrTXTCLR, Width: Width8, Intent: DataWrite})
	m.Bus.TryWrite8(BusAccess{Address: AddrHIRES, Width: Width8, Intent: DataWrite})
	require.Equal(t, byte(0x00), debugRead(m, AddrRDTEXT))
	require.Equal(t, byte(0x80), debugRead(m, AddrRDHIRES))
	require.Equal(t, ModeHiRes, m.Video.CurrentMode())

	m.Bus.TryWrite8(BusAccess{Address: AddrMIXSET, Width: Width8, Intent: DataWrite})
	require.Equal(t, ModeHiResMixed, m.Video.CurrentMode())
}

func TestVideoModeSwitchReadsAreSuppressedBySideEffectFreeFlag(t *testing.T) {
	m := NewMachine(ProfileIIe, nil)
	m.Reset()

	peekNoSideEffects(m, AddrTXTCLR)
	require.Equal(t, byte(0x80), debugRead(m, AddrRDTEXT), "peek must not flip the mode")

	debugRead(m, AddrTXTCLR)
	require.Equal(t, byte(0x00), debugRead(m, AddrRDTEXT))
}

func TestCharGenFlashInvertsLow7Bits(t *testing.T) {
	cg := NewCharGen()
	rom := make([]byte, charROMSize)
	rom[0x41*bytesPerGlyph] = 0x55 // glyph $41, scanline 0
	require.NoError(t, cg.LoadCharacterROM(rom))

	plain := cg.GetCharacterScanlineWithEffects(0x41, 0, false, false)
	require.Equal(t, byte(0x55), plain)

	flashed := cg.GetCharacterScanlineWithEffects(0x41, 0, false, true)
	require.Equal(t, byte(0x55^0x7F), flashed)

	// Codes outside [0x40,0x80) never flash.
	rom2 := cg.GetCharacterScanlineWithEffects(0x20, 0, false, true)
	require.Equal(t, byte(0x00), rom2)
}

func TestCharGenAltCharDefersToVBlank(t *testing.T) {
	m := NewMachine(ProfileIIe, nil)
	m.Reset()

	m.Bus.TryWrite8(BusAccess{Address: AddrALTCHAROn, Width: Width8, Intent: DataWrite})
	require.Equal(t, byte(0x00), debugRead(m, AddrRDALTCHAR), "ALTCHAR change waits for the frame boundary")

	m.Scheduler.Advance(framesCyclesDefault) // crosses a VBL start
	require.Equal(t, byte(0x80), debugRead(m, AddrRDALTCHAR))
}

func TestCharGenGlyphRAMGates(t *testing.T) {
	cg := NewCharGen()
	require.False(t, cg.WriteGlyphRAM(0, 0xAA), "write gate closed")
	require.Equal(t, FloatingBus, cg.ReadGlyphRAM(0), "read gate closed")

	cg.glyphWrite = true
	cg.glyphRead = true
	require.True(t, cg.WriteGlyphRAM(0, 0xAA))
	require.Equal(t, byte(0xAA), cg.ReadGlyphRAM(0))
}

func TestSpeakerRecordsToggleCycles(t *testing.T) {
	m := NewMachine(ProfileIIe, nil)
	m.Reset()

	m.Bus.TryRead8(BusAccess{Address: AddrSPKR, Width: Width8, Intent: DataRead, Cycle: 100})
	m.Bus.TryRead8(BusAccess{Address: AddrSPKR, Width: Width8, Intent: DataRead, Cycle: 250})

	toggles := m.Speaker.Toggles()
	require.Len(t, toggles, 2)
	require.Equal(t, Cycle(100), toggles[0].Cycle)
	require.Equal(t, Cycle(250), toggles[1].Cycle)

	// Debug peeks never click the speaker.
	peekNoSideEffects(m, AddrSPKR)
	require.Len(t, m.Speaker.Toggles(), 2)
}

func TestExt80ColALTZPRoutesZeroPageToAux(t *testing.T) {
	m := NewMachine(ProfileIIe, nil)
	m.Reset()

	m.Bus.TryWrite8(BusAccess{Address: 0x0080, Width: Width8, Intent: DataWrite, Value: 0x11})

	m.Bus.TryWrite8(BusAccess{Address: AddrALTZPOn, Width: Width8, Intent: DataWrite})
	m.Bus.TryWrite8(BusAccess{Address: 0x0080, Width: Width8, Intent: DataWrite, Value: 0x22})
	require.Equal(t, byte(0x22), debugRead(m, 0x0080))

	m.Bus.TryWrite8(BusAccess{Address: AddrALTZPOff, Width: Width8, Intent: DataWrite})
	require.Equal(t, byte(0x11), debugRead(m, 0x0080), "main zero page untouched by aux writes")
}

func TestExt80Col80StorePage2SelectsAuxTextPage(t *testing.T) {
	m := NewMachine(ProfileIIe, nil)
	m.Reset()

	m.Bus.TryWrite8(BusAccess{Address: 0x0400, Width: Width8, Intent: DataWrite, Value: 0x33})

	m.Bus.TryWrite8(BusAccess{Address: Addr80STOREOn, Width: Width8, Intent: DataWrite})
	m.Bus.TryWrite8(BusAccess{Address: AddrTXTPAGE2, Width: Width8, Intent: DataWrite})
	m.Bus.TryWrite8(BusAccess{Address: 0x0400, Width: Width8, Intent: DataWrite, Value: 0x44})
	require.Equal(t, byte(0x44), debugRead(m, 0x0400))

	m.Bus.TryWrite8(BusAccess{Address: AddrTXTPAGE1, Width: Width8, Intent: DataWrite})
	require.Equal(t, byte(0x33), debugRead(m, 0x0400), "PAGE2 off reads main text page 1 again")
}
