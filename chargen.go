// chargen.go - character generator: ROM + glyph RAM + flash state machine
package main

const (
	charROMSize   = 4096 // two 2 KiB sets: primary, alternate
	charGlyphSize = 4096
	glyphsPerSet  = 256
	bytesPerGlyph = 8
)

// CharGen owns the 4 KiB character ROM (two 2 KiB sets) and 4 KiB glyph RAM
// overlay, plus the switches that gate which source services a scanline
// read and whether flashing is disabled per set.
type CharGen struct {
	rom   [charROMSize]byte
	glyph [charGlyphSize]byte

	altChar    bool
	altGlyph1  bool
	altGlyph2  bool
	noFlash1   bool
	noFlash2   bool
	glyphRead  bool
	glyphWrite bool

	flashState bool

	pendingAltChar *bool

	CharacterRomChangedCallback func()
}

// NewCharGen creates a character generator with a zeroed ROM; the caller
// must call LoadCharacterROM before first use.
func NewCharGen() *CharGen {
	return &CharGen{}
}

func (c *CharGen) Name() string     { return "CharGen" }
func (c *CharGen) Kind() DeviceKind { return KindMotherboard }

func (c *CharGen) Initialize(ctx *EventContext) {}

// LoadCharacterROM installs a 4 KiB ROM image. It is invalid-argument to
// pass anything but exactly charROMSize bytes.
func (c *CharGen) LoadCharacterROM(data []byte) error {
	if len(data) != charROMSize {
		return &InvalidArgumentError{Reason: "character ROM must be exactly 4096 bytes"}
	}
	copy(c.rom[:], data)
	return nil
}

// GetCharacterScanlineWithEffects returns the byte for glyph code's
// scanline (0..7), selecting ROM vs glyph RAM per the ALTGLYPH switches and
// inverting the low 7 bits when the code is in the flashing range and flash
// is both enabled and currently "on".
func (c *CharGen) GetCharacterScanlineWithEffects(code byte, scanline int, useAlt bool, flashState bool) byte {
	altGlyphOn := c.altGlyph1
	if useAlt {
		altGlyphOn = c.altGlyph2
	}

	var b byte
	if altGlyphOn {
		b = c.glyph[int(code)*bytesPerGlyph+scanline]
	} else {
		base := 0
		if useAlt {
			base = glyphsPerSet * bytesPerGlyph
		}
		b = c.rom[base+int(code)*bytesPerGlyph+scanline]
	}

	noFlash := c.noFlash1
	if useAlt {
		noFlash = c.noFlash2
	}
	if code >= 0x40 && code < 0x80 && !noFlash && flashState {
		b ^= 0x7F
	}
	return b
}

// OnVBlank applies any pending ALTCHAR change, deferred to the frame
// boundary to avoid mid-frame tearing, and flips the flash phase.
func (c *CharGen) OnVBlank() {
	if c.pendingAltChar != nil {
		c.altChar = *c.pendingAltChar
		c.pendingAltChar = nil
		if c.CharacterRomChangedCallback != nil {
			c.CharacterRomChangedCallback()
		}
	}
	c.flashState = !c.flashState
}

// RegisterHandlers wires ALTCHAR (shared with the 80-column controller's
// $C00E/$C00F) plus the glyph/flash/altglyph latch writes and their status
// reads.
func (c *CharGen) RegisterHandlers(d *IODispatcher) {
	setAltChar := func(on bool) func(value byte, access BusAccess) bool {
		return func(value byte, access BusAccess) bool {
			v := on
			c.pendingAltChar = &v
			return true
		}
	}
	d.Register(byte(AddrALTCHAROff-AddrIOPageStart), &IOHandler{Name: "ALTCHAROFF", Write: setAltChar(false)})
	d.Register(byte(AddrALTCHAROn-AddrIOPageStart), &IOHandler{Name: "ALTCHARON", Write: setAltChar(true)})

	latch := func(set func(bool)) func(value byte, access BusAccess) bool {
		return func(value byte, access BusAccess) bool {
			set(true)
			return true
		}
	}
	clearLatch := func(set func(bool)) func(value byte, access BusAccess) bool {
		return func(value byte, access BusAccess) bool {
			set(false)
			return true
		}
	}
	// $C042-$C04D: glyph/flash/altglyph toggles, two addresses each
	// (off, on), in the order altglyph1, altglyph2, noflash1, noflash2,
	// glyphrd, glyphwrt.
	reg := func(base byte, set func(bool)) {
		d.RegisterWrite(base, "GLYPHLATCH", clearLatch(set))
		d.RegisterWrite(base+1, "GLYPHLATCH", latch(set))
	}
	reg(0x42, func(v bool) { c.altGlyph1 = v })
	reg(0x44, func(v bool) { c.altGlyph2 = v })
	reg(0x46, func(v bool) { c.noFlash1 = v })
	reg(0x48, func(v bool) { c.noFlash2 = v })
	reg(0x4A, func(v bool) { c.glyphRead = v })
	reg(0x4C, func(v bool) { c.glyphWrite = v })

	statusAt := func(offset byte, name string, get func() bool) {
		d.RegisterRead(offset, name, func(access BusAccess) (byte, bool) {
			if get() {
				return 0x80, true
			}
			return 0x00, true
		})
	}
	// $C024-$C029 and their $C034-$C039 mirrors report the latch states.
	for _, base := range []byte{0x24, 0x34} {
		statusAt(base+0, "RDALTGLYPH1", func() bool { return c.altGlyph1 })
		statusAt(base+1, "RDALTGLYPH2", func() bool { return c.altGlyph2 })
		statusAt(base+2, "RDNOFLASH1", func() bool { return c.noFlash1 })
		statusAt(base+3, "RDNOFLASH2", func() bool { return c.noFlash2 })
		statusAt(base+4, "RDGLYPHRD", func() bool { return c.glyphRead })
		statusAt(base+5, "RDGLYPHWRT", func() bool { return c.glyphWrite })
	}
	statusAt(byte(AddrRDALTCHAR-AddrIOPageStart), "RDALTCHAR", func() bool { return c.altChar })
}

// ReadGlyphRAM and WriteGlyphRAM are the CPU-facing glyph RAM window,
// gated by the GLYPHRD/GLYPHWRT latches: a closed gate reads as floating
// bus and swallows writes.
func (c *CharGen) ReadGlyphRAM(offset uint16) byte {
	if !c.glyphRead {
		return FloatingBus
	}
	return c.glyph[offset%charGlyphSize]
}

func (c *CharGen) WriteGlyphRAM(offset uint16, value byte) bool {
	if !c.glyphWrite {
		return false
	}
	c.glyph[offset%charGlyphSize] = value
	return true
}

func (c *CharGen) SoftSwitchStates() []SoftSwitchState {
	return []SoftSwitchState{
		{Name: "ALTCHAR", IsOn: c.altChar, Description: "alternate character set"},
		{Name: "ALTGLYPH1", IsOn: c.altGlyph1, Description: "primary glyph RAM overlay"},
		{Name: "ALTGLYPH2", IsOn: c.altGlyph2, Description: "alternate glyph RAM overlay"},
		{Name: "NOFLASH1", IsOn: c.noFlash1, Description: "disable flash on primary set"},
		{Name: "NOFLASH2", IsOn: c.noFlash2, Description: "disable flash on alternate set"},
		{Name: "GLYPHRD", IsOn: c.glyphRead, Description: "glyph RAM readable by CPU"},
		{Name: "GLYPHWRT", IsOn: c.glyphWrite, Description: "glyph RAM writable by CPU"},
	}
}

func (c *CharGen) Reset() {
	c.altChar = false
	c.altGlyph1 = false
	c.altGlyph2 = false
	c.noFlash1 = false
	c.noFlash2 = false
	c.glyphRead = false
	c.glyphWrite = false
	c.flashState = false
	c.pendingAltChar = nil
}

// InvalidArgumentError reports a device configuration error detected at
// build/load time rather than at access time.
type InvalidArgumentError struct {
	Reason string
}

func (e *InvalidArgumentError) Error() string { return e.Reason }
