// basic_interp_graphics.go - GR/HGR/PLOT/HPLOT/DRAW and the display soft switches
//
// Rendering pixels to a host display is an external collaborator; these
// statements manipulate the machine's real soft switches and video memory
// through the Bridge, which is exactly what the original firmware routines
// did. With no bridge attached they validate their operands and stop.
package main

import "math"

const (
	loresCols = 40
	loresRows = 48
	hiresCols = 280
	hiresRows = 192

	textPage1Base  = 0x0400
	hiresPage1Base = 0x2000
	hiresPage2Base = 0x4000
	hiresPageSize  = 0x2000
)

// Display soft-switch addresses the graphics statements drive, mirroring
// the registers.go catalog from the interpreter's side of the fence.
const (
	swGraphics Address = AddrTXTCLR
	swText     Address = AddrTXTSET
	swFull     Address = AddrMIXCLR
	swMixed    Address = AddrMIXSET
	swPage1    Address = AddrTXTPAGE1
	swPage2    Address = AddrTXTPAGE2
	swLores    Address = AddrLORES
	swHires    Address = AddrHIRES
)

func (it *Interpreter) pokeSwitch(addr Address) {
	if it.Bridge != nil {
		it.Bridge.Poke(uint16(addr), 0)
	}
}

func (it *Interpreter) execGr(curLine int) error {
	it.pokeSwitch(swGraphics)
	it.pokeSwitch(swMixed)
	it.pokeSwitch(swPage1)
	it.pokeSwitch(swLores)
	if it.Bridge != nil {
		// GR clears the lores screen to black (all nibbles zero).
		for addr := uint16(textPage1Base); addr < textPage1Base+0x3F8; addr++ {
			it.Bridge.Poke(addr, 0)
		}
	}
	it.color = 0
	return nil
}

func (it *Interpreter) execHgr(st *HgrStmt, curLine int) error {
	it.pokeSwitch(swGraphics)
	it.pokeSwitch(swHires)
	base := uint16(hiresPage1Base)
	if st.Page2 {
		it.pokeSwitch(swFull)
		it.pokeSwitch(swPage2)
		base = hiresPage2Base
	} else {
		it.pokeSwitch(swMixed)
		it.pokeSwitch(swPage1)
	}
	if it.Bridge != nil {
		for off := uint16(0); off < hiresPageSize; off++ {
			it.Bridge.Poke(base+off, 0)
		}
	}
	it.hiresPage2 = st.Page2
	return nil
}

func (it *Interpreter) execColor(st *ColorStmt, curLine int) error {
	v, err := it.evalExpr(st.Value, curLine)
	if err != nil {
		return err
	}
	n, err := v.AsNumber()
	if err != nil {
		return (err.(*BasicError)).WithLine(curLine)
	}
	c := int(n)
	if st.Hi {
		if c < 0 || c > 7 {
			return &BasicError{Code: ErrIllegalQuantity, Line: curLine}
		}
		it.hcolor = c
	} else {
		if c < 0 || c > 15 {
			return &BasicError{Code: ErrIllegalQuantity, Line: curLine}
		}
		it.color = c
	}
	return nil
}

// loresRowBase returns the text-page address of lores row pair r (0..23),
// using the classic interleaved screen layout.
func loresRowBase(r int) uint16 {
	return uint16(textPage1Base + (r%8)*0x80 + (r/8)*0x28)
}

func (it *Interpreter) execPlot(st *PlotStmt, curLine int) error {
	x, y, err := it.evalCoords(st.X, st.Y, curLine, loresCols, loresRows)
	if err != nil {
		return err
	}
	if it.Bridge == nil {
		return nil
	}
	addr := loresRowBase(y/2) + uint16(x)
	cell := it.Bridge.Peek(addr)
	if y%2 == 0 {
		cell = (cell &^ 0x0F) | byte(it.color)
	} else {
		cell = (cell &^ 0xF0) | byte(it.color)<<4
	}
	it.Bridge.Poke(addr, cell)
	return nil
}

// hiresByteAddr returns the hires page byte address and bit for pixel
// (x, y), using the classic three-way interleave.
func (it *Interpreter) hiresByteAddr(x, y int) (uint16, byte) {
	base := hiresPage1Base
	if it.hiresPage2 {
		base = hiresPage2Base
	}
	addr := base + (y&7)*0x400 + ((y>>3)&7)*0x80 + (y>>6)*0x28 + x/7
	return uint16(addr), byte(1) << uint(x%7)
}

func (it *Interpreter) hplotPoint(x, y int) {
	if it.Bridge == nil {
		return
	}
	addr, bit := it.hiresByteAddr(x, y)
	cell := it.Bridge.Peek(addr)
	// Colors 0 (black1) and 4 (black2) clear the pixel; everything else
	// sets it. Palette group selection (bit 7) follows the pen color.
	if it.hcolor == 0 || it.hcolor == 4 {
		cell &^= bit
	} else {
		cell |= bit
	}
	if it.hcolor >= 4 {
		cell |= 0x80
	} else {
		cell &^= 0x80
	}
	it.Bridge.Poke(addr, cell)
}

// hplotLine draws from (x0,y0) to (x1,y1) inclusive with the usual
// integer line walk.
func (it *Interpreter) hplotLine(x0, y0, x1, y1 int) {
	dx := int(math.Abs(float64(x1 - x0)))
	dy := -int(math.Abs(float64(y1 - y0)))
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		it.hplotPoint(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func (it *Interpreter) execHplot(st *HplotStmt, curLine int) error {
	havePrev := st.FromLast
	px, py := it.lastHX, it.lastHY
	for _, pt := range st.Points {
		x, y, err := it.evalCoords(pt.X, pt.Y, curLine, hiresCols, hiresRows)
		if err != nil {
			return err
		}
		if havePrev {
			it.hplotLine(px, py, x, y)
		} else {
			it.hplotPoint(x, y)
		}
		px, py = x, y
		havePrev = true
	}
	it.lastHX, it.lastHY = px, py
	return nil
}

// execDraw validates a DRAW/XDRAW statement and updates the pen position.
// Shape-table vector plotting itself belongs to the host renderer, which
// observes video memory; the interpreter has no shape table storage.
func (it *Interpreter) execDraw(st *DrawStmt, curLine int) error {
	v, err := it.evalExpr(st.Shape, curLine)
	if err != nil {
		return err
	}
	n, err := v.AsNumber()
	if err != nil {
		return (err.(*BasicError)).WithLine(curLine)
	}
	if n < 0 || n > 255 {
		return &BasicError{Code: ErrIllegalQuantity, Line: curLine}
	}
	if st.HasAt {
		x, y, err := it.evalCoords(st.AtX, st.AtY, curLine, hiresCols, hiresRows)
		if err != nil {
			return err
		}
		it.lastHX, it.lastHY = x, y
	}
	return nil
}

func (it *Interpreter) evalCoords(xe, ye Expr, curLine, maxX, maxY int) (int, int, error) {
	xv, err := it.evalExpr(xe, curLine)
	if err != nil {
		return 0, 0, err
	}
	x, err := xv.AsNumber()
	if err != nil {
		return 0, 0, (err.(*BasicError)).WithLine(curLine)
	}
	yv, err := it.evalExpr(ye, curLine)
	if err != nil {
		return 0, 0, err
	}
	y, err := yv.AsNumber()
	if err != nil {
		return 0, 0, (err.(*BasicError)).WithLine(curLine)
	}
	xi, yi := int(x), int(y)
	if xi < 0 || xi >= maxX || yi < 0 || yi >= maxY {
		return 0, 0, &BasicError{Code: ErrIllegalQuantity, Line: curLine}
	}
	return xi, yi, nil
}
