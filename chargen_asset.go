// chargen_asset.go - decode a PNG character-ROM sheet into 8x8 glyph bytes
//
// A character ROM is easiest to author and version as a PNG glyph sheet
// (16x16 cells of 8x8 monochrome glyphs, two sheets side by side for the
// primary and alternate sets) rather than a raw binary blob. This follows
// the teacher's tools/font2rgba.go pipeline of decoding a PNG font sheet
// and resampling it into the engine's native pixel format, substituting
// golang.org/x/image/draw for image/draw so a source sheet authored at a
// different resolution than 8x8 per cell still converts cleanly.
package main

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"

	"golang.org/x/image/draw"
)

const (
	glyphCellPx  = 8
	sheetCols    = 16
	sheetRows    = 16
)

// DecodeCharacterROMSheet decodes a PNG glyph sheet and resamples it (via
// golang.org/x/image/draw) to exactly glyphCellPx per cell before packing
// each glyph into one scanline-major byte per row, bit 7 = leftmost pixel,
// matching the on/off convention GetCharacterScanlineWithEffects expects.
// The returned slice is always charROMSize bytes for a full two-set sheet.
func DecodeCharacterROMSheet(pngData []byte) ([]byte, error) {
	img, err := png.Decode(bytes.NewReader(pngData))
	if err != nil {
		return nil, fmt.Errorf("chargen asset: decode PNG: %w", err)
	}

	bounds := img.Bounds()
	wantW := sheetCols * glyphCellPx * 2 // two sets side by side
	wantH := sheetRows * glyphCellPx
	resampled := img
	if bounds.Dx() != wantW || bounds.Dy() != wantH {
		dst := image.NewGray(image.Rect(0, 0, wantW, wantH))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
		resampled = dst
	}

	out := make([]byte, charROMSize)
	for set := 0; set < 2; set++ {
		for glyph := 0; glyph < glyphsPerSet; glyph++ {
			col := glyph % sheetCols
			row := glyph / sheetCols
			originX := set*sheetCols*glyphCellPx + col*glyphCellPx
			originY := row * glyphCellPx
			for y := 0; y < glyphCellPx; y++ {
				var rowByte byte
				for x := 0; x < glyphCellPx; x++ {
					r, g, b, _ := resampled.At(originX+x, originY+y).RGBA()
					lum := color.GrayModel.Convert(color.RGBA64{R: uint16(r), G: uint16(g), B: uint16(b), A: 0xFFFF}).(color.Gray).Y
					if lum > 0x7F {
						rowByte |= 1 << (7 - uint(x))
					}
				}
				out[set*glyphsPerSet*bytesPerGlyph+glyph*bytesPerGlyph+y] = rowByte
			}
		}
	}
	return out, nil
}
