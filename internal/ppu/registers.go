package ppu

import "gbcore/internal/bits"

// Mode is one of the four PPU scan modes.
type Mode byte

const (
	ModeHBlank Mode = iota
	ModeVBlank
	ModeOAMScan
	ModeDrawing
)

const (
	ScreenWidth  = 160
	ScreenHeight = 144
	dotsPerLine  = 456
	linesPerFrame = 154
	oamScanDots  = 80
)

func (p *PPU) lcdEnabled() bool       { return bits.Test(p.LCDC, 7) }
func (p *PPU) windowTileMapHi() bool  { return bits.Test(p.LCDC, 6) }
func (p *PPU) windowEnabled() bool    { return bits.Test(p.LCDC, 5) }
func (p *PPU) bgWindowDataLo() bool   { return bits.Test(p.LCDC, 4) }
func (p *PPU) bgTileMapHi() bool      { return bits.Test(p.LCDC, 3) }
func (p *PPU) tallSprites() bool      { return bits.Test(p.LCDC, 2) }
func (p *PPU) spritesEnabled() bool   { return bits.Test(p.LCDC, 1) }
func (p *PPU) bgWindowEnabled() bool  { return bits.Test(p.LCDC, 0) }

func (p *PPU) spriteHeight() int {
	if p.tallSprites() {
		return 16
	}
	return 8
}

// ReadSTAT composes the STAT register: top bit always 1, mode in bits 0-1,
// LYC==LY in bit 2, and the raw interrupt-enable bits the host wrote.
func (p *PPU) ReadSTAT() byte {
	v := p.statBits | 0x80 | byte(p.mode)
	if p.LY == p.LYC {
		v = bits.Set(v, 2)
	}
	return v
}

// WriteSTAT updates only the writable interrupt-enable bits (3-6); mode and
// coincidence are read-only/computed.
func (p *PPU) WriteSTAT(v byte) {
	p.statBits = v & 0x78
}

func (p *PPU) statLYCIntEnabled() bool   { return bits.Test(p.statBits, 6) }
func (p *PPU) statOAMIntEnabled() bool   { return bits.Test(p.statBits, 5) }
func (p *PPU) statVBlankIntEnabled() bool { return bits.Test(p.statBits, 4) }
func (p *PPU) statHBlankIntEnabled() bool { return bits.Test(p.statBits, 3) }
