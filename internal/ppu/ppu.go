// Package ppu implements the pixel-FIFO picture processing unit: OAM scan,
// a tile fetcher feeding background/window and sprite FIFOs, the mode
// state machine (OAMScan/Drawing/HBlank/VBlank), and BGP/OBP0/OBP1 palette
// mapping into an RGBA framebuffer.
//
// The scanline/mode timing and fetcher shape are grounded on the system's
// documented dot-exact behavior (SPEC_FULL.md §4.4); the framebuffer type
// (image.RGBA) and Tick/IsFrameReady surface are grounded on the teacher's
// internal/ppu/ppu.go, whose simplified fixed-length mode-3 rendering is
// NOT reused — see DESIGN.md.
package ppu

import (
	"image"
	"image/color"

	"gbcore/internal/interrupt"
)

// PPU owns only its registers and pipeline state; VRAM and OAM are owned by
// the bus and passed in for the duration of each Tick call.
type PPU struct {
	LCDC     byte
	statBits byte
	SCY, SCX byte
	LY, LYC  byte
	WX, WY   byte
	BGP, OBP0, OBP1 byte

	mode Mode
	dot  int

	windowLineCounter int
	windowActiveLine  bool

	lineSprites []spriteEntry
	emittedX    int

	front, back *image.RGBA
	frameReady  bool

	fetch fetchState
}

// New returns a PPU in its documented post-boot-ROM power-on state.
func New() *PPU {
	p := &PPU{
		LCDC:     0x91,
		statBits: 0x00,
		BGP:      0xFC,
		OBP0:     0xFF,
		OBP1:     0xFF,
		mode:     ModeOAMScan,
		front:    image.NewRGBA(image.Rect(0, 0, ScreenWidth, ScreenHeight)),
		back:     image.NewRGBA(image.Rect(0, 0, ScreenWidth, ScreenHeight)),
	}
	return p
}

// Frame returns the most recently completed, stable framebuffer.
func (p *PPU) Frame() *image.RGBA { return p.front }

func (p *PPU) IsFrameReady() bool    { return p.frameReady }
func (p *PPU) ResetFrameReady()      { p.frameReady = false }
func (p *PPU) Mode() Mode            { return p.mode }

// WriteLCDC handles the PPU-disable transition (resets LY/dot/mode), the
// enable transition (scanning restarts with OAM scan of LY 0), as well as
// the ordinary register store.
func (p *PPU) WriteLCDC(v byte) {
	wasEnabled := p.lcdEnabled()
	p.LCDC = v
	if wasEnabled && !p.lcdEnabled() {
		p.mode = ModeHBlank
		p.LY = 0
		p.dot = 0
		p.windowLineCounter = 0
	} else if !wasEnabled && p.lcdEnabled() {
		p.mode = ModeOAMScan
		p.LY = 0
		p.dot = 0
	}
}

// Tick advances the PPU by one T-cycle. vram is the raw 0x8000-0x9FFF
// window (8KiB) and oam the raw 0xFE00-0xFE9F window (160 bytes).
func (p *PPU) Tick(vram, oam []byte, ic *interrupt.Controller) {
	if !p.lcdEnabled() {
		return
	}

	switch p.mode {
	case ModeOAMScan:
		if p.dot == 0 {
			p.scanOAM(oam)
		}
		p.dot++
		if p.dot >= oamScanDots {
			p.beginDrawing(vram, oam)
		}
	case ModeDrawing:
		p.tickDrawing(vram, oam)
		p.dot++
		if p.emittedX >= ScreenWidth {
			p.enterMode(ModeHBlank, ic)
		}
	case ModeHBlank:
		p.dot++
		if p.dot >= dotsPerLine {
			p.advanceLine(ic)
		}
	case ModeVBlank:
		p.dot++
		if p.dot >= dotsPerLine {
			p.advanceLine(ic)
		}
	}
}

func (p *PPU) enterMode(m Mode, ic *interrupt.Controller) {
	p.mode = m
	switch m {
	case ModeHBlank:
		if p.statHBlankIntEnabled() {
			ic.Request(interrupt.LCDStat)
		}
	case ModeOAMScan:
		if p.statOAMIntEnabled() {
			ic.Request(interrupt.LCDStat)
		}
	case ModeVBlank:
		ic.Request(interrupt.VBlank)
		if p.statVBlankIntEnabled() {
			ic.Request(interrupt.LCDStat)
		}
	}
}

func (p *PPU) advanceLine(ic *interrupt.Controller) {
	p.dot = 0
	if p.windowActiveLine {
		p.windowLineCounter++
	}
	p.LY++
	if p.LY >= linesPerFrame {
		p.LY = 0
		p.windowLineCounter = 0
	}
	p.checkLYC(ic)

	switch {
	case p.LY == ScreenHeight:
		p.front, p.back = p.back, p.front
		p.frameReady = true
		p.enterMode(ModeVBlank, ic)
	case p.LY == 0:
		p.enterMode(ModeOAMScan, ic)
	case p.mode == ModeVBlank:
		p.mode = ModeVBlank // remain in vblank, no re-fired mode-entry interrupt
	default:
		p.enterMode(ModeOAMScan, ic)
	}
}

func (p *PPU) checkLYC(ic *interrupt.Controller) {
	if p.LY == p.LYC && p.statLYCIntEnabled() {
		ic.Request(interrupt.LCDStat)
	}
}

func (p *PPU) colorForIndex(idx byte) color.RGBA {
	switch idx {
	case 0:
		return color.RGBA{0xE0, 0xF8, 0xD0, 0xFF}
	case 1:
		return color.RGBA{0x88, 0xC0, 0x70, 0xFF}
	case 2:
		return color.RGBA{0x34, 0x68, 0x56, 0xFF}
	default:
		return color.RGBA{0x08, 0x18, 0x20, 0xFF}
	}
}

func applyPalette(palette byte, colorIdx byte) byte {
	return (palette >> (colorIdx * 2)) & 0x03
}
