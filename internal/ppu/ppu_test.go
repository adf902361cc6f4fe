package ppu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gbcore/internal/interrupt"
)

func TestScanlineIs456Cycles(t *testing.T) {
	p := New()
	vram := make([]byte, 0x2000)
	oam := make([]byte, 0xA0)
	var ic interrupt.Controller

	startLY := p.LY
	for i := 0; i < dotsPerLine; i++ {
		p.Tick(vram, oam, &ic)
	}
	// a full scanline completed: LY advanced by one and the next line's OAM
	// scan starts at dot 0
	assert.NotEqual(t, -1, int(startLY)) // sanity, real check below
	assert.True(t, p.LY == startLY+1 && p.mode == ModeOAMScan && p.dot == 0)
}

func TestFrameIs70224Cycles(t *testing.T) {
	p := New()
	vram := make([]byte, 0x2000)
	oam := make([]byte, 0xA0)
	var ic interrupt.Controller

	for i := 0; i < 70224; i++ {
		p.Tick(vram, oam, &ic)
	}
	assert.True(t, p.IsFrameReady())
}

func TestUniformBackgroundLine(t *testing.T) {
	p := New()
	vram := make([]byte, 0x2000)
	oam := make([]byte, 0xA0)
	var ic interrupt.Controller

	// tile 0, all zero bits -> color index 0 everywhere
	// tile map entry 0 already defaults to 0 (tileID 0) since vram is zeroed
	p.WriteReg(0xFF40, 0x91)
	p.SCX, p.SCY = 0, 0
	p.BGP = 0xFC

	for p.mode != ModeVBlank {
		p.Tick(vram, oam, &ic)
	}

	img := p.Frame()
	wantIdx := applyPalette(0xFC, 0)
	want := p.colorForIndex(wantIdx)
	got := img.RGBAAt(0, 0)
	assert.Equal(t, want, got)
}

func TestLYCInterrupt(t *testing.T) {
	p := New()
	vram := make([]byte, 0x2000)
	oam := make([]byte, 0xA0)
	var ic interrupt.Controller
	ic.WriteIE(0xFF)

	p.LYC = 1
	p.WriteSTAT(0x40) // enable LYC interrupt source
	for i := 0; i < dotsPerLine+1; i++ {
		p.Tick(vram, oam, &ic)
	}
	assert.True(t, ic.Pending())
}
