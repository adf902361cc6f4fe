package ppu

// spriteEntry is one OAM entry selected for the current scanline.
type spriteEntry struct {
	y, x, tile, flags byte
	oamIndex          int
	fetched           bool
}

func (s spriteEntry) xFlip() bool  { return s.flags&0x20 != 0 }
func (s spriteEntry) yFlip() bool  { return s.flags&0x40 != 0 }
func (s spriteEntry) bgPriority() bool { return s.flags&0x80 != 0 }
func (s spriteEntry) palette() byte {
	if s.flags&0x10 != 0 {
		return 1
	}
	return 0
}

// fetchState holds everything the Drawing-mode pixel pipeline needs across
// a scanline: a background/window row (color indices 0-3) and a sprite
// overlay row of the same width, both computed for the whole line when
// Drawing begins, then drained one pixel per dot.
type fetchState struct {
	bg  []byte
	spr [160]spritePixel

	penaltyDots int
}

type spritePixel struct {
	colorIdx byte
	palette  byte
	priority bool
	present  bool
}

// emittedX (declared on PPU, used by ppu.go) tracks how many pixels of the
// current line have been written to the framebuffer.
func (p *PPU) resetLineState() {
	p.fetch = fetchState{}
	p.emittedX = 0
	p.windowActiveLine = false
}

// scanOAM walks the 40 OAM entries and keeps up to 10 intersecting the
// current line, in OAM order.
func (p *PPU) scanOAM(oam []byte) {
	p.lineSprites = p.lineSprites[:0]
	if !p.spritesEnabled() {
		return
	}
	h := p.spriteHeight()
	ly := int(p.LY)
	for i := 0; i < 40 && len(p.lineSprites) < 10; i++ {
		base := i * 4
		y := oam[base]
		top := int(y) - 16
		if ly < top || ly >= top+h {
			continue
		}
		p.lineSprites = append(p.lineSprites, spriteEntry{
			y: y, x: oam[base+1], tile: oam[base+2], flags: oam[base+3], oamIndex: i,
		})
	}
}

func (p *PPU) beginDrawing(vram, oam []byte) {
	p.mode = ModeDrawing
	p.resetLineState()
	p.fetchLine(vram, oam)
	// 12-dot base cost of the line's first tile fetches, plus the SCX%8 discard.
	p.fetch.penaltyDots = 12 + int(p.SCX%8)
	if p.windowTriggersThisLine() {
		p.fetch.penaltyDots += 6
	}
	for i := range p.lineSprites {
		if p.lineSprites[i].oamIndex >= 0 {
			p.fetch.penaltyDots += 6
		}
	}
}

func (p *PPU) windowTriggersThisLine() bool {
	return p.windowEnabled() && p.LY >= p.WY && p.WX <= 166
}

// tickDrawing is called once per T-cycle while in Drawing mode: it spends
// the line's precomputed penalty dots idle, then emits exactly one
// finished pixel per remaining dot.
func (p *PPU) tickDrawing(vram, oam []byte) {
	if p.fetch.penaltyDots > 0 {
		p.fetch.penaltyDots--
		return
	}
	if p.emittedX >= ScreenWidth {
		return
	}
	x := p.emittedX
	bgColorIdx := p.fetch.bg[x]
	bgMapped := applyPalette(p.BGP, bgColorIdx)

	out := bgMapped
	if sp := p.fetch.spr[x]; sp.present && sp.colorIdx != 0 && (!sp.priority || bgColorIdx == 0) {
		pal := p.OBP0
		if sp.palette == 1 {
			pal = p.OBP1
		}
		out = applyPalette(pal, sp.colorIdx)
	}

	p.back.Set(x, int(p.LY), p.colorForIndex(out))
	p.emittedX++
}

// fetchLine precomputes the background/window color-index row and the
// sprite overlay row for the current LY, pixel by pixel, ahead of the dot
// counter rather than interleaved with it (see DESIGN.md).
func (p *PPU) fetchLine(vram, oam []byte) {
	p.fetch.bg = make([]byte, ScreenWidth)
	if !p.bgWindowEnabled() {
		return
	}

	windowStartX := -1
	if p.windowTriggersThisLine() {
		windowStartX = int(p.WX) - 7
		if windowStartX < 0 {
			windowStartX = 0
		}
	}

	for x := 0; x < ScreenWidth; x++ {
		useWindow := windowStartX >= 0 && x >= windowStartX
		var tileMapHi bool
		var px, py int
		if useWindow {
			p.windowActiveLine = true
			tileMapHi = p.windowTileMapHi()
			px = x - windowStartX
			py = p.windowLineCounter
		} else {
			tileMapHi = p.bgTileMapHi()
			px = (int(p.SCX) + x) & 0xFF
			py = (int(p.SCY) + int(p.LY)) & 0xFF
		}
		p.fetch.bg[x] = p.tilePixel(vram, tileMapHi, px, py)
	}

	if !p.spritesEnabled() {
		return
	}
	h := p.spriteHeight()
	for i := 0; i < len(p.lineSprites); i++ {
		s := p.lineSprites[i]
		spriteX := int(s.x) - 8
		row := int(p.LY) - (int(s.y) - 16)
		if s.yFlip() {
			row = h - 1 - row
		}
		tile := s.tile
		if h == 16 {
			tile &^= 0x01
			if row >= 8 {
				tile |= 0x01
				row -= 8
			}
		}
		lo, hi := tileRowBytes(vram, tile, row)
		for col := 0; col < 8; col++ {
			sx := spriteX + col
			if sx < 0 || sx >= ScreenWidth {
				continue
			}
			bit := col
			if !s.xFlip() {
				bit = 7 - col
			}
			colorIdx := (((hi >> uint(bit)) & 1) << 1) | ((lo >> uint(bit)) & 1)
			if colorIdx == 0 {
				continue
			}
			if p.fetch.spr[sx].present {
				continue // a sprite earlier in OAM order already placed a pixel here
			}
			p.fetch.spr[sx] = spritePixel{colorIdx: colorIdx, palette: s.palette(), priority: s.bgPriority(), present: true}
		}
	}
}

func tileRowBytes(vram []byte, tile byte, row int) (lo, hi byte) {
	addr := int(tile)*16 + row*2
	if addr < 0 || addr+1 >= len(vram) {
		return 0, 0
	}
	return vram[addr], vram[addr+1]
}

// tilePixel looks up the 2-bit color index for the background/window tile
// covering pixel (px, py) within the 256x256 tile map selected by
// tileMapHi, using LCDC's tile-data-area bit for addressing mode.
func (p *PPU) tilePixel(vram []byte, tileMapHi bool, px, py int) byte {
	mapBase := 0x1800
	if tileMapHi {
		mapBase = 0x1C00
	}
	tileCol := px / 8
	tileRow := py / 8
	mapIdx := mapBase + tileRow*32 + tileCol
	if mapIdx < 0 || mapIdx >= len(vram) {
		return 0
	}
	tileID := vram[mapIdx]

	var tileAddr int
	if p.bgWindowDataLo() {
		tileAddr = int(tileID) * 16
	} else {
		tileAddr = 0x1000 + int(int8(tileID))*16
	}
	row := py % 8
	addr := tileAddr + row*2
	if addr < 0 || addr+1 >= len(vram) {
		return 0
	}
	lo := vram[addr]
	hi := vram[addr+1]
	bit := 7 - (px % 8)
	return (((hi >> uint(bit)) & 1) << 1) | ((lo >> uint(bit)) & 1)
}
