package cartridge

import "time"

// Cartridge couples a validated Header with its constructed MBC. It is the
// sole thing the bus plugs in and out.
type Cartridge struct {
	Header Header
	mbc    MBC
}

// New validates rom's header and constructs the matching MBC family. now is
// the wall-clock time used to seed an MBC3 cartridge's RTC, if present.
func New(rom []byte, now time.Time) (*Cartridge, error) {
	h, err := Parse(rom)
	if err != nil {
		return nil, err
	}

	var mbc MBC
	switch h.Kind {
	case KindNone:
		mbc = newNoMBC(rom, h.RAMSize)
	case KindMBC1:
		mbc = newMBC1(rom, h.RAMSize)
	case KindMBC2:
		mbc = newMBC2(rom)
	case KindMBC3:
		mbc = newMBC3(rom, h.RAMSize, h.HasRTC, now)
	}

	return &Cartridge{Header: h, mbc: mbc}, nil
}

func (c *Cartridge) ReadROM(addr uint16) byte      { return c.mbc.ReadROM(addr) }
func (c *Cartridge) WriteROM(addr uint16, v byte)  { c.mbc.WriteROM(addr, v) }
func (c *Cartridge) ReadRAM(addr uint16) byte      { return c.mbc.ReadRAM(addr) }
func (c *Cartridge) WriteRAM(addr uint16, v byte)  { c.mbc.WriteRAM(addr, v) }
func (c *Cartridge) Tick(tCycles int)              { c.mbc.Tick(tCycles) }
