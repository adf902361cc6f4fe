package cartridge

// mbc2 is grounded on original_source's dev/cart/mbc/mbc2.rs: a 512x4-bit
// embedded RAM (no external RAM banks) and a control split on address bit 8.
type mbc2 struct {
	rom [][]byte
	ram [512]byte

	ramEnabled bool
	romBankSel byte
}

func newMBC2(rom []byte) *mbc2 {
	return &mbc2{rom: splitBanks(rom, 0x4000), romBankSel: 1}
}

func (m *mbc2) maskedRomBankSel() byte {
	sel := m.romBankSel & 0x0F
	if sel == 0 {
		sel = 1
	}
	n := len(m.rom)
	switch {
	case n <= 2:
		return sel & 0x01
	case n <= 4:
		return sel & 0x03
	case n <= 8:
		return sel & 0x07
	default:
		return sel & 0x0F
	}
}

func (m *mbc2) ReadROM(addr uint16) byte {
	if addr < 0x4000 {
		return m.rom[0][addr]
	}
	bank := int(m.maskedRomBankSel())
	if bank >= len(m.rom) {
		bank %= len(m.rom)
	}
	return m.rom[bank][addr-0x4000]
}

func (m *mbc2) WriteROM(addr uint16, v byte) {
	if addr >= 0x4000 {
		return
	}
	if addr&0x100 != 0 {
		m.romBankSel = v & 0x0F
	} else {
		m.ramEnabled = v&0x0F == 0x0A
	}
}

func (m *mbc2) ReadRAM(addr uint16) byte {
	if !m.ramEnabled {
		return 0xFF
	}
	idx := int(addr-0xA000) % 512
	return m.ram[idx] | 0xF0
}

func (m *mbc2) WriteRAM(addr uint16, v byte) {
	if !m.ramEnabled {
		return
	}
	idx := int(addr-0xA000) % 512
	m.ram[idx] = v & 0x0F
}

func (m *mbc2) Tick(tCycles int) {}
