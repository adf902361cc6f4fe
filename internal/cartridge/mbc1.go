package cartridge

// mode distinguishes MBC1's two banking modes.
type mbc1Mode int

const (
	mbc1Simple mbc1Mode = iota
	mbc1Advanced
)

// mbc1 is grounded on original_source's dev/cart/mbc/mbc1.rs.
type mbc1 struct {
	rom [][]byte
	ram [][]byte

	romBankSel byte
	ramBankSel byte
	ramEnabled bool
	mode       mbc1Mode
}

func newMBC1(rom []byte, ramSize int) *mbc1 {
	return &mbc1{
		rom:        splitBanks(rom, 0x4000),
		ram:        splitRAMBanks(ramSize, 0x2000),
		romBankSel: 1,
	}
}

func (m *mbc1) largeROM() bool { return len(m.rom) > 32 }
func (m *mbc1) largeRAM() bool { return len(m.ram) > 1 }

func (m *mbc1) maskedRomBankSel() byte {
	sel := m.romBankSel
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
	case n <= 16:
		return sel & 0x0F
	default:
		return sel & 0x1F
	}
}

func (m *mbc1) rom0Bank() int {
	if m.mode == mbc1Advanced && m.largeROM() {
		return (int(m.ramBankSel) << 5) % len(m.rom)
	}
	return 0
}

func (m *mbc1) rom1Bank() int {
	bank := int(m.maskedRomBankSel())
	if m.largeROM() {
		bank |= int(m.ramBankSel) << 5
	}
	if bank >= len(m.rom) {
		bank %= len(m.rom)
	}
	return bank
}

func (m *mbc1) ReadROM(addr uint16) byte {
	if addr < 0x4000 {
		return m.rom[m.rom0Bank()][addr]
	}
	return m.rom[m.rom1Bank()][addr-0x4000]
}

func (m *mbc1) WriteROM(addr uint16, v byte) {
	switch {
	case addr < 0x2000:
		m.ramEnabled = v&0x0F == 0x0A
	case addr < 0x4000:
		m.romBankSel = v & 0x1F
	case addr < 0x6000:
		m.ramBankSel = v & 0x03
	default:
		if m.largeROM() || m.largeRAM() {
			if v&0x01 != 0 {
				m.mode = mbc1Advanced
			} else {
				m.mode = mbc1Simple
			}
		}
	}
}

func (m *mbc1) ramBank() int {
	if m.mode == mbc1Advanced && m.largeRAM() {
		return int(m.ramBankSel) % len(m.ram)
	}
	return 0
}

func (m *mbc1) ReadRAM(addr uint16) byte {
	if !m.ramEnabled || len(m.ram) == 0 {
		return 0xFF
	}
	return m.ram[m.ramBank()][addr-0xA000]
}

func (m *mbc1) WriteRAM(addr uint16, v byte) {
	if !m.ramEnabled || len(m.ram) == 0 {
		return
	}
	m.ram[m.ramBank()][addr-0xA000] = v
}

func (m *mbc1) Tick(tCycles int) {}
