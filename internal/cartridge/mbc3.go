package cartridge

import "time"

// mbc3 is grounded on original_source's dev/cart/mbc/mbc3.rs.
type mbc3 struct {
	rom [][]byte
	ram [][]byte
	rtc *rtc

	romBankSel byte
	ramBankSel byte
	ramEnabled bool

	now time.Time
}

func newMBC3(rom []byte, ramSize int, hasRTC bool, now time.Time) *mbc3 {
	m := &mbc3{
		rom:        splitBanks(rom, 0x4000),
		ram:        splitRAMBanks(ramSize, 0x2000),
		romBankSel: 1,
		now:        now,
	}
	if hasRTC {
		m.rtc = newRTC(now)
	}
	return m
}

func (m *mbc3) maskedRomBankSel() byte {
	sel := m.romBankSel & 0x7F
	if sel == 0 {
		sel = 1
	}
	return sel
}

func (m *mbc3) ReadROM(addr uint16) byte {
	if addr < 0x4000 {
		return m.rom[0][addr]
	}
	bank := int(m.maskedRomBankSel())
	if bank >= len(m.rom) {
		bank %= len(m.rom)
	}
	return m.rom[bank][addr-0x4000]
}

func (m *mbc3) WriteROM(addr uint16, v byte) {
	switch {
	case addr < 0x2000:
		m.ramEnabled = v&0x0F == 0x0A
	case addr < 0x4000:
		m.romBankSel = v & 0x7F
	case addr < 0x6000:
		m.ramBankSel = v
	default:
		if m.rtc != nil {
			m.rtc.SetLatch(v, m.now)
		}
	}
}

func (m *mbc3) selectsRTC() bool {
	return m.rtc != nil && m.ramBankSel >= 0x08 && m.ramBankSel <= 0x0C
}

func (m *mbc3) ReadRAM(addr uint16) byte {
	if !m.ramEnabled {
		return 0xFF
	}
	if m.selectsRTC() {
		return m.rtc.Read(m.ramBankSel)
	}
	if len(m.ram) == 0 {
		return 0xFF
	}
	bank := int(m.ramBankSel) % len(m.ram)
	return m.ram[bank][addr-0xA000]
}

func (m *mbc3) WriteRAM(addr uint16, v byte) {
	if !m.ramEnabled {
		return
	}
	if m.selectsRTC() {
		m.rtc.Write(m.ramBankSel, v, m.now)
		return
	}
	if len(m.ram) == 0 {
		return
	}
	bank := int(m.ramBankSel) % len(m.ram)
	m.ram[bank][addr-0xA000] = v
}

// Tick advances wall-clock time used by the RTC by the equivalent real
// duration of tCycles T-cycles at the standard 4.194304 MHz clock.
func (m *mbc3) Tick(tCycles int) {
	if m.rtc == nil {
		return
	}
	m.now = m.now.Add(time.Duration(tCycles) * time.Second / 4194304)
	m.rtc.Advance(m.now)
}
