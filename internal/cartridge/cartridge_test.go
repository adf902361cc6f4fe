package cartridge

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func buildROM(banks int, cartType, romSizeCode, ramSizeCode byte) []byte {
	rom := make([]byte, banks*0x4000)
	copy(rom[0x0104:0x0104+48], nintendoLogo[:])
	copy(rom[0x0134:], []byte("TESTROM\x00"))
	rom[0x0147] = cartType
	rom[0x0148] = romSizeCode
	rom[0x0149] = ramSizeCode

	sum := byte(0)
	for i := 0x0134; i <= 0x014C; i++ {
		sum = sum - rom[i] - 1
	}
	rom[0x014D] = sum
	return rom
}

func TestParseNoMBC(t *testing.T) {
	rom := buildROM(2, 0x00, 0x00, 0x00)
	h, err := Parse(rom)
	assert.NoError(t, err)
	assert.Equal(t, KindNone, h.Kind)
	assert.Equal(t, "TESTROM", h.Title)
	assert.Equal(t, 2, h.ROMBanks)
	assert.True(t, h.ChecksumOK)
}

func TestParseBadLogoFails(t *testing.T) {
	rom := buildROM(2, 0x00, 0x00, 0x00)
	rom[0x0104] = 0x00
	_, err := Parse(rom)
	assert.ErrorIs(t, err, ErrInvalidLogo)
}

func TestParseBadChecksumFails(t *testing.T) {
	rom := buildROM(2, 0x00, 0x00, 0x00)
	rom[0x014D] ^= 0xFF
	_, err := Parse(rom)
	assert.ErrorIs(t, err, ErrInvalidChecksum)
}

func TestParseWrongSizeFails(t *testing.T) {
	rom := buildROM(2, 0x00, 0x01, 0x00) // claims 4 banks, image has 2
	_, err := Parse(rom)
	assert.ErrorIs(t, err, ErrInvalidROMSize)
}

func TestMBC1RomBankSwitching(t *testing.T) {
	rom := buildROM(4, 0x01, 0x01, 0x00)
	rom[0x4000] = 0xAB // bank 1, offset 0
	rom[0x8000] = 0xCD // bank 2, offset 0
	c, err := New(rom, time.Now())
	assert.NoError(t, err)

	c.WriteROM(0x2000, 0x01)
	assert.Equal(t, byte(0xAB), c.ReadROM(0x4000))

	c.WriteROM(0x2000, 0x02)
	assert.Equal(t, byte(0xCD), c.ReadROM(0x4000))

	// writing 0 is forced to 1
	c.WriteROM(0x2000, 0x00)
	assert.Equal(t, byte(0xAB), c.ReadROM(0x4000))
}

func TestMBC1RAMEnable(t *testing.T) {
	rom := buildROM(2, 0x03, 0x00, 0x02)
	c, _ := New(rom, time.Now())
	assert.Equal(t, byte(0xFF), c.ReadRAM(0xA000))
	c.WriteROM(0x0000, 0x0A)
	c.WriteRAM(0xA000, 0x42)
	assert.Equal(t, byte(0x42), c.ReadRAM(0xA000))
}

func TestMBC2EmbeddedRAM(t *testing.T) {
	rom := buildROM(2, 0x05, 0x00, 0x00)
	c, _ := New(rom, time.Now())
	c.WriteROM(0x0000, 0x0A) // enable (bit8=0)
	c.WriteRAM(0xA000, 0x3F)
	assert.Equal(t, byte(0xFF), c.ReadRAM(0xA000))
	c.WriteRAM(0xA000, 0x3A)
	assert.Equal(t, byte(0xFA), c.ReadRAM(0xA000))
	// mirrored every 0x200
	assert.Equal(t, byte(0xFA), c.ReadRAM(0xA200))
}

func TestMBC3RTCLatch(t *testing.T) {
	rom := buildROM(2, 0x0F, 0x00, 0x00)
	base := time.Now()
	c, err := New(rom, base)
	assert.NoError(t, err)

	c.WriteROM(0x0000, 0x0A) // enable RTC/RAM
	future := base.Add(90 * time.Second)
	// fake ticking: advance wall clock via Tick won't use real time.Now in
	// the core, so directly exercise the latch with time passed through
	// WriteROM's captured `now` by ticking enough cycles to move it.
	cyclesFor90s := int(90 * 4194304)
	c.Tick(cyclesFor90s)
	_ = future

	c.WriteROM(0x6000, 0x00)
	c.WriteROM(0x6000, 0x01)

	c.WriteROM(0x4000, 0x08) // select seconds register
	assert.Equal(t, byte(30), c.ReadRAM(0xA000))
	c.WriteROM(0x4000, 0x09) // minutes
	assert.Equal(t, byte(1), c.ReadRAM(0xA000))
}
