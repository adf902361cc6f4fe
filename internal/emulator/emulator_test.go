package emulator

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gbcore/internal/cartridge"
)

var nintendoLogo = [48]byte{
	0xCE, 0xED, 0x66, 0x66, 0xCC, 0x0D, 0x00, 0x0B, 0x03, 0x73, 0x00, 0x83,
	0x00, 0x0C, 0x00, 0x0D, 0x00, 0x08, 0x11, 0x1F, 0x88, 0x89, 0x00, 0x0E,
	0xDC, 0xCC, 0x6E, 0xE6, 0xDD, 0xDD, 0xD9, 0x99, 0xBB, 0xBB, 0x67, 0x63,
	0x6E, 0x0E, 0xEC, 0xCC, 0xDD, 0xDC, 0x99, 0x9F, 0xBB, 0xB9, 0x33, 0x3E,
}

func buildROM(banks int, code []byte) []byte {
	rom := make([]byte, banks*0x4000)
	copy(rom[0x0104:0x0104+48], nintendoLogo[:])
	copy(rom[0x0134:], []byte("EMUTEST\x00"))
	rom[0x0147] = 0x00 // ROM only
	rom[0x0148] = 0x00
	rom[0x0149] = 0x00
	copy(rom[0x0150:], code)

	sum := byte(0)
	for i := 0x0134; i <= 0x014C; i++ {
		sum = sum - rom[i] - 1
	}
	rom[0x014D] = sum
	return rom
}

func TestEmulatorRunsLoadedCartridge(t *testing.T) {
	// LD A,0x42 ; LD B,0x08 ; ADD A,B ; infinite JR loop at the end
	code := []byte{0x3E, 0x42, 0x06, 0x08, 0x80, 0x18, 0xFE}
	rom := buildROM(2, code)
	cart, err := cartridge.New(rom, time.Now())
	require.NoError(t, err)

	e := New()
	e.LoadCartridge(cart)
	e.CPU.Regs.PC = 0x0150

	require.NoError(t, e.Step()) // LD A,0x42
	require.NoError(t, e.Step()) // LD B,0x08
	require.NoError(t, e.Step()) // ADD A,B
	assert.Equal(t, byte(0x4A), e.CPU.Regs.A)
}

func TestEmulatorRunFramesStopsAtCount(t *testing.T) {
	code := []byte{0x18, 0xFE} // JR -2: tight infinite loop
	rom := buildROM(2, code)
	cart, err := cartridge.New(rom, time.Now())
	require.NoError(t, err)

	e := New()
	e.LoadCartridge(cart)
	e.CPU.Regs.PC = 0x0150
	e.Bus.PPU.WriteLCDC(0x80) // enable LCD so frames actually advance

	err = e.RunFrames(context.Background(), 3)
	require.NoError(t, err)
	assert.False(t, e.Bus.PPU.IsFrameReady(), "flag must be cleared after each frame it counts")
}

func TestEmulatorRunStopsOnContextCancel(t *testing.T) {
	code := []byte{0x18, 0xFE}
	rom := buildROM(2, code)
	cart, err := cartridge.New(rom, time.Now())
	require.NoError(t, err)

	e := New()
	e.LoadCartridge(cart)
	e.CPU.Regs.PC = 0x0150

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = e.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
