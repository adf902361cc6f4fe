// Package bus implements the DMG system bus: the single owner of every
// memory and memory-mapped device, and the CPU's only window onto them.
//
// Rewritten in place from the teacher's internal/bus/bus.go: the
// address-range switch and the Tick(cycles)-fans-out-to-devices shape are
// kept; the GBA address map and component set are replaced by the DMG one
// (address constants and the ascending interrupt-priority ordering are
// also grounded on original_source's bus/mod.rs).
package bus

import (
	"errors"

	"gbcore/internal/apuregs"
	"gbcore/internal/cartridge"
	"gbcore/internal/dbg"
	"gbcore/internal/dma"
	"gbcore/internal/interrupt"
	"gbcore/internal/joypad"
	"gbcore/internal/memory"
	"gbcore/internal/ppu"
	"gbcore/internal/serial"
	"gbcore/internal/timer"
)

// ErrNoCartridge names the no-cartridge condition. No bus access returns
// it: with no cartridge plugged in, ROM and cartridge-RAM reads return 0xFF
// and writes are dropped.
var ErrNoCartridge = errors.New("bus: no cartridge loaded")

const (
	vramSize = 0x2000
	oamSize  = 0xA0
)

// Bus wires the CPU to VRAM, OAM, WRAM, HRAM, the cartridge slot, and every
// memory-mapped device. No device holds a reference back to the Bus or to
// any sibling device — the Bus mediates all cross-device effects itself
// (e.g. DMA byte copies, interrupt requests from PPU/Timer/Serial/Joypad).
type Bus struct {
	cart *cartridge.Cartridge

	vram [vramSize]byte
	oam  [oamSize]byte
	wram *memory.RAM
	hram *memory.RAM

	PPU       *ppu.PPU
	Timer     *timer.Timer
	Serial    *serial.Serial
	DMA       *dma.Engine
	Joypad    *joypad.Joypad
	Interrupt *interrupt.Controller
	APURegs   *apuregs.Registers
}

// New returns a Bus with every onboard device initialized and no cartridge
// plugged in.
func New() *Bus {
	return &Bus{
		wram:      memory.NewWRAM(),
		hram:      memory.NewHRAM(),
		PPU:       ppu.New(),
		Timer:     timer.New(),
		Serial:    serial.New(),
		DMA:       dma.New(),
		Joypad:    joypad.New(),
		Interrupt: &interrupt.Controller{},
		APURegs:   apuregs.New(),
	}
}

// Plug installs a cartridge, replacing any previously installed one.
func (b *Bus) Plug(cart *cartridge.Cartridge) { b.cart = cart }

// Eject removes the installed cartridge, if any.
func (b *Bus) Eject() { b.cart = nil }

// HasCartridge reports whether a cartridge is currently plugged in.
func (b *Bus) HasCartridge() bool { return b.cart != nil }

// Read8 reads one byte from the full 16-bit address space.
func (b *Bus) Read8(addr uint16) byte {
	if b.DMA.Active() && !isHRAM(addr) {
		return 0xFF
	}
	switch {
	case addr <= 0x7FFF: // cartridge ROM
		if b.cart == nil {
			dbg.Warnf("bus: ROM read with no cartridge at 0x%04X", addr)
			return 0xFF
		}
		return b.cart.ReadROM(addr)

	case addr <= 0x9FFF: // VRAM
		if !b.PPU.VRAMReadable() {
			return 0xFF
		}
		return b.vram[addr-0x8000]

	case addr <= 0xBFFF: // cartridge RAM
		if b.cart == nil {
			return 0xFF
		}
		return b.cart.ReadRAM(addr)

	case addr <= 0xDFFF: // WRAM
		return b.wram.Read(addr - 0xC000)

	case addr <= 0xFDFF: // echo RAM, mirrors 0xC000-0xDDFF
		return b.wram.Read(addr - 0xE000)

	case addr <= 0xFE9F: // OAM
		if !b.oamCPUAccessible() {
			return 0xFF
		}
		return b.oam[addr-0xFE00]

	case addr <= 0xFEFF: // prohibited region
		return 0xFF

	case addr <= 0xFF7F: // I/O registers
		return b.readIO(addr)

	case addr <= 0xFFFE: // HRAM
		return b.hram.Read(addr - 0xFF80)

	default: // 0xFFFF: IE
		return b.Interrupt.ReadIE()
	}
}

// Write8 writes one byte to the full 16-bit address space.
func (b *Bus) Write8(addr uint16, v byte) {
	if b.DMA.Active() && !isHRAM(addr) {
		return
	}
	switch {
	case addr <= 0x7FFF:
		if b.cart == nil {
			dbg.Warnf("bus: ROM write with no cartridge at 0x%04X", addr)
			return
		}
		b.cart.WriteROM(addr, v)

	case addr <= 0x9FFF:
		if b.PPU.VRAMReadable() {
			b.vram[addr-0x8000] = v
		}

	case addr <= 0xBFFF:
		if b.cart != nil {
			b.cart.WriteRAM(addr, v)
		}

	case addr <= 0xDFFF:
		b.wram.Write(addr-0xC000, v)

	case addr <= 0xFDFF:
		b.wram.Write(addr-0xE000, v)

	case addr <= 0xFE9F:
		if b.oamCPUAccessible() {
			b.oam[addr-0xFE00] = v
		}

	case addr <= 0xFEFF:
		// prohibited region: writes ignored

	case addr <= 0xFF7F:
		b.writeIO(addr, v)

	case addr <= 0xFFFE:
		b.hram.Write(addr-0xFF80, v)

	default: // 0xFFFF: IE
		b.Interrupt.WriteIE(v)
	}
}

// oamCPUAccessible reports whether the CPU may currently read/write OAM:
// blocked during PPU Drawing/OAMScan. OAM-DMA's own CPU lockout is handled
// by Read8/Write8's HRAM-only gate before this is ever consulted.
func (b *Bus) oamCPUAccessible() bool {
	return b.PPU.OAMReadable()
}

// isHRAM reports whether addr falls in the one range the CPU may still
// touch while OAM-DMA is active.
func isHRAM(addr uint16) bool {
	return addr >= 0xFF80 && addr <= 0xFFFE
}

func (b *Bus) readIO(addr uint16) byte {
	switch {
	case addr == 0xFF00:
		return b.Joypad.Read()
	case addr == 0xFF01:
		return b.Serial.ReadSB()
	case addr == 0xFF02:
		return b.Serial.ReadSC()
	case addr == 0xFF04:
		return b.Timer.ReadDIV()
	case addr == 0xFF05:
		return b.Timer.ReadTIMA()
	case addr == 0xFF06:
		return b.Timer.ReadTMA()
	case addr == 0xFF07:
		return b.Timer.ReadTAC()
	case addr == 0xFF0F:
		return b.Interrupt.ReadIF()
	case addr >= 0xFF10 && addr < 0xFF10+apuregs.Size:
		return b.APURegs.Read(addr - 0xFF10)
	case addr == 0xFF46:
		return 0xFF // DMA trigger register reads back open
	case addr >= 0xFF40 && addr <= 0xFF4B:
		return b.PPU.ReadReg(addr)
	default:
		return 0xFF
	}
}

func (b *Bus) writeIO(addr uint16, v byte) {
	switch {
	case addr == 0xFF00:
		b.Joypad.Write(v)
	case addr == 0xFF01:
		b.Serial.WriteSB(v)
	case addr == 0xFF02:
		b.Serial.WriteSC(v)
	case addr == 0xFF04:
		b.Timer.WriteDIV()
	case addr == 0xFF05:
		b.Timer.WriteTIMA(v)
	case addr == 0xFF06:
		b.Timer.WriteTMA(v)
	case addr == 0xFF07:
		b.Timer.WriteTAC(v)
	case addr == 0xFF0F:
		b.Interrupt.WriteIF(v)
	case addr >= 0xFF10 && addr < 0xFF10+apuregs.Size:
		b.APURegs.Write(addr-0xFF10, v)
	case addr == 0xFF46:
		b.DMA.Start(v)
	case addr >= 0xFF40 && addr <= 0xFF4B:
		b.PPU.WriteReg(addr, v)
	}
}

// InterruptPending satisfies cpu.Bus: it reports whether any enabled
// interrupt is currently requested, independent of IME.
func (b *Bus) InterruptPending() bool { return b.Interrupt.Pending() }

// ServiceInterrupt satisfies cpu.Bus: it clears the highest-priority
// pending, enabled interrupt's IF bit and returns its vector.
func (b *Bus) ServiceInterrupt() (uint16, bool) {
	src, ok := b.Interrupt.Highest()
	if !ok {
		return 0, false
	}
	return src.Vector(), true
}

// Tick advances every onboard device by tCycles T-cycles, fanning out DMA
// byte copies and device-requested interrupts as it goes. Cartridge RTC
// advancement is driven here too, via the cartridge's own Tick.
func (b *Bus) Tick(tCycles int) {
	for i := 0; i < tCycles; i++ {
		b.Timer.TickInto(b.Interrupt)
		b.Serial.TickInto(b.Interrupt)
		b.PPU.Tick(b.vram[:], b.oam[:], b.Interrupt)
		if step, ok := b.DMA.Tick(); ok {
			b.oam[step.DstIdx] = b.dmaSourceByte(step.SrcAddr)
		}
	}
	if b.cart != nil {
		b.cart.Tick(tCycles)
	}
}

// dmaSourceByte reads a DMA source byte directly, bypassing the CPU-facing
// access restrictions the OAM-DMA transfer itself is exempt from.
func (b *Bus) dmaSourceByte(addr uint16) byte {
	switch {
	case addr <= 0x7FFF:
		if b.cart == nil {
			return 0xFF
		}
		return b.cart.ReadROM(addr)
	case addr <= 0x9FFF:
		return b.vram[addr-0x8000]
	case addr <= 0xBFFF:
		if b.cart == nil {
			return 0xFF
		}
		return b.cart.ReadRAM(addr)
	case addr <= 0xDFFF:
		return b.wram.Read(addr - 0xC000)
	default: // 0xE000-0xFDFF source range mirrors WRAM
		return b.wram.Read(addr - 0xE000)
	}
}
