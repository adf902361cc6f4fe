// Package emulator drives a CPU and a Bus as independent siblings: neither
// owns the other, so this package is the only place that calls cpu.Step
// and then ticks the bus the cycles it reports. Grounded on
// original_source's emulator/mod.rs.
package emulator

import (
	"context"

	"gbcore/internal/bus"
	"gbcore/internal/cartridge"
	"gbcore/internal/cpu"
)

// Emulator owns a CPU and a Bus side by side and steps them together.
type Emulator struct {
	CPU *cpu.CPU
	Bus *bus.Bus
}

// New returns an Emulator with a fresh CPU and Bus, no cartridge plugged in.
func New() *Emulator {
	return &Emulator{
		CPU: cpu.New(),
		Bus: bus.New(),
	}
}

// LoadCartridge plugs in cart and resets the CPU to its power-on state.
func (e *Emulator) LoadCartridge(cart *cartridge.Cartridge) {
	e.Bus.Plug(cart)
	e.CPU.Reset()
}

// Step executes one CPU step and ticks every bus-owned device the same
// number of T-cycles. It returns the fatal error from the CPU, if any.
func (e *Emulator) Step() error {
	cycles, err := e.CPU.Step(e.Bus)
	if err != nil {
		return err
	}
	e.Bus.Tick(cycles)
	return nil
}

// RunFrames steps the emulator until frameCount frames have been produced
// by the PPU, or ctx is canceled, or the CPU faults.
func (e *Emulator) RunFrames(ctx context.Context, frameCount int) error {
	produced := 0
	for produced < frameCount {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if err := e.Step(); err != nil {
			return err
		}
		if e.Bus.PPU.IsFrameReady() {
			produced++
			e.Bus.PPU.ResetFrameReady()
		}
	}
	return nil
}

// Run steps the emulator indefinitely until ctx is canceled or the CPU
// faults.
func (e *Emulator) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if err := e.Step(); err != nil {
			return err
		}
	}
}
