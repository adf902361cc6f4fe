package cpu

import (
	"fmt"

	"gbcore/internal/dbg"
)

// IllegalInstruction is returned by Step when the fetched opcode is one of
// the SM83's documented-undefined entries. It is fatal: the CPU will not
// advance further until Reset.
type IllegalInstruction struct {
	PC     uint16
	Opcode byte
}

func (e *IllegalInstruction) Error() string {
	return fmt.Sprintf("illegal instruction 0x%02X at PC=0x%04X", e.Opcode, e.PC)
}

// CPU is the SM83 execution core. It owns only its register file and its
// own halted/stopped/IME state — it never owns or stores a Bus, per the
// sibling-ownership model described in internal/emulator.
type CPU struct {
	Regs Registers

	halted  bool
	stopped bool
	ime     ime

	// faulted holds a prior fatal error; once set, Step always returns it.
	faulted error
}

// New returns a CPU in its documented power-on state.
func New() *CPU {
	c := &CPU{}
	c.Regs.Reset()
	return c
}

// Reset returns the CPU to its power-on state and clears any fault.
func (c *CPU) Reset() {
	c.Regs.Reset()
	c.halted = false
	c.stopped = false
	c.ime = ime{}
	c.faulted = nil
}

// Step executes exactly one instruction-or-interrupt-service-or-halted-idle
// unit of work and returns the number of T-cycles it took.
//
// Order of operations per call: if a prior call faulted, that error is
// returned immediately without touching the bus. Otherwise, if IME is
// enabled and an interrupt is pending, the interrupt is serviced (this also
// wakes the CPU from HALT). Otherwise, if halted or stopped and no interrupt
// is pending, one 4-cycle idle slice is spent. Otherwise one instruction is
// fetched, decoded and executed. The EI countdown is ticked exactly once
// per call, regardless of which branch ran.
func (c *CPU) Step(bus Bus) (int, error) {
	if c.faulted != nil {
		return 0, c.faulted
	}

	pending := bus.InterruptPending()
	if pending && (c.halted || c.stopped) {
		c.halted = false
		c.stopped = false
	}

	if c.ime.enabled && pending {
		if vector, ok := bus.ServiceInterrupt(); ok {
			cycles := c.serviceInterrupt(bus, vector)
			c.ime.tick()
			return cycles, nil
		}
	}

	if c.halted || c.stopped {
		c.ime.tick()
		return 4, nil
	}

	opcode := c.fetch8(bus)
	cycles, err := c.execute(bus, opcode)
	if err != nil {
		c.faulted = err
		dbg.Warnf("cpu fault: %v", err)
		return 0, err
	}
	c.ime.tick()
	return cycles, nil
}

// serviceInterrupt pushes PC, jumps to vector, disables IME, and spends the
// documented 20 T-cycles (5 internal M-cycles).
func (c *CPU) serviceInterrupt(bus Bus, vector uint16) int {
	c.ime.disable()
	c.push16(bus, c.Regs.PC)
	c.Regs.PC = vector
	return 20
}

func (c *CPU) fetch8(bus Bus) byte {
	v := bus.Read8(c.Regs.PC)
	c.Regs.PC++
	return v
}

func (c *CPU) fetch16(bus Bus) uint16 {
	lo := c.fetch8(bus)
	hi := c.fetch8(bus)
	return uint16(hi)<<8 | uint16(lo)
}

func (c *CPU) push16(bus Bus, v uint16) {
	c.Regs.SP--
	bus.Write8(c.Regs.SP, byte(v>>8))
	c.Regs.SP--
	bus.Write8(c.Regs.SP, byte(v))
}

func (c *CPU) pop16(bus Bus) uint16 {
	lo := bus.Read8(c.Regs.SP)
	c.Regs.SP++
	hi := bus.Read8(c.Regs.SP)
	c.Regs.SP++
	return uint16(hi)<<8 | uint16(lo)
}

// Halted reports whether the CPU is currently idling in HALT.
func (c *CPU) Halted() bool { return c.halted }

// Stopped reports whether the CPU is currently idling in STOP.
func (c *CPU) Stopped() bool { return c.stopped }

// IMEEnabled reports whether the interrupt master enable flag is currently
// set (not merely pending via an EI countdown).
func (c *CPU) IMEEnabled() bool { return c.ime.enabled }
