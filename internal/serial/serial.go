// Package serial implements the 8-bit link-cable shifter: SB/SC registers,
// an 8192 Hz internal-clock shift (one bit every 512 T-cycles), and a sink
// callback receiving the byte that was shifted out.
//
// Grounded on original_source's dev/serial.rs.
package serial

import "gbcore/internal/interrupt"

const shiftPeriod = 512

// Serial is the bus-mapped link port.
type Serial struct {
	sb byte
	sc byte

	inProgress bool
	shifted    byte
	ticks      uint32

	out  byte
	Sink func(byte)
}

// New returns a Serial port in its documented power-on state.
func New() *Serial {
	return &Serial{sb: 0xFF, sc: 0x7C}
}

func (s *Serial) transferEnabled() bool { return s.sc&0x80 != 0 }
func (s *Serial) isInternalClock() bool { return s.sc&0x01 != 0 }

func (s *Serial) ReadSB() byte { return s.sb }
func (s *Serial) WriteSB(v byte) {
	if !s.inProgress {
		s.sb = v
	}
}

func (s *Serial) ReadSC() byte { return s.sc | 0x7E }

func (s *Serial) WriteSC(v byte) {
	s.sc = v & 0x81
	if s.transferEnabled() && s.isInternalClock() && !s.inProgress {
		s.begin()
	}
}

func (s *Serial) begin() {
	s.inProgress = true
	s.shifted = 0
	s.out = s.sb
	s.ticks = 0
}

// Tick advances the shifter by one T-cycle, returning true if the Serial
// interrupt should be requested this cycle.
func (s *Serial) Tick() bool {
	if !s.inProgress {
		return false
	}
	s.ticks++
	if s.ticks%shiftPeriod != 0 {
		return false
	}
	s.sb = (s.sb << 1) | 1
	s.shifted++
	if s.shifted >= 8 {
		s.sc &^= 0x80
		s.inProgress = false
		if s.Sink != nil {
			s.Sink(s.out)
		}
		return true
	}
	return false
}

// TickInto advances the shifter and requests the Serial interrupt on ic if
// the transfer completed this cycle.
func (s *Serial) TickInto(ic *interrupt.Controller) {
	if s.Tick() {
		ic.Request(interrupt.Serial)
	}
}
