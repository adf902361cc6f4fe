package cartridge

import "time"

// rtc is the MBC3 real-time clock sub-state. Grounded on
// original_source's dev/cart/mbc/rtc.rs; the latch semantics follow the
// simpler, spec-literal reading (writing 0x00 then 0x01 latches) rather
// than the original's two-steps-after-latched nuance — see DESIGN.md.
type rtc struct {
	sec, min, hour byte
	dayLow         byte
	dayHigh        byte // bit0: day bit8, bit6: halt, bit7: day carry

	epoch    time.Time
	latching bool
}

func newRTC(now time.Time) *rtc {
	return &rtc{epoch: now}
}

func (r *rtc) halted() bool { return r.dayHigh&0x40 != 0 }

// Advance recomputes the visible registers from wall-clock time, unless
// halted.
func (r *rtc) Advance(now time.Time) {
	if r.halted() {
		return
	}
	r.recompute(now)
}

func (r *rtc) recompute(now time.Time) {
	elapsed := now.Sub(r.epoch)
	if elapsed < 0 {
		elapsed = 0
	}
	totalSec := int64(elapsed.Seconds())
	r.sec = byte(totalSec % 60)
	r.min = byte((totalSec / 60) % 60)
	r.hour = byte((totalSec / 3600) % 24)
	day := totalSec / 86400
	r.dayLow = byte(day & 0xFF)
	carry := r.dayHigh & 0x80
	halt := r.dayHigh & 0x40
	dayHi9 := byte(0)
	if day&0x100 != 0 {
		dayHi9 = 0x01
	}
	if day >= 512 {
		carry = 0x80
	}
	r.dayHigh = carry | halt | dayHi9
}

// SetLatch implements the 0x6000-0x7FFF control write: 0x00 arms the latch,
// a subsequent 0x01 snapshots the running clock into the visible registers.
func (r *rtc) SetLatch(v byte, now time.Time) {
	if v == 0x00 {
		r.latching = true
		return
	}
	if v == 0x01 && r.latching {
		r.recompute(now)
		r.latching = false
	}
}

// register indices, as selected via the 0x08-0x0C values written to
// ram_bank_sel.
const (
	rtcSeconds = 0x08
	rtcMinutes = 0x09
	rtcHours   = 0x0A
	rtcDayLow  = 0x0B
	rtcDayHigh = 0x0C
)

func (r *rtc) Read(reg byte) byte {
	switch reg {
	case rtcSeconds:
		return r.sec
	case rtcMinutes:
		return r.min
	case rtcHours:
		return r.hour
	case rtcDayLow:
		return r.dayLow
	case rtcDayHigh:
		return r.dayHigh
	default:
		return 0xFF
	}
}

// Write re-seats the epoch so the running clock stays consistent with the
// just-written register, grounded on the original's update_epoch.
func (r *rtc) Write(reg byte, v byte, now time.Time) {
	switch reg {
	case rtcSeconds:
		r.sec = v % 60
	case rtcMinutes:
		r.min = v % 60
	case rtcHours:
		r.hour = v % 24
	case rtcDayLow:
		r.dayLow = v
	case rtcDayHigh:
		r.dayHigh = v & 0xC1
	default:
		return
	}
	r.reseatEpoch(now)
}

func (r *rtc) reseatEpoch(now time.Time) {
	day := int64(r.dayLow)
	if r.dayHigh&0x01 != 0 {
		day |= 0x100
	}
	total := day*86400 + int64(r.hour)*3600 + int64(r.min)*60 + int64(r.sec)
	r.epoch = now.Add(-time.Duration(total) * time.Second)
}
