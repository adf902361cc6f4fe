// Package joypad implements the bus-mapped input latch at 0xFF00: the host
// reports key state via SetKey, and the device exposes whichever
// nibble (direction or action keys) the last write selected, active-low,
// requesting the Joypad interrupt on any 1->0 edge in the selected nibble.
package joypad

import "gbcore/internal/interrupt"

type Key uint

const (
	Right Key = iota
	Left
	Up
	Down
	A
	B
	Select
	Start
)

// Joypad holds the pressed-key state and the host's group selection.
type Joypad struct {
	pressed [8]bool // true = pressed
	selDirs bool    // bit 4 cleared by host = directions selected
	selBtns bool    // bit 5 cleared by host = buttons selected
}

func New() *Joypad {
	return &Joypad{selDirs: true, selBtns: true}
}

// SetKey updates one key's pressed state, requesting the Joypad interrupt
// on ic if this is a 1->0 (press) transition in the currently-selected
// nibble.
func (j *Joypad) SetKey(k Key, pressed bool, ic *interrupt.Controller) {
	was := j.pressed[k]
	j.pressed[k] = pressed
	if pressed && !was && j.bitSelected(k) {
		ic.Request(interrupt.Joypad)
	}
}

func (j *Joypad) bitSelected(k Key) bool {
	if k < 4 {
		return j.selDirs
	}
	return j.selBtns
}

// Read returns the register value as the CPU would observe it.
func (j *Joypad) Read() byte {
	v := byte(0xC0)
	if !j.selDirs {
		v |= 0x10
	}
	if !j.selBtns {
		v |= 0x20
	}
	nibble := byte(0x0F)
	if j.selDirs {
		nibble &= j.nibbleFor(Right, Left, Up, Down)
	}
	if j.selBtns {
		nibble &= j.nibbleFor(A, B, Select, Start)
	}
	return v | nibble
}

func (j *Joypad) nibbleFor(k0, k1, k2, k3 Key) byte {
	var n byte = 0x0F
	if j.pressed[k0] {
		n &^= 0x01
	}
	if j.pressed[k1] {
		n &^= 0x02
	}
	if j.pressed[k2] {
		n &^= 0x04
	}
	if j.pressed[k3] {
		n &^= 0x08
	}
	return n
}

// Write latches which nibble(s) the next read exposes (active-low select
// lines: clearing bit 4 selects directions, clearing bit 5 selects
// buttons).
func (j *Joypad) Write(v byte) {
	j.selDirs = v&0x10 == 0
	j.selBtns = v&0x20 == 0
}
