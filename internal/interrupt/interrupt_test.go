package interrupt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPriorityOrder(t *testing.T) {
	var c Controller
	c.WriteIE(0xFF)
	c.Request(Serial)
	c.Request(VBlank)
	c.Request(Timer)

	assert.True(t, c.Pending())

	s, ok := c.Highest()
	assert.True(t, ok)
	assert.Equal(t, VBlank, s)
	assert.Equal(t, uint16(0x40), s.Vector())

	s, ok = c.Highest()
	assert.True(t, ok)
	assert.Equal(t, Timer, s)

	s, ok = c.Highest()
	assert.True(t, ok)
	assert.Equal(t, Serial, s)

	_, ok = c.Highest()
	assert.False(t, ok)
	assert.False(t, c.Pending())
}

func TestDisabledNotPending(t *testing.T) {
	var c Controller
	c.Request(VBlank)
	assert.False(t, c.Pending())
	_, ok := c.Highest()
	assert.False(t, ok)
}

func TestIFReadsTopBitsSet(t *testing.T) {
	var c Controller
	assert.Equal(t, byte(0xE0), c.ReadIF())
	c.Request(Joypad)
	assert.Equal(t, byte(0xF0|0x10), c.ReadIF())
}
