package bits

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTestSetClear(t *testing.T) {
	var b byte = 0x00
	assert.False(t, Test(b, 3))

	b = Set(b, 3)
	assert.True(t, Test(b, 3))
	assert.Equal(t, byte(0x08), b)

	b = Clear(b, 3)
	assert.False(t, Test(b, 3))
	assert.Equal(t, byte(0x00), b)
}

func TestSetTo(t *testing.T) {
	assert.Equal(t, byte(0x80), SetTo(0x00, 7, true))
	assert.Equal(t, byte(0x00), SetTo(0x80, 7, false))
}

func TestNibbles(t *testing.T) {
	assert.Equal(t, byte(0x0A), Lo(0xFA))
	assert.Equal(t, byte(0x0F), Hi(0xFA))
}

func TestJoin16(t *testing.T) {
	v := Join16(0x12, 0x34)
	assert.Equal(t, uint16(0x1234), v)
	assert.Equal(t, byte(0x12), Hi16(v))
	assert.Equal(t, byte(0x34), Lo16(v))
}

func TestBoolToByte(t *testing.T) {
	assert.Equal(t, byte(1), BoolToByte(true))
	assert.Equal(t, byte(0), BoolToByte(false))
}
