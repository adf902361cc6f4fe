package dma

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFullTransferTakes644Cycles(t *testing.T) {
	e := New()
	e.Start(0xC1)

	var steps []Step
	for i := 0; i < 644; i++ {
		if s, ok := e.Tick(); ok {
			steps = append(steps, s)
		}
	}
	assert.Len(t, steps, 160)
	assert.Equal(t, uint16(0xC100), steps[0].SrcAddr)
	assert.Equal(t, 0, steps[0].DstIdx)
	assert.Equal(t, uint16(0xC1A0-1), steps[159].SrcAddr)
	assert.False(t, e.Active())

	// The fourth-cycle start delay consumes one full 4-cycle slot before
	// the first copy, so the 160th copy lands on tick 644, not 640.
	e2 := New()
	e2.Start(0xC1)
	completedAt640 := 0
	for i := 0; i < 640; i++ {
		if _, ok := e2.Tick(); ok {
			completedAt640++
		}
	}
	assert.Equal(t, 159, completedAt640)
	assert.True(t, e2.Active())
}
