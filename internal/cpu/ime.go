package cpu

// ime models the interrupt-master-enable flag together with EI's
// documented one-instruction-delayed enable. Grounded on
// original_source's dev/cpu/ime.rs.
type ime struct {
	enabled   bool
	countdown int
}

func (i *ime) enable() { i.countdown = 2 }

func (i *ime) disable() {
	i.countdown = 0
	i.enabled = false
}

// tick must be called exactly once per atomic CPU step, regardless of what
// that step did.
func (i *ime) tick() {
	if i.countdown == 0 {
		return
	}
	i.countdown--
	if i.countdown == 0 {
		i.enabled = true
	}
}
