package cpu

// Bus is the minimal surface the CPU needs from whatever owns memory and
// devices. The CPU never stores a Bus between Step calls — it borrows one
// for the duration of a single call, per the sibling-ownership model (the
// driver owns both the CPU and the Bus; see internal/emulator).
type Bus interface {
	Read8(addr uint16) byte
	Write8(addr uint16, v byte)

	// InterruptPending reports whether any enabled interrupt is currently
	// requested, irrespective of IME — this is what releases HALT.
	InterruptPending() bool

	// ServiceInterrupt returns the vector of the highest-priority pending,
	// enabled interrupt and clears its IF bit. ok is false if none pending.
	ServiceInterrupt() (vector uint16, ok bool)
}
