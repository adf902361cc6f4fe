// Package dbg provides build-tag-selected debug logging. Tracing (bus
// accesses with no cartridge, CPU faults) costs nothing in a release build
// and becomes a real stderr logger under the "debug" tag.
package dbg

// Logger is implemented by both build variants.
type Logger interface {
	Printf(format string, a ...interface{})
	Println(a ...interface{})
}

// log is initialized by either debug-log.go or nodebug-log.go.
var log Logger

func Printf(format string, a ...interface{}) {
	log.Printf(format, a...)
}

func Println(a ...interface{}) {
	log.Println(a...)
}

// Warnf logs a condition worth surfacing in a debug build, such as a ROM
// access with no cartridge plugged in or a CPU fault.
func Warnf(format string, a ...interface{}) {
	log.Printf("warn: "+format, a...)
}
