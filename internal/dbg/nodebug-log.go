//go:build !debug
// +build !debug

package dbg

type noOpLogger struct{}

func init() {
	log = &noOpLogger{}
}

func (n *noOpLogger) Printf(format string, a ...interface{}) {}
func (n *noOpLogger) Println(a ...interface{})               {}
