//go:build debug
// +build debug

package dbg

import (
	"fmt"
	stdlog "log"
	"os"
)

type stderrLogger struct {
	logger *stdlog.Logger
}

func init() {
	log = &stderrLogger{
		logger: stdlog.New(os.Stderr, "", stdlog.Lshortfile),
	}
}

func (d *stderrLogger) Printf(format string, a ...interface{}) {
	d.logger.Output(3, fmt.Sprintf(format, a...))
}

func (d *stderrLogger) Println(a ...interface{}) {
	d.logger.Output(3, fmt.Sprintln(a...))
}
