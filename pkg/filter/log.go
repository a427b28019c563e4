package filter

import (
	"sync/atomic"

	"github.com/rs/zerolog"
)

// loggerPtr holds the package logger; swapped atomically so SetLogger may
// race with running filters.
var loggerPtr atomic.Pointer[zerolog.Logger]

func init() {
	nop := zerolog.Nop()
	loggerPtr.Store(&nop)
}

// SetLogger installs the logger used by the driver. The package is silent
// until this is called. Passing the zero logger is equivalent to zerolog.Nop().
func SetLogger(l zerolog.Logger) {
	loggerPtr.Store(&l)
}

// Logger returns the current package logger.
func Logger() *zerolog.Logger {
	return loggerPtr.Load()
}
