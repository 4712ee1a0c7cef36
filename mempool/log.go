package mempool

import "sync/atomic"

import "github.com/bnclabs/golog"

type logf func(format string, v ...interface{})

var logok = int64(0)

// the only levels this package emits: pool and chunk lifecycle at
// debug, stats dumps at info, OS allocation failures at error.
var (
	debugf = gated(log.Debugf)
	infof  = gated(log.Infof)
	errorf = gated(log.Errorf)
)

// LogComponents enable logging. By default logging is disabled, if
// applications want log information for mempool components call this
// function with "self" or "all" or "mempool" as argument.
func LogComponents(components ...string) {
	for _, comp := range components {
		switch comp {
		case "mempool", "self", "all":
			atomic.StoreInt64(&logok, 1)
		}
	}
}

func gated(emit logf) logf {
	return func(format string, v ...interface{}) {
		if atomic.LoadInt64(&logok) > 0 {
			emit(format, v...)
		}
	}
}
