// Package guard keeps panics raised by plugin code from unwinding into the
// host. A Go panic that reaches a cgo callback boundary terminates the whole
// host process, so every entry point that runs plugin code goes through Do
// or Value.
//
// Only panics can be caught. Fatal runtime errors (concurrent map writes,
// out of memory) and runtime.Goexit still end the process.
package guard

import (
	"runtime/debug"

	logging "github.com/justyntemme/ladspago/pkg/framework/debug"
)

// Do runs fn. If fn panics the panic is logged under op and Do returns
// false. There is no retry.
func Do(op string, fn func()) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			report(op, r)
			ok = false
		}
	}()
	fn()
	return true
}

// Value runs fn and returns its result, or fallback if fn panics.
func Value[T any](op string, fallback T, fn func() T) (v T) {
	defer func() {
		if r := recover(); r != nil {
			report(op, r)
			v = fallback
		}
	}()
	return fn()
}

func report(op string, r interface{}) {
	l := logging.Default().With("op", op)
	l.Error("plugin error in %s: %v", op, r)
	l.Debug("stack:\n%s", debug.Stack())
}
