package safego

import (
	"log"
	"runtime/debug"
)

// Go runs fn on a new goroutine, logging any panic with its stack before
// re-panicking. The terminal UI owns stdout/stderr while the app runs, so an
// unlogged panic would otherwise vanish with the screen.
func Go(logger *log.Logger, fn func()) {
	if logger == nil {
		panic("safego: logger must not be nil")
	}
	go func() {
		defer func() {
			if r := recover(); r != nil {
				logger.Printf("PANIC: %v\n%s", r, debug.Stack())
				panic(r)
			}
		}()
		fn()
	}()
}
