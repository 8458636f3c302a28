package utils

import (
	"fmt"
	"runtime/debug"
)

// PanicError carries a recovered panic value out of a guarded goroutine
type PanicError struct {
	Context string
	Value   interface{}
	Stack   []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic in %s: %v", e.Context, e.Value)
}

// RecoverFromPanic recovers from panics and logs them. It must be deferred
// directly. When errp is not nil the panic is stored there as *PanicError.
func RecoverFromPanic(logger *Logger, context string, errp *error) {
	r := recover()
	if r == nil {
		return
	}
	stack := debug.Stack()
	logger.Error("Panic recovered in %s: %v\nStack trace:\n%s", context, r, string(stack))
	if errp != nil {
		*errp = &PanicError{Context: context, Value: r, Stack: stack}
	}
}

// SafeGo runs fn on its own goroutine with panic recovery.
// The returned channel is closed once fn has returned or panicked.
func SafeGo(logger *Logger, context string, fn func()) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		defer RecoverFromPanic(logger, context, nil)
		fn()
	}()
	return done
}

// SafeGoWithError is SafeGo for functions that can fail; onError receives
// either the returned error or a *PanicError
func SafeGoWithError(logger *Logger, context string, fn func() error, onError func(error)) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		var err error
		func() {
			defer RecoverFromPanic(logger, context, &err)
			err = fn()
		}()
		if err == nil {
			return
		}
		logger.Error("Error in %s: %v", context, err)
		if onError != nil {
			onError(err)
		}
	}()
	return done
}
