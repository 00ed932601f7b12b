package closure

import (
	"fmt"
	"io"
)

// Decorator turns a zero-argument function into a wrapped one with the same
// signature.
type Decorator[T any] func(fn func() T) func() T

// NewDecorator builds a decorator that calls before and after around the
// wrapped function. The wrapped function's result is returned unchanged.
func NewDecorator[T any](before, after func()) Decorator[T] {
	return func(fn func() T) func() T {
		return func() T {
			if before != nil {
				before()
			}
			result := fn()
			if after != nil {
				after()
			}
			return result
		}
	}
}

// Announce returns a decorator that writes a marker to w before and after
// each call of the wrapped function.
func Announce[T any](w io.Writer) Decorator[T] {
	return NewDecorator[T](
		func() { fmt.Fprintln(w, "Before function call") },
		func() { fmt.Fprintln(w, "After function call") },
	)
}

// Counted wraps fn so that hit is called once per invocation
func Counted[T any](fn func() T, hit func()) func() T {
	return NewDecorator[T](hit, nil)(fn)
}

// CountedFunc is Counted for one-argument functions
func CountedFunc[A, R any](fn func(A) R, hit func()) func(A) R {
	return func(arg A) R {
		hit()
		return fn(arg)
	}
}
