// Package closure holds the closure factories used by the lesson. Each
// factory call allocates a fresh frame, so two closures built by separate
// calls never share state.
package closure

import (
	"fmt"
	"io"
)

// NewCoinGame returns a closure that spends one of person's coins per call
// and reports how many are left.
func NewCoinGame(w io.Writer, person string, coins int) func() error {
	left := NewCell(coins)

	return func() error {
		n := left.Update(func(c int) int { return c - 1 })

		var err error
		switch {
		case n > 1:
			_, err = fmt.Fprintf(w, "\n%s has %d coins left\n", person, n)
		case n == 1:
			_, err = fmt.Fprintf(w, "\n%s has %d coin left\n", person, n)
		default:
			_, err = fmt.Fprintf(w, "\n%s is out of coins\n", person)
		}
		return err
	}
}

// MakePrinter returns a closure that writes msg on every call
func MakePrinter(w io.Writer, msg string) func() error {
	return func() error {
		_, err := fmt.Fprintln(w, msg)
		return err
	}
}

// MakeCounter returns a closure yielding 1, 2, 3, ... on successive calls
func MakeCounter() func() int {
	count := NewCell(0)
	return func() int {
		return count.Update(func(c int) int { return c + 1 })
	}
}

// MakeMultiplier returns a closure that multiplies its input by factor
func MakeMultiplier(factor int) func(int) int {
	return func(number int) int {
		return number * factor
	}
}

// MakeCallback returns an event callback that writes message when fired
func MakeCallback(w io.Writer, message string) func() error {
	return func() error {
		_, err := fmt.Fprintln(w, message)
		return err
	}
}

// MakeAccumulator returns a closure keeping a running total of its inputs
func MakeAccumulator() func(int) int {
	total := NewCell(0)
	return func(value int) int {
		return total.Update(func(t int) int { return t + value })
	}
}

// RegularFunction keeps its variable local; nothing survives the call.
func RegularFunction(w io.Writer) error {
	localVar := "I am local"
	_, err := fmt.Fprintln(w, localVar)
	return err
}
