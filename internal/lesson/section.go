// Package lesson assembles the closure examples into ordered, titled sections
// and runs them.
package lesson

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"go-closures/internal/closure"
)

// ErrUnknownSection is returned by Select for a name not in the catalog
var ErrUnknownSection = errors.New("unknown section")

// Section is one self-contained example of the lesson
type Section interface {
	// Name returns the short identifier used in config and flags
	Name() string

	// Title returns the text shown in the section banner
	Title() string

	// Run prints the example to w
	Run(ctx context.Context, w io.Writer) error
}

// Recorder is notified every time a lesson closure is invoked
type Recorder interface {
	RecordClosureCall(name string)
}

// Spacer is implemented by sections whose banner is surrounded by blank lines
type Spacer interface {
	Spaced() bool
}

type section struct {
	name   string
	title  string
	spaced bool
	run    func(w io.Writer) error
}

func (s *section) Name() string  { return s.name }
func (s *section) Title() string { return s.title }
func (s *section) Spaced() bool  { return s.spaced }

func (s *section) Run(ctx context.Context, w io.Writer) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.run(w)
}

// Catalog returns the built-in sections in program order. rec may be nil.
func Catalog(rec Recorder) []Section {
	hit := func(name string) func() {
		return func() {
			if rec != nil {
				rec.RecordClosureCall(name)
			}
		}
	}

	return []Section{
		&section{
			name:   "coins",
			title:  " Lesson 12: Closure ",
			spaced: true,
			run: func(w io.Writer) error {
				// Every player starts with three coins; the seed is overridden.
				parentFunction := func(person string, _ int) func() error {
					coins := 3
					return closure.Counted(closure.NewCoinGame(w, person, coins), hit("coin_game"))
				}

				sisovin := parentFunction("Sisovin", 3)
				viphea := parentFunction("Viphea", 5)

				for _, play := range []func() error{sisovin, sisovin, viphea, sisovin} {
					if err := play(); err != nil {
						return err
					}
				}
				_, err := fmt.Fprintln(w)
				return err
			},
		},
		&section{
			name:  "illustrated",
			title: " The illustrated closures ",
			run: func(w io.Writer) error {
				return closure.Counted(closure.MakePrinter(w, "Hello, World!"), hit("printer"))()
			},
		},
		&section{
			name:  "counter",
			title: " to encapsulate data and provide controlled access to it ",
			run: func(w io.Writer) error {
				counter := closure.Counted(closure.MakeCounter(), hit("counter"))
				_, err := fmt.Fprintf(w, "%d\n%d\n", counter(), counter())
				return err
			},
		},
		&section{
			name:  "factory",
			title: " to create a function factory ",
			run: func(w io.Writer) error {
				double := closure.CountedFunc(closure.MakeMultiplier(2), hit("multiplier"))
				triple := closure.CountedFunc(closure.MakeMultiplier(3), hit("multiplier"))
				_, err := fmt.Fprintf(w, "%d\n%d\n", double(5), triple(5))
				return err
			},
		},
		&section{
			name:  "callbacks",
			title: " Closures in event handling and callback functions. ",
			run: func(w io.Writer) error {
				helloCallback := closure.Counted(closure.MakeCallback(w, "Hello!"), hit("callback"))
				goodbyeCallback := closure.Counted(closure.MakeCallback(w, "Goodbye!"), hit("callback"))
				if err := helloCallback(); err != nil {
					return err
				}
				return goodbyeCallback()
			},
		},
		&section{
			name:  "decorators",
			title: " Create Decorators using Closures ",
			run: func(w io.Writer) error {
				sayHello := closure.Announce[error](w)(func() error {
					_, err := fmt.Fprintln(w, "Hello!")
					return err
				})
				return closure.Counted(sayHello, hit("decorator"))()
			},
		},
		&section{
			name:  "state",
			title: " Closures on Maintaining State ",
			run: func(w io.Writer) error {
				acc := closure.CountedFunc(closure.MakeAccumulator(), hit("accumulator"))
				first := acc(10)
				second := acc(20)
				_, err := fmt.Fprintf(w, "%d\n%d\n", first, second)
				return err
			},
		},
		&section{
			name:  "regular",
			title: " Example on Regular Function ",
			run:   closure.RegularFunction,
		},
		&section{
			name:  "closure",
			title: " Example on Closure ",
			run: func(w io.Writer) error {
				return closure.Counted(closure.MakePrinter(w, "Hello, World!"), hit("printer"))()
			},
		},
		&section{
			name:  "globals",
			title: " Closure with Avoiding Global Variables ",
			run: func(w io.Writer) error {
				return closure.Counted(closure.MakePrinter(w, "Hello, World!"), hit("printer"))()
			},
		},
	}
}

// Select filters sections down to names, keeping catalog order. An empty
// names list selects everything.
func Select(sections []Section, names []string) ([]Section, error) {
	if len(names) == 0 {
		return sections, nil
	}

	wanted := make(map[string]bool, len(names))
	for _, name := range names {
		wanted[strings.TrimSpace(name)] = true
	}

	selected := make([]Section, 0, len(wanted))
	for _, s := range sections {
		if wanted[s.Name()] {
			selected = append(selected, s)
			delete(wanted, s.Name())
		}
	}

	if len(wanted) > 0 {
		unknown := make([]string, 0, len(wanted))
		for name := range wanted {
			unknown = append(unknown, strconv.Quote(name))
		}
		sort.Strings(unknown)
		return nil, fmt.Errorf("%w: %s", ErrUnknownSection, strings.Join(unknown, ", "))
	}

	return selected, nil
}
