package closure

// Cell is a box holding a single captured variable. A factory allocates the
// cell and hands it to the closure it returns, so every read and write the
// closure performs goes through the same storage for as long as the closure
// is reachable.
type Cell[T any] struct {
	v T
}

// NewCell creates a cell holding v
func NewCell[T any](v T) *Cell[T] {
	return &Cell[T]{v: v}
}

// Get returns the current value
func (c *Cell[T]) Get() T {
	return c.v
}

// Set replaces the current value
func (c *Cell[T]) Set(v T) {
	c.v = v
}

// Update applies fn to the current value, stores the result and returns it
func (c *Cell[T]) Update(fn func(T) T) T {
	c.v = fn(c.v)
	return c.v
}
