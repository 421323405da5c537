package playlist

import "fmt"

// Position is the 1-based place of the cursor, as shown to the user.
type Position struct {
	Index int // 1-based
	Total int
}

// String formats the position as "i of N".
func (p Position) String() string {
	return fmt.Sprintf("%d of %d", p.Index, p.Total)
}

// Cursor walks a Collection sequentially with wraparound at both ends.
// A cursor over an empty collection is inactive: every step reports
// ErrNoPaths.
type Cursor struct {
	coll *Collection
	i    int
}

// NewCursor returns a cursor at index 0.
func NewCursor(coll *Collection) *Cursor {
	return &Cursor{coll: coll}
}

// Index returns the current 0-based index.
func (c *Cursor) Index() int {
	return c.i
}

// Position returns the current 1-based position.
func (c *Cursor) Position() Position {
	return Position{Index: c.i + 1, Total: c.coll.Len()}
}

// JumpToFirst moves to index 0 and returns the path there.
func (c *Cursor) JumpToFirst() (string, error) {
	if c.coll.IsEmpty() {
		return "", ErrNoPaths
	}
	c.i = 0
	return c.coll.At(c.i), nil
}

// StepForward advances one entry, wrapping from the last to the first.
func (c *Cursor) StepForward() (string, error) {
	n := c.coll.Len()
	if n == 0 {
		return "", ErrNoPaths
	}
	if c.i >= n-1 {
		c.i = 0
	} else {
		c.i++
	}
	return c.coll.At(c.i), nil
}

// StepBackward moves back one entry, wrapping from the first to the last.
func (c *Cursor) StepBackward() (string, error) {
	n := c.coll.Len()
	if n == 0 {
		return "", ErrNoPaths
	}
	if c.i <= 0 || c.i > n-1 {
		c.i = n - 1
	} else {
		c.i--
	}
	return c.coll.At(c.i), nil
}
