package playlist

import (
	"errors"
	"math/rand/v2"
	"time"
)

// ErrNoPaths is returned when selecting from an empty collection.
var ErrNoPaths = errors.New("no paths available")

// NewSource returns the per-run random source, seeded from the
// high-resolution clock.
func NewSource() *rand.Rand {
	seed := uint64(time.Now().UnixNano())
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Collection is the ordered list of root-relative paths for one run.
// It is not safe for concurrent use.
type Collection struct {
	root  string
	paths []string
	rng   *rand.Rand
}

// NewCollection wraps paths (root-relative, slash separated) collected below
// root. The slice is owned by the collection from now on.
func NewCollection(root string, paths []string, rng *rand.Rand) *Collection {
	return &Collection{
		root:  root,
		paths: paths,
		rng:   rng,
	}
}

// Root returns the canonical root directory the paths are relative to.
func (c *Collection) Root() string {
	return c.root
}

// Len returns the number of paths.
func (c *Collection) Len() int {
	return len(c.paths)
}

// IsEmpty reports whether there is nothing to select.
func (c *Collection) IsEmpty() bool {
	return len(c.paths) == 0
}

// At returns the path at index i.
func (c *Collection) At(i int) string {
	return c.paths[i]
}

// Paths returns a copy of the paths in their current order.
func (c *Collection) Paths() []string {
	out := make([]string, len(c.paths))
	copy(out, c.paths)
	return out
}

// Shuffle reorders the whole collection in place with a Fisher-Yates
// permutation. Cursors over the collection are left untouched.
func (c *Collection) Shuffle() {
	c.rng.Shuffle(len(c.paths), func(i, j int) {
		c.paths[i], c.paths[j] = c.paths[j], c.paths[i]
	})
}

// PickIndex draws an index uniformly from [0, Len()-1]. Draws are
// independent, so repetition across calls is expected.
func (c *Collection) PickIndex() (int, error) {
	if len(c.paths) == 0 {
		return 0, ErrNoPaths
	}
	return c.rng.IntN(len(c.paths)), nil
}

// PickOne returns a uniformly drawn path.
func (c *Collection) PickOne() (string, error) {
	i, err := c.PickIndex()
	if err != nil {
		return "", err
	}
	return c.paths[i], nil
}
