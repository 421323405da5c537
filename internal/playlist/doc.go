// Package playlist holds the in-memory path collection produced by a scan and
// the two ways of picking from it: independent random draws (RandomSelector
// semantics via Collection.PickOne) and a wraparound Cursor over a shuffled
// order for playlist mode.
//
// Randomness comes from an explicit *rand.Rand created once per run with
// NewSource and handed to the collection; there is no package-level state.
package playlist
