// Package savedstate persists restorable UI state across a kill-and-recreate
// cycle of the process.
package savedstate

import (
	"maps"
	"slices"
)

// Bundle maps stable slot identifiers to their last written value.
// A slot missing from a bundle restores to its declared default.
type Bundle map[string]bool

// Get returns the value stored for key, or def when the slot was never written.
func (b Bundle) Get(key string, def bool) bool {
	if v, ok := b[key]; ok {
		return v
	}
	return def
}

// Put records value under key.
func (b Bundle) Put(key string, value bool) {
	b[key] = value
}

// Clone returns an independent copy, safe to hand to another goroutine.
func (b Bundle) Clone() Bundle {
	if b == nil {
		return Bundle{}
	}
	return maps.Clone(b)
}

// Keys returns the slot identifiers in sorted order.
func (b Bundle) Keys() []string {
	return slices.Sorted(maps.Keys(b))
}
