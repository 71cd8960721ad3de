// Package pick selects elements uniformly at random.
//
// The functions are pure: they read the slice they are given and nothing
// else. They know nothing about the network or caches, so callers fetch a
// list first and pick from it:
//
//	tags, err := client.ListTags(ctx)
//	if err != nil {
//	    return err
//	}
//	tag, err := pick.One(tags)
//
// An empty slice fails with [errors.ErrEmptyCollection].
//
// [errors.ErrEmptyCollection]: github.com/Taxolotl/vintage-story-mod-api/pkg/errors.ErrEmptyCollection
package pick

import (
	"math/rand/v2"

	"github.com/Taxolotl/vintage-story-mod-api/pkg/errors"
)

// One returns a uniformly random element of items using the global
// math/rand/v2 source, which is safe for concurrent use.
func One[T any](items []T) (T, error) {
	var zero T
	if len(items) == 0 {
		return zero, errors.New(errors.ErrCodeEmptyCollection, "cannot pick from an empty collection")
	}
	return items[rand.IntN(len(items))], nil
}

// OneWith is like [One] but draws from r, for reproducible selections.
// A *rand.Rand is not safe for concurrent use.
func OneWith[T any](r *rand.Rand, items []T) (T, error) {
	var zero T
	if len(items) == 0 {
		return zero, errors.New(errors.ErrCodeEmptyCollection, "cannot pick from an empty collection")
	}
	return items[r.IntN(len(items))], nil
}

// NewSource returns a seeded generator for [OneWith].
func NewSource(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
}
