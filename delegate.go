package serde

import (
	"reflect"
	"sync"

	"github.com/arklib/serde/serializer"
)

// buildFn builds a serializer for one fixed type against a session.
type buildFn func(s Session) (serializer.Serializer, error)

// delegateCache memoizes one buildFn per runtime type for the life of the
// provider. Entries are append-only; a committed entry never changes.
//
// Under concurrent first requests for the same type the synthesizer may run
// more than once; LoadOrStore commits exactly one result and the extras are
// discarded. No lock is held across synthesis or across invoking the
// returned buildFn, so synthesis must be idempotent.
type delegateCache struct {
	entries sync.Map // reflect.Type -> buildFn
}

func (c *delegateCache) getOrCreate(typ reflect.Type, synthesize func() buildFn) buildFn {
	if fn, ok := c.entries.Load(typ); ok {
		return fn.(buildFn)
	}
	fn, _ := c.entries.LoadOrStore(typ, synthesize())
	return fn.(buildFn)
}

func (c *delegateCache) len() int {
	n := 0
	c.entries.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}
