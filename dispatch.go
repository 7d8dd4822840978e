package serde

import (
	"reflect"

	"github.com/arklib/serde/errx"
	"github.com/arklib/serde/serializer"
)

// CreateUntyped builds a serializer for a type known only at runtime. The
// build closure for typ is synthesized on first request and memoized for
// the provider's lifetime; arguments are checked before the cache is
// touched. Builder failures pass through unchanged.
func (p *Provider) CreateUntyped(typ reflect.Type, s Session) (serializer.Serializer, error) {
	if typ == nil {
		return nil, errx.NilArgument("typ")
	}
	if s == nil {
		return nil, errx.NilArgument("session")
	}

	fn := p.delegates.getOrCreate(typ, func() buildFn {
		return p.synthesize(typ)
	})
	return fn(s)
}

// GetUntyped is CreateUntyped with session-level memoization: a serializer
// already stored for typ is returned as-is, otherwise the fresh build is
// handed to the session for storage.
func (p *Provider) GetUntyped(typ reflect.Type, s Session) (serializer.Serializer, error) {
	if typ == nil {
		return nil, errx.NilArgument("typ")
	}
	if s == nil {
		return nil, errx.NilArgument("session")
	}

	if ser, ok := s.TrySerializer(typ); ok {
		return ser, nil
	}

	ser, err := p.CreateUntyped(typ, s)
	if err != nil {
		return nil, err
	}
	s.StoreSerializer(typ, ser)
	return ser, nil
}

// synthesize produces the build closure for typ: the closure installed by
// Register when present, else a reflect-driven build through the shared
// path. Synthesis is side-effect-free, so a racing duplicate can be
// discarded safely.
func (p *Provider) synthesize(typ reflect.Type) buildFn {
	if fn, ok := p.registered.Load(typ); ok {
		return fn.(buildFn)
	}
	return func(s Session) (serializer.Serializer, error) {
		return p.buildErased(typ, s)
	}
}
