package serde

import (
	"reflect"

	"github.com/arklib/serde/errx"
	"github.com/arklib/serde/serializer"
)

// Typed gives compile-time-typed access to a built serializer. It is a thin
// adapter over the erased instance; both views share the same state.
type Typed[T any] struct {
	erased serializer.Serializer
}

func (t *Typed[T]) Encode(val *T) ([]byte, error) {
	return t.erased.Encode(val)
}

func (t *Typed[T]) Decode(data []byte, val *T) error {
	return t.erased.Decode(data, val)
}

// Erased returns the type-erased view of the same serializer.
func (t *Typed[T]) Erased() serializer.Serializer {
	return t.erased
}

// CreateTyped builds a serializer for T. It always returns a non-nil
// serializer or an error; builder failures pass through unchanged.
func CreateTyped[T any](p *Provider, s Session) (*Typed[T], error) {
	if s == nil {
		return nil, errx.NilArgument("session")
	}
	ser, err := p.buildErased(reflect.TypeOf((*T)(nil)).Elem(), s)
	if err != nil {
		return nil, err
	}
	return &Typed[T]{erased: ser}, nil
}

// GetTyped returns the session's serializer for T, building and storing one
// on first request. The provider itself retains nothing.
func GetTyped[T any](p *Provider, s Session) (*Typed[T], error) {
	if s == nil {
		return nil, errx.NilArgument("session")
	}

	typ := reflect.TypeOf((*T)(nil)).Elem()
	if ser, ok := s.TrySerializer(typ); ok {
		return &Typed[T]{erased: ser}, nil
	}

	typed, err := CreateTyped[T](p, s)
	if err != nil {
		return nil, err
	}
	s.StoreSerializer(typ, typed.erased)
	return typed, nil
}

// Register installs a typed build closure for T on the untyped path,
// bypassing the reflect fallback. Call it at startup for hot types.
func Register[T any](p *Provider) {
	typ := reflect.TypeOf((*T)(nil)).Elem()
	p.registered.Store(typ, buildFn(func(s Session) (serializer.Serializer, error) {
		typed, err := CreateTyped[T](p, s)
		if err != nil {
			return nil, err
		}
		return typed.erased, nil
	}))
}
