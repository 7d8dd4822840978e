package serde

import (
	"errors"
	"reflect"

	"github.com/arklib/serde/errx"
	"github.com/arklib/serde/serializer"
	"github.com/arklib/serde/util"
)

// Builder turns a runtime type into a serializer. One builder backs each
// strategy. A builder returns serializer.ErrDeferred when the type graph is
// self-referential and the build must happen on first use; every other
// failure is an errx build error that callers receive unchanged.
type Builder interface {
	Build(typ reflect.Type, s Session) (serializer.Serializer, error)
}

// DeferredBuilder is implemented by builders that can finish a deferred
// build later. BuildDeferred runs behind a lazy adapter on first use and
// must succeed for any type graph Build deferred on.
type DeferredBuilder interface {
	Builder
	BuildDeferred(typ reflect.Type, s Session) (serializer.Serializer, error)
}

func defaultBuilders() map[Strategy]Builder {
	return map[Strategy]Builder{
		StrategyArray:   &arrayBuilder{compiler: serializer.NewArray()},
		StrategyMap:     &valueBuilder{ser: serializer.NewGoJson()},
		StrategyCodegen: &valueBuilder{ser: serializer.NewSonic()},
	}
}

// valueBuilder backs the map and codegen strategies. Their serializers
// handle any serializable type through one shared instance, so building is
// a shape check.
type valueBuilder struct {
	ser serializer.Serializer
}

func (b *valueBuilder) Build(typ reflect.Type, _ Session) (serializer.Serializer, error) {
	if err := checkSerializable(typ); err != nil {
		return nil, err
	}
	return b.ser, nil
}

// arrayBuilder backs the positional-layout strategy with compiled per-type
// field plans.
type arrayBuilder struct {
	compiler *serializer.Array
}

func (b *arrayBuilder) Build(typ reflect.Type, _ Session) (serializer.Serializer, error) {
	ser, err := b.compiler.For(typ)
	if err != nil {
		if errors.Is(err, serializer.ErrDeferred) {
			return nil, err
		}
		return nil, errx.BuildFailed(util.TypeName(typ), err)
	}
	return ser, nil
}

func (b *arrayBuilder) BuildDeferred(typ reflect.Type, _ Session) (serializer.Serializer, error) {
	ser, err := b.compiler.ForDeferred(typ)
	if err != nil {
		return nil, errx.BuildFailed(util.TypeName(typ), err)
	}
	return ser, nil
}

func checkSerializable(typ reflect.Type) error {
	kind := typ.Kind()
	for kind == reflect.Ptr {
		typ = typ.Elem()
		kind = typ.Kind()
	}
	switch kind {
	case reflect.Chan, reflect.Func, reflect.UnsafePointer, reflect.Invalid:
		return errx.BuildFailed(util.TypeName(typ), errx.Sprintf(errx.ErrBuild, "unsupported kind %s", kind))
	default:
		return nil
	}
}
