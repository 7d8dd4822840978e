package serializer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"sync"
)

var jsonNull = []byte("null")

// Array is the positional-layout serializer compiler. A struct is encoded
// as a JSON array holding its exported fields in declaration order; nested
// struct fields recurse into their own positional plans, everything else
// goes through the standard encoder as-is.
//
// Plans are compiled once per type and shared. For refuses self-referential
// type graphs with ErrDeferred; ForDeferred compiles them with in-place
// plan references and is meant to run behind a Lazy adapter on first use.
type Array struct {
	mu    sync.Mutex
	plans map[reflect.Type]*arrayCodec
}

func NewArray() *Array {
	return &Array{plans: make(map[reflect.Type]*arrayCodec)}
}

func (a *Array) For(typ reflect.Type) (Serializer, error) {
	return a.compileRoot(typ, false)
}

func (a *Array) ForDeferred(typ reflect.Type) (Serializer, error) {
	return a.compileRoot(typ, true)
}

func (a *Array) compileRoot(typ reflect.Type, allowCycle bool) (Serializer, error) {
	elem := typ
	for elem.Kind() == reflect.Ptr {
		elem = elem.Elem()
	}
	if elem.Kind() != reflect.Struct {
		return nil, fmt.Errorf("array layout requires a struct type, got %s", typ)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	st := &compileState{
		allowCycle: allowCycle,
		inProgress: make(map[reflect.Type]*arrayCodec),
		done:       make(map[reflect.Type]*arrayCodec),
	}
	codec, err := a.compile(elem, st)
	if err != nil {
		return nil, err
	}

	// Commit only fully compiled plans, so a strict compile aborted by
	// ErrDeferred leaves no partial state behind.
	for t, c := range st.done {
		a.plans[t] = c
	}
	return &arraySerializer{codec: codec}, nil
}

type compileState struct {
	allowCycle bool
	inProgress map[reflect.Type]*arrayCodec
	done       map[reflect.Type]*arrayCodec
}

func (a *Array) compile(typ reflect.Type, st *compileState) (*arrayCodec, error) {
	if c, ok := a.plans[typ]; ok {
		return c, nil
	}
	if c, ok := st.done[typ]; ok {
		return c, nil
	}
	if shell, ok := st.inProgress[typ]; ok {
		if !st.allowCycle {
			return nil, ErrDeferred
		}
		// The shell's fields are filled before compileRoot returns, and
		// nothing encodes through it until then.
		return shell, nil
	}

	shell := &arrayCodec{typ: typ}
	st.inProgress[typ] = shell

	var fields []arrayField
	for i := 0; i < typ.NumField(); i++ {
		sf := typ.Field(i)
		if !sf.IsExported() {
			continue
		}
		if tag, _, _ := strings.Cut(sf.Tag.Get("json"), ","); tag == "-" {
			continue
		}

		field := arrayField{index: i, name: sf.Name}
		ft := sf.Type
		if ft.Kind() == reflect.Ptr && ft.Elem().Kind() == reflect.Struct {
			field.ptr = true
			ft = ft.Elem()
		}
		switch ft.Kind() {
		case reflect.Chan, reflect.Func, reflect.UnsafePointer:
			return nil, fmt.Errorf("array layout: unsupported field %s.%s of kind %s", typ, sf.Name, ft.Kind())
		case reflect.Struct:
			if !ft.Implements(jsonMarshalerType) {
				sub, err := a.compile(ft, st)
				if err != nil {
					return nil, err
				}
				field.codec = sub
			}
		}
		fields = append(fields, field)
	}

	shell.fields = fields
	delete(st.inProgress, typ)
	st.done[typ] = shell
	return shell, nil
}

var jsonMarshalerType = reflect.TypeOf((*json.Marshaler)(nil)).Elem()

type arrayCodec struct {
	typ    reflect.Type
	fields []arrayField
}

type arrayField struct {
	index int
	name  string
	codec *arrayCodec // set for struct-typed fields using positional layout
	ptr   bool
}

func (c *arrayCodec) pack(v reflect.Value) ([]any, error) {
	out := make([]any, len(c.fields))
	for i, f := range c.fields {
		fv := v.Field(f.index)
		switch {
		case f.codec == nil:
			out[i] = fv.Interface()
		case f.ptr:
			if fv.IsNil() {
				out[i] = nil
				continue
			}
			packed, err := f.codec.pack(fv.Elem())
			if err != nil {
				return nil, err
			}
			out[i] = packed
		default:
			packed, err := f.codec.pack(fv)
			if err != nil {
				return nil, err
			}
			out[i] = packed
		}
	}
	return out, nil
}

func (c *arrayCodec) unpack(data []byte, v reflect.Value) error {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return err
	}
	if len(raws) != len(c.fields) {
		return fmt.Errorf("array layout: %s expects %d elements, got %d", c.typ, len(c.fields), len(raws))
	}

	for i, f := range c.fields {
		fv := v.Field(f.index)
		raw := raws[i]
		switch {
		case f.codec == nil:
			if err := json.Unmarshal(raw, fv.Addr().Interface()); err != nil {
				return fmt.Errorf("array layout: field %s.%s: %w", c.typ, f.name, err)
			}
		case f.ptr:
			if bytes.Equal(bytes.TrimSpace(raw), jsonNull) {
				fv.Set(reflect.Zero(fv.Type()))
				continue
			}
			if fv.IsNil() {
				fv.Set(reflect.New(fv.Type().Elem()))
			}
			if err := f.codec.unpack(raw, fv.Elem()); err != nil {
				return err
			}
		default:
			if err := f.codec.unpack(raw, fv); err != nil {
				return err
			}
		}
	}
	return nil
}

type arraySerializer struct {
	codec *arrayCodec
}

func (s *arraySerializer) Encode(val any) ([]byte, error) {
	rv := reflect.ValueOf(val)
	for rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return nil, fmt.Errorf("array layout: encode nil %s", rv.Type())
		}
		rv = rv.Elem()
	}
	if rv.Type() != s.codec.typ {
		return nil, fmt.Errorf("array layout: expect %s, got %s", s.codec.typ, rv.Type())
	}
	packed, err := s.codec.pack(rv)
	if err != nil {
		return nil, err
	}
	return json.Marshal(packed)
}

func (s *arraySerializer) Decode(data []byte, val any) error {
	rv := reflect.ValueOf(val)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Errorf("array layout: decode target must be a non-nil pointer")
	}
	rv = rv.Elem()
	for rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			rv.Set(reflect.New(rv.Type().Elem()))
		}
		rv = rv.Elem()
	}
	if rv.Type() != s.codec.typ {
		return fmt.Errorf("array layout: expect *%s, got target of %s", s.codec.typ, rv.Type())
	}
	return s.codec.unpack(data, rv)
}
