package serializer

import "errors"

// ErrDeferred signals that a serializer cannot be compiled eagerly for a
// type (self-referential or mutually-recursive type graphs) and must be
// materialized on first use instead.
var ErrDeferred = errors.New("serializer build deferred")

// Serializer encodes and decodes values of a single logical type. A built
// serializer is immutable and safe for concurrent use.
type Serializer interface {
	Encode(val any) ([]byte, error)
	Decode(data []byte, val any) error
}
