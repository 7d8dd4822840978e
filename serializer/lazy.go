package serializer

import "sync"

// Lazy defers a serializer build to its first use. The build runs at most
// once per adapter instance; its outcome, success or failure, is memoized.
type Lazy struct {
	once  sync.Once
	build func() (Serializer, error)
	ser   Serializer
	err   error
}

func NewLazy(build func() (Serializer, error)) *Lazy {
	return &Lazy{build: build}
}

func (l *Lazy) materialize() (Serializer, error) {
	l.once.Do(func() {
		l.ser, l.err = l.build()
		l.build = nil
	})
	return l.ser, l.err
}

func (l *Lazy) Encode(val any) ([]byte, error) {
	ser, err := l.materialize()
	if err != nil {
		return nil, err
	}
	return ser.Encode(val)
}

func (l *Lazy) Decode(data []byte, val any) error {
	ser, err := l.materialize()
	if err != nil {
		return err
	}
	return ser.Decode(data, val)
}
