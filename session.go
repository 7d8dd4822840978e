package serde

import (
	"reflect"
	"sync"

	"github.com/arklib/serde/serializer"
)

// Session is the caller-owned registry of built serializer instances. The
// provisioning layer only consults and fills it through this interface; it
// never inspects a session or retains one past the provisioning call.
type Session interface {
	// TrySerializer returns the serializer already stored for typ, if any.
	TrySerializer(typ reflect.Type) (serializer.Serializer, bool)

	// StoreSerializer remembers a freshly built serializer for typ.
	StoreSerializer(typ reflect.Type, ser serializer.Serializer)
}

// MemorySession is the in-process Session implementation.
type MemorySession struct {
	mu      sync.RWMutex
	entries map[reflect.Type]serializer.Serializer
}

func NewMemorySession() *MemorySession {
	return &MemorySession{entries: make(map[reflect.Type]serializer.Serializer)}
}

func (s *MemorySession) TrySerializer(typ reflect.Type) (serializer.Serializer, bool) {
	s.mu.RLock()
	ser, ok := s.entries[typ]
	s.mu.RUnlock()
	return ser, ok
}

func (s *MemorySession) StoreSerializer(typ reflect.Type, ser serializer.Serializer) {
	s.mu.Lock()
	s.entries[typ] = ser
	s.mu.Unlock()
}

// Len reports how many serializers the session holds.
func (s *MemorySession) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
