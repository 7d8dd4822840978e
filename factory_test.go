package serde

import (
	"reflect"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arklib/serde/errx"
	"github.com/arklib/serde/serializer"
)

type user struct {
	ID    int64
	Name  string
	Tags  []string
	Note  *string
	Extra string `json:"-"`
}

type node struct {
	Val  int
	Next *node
}

func newProvider(t *testing.T, c *Config) *Provider {
	t.Helper()
	p, err := New(c)
	require.NoError(t, err)
	return p
}

// countingSession tracks registry traffic on top of MemorySession.
type countingSession struct {
	*MemorySession
	hits   atomic.Int32
	stores atomic.Int32
}

func newCountingSession() *countingSession {
	return &countingSession{MemorySession: NewMemorySession()}
}

func (s *countingSession) TrySerializer(typ reflect.Type) (serializer.Serializer, bool) {
	ser, ok := s.MemorySession.TrySerializer(typ)
	if ok {
		s.hits.Add(1)
	}
	return ser, ok
}

func (s *countingSession) StoreSerializer(typ reflect.Type, ser serializer.Serializer) {
	s.stores.Add(1)
	s.MemorySession.StoreSerializer(typ, ser)
}

// countingBuilder wraps a DeferredBuilder and counts both build paths.
type countingBuilder struct {
	inner    DeferredBuilder
	builds   atomic.Int32
	deferred atomic.Int32
}

func (b *countingBuilder) Build(typ reflect.Type, s Session) (serializer.Serializer, error) {
	b.builds.Add(1)
	return b.inner.Build(typ, s)
}

func (b *countingBuilder) BuildDeferred(typ reflect.Type, s Session) (serializer.Serializer, error) {
	b.deferred.Add(1)
	return b.inner.BuildDeferred(typ, s)
}

func TestCreateTypedRoundTrip(t *testing.T) {
	note := "hello"
	in := user{ID: 7, Name: "amy", Tags: []string{"x", "y"}, Note: &note}

	configs := map[string]*Config{
		"array":   {Engine: EngineStandard, Layout: LayoutArray},
		"map":     {Engine: EngineStandard, Layout: LayoutMap},
		"codegen": {Engine: EngineCodegen},
	}

	for name, c := range configs {
		t.Run(name, func(t *testing.T) {
			p := newProvider(t, c).WithEnv(Env{Codegen: name == "codegen"})

			ser, err := CreateTyped[user](p, NewMemorySession())
			require.NoError(t, err)
			require.NotNil(t, ser)

			data, err := ser.Encode(&in)
			require.NoError(t, err)

			var out user
			require.NoError(t, ser.Decode(data, &out))
			assert.Equal(t, in, out)
		})
	}
}

func TestCreateTypedNilSession(t *testing.T) {
	p := newProvider(t, nil)

	_, err := CreateTyped[user](p, nil)
	require.ErrorIs(t, err, errx.ErrNilArgument)
	assert.Contains(t, err.Error(), "session")
}

func TestCreateTypedBuildErrorPassesThrough(t *testing.T) {
	p := newProvider(t, &Config{Engine: EngineStandard, Layout: LayoutMap})

	_, err := CreateTyped[chan int](p, NewMemorySession())
	require.ErrorIs(t, err, errx.ErrBuild)
	assert.Contains(t, err.Error(), "chan")
}

func TestGetTypedSessionMemoization(t *testing.T) {
	p := newProvider(t, &Config{Engine: EngineStandard, Layout: LayoutMap})
	session := newCountingSession()

	first, err := GetTyped[user](p, session)
	require.NoError(t, err)
	assert.Equal(t, int32(1), session.stores.Load())

	second, err := GetTyped[user](p, session)
	require.NoError(t, err)
	assert.Equal(t, int32(1), session.stores.Load(), "hit must not rebuild")
	assert.Equal(t, int32(1), session.hits.Load())
	assert.Same(t, first.Erased(), second.Erased())
}

func TestCreateTypedSelfReferentialDefers(t *testing.T) {
	p := newProvider(t, &Config{Engine: EngineStandard, Layout: LayoutArray})

	counter := &countingBuilder{inner: p.builders[StrategyArray].(DeferredBuilder)}
	p.WithBuilder(StrategyArray, counter)

	ser, err := CreateTyped[node](p, NewMemorySession())
	require.NoError(t, err)
	require.NotNil(t, ser)
	assert.Equal(t, int32(0), counter.deferred.Load(), "build must wait for first use")

	in := node{Val: 1, Next: &node{Val: 2, Next: &node{Val: 3}}}
	data, err := ser.Encode(&in)
	require.NoError(t, err)
	assert.Equal(t, int32(1), counter.deferred.Load())

	var out node
	require.NoError(t, ser.Decode(data, &out))
	assert.Equal(t, in, out)
	assert.Equal(t, int32(1), counter.deferred.Load(), "deferred build runs exactly once")
}

func TestRegisterBypassesReflectFallback(t *testing.T) {
	p := newProvider(t, &Config{Engine: EngineStandard, Layout: LayoutMap})
	Register[user](p)

	_, ok := p.registered.Load(reflect.TypeOf((*user)(nil)).Elem())
	require.True(t, ok)

	ser, err := p.CreateUntyped(reflect.TypeOf((*user)(nil)).Elem(), NewMemorySession())
	require.NoError(t, err)
	require.NotNil(t, ser)
}

func TestOnBuildHook(t *testing.T) {
	p := newProvider(t, &Config{Engine: EngineStandard, Layout: LayoutMap})

	var events []BuildEvent
	p.OnBuild(func(ev *BuildEvent) error {
		events = append(events, *ev)
		return nil
	})

	_, err := CreateTyped[user](p, NewMemorySession())
	require.NoError(t, err)

	require.Len(t, events, 1)
	assert.Equal(t, StrategyMap, events[0].Strategy)
	assert.Equal(t, reflect.TypeOf((*user)(nil)).Elem(), events[0].Type)
	assert.NoError(t, events[0].Err)
}
