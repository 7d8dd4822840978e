package hook

import (
	"log"

	"github.com/samber/lo"
)

type (
	Next               func() error
	Handler[Data any]  func(*Data, Next) error
	Observer[Data any] func(*Data) error

	// Hook is an ordered set of named handlers around an event, plus
	// plain observers that run after the chain completes. Handler order
	// follows the name order given to Define, not registration order.
	Hook[Data any] struct {
		names []string
		funcs map[string]Handler[Data]

		handlers  []Handler[Data]
		observers []Observer[Data]
	}
)

func Define[Data any](names ...string) *Hook[Data] {
	return &Hook[Data]{
		names: names,
		funcs: make(map[string]Handler[Data]),
	}
}

func (h *Hook[Data]) Observe(observers ...Observer[Data]) *Hook[Data] {
	h.observers = append(h.observers, observers...)
	return h
}

func (h *Hook[Data]) Add(name string, handler Handler[Data]) {
	if !lo.Contains(h.names, name) {
		log.Fatal("hook handler name is undefined")
	}
	h.funcs[name] = handler

	var handlers []Handler[Data]
	for _, n := range h.names {
		fn, ok := h.funcs[n]
		if !ok {
			continue
		}
		handlers = append(handlers, fn)
	}
	h.handlers = handlers
}

func (h *Hook[Data]) Emit(data *Data) error {
	var next Next
	index := 0
	next = func() error {
		if index == len(h.handlers) {
			return nil
		}
		handler := h.handlers[index]
		index++
		return handler(data, next)
	}

	if err := next(); err != nil {
		return err
	}

	for _, observer := range h.observers {
		if err := observer(data); err != nil {
			return err
		}
	}
	return nil
}
