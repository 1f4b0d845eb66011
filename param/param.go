// Package param defines the typed, observable parameters that encoder slots
// bind to, and provides ready-made implementations of them.
//
// The binding layer only depends on the Float, Int and Bool interfaces, so a
// host application with its own parameter system can satisfy them directly.
// Listeners are invoked synchronously on whichever goroutine mutates the
// parameter.
package param

import (
	"sync"

	"github.com/google/uuid"
)

// Param is the common surface of every bindable parameter. Concrete kind is
// resolved by type-switching on Float, Int or Bool.
type Param interface {
	Name() string
}

// Float is a bounded float parameter.
type Float interface {
	Param
	Get() float64
	Set(float64)
	Min() float64
	Max() float64
	// OnChange registers fn to run synchronously on every value change and
	// returns a function that removes the registration.
	OnChange(fn func(float64)) (remove func())
}

// Int is a bounded integer parameter.
type Int interface {
	Param
	Get() int
	Set(int)
	Min() int
	Max() int
	OnChange(fn func(int)) (remove func())
}

// Bool is a toggle parameter.
type Bool interface {
	Param
	Get() bool
	Set(bool)
	OnChange(fn func(bool)) (remove func())
}

// Group is an ordered collection of parameters. Order matters: slot 0 binds
// to the first entry, slot 1 to the second, and so on.
type Group []Param

// NewGroup builds a group from params in binding order.
func NewGroup(params ...Param) Group {
	return Group(params)
}

// listeners is a uuid-keyed registry of change callbacks.
type listeners[T any] struct {
	fns map[string]func(T)
}

func (l *listeners[T]) add(mu *sync.Mutex, fn func(T)) func() {
	mu.Lock()
	defer mu.Unlock()

	if l.fns == nil {
		l.fns = make(map[string]func(T))
	}
	id := uuid.New().String()
	l.fns[id] = fn

	return func() {
		mu.Lock()
		defer mu.Unlock()
		delete(l.fns, id)
	}
}

// snapshot copies the registered callbacks so they can be invoked outside
// the lock. A listener that mutates another parameter must not deadlock.
func (l *listeners[T]) snapshot(mu *sync.Mutex) []func(T) {
	mu.Lock()
	defer mu.Unlock()

	out := make([]func(T), 0, len(l.fns))
	for _, fn := range l.fns {
		out = append(out, fn)
	}
	return out
}
