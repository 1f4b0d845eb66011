package param

import "sync"

// FloatValue is the provided Float implementation. Set clamps into
// [min,max] and notifies listeners synchronously.
type FloatValue struct {
	mu        sync.Mutex
	name      string
	value     float64
	min, max  float64
	listeners listeners[float64]
}

// NewFloat creates a float parameter with an initial value and range.
func NewFloat(name string, value, min, max float64) *FloatValue {
	p := &FloatValue{name: name, min: min, max: max}
	p.value = p.clamp(value)
	return p
}

func (p *FloatValue) clamp(v float64) float64 {
	if v < p.min {
		return p.min
	}
	if v > p.max {
		return p.max
	}
	return v
}

func (p *FloatValue) Name() string { return p.name }

func (p *FloatValue) Get() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.value
}

func (p *FloatValue) Min() float64 { return p.min }
func (p *FloatValue) Max() float64 { return p.max }

func (p *FloatValue) Set(v float64) {
	p.mu.Lock()
	v = p.clamp(v)
	if v == p.value {
		p.mu.Unlock()
		return
	}
	p.value = v
	p.mu.Unlock()

	for _, fn := range p.listeners.snapshot(&p.mu) {
		fn(v)
	}
}

func (p *FloatValue) OnChange(fn func(float64)) func() {
	return p.listeners.add(&p.mu, fn)
}

// IntValue is the provided Int implementation.
type IntValue struct {
	mu        sync.Mutex
	name      string
	value     int
	min, max  int
	listeners listeners[int]
}

// NewInt creates an integer parameter with an initial value and range.
func NewInt(name string, value, min, max int) *IntValue {
	p := &IntValue{name: name, min: min, max: max}
	p.value = p.clamp(value)
	return p
}

func (p *IntValue) clamp(v int) int {
	if v < p.min {
		return p.min
	}
	if v > p.max {
		return p.max
	}
	return v
}

func (p *IntValue) Name() string { return p.name }

func (p *IntValue) Get() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.value
}

func (p *IntValue) Min() int { return p.min }
func (p *IntValue) Max() int { return p.max }

func (p *IntValue) Set(v int) {
	p.mu.Lock()
	v = p.clamp(v)
	if v == p.value {
		p.mu.Unlock()
		return
	}
	p.value = v
	p.mu.Unlock()

	for _, fn := range p.listeners.snapshot(&p.mu) {
		fn(v)
	}
}

func (p *IntValue) OnChange(fn func(int)) func() {
	return p.listeners.add(&p.mu, fn)
}

// BoolValue is the provided Bool implementation.
type BoolValue struct {
	mu        sync.Mutex
	name      string
	value     bool
	listeners listeners[bool]
}

// NewBool creates a toggle parameter.
func NewBool(name string, value bool) *BoolValue {
	return &BoolValue{name: name, value: value}
}

func (p *BoolValue) Name() string { return p.name }

func (p *BoolValue) Get() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.value
}

func (p *BoolValue) Set(v bool) {
	p.mu.Lock()
	if v == p.value {
		p.mu.Unlock()
		return
	}
	p.value = v
	p.mu.Unlock()

	for _, fn := range p.listeners.snapshot(&p.mu) {
		fn(v)
	}
}

func (p *BoolValue) OnChange(fn func(bool)) func() {
	return p.listeners.add(&p.mu, fn)
}
