package rng

import (
	"math"
	"math/bits"
	"sync"

	"gonum.org/v1/gonum/mathext/prng"
)

const (
	wyIncrement = 0xA0761D6478BD642F
	wyMix       = 0xE7037ED1A0B428DB

	// exponent bits of 1.0; OR-ing 52 mantissa bits yields a value in [1,2)
	oneBits = 0x3FF0000000000000
)

// Sampler emits independent uniform draws in [0,1).
type Sampler interface {
	Float64() float64
}

// Rng is a seedable wyrand-style generator. It is not safe for concurrent use.
type Rng struct {
	state uint64
}

// New creates a generator with the given seed
func New(seed uint64) *Rng {
	return &Rng{state: seed}
}

// Seed resets the generator state
func (r *Rng) Seed(seed uint64) {
	r.state = seed
}

// Uint64 returns the next 64 random bits
func (r *Rng) Uint64() uint64 {
	r.state += wyIncrement
	hi, lo := bits.Mul64(r.state, r.state^wyMix)
	return hi ^ lo
}

// Float64 returns a uniform draw in [0,1)
func (r *Rng) Float64() float64 {
	return unitFloat(r.Uint64())
}

// unitFloat maps the top 52 bits of u onto [0,1).
func unitFloat(u uint64) float64 {
	return math.Float64frombits(oneBits|u>>12) - 1
}

// MT19937 adapts gonum's 64-bit Mersenne Twister to a Sampler.
type MT19937 struct {
	src *prng.MT19937
}

// NewMT19937 creates a Mersenne Twister sampler seeded with seed
func NewMT19937(seed uint64) *MT19937 {
	src := prng.NewMT19937()
	src.Seed(seed)
	return &MT19937{src: src}
}

// Seed reseeds the underlying stream
func (m *MT19937) Seed(seed uint64) {
	m.src.Seed(seed)
}

// Uint64 returns the next 64 random bits
func (m *MT19937) Uint64() uint64 {
	return m.src.Uint64()
}

// Float64 returns a uniform draw in [0,1)
func (m *MT19937) Float64() float64 {
	return unitFloat(m.src.Uint64())
}

// Locked serializes draws from a shared sampler.
type Locked struct {
	mu      sync.Mutex
	sampler Sampler
}

// NewLocked wraps s for use from multiple goroutines. Draw order across
// goroutines is whatever the scheduler produces, so results are only
// reproducible when a single goroutine draws at a time.
func NewLocked(s Sampler) *Locked {
	return &Locked{sampler: s}
}

// Float64 returns a uniform draw in [0,1)
func (l *Locked) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.sampler.Float64()
}
