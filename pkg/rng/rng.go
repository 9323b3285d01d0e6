// Package rng provides the seeded pseudo-random stream every generation
// stage draws from. Identical seeds give identical streams on every
// platform.
package rng

import (
	"encoding/json"
	"hash/fnv"
	"math"
)

// Rand is a mulberry32 generator. It is not safe for concurrent use.
type Rand struct {
	state uint32
}

// New returns a generator seeded with seed.
func New(seed uint32) *Rand {
	return &Rand{state: seed}
}

// Uint32 returns the next 32 bits of the stream.
func (r *Rand) Uint32() uint32 {
	r.state += 0x6D2B79F5
	z := r.state
	z = (z ^ (z >> 15)) * (z | 1)
	z ^= z + (z^(z>>7))*(z|61)
	return z ^ (z >> 14)
}

// Float64 returns a value in [0, 1).
func (r *Rand) Float64() float64 {
	return float64(r.Uint32()) / 4294967296.0
}

// Range returns a value in [lo, hi). If hi <= lo it returns lo.
func (r *Rand) Range(lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + r.Float64()*(hi-lo)
}

// Intn returns a value in [0, n). n <= 0 returns 0.
func (r *Rand) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(math.Floor(r.Float64() * float64(n)))
}

// IntRange returns an integer in [lo, hi], inclusive on both ends.
func (r *Rand) IntRange(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + r.Intn(hi-lo+1)
}

// Source returns a math/rand Source64 view of the same stream, for
// samplers that take a *rand.Rand. Seeding the view reseeds r.
func (r *Rand) Source() *Source {
	return &Source{r: r}
}

// Source adapts Rand to math/rand.Source64.
type Source struct {
	r *Rand
}

// Int63 returns a non-negative 63-bit value.
func (s *Source) Int63() int64 {
	return int64(s.Uint64() >> 1)
}

// Uint64 joins two 32-bit draws.
func (s *Source) Uint64() uint64 {
	hi := uint64(s.r.Uint32())
	lo := uint64(s.r.Uint32())
	return hi<<32 | lo
}

// Seed resets the underlying stream.
func (s *Source) Seed(seed int64) {
	s.r.state = uint32(seed)
}

// SeedFromString hashes s with 32-bit FNV-1a.
func SeedFromString(s string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(s))
	return h.Sum32()
}

// DeriveSeed returns the seed for a run. A non-empty explicit seed is hashed
// directly; otherwise payload is serialized to JSON and hashed, so the same
// inputs always give the same seed.
func DeriveSeed(explicit string, payload any) (uint32, error) {
	if explicit != "" {
		return SeedFromString(explicit), nil
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return 0, err
	}
	return SeedFromString(string(b)), nil
}
