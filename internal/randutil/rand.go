// Package randutil builds the reproducible random sources used by the
// simulator and the cross-check.
package randutil

import rand "math/rand/v2"

const (
	goldenRatio64 = 0x9e3779b97f4a7c15
)

// New returns a *rand.Rand seeded deterministically from the provided int64.
// Every call site derives the two PCG seeds the same way so that a run is
// reproducible from a single number.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// Derive returns the seed for an independent stream, typically one per
// worker. Stream 0 of a seed never equals the seed itself.
func Derive(seed int64, stream int) int64 {
	return int64(mix(uint64(seed) ^ mix(uint64(stream)+1)*goldenRatio64))
}

// Stream is New(Derive(seed, stream)).
func Stream(seed int64, stream int) *rand.Rand {
	return New(Derive(seed, stream))
}

// mix is the splitmix64 finaliser.
func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
