package randutil

import "math/rand"

// New returns a *rand.Rand seeded deterministically from the provided
// int64. The seed is passed through a splitmix64 finalizer first so that
// nearby seeds (0, 1, 2...) still start well-separated streams; all call
// sites that take a caller-supplied seed go through here.
func New(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(int64(mix(uint64(seed)))))
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
