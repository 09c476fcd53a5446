package dodge

import "math/rand"

// Source draws the random values used for spawning.
// *rand.Rand satisfies it; tests substitute a scripted source.
type Source interface {
	// Intn returns a uniform integer in [0, n). n is always > 0.
	Intn(n int) int
}

// NewSource returns a seeded Source. The same seed yields the same spawn sequence.
func NewSource(seed int64) Source {
	return rand.New(rand.NewSource(seed))
}
