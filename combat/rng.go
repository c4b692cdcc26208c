package combat

import "math/rand"

// defaultSeed keeps unseeded battles reproducible. Callers that care about
// replay determinism pass their own seed; zero means "any fixed stream".
const defaultSeed int64 = 0x0a755a

// newRNG builds the battle-private random source. Never a process-global
// generator: determinism requires the stream to be owned by the battle and
// threaded through every draw.
func newRNG(seed int64) *rand.Rand {
	if seed == 0 {
		seed = defaultSeed
	}
	return rand.New(rand.NewSource(seed))
}

// variance draws one multiplicative roll uniform in [min, max].
func variance(rng *rand.Rand, min, max float64) float64 {
	return min + rng.Float64()*(max-min)
}
