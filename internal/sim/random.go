package sim

import (
	"fmt"
	"hash/fnv"
	"math/rand/v2"
)

// NewRand returns the simulator's random source for seed. Runs never share
// a generator, so the same seed always replays the same run.
func NewRand(seed int64) *rand.Rand {
	// #nosec G404
	return rand.New(rand.NewPCG(seedWord(seed, "a"), seedWord(seed, "b")))
}

// DeriveSeed mixes a salt into seed, for callers fanning one seed out over many runs.
func DeriveSeed(seed int64, salt string) int64 {
	return int64(seedWord(seed, salt) >> 1)
}

func seedWord(seed int64, salt string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(fmt.Sprintf("%d:%s", seed, salt)))
	return h.Sum64()
}

func roll(rng *rand.Rand, chance float64) bool {
	return chance > 0 && rng.Float64() < chance
}
