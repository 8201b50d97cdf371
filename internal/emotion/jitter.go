package emotion

import (
	"hash/fnv"
	"math/rand/v2"
	"sync"

	"archiveheart/internal/track"
)

// Jitter places a track inside its energy band. Fraction must return a
// value in [0, 1).
type Jitter interface {
	Fraction(t track.Track) float64
}

// RandomJitter draws a uniform fraction for every call, so the same track
// may land on different energy levels across runs.
type RandomJitter struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomJitter returns a jitter backed by the runtime's random source.
func NewRandomJitter() *RandomJitter {
	return &RandomJitter{}
}

// NewSeededJitter returns a reproducible random jitter.
func NewSeededJitter(seed uint64) *RandomJitter {
	return &RandomJitter{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (j *RandomJitter) Fraction(track.Track) float64 {
	if j.rng == nil {
		return rand.Float64()
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.rng.Float64()
}

// HashJitter derives the fraction from the track identity, which keeps
// classification fully reproducible.
type HashJitter struct{}

func (HashJitter) Fraction(t track.Track) float64 {
	h := fnv.New64a()
	h.Write([]byte(t.Key()))
	return float64(h.Sum64()>>11) / (1 << 53)
}
