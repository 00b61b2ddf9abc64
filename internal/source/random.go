package source

import (
	"math/rand"
	"sync"
)

// Random draws every field uniformly across its full declared width. It
// stands in for live data on a bench with no message bus.
type Random struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewRandom creates a Random source with its own seeded generator, so runs
// are reproducible given the seed.
func NewRandom(seed int64) *Random {
	return &Random{rnd: rand.New(rand.NewSource(seed))}
}

// Vector returns three fresh 12-bit values.
func (r *Random) Vector() (x, y, theta uint16) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return uint16(r.rnd.Intn(1 << VectorBits)),
		uint16(r.rnd.Intn(1 << VectorBits)),
		uint16(r.rnd.Intn(1 << VectorBits))
}

// Calibration returns a fresh 13-bit value.
func (r *Random) Calibration() uint16 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return uint16(r.rnd.Intn(1 << CalibrationBits))
}

// Command returns a fresh 5-bit value.
func (r *Random) Command() uint8 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return uint8(r.rnd.Intn(1 << CommandBits))
}
