package spawn

import (
	"math/rand/v2"
	"time"

	"github.com/ThatOtherAndrew/Snowfall/internal/models"
)

// Initial state ranges for a freshly spawned flake.
const (
	MinVX, MaxVX         = -3.0, 3.0
	MinVY, MaxVY         = 2.0, 6.0
	MinRadius, MaxRadius = 1.0, 6.0
	MinAlpha, MaxAlpha   = 0.1, 0.6
)

type Spawner struct {
	rng *rand.Rand
}

// New returns a spawner drawing from a PCG source seeded with seed. A zero
// seed is replaced with one derived from the current time.
func New(seed uint64) *Spawner {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return NewWithRand(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
}

func NewWithRand(rng *rand.Rand) *Spawner {
	return &Spawner{rng: rng}
}

// Reset gives p a new random position above the surface and a new velocity,
// radius and alpha.
func (s *Spawner) Reset(p *models.Particle, b models.Bounds) {
	p.X = s.between(0, b.Width)
	p.Y = s.between(-b.Height, 0)
	p.VX = s.between(MinVX, MaxVX)
	p.VY = s.between(MinVY, MaxVY)
	p.Radius = s.between(MinRadius, MaxRadius)
	p.Alpha = s.between(MinAlpha, MaxAlpha)
}

// Particle returns a freshly reset flake.
func (s *Spawner) Particle(b models.Bounds) models.Particle {
	var p models.Particle
	s.Reset(&p, b)
	return p
}

func (s *Spawner) between(lo, hi float64) float64 {
	return lo + (hi-lo)*s.rng.Float64()
}
