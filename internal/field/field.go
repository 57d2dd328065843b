package field

import (
	"math"

	"github.com/ThatOtherAndrew/Snowfall/internal/models"
	"github.com/ThatOtherAndrew/Snowfall/internal/spawn"
	"github.com/ThatOtherAndrew/Snowfall/internal/update"
)

// DefaultSpacing is the surface width in pixels allotted to each flake.
const DefaultSpacing = 6

// Field owns the flakes of one snowfall and advances them in place.
type Field struct {
	particles []models.Particle
	bounds    models.Bounds
	spacing   float64
	spawner   *spawn.Spawner
	updater   *update.Updater
	flat      []float32
}

// New populates floor(bounds.Width/spacing) freshly spawned flakes. A
// non-positive spacing falls back to DefaultSpacing.
func New(bounds models.Bounds, spacing float64, spawner *spawn.Spawner) *Field {
	if spacing <= 0 {
		spacing = DefaultSpacing
	}
	f := &Field{
		bounds:  bounds,
		spacing: spacing,
		spawner: spawner,
		updater: update.New(spawner),
	}
	f.populate(Count(bounds.Width, spacing))
	return f
}

// Count is the number of flakes for a surface of the given width.
func Count(width, spacing float64) int {
	if width <= 0 || spacing <= 0 {
		return 0
	}
	return int(math.Floor(width / spacing))
}

func (f *Field) populate(n int) {
	if n < len(f.particles) {
		f.particles = f.particles[:n]
		return
	}
	for len(f.particles) < n {
		f.particles = append(f.particles, f.spawner.Particle(f.bounds))
	}
}

// Tick updates every flake once in field order and returns how many were
// respawned.
func (f *Field) Tick() int {
	return f.updater.UpdateParticles(f.particles, f.bounds)
}

// Attributes flattens the field into x, y, radius, alpha per flake. The
// returned slice is reused by the next call.
func (f *Field) Attributes() []float32 {
	n := len(f.particles) * models.AttributesPerParticle
	if cap(f.flat) < n {
		f.flat = make([]float32, n)
	}
	f.flat = f.flat[:n]
	for i := range f.particles {
		a := f.particles[i].Attributes()
		copy(f.flat[i*models.AttributesPerParticle:], a[:])
	}
	return f.flat
}

// Resize updates the bounds flakes move within. The flake count is only
// recomputed when repopulate is set.
func (f *Field) Resize(bounds models.Bounds, repopulate bool) {
	f.bounds = bounds
	if repopulate {
		f.populate(Count(bounds.Width, f.spacing))
	}
}

func (f *Field) Len() int {
	return len(f.particles)
}

func (f *Field) Bounds() models.Bounds {
	return f.bounds
}

// Particles exposes the flakes for inspection. Callers must not retain it
// across ticks.
func (f *Field) Particles() []models.Particle {
	return f.particles
}
