package update

import (
	"github.com/ThatOtherAndrew/Snowfall/internal/models"
)

// Resetter gives a particle a fresh random state within the bounds.
type Resetter interface {
	Reset(p *models.Particle, b models.Bounds)
}

type Updater struct {
	resetter Resetter
}

func New(resetter Resetter) *Updater {
	return &Updater{resetter: resetter}
}

// UpdateParticle advances p by one tick. A flake that leaves through the
// right or bottom edge is respawned above the surface instead of wrapping.
// It reports whether a respawn happened.
func (u *Updater) UpdateParticle(p *models.Particle, b models.Bounds) bool {
	p.X += p.VX
	p.Y += p.VY

	if p.OutOfBounds(b) {
		u.resetter.Reset(p, b)
		return true
	}
	return false
}

// UpdateParticles advances every particle in order and returns the number
// of respawns.
func (u *Updater) UpdateParticles(particles []models.Particle, b models.Bounds) int {
	respawned := 0
	for i := range particles {
		if u.UpdateParticle(&particles[i], b) {
			respawned++
		}
	}
	return respawned
}
