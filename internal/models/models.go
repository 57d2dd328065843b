package models

// AttributesPerParticle is the number of float32 values uploaded per flake:
// x, y, radius, alpha.
const AttributesPerParticle = 4

// Bounds is the drawable surface size in pixels.
type Bounds struct {
	Width, Height float64
}

// Particle is one snowflake. Position is in surface pixels, velocity in
// pixels per tick.
type Particle struct {
	X, Y   float64
	VX, VY float64
	Radius float64
	Alpha  float64
}

// Attributes returns the vertex shader input for this flake.
func (p *Particle) Attributes() [AttributesPerParticle]float32 {
	return [AttributesPerParticle]float32{
		float32(p.X),
		float32(p.Y),
		float32(p.Radius),
		float32(p.Alpha),
	}
}

// OutOfBounds reports whether the flake has crossed the right or bottom edge.
func (p *Particle) OutOfBounds(b Bounds) bool {
	return p.X+p.Radius > b.Width || p.Y+p.Radius > b.Height
}
