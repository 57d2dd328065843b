package field

import (
	"testing"

	"github.com/ThatOtherAndrew/Snowfall/internal/models"
	"github.com/ThatOtherAndrew/Snowfall/internal/spawn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPopulation(t *testing.T) {
	tests := []struct {
		width float64
		want  int
	}{
		{600, 100},
		{0, 0},
		{5, 0},
		{6, 1},
		{1279, 213},
		{-10, 0},
	}
	for _, tt := range tests {
		f := New(models.Bounds{Width: tt.width, Height: 400}, DefaultSpacing, spawn.New(1))
		assert.Equal(t, tt.want, f.Len(), "width %v", tt.width)
	}
}

func TestNewDefaultsSpacing(t *testing.T) {
	f := New(models.Bounds{Width: 600, Height: 400}, 0, spawn.New(1))
	assert.Equal(t, 100, f.Len())

	f = New(models.Bounds{Width: 600, Height: 400}, 4, spawn.New(1))
	assert.Equal(t, 150, f.Len())
}

func TestAttributesFieldOrder(t *testing.T) {
	f := New(models.Bounds{Width: 0, Height: 0}, DefaultSpacing, spawn.New(1))
	f.particles = []models.Particle{
		{X: 1, Y: 2, Radius: 3, Alpha: 0.4},
		{X: 5, Y: 6, Radius: 7, Alpha: 0.8},
	}

	assert.Equal(t, []float32{1, 2, 3, 0.4, 5, 6, 7, 0.8}, f.Attributes())
}

func TestAttributesEmptyField(t *testing.T) {
	f := New(models.Bounds{}, DefaultSpacing, spawn.New(1))
	assert.Empty(t, f.Attributes())
}

func TestAttributesFollowTick(t *testing.T) {
	b := models.Bounds{Width: 600, Height: 400}
	f := New(b, DefaultSpacing, spawn.New(9))

	before := append([]models.Particle(nil), f.Particles()...)
	f.Tick()

	attrs := f.Attributes()
	require.Len(t, attrs, 4*f.Len())
	for i, p := range f.Particles() {
		moved := before[i]
		moved.X += moved.VX
		moved.Y += moved.VY
		if !moved.OutOfBounds(b) {
			assert.Equal(t, moved, p)
		}
		a := p.Attributes()
		assert.Equal(t, a[:], attrs[i*4:i*4+4])
	}
}

func TestTickDeterministic(t *testing.T) {
	b := models.Bounds{Width: 300, Height: 200}
	a := New(b, DefaultSpacing, spawn.New(5))
	c := New(b, DefaultSpacing, spawn.New(5))
	for range 300 {
		a.Tick()
		c.Tick()
	}
	assert.Equal(t, a.Particles(), c.Particles())
}

func TestTickKeepsFlakesAboveBottom(t *testing.T) {
	b := models.Bounds{Width: 300, Height: 200}
	f := New(b, DefaultSpacing, spawn.New(11))
	respawned := 0
	for range 1000 {
		respawned += f.Tick()
		for _, p := range f.Particles() {
			require.LessOrEqual(t, p.Y+p.Radius, b.Height)
		}
	}
	assert.Positive(t, respawned)
	assert.Equal(t, 50, f.Len())
}

func TestResize(t *testing.T) {
	f := New(models.Bounds{Width: 600, Height: 400}, DefaultSpacing, spawn.New(2))

	f.Resize(models.Bounds{Width: 1200, Height: 800}, false)
	assert.Equal(t, 100, f.Len())
	assert.Equal(t, models.Bounds{Width: 1200, Height: 800}, f.Bounds())

	f.Resize(models.Bounds{Width: 1200, Height: 800}, true)
	assert.Equal(t, 200, f.Len())

	f.Resize(models.Bounds{Width: 60, Height: 800}, true)
	assert.Equal(t, 10, f.Len())

	f.Resize(models.Bounds{}, true)
	assert.Zero(t, f.Len())
}
