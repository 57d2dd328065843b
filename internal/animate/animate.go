package animate

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/ThatOtherAndrew/Snowfall/internal/draw"
	"github.com/ThatOtherAndrew/Snowfall/internal/field"
	"github.com/ThatOtherAndrew/Snowfall/internal/logging"
	"github.com/ThatOtherAndrew/Snowfall/internal/models"
	"github.com/ThatOtherAndrew/Snowfall/internal/projection"
	"github.com/ThatOtherAndrew/Snowfall/internal/shaders"
	"github.com/ThatOtherAndrew/Snowfall/internal/spawn"
	"github.com/go-gl/mathgl/mgl32"
)

type State int

const (
	Stopped State = iota
	Running
)

func (s State) String() string {
	switch s {
	case Stopped:
		return "stopped"
	case Running:
		return "running"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Scheduler runs a callback once, before the next display refresh. The
// callback returns true when it drew a frame that should be presented.
type Scheduler interface {
	RequestFrame(fn func() bool)
}

// Renderer turns one frame of flake attributes into pixels.
type Renderer interface {
	Render(f draw.Frame) error
	Close()
}

type Options struct {
	// Spacing is the surface width per flake; zero means field.DefaultSpacing.
	Spacing float64
	// Seed for the flake random source; zero means time-derived.
	Seed uint64
	// RepopulateOnResize recomputes the flake count from the new width.
	RepopulateOnResize bool
	Logger             *slog.Logger
}

type Stats struct {
	Frames    uint64
	Skipped   uint64
	Respawned uint64
}

// Controller owns the field and the renderer and drives one frame per
// scheduler callback while running. All methods must be called from the
// scheduler's thread; the glfw host delivers resize events there too.
type Controller struct {
	scheduler Scheduler
	renderer  Renderer
	field     *field.Field
	logger    *slog.Logger

	state      State
	pending    bool
	width      int
	height     int
	projection mgl32.Mat3
	repopulate bool
	err        error
	stats      Stats
}

// New builds a stopped controller for a surface of the given pixel size.
func New(renderer Renderer, scheduler Scheduler, width, height int, opts Options) (*Controller, error) {
	if renderer == nil {
		return nil, draw.ErrContextUnavailable
	}
	if scheduler == nil {
		return nil, errors.New("animate: nil scheduler")
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Nop()
	}
	width, height = max(width, 0), max(height, 0)

	c := &Controller{
		scheduler:  scheduler,
		renderer:   renderer,
		logger:     logger,
		state:      Stopped,
		width:      width,
		height:     height,
		projection: projection.Pixels(width, height),
		repopulate: opts.RepopulateOnResize,
	}
	c.field = field.New(c.bounds(), opts.Spacing, spawn.New(opts.Seed))
	logger.Debug("snow field created", "flakes", c.field.Len(), "width", width, "height", height)
	return c, nil
}

func (c *Controller) bounds() models.Bounds {
	return models.Bounds{Width: float64(c.width), Height: float64(c.height)}
}

// Play starts the frame loop. It is a no-op when already running.
func (c *Controller) Play() {
	if c.state == Running {
		return
	}
	c.state = Running
	c.logger.Debug("animation playing")
	c.schedule()
}

// Pause stops scheduling further frames. A frame already requested from the
// scheduler fires but draws nothing.
func (c *Controller) Pause() {
	if c.state == Stopped {
		return
	}
	c.state = Stopped
	c.logger.Debug("animation paused")
}

func (c *Controller) Toggle() {
	if c.state == Running {
		c.Pause()
	} else {
		c.Play()
	}
}

func (c *Controller) State() State {
	return c.state
}

// schedule requests a frame unless one is already outstanding, so a quick
// pause and play never starts a second loop.
func (c *Controller) schedule() {
	if c.pending {
		return
	}
	c.pending = true
	c.scheduler.RequestFrame(c.frame)
}

// frame advances and draws one frame. It returns false when nothing reached
// the back buffer, so the host keeps showing the last presented image.
func (c *Controller) frame() bool {
	c.pending = false
	if c.state != Running {
		return false
	}

	c.stats.Respawned += uint64(c.field.Tick())
	err := c.renderer.Render(draw.Frame{
		Attributes: c.field.Attributes(),
		Projection: c.projection,
		Width:      c.width,
		Height:     c.height,
	})
	if err != nil {
		c.stats.Skipped++
		c.err = err
		c.logger.Error("frame skipped", "error", err)

		var compileErr *shaders.CompileError
		var linkErr *shaders.LinkError
		if errors.As(err, &compileErr) || errors.As(err, &linkErr) {
			// Same sources fail the same way every frame.
			c.logger.Warn("stopping animation until the program is fixed")
			c.state = Stopped
			return false
		}
	} else {
		c.stats.Frames++
	}

	if c.state == Running {
		c.schedule()
	}
	return err == nil && c.width > 0 && c.height > 0
}

// OnResize records the new surface size and recomputes the projection. The
// flake count is kept unless RepopulateOnResize was set.
func (c *Controller) OnResize(width, height int) {
	c.width, c.height = max(width, 0), max(height, 0)
	c.projection = projection.Pixels(c.width, c.height)
	c.field.Resize(c.bounds(), c.repopulate)
	c.logger.Debug("surface resized", "width", c.width, "height", c.height, "flakes", c.field.Len())
}

func (c *Controller) Size() (int, int) {
	return c.width, c.height
}

func (c *Controller) Projection() mgl32.Mat3 {
	return c.projection
}

func (c *Controller) Field() *field.Field {
	return c.field
}

// Err returns the error of the last skipped frame.
func (c *Controller) Err() error {
	return c.err
}

func (c *Controller) Stats() Stats {
	return c.stats
}

// Close stops the loop and releases GPU resources.
func (c *Controller) Close() {
	c.Pause()
	c.renderer.Close()
	c.logger.Debug("animation closed",
		"frames", c.stats.Frames,
		"skipped", c.stats.Skipped,
		"respawned", c.stats.Respawned,
	)
}
