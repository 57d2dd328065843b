package window

import (
	"context"
	"fmt"
	"time"

	"github.com/ThatOtherAndrew/Snowfall/internal/animate"
	"github.com/ThatOtherAndrew/Snowfall/internal/draw"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// idleWait bounds how long Run blocks for events while nothing is animating,
// so context cancellation is noticed.
const idleWait = 250 * time.Millisecond

type Options struct {
	Width, Height int
	Title         string
	VSync         bool
	Transparent   bool
}

// Window is a glfw window with a current OpenGL 4.1 core context. It
// schedules frame callbacks and forwards resize and key events; all of them
// run on the thread that calls Run.
type Window struct {
	glfw   *glfw.Window
	frames animate.FrameQueue
	resize []func(width, height int)
	keys   []func(key glfw.Key)
}

// New must be called from the main, OS-locked goroutine.
func New(opts Options) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("%w: %v", draw.ErrContextUnavailable, err)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.True)
	if opts.Transparent {
		glfw.WindowHint(glfw.TransparentFramebuffer, glfw.True)
	}

	title := opts.Title
	if title == "" {
		title = "Snowfall"
	}
	win, err := glfw.CreateWindow(opts.Width, opts.Height, title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("%w: %v", draw.ErrContextUnavailable, err)
	}
	win.MakeContextCurrent()
	if opts.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	w := &Window{glfw: win}
	win.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		for _, fn := range w.resize {
			fn(width, height)
		}
	})
	win.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if action != glfw.Press {
			return
		}
		for _, fn := range w.keys {
			fn(key)
		}
	})
	return w, nil
}

// GetSize returns the framebuffer size in pixels.
func (w *Window) GetSize() (int, int) {
	return w.glfw.GetFramebufferSize()
}

func (w *Window) OnResize(fn func(width, height int)) {
	w.resize = append(w.resize, fn)
}

func (w *Window) OnKey(fn func(key glfw.Key)) {
	w.keys = append(w.keys, fn)
}

// RequestFrame runs fn once before the next buffer swap. The buffers are
// swapped only if fn reports that it drew.
func (w *Window) RequestFrame(fn func() bool) {
	w.frames.RequestFrame(fn)
}

func (w *Window) ShouldClose() bool {
	return w.glfw.ShouldClose()
}

func (w *Window) Close() {
	w.glfw.SetShouldClose(true)
}

// Run polls events and runs queued frames until the window is closed or ctx
// is done. With nothing queued it blocks for events instead of spinning.
func (w *Window) Run(ctx context.Context) {
	for !w.glfw.ShouldClose() {
		if ctx.Err() != nil {
			return
		}
		if w.frames.Len() == 0 {
			glfw.WaitEventsTimeout(idleWait.Seconds())
		} else {
			glfw.PollEvents()
		}
		if w.frames.Flush() {
			w.glfw.SwapBuffers()
		}
	}
}

func (w *Window) Destroy() {
	w.glfw.Destroy()
	glfw.Terminate()
}
