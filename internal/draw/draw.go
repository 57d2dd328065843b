package draw

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/ThatOtherAndrew/Snowfall/internal/logging"
	"github.com/ThatOtherAndrew/Snowfall/internal/models"
	"github.com/ThatOtherAndrew/Snowfall/internal/shaders"
	"github.com/go-gl/mathgl/mgl32"
)

// ErrContextUnavailable is returned when the host surface could not provide
// a GPU context.
var ErrContextUnavailable = errors.New("gpu context unavailable")

// GPU is the slice of an OpenGL-style context the snow pipeline needs.
type GPU interface {
	shaders.Compiler
	shaders.Linker

	UseProgram(program uint32)
	AttribLocation(program uint32, name string) int32
	UniformLocation(program uint32, name string) int32

	CreateVertexArray() uint32
	BindVertexArray(vao uint32)
	DeleteVertexArray(vao uint32)
	CreateBuffer() uint32
	BindBuffer(buffer uint32)
	BufferData(data []float32)
	DeleteBuffer(buffer uint32)
	EnableVertexAttribArray(location uint32)
	VertexAttribPointer(location uint32, components int32)

	UniformMatrix3(location int32, m mgl32.Mat3)
	Viewport(width, height int32)
	ClearColor(r, g, b, a float32)
	Clear()
	EnableAlphaBlending()
	EnableProgramPointSize()
	DrawPoints(count int32)
}

// Frame is everything needed to draw one frame of flakes.
type Frame struct {
	Attributes    []float32
	Projection    mgl32.Mat3
	Width, Height int
}

// Pipeline draws the whole field with a single point-list draw call. The
// program is compiled and linked once, on first use, and its locations are
// cached for every later frame.
type Pipeline struct {
	gpu     GPU
	sources shaders.Sources
	logger  *slog.Logger

	program   uint32
	vao       uint32
	vbo       uint32
	attribLoc int32
	projLoc   int32
	ready     bool
	err       error
	closed    bool
	lastDrawn int
}

func New(gpu GPU, sources shaders.Sources, logger *slog.Logger) (*Pipeline, error) {
	if gpu == nil {
		return nil, ErrContextUnavailable
	}
	if logger == nil {
		logger = logging.Nop()
	}
	return &Pipeline{
		gpu:       gpu,
		sources:   sources,
		logger:    logger,
		attribLoc: -1,
		projLoc:   -1,
	}, nil
}

// Init compiles and links the program and creates the vertex buffer. A
// failure is remembered: shader sources do not change, so later calls
// return the same error without touching the GPU again.
func (p *Pipeline) Init() error {
	if p.ready {
		return nil
	}
	if p.err != nil {
		return p.err
	}
	if p.closed {
		return errors.New("pipeline is closed")
	}
	if err := p.init(); err != nil {
		p.err = err
		return err
	}
	p.ready = true
	return nil
}

func (p *Pipeline) init() error {
	vertShader, err := p.Compile(shaders.Vertex, p.sources.Vertex)
	if err != nil {
		return err
	}
	defer p.gpu.DeleteShader(vertShader)

	fragShader, err := p.Compile(shaders.Fragment, p.sources.Fragment)
	if err != nil {
		return err
	}
	defer p.gpu.DeleteShader(fragShader)

	program, err := p.Link(vertShader, fragShader)
	if err != nil {
		return err
	}

	attribLoc := p.gpu.AttribLocation(program, shaders.AttribFlakeProps)
	if attribLoc < 0 {
		p.gpu.DeleteProgram(program)
		err := &shaders.LinkError{Log: fmt.Sprintf("attribute %q is not active", shaders.AttribFlakeProps)}
		p.logger.Error("snow program is unusable", "error", err)
		return err
	}
	projLoc := p.gpu.UniformLocation(program, shaders.UniformProjection)
	if projLoc < 0 {
		p.logger.Warn("projection uniform is not active", "uniform", shaders.UniformProjection)
	}

	p.program = program
	p.attribLoc = attribLoc
	p.projLoc = projLoc
	p.vao = p.gpu.CreateVertexArray()
	p.vbo = p.gpu.CreateBuffer()
	p.gpu.EnableProgramPointSize()

	p.logger.Debug("snow program ready",
		"program", program,
		"attribute", attribLoc,
		"projection", projLoc,
	)
	return nil
}

// Compile builds one shader stage, logging the driver diagnostic on failure.
func (p *Pipeline) Compile(stage shaders.Stage, source string) (uint32, error) {
	shader, err := shaders.Compile(p.gpu, stage, source)
	if err != nil {
		p.logger.Error("shader compilation failed", "stage", stage.String(), "error", err)
		return 0, err
	}
	return shader, nil
}

// Link builds the program from both stages, logging the driver diagnostic on
// failure.
func (p *Pipeline) Link(vertex, fragment uint32) (uint32, error) {
	program, err := shaders.Link(p.gpu, vertex, fragment)
	if err != nil {
		p.logger.Error("program link failed", "error", err)
		return 0, err
	}
	return program, nil
}

// Upload replaces the vertex buffer contents with attributes.
func (p *Pipeline) Upload(attributes []float32) {
	p.gpu.BindBuffer(p.vbo)
	p.gpu.BufferData(attributes)
}

// BindAttribute points the named vertex input at the uploaded buffer,
// reading components tightly packed floats per vertex.
func (p *Pipeline) BindAttribute(name string, components int32) error {
	loc := p.attribLoc
	if name != shaders.AttribFlakeProps {
		loc = p.gpu.AttribLocation(p.program, name)
	}
	if loc < 0 {
		return fmt.Errorf("attribute %q is not active", name)
	}
	p.gpu.BindBuffer(p.vbo)
	p.gpu.EnableVertexAttribArray(uint32(loc))
	p.gpu.VertexAttribPointer(uint32(loc), components)
	return nil
}

// SetProjection uploads the pixel to clip space transform.
func (p *Pipeline) SetProjection(m mgl32.Mat3) {
	p.gpu.UseProgram(p.program)
	p.gpu.UniformMatrix3(p.projLoc, m)
}

// Draw clears to transparent black and draws count flakes as points with
// source-over blending.
func (p *Pipeline) Draw(count int) {
	p.gpu.ClearColor(0, 0, 0, 0)
	p.gpu.Clear()
	p.gpu.UseProgram(p.program)
	p.gpu.EnableAlphaBlending()
	p.lastDrawn = 0
	if count <= 0 {
		return
	}
	p.gpu.DrawPoints(int32(count))
	p.lastDrawn = count
}

// Render runs one frame: upload, bind, set projection, draw. When the
// program cannot be built the frame is skipped without touching the
// framebuffer and the build error is returned.
func (p *Pipeline) Render(f Frame) error {
	if err := p.Init(); err != nil {
		return err
	}
	if f.Width <= 0 || f.Height <= 0 {
		p.gpu.Viewport(0, 0)
		p.lastDrawn = 0
		return nil
	}

	p.gpu.BindVertexArray(p.vao)
	defer p.gpu.BindVertexArray(0)

	p.Upload(f.Attributes)
	if err := p.BindAttribute(shaders.AttribFlakeProps, models.AttributesPerParticle); err != nil {
		return err
	}
	p.gpu.Viewport(int32(f.Width), int32(f.Height))
	p.SetProjection(f.Projection)
	p.Draw(len(f.Attributes) / models.AttributesPerParticle)
	return nil
}

// LastDrawn is the vertex count of the most recent draw call.
func (p *Pipeline) LastDrawn() int {
	return p.lastDrawn
}

// Err returns the program build error, if any.
func (p *Pipeline) Err() error {
	return p.err
}

// Close releases the program, buffer and vertex array.
func (p *Pipeline) Close() {
	if p.closed {
		return
	}
	p.closed = true
	if !p.ready {
		return
	}
	p.gpu.DeleteBuffer(p.vbo)
	p.gpu.DeleteVertexArray(p.vao)
	p.gpu.DeleteProgram(p.program)
	p.ready = false
	p.vbo, p.vao, p.program = 0, 0, 0
}
