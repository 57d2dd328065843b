// Package drawtest provides a recording GPU for pipeline tests.
package drawtest

import (
	"fmt"
	"strings"

	"github.com/ThatOtherAndrew/Snowfall/internal/shaders"
	"github.com/go-gl/mathgl/mgl32"
)

// GPU records every call as a short string and keeps the state a test
// needs to inspect. Sources containing InvalidMarker fail to compile.
type GPU struct {
	Calls []string

	FailLink       string
	MissingAttrib  bool
	MissingUniform bool

	Buffer     []float32
	Projection mgl32.Mat3
	Draws      []int32
	Components int32
	Live       map[uint32]string
	nextID     uint32
}

// InvalidMarker makes a shader source fail to compile.
const InvalidMarker = "#error"

func New() *GPU {
	return &GPU{Live: make(map[uint32]string)}
}

func (g *GPU) record(format string, args ...any) {
	g.Calls = append(g.Calls, fmt.Sprintf(format, args...))
}

func (g *GPU) alloc(kind string) uint32 {
	g.nextID++
	g.Live[g.nextID] = kind
	return g.nextID
}

func (g *GPU) free(id uint32) {
	delete(g.Live, id)
}

// Count returns how many times the call named name was recorded. Arguments
// are ignored, so "Clear" does not match "ClearColor 0 0 0 0".
func (g *GPU) Count(name string) int {
	n := 0
	for _, c := range g.Calls {
		if isCall(c, name) {
			n++
		}
	}
	return n
}

// Index returns the position of the first call named name, or -1.
func (g *GPU) Index(name string) int {
	for i, c := range g.Calls {
		if isCall(c, name) {
			return i
		}
	}
	return -1
}

func isCall(call, name string) bool {
	return call == name || strings.HasPrefix(call, name+" ")
}

// Reset forgets recorded calls but keeps live objects.
func (g *GPU) Reset() {
	g.Calls = nil
	g.Draws = nil
}

func (g *GPU) CreateShader(stage shaders.Stage) uint32 {
	g.record("CreateShader %s", stage)
	return g.alloc("shader")
}

func (g *GPU) CompileShader(shader uint32, source string) (bool, string) {
	g.record("CompileShader %d", shader)
	if strings.Contains(source, InvalidMarker) {
		return false, "0:1(1): error: invalid source\x00"
	}
	return true, ""
}

func (g *GPU) DeleteShader(shader uint32) {
	g.record("DeleteShader %d", shader)
	g.free(shader)
}

func (g *GPU) CreateProgram() uint32 {
	g.record("CreateProgram")
	return g.alloc("program")
}

func (g *GPU) AttachShader(program, shader uint32) {
	g.record("AttachShader %d %d", program, shader)
}

func (g *GPU) LinkProgram(program uint32) (bool, string) {
	g.record("LinkProgram %d", program)
	if g.FailLink != "" {
		return false, g.FailLink
	}
	return true, ""
}

func (g *GPU) DeleteProgram(program uint32) {
	g.record("DeleteProgram %d", program)
	g.free(program)
}

func (g *GPU) UseProgram(program uint32) {
	g.record("UseProgram %d", program)
}

func (g *GPU) AttribLocation(program uint32, name string) int32 {
	g.record("AttribLocation %s", name)
	if g.MissingAttrib || name != shaders.AttribFlakeProps {
		return -1
	}
	return 0
}

func (g *GPU) UniformLocation(program uint32, name string) int32 {
	g.record("UniformLocation %s", name)
	if g.MissingUniform || name != shaders.UniformProjection {
		return -1
	}
	return 1
}

func (g *GPU) CreateVertexArray() uint32 {
	g.record("CreateVertexArray")
	return g.alloc("vertex array")
}

func (g *GPU) BindVertexArray(vao uint32) {
	g.record("BindVertexArray %d", vao)
}

func (g *GPU) DeleteVertexArray(vao uint32) {
	g.record("DeleteVertexArray %d", vao)
	g.free(vao)
}

func (g *GPU) CreateBuffer() uint32 {
	g.record("CreateBuffer")
	return g.alloc("buffer")
}

func (g *GPU) BindBuffer(buffer uint32) {
	g.record("BindBuffer %d", buffer)
}

func (g *GPU) BufferData(data []float32) {
	g.record("BufferData %d", len(data))
	g.Buffer = append(g.Buffer[:0], data...)
}

func (g *GPU) DeleteBuffer(buffer uint32) {
	g.record("DeleteBuffer %d", buffer)
	g.free(buffer)
}

func (g *GPU) EnableVertexAttribArray(location uint32) {
	g.record("EnableVertexAttribArray %d", location)
}

func (g *GPU) VertexAttribPointer(location uint32, components int32) {
	g.record("VertexAttribPointer %d %d", location, components)
	g.Components = components
}

func (g *GPU) UniformMatrix3(location int32, m mgl32.Mat3) {
	g.record("UniformMatrix3 %d", location)
	g.Projection = m
}

func (g *GPU) Viewport(width, height int32) {
	g.record("Viewport %dx%d", width, height)
}

func (g *GPU) ClearColor(red, green, blue, alpha float32) {
	g.record("ClearColor %g %g %g %g", red, green, blue, alpha)
}

func (g *GPU) Clear() {
	g.record("Clear")
}

func (g *GPU) EnableAlphaBlending() {
	g.record("EnableAlphaBlending")
}

func (g *GPU) EnableProgramPointSize() {
	g.record("EnableProgramPointSize")
}

func (g *GPU) DrawPoints(count int32) {
	g.record("DrawPoints %d", count)
	g.Draws = append(g.Draws, count)
}
