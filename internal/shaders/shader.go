package shaders

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
)

//go:embed snow.vert.glsl
var SnowVertex string

//go:embed snow.frag.glsl
var SnowFragment string

// Names the snow program binds by.
const (
	AttribFlakeProps  = "snowFlakeProps"
	UniformProjection = "projection"
)

type Stage int

const (
	Vertex Stage = iota
	Fragment
)

func (s Stage) String() string {
	switch s {
	case Vertex:
		return "vertex"
	case Fragment:
		return "fragment"
	default:
		return fmt.Sprintf("stage(%d)", int(s))
	}
}

// CompileError carries the driver's info log for a stage that failed to
// compile.
type CompileError struct {
	Stage Stage
	Log   string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("failed to compile %s shader: %s", e.Stage, e.Log)
}

// LinkError carries the driver's info log for a program that failed to link.
type LinkError struct {
	Log string
}

func (e *LinkError) Error() string {
	return fmt.Sprintf("failed to link program: %s", e.Log)
}

// Compiler is the part of a GPU context that builds shader stages.
type Compiler interface {
	CreateShader(stage Stage) uint32
	CompileShader(shader uint32, source string) (ok bool, infoLog string)
	DeleteShader(shader uint32)
}

// Linker is the part of a GPU context that builds programs.
type Linker interface {
	CreateProgram() uint32
	AttachShader(program, shader uint32)
	LinkProgram(program uint32) (ok bool, infoLog string)
	DeleteProgram(program uint32)
}

// Compile builds one stage. A failed stage is deleted before returning.
func Compile(c Compiler, stage Stage, source string) (uint32, error) {
	shader := c.CreateShader(stage)
	ok, infoLog := c.CompileShader(shader, source)
	if !ok {
		c.DeleteShader(shader)
		return 0, &CompileError{Stage: stage, Log: strings.TrimSpace(strings.TrimRight(infoLog, "\x00"))}
	}
	return shader, nil
}

// Link builds a program from compiled stages. A program that fails to link
// is deleted before returning.
func Link(l Linker, vertex, fragment uint32) (uint32, error) {
	program := l.CreateProgram()
	l.AttachShader(program, vertex)
	l.AttachShader(program, fragment)
	ok, infoLog := l.LinkProgram(program)
	if !ok {
		l.DeleteProgram(program)
		return 0, &LinkError{Log: strings.TrimSpace(strings.TrimRight(infoLog, "\x00"))}
	}
	return program, nil
}

// Sources is a vertex/fragment pair.
type Sources struct {
	Vertex   string
	Fragment string
}

// Snow returns the built-in flake program sources.
func Snow() Sources {
	return Sources{Vertex: SnowVertex, Fragment: SnowFragment}
}

// LoadSources starts from the built-in sources and replaces each stage whose
// path is non-empty with the contents of that file.
func LoadSources(vertexPath, fragmentPath string) (Sources, error) {
	src := Snow()
	if vertexPath != "" {
		s, err := readSource(vertexPath)
		if err != nil {
			return Sources{}, err
		}
		src.Vertex = s
	}
	if fragmentPath != "" {
		s, err := readSource(fragmentPath)
		if err != nil {
			return Sources{}, err
		}
		src.Fragment = s
	}
	return src, nil
}

func readSource(path string) (string, error) {
	sourceBytes, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read shader file %q: %w", path, err)
	}
	return strings.TrimRight(string(sourceBytes), "\x00"), nil
}
