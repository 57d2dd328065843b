package shaders_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ThatOtherAndrew/Snowfall/internal/draw/drawtest"
	"github.com/ThatOtherAndrew/Snowfall/internal/shaders"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnowSourcesBindByName(t *testing.T) {
	src := shaders.Snow()
	assert.Contains(t, src.Vertex, shaders.AttribFlakeProps)
	assert.Contains(t, src.Vertex, shaders.UniformProjection)
	assert.Contains(t, src.Vertex, "gl_PointSize = 2.0 * snowFlakeProps.z")
	assert.Contains(t, src.Fragment, "gl_PointCoord")
	assert.Contains(t, src.Fragment, "distToCenterSquared < 0.25")
}

func TestCompile(t *testing.T) {
	gpu := drawtest.New()

	shader, err := shaders.Compile(gpu, shaders.Vertex, shaders.SnowVertex)
	require.NoError(t, err)
	assert.NotZero(t, shader)
	assert.Equal(t, "shader", gpu.Live[shader])
}

func TestCompileFailure(t *testing.T) {
	gpu := drawtest.New()

	shader, err := shaders.Compile(gpu, shaders.Fragment, drawtest.InvalidMarker+" broken")

	assert.Zero(t, shader)
	var compileErr *shaders.CompileError
	require.True(t, errors.As(err, &compileErr))
	assert.Equal(t, shaders.Fragment, compileErr.Stage)
	assert.Equal(t, "0:1(1): error: invalid source", compileErr.Log)
	assert.Contains(t, err.Error(), "fragment")
	assert.Empty(t, gpu.Live, "failed stage must be deleted")
}

func TestLinkFailureDeletesProgram(t *testing.T) {
	gpu := drawtest.New()
	gpu.FailLink = "varying mismatch"

	vs, err := shaders.Compile(gpu, shaders.Vertex, shaders.SnowVertex)
	require.NoError(t, err)
	fs, err := shaders.Compile(gpu, shaders.Fragment, shaders.SnowFragment)
	require.NoError(t, err)

	program, err := shaders.Link(gpu, vs, fs)

	assert.Zero(t, program)
	var linkErr *shaders.LinkError
	require.True(t, errors.As(err, &linkErr))
	assert.Equal(t, "varying mismatch", linkErr.Log)
	assert.Equal(t, 1, gpu.Count("DeleteProgram"))
	assert.Len(t, gpu.Live, 2)
}

func TestLink(t *testing.T) {
	gpu := drawtest.New()
	vs, _ := shaders.Compile(gpu, shaders.Vertex, shaders.SnowVertex)
	fs, _ := shaders.Compile(gpu, shaders.Fragment, shaders.SnowFragment)

	program, err := shaders.Link(gpu, vs, fs)

	require.NoError(t, err)
	assert.Equal(t, "program", gpu.Live[program])
	assert.Equal(t, 2, gpu.Count("AttachShader"))
}

func TestStageString(t *testing.T) {
	assert.Equal(t, "vertex", shaders.Vertex.String())
	assert.Equal(t, "fragment", shaders.Fragment.String())
	assert.Equal(t, "stage(7)", shaders.Stage(7).String())
}

func TestLoadSources(t *testing.T) {
	dir := t.TempDir()
	fragPath := filepath.Join(dir, "custom.frag.glsl")
	require.NoError(t, os.WriteFile(fragPath, []byte("#version 410 core\nvoid main() {}\n"), 0644))

	src, err := shaders.LoadSources("", fragPath)
	require.NoError(t, err)
	assert.Equal(t, shaders.SnowVertex, src.Vertex)
	assert.Equal(t, "#version 410 core\nvoid main() {}\n", src.Fragment)

	src, err = shaders.LoadSources("", "")
	require.NoError(t, err)
	assert.Equal(t, shaders.Snow(), src)
}

func TestLoadSourcesMissingFile(t *testing.T) {
	_, err := shaders.LoadSources(filepath.Join(t.TempDir(), "missing.glsl"), "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}
