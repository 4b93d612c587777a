// Package shader compiles GLSL programs and caches their uniform locations.
package shader

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/terrain-flythrough/pkg/math"
)

// Program is a linked GL shader program.
type Program struct {
	ID uint32

	uniforms map[string]int32
}

// New compiles both stages and links them. Compile and link failures carry
// the driver's info log.
func New(vertexSrc, fragmentSrc string) (*Program, error) {
	stages := []struct {
		kind uint32
		name string
		src  string
	}{
		{gl.VERTEX_SHADER, "vertex", vertexSrc},
		{gl.FRAGMENT_SHADER, "fragment", fragmentSrc},
	}

	id := gl.CreateProgram()
	for _, st := range stages {
		sh, err := compile(st.kind, st.src)
		if err != nil {
			gl.DeleteProgram(id)
			return nil, fmt.Errorf("%s shader: %w", st.name, err)
		}
		gl.AttachShader(id, sh)
		// Flagged for deletion; freed when the program goes away.
		gl.DeleteShader(sh)
	}

	gl.LinkProgram(id)
	var ok int32
	gl.GetProgramiv(id, gl.LINK_STATUS, &ok)
	if ok == gl.FALSE {
		msg := infoLog(id, gl.GetProgramiv, gl.GetProgramInfoLog)
		gl.DeleteProgram(id)
		return nil, fmt.Errorf("link: %s", msg)
	}

	return &Program{ID: id, uniforms: make(map[string]int32)}, nil
}

func compile(kind uint32, src string) (uint32, error) {
	sh := gl.CreateShader(kind)
	csrc, free := gl.Strs(src + "\x00")
	gl.ShaderSource(sh, 1, csrc, nil)
	free()
	gl.CompileShader(sh)

	var ok int32
	gl.GetShaderiv(sh, gl.COMPILE_STATUS, &ok)
	if ok == gl.FALSE {
		msg := infoLog(sh, gl.GetShaderiv, gl.GetShaderInfoLog)
		gl.DeleteShader(sh)
		return 0, fmt.Errorf("compile: %s", msg)
	}
	return sh, nil
}

// infoLog reads a shader or program log with the matching pair of GL getters.
func infoLog(id uint32,
	getiv func(uint32, uint32, *int32),
	getLog func(uint32, int32, *int32, *uint8),
) string {
	var n int32
	getiv(id, gl.INFO_LOG_LENGTH, &n)
	if n <= 0 {
		return "no info log"
	}
	buf := strings.Repeat("\x00", int(n)+1)
	getLog(id, n, nil, gl.Str(buf))
	return strings.TrimSpace(strings.TrimRight(buf, "\x00"))
}

// Use makes the program current.
func (p *Program) Use() {
	gl.UseProgram(p.ID)
}

// AttribLocation returns the location of a vertex input, or an error if the
// linker dropped or never saw it.
func (p *Program) AttribLocation(name string) (uint32, error) {
	loc := gl.GetAttribLocation(p.ID, gl.Str(name+"\x00"))
	if loc < 0 {
		return 0, fmt.Errorf("attribute %q not active in program %d", name, p.ID)
	}
	return uint32(loc), nil
}

// SetMat4 uploads a matrix uniform. The program must be current.
// Inactive uniforms resolve to -1, which GL ignores.
func (p *Program) SetMat4(name string, m math.Mat4) {
	gl.UniformMatrix4fv(p.uniform(name), 1, false, m.Ptr())
}

func (p *Program) uniform(name string) int32 {
	loc, ok := p.uniforms[name]
	if !ok {
		loc = gl.GetUniformLocation(p.ID, gl.Str(name+"\x00"))
		p.uniforms[name] = loc
	}
	return loc
}

// Delete releases the GL program.
func (p *Program) Delete() {
	if p.ID != 0 {
		gl.DeleteProgram(p.ID)
		p.ID = 0
	}
}
