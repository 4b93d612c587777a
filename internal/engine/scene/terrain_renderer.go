// Package scene provides the GPU-side renderers for scene geometry.
package scene

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/terrain-flythrough/internal/engine/renderer"
	"github.com/Faultbox/terrain-flythrough/internal/engine/scene/shaders"
	"github.com/Faultbox/terrain-flythrough/internal/engine/shader"
	"github.com/Faultbox/terrain-flythrough/internal/engine/terrain"
	"github.com/Faultbox/terrain-flythrough/internal/logger"
	"github.com/Faultbox/terrain-flythrough/pkg/math"
)

// ErrAlreadyUploaded is returned when a terrain mesh is uploaded twice.
var ErrAlreadyUploaded = errors.New("scene: terrain mesh already uploaded")

// TerrainRenderer owns the terrain vertex buffer and shader program.
type TerrainRenderer struct {
	program *shader.Program

	// Vertex input location of aPosition
	attrib uint32

	// Terrain mesh
	vao         uint32
	vbo         uint32
	vertexCount int32
	uploaded    bool

	bounds terrain.Bounds

	log *zap.Logger
}

// NewTerrainRenderer compiles the terrain program and allocates its buffers.
// Must be called after the GL context is current.
func NewTerrainRenderer() (*TerrainRenderer, error) {
	program, err := shader.New(shaders.TerrainVertexShader, shaders.TerrainFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("terrain shader: %w", err)
	}

	attrib, err := program.AttribLocation("aPosition")
	if err != nil {
		program.Delete()
		return nil, fmt.Errorf("terrain shader: %w", err)
	}

	tr := &TerrainRenderer{
		program: program,
		attrib:  attrib,
		log:     logger.Named("terrain"),
	}
	gl.GenVertexArrays(1, &tr.vao)
	gl.GenBuffers(1, &tr.vbo)

	return tr, nil
}

// Upload copies the mesh into the vertex buffer for static use.
// The buffer is written once; later calls return ErrAlreadyUploaded.
func (tr *TerrainRenderer) Upload(mesh *terrain.Mesh) error {
	if tr.uploaded {
		return ErrAlreadyUploaded
	}

	gl.BindBuffer(gl.ARRAY_BUFFER, tr.vbo)
	if n := len(mesh.Vertices); n > 0 {
		gl.BufferData(gl.ARRAY_BUFFER, n*terrain.VertexSize, unsafe.Pointer(&mesh.Vertices[0]), gl.STATIC_DRAW)
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	if err := renderer.CheckError("upload terrain"); err != nil {
		return err
	}

	tr.uploaded = true
	tr.vertexCount = int32(len(mesh.Vertices))
	tr.bounds = mesh.Bounds

	tr.log.Debug("terrain buffer written",
		zap.Int("bytes", len(mesh.Vertices)*terrain.VertexSize),
	)
	return nil
}

// Prepare binds the program and vertex buffer and declares the vertex layout:
// one vec3 position per vertex, tightly packed.
func (tr *TerrainRenderer) Prepare() {
	tr.program.Use()
	gl.BindVertexArray(tr.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, tr.vbo)
	gl.EnableVertexAttribArray(tr.attrib)
	gl.VertexAttribPointer(tr.attrib, 3, gl.FLOAT, false, terrain.VertexSize, nil)
}

// Render draws the whole vertex buffer as independent triangles.
// Prepare must have been called this frame.
func (tr *TerrainRenderer) Render(model, view, projection math.Mat4) error {
	tr.program.SetMat4("model", model)
	tr.program.SetMat4("view", view)
	tr.program.SetMat4("projection", projection)

	if tr.vertexCount > 0 {
		gl.DrawArrays(gl.TRIANGLES, 0, tr.vertexCount)
	}
	gl.BindVertexArray(0)

	return renderer.CheckError("draw terrain")
}

// VertexCount returns the number of vertices in the GPU buffer.
func (tr *TerrainRenderer) VertexCount() int {
	return int(tr.vertexCount)
}

// Bounds returns the extent of the uploaded geometry.
func (tr *TerrainRenderer) Bounds() terrain.Bounds {
	return tr.bounds
}

// Close releases the buffer, vertex array and program.
func (tr *TerrainRenderer) Close() {
	if tr.vbo != 0 {
		gl.DeleteBuffers(1, &tr.vbo)
		tr.vbo = 0
	}
	if tr.vao != 0 {
		gl.DeleteVertexArrays(1, &tr.vao)
		tr.vao = 0
	}
	if tr.program != nil {
		tr.program.Delete()
	}
}
