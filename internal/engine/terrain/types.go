// Package terrain builds elevation grids and triangle meshes from grayscale heightmap images.
package terrain

import "errors"

// DefaultHeightDivisor maps 0-255 pixel intensity to 0-63.75 height units.
const DefaultHeightDivisor float32 = 4

// ErrOutOfBounds is returned for height queries outside the grid.
var ErrOutOfBounds = errors.New("terrain: coordinate out of bounds")

// Vertex is a terrain mesh vertex. Position only: the terrain is drawn unlit and untextured,
// so the buffer is three tightly packed float32 per vertex.
type Vertex struct {
	Position [3]float32
}

// VertexSize is the byte stride of Vertex in the vertex buffer.
const VertexSize = 3 * 4

// VerticesPerQuad is the number of vertices emitted per grid cell (two triangles, no sharing).
const VerticesPerQuad = 6

// Mesh holds the terrain triangle list ready for GPU upload.
// Triangles are independent: every three consecutive vertices form one triangle.
type Mesh struct {
	Vertices []Vertex
	Bounds   Bounds
}

// Bounds holds the axis-aligned bounding box of the terrain.
type Bounds struct {
	Min [3]float32
	Max [3]float32
}

// Heightmap is the elevation grid decoded from an image.
// It is never modified after construction.
type Heightmap struct {
	Altitudes [][]float32 // 2D array [x][z] of heights
	Width     int         // Number of samples in X direction (image width)
	Depth     int         // Number of samples in Z direction (image height)
	Divisor   float32     // Intensity-to-height divisor used at load time
}
