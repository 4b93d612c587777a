package terrain

// BuildMesh creates the terrain triangle list from a heightmap.
//
// Every cell (i, j) with a right and lower neighbor becomes two triangles:
//
//	(i,j)     -> (i+1,j) -> (i,j+1)
//	(i+1,j+1) -> (i+1,j) -> (i,j+1)
//
// Vertices are duplicated per quad rather than indexed, so the mesh holds
// QuadCount()*6 vertices in exactly that order, x-major.
func BuildMesh(hm *Heightmap) *Mesh {
	vertices := make([]Vertex, 0, hm.QuadCount()*VerticesPerQuad)

	// Initialize bounds
	bounds := Bounds{
		Min: [3]float32{1e10, 1e10, 1e10},
		Max: [3]float32{-1e10, -1e10, -1e10},
	}

	vertex := func(x, z int) Vertex {
		p := [3]float32{float32(x), hm.Altitudes[x][z], float32(z)}
		updateBounds(&bounds, p)
		return Vertex{Position: p}
	}

	for i := 0; i < hm.Width-1; i++ {
		for j := 0; j < hm.Depth-1; j++ {
			vertices = append(vertices,
				vertex(i, j),
				vertex(i+1, j),
				vertex(i, j+1),

				vertex(i+1, j+1),
				vertex(i+1, j),
				vertex(i, j+1),
			)
		}
	}

	if len(vertices) == 0 {
		bounds = Bounds{}
	}

	return &Mesh{
		Vertices: vertices,
		Bounds:   bounds,
	}
}

// VertexCount returns the number of vertices in the triangle list.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// TriangleCount returns the number of independent triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Vertices) / 3
}

func updateBounds(b *Bounds, p [3]float32) {
	for i := range 3 {
		if p[i] < b.Min[i] {
			b.Min[i] = p[i]
		}
		if p[i] > b.Max[i] {
			b.Max[i] = p[i]
		}
	}
}
