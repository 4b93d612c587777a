package terrain

import (
	"errors"
	"fmt"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// ExportGLB writes the mesh as a single non-indexed triangle primitive in a binary glTF file.
func (m *Mesh) ExportGLB(path, name string) error {
	if len(m.Vertices) == 0 {
		return errors.New("export: mesh has no vertices")
	}

	positions := make([][3]float32, len(m.Vertices))
	for i, v := range m.Vertices {
		positions[i] = v.Position
	}

	doc := gltf.NewDocument()
	pos := modeler.WritePosition(doc, positions)

	doc.Meshes = []*gltf.Mesh{{
		Name: name,
		Primitives: []*gltf.Primitive{{
			Mode:       gltf.PrimitiveTriangles,
			Attributes: map[string]int{gltf.POSITION: pos},
		}},
	}}
	doc.Nodes = []*gltf.Node{{Name: name, Mesh: gltf.Index(0)}}
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, 0)

	if err := gltf.SaveBinary(doc, path); err != nil {
		return fmt.Errorf("export %s: %w", path, err)
	}
	return nil
}
