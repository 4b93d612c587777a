package terrain

import (
	"path/filepath"
	"testing"

	"github.com/qmuntal/gltf"
)

func TestExportGLB(t *testing.T) {
	hm := mustHeightmap(t, createTestImage(4, 4, func(x, y int) uint8 { return uint8(x * y * 8) }))
	mesh := BuildMesh(hm)

	path := filepath.Join(t.TempDir(), "terrain.glb")
	if err := mesh.ExportGLB(path, "terrain"); err != nil {
		t.Fatalf("ExportGLB failed: %v", err)
	}

	doc, err := gltf.Open(path)
	if err != nil {
		t.Fatalf("failed to reopen exported file: %v", err)
	}

	if len(doc.Meshes) != 1 || len(doc.Meshes[0].Primitives) != 1 {
		t.Fatalf("expected one mesh with one primitive, got %d meshes", len(doc.Meshes))
	}
	prim := doc.Meshes[0].Primitives[0]
	if prim.Indices != nil {
		t.Error("expected non-indexed primitive")
	}

	posIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		t.Fatal("primitive has no POSITION attribute")
	}
	if got := int(doc.Accessors[posIdx].Count); got != mesh.VertexCount() {
		t.Errorf("expected %d positions, got %d", mesh.VertexCount(), got)
	}
}

func TestExportGLBEmptyMesh(t *testing.T) {
	mesh := &Mesh{}
	if err := mesh.ExportGLB(filepath.Join(t.TempDir(), "empty.glb"), "empty"); err == nil {
		t.Error("expected error exporting empty mesh, got nil")
	}
}
