package model

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Faultbox/midgard-rt/pkg/formats"
	"github.com/Faultbox/midgard-rt/pkg/math"
)

const cubeOBJ = "../../../pkg/formats/testdata/cube.obj"

func TestLoadCube(t *testing.T) {
	m, err := Load(cubeOBJ, true, nil)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(m.Triangles) != 12 {
		t.Errorf("triangles = %d, want 12", len(m.Triangles))
	}
	if len(m.Materials) != 3 {
		t.Fatalf("materials = %d, want blank + 2", len(m.Materials))
	}

	walls := m.FindGroup("walls")
	mirror := m.FindGroup("mirror")
	if got := m.Materials[m.Groups[walls].Material].Name; got != "red" {
		t.Errorf("walls material = %q, want red", got)
	}
	chrome := m.Materials[m.Groups[mirror].Material]
	if chrome.Name != "chrome" || !chrome.Reflective() || chrome.Transparency != 0.4 {
		t.Errorf("mirror material = %+v", chrome)
	}

	b := m.Bounds()
	if !b.Start.ApproxEqual(math.Splat(-1), 1e-6) || !b.End.ApproxEqual(math.Splat(1), 1e-6) {
		t.Errorf("bounds = %v, want the [-1,1] cube", b)
	}
	if len(m.TriNormals) != 12 {
		t.Errorf("facet normals = %d, want 12", len(m.TriNormals))
	}
}

func TestLoadMissingLibrary(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scene.obj")
	data := "mtllib nowhere.mtl\nv 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path, false, nil); err == nil {
		t.Error("Load() with a missing material library succeeded")
	}
}

func TestLoadRejectsDanglingIndex(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.obj")
	if err := os.WriteFile(path, []byte("v 0 0 0\nf 1 2 3\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(path, false, nil)
	if !errors.Is(err, ErrVertexIndex) {
		t.Errorf("Load() error = %v, want ErrVertexIndex", err)
	}
}

func TestFromOBJUnknownMaterial(t *testing.T) {
	obj := &formats.OBJ{
		Vertices: []math.Vec3{{}, {X: 1}, {Y: 1}},
		Faces:    []formats.OBJFace{{V: [3]int{1, 2, 3}, Group: 1}},
		Groups:   []formats.OBJGroup{{Name: formats.OBJDefaultGroup}, {Name: "g", Material: "nope"}},
	}

	m := FromOBJ(obj, nil, nil)
	if mat := m.MaterialOf(0); mat.Name != "blank" {
		t.Errorf("material = %q, want blank fallback", mat.Name)
	}
	if g := m.Triangles[0].Group; m.Groups[g].Name != "g" {
		t.Errorf("triangle group = %q, want g", m.Groups[g].Name)
	}
}

func TestFromOBJFirstLibraryWins(t *testing.T) {
	first, err := formats.ParseMTL([]byte("newmtl paint\nKd 1 0 0\n"))
	if err != nil {
		t.Fatal(err)
	}
	second, err := formats.ParseMTL([]byte("newmtl paint\nKd 0 0 1\nnewmtl steel\nKs 1 1 1\n"))
	if err != nil {
		t.Fatal(err)
	}
	obj := &formats.OBJ{
		Vertices: []math.Vec3{{}, {X: 1}, {Y: 1}},
		Faces:    []formats.OBJFace{{V: [3]int{1, 2, 3}, Group: 1}},
		Groups:   []formats.OBJGroup{{Name: formats.OBJDefaultGroup}, {Name: "g", Material: "paint"}},
	}

	m := FromOBJ(obj, []*formats.MTL{first, second}, nil)
	if len(m.Materials) != 3 {
		t.Fatalf("materials = %d, want blank + paint + steel", len(m.Materials))
	}
	if got := m.MaterialOf(0).Diffuse; got != (math.Vec4{1, 0, 0, 1}) {
		t.Errorf("paint diffuse = %v, want the first library's red", got)
	}
}
