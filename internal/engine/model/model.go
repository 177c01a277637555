package model

import (
	"errors"
	"fmt"

	"github.com/Faultbox/midgard-rt/pkg/math"
)

// Model validation errors.
var (
	ErrVertexIndex   = errors.New("vertex index out of range")
	ErrNormalIndex   = errors.New("normal index out of range")
	ErrTexCoordIndex = errors.New("texcoord index out of range")
	ErrGroupIndex    = errors.New("group index out of range")
	ErrMaterialIndex = errors.New("material index out of range")
)

// Model is a triangle-mesh scene. It is built once by a loader and shared
// read-only by the KD-tree and the tracer; do not mutate it while rendering.
type Model struct {
	Vertices  []math.Vec3
	Normals   []math.Vec3
	TexCoords []math.Vec2

	Triangles []Triangle
	// TriNormals holds one facet normal per triangle, filled by Prepare.
	TriNormals []math.Vec3

	Materials []Material
	Groups    []Group
}

// New returns an empty model with the index-0 sentinels in place.
func New() *Model {
	return &Model{
		Vertices:  []math.Vec3{{}},
		Normals:   []math.Vec3{{}},
		TexCoords: []math.Vec2{{}},
		Materials: []Material{DefaultMaterial()},
		Groups:    []Group{{Name: DefaultGroupName}},
	}
}

// AddVertex appends a vertex and returns its 1-based index.
func (m *Model) AddVertex(v math.Vec3) int {
	m.Vertices = append(m.Vertices, v)
	return len(m.Vertices) - 1
}

// AddNormal appends a normal and returns its 1-based index.
func (m *Model) AddNormal(n math.Vec3) int {
	m.Normals = append(m.Normals, n)
	return len(m.Normals) - 1
}

// AddTexCoord appends a texture coordinate and returns its 1-based index.
func (m *Model) AddTexCoord(t math.Vec2) int {
	m.TexCoords = append(m.TexCoords, t)
	return len(m.TexCoords) - 1
}

// AddMaterial appends a material and returns its index.
func (m *Model) AddMaterial(mat Material) int {
	m.Materials = append(m.Materials, mat)
	return len(m.Materials) - 1
}

// AddTriangle appends a triangle, registers it with its group and returns its index.
func (m *Model) AddTriangle(tri Triangle) int {
	idx := len(m.Triangles)
	tri.Bounds = m.triangleBox(tri)
	m.Triangles = append(m.Triangles, tri)
	if tri.Group >= 0 && tri.Group < len(m.Groups) {
		m.Groups[tri.Group].Triangles = append(m.Groups[tri.Group].Triangles, idx)
	}
	return idx
}

// FindMaterial returns the index of the named material.
func (m *Model) FindMaterial(name string) (int, bool) {
	for i := range m.Materials {
		if m.Materials[i].Name == name {
			return i, true
		}
	}
	return 0, false
}

// FindGroup returns the index of the named group, creating it if needed.
func (m *Model) FindGroup(name string) int {
	for i := range m.Groups {
		if m.Groups[i].Name == name {
			return i
		}
	}
	m.Groups = append(m.Groups, Group{Name: name})
	return len(m.Groups) - 1
}

// TriangleVertices returns the three vertex positions of triangle i.
func (m *Model) TriangleVertices(i int) (a, b, c math.Vec3) {
	vi := m.Triangles[i].VIndices
	return m.Vertices[vi[0]], m.Vertices[vi[1]], m.Vertices[vi[2]]
}

// MaterialOf resolves triangle i to its material through its group.
func (m *Model) MaterialOf(i int) *Material {
	g := &m.Groups[m.Triangles[i].Group]
	return &m.Materials[g.Material]
}

// Bounds returns the box around every vertex, ignoring the sentinel.
func (m *Model) Bounds() math.Box {
	if len(m.Vertices) <= 1 {
		return math.Box{}
	}
	return math.BoxOf(m.Vertices[1:]...)
}

// Normalize centers the model on the origin, scales it to fit the [-1,1]
// cube and then prepares normals and triangle boxes.
func (m *Model) Normalize() {
	if len(m.Vertices) > 1 {
		b := m.Bounds()
		center := b.Center()
		size := b.Size()
		extent := max(size.X, size.Y, size.Z)
		scale := float32(1)
		if extent > 0 {
			scale = 2 / extent
		}
		for i := 1; i < len(m.Vertices); i++ {
			m.Vertices[i] = m.Vertices[i].Sub(center).Scale(scale)
		}
	}
	m.Prepare()
}

// Prepare computes facet normals, assuming counter-clockwise winding, and
// refreshes every triangle box. Call it after vertices move.
func (m *Model) Prepare() {
	m.TriNormals = m.TriNormals[:0]
	for i := range m.Triangles {
		a, b, c := m.TriangleVertices(i)
		u := b.Sub(a)
		v := c.Sub(b)
		m.TriNormals = append(m.TriNormals, u.Cross(v).Normalize())
	}
	m.UpdateBounds()
}

// UpdateBounds recomputes the bounding box of every triangle.
func (m *Model) UpdateBounds() {
	for i := range m.Triangles {
		m.Triangles[i].Bounds = m.triangleBox(m.Triangles[i])
	}
}

func (m *Model) triangleBox(tri Triangle) math.Box {
	b := math.EmptyBox()
	for _, vi := range tri.VIndices {
		if vi > 0 && vi < len(m.Vertices) {
			b = b.Extend(m.Vertices[vi])
		}
	}
	return b
}

// Validate checks the index invariants the engine relies on.
func (m *Model) Validate() error {
	if err := m.checkIndices(); err != nil {
		return err
	}
	if len(m.TriNormals) != len(m.Triangles) {
		return fmt.Errorf("model not prepared: %d facet normals for %d triangles", len(m.TriNormals), len(m.Triangles))
	}
	return nil
}

// checkIndices verifies every triangle, group and material reference.
func (m *Model) checkIndices() error {
	for i, tri := range m.Triangles {
		for k := 0; k < 3; k++ {
			if tri.VIndices[k] <= 0 || tri.VIndices[k] >= len(m.Vertices) {
				return fmt.Errorf("triangle %d: %w: %d", i, ErrVertexIndex, tri.VIndices[k])
			}
			if tri.NIndices[k] < 0 || tri.NIndices[k] >= len(m.Normals) {
				return fmt.Errorf("triangle %d: %w: %d", i, ErrNormalIndex, tri.NIndices[k])
			}
			if tri.TIndices[k] < 0 || tri.TIndices[k] >= len(m.TexCoords) {
				return fmt.Errorf("triangle %d: %w: %d", i, ErrTexCoordIndex, tri.TIndices[k])
			}
		}
		if tri.Group < 0 || tri.Group >= len(m.Groups) {
			return fmt.Errorf("triangle %d: %w: %d", i, ErrGroupIndex, tri.Group)
		}
	}
	for i, g := range m.Groups {
		if g.Material < 0 || g.Material >= len(m.Materials) {
			return fmt.Errorf("group %q (%d): %w: %d", g.Name, i, ErrMaterialIndex, g.Material)
		}
	}
	return nil
}

// CountFaces returns the triangle count and the number of non-empty groups.
func (m *Model) CountFaces() (triangles, groups int) {
	for _, g := range m.Groups {
		if len(g.Triangles) > 0 {
			groups++
		}
	}
	return len(m.Triangles), groups
}
