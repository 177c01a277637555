package model

import (
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-rt/pkg/formats"
	"github.com/Faultbox/midgard-rt/pkg/math"
)

// FromOBJ builds a model from a parsed OBJ file and its material libraries.
// Groups bound to a material no library defines fall back to the blank
// material. The result still needs Normalize or Prepare before rendering.
func FromOBJ(obj *formats.OBJ, libs []*formats.MTL, log *zap.Logger) *Model {
	if log == nil {
		log = zap.NewNop()
	}
	m := New()

	for i, lib := range libs {
		for _, mm := range lib.Materials {
			if definedEarlier(libs[:i], mm.Name) {
				log.Warn("material redefined, keeping the first definition", zap.String("material", mm.Name))
				continue
			}
			m.AddMaterial(materialFromMTL(mm))
		}
	}

	// OBJ indices are 1-based and the sentinel occupies index 0, so file
	// indices carry over unchanged.
	for _, v := range obj.Vertices {
		m.AddVertex(v)
	}
	for _, n := range obj.Normals {
		m.AddNormal(n)
	}
	for _, t := range obj.TexCoords {
		m.AddTexCoord(t)
	}

	groupIdx := make([]int, len(obj.Groups))
	for i, g := range obj.Groups {
		idx := m.FindGroup(g.Name)
		groupIdx[i] = idx
		if g.Material == "" {
			continue
		}
		mat, ok := m.FindMaterial(g.Material)
		if !ok {
			log.Warn("unknown material, using blank",
				zap.String("group", g.Name),
				zap.String("material", g.Material),
			)
		}
		m.Groups[idx].Material = mat
	}

	for _, f := range obj.Faces {
		m.AddTriangle(Triangle{
			VIndices: f.V,
			NIndices: f.N,
			TIndices: f.T,
			Group:    groupIdx[f.Group],
		})
	}

	return m
}

func definedEarlier(libs []*formats.MTL, name string) bool {
	for _, lib := range libs {
		if _, ok := lib.Find(name); ok {
			return true
		}
	}
	return false
}

// materialFromMTL converts a parsed MTL block. Alpha channels are 1.
func materialFromMTL(mm formats.MTLMaterial) Material {
	mat := DefaultMaterial()
	mat.Name = mm.Name
	mat.Diffuse = rgba(mm.Diffuse)
	mat.Ambient = rgba(mm.Ambient)
	mat.Specular = rgba(mm.Specular)
	mat.Shininess = mm.Shininess
	mat.Density = mm.Density
	mat.Transparency = mm.Dissolve
	mat.Illum = mm.Illum
	return mat
}

func rgba(c [3]float32) math.Vec4 {
	return math.Vec4{c[0], c[1], c[2], 1}
}

// Load reads an OBJ file and the material libraries it names, resolved
// relative to the OBJ's directory, and checks the result with Validate.
// When normalize is set the model is fitted to the [-1,1] cube; otherwise
// it is only prepared.
func Load(path string, normalize bool, log *zap.Logger) (*Model, error) {
	if log == nil {
		log = zap.NewNop()
	}

	obj, err := formats.ParseOBJFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}

	dir := filepath.Dir(path)
	libs := make([]*formats.MTL, 0, len(obj.MaterialLibs))
	for _, name := range obj.MaterialLibs {
		lib, err := formats.ParseMTLFile(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("loading material library %s: %w", name, err)
		}
		libs = append(libs, lib)
	}

	m := FromOBJ(obj, libs, log)
	if err := m.checkIndices(); err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	if normalize {
		m.Normalize()
	} else {
		m.Prepare()
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}

	log.Debug("faces per group", zap.Any("groups", obj.CountByGroup()))

	triangles, groups := m.CountFaces()
	log.Info("model loaded",
		zap.String("path", path),
		zap.Int("vertices", len(m.Vertices)-1),
		zap.Int("triangles", triangles),
		zap.Int("groups", groups),
		zap.Int("materials", len(m.Materials)-1),
	)
	return m, nil
}
