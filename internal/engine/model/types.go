// Package model holds the triangle-mesh scene consumed by the ray tracer.
//
// Vertex, normal and texcoord arrays are 1-based: index 0 of each array is a
// sentinel meaning "unset". Material 0 is always the blank default material.
package model

import (
	"github.com/Faultbox/midgard-rt/pkg/math"
)

// Triangle references three vertices, normals and texcoords by 1-based index.
type Triangle struct {
	VIndices [3]int // vertex indices
	NIndices [3]int // normal indices, 0 when absent
	TIndices [3]int // texcoord indices, 0 when absent
	Group    int    // owning group

	// Bounds encloses the three vertices. Recomputed by UpdateBounds.
	Bounds math.Box
}

// Material describes the Phong shading parameters of a surface.
type Material struct {
	Name      string
	Diffuse   math.Vec4 // RGBA, alpha scales the color
	Ambient   math.Vec4
	Specular  math.Vec4
	Emissive  math.Vec4
	Shininess float32

	// Transparency holds the MTL dissolve value: 1 is opaque and the
	// surface color is weighted by it when refraction applies.
	Transparency float32
	Density      float32 // index of refraction, 0 disables refraction
	Illum        int     // illumination model 0..10
}

// Illumination model ranges that enable secondary rays.
const (
	IllumReflectMin = 3
	IllumReflectMax = 7
	IllumRefractMin = 6
	IllumRefractMax = 7
)

// Reflective reports whether the illumination model spawns reflection rays.
func (m *Material) Reflective() bool {
	return m.Illum >= IllumReflectMin && m.Illum <= IllumReflectMax
}

// Transmissive reports whether the surface color is blended for refraction.
func (m *Material) Transmissive() bool {
	return m.Transparency < 1 && m.Density != 0
}

// Refractive reports whether the illumination model spawns refraction rays.
func (m *Material) Refractive() bool {
	return m.Illum >= IllumRefractMin && m.Illum <= IllumRefractMax
}

// DefaultMaterial returns the blank material stored at index 0.
func DefaultMaterial() Material {
	return Material{
		Name:         "blank",
		Diffuse:      math.Vec4{0.8, 0.8, 0.8, 1},
		Ambient:      math.Vec4{0.2, 0.2, 0.2, 1},
		Specular:     math.Vec4{0, 0, 0, 1},
		Emissive:     math.Vec4{0, 0, 0, 1},
		Shininess:    65,
		Transparency: 1,
		Illum:        2,
	}
}

// Group is a named set of triangles sharing a material.
type Group struct {
	Name      string
	Material  int
	Triangles []int
}

// DefaultGroupName names group 0, which collects faces declared before any "g".
const DefaultGroupName = "default"
