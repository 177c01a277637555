package raytrace

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/midgard-rt/internal/engine/model"
	"github.com/Faultbox/midgard-rt/internal/engine/picking"
	"github.com/Faultbox/midgard-rt/pkg/math"
)

// Trace returns the color seen along r, following reflection and
// refraction rays until depth runs out. Channels are clamped to [0,1].
func (t *Tracer) Trace(r picking.Ray, depth int) math.Vec3 {
	var color math.Vec3
	if depth <= 0 {
		return color
	}

	hit, ok := t.index.Search(r)
	if !ok {
		return color
	}
	t.stats.Hits++

	mat := t.model.MaterialOf(hit.Triangle)
	normal := t.model.TriNormals[hit.Triangle]
	pos := r.At(hit.Distance)

	ambient := mat.Ambient.Weighted()
	for _, l := range t.ambient {
		color = color.Add(ambient.Mul(l.Color()))
	}

	for _, dir := range t.visibleLights(pos, hit.Triangle) {
		color = color.Add(diffuse(mat, dir, normal))
		color = color.Add(specular(mat, dir, normal, r.Dir))
	}

	if mat.Reflective() {
		t.stats.SecondaryRays++
		refl := Reflect(r.Dir.Negate(), normal)
		color = color.Add(t.Trace(picking.NewRay(pos, refl), depth-1))
	}

	if mat.Transmissive() {
		color = color.ClampUpper(1).Scale(mat.Transparency)

		if mat.Refractive() {
			t.stats.SecondaryRays++
			// Step past the surface before leaving it.
			origin := pos.Add(r.Dir.Scale(2 * picking.Epsilon))
			refr := Refract(r.Dir, normal, mat.Density)
			through := t.Trace(picking.NewRay(origin, refr), depth-1)
			color = color.Add(through.Scale(1 - mat.Transparency))
		}
	}

	return color.Clamp(0, 1)
}

// visibleLights returns the unit directions from pos toward every point
// light that is not blocked by another triangle.
func (t *Tracer) visibleLights(pos math.Vec3, self int) []math.Vec3 {
	var dirs []math.Vec3
	for _, l := range t.positional {
		toLight := l.Position().Sub(pos)
		dist := toLight.Length()
		sr := picking.NewRay(pos, toLight)
		t.stats.ShadowRays++

		if hit, ok := t.index.Search(sr); ok && hit.Triangle != self && hit.Distance < dist {
			t.stats.Occluded++
			continue
		}
		dirs = append(dirs, sr.Dir)
	}
	return dirs
}

// diffuse returns the Lambert term for a light in direction l.
func diffuse(mat *model.Material, l, n math.Vec3) math.Vec3 {
	return mat.Diffuse.Weighted().Scale(max(l.Dot(n), 0))
}

// specular returns the Phong highlight seen along view for a light in
// direction l.
func specular(mat *model.Material, l, n, view math.Vec3) math.Vec3 {
	vr := max(Reflect(l, n).Dot(view.Negate()), 0)
	return mat.Specular.Weighted().Scale(math32.Pow(vr, mat.Shininess))
}

// Reflect mirrors d about n: normalize(2(d.n)n - d). Both vectors point away
// from the surface.
func Reflect(d, n math.Vec3) math.Vec3 {
	return n.Scale(2 * d.Dot(n)).Sub(d).Normalize()
}

// Refract bends the incoming direction d through a surface with normal n and
// refractive density. When d.n is negative the ray is taken to leave the
// medium, so the normal is flipped and the density inverted. Past the
// critical angle the result lies along the surface. Refract panics if
// density is zero. Both vectors must be unit length.
func Refract(d, n math.Vec3, density float32) math.Vec3 {
	if density == 0 {
		panic("raytrace: refraction through a material with zero density")
	}
	if d.Dot(n) < 0 {
		n = n.Negate()
		density = 1 / density
	}

	// Unit vectors can still give |d.n| slightly above 1 after rounding.
	cosIn := min(d.Dot(n), 1)
	cos2Out := 1 - (1-cosIn*cosIn)*density*density
	cos2Out = max(0, min(cos2Out, 1))
	cosOut := math32.Sqrt(cos2Out)
	sinOut := math32.Sqrt(max(0, 1-cos2Out))

	tangent := d.Sub(n.Scale(n.Dot(d))).Normalize()
	return n.Scale(cosOut).Add(tangent.Scale(sinOut))
}

// PackColor quantizes c to 8 bits per channel: red in the low byte, then
// green, then blue. The top byte is zero.
func PackColor(c math.Vec3) uint32 {
	c = c.Clamp(0, 1)
	// Channels are non-negative here, so +0.5 rounds to nearest.
	r := uint32(c.X*255 + 0.5)
	g := uint32(c.Y*255 + 0.5)
	b := uint32(c.Z*255 + 0.5)
	return r | g<<8 | b<<16
}

// UnpackColor splits a packed pixel into its 8-bit channels.
func UnpackColor(p uint32) (r, g, b uint8) {
	return uint8(p), uint8(p >> 8), uint8(p >> 16)
}
