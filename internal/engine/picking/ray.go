// Package picking provides rays and the ray/triangle and ray/box tests that
// every scene query is built on.
package picking

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/midgard-rt/internal/engine/camera"
	"github.com/Faultbox/midgard-rt/pkg/math"
)

// Epsilon is the smallest distance counted as a hit. It keeps secondary rays
// from re-hitting the surface they start on.
const Epsilon = 0.0001

// Ray represents a ray in 3D space with origin and direction.
type Ray struct {
	Origin math.Vec3
	Dir    math.Vec3 // Normalized direction
}

// Hit is the nearest intersection found along a ray.
type Hit struct {
	Distance float32
	Triangle int
}

// NewRay creates a ray, normalizing dir.
func NewRay(origin, dir math.Vec3) Ray {
	return Ray{Origin: origin, Dir: dir.Normalize()}
}

// CameraRay creates the primary ray from the camera eye through pixel (w, h).
func CameraRay(c *camera.Camera, w, h int) Ray {
	return NewRay(c.Eye, c.PixelPoint(w, h).Sub(c.Eye))
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float32) math.Vec3 {
	return r.Origin.Add(r.Dir.Scale(t))
}

// HitMesh intersects the ray with triangle (a, b, c) using barycentric
// coordinates solved by Cramer's rule. It reports the distance along the ray
// and true only for hits farther than Epsilon; a ray parallel to the
// triangle plane never hits.
func (r Ray) HitMesh(a, b, c math.Vec3) (float32, bool) {
	t1 := a.Sub(b)
	t2 := a.Sub(c)
	t3 := a.Sub(r.Origin)

	detA := t1.Det(t2, r.Dir)
	if math32.Abs(detA) < 1e-12 {
		return -1, false
	}

	beta := t3.Det(t2, r.Dir) / detA
	gamma := t1.Det(t3, r.Dir) / detA
	if !(beta >= 0 && gamma >= 0 && beta+gamma <= 1) {
		return -1, false
	}

	t := t1.Det(t2, t3) / detA
	if !(t > Epsilon) {
		return -1, false
	}
	return t, true
}

// HitBox clips the ray against an axis-aligned box with the slab test.
// It returns the parametric entry and exit distances; ok is false when the
// box is missed or lies entirely behind the origin.
func (r Ray) HitBox(box math.Box) (tmin, tmax float32, ok bool) {
	tmin = -math32.MaxFloat32
	tmax = math32.MaxFloat32

	for _, axis := range [...]math.Axis{math.AxisX, math.AxisY, math.AxisZ} {
		o := r.Origin.Get(axis)
		d := r.Dir.Get(axis)
		lo := box.Start.Get(axis)
		hi := box.End.Get(axis)

		if d == 0 {
			// Parallel to the slab: either always inside it or never.
			if o < lo || o > hi {
				return 0, 0, false
			}
			continue
		}

		t1 := (lo - o) / d
		t2 := (hi - o) / d
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin = t1
		}
		if t2 < tmax {
			tmax = t2
		}
		if tmin > tmax || tmax < 0 {
			return 0, 0, false
		}
	}

	return tmin, tmax, true
}
