// Package camera provides the pinhole camera used to generate primary rays.
package camera

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/midgard-rt/pkg/math"
)

// Camera is a pinhole camera looking from Eye at Center.
//
// Dir, VecX, VecY, Base and PixelSize are derived by Update. The setters call
// Update themselves; after writing the fields directly, call Update before
// the next render.
type Camera struct {
	Eye    math.Vec3
	Center math.Vec3
	Up     math.Vec3
	Width  int
	Height int
	Angle  float32 // horizontal field of view, radians

	// Derived by Update.
	Dir       math.Vec3 // unit view direction
	VecX      math.Vec3 // unit image-plane right vector
	VecY      math.Vec3 // unit image-plane up vector
	Base      math.Vec3 // world position of pixel (0,0), the bottom-left corner
	PixelSize float32   // world-space pixel pitch on the plane through Center
}

// New creates a camera and computes its derived fields.
func New(eye, center, up math.Vec3, width, height int, angle float32) *Camera {
	c := &Camera{
		Eye:    eye,
		Center: center,
		Up:     up,
		Width:  width,
		Height: height,
		Angle:  angle,
	}
	c.Update()
	return c
}

// Radians converts degrees to radians.
func Radians(deg float32) float32 {
	return deg * math32.Pi / 180
}

// SetEye moves the camera.
func (c *Camera) SetEye(eye math.Vec3) {
	c.Eye = eye
	c.Update()
}

// SetCenter changes the look-at point.
func (c *Camera) SetCenter(center math.Vec3) {
	c.Center = center
	c.Update()
}

// SetUp changes the up vector.
func (c *Camera) SetUp(up math.Vec3) {
	c.Up = up
	c.Update()
}

// SetSize changes the image size in pixels.
func (c *Camera) SetSize(width, height int) {
	c.Width = width
	c.Height = height
	c.Update()
}

// SetAngle changes the field of view, in radians.
func (c *Camera) SetAngle(angle float32) {
	c.Angle = angle
	c.Update()
}

// Update recomputes the view direction and the image-plane basis.
// VecX, VecY and Dir are mutually orthogonal unit vectors afterwards.
func (c *Camera) Update() {
	view := c.Center.Sub(c.Eye)
	dist := view.Length()
	c.Dir = view.Normalize()

	width := max(c.Width, 1)
	c.PixelSize = math32.Tan(c.Angle/2) * dist * 2 / float32(width)

	right := c.Dir.Cross(c.Up)
	if right.Length() < 1e-6 {
		// Up is parallel to the view direction; pick any perpendicular.
		right = c.Dir.Cross(math.Vec3{X: 0, Y: 0, Z: 1})
		if right.Length() < 1e-6 {
			right = c.Dir.Cross(math.Vec3{X: 1, Y: 0, Z: 0})
		}
	}
	c.VecX = right.Normalize()
	c.VecY = c.VecX.Cross(c.Dir).Normalize()

	halfW := c.PixelSize * float32(c.Width) / 2
	halfH := c.PixelSize * float32(c.Height) / 2
	c.Base = c.Center.Sub(c.VecX.Scale(halfW)).Sub(c.VecY.Scale(halfH))
}

// PixelPoint returns the world position of pixel (w, h) on the image plane.
func (c *Camera) PixelPoint(w, h int) math.Vec3 {
	return c.Base.
		Add(c.VecX.Scale(float32(w) * c.PixelSize)).
		Add(c.VecY.Scale(float32(h) * c.PixelSize))
}
