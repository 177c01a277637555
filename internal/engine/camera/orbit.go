package camera

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/midgard-rt/pkg/math"
)

// OrbitCamera orbits around a center point. It drives the eye of a Camera
// from keyboard input in the preview window.
type OrbitCamera struct {
	// Center point to orbit around
	Center math.Vec3

	// Spherical coordinates
	Distance  float32 // Distance from center
	RotationX float32 // Pitch (vertical angle, radians)
	RotationY float32 // Yaw (horizontal angle, radians)

	// Constraints
	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32

	// Sensitivity
	RotateStep      float32
	ZoomSensitivity float32
}

// NewOrbitCamera creates an orbit camera sized for a normalized model.
func NewOrbitCamera() *OrbitCamera {
	return &OrbitCamera{
		Distance:        3.0,
		MinDistance:     0.5,
		MaxDistance:     50.0,
		MinPitch:        -1.5,
		MaxPitch:        1.5,
		RotateStep:      0.15,
		ZoomSensitivity: 0.1,
	}
}

// FromCamera initializes the orbit so that Position reproduces the camera eye.
func (c *OrbitCamera) FromCamera(cam *Camera) {
	c.Center = cam.Center
	offset := cam.Eye.Sub(cam.Center)
	c.Distance = cam.Eye.Distance(cam.Center)
	if c.Distance == 0 {
		c.Distance = c.MinDistance
		return
	}
	c.RotationX = math32.Asin(max(-1, min(1, offset.Y/c.Distance)))
	c.RotationY = math32.Atan2(offset.X, offset.Z)
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() math.Vec3 {
	x := c.Distance * math32.Cos(c.RotationX) * math32.Sin(c.RotationY)
	y := c.Distance * math32.Sin(c.RotationX)
	z := c.Distance * math32.Cos(c.RotationX) * math32.Cos(c.RotationY)
	return c.Center.Add(math.Vec3{X: x, Y: y, Z: z})
}

// Apply moves cam to the orbit position, looking at the orbit center.
func (c *OrbitCamera) Apply(cam *Camera) {
	cam.Eye = c.Position()
	cam.Center = c.Center
	cam.Up = math.Vec3{X: 0, Y: 1, Z: 0}
	cam.Update()
}

// Rotate turns the orbit by the given number of steps in yaw and pitch.
func (c *OrbitCamera) Rotate(yawSteps, pitchSteps float32) {
	c.RotationY += yawSteps * c.RotateStep
	c.RotationX += pitchSteps * c.RotateStep

	// Clamp pitch
	if c.RotationX < c.MinPitch {
		c.RotationX = c.MinPitch
	}
	if c.RotationX > c.MaxPitch {
		c.RotationX = c.MaxPitch
	}
}

// HandleZoom updates distance based on a zoom delta; positive zooms in.
func (c *OrbitCamera) HandleZoom(delta float32) {
	c.Distance -= delta * c.Distance * c.ZoomSensitivity
	if c.Distance < c.MinDistance {
		c.Distance = c.MinDistance
	}
	if c.Distance > c.MaxDistance {
		c.Distance = c.MaxDistance
	}
}

// FitToBounds centers the orbit on a box and backs off far enough to see it.
func (c *OrbitCamera) FitToBounds(b math.Box) {
	c.Center = b.Center()
	size := b.Size()
	c.Distance = max(size.X, size.Y, size.Z) * 1.5
	c.MaxDistance = max(c.MaxDistance, c.Distance*4)
	if c.Distance < c.MinDistance {
		c.Distance = c.MinDistance
	}
	if c.Distance > c.MaxDistance {
		c.Distance = c.MaxDistance
	}
	c.RotationX = 0.3
	c.RotationY = 0.0
}
