package camera

import (
	"testing"

	"github.com/chewxy/math32"

	"github.com/Faultbox/midgard-rt/pkg/math"
)

func near(a, b float32) bool {
	return math32.Abs(a-b) < 1e-5
}

func TestUpdateOrthonormalBasis(t *testing.T) {
	tests := []struct {
		name            string
		eye, center, up math.Vec3
	}{
		{"looking down -Z", math.Vec3{Z: 2}, math.Vec3{}, math.Vec3{Y: 1}},
		{"oblique", math.Vec3{X: 3, Y: 1, Z: -2}, math.Vec3{X: 0.5, Y: 0.2}, math.Vec3{Y: 1}},
		{"non-unit up", math.Vec3{X: 1, Y: 1, Z: 1}, math.Vec3{}, math.Vec3{Y: 7}},
		{"up parallel to view", math.Vec3{Y: 5}, math.Vec3{}, math.Vec3{Y: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(tt.eye, tt.center, tt.up, 64, 48, Radians(60))

			for name, v := range map[string]math.Vec3{"dir": c.Dir, "vecx": c.VecX, "vecy": c.VecY} {
				if l := v.Length(); !near(l, 1) {
					t.Errorf("%s length = %v, want 1", name, l)
				}
			}
			if d := c.Dir.Dot(c.VecX); !near(d, 0) {
				t.Errorf("dir.vecx = %v, want 0", d)
			}
			if d := c.Dir.Dot(c.VecY); !near(d, 0) {
				t.Errorf("dir.vecy = %v, want 0", d)
			}
			if d := c.VecX.Dot(c.VecY); !near(d, 0) {
				t.Errorf("vecx.vecy = %v, want 0", d)
			}
		})
	}
}

func TestUpdateImagePlane(t *testing.T) {
	c := New(math.Vec3{Z: 2}, math.Vec3{}, math.Vec3{Y: 1}, 100, 50, Radians(90))

	if !c.VecX.ApproxEqual(math.Vec3{X: 1}, 1e-6) {
		t.Errorf("vecx = %v, want +X", c.VecX)
	}
	if !c.VecY.ApproxEqual(math.Vec3{Y: 1}, 1e-6) {
		t.Errorf("vecy = %v, want +Y", c.VecY)
	}

	// tan(45deg) * distance 2 * 2 / 100 pixels
	if !near(c.PixelSize, 0.04) {
		t.Errorf("pixel size = %v, want 0.04", c.PixelSize)
	}

	// Pixel (0,0) is the bottom-left corner, the middle pixel is the center.
	if !c.Base.ApproxEqual(math.Vec3{X: -2, Y: -1}, 1e-5) {
		t.Errorf("base = %v, want (-2,-1,0)", c.Base)
	}
	if p := c.PixelPoint(50, 25); !p.ApproxEqual(c.Center, 1e-5) {
		t.Errorf("center pixel = %v, want %v", p, c.Center)
	}
}

func TestSettersRecompute(t *testing.T) {
	c := New(math.Vec3{Z: 2}, math.Vec3{}, math.Vec3{Y: 1}, 10, 10, Radians(60))

	c.SetEye(math.Vec3{X: 2})
	if !c.Dir.ApproxEqual(math.Vec3{X: -1}, 1e-6) {
		t.Errorf("dir after SetEye = %v, want -X", c.Dir)
	}

	before := c.PixelSize
	c.SetSize(20, 10)
	if !near(c.PixelSize, before/2) {
		t.Errorf("pixel size after doubling width = %v, want %v", c.PixelSize, before/2)
	}

	c.SetAngle(Radians(90))
	if !near(c.PixelSize, 2*2/20.0) {
		t.Errorf("pixel size after SetAngle = %v", c.PixelSize)
	}
}

func TestOrbitRoundTrip(t *testing.T) {
	cam := New(math.Vec3{X: 1, Y: 2, Z: 3}, math.Vec3{X: 0.5}, math.Vec3{Y: 1}, 32, 32, Radians(45))

	orbit := NewOrbitCamera()
	orbit.FromCamera(cam)
	if p := orbit.Position(); !p.ApproxEqual(cam.Eye, 1e-4) {
		t.Errorf("orbit position = %v, want eye %v", p, cam.Eye)
	}

	orbit.Rotate(1, 0)
	orbit.Apply(cam)
	if d := cam.Eye.Distance(cam.Center); !near(d, orbit.Distance) {
		t.Errorf("distance after rotate = %v, want %v", d, orbit.Distance)
	}
}

func TestOrbitClamps(t *testing.T) {
	orbit := NewOrbitCamera()

	orbit.Rotate(0, 100)
	if orbit.RotationX != orbit.MaxPitch {
		t.Errorf("pitch = %v, want clamp at %v", orbit.RotationX, orbit.MaxPitch)
	}

	for i := 0; i < 100; i++ {
		orbit.HandleZoom(1)
	}
	if orbit.Distance != orbit.MinDistance {
		t.Errorf("distance = %v, want clamp at %v", orbit.Distance, orbit.MinDistance)
	}
}

func TestOrbitFitToBounds(t *testing.T) {
	orbit := NewOrbitCamera()
	orbit.FitToBounds(math.Box{Start: math.Vec3{X: -1, Y: -1, Z: -1}, End: math.Vec3{X: 1, Y: 1, Z: 1}})

	if orbit.Center != (math.Vec3{}) {
		t.Errorf("center = %v, want origin", orbit.Center)
	}
	if orbit.Distance != 3 {
		t.Errorf("distance = %v, want 3", orbit.Distance)
	}
}

func TestOrbitFitToLargeBounds(t *testing.T) {
	orbit := NewOrbitCamera()
	orbit.FitToBounds(math.Box{Start: math.Vec3{X: 90, Y: 0, Z: 0}, End: math.Vec3{X: 190, Y: 40, Z: 10}})

	if orbit.Center != (math.Vec3{X: 140, Y: 20, Z: 5}) {
		t.Errorf("center = %v, want box center", orbit.Center)
	}
	if orbit.Distance != 150 {
		t.Errorf("distance = %v, want 150 (not clamped)", orbit.Distance)
	}

	cam := New(math.Vec3{Z: 2}, math.Vec3{}, math.Vec3{Y: 1}, 8, 8, Radians(60))
	orbit.Apply(cam)
	if d := cam.Eye.Distance(cam.Center); math32.Abs(d-150) > 1e-2 {
		t.Errorf("eye distance = %v, want 150", d)
	}
}
