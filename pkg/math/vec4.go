package math

// Vec4 is a 4-component vector. Colors are stored as RGBA and light values as
// either a position or a color, with the fourth component as a weight.
type Vec4 [4]float32

// XYZ returns the first three components.
func (v Vec4) XYZ() Vec3 {
	return Vec3{v[0], v[1], v[2]}
}

// Weighted returns the first three components scaled by the fourth.
func (v Vec4) Weighted() Vec3 {
	return Vec3{v[0] * v[3], v[1] * v[3], v[2] * v[3]}
}
