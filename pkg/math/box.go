package math

import "github.com/chewxy/math32"

// Box is an axis-aligned bounding box spanning Start (min corner) to End (max corner).
type Box struct {
	Start Vec3
	End   Vec3
}

// EmptyBox returns an inverted box that any Extend or Union call replaces.
func EmptyBox() Box {
	return Box{
		Start: Splat(math32.MaxFloat32),
		End:   Splat(-math32.MaxFloat32),
	}
}

// BoxOf returns the tight box around the given points.
func BoxOf(points ...Vec3) Box {
	b := EmptyBox()
	for _, p := range points {
		b = b.Extend(p)
	}
	return b
}

// IsEmpty reports whether the box encloses nothing.
func (b Box) IsEmpty() bool {
	return b.Start.X > b.End.X || b.Start.Y > b.End.Y || b.Start.Z > b.End.Z
}

// Extend returns the box grown to include p.
func (b Box) Extend(p Vec3) Box {
	return Box{Start: b.Start.Min(p), End: b.End.Max(p)}
}

// Union returns the smallest box enclosing both boxes.
func (b Box) Union(other Box) Box {
	return Box{Start: b.Start.Min(other.Start), End: b.End.Max(other.End)}
}

// Intersect returns the overlap of both boxes, which may be empty.
func (b Box) Intersect(other Box) Box {
	return Box{Start: b.Start.Max(other.Start), End: b.End.Min(other.End)}
}

// Span returns the box extent along an axis.
func (b Box) Span(a Axis) float32 {
	return b.End.Get(a) - b.Start.Get(a)
}

// Size returns the extent along every axis.
func (b Box) Size() Vec3 {
	return b.End.Sub(b.Start)
}

// Center returns the box midpoint.
func (b Box) Center() Vec3 {
	return b.Start.Add(b.End).Scale(0.5)
}

// LongestAxis returns the axis with the largest extent, preferring X then Y on ties.
func (b Box) LongestAxis() Axis {
	s := b.Size()
	switch {
	case s.X >= s.Y && s.X >= s.Z:
		return AxisX
	case s.Y >= s.Z:
		return AxisY
	default:
		return AxisZ
	}
}
