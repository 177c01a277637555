// Package lighting provides the light list handed to the ray tracer.
package lighting

import (
	"fmt"

	"github.com/Faultbox/midgard-rt/pkg/math"
)

// Kind selects how a light contributes to shading.
type Kind int

// Light kinds.
const (
	Ambient    Kind = iota // Value is an RGB color and an intensity weight
	Positional             // Value is a world position; the fourth component is unused
)

// String returns the kind name used in configuration files.
func (k Kind) String() string {
	switch k {
	case Ambient:
		return "ambient"
	case Positional:
		return "positional"
	default:
		return fmt.Sprintf("Unknown(%d)", int(k))
	}
}

// ParseKind converts a configuration name to a Kind.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "ambient":
		return Ambient, nil
	case "positional", "point":
		return Positional, nil
	default:
		return 0, fmt.Errorf("unknown light kind %q", s)
	}
}

// Light is an ambient or point light.
type Light struct {
	Kind  Kind
	Value math.Vec4
}

// NewAmbient creates an ambient light of the given color and weight.
func NewAmbient(r, g, b, weight float32) Light {
	return Light{Kind: Ambient, Value: math.Vec4{r, g, b, weight}}
}

// NewPositional creates a point light at p.
func NewPositional(p math.Vec3) Light {
	return Light{Kind: Positional, Value: math.Vec4{p.X, p.Y, p.Z, 1}}
}

// Color returns the ambient color scaled by its weight.
func (l Light) Color() math.Vec3 {
	return l.Value.Weighted()
}

// Position returns the point light position.
func (l Light) Position() math.Vec3 {
	return l.Value.XYZ()
}

// Lights is an ordered light list.
type Lights []Light

// Ambient returns the ambient lights in order.
func (ls Lights) Ambient() Lights {
	return ls.filter(Ambient)
}

// Positional returns the point lights in order.
func (ls Lights) Positional() Lights {
	return ls.filter(Positional)
}

func (ls Lights) filter(k Kind) Lights {
	var out Lights
	for _, l := range ls {
		if l.Kind == k {
			out = append(out, l)
		}
	}
	return out
}
