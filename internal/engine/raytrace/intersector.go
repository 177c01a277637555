package raytrace

import (
	"github.com/Faultbox/midgard-rt/internal/engine/kdtree"
	"github.com/Faultbox/midgard-rt/internal/engine/model"
	"github.com/Faultbox/midgard-rt/internal/engine/picking"
)

// Intersector finds the nearest triangle along a ray.
type Intersector interface {
	Search(r picking.Ray) (picking.Hit, bool)
}

var (
	_ Intersector = (*kdtree.Tree)(nil)
	_ Intersector = (*BruteForce)(nil)
)

// BruteForce tests every triangle of a model. It is the reference the
// KD-tree is checked against and the fallback for tiny scenes.
type BruteForce struct {
	Model *model.Model
}

// Search returns the nearest hit over all triangles.
func (b *BruteForce) Search(r picking.Ray) (picking.Hit, bool) {
	found := false
	var best picking.Hit
	for i := range b.Model.Triangles {
		v0, v1, v2 := b.Model.TriangleVertices(i)
		dist, ok := r.HitMesh(v0, v1, v2)
		if !ok {
			continue
		}
		if !found || dist < best.Distance {
			best = picking.Hit{Distance: dist, Triangle: i}
			found = true
		}
	}
	return best, found
}
