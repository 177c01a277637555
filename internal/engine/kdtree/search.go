package kdtree

import (
	"github.com/Faultbox/midgard-rt/internal/engine/picking"
)

// stackSize bounds the traversal stack. A tree never has more pending far
// children than its depth.
const stackSize = 64

type pending struct {
	node       int
	tmin, tmax float32
}

// Search returns the nearest triangle hit by r. Children are visited near
// side first, so the first leaf that yields a hit inside its interval holds
// the nearest one.
func (t *Tree) Search(r picking.Ray) (picking.Hit, bool) {
	if len(t.nodes) == 0 {
		return picking.Hit{}, false
	}

	tmin, tmax, ok := r.HitBox(t.nodes[0].Box)
	if !ok {
		return picking.Hit{}, false
	}
	tmin = max(tmin, 0)

	var buf [stackSize]pending
	stack := buf[:0]

	idx := 0
	for {
		n := &t.nodes[idx]

		if !n.Leaf {
			o := r.Origin.Get(n.Axis)
			d := r.Dir.Get(n.Axis)

			if d == 0 {
				if o <= n.Split {
					idx = n.Left
				} else {
					idx = n.Right
				}
				continue
			}

			near, far := n.Left, n.Right
			if d < 0 {
				near, far = far, near
			}

			tHit := (n.Split - o) / d
			switch {
			case tHit > tmax:
				idx = near
			case tHit < tmin:
				idx = far
			default:
				stack = append(stack, pending{node: far, tmin: tHit, tmax: tmax})
				idx = near
				tmax = tHit
			}
			continue
		}

		if hit, found := t.hitLeaf(n, r, tmax); found {
			return hit, true
		}

		if len(stack) == 0 {
			return picking.Hit{}, false
		}
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		idx, tmin, tmax = top.node, top.tmin, top.tmax
	}
}

// hitLeaf tests every triangle of leaf n and returns the nearest hit that
// lies within the leaf's part of the ray. Hits beyond tmax belong to a
// later leaf, which may hold a nearer triangle.
func (t *Tree) hitLeaf(n *Node, r picking.Ray, tmax float32) (picking.Hit, bool) {
	best := picking.Hit{Triangle: None}
	for _, tri := range n.Triangles {
		a, b, c := t.model.TriangleVertices(tri)
		dist, ok := r.HitMesh(a, b, c)
		if !ok || dist > tmax+picking.Epsilon {
			continue
		}
		if best.Triangle == None || dist < best.Distance {
			best = picking.Hit{Distance: dist, Triangle: tri}
		}
	}
	return best, best.Triangle != None
}
