package kdtree

// Stats summarizes the shape of a built tree.
type Stats struct {
	Nodes            int
	Leaves           int
	EmptyLeaves      int
	MaxDepth         int
	TriangleRefs     int // triangle indices stored across all leaves
	AvgLeafTriangles float64
}

// Stats walks the arena and reports node counts and leaf occupancy.
func (t *Tree) Stats() Stats {
	var s Stats
	s.Nodes = len(t.nodes)
	for i := range t.nodes {
		n := &t.nodes[i]
		s.MaxDepth = max(s.MaxDepth, n.Depth)
		if !n.Leaf {
			continue
		}
		s.Leaves++
		s.TriangleRefs += len(n.Triangles)
		if len(n.Triangles) == 0 {
			s.EmptyLeaves++
		}
	}
	if s.Leaves > 0 {
		s.AvgLeafTriangles = float64(s.TriangleRefs) / float64(s.Leaves)
	}
	return s
}
