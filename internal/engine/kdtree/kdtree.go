// Package kdtree implements a KD-tree over the triangles of a model.
//
// Nodes live in a flat arena and refer to each other by index; the root is
// node 0 and -1 marks an absent link. A tree is built once by Init and is
// read-only afterwards, so any number of goroutines may Search it at once.
package kdtree

import (
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-rt/internal/engine/model"
	"github.com/Faultbox/midgard-rt/pkg/math"
)

// None marks an absent node link.
const None = -1

// planeEpsilon is the tolerance used when classifying triangle boxes
// against a split plane.
const planeEpsilon = 1e-5

// Node is a KD-tree node.
type Node struct {
	Box    math.Box
	Axis   math.Axis
	Split  float32 // plane offset along Axis
	Left   int     // child below the plane
	Right  int     // child above the plane
	Parent int
	Leaf   bool
	Depth  int

	// Triangles lists every triangle whose box overlaps this node.
	Triangles []int
}

// Options controls tree construction.
type Options struct {
	MaxDepth   int     // nodes at this depth become leaves
	LeafSize   int     // nodes with this many triangles or fewer become leaves
	EmptyRatio float32 // empty-space fraction that triggers a tight split
	Logger     *zap.Logger
}

// DefaultOptions returns the standard build limits.
func DefaultOptions() Options {
	return Options{
		MaxDepth:   16,
		LeafSize:   5,
		EmptyRatio: 0.25,
	}
}

// Tree is a KD-tree over a model's triangles.
type Tree struct {
	opts  Options
	log   *zap.Logger
	model *model.Model
	nodes []Node
}

// New creates an empty tree. Zero option fields fall back to the defaults.
func New(opts Options) *Tree {
	def := DefaultOptions()
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = def.MaxDepth
	}
	if opts.LeafSize <= 0 {
		opts.LeafSize = def.LeafSize
	}
	if opts.EmptyRatio <= 0 {
		opts.EmptyRatio = def.EmptyRatio
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Tree{opts: opts, log: log}
}

// Build creates a tree over m with the given options.
func Build(m *model.Model, opts Options) *Tree {
	t := New(opts)
	t.Init(m)
	return t
}

// Init discards any previous tree and builds a new one over m.
// The model's triangle boxes must be current (see model.Prepare).
func (t *Tree) Init(m *model.Model) {
	t.model = m
	t.nodes = nil

	all := make([]int, len(m.Triangles))
	for i := range all {
		all[i] = i
	}
	t.nodes = append(t.nodes, Node{
		Box:       m.Bounds(),
		Left:      None,
		Right:     None,
		Parent:    None,
		Triangles: all,
	})

	// Depth-first over an explicit stack of node indices.
	stack := []int{0}
	for len(stack) > 0 {
		idx := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if t.splitNode(idx) {
			stack = append(stack, t.nodes[idx].Right, t.nodes[idx].Left)
		}
	}

	s := t.Stats()
	t.log.Debug("kd-tree built",
		zap.Int("triangles", len(m.Triangles)),
		zap.Int("nodes", s.Nodes),
		zap.Int("leaves", s.Leaves),
		zap.Int("max_depth", s.MaxDepth),
		zap.Float64("avg_leaf_triangles", s.AvgLeafTriangles),
	)
}

// Model returns the model the tree was built over.
func (t *Tree) Model() *model.Model {
	return t.model
}

// Options returns the build limits in effect, with defaults filled in.
func (t *Tree) Options() Options {
	return t.opts
}

// Nodes returns the node arena. Callers must not modify it.
func (t *Tree) Nodes() []Node {
	return t.nodes
}

// splitNode turns node idx into a leaf or splits it in two, appending the
// children to the arena. It reports whether children were created.
func (t *Tree) splitNode(idx int) bool {
	n := &t.nodes[idx]
	if n.Depth >= t.opts.MaxDepth || len(n.Triangles) <= t.opts.LeafSize {
		n.Leaf = true
		return false
	}

	axis, split := t.findPlane(idx)

	var left, right []int
	for _, tri := range n.Triangles {
		b := t.model.Triangles[tri].Bounds
		if b.Start.Get(axis) <= split+planeEpsilon {
			left = append(left, tri)
		}
		if b.End.Get(axis) >= split-planeEpsilon {
			right = append(right, tri)
		}
	}

	// A plane that separates nothing cannot make progress.
	if len(left) == len(n.Triangles) && len(right) == len(n.Triangles) {
		n.Leaf = true
		return false
	}

	leftBox, rightBox := n.Box, n.Box
	leftBox.End = leftBox.End.With(axis, split)
	rightBox.Start = rightBox.Start.With(axis, split)

	n.Axis = axis
	n.Split = split
	n.Left = len(t.nodes)
	n.Right = n.Left + 1
	depth := n.Depth + 1

	// n is invalid once the arena grows.
	t.nodes = append(t.nodes,
		Node{Box: leftBox, Left: None, Right: None, Parent: idx, Depth: depth, Triangles: left},
		Node{Box: rightBox, Left: None, Right: None, Parent: idx, Depth: depth, Triangles: right},
	)
	return true
}

// findPlane chooses the split plane for node idx. Axes are tried in X, Y, Z
// order: the first whose empty space on either side of the triangles exceeds
// EmptyRatio of the node span is cut at the triangles' edge. Otherwise the
// longest axis is cut at its spatial median.
func (t *Tree) findPlane(idx int) (math.Axis, float32) {
	n := &t.nodes[idx]

	tight := math.EmptyBox()
	for _, tri := range n.Triangles {
		tight = tight.Union(t.model.Triangles[tri].Bounds)
	}
	tight = tight.Intersect(n.Box)

	if !tight.IsEmpty() {
		for _, axis := range [...]math.Axis{math.AxisX, math.AxisY, math.AxisZ} {
			span := n.Box.Span(axis)
			if span <= 0 {
				continue
			}
			if (tight.Start.Get(axis)-n.Box.Start.Get(axis))/span > t.opts.EmptyRatio {
				return axis, tight.Start.Get(axis)
			}
			if (n.Box.End.Get(axis)-tight.End.Get(axis))/span > t.opts.EmptyRatio {
				return axis, tight.End.Get(axis)
			}
		}
	}

	axis := n.Box.LongestAxis()
	return axis, (n.Box.Start.Get(axis) + n.Box.End.Get(axis)) / 2
}
