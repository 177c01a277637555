package main

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/Faultbox/midgard-rt/internal/config"
	"github.com/Faultbox/midgard-rt/internal/engine/kdtree"
	"github.com/Faultbox/midgard-rt/internal/engine/model"
	"github.com/Faultbox/midgard-rt/internal/engine/raytrace"
)

// writeReport prints the scene, acceleration structure and render counters.
// tree is nil when the brute-force intersector was used.
func writeReport(w io.Writer, cfg *config.Config, m *model.Model, tree *kdtree.Tree, rs raytrace.Stats) {
	table := tablewriter.NewWriter(w)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Section", "Item", "Value"})

	triangles, groups := m.CountFaces()
	table.Append([]string{"Scene", "---", cfg.Scene.Path})
	table.Append([]string{"", "Vertices", itoa(len(m.Vertices) - 1)})
	table.Append([]string{"", "Triangles", itoa(triangles)})
	table.Append([]string{"", "Groups", itoa(groups)})
	table.Append([]string{"", "Materials", itoa(len(m.Materials) - 1)})
	table.Append([]string{" ", " ", " "})

	if tree != nil {
		opts, s := tree.Options(), tree.Stats()
		table.Append([]string{"KD-tree", "---", fmt.Sprintf("depth <= %d, leaf <= %d", opts.MaxDepth, opts.LeafSize)})
		table.Append([]string{"", "Nodes", itoa(s.Nodes)})
		table.Append([]string{"", "Leaves", fmt.Sprintf("%d (%d empty)", s.Leaves, s.EmptyLeaves)})
		table.Append([]string{"", "Max depth", itoa(s.MaxDepth)})
		table.Append([]string{"", "Triangle refs", itoa(s.TriangleRefs)})
		table.Append([]string{"", "Avg per leaf", fmt.Sprintf("%.2f", s.AvgLeafTriangles)})
	} else {
		table.Append([]string{"Intersector", "---", "brute force"})
	}
	table.Append([]string{" ", " ", " "})

	table.Append([]string{"Render", "---", fmt.Sprintf("%dx%d, depth %d", cfg.Render.Width, cfg.Render.Height, cfg.Render.MaxDepth)})
	table.Append([]string{"", "Primary rays", itoa(rs.PrimaryRays)})
	table.Append([]string{"", "Secondary rays", itoa(rs.SecondaryRays)})
	table.Append([]string{"", "Shadow rays", fmt.Sprintf("%d (%d occluded)", rs.ShadowRays, rs.Occluded)})
	table.Append([]string{"", "Hits", itoa(rs.Hits)})
	table.Append([]string{"", "Elapsed", rs.Elapsed.Round(time.Millisecond).String()})
	table.Append([]string{"", "Output", cfg.Output.Path})

	table.Render()
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
