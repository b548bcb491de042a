package graphs

import (
	"fmt"
	"slices"

	"github.com/awmpietro/golang-algorithm-visualizer/internal/step"
)

// DFS explores depth first, recursing into neighbors in order and
// reporting each backtrack. The recursion stack is the path when the
// target is found.
type DFS struct {
	step.Tracker

	g       *Graph
	start   string
	target  string
	visited []string
	seen    map[string]bool
	stack   []string
}

func NewDFS() *DFS { return &DFS{} }

func (d *DFS) Search(g *Graph, start, target string) step.Sequence {
	return d.Sequence(func() {
		d.g, d.start, d.target = g, start, target
		d.visited = []string{}
		d.seen = map[string]bool{}
		d.stack = nil

		d.Emit(step.OpInit, fmt.Sprintf("Starting DFS from %s over %d nodes", start, g.Len()),
			d.snapshot(""),
			step.Highlights(step.Nodes(step.ColorStacked, start)),
			step.Meta(step.Metadata{"visited_count": 0, "depth": 0}),
		)

		if !g.Has(start) {
			d.Emit(step.OpNotFound, fmt.Sprintf("Start node %s is not in the graph", start),
				d.snapshot(""),
				step.Meta(step.Metadata{"visited_count": 0, "path": []string{}}),
			)
			return
		}

		if d.visit(start) {
			path := slices.Clone(d.stack)
			d.Emit(step.OpFound, fmt.Sprintf("Reached %s; path length %d", target, len(path)-1),
				d.snapshot(target).With("path", path),
				step.Highlights(step.Nodes(step.ColorPath, path...), step.Edges(step.ColorPath, step.PathEdges(path)...)),
				step.Meta(step.Metadata{"visited_count": len(d.visited), "path": path, "path_length": len(path) - 1}),
			)
			return
		}

		if target != "" {
			d.Emit(step.OpNotFound, fmt.Sprintf("%s is not reachable from %s", target, start),
				d.snapshot(""),
				step.Highlights(step.Nodes(step.ColorVisited, d.visited...)),
				step.Meta(step.Metadata{"visited_count": len(d.visited), "path": []string{}}),
			)
			return
		}
		d.Emit(step.OpComplete, fmt.Sprintf("Traversal complete: visited %d nodes", len(d.visited)),
			d.snapshot(""),
			step.Highlights(step.Nodes(step.ColorVisited, d.visited...)),
			step.Meta(step.Metadata{"visited_count": len(d.visited), "order": slices.Clone(d.visited)}),
		)
	})
}

// visit reports whether the target was reached below node; the stack is
// left in place when it was.
func (d *DFS) visit(node string) bool {
	d.seen[node] = true
	d.visited = append(d.visited, node)
	d.stack = append(d.stack, node)

	d.Emit("visit", fmt.Sprintf("Visiting %s at depth %d", node, len(d.stack)-1),
		d.snapshot(node),
		step.Highlights(
			step.Nodes(step.ColorVisited, d.visited...),
			step.Nodes(step.ColorStacked, d.stack...),
			step.Nodes(step.ColorActive, node),
		),
		step.Meta(step.Metadata{"visited_count": len(d.visited), "depth": len(d.stack) - 1}),
		step.Source("dfs.visit"),
	)

	if d.target != "" && node == d.target {
		return true
	}

	for _, n := range d.g.Neighbors(node) {
		edge := step.Edge{From: node, To: n.To}
		if d.seen[n.To] {
			d.Emit("skip_neighbor", fmt.Sprintf("%s was already visited", n.To),
				d.snapshot(node),
				step.Highlights(step.Nodes(step.ColorActive, node), step.Edges(step.ColorExploring, edge)),
				step.Meta(step.Metadata{"visited_count": len(d.visited), "depth": len(d.stack) - 1}),
			)
			continue
		}
		d.Emit("explore_edge", fmt.Sprintf("Following edge %s -> %s", node, n.To),
			d.snapshot(node),
			step.Highlights(step.Nodes(step.ColorActive, node), step.Edges(step.ColorExploring, edge)),
			step.Meta(step.Metadata{"visited_count": len(d.visited), "depth": len(d.stack) - 1}),
		)
		if d.visit(n.To) {
			return true
		}
	}

	d.stack = d.stack[:len(d.stack)-1]
	parent := ""
	if len(d.stack) > 0 {
		parent = d.stack[len(d.stack)-1]
	}
	d.Emit("backtrack", fmt.Sprintf("%s is exhausted, backtracking", node),
		d.snapshot(parent),
		step.Highlights(step.Nodes(step.ColorBacktracked, node), step.Nodes(step.ColorStacked, d.stack...)),
		step.Meta(step.Metadata{"visited_count": len(d.visited), "depth": len(d.stack)}),
	)
	return false
}

func (d *DFS) snapshot(current string) step.State {
	return d.g.state().
		With("start", d.start).
		With("target", d.target).
		With("current", current).
		With("visited", slices.Clone(d.visited)).
		With("stack", append([]string{}, d.stack...))
}
