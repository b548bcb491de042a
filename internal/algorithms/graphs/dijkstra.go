package graphs

import (
	"fmt"
	"math"
	"slices"

	"github.com/awmpietro/golang-algorithm-visualizer/internal/step"
)

// Dijkstra computes shortest distances from a start node over
// non-negative weights. The unvisited node with the smallest tentative
// distance is settled next; ties go to the node added to the graph first.
type Dijkstra struct {
	step.Tracker
}

func NewDijkstra() *Dijkstra { return &Dijkstra{} }

func (d *Dijkstra) ShortestPath(g *Graph, start, target string) step.Sequence {
	return d.Sequence(func() {
		dist := map[string]float64{}
		for _, n := range g.Nodes() {
			dist[n] = math.Inf(1)
		}
		dist[start] = 0
		parent := map[string]string{}
		settled := map[string]bool{}
		visited := []string{}

		snapshot := func(current string) step.State {
			return g.state().
				With("weights", g.Weights()).
				With("start", start).
				With("target", target).
				With("current", current).
				With("visited", slices.Clone(visited)).
				With("distances", distances(g, dist))
		}

		d.Emit(step.OpInit, fmt.Sprintf("Starting Dijkstra from %s over %d nodes", start, g.Len()),
			snapshot(""),
			step.Highlights(step.Nodes(step.ColorActive, start)),
			step.Meta(step.Metadata{"settled_count": 0, "relaxations": 0}),
		)

		if !g.Has(start) {
			d.Emit(step.OpNotFound, fmt.Sprintf("Start node %s is not in the graph", start),
				snapshot(""),
				step.Meta(step.Metadata{"settled_count": 0, "path": []string{}}),
			)
			return
		}

		relaxations := 0
		for {
			current, ok := closest(g, dist, settled)
			if !ok {
				break
			}
			settled[current] = true
			visited = append(visited, current)

			d.Emit("select_min", fmt.Sprintf("Settling %s at distance %s", current, formatDist(dist[current])),
				snapshot(current),
				step.Highlights(step.Nodes(step.ColorVisited, visited...), step.Nodes(step.ColorActive, current)),
				step.Meta(step.Metadata{"settled_count": len(visited), "relaxations": relaxations, "distance": dist[current]}),
				step.Source("dijkstra.select_min"),
			)

			if target != "" && current == target {
				path := tracePath(parent, start, target)
				d.Emit(step.OpFound, fmt.Sprintf("Shortest path to %s has length %s", target, formatDist(dist[target])),
					snapshot(current).With("path", path),
					step.Highlights(step.Nodes(step.ColorPath, path...), step.Edges(step.ColorPath, step.PathEdges(path)...)),
					step.Meta(step.Metadata{
						"settled_count": len(visited),
						"relaxations":   relaxations,
						"path":          path,
						"distance":      dist[target],
					}),
				)
				return
			}

			for _, n := range g.Neighbors(current) {
				if settled[n.To] {
					continue
				}
				edge := step.Edge{From: current, To: n.To}
				candidate := dist[current] + n.Weight
				if candidate < dist[n.To] {
					old := dist[n.To]
					dist[n.To] = candidate
					parent[n.To] = current
					relaxations++
					d.Emit("relax", fmt.Sprintf("Distance to %s improved from %s to %s via %s", n.To, formatDist(old), formatDist(candidate), current),
						snapshot(current),
						step.Highlights(step.Nodes(step.ColorActive, current), step.Nodes(step.ColorExploring, n.To), step.Edges(step.ColorExploring, edge)),
						step.Meta(step.Metadata{"settled_count": len(visited), "relaxations": relaxations, "weight": n.Weight}),
						step.Source("dijkstra.relax"),
					)
					continue
				}
				d.Emit("no_improvement", fmt.Sprintf("Path via %s to %s costs %s, keeping %s", current, n.To, formatDist(candidate), formatDist(dist[n.To])),
					snapshot(current),
					step.Highlights(step.Nodes(step.ColorActive, current), step.Edges(step.ColorComparing, edge)),
					step.Meta(step.Metadata{"settled_count": len(visited), "relaxations": relaxations, "weight": n.Weight}),
				)
			}
		}

		if target != "" {
			d.Emit(step.OpNotFound, fmt.Sprintf("%s is not reachable from %s", target, start),
				snapshot(""),
				step.Highlights(step.Nodes(step.ColorVisited, visited...)),
				step.Meta(step.Metadata{"settled_count": len(visited), "relaxations": relaxations, "path": []string{}}),
			)
			return
		}
		d.Emit(step.OpComplete, fmt.Sprintf("All %d reachable nodes settled", len(visited)),
			snapshot(""),
			step.Highlights(step.Nodes(step.ColorVisited, visited...)),
			step.Meta(step.Metadata{"settled_count": len(visited), "relaxations": relaxations}),
		)
	})
}

func closest(g *Graph, dist map[string]float64, settled map[string]bool) (string, bool) {
	best, found := "", false
	for _, n := range g.order {
		if settled[n] || math.IsInf(dist[n], 1) {
			continue
		}
		if !found || dist[n] < dist[best] {
			best, found = n, true
		}
	}
	return best, found
}

// distances renders unreached nodes as null.
func distances(g *Graph, dist map[string]float64) map[string]any {
	out := make(map[string]any, len(dist))
	for _, n := range g.order {
		if math.IsInf(dist[n], 1) {
			out[n] = nil
			continue
		}
		out[n] = dist[n]
	}
	return out
}

func formatDist(v float64) string {
	if math.IsInf(v, 1) {
		return "inf"
	}
	return fmt.Sprintf("%g", v)
}
