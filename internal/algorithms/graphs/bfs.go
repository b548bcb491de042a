package graphs

import (
	"fmt"
	"slices"

	"github.com/awmpietro/golang-algorithm-visualizer/internal/step"
)

// BFS explores a graph level by level from a start node. With a target it
// stops at the first visit of the target and reports the path found;
// without one it visits everything reachable.
type BFS struct {
	step.Tracker
}

func NewBFS() *BFS { return &BFS{} }

func (b *BFS) Search(g *Graph, start, target string) step.Sequence {
	return b.Sequence(func() {
		visited := []string{}
		seen := map[string]bool{start: true}
		parent := map[string]string{}
		queue := []string{start}

		snapshot := func(current string) step.State {
			return g.state().
				With("start", start).
				With("target", target).
				With("current", current).
				With("visited", slices.Clone(visited)).
				With("queue", slices.Clone(queue))
		}

		b.Emit(step.OpInit, fmt.Sprintf("Starting BFS from %s over %d nodes", start, g.Len()),
			snapshot(""),
			step.Highlights(step.Nodes(step.ColorQueued, start)),
			step.Meta(step.Metadata{"visited_count": 0, "queue": slices.Clone(queue)}),
		)

		if !g.Has(start) {
			b.Emit(step.OpNotFound, fmt.Sprintf("Start node %s is not in the graph", start),
				snapshot(""),
				step.Meta(step.Metadata{"visited_count": 0, "path": []string{}}),
			)
			return
		}

		for len(queue) > 0 {
			current := queue[0]
			queue = queue[1:]
			visited = append(visited, current)

			b.Emit("visit", fmt.Sprintf("Dequeued and visiting %s", current),
				snapshot(current),
				step.Highlights(
					step.Nodes(step.ColorVisited, visited...),
					step.Nodes(step.ColorActive, current),
					step.Nodes(step.ColorQueued, queue...),
				),
				step.Meta(step.Metadata{"visited_count": len(visited), "queue": slices.Clone(queue)}),
				step.Source("bfs.visit"),
			)

			if target != "" && current == target {
				path := tracePath(parent, start, target)
				b.Emit(step.OpFound, fmt.Sprintf("Reached %s; path length %d", target, len(path)-1),
					snapshot(current).With("path", path),
					step.Highlights(step.Nodes(step.ColorPath, path...), step.Edges(step.ColorPath, step.PathEdges(path)...)),
					step.Meta(step.Metadata{"visited_count": len(visited), "path": path, "path_length": len(path) - 1}),
				)
				return
			}

			for _, n := range g.Neighbors(current) {
				edge := step.Edge{From: current, To: n.To}
				if seen[n.To] {
					b.Emit("skip_neighbor", fmt.Sprintf("%s was already discovered", n.To),
						snapshot(current),
						step.Highlights(step.Nodes(step.ColorActive, current), step.Edges(step.ColorExploring, edge)),
						step.Meta(step.Metadata{"visited_count": len(visited), "queue": slices.Clone(queue)}),
					)
					continue
				}
				seen[n.To] = true
				parent[n.To] = current
				queue = append(queue, n.To)
				b.Emit("enqueue", fmt.Sprintf("Discovered %s from %s, added to the queue", n.To, current),
					snapshot(current),
					step.Highlights(
						step.Nodes(step.ColorActive, current),
						step.Nodes(step.ColorQueued, queue...),
						step.Edges(step.ColorExploring, edge),
					),
					step.Meta(step.Metadata{"visited_count": len(visited), "queue": slices.Clone(queue)}),
					step.Source("bfs.enqueue"),
				)
			}
		}

		if target != "" {
			b.Emit(step.OpNotFound, fmt.Sprintf("%s is not reachable from %s", target, start),
				snapshot(""),
				step.Highlights(step.Nodes(step.ColorVisited, visited...)),
				step.Meta(step.Metadata{"visited_count": len(visited), "path": []string{}}),
			)
			return
		}
		b.Emit(step.OpComplete, fmt.Sprintf("Traversal complete: visited %d nodes", len(visited)),
			snapshot(""),
			step.Highlights(step.Nodes(step.ColorVisited, visited...)),
			step.Meta(step.Metadata{"visited_count": len(visited), "order": slices.Clone(visited)}),
		)
	})
}

// tracePath walks parent links back from target.
func tracePath(parent map[string]string, start, target string) []string {
	path := []string{target}
	for cur := target; cur != start; {
		p, ok := parent[cur]
		if !ok {
			break
		}
		path = append(path, p)
		cur = p
	}
	slices.Reverse(path)
	return path
}
