// Package graphs holds instrumented traversals and shortest-path searches
// over small directed graphs with string node identifiers.
package graphs

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"

	"github.com/awmpietro/golang-algorithm-visualizer/internal/step"
)

type Neighbor struct {
	To     string
	Weight float64
}

// Graph is a directed adjacency list. Nodes and each node's neighbors keep
// the order they were added in, which fixes traversal order.
type Graph struct {
	order []string
	adj   map[string][]Neighbor
}

func New() *Graph {
	return &Graph{adj: map[string][]Neighbor{}}
}

func (g *Graph) AddNode(id string) {
	if _, ok := g.adj[id]; ok {
		return
	}
	g.order = append(g.order, id)
	g.adj[id] = []Neighbor{}
}

// AddEdge adds from->to, creating either node when missing.
func (g *Graph) AddEdge(from, to string, weight float64) {
	g.AddNode(from)
	g.AddNode(to)
	g.adj[from] = append(g.adj[from], Neighbor{To: to, Weight: weight})
}

func (g *Graph) Has(id string) bool {
	_, ok := g.adj[id]
	return ok
}

func (g *Graph) Nodes() []string {
	return slices.Clone(g.order)
}

func (g *Graph) Neighbors(id string) []Neighbor {
	return g.adj[id]
}

func (g *Graph) Len() int { return len(g.order) }

func (g *Graph) Edges() []step.Edge {
	var out []step.Edge
	for _, from := range g.order {
		for _, n := range g.adj[from] {
			out = append(out, step.Edge{From: from, To: n.To})
		}
	}
	return out
}

// Weights maps "from->to" to the edge weight, for weighted renderings.
func (g *Graph) Weights() map[string]float64 {
	out := map[string]float64{}
	for _, from := range g.order {
		for _, n := range g.adj[from] {
			out[from+"->"+n.To] = n.Weight
		}
	}
	return out
}

// NegativeEdge returns the first edge with a negative weight.
func (g *Graph) NegativeEdge() (step.Edge, bool) {
	for _, from := range g.order {
		for _, n := range g.adj[from] {
			if n.Weight < 0 {
				return step.Edge{From: from, To: n.To}, true
			}
		}
	}
	return step.Edge{}, false
}

func (g *Graph) state() step.State {
	return step.GraphState(g.order, g.Edges())
}

func (g *Graph) String() string {
	return fmt.Sprintf("graph(%d nodes, %d edges)", len(g.order), len(g.Edges()))
}

// SortIDs orders node identifiers numerically when all of them are
// integers and lexically otherwise.
func SortIDs(ids []string) {
	numeric := true
	for _, id := range ids {
		if _, err := strconv.Atoi(id); err != nil {
			numeric = false
			break
		}
	}
	if !numeric {
		slices.Sort(ids)
		return
	}
	slices.SortFunc(ids, func(a, b string) int {
		x, _ := strconv.Atoi(a)
		y, _ := strconv.Atoi(b)
		return cmp.Compare(x, y)
	})
}
