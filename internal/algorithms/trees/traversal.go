package trees

import (
	"fmt"
	"slices"

	"github.com/awmpietro/golang-algorithm-visualizer/internal/step"
)

type Order string

const (
	InOrder   Order = "inorder"
	PreOrder  Order = "preorder"
	PostOrder Order = "postorder"
)

// Traversal walks a binary tree depth first in one of the three classic
// orders.
type Traversal struct {
	step.Tracker

	order   Order
	root    *Node
	visited []int
	ids     []string
}

func NewTraversal(order Order) *Traversal {
	return &Traversal{order: order}
}

func (t *Traversal) Traverse(values []*int) step.Sequence {
	return t.Sequence(func() {
		t.root = FromLevelOrder(values)
		t.visited = []int{}
		t.ids = []string{}

		t.Emit(step.OpInit, fmt.Sprintf("Starting %s traversal of %d nodes", t.order, size(t.root)),
			t.state(),
			step.Meta(step.Metadata{"order": string(t.order), "result": []int{}}),
		)

		t.walk(t.root)

		t.Emit(step.OpComplete, fmt.Sprintf("%s traversal: %v", t.order, t.visited),
			t.state(),
			step.Highlights(step.Nodes(step.ColorVisited, t.ids...)),
			step.Meta(step.Metadata{"order": string(t.order), "result": slices.Clone(t.visited)}),
		)
	})
}

func (t *Traversal) walk(n *Node) {
	if n == nil {
		return
	}
	if t.order == PreOrder {
		t.visit(n)
	}
	if n.Left != nil {
		t.descend("traverse_left", n, n.Left)
		t.walk(n.Left)
	}
	if t.order == InOrder {
		t.visit(n)
	}
	if n.Right != nil {
		t.descend("traverse_right", n, n.Right)
		t.walk(n.Right)
	}
	if t.order == PostOrder {
		t.visit(n)
	}
}

func (t *Traversal) descend(op string, from, to *Node) {
	side := "left"
	if op == "traverse_right" {
		side = "right"
	}
	t.Emit(op, fmt.Sprintf("Going %s from %d to %d", side, from.Val, to.Val),
		t.state(),
		step.Highlights(
			step.Nodes(step.ColorVisited, t.ids...),
			step.Nodes(step.ColorExploring, to.ID),
			step.Edges(step.ColorExploring, step.Edge{From: from.ID, To: to.ID}),
		),
		step.Meta(step.Metadata{"order": string(t.order), "result": slices.Clone(t.visited)}),
	)
}

func (t *Traversal) visit(n *Node) {
	t.visited = append(t.visited, n.Val)
	t.ids = append(t.ids, n.ID)
	t.Emit("visit", fmt.Sprintf("Visiting %d", n.Val),
		t.state(),
		step.Highlights(step.Nodes(step.ColorVisited, t.ids...), step.Nodes(step.ColorActive, n.ID)),
		step.Meta(step.Metadata{"order": string(t.order), "result": slices.Clone(t.visited)}),
		step.Source("traversal.visit"),
	)
}

func (t *Traversal) state() step.State {
	return treeState(t.root).With("result", slices.Clone(t.visited))
}
