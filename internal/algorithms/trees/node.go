// Package trees holds instrumented binary search tree operations and
// binary tree traversals.
package trees

import (
	"strconv"

	"github.com/awmpietro/golang-algorithm-visualizer/internal/step"
)

// Node is a binary tree node. ID is stable for the life of one run and is
// what highlights refer to.
type Node struct {
	ID    string
	Val   int
	Left  *Node
	Right *Node
}

type builder struct {
	next int
}

func (b *builder) node(v int) *Node {
	n := &Node{ID: strconv.Itoa(b.next), Val: v}
	b.next++
	return n
}

// FromLevelOrder builds a tree from a level-order listing where nil marks
// a missing child.
func FromLevelOrder(values []*int) *Node {
	if len(values) == 0 || values[0] == nil {
		return nil
	}
	var b builder
	root := b.node(*values[0])
	queue := []*Node{root}
	i := 1
	for len(queue) > 0 && i < len(values) {
		n := queue[0]
		queue = queue[1:]

		if i < len(values) && values[i] != nil {
			n.Left = b.node(*values[i])
			queue = append(queue, n.Left)
		}
		i++
		if i < len(values) && values[i] != nil {
			n.Right = b.node(*values[i])
			queue = append(queue, n.Right)
		}
		i++
	}
	return root
}

// snapshot renders the tree as nested maps, nil for an empty tree.
func snapshot(n *Node) any {
	if n == nil {
		return nil
	}
	return map[string]any{
		"id":    n.ID,
		"val":   n.Val,
		"left":  snapshot(n.Left),
		"right": snapshot(n.Right),
	}
}

func treeState(root *Node) step.State {
	return step.TreeState(snapshot(root))
}

func size(n *Node) int {
	if n == nil {
		return 0
	}
	return 1 + size(n.Left) + size(n.Right)
}
