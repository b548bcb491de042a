package trees

import (
	"fmt"

	"github.com/awmpietro/golang-algorithm-visualizer/internal/step"
)

// BST inserts values into a binary search tree one by one. Equal values
// are reported and not inserted twice.
type BST struct {
	step.Tracker

	root        *Node
	b           builder
	comparisons int
}

func NewBST() *BST { return &BST{} }

func (t *BST) Insert(values []int) step.Sequence {
	return t.Sequence(func() {
		t.root, t.b, t.comparisons = nil, builder{}, 0

		t.Emit(step.OpInit, fmt.Sprintf("Building a BST from %d values", len(values)),
			treeState(nil),
			step.Meta(step.Metadata{"comparisons": 0, "size": 0}),
		)

		for _, v := range values {
			t.insert(v)
		}

		t.Emit(step.OpComplete, fmt.Sprintf("BST built with %d nodes", size(t.root)),
			treeState(t.root),
			step.Meta(step.Metadata{"comparisons": t.comparisons, "size": size(t.root)}),
		)
	})
}

func (t *BST) insert(v int) {
	if t.root == nil {
		t.root = t.b.node(v)
		t.Emit("insert_root", fmt.Sprintf("Tree is empty, %d becomes the root", v),
			treeState(t.root),
			step.Highlights(step.Nodes(step.ColorActive, t.root.ID)),
			step.Meta(step.Metadata{"comparisons": t.comparisons, "size": 1, "value": v}),
		)
		return
	}

	cur := t.root
	path := []string{}
	for {
		path = append(path, cur.ID)
		t.comparisons++
		t.Emit("compare", fmt.Sprintf("Comparing %d with %d", v, cur.Val),
			treeState(t.root),
			step.Highlights(step.Nodes(step.ColorVisited, path...), step.Nodes(step.ColorComparing, cur.ID)),
			step.Meta(step.Metadata{"comparisons": t.comparisons, "value": v, "node": cur.Val}),
			step.Source("bst.compare"),
		)

		switch {
		case v == cur.Val:
			t.Emit("duplicate", fmt.Sprintf("%d is already in the tree", v),
				treeState(t.root),
				step.Highlights(step.Nodes(step.ColorActive, cur.ID)),
				step.Meta(step.Metadata{"comparisons": t.comparisons, "value": v}),
			)
			return
		case v < cur.Val:
			if cur.Left == nil {
				cur.Left = t.b.node(v)
				t.inserted("insert_left", cur, cur.Left, path)
				return
			}
			cur = cur.Left
		default:
			if cur.Right == nil {
				cur.Right = t.b.node(v)
				t.inserted("insert_right", cur, cur.Right, path)
				return
			}
			cur = cur.Right
		}
	}
}

func (t *BST) inserted(op string, parent, child *Node, path []string) {
	side := "left"
	if op == "insert_right" {
		side = "right"
	}
	t.Emit(op, fmt.Sprintf("Inserted %d as the %s child of %d", child.Val, side, parent.Val),
		treeState(t.root),
		step.Highlights(
			step.Nodes(step.ColorVisited, path...),
			step.Nodes(step.ColorActive, child.ID),
			step.Edges(step.ColorPath, step.Edge{From: parent.ID, To: child.ID}),
		),
		step.Meta(step.Metadata{"comparisons": t.comparisons, "value": child.Val, "size": size(t.root)}),
	)
}

// BSTSearch looks a value up in the BST built from values. Building is
// not instrumented.
type BSTSearch struct {
	step.Tracker
}

func NewBSTSearch() *BSTSearch { return &BSTSearch{} }

func (s *BSTSearch) Search(values []int, target int) step.Sequence {
	return s.Sequence(func() {
		root := build(values)

		s.Emit(step.OpInit, fmt.Sprintf("Searching for %d in a BST of %d nodes", target, size(root)),
			treeState(root),
			step.Meta(step.Metadata{"comparisons": 0, "target": target}),
		)

		comparisons := 0
		path := []string{}
		for cur := root; cur != nil; {
			path = append(path, cur.ID)
			comparisons++
			s.Emit("compare", fmt.Sprintf("Comparing %d with %d", target, cur.Val),
				treeState(root),
				step.Highlights(step.Nodes(step.ColorVisited, path...), step.Nodes(step.ColorComparing, cur.ID)),
				step.Meta(step.Metadata{"comparisons": comparisons, "target": target, "node": cur.Val}),
				step.Source("bst.search_compare"),
			)

			switch {
			case target == cur.Val:
				s.Emit(step.OpFound, fmt.Sprintf("Found %d after %d comparisons", target, comparisons),
					treeState(root),
					step.Highlights(step.Nodes(step.ColorPath, path...), step.Edges(step.ColorPath, step.PathEdges(path)...)),
					step.Meta(step.Metadata{"comparisons": comparisons, "target": target, "found": true, "path": path}),
				)
				return
			case target < cur.Val:
				cur = cur.Left
			default:
				cur = cur.Right
			}
		}

		s.Emit(step.OpNotFound, fmt.Sprintf("%d is not in the tree", target),
			treeState(root),
			step.Highlights(step.Nodes(step.ColorVisited, path...)),
			step.Meta(step.Metadata{"comparisons": comparisons, "target": target, "found": false}),
		)
	})
}

func build(values []int) *Node {
	var b builder
	var root *Node
	for _, v := range values {
		if root == nil {
			root = b.node(v)
			continue
		}
		for cur := root; ; {
			if v == cur.Val {
				break
			}
			if v < cur.Val {
				if cur.Left == nil {
					cur.Left = b.node(v)
					break
				}
				cur = cur.Left
				continue
			}
			if cur.Right == nil {
				cur.Right = b.node(v)
				break
			}
			cur = cur.Right
		}
	}
	return root
}
