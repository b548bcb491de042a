package trees_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/awmpietro/golang-algorithm-visualizer/internal/algorithms/trees"
	"github.com/awmpietro/golang-algorithm-visualizer/internal/step"
)

func ints(vs ...int) []*int {
	out := make([]*int, len(vs))
	for i := range vs {
		out[i] = &vs[i]
	}
	return out
}

func TestBST_Insert(t *testing.T) {
	steps := step.Collect(trees.NewBST().Insert([]int{50, 30, 70, 20, 40, 30}))
	require.NoError(t, step.CheckSequence(steps, step.OpComplete))

	last := steps[len(steps)-1]
	assert.Equal(t, 5, last.Metadata["size"])
	assert.Equal(t, string(step.Tree), last.State.Kind())

	root := last.State["tree"].(map[string]any)
	assert.Equal(t, 50, root["val"])
	left := root["left"].(map[string]any)
	assert.Equal(t, 30, left["val"])
	assert.Equal(t, 40, left["right"].(map[string]any)["val"])

	var ops []string
	for _, s := range steps {
		ops = append(ops, s.Operation)
	}
	assert.Contains(t, ops, "insert_root")
	assert.Contains(t, ops, "insert_left")
	assert.Contains(t, ops, "insert_right")
	assert.Contains(t, ops, "duplicate")
}

func TestBST_InsertEmpty(t *testing.T) {
	steps := step.Collect(trees.NewBST().Insert(nil))
	require.NoError(t, step.CheckSequence(steps, step.OpComplete))
	assert.Len(t, steps, 2)
	assert.Nil(t, steps[1].State["tree"])
}

func TestBSTSearch(t *testing.T) {
	values := []int{8, 3, 10, 1, 6, 14, 4, 7, 13}

	steps := step.Collect(trees.NewBSTSearch().Search(values, 7))
	require.NoError(t, step.CheckSequence(steps))
	last := steps[len(steps)-1]
	assert.Equal(t, step.OpFound, last.Operation)
	assert.Equal(t, 4, last.Metadata["comparisons"])

	steps = step.Collect(trees.NewBSTSearch().Search(values, 5))
	require.NoError(t, step.CheckSequence(steps))
	assert.Equal(t, step.OpNotFound, steps[len(steps)-1].Operation)

	steps = step.Collect(trees.NewBSTSearch().Search(nil, 5))
	require.NoError(t, step.CheckSequence(steps))
	assert.Equal(t, step.OpNotFound, steps[len(steps)-1].Operation)
}

func TestTraversals(t *testing.T) {
	//        1
	//      /   \
	//     2     3
	//    / \     \
	//   4   5     6
	values := append(ints(1, 2, 3, 4, 5), nil)
	values = append(values, ints(6)...)

	tests := []struct {
		order trees.Order
		want  []int
	}{
		{order: trees.InOrder, want: []int{4, 2, 5, 1, 3, 6}},
		{order: trees.PreOrder, want: []int{1, 2, 4, 5, 3, 6}},
		{order: trees.PostOrder, want: []int{4, 5, 2, 6, 3, 1}},
	}

	for _, tt := range tests {
		t.Run(string(tt.order), func(t *testing.T) {
			steps := step.Collect(trees.NewTraversal(tt.order).Traverse(values))
			require.NoError(t, step.CheckSequence(steps, step.OpComplete))

			last := steps[len(steps)-1]
			assert.Equal(t, tt.want, last.Metadata["result"])

			visits := 0
			for _, s := range steps {
				if s.Operation == "visit" {
					visits++
				}
			}
			assert.Equal(t, 6, visits)
		})
	}
}

func TestFromLevelOrder(t *testing.T) {
	assert.Nil(t, trees.FromLevelOrder(nil))
	assert.Nil(t, trees.FromLevelOrder([]*int{nil, nil}))

	root := trees.FromLevelOrder(append(ints(1), nil, ints(2)[0]))
	require.NotNil(t, root)
	assert.Nil(t, root.Left)
	require.NotNil(t, root.Right)
	assert.Equal(t, 2, root.Right.Val)
}
