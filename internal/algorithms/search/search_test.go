package search_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/awmpietro/golang-algorithm-visualizer/internal/algorithms/search"
	"github.com/awmpietro/golang-algorithm-visualizer/internal/step"
)

func TestLinear(t *testing.T) {
	tests := []struct {
		name      string
		values    []int
		target    int
		wantOp    string
		wantIndex int
	}{
		{name: "found first", values: []int{7, 3, 9}, target: 7, wantOp: step.OpFound, wantIndex: 0},
		{name: "found last", values: []int{7, 3, 9}, target: 9, wantOp: step.OpFound, wantIndex: 2},
		{name: "missing", values: []int{7, 3, 9}, target: 4, wantOp: step.OpNotFound, wantIndex: -1},
		{name: "empty", values: nil, target: 1, wantOp: step.OpNotFound, wantIndex: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			steps := step.Collect(search.NewLinear().Search(tt.values, tt.target))
			require.NoError(t, step.CheckSequence(steps))

			last := steps[len(steps)-1]
			assert.Equal(t, tt.wantOp, last.Operation)
			assert.Equal(t, tt.wantIndex, last.Metadata["index"])
		})
	}
}

func TestBinary(t *testing.T) {
	tests := []struct {
		name      string
		values    []int
		target    int
		wantOp    string
		presorted bool
	}{
		{name: "found", values: []int{1, 3, 5, 7, 9, 11}, target: 7, wantOp: step.OpFound, presorted: true},
		{name: "missing low", values: []int{1, 3, 5}, target: 0, wantOp: step.OpNotFound, presorted: true},
		{name: "missing high", values: []int{1, 3, 5}, target: 6, wantOp: step.OpNotFound, presorted: true},
		{name: "unsorted input", values: []int{9, 1, 5}, target: 9, wantOp: step.OpFound, presorted: false},
		{name: "empty", values: []int{}, target: 3, wantOp: step.OpNotFound, presorted: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			steps := step.Collect(search.NewBinary().Search(tt.values, tt.target))
			require.NoError(t, step.CheckSequence(steps))
			assert.Equal(t, tt.presorted, steps[0].Metadata["presorted"])

			last := steps[len(steps)-1]
			assert.Equal(t, tt.wantOp, last.Operation)
			if tt.wantOp == step.OpFound {
				values := last.State[step.KeyValues].([]int)
				idx := last.Metadata["index"].(int)
				assert.Equal(t, tt.target, values[idx])
			}
		})
	}
}

func TestBinary_ComparisonsAreLogarithmic(t *testing.T) {
	values := make([]int, 1024)
	for i := range values {
		values[i] = i * 2
	}
	steps := step.Collect(search.NewBinary().Search(values, 1))
	last := steps[len(steps)-1]

	assert.Equal(t, step.OpNotFound, last.Operation)
	assert.LessOrEqual(t, last.Metadata["comparisons"].(int), 11)
}
