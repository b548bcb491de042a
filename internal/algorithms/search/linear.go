// Package search holds instrumented searches over integer arrays.
package search

import (
	"fmt"
	"slices"

	"github.com/awmpietro/golang-algorithm-visualizer/internal/step"
)

// Linear scans the array left to right.
type Linear struct {
	step.Tracker
}

func NewLinear() *Linear { return &Linear{} }

func (l *Linear) Search(values []int, target int) step.Sequence {
	return l.Sequence(func() {
		arr := slices.Clone(values)
		n := len(arr)

		l.Emit(step.OpInit, fmt.Sprintf("Searching for %d in an array of %d elements", target, n),
			step.ArrayState(arr).With("target", target),
			step.Meta(step.Metadata{"target": target, "comparisons": 0}),
		)

		for i, v := range arr {
			l.Emit("compare", fmt.Sprintf("Checking position %d: %d == %d?", i, v, target),
				step.ArrayState(arr).With("target", target),
				step.Highlights(step.Span(step.ColorVisited, 0, i), step.Indices(step.ColorComparing, i)),
				step.Meta(step.Metadata{"target": target, "comparisons": i + 1, "index": i}),
				step.Source("linear.compare"),
			)
			if v == target {
				l.Emit(step.OpFound, fmt.Sprintf("Found %d at position %d", target, i),
					step.ArrayState(arr).With("target", target),
					step.Highlights(step.Indices(step.ColorPath, i)),
					step.Meta(step.Metadata{"target": target, "comparisons": i + 1, "index": i, "found": true}),
				)
				return
			}
		}

		l.Emit(step.OpNotFound, fmt.Sprintf("%d is not in the array", target),
			step.ArrayState(arr).With("target", target),
			step.Highlights(step.Span(step.ColorVisited, 0, n)),
			step.Meta(step.Metadata{"target": target, "comparisons": n, "index": -1, "found": false}),
		)
	})
}
