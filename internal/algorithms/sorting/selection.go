package sorting

import (
	"fmt"
	"slices"

	"github.com/awmpietro/golang-algorithm-visualizer/internal/step"
)

type Selection struct {
	step.Tracker
}

func NewSelection() *Selection { return &Selection{} }

func (s *Selection) Sort(values []int) step.Sequence {
	return s.Sequence(func() {
		arr := slices.Clone(values)
		n := len(arr)
		comparisons, swaps := 0, 0

		s.Emit(step.OpInit, fmt.Sprintf("Starting selection sort on array of %d elements", n),
			step.ArrayState(arr),
			step.Meta(step.Metadata{"comparisons": 0, "swaps": 0}),
		)

		for i := 0; i < n-1; i++ {
			minIdx := i
			s.Emit("new_pass", fmt.Sprintf("Pass %d: looking for the minimum from position %d", i+1, i),
				step.ArrayState(arr),
				step.Highlights(step.Span(step.ColorSorted, 0, i), step.Indices(step.ColorActive, i)),
				step.Meta(step.Metadata{"comparisons": comparisons, "swaps": swaps, "min_index": minIdx}),
			)

			for j := i + 1; j < n; j++ {
				comparisons++
				s.Emit("compare", fmt.Sprintf("Comparing %d with current minimum %d", arr[j], arr[minIdx]),
					step.ArrayState(arr),
					step.Highlights(step.Indices(step.ColorActive, minIdx), step.Indices(step.ColorComparing, j)),
					step.Meta(step.Metadata{"comparisons": comparisons, "swaps": swaps, "min_index": minIdx}),
				)
				if arr[j] < arr[minIdx] {
					minIdx = j
					s.Emit("update_min", fmt.Sprintf("New minimum %d at position %d", arr[minIdx], minIdx),
						step.ArrayState(arr),
						step.Highlights(step.Indices(step.ColorActive, minIdx)),
						step.Meta(step.Metadata{"comparisons": comparisons, "swaps": swaps, "min_index": minIdx}),
					)
				}
			}

			if minIdx != i {
				arr[i], arr[minIdx] = arr[minIdx], arr[i]
				swaps++
				s.Emit("swap", fmt.Sprintf("Swapped %d into position %d", arr[i], i),
					step.ArrayState(arr),
					step.Highlights(step.Indices(step.ColorSwapped, i, minIdx)),
					step.Meta(step.Metadata{"comparisons": comparisons, "swaps": swaps}),
				)
			}

			s.Emit("pass_complete", fmt.Sprintf("Position %d holds its final value %d", i, arr[i]),
				step.ArrayState(arr),
				step.Highlights(step.Span(step.ColorSorted, 0, i+1)),
				step.Meta(step.Metadata{"comparisons": comparisons, "swaps": swaps}),
			)
		}

		s.Emit(step.OpComplete, fmt.Sprintf("Sorting complete: %d comparisons and %d swaps", comparisons, swaps),
			step.ArrayState(arr),
			step.Highlights(step.Span(step.ColorSorted, 0, n)),
			step.Meta(step.Metadata{"comparisons": comparisons, "swaps": swaps, "sorted": true}),
		)
	})
}
