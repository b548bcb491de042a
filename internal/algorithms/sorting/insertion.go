package sorting

import (
	"fmt"
	"slices"

	"github.com/awmpietro/golang-algorithm-visualizer/internal/step"
)

type Insertion struct {
	step.Tracker
}

func NewInsertion() *Insertion { return &Insertion{} }

func (s *Insertion) Sort(values []int) step.Sequence {
	return s.Sequence(func() {
		arr := slices.Clone(values)
		n := len(arr)
		comparisons, shifts := 0, 0

		var initHL []step.EmitOption
		if n > 0 {
			initHL = append(initHL, step.Highlights(step.Indices(step.ColorSorted, 0)))
		}
		s.Emit(step.OpInit, fmt.Sprintf("Starting insertion sort on array of %d elements", n),
			step.ArrayState(arr),
			append(initHL, step.Meta(step.Metadata{"comparisons": 0, "shifts": 0}))...,
		)

		for i := 1; i < n; i++ {
			key := arr[i]
			s.Emit("select", fmt.Sprintf("Selecting %d to insert into the sorted prefix", key),
				step.ArrayState(arr),
				step.Highlights(step.Span(step.ColorSorted, 0, i), step.Indices(step.ColorActive, i)),
				step.Meta(step.Metadata{"comparisons": comparisons, "shifts": shifts, "key": key}),
			)

			j := i - 1
			for j >= 0 {
				comparisons++
				s.Emit("compare", fmt.Sprintf("Comparing %d with key %d", arr[j], key),
					step.ArrayState(arr),
					step.Highlights(step.Indices(step.ColorComparing, j), step.Indices(step.ColorActive, j+1)),
					step.Meta(step.Metadata{"comparisons": comparisons, "shifts": shifts, "key": key}),
				)
				if arr[j] <= key {
					break
				}
				arr[j+1] = arr[j]
				shifts++
				s.Emit("shift", fmt.Sprintf("Shifted %d right to position %d", arr[j+1], j+1),
					step.ArrayState(arr),
					step.Highlights(step.Indices(step.ColorSwapped, j+1)),
					step.Meta(step.Metadata{"comparisons": comparisons, "shifts": shifts, "key": key}),
				)
				j--
			}

			arr[j+1] = key
			s.Emit("insert", fmt.Sprintf("Inserted %d at position %d", key, j+1),
				step.ArrayState(arr),
				step.Highlights(step.Span(step.ColorSorted, 0, i+1)),
				step.Meta(step.Metadata{"comparisons": comparisons, "shifts": shifts, "key": key, "position": j + 1}),
			)
		}

		s.Emit(step.OpComplete, fmt.Sprintf("Sorting complete: %d comparisons and %d shifts", comparisons, shifts),
			step.ArrayState(arr),
			step.Highlights(step.Span(step.ColorSorted, 0, n)),
			step.Meta(step.Metadata{"comparisons": comparisons, "shifts": shifts, "sorted": true}),
		)
	})
}
