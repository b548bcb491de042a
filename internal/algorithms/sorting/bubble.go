// Package sorting holds instrumented comparison sorts. Every sorter works
// on a private copy of its input and reports the array as it changes.
package sorting

import (
	"fmt"
	"slices"

	"github.com/awmpietro/golang-algorithm-visualizer/internal/step"
)

// Bubble repeatedly swaps adjacent out-of-order pairs, stopping early after
// a pass with no swaps.
type Bubble struct {
	step.Tracker
}

func NewBubble() *Bubble { return &Bubble{} }

func (b *Bubble) Sort(values []int) step.Sequence {
	return b.Sequence(func() {
		arr := slices.Clone(values)
		n := len(arr)

		b.Emit(step.OpInit, fmt.Sprintf("Starting bubble sort on array of %d elements", n),
			step.ArrayState(arr),
			step.Meta(step.Metadata{"comparisons": 0, "swaps": 0, "passes": 0}),
		)

		comparisons, swaps, passes := 0, 0, 0
		for i := 0; i < n-1; i++ {
			passes = i + 1
			swapped := false

			b.Emit("pass_start", fmt.Sprintf("Pass %d: comparing elements 0 to %d", passes, n-i-2),
				step.ArrayState(arr),
				step.Highlights(step.Span(step.ColorActive, 0, n-i)),
				step.Meta(step.Metadata{"comparisons": comparisons, "swaps": swaps, "passes": passes}),
			)

			for j := 0; j < n-i-1; j++ {
				comparisons++
				b.Emit("compare", fmt.Sprintf("Comparing %d and %d", arr[j], arr[j+1]),
					step.ArrayState(arr),
					step.Highlights(step.Indices(step.ColorComparing, j, j+1)),
					step.Meta(step.Metadata{
						"comparisons":       comparisons,
						"swaps":             swaps,
						"passes":            passes,
						"comparing_indices": []int{j, j + 1},
					}),
					step.Source("bubble.compare"),
				)

				if arr[j] > arr[j+1] {
					arr[j], arr[j+1] = arr[j+1], arr[j]
					swapped = true
					swaps++
					b.Emit("swap", fmt.Sprintf("Swapped %d and %d (now at positions %d and %d)", arr[j+1], arr[j], j, j+1),
						step.ArrayState(arr),
						step.Highlights(step.Indices(step.ColorSwapped, j, j+1)),
						step.Meta(step.Metadata{
							"comparisons":     comparisons,
							"swaps":           swaps,
							"passes":          passes,
							"swapped_indices": []int{j, j + 1},
						}),
						step.Source("bubble.swap"),
					)
				}
			}

			b.Emit("pass_complete", fmt.Sprintf("Pass %d complete; position %d is final", passes, n-i-1),
				step.ArrayState(arr),
				step.Highlights(step.Indices(step.ColorSorted, n-i-1)),
				step.Meta(step.Metadata{"comparisons": comparisons, "swaps": swaps, "passes": passes, "sorted_count": i + 1}),
			)

			if !swapped {
				b.Emit("early_exit", "No swaps in this pass, array is sorted",
					step.ArrayState(arr),
					step.Highlights(step.Span(step.ColorSorted, 0, n)),
					step.Meta(step.Metadata{"comparisons": comparisons, "swaps": swaps, "passes": passes, "early_exit": true}),
				)
				break
			}
		}

		b.Emit(step.OpComplete, fmt.Sprintf("Sorting complete: %d comparisons and %d swaps", comparisons, swaps),
			step.ArrayState(arr),
			step.Highlights(step.Span(step.ColorSorted, 0, n)),
			step.Meta(step.Metadata{"comparisons": comparisons, "swaps": swaps, "passes": passes, "sorted": true}),
		)
	})
}
