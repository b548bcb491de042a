package search

import (
	"fmt"
	"slices"

	"github.com/awmpietro/golang-algorithm-visualizer/internal/step"
)

// Binary halves the candidate range of a sorted array. Unsorted input is
// sorted first and the run says so.
type Binary struct {
	step.Tracker
}

func NewBinary() *Binary { return &Binary{} }

func (b *Binary) Search(values []int, target int) step.Sequence {
	return b.Sequence(func() {
		arr := slices.Clone(values)
		presorted := slices.IsSorted(arr)
		if !presorted {
			slices.Sort(arr)
		}
		n := len(arr)

		desc := fmt.Sprintf("Searching for %d in a sorted array of %d elements", target, n)
		if !presorted {
			desc = fmt.Sprintf("Input sorted first; searching for %d in %d elements", target, n)
		}
		b.Emit(step.OpInit, desc,
			b.state(arr, target, 0, n-1),
			step.Highlights(step.Span(step.ColorActive, 0, n)),
			step.Meta(step.Metadata{"target": target, "comparisons": 0, "presorted": presorted}),
		)

		low, high, comparisons := 0, n-1, 0
		for low <= high {
			mid := low + (high-low)/2
			comparisons++
			b.Emit("check_mid", fmt.Sprintf("Middle of [%d, %d] is position %d holding %d", low, high, mid, arr[mid]),
				b.state(arr, target, low, high),
				step.Highlights(step.Span(step.ColorActive, low, high+1), step.Indices(step.ColorComparing, mid)),
				step.Meta(step.Metadata{"target": target, "comparisons": comparisons, "low": low, "high": high, "mid": mid}),
				step.Source("binary.check_mid"),
			)

			switch {
			case arr[mid] == target:
				b.Emit(step.OpFound, fmt.Sprintf("Found %d at position %d", target, mid),
					b.state(arr, target, low, high),
					step.Highlights(step.Indices(step.ColorPath, mid)),
					step.Meta(step.Metadata{"target": target, "comparisons": comparisons, "index": mid, "found": true}),
				)
				return
			case arr[mid] < target:
				low = mid + 1
				b.Emit("search_right", fmt.Sprintf("%d < %d, continuing in the right half", arr[mid], target),
					b.state(arr, target, low, high),
					step.Highlights(step.Span(step.ColorActive, low, high+1)),
					step.Meta(step.Metadata{"target": target, "comparisons": comparisons, "low": low, "high": high}),
				)
			default:
				high = mid - 1
				b.Emit("search_left", fmt.Sprintf("%d > %d, continuing in the left half", arr[mid], target),
					b.state(arr, target, low, high),
					step.Highlights(step.Span(step.ColorActive, low, high+1)),
					step.Meta(step.Metadata{"target": target, "comparisons": comparisons, "low": low, "high": high}),
				)
			}
		}

		b.Emit(step.OpNotFound, fmt.Sprintf("%d is not in the array", target),
			b.state(arr, target, low, high),
			step.Meta(step.Metadata{"target": target, "comparisons": comparisons, "index": -1, "found": false}),
		)
	})
}

func (b *Binary) state(arr []int, target, low, high int) step.State {
	return step.ArrayState(arr).
		With("target", target).
		With("low", low).
		With("high", high)
}
