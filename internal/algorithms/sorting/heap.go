package sorting

import (
	"fmt"
	"slices"

	"github.com/awmpietro/golang-algorithm-visualizer/internal/step"
)

// Heap builds a max-heap in place and repeatedly moves its root to the end.
type Heap struct {
	step.Tracker

	arr         []int
	comparisons int
	swaps       int
}

func NewHeap() *Heap { return &Heap{} }

func (h *Heap) Sort(values []int) step.Sequence {
	return h.Sequence(func() {
		h.arr = slices.Clone(values)
		h.comparisons, h.swaps = 0, 0
		n := len(h.arr)

		h.Emit(step.OpInit, fmt.Sprintf("Starting heap sort on array of %d elements", n),
			step.ArrayState(h.arr),
			step.Meta(h.meta(nil)),
		)

		if n > 1 {
			h.Emit("build_heap_start", "Building a max-heap",
				step.ArrayState(h.arr),
				step.Highlights(step.Span(step.ColorActive, 0, n)),
				step.Meta(h.meta(nil)),
			)
			for i := n/2 - 1; i >= 0; i-- {
				h.heapify(n, i)
			}
			h.Emit("build_heap_complete", fmt.Sprintf("Max-heap built; maximum is %d", h.arr[0]),
				step.ArrayState(h.arr),
				step.Highlights(step.Indices(step.ColorActive, 0)),
				step.Meta(h.meta(nil)),
			)

			for i := n - 1; i > 0; i-- {
				h.arr[0], h.arr[i] = h.arr[i], h.arr[0]
				h.swaps++
				h.Emit("extract_max", fmt.Sprintf("Moved maximum %d to position %d", h.arr[i], i),
					step.ArrayState(h.arr),
					step.Highlights(step.Indices(step.ColorSwapped, 0, i), step.Span(step.ColorSorted, i+1, n)),
					step.Meta(h.meta(step.Metadata{"heap_size": i})),
				)
				h.heapify(i, 0)
			}
		}

		h.Emit(step.OpComplete, fmt.Sprintf("Sorting complete: %d comparisons and %d swaps", h.comparisons, h.swaps),
			step.ArrayState(h.arr),
			step.Highlights(step.Span(step.ColorSorted, 0, n)),
			step.Meta(h.meta(step.Metadata{"sorted": true})),
		)
	})
}

func (h *Heap) heapify(size, root int) {
	for {
		h.Emit("heapify_start", fmt.Sprintf("Sifting down %d at position %d", h.arr[root], root),
			step.ArrayState(h.arr),
			step.Highlights(step.Indices(step.ColorActive, root)),
			step.Meta(h.meta(step.Metadata{"heap_size": size, "root": root})),
		)

		largest := root
		for _, child := range []int{2*root + 1, 2*root + 2} {
			if child < size {
				h.comparisons++
				if h.arr[child] > h.arr[largest] {
					largest = child
				}
			}
		}
		if largest == root {
			return
		}

		h.arr[root], h.arr[largest] = h.arr[largest], h.arr[root]
		h.swaps++
		h.Emit("heapify_swap", fmt.Sprintf("Swapped %d and %d", h.arr[largest], h.arr[root]),
			step.ArrayState(h.arr),
			step.Highlights(step.Indices(step.ColorSwapped, root, largest)),
			step.Meta(h.meta(step.Metadata{"heap_size": size})),
		)
		root = largest
	}
}

func (h *Heap) meta(extra step.Metadata) step.Metadata {
	m := step.Metadata{"comparisons": h.comparisons, "swaps": h.swaps}
	for k, v := range extra {
		m[k] = v
	}
	return m
}
