package sorting

import (
	"fmt"
	"slices"

	"github.com/awmpietro/golang-algorithm-visualizer/internal/step"
)

// Merge is top-down merge sort; merges are written back into the shown
// array so every snapshot is the whole array.
type Merge struct {
	step.Tracker

	arr         []int
	comparisons int
	writes      int
}

func NewMerge() *Merge { return &Merge{} }

func (m *Merge) Sort(values []int) step.Sequence {
	return m.Sequence(func() {
		m.arr = slices.Clone(values)
		m.comparisons, m.writes = 0, 0
		n := len(m.arr)

		m.Emit(step.OpInit, fmt.Sprintf("Starting merge sort on array of %d elements", n),
			step.ArrayState(m.arr),
			step.Meta(m.meta(nil)),
		)

		m.sort(0, n-1)

		m.Emit(step.OpComplete, fmt.Sprintf("Sorting complete: %d comparisons and %d writes", m.comparisons, m.writes),
			step.ArrayState(m.arr),
			step.Highlights(step.Span(step.ColorSorted, 0, n)),
			step.Meta(m.meta(step.Metadata{"sorted": true})),
		)
	})
}

func (m *Merge) sort(left, right int) {
	if left >= right {
		return
	}
	mid := left + (right-left)/2

	m.Emit("split", fmt.Sprintf("Splitting [%d, %d] into [%d, %d] and [%d, %d]", left, right, left, mid, mid+1, right),
		step.ArrayState(m.arr),
		step.Highlights(step.Span(step.ColorComparing, left, mid+1), step.Span(step.ColorActive, mid+1, right+1)),
		step.Meta(m.meta(step.Metadata{"left": left, "mid": mid, "right": right})),
	)

	m.sort(left, mid)
	m.sort(mid+1, right)
	m.merge(left, mid, right)
}

func (m *Merge) merge(left, mid, right int) {
	lhs := slices.Clone(m.arr[left : mid+1])
	rhs := slices.Clone(m.arr[mid+1 : right+1])

	m.Emit("merge_start", fmt.Sprintf("Merging %v and %v", lhs, rhs),
		step.ArrayState(m.arr),
		step.Highlights(step.Span(step.ColorComparing, left, mid+1), step.Span(step.ColorActive, mid+1, right+1)),
		step.Meta(m.meta(step.Metadata{"left": left, "mid": mid, "right": right})),
	)

	i, j, k := 0, 0, left
	for i < len(lhs) && j < len(rhs) {
		m.comparisons++
		m.Emit("compare", fmt.Sprintf("Comparing %d and %d", lhs[i], rhs[j]),
			step.ArrayState(m.arr),
			step.Highlights(step.Indices(step.ColorComparing, left+i), step.Indices(step.ColorActive, mid+1+j)),
			step.Meta(m.meta(nil)),
		)

		if lhs[i] <= rhs[j] {
			m.arr[k] = lhs[i]
			i++
		} else {
			m.arr[k] = rhs[j]
			j++
		}
		m.writes++
		m.Emit("place", fmt.Sprintf("Placed %d at position %d", m.arr[k], k),
			step.ArrayState(m.arr),
			step.Highlights(step.Indices(step.ColorSwapped, k)),
			step.Meta(m.meta(nil)),
		)
		k++
	}

	for ; i < len(lhs); i++ {
		m.arr[k] = lhs[i]
		m.writes++
		m.Emit("place_remaining", fmt.Sprintf("Placed remaining %d at position %d", m.arr[k], k),
			step.ArrayState(m.arr),
			step.Highlights(step.Indices(step.ColorSwapped, k)),
			step.Meta(m.meta(nil)),
		)
		k++
	}
	for ; j < len(rhs); j++ {
		m.arr[k] = rhs[j]
		m.writes++
		m.Emit("place_remaining", fmt.Sprintf("Placed remaining %d at position %d", m.arr[k], k),
			step.ArrayState(m.arr),
			step.Highlights(step.Indices(step.ColorSwapped, k)),
			step.Meta(m.meta(nil)),
		)
		k++
	}

	m.Emit("merge_complete", fmt.Sprintf("Range [%d, %d] merged", left, right),
		step.ArrayState(m.arr),
		step.Highlights(step.Span(step.ColorSorted, left, right+1)),
		step.Meta(m.meta(step.Metadata{"left": left, "right": right})),
	)
}

func (m *Merge) meta(extra step.Metadata) step.Metadata {
	md := step.Metadata{"comparisons": m.comparisons, "writes": m.writes}
	for k, v := range extra {
		md[k] = v
	}
	return md
}
