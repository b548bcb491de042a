// Package dp holds instrumented dynamic programming solutions. Table based
// solutions expose the row being filled as the highlighted values.
package dp

import (
	"fmt"

	"github.com/awmpietro/golang-algorithm-visualizer/internal/step"
)

type Item struct {
	Weight int `json:"weight"`
	Value  int `json:"value"`
}

// Knapsack solves 0/1 knapsack bottom-up over a (items+1) x (capacity+1)
// table, then walks the table back to recover the chosen items.
type Knapsack struct {
	step.Tracker
}

func NewKnapsack() *Knapsack { return &Knapsack{} }

func (k *Knapsack) Solve(items []Item, capacity int) step.Sequence {
	return k.Sequence(func() {
		n := len(items)
		table := make([][]int, n+1)
		for i := range table {
			table[i] = make([]int, capacity+1)
		}
		comparisons := 0

		k.Emit(step.OpInit, fmt.Sprintf("Solving knapsack: %d items, capacity %d", n, capacity),
			step.TableState(table, 0),
			step.Meta(step.Metadata{"n": n, "capacity": capacity, "items": itemPairs(items), "comparisons": 0}),
		)

		for i := 1; i <= n; i++ {
			it := items[i-1]
			for w := 0; w <= capacity; w++ {
				if it.Weight > w {
					table[i][w] = table[i-1][w]
					k.Emit("skip", fmt.Sprintf("Item %d (w=%d, v=%d) too heavy for capacity %d", i, it.Weight, it.Value, w),
						step.TableState(table, i),
						step.Highlights(step.Indices(step.ColorVisited, w)),
						step.Meta(step.Metadata{
							"item":             i,
							"weight":           it.Weight,
							"value":            it.Value,
							"capacity_current": w,
							"comparisons":      comparisons,
						}),
					)
					continue
				}

				take := table[i-1][w-it.Weight] + it.Value
				leave := table[i-1][w]
				comparisons++
				table[i][w] = max(take, leave)
				decision := "skip"
				if take > leave {
					decision = "take"
				}
				k.Emit("decide", fmt.Sprintf("Item %d (w=%d, v=%d): %s (take=%d, skip=%d)", i, it.Weight, it.Value, decision, take, leave),
					step.TableState(table, i),
					step.Highlights(step.Indices(step.ColorActive, w), step.Span(step.ColorSorted, 0, w)),
					step.Meta(step.Metadata{
						"item":             i,
						"weight":           it.Weight,
						"value":            it.Value,
						"capacity_current": w,
						"take_value":       take,
						"skip_value":       leave,
						"decision":         decision,
						"comparisons":      comparisons,
					}),
					step.Source("knapsack.decide"),
				)
			}
		}

		selected := []int{}
		w := capacity
		for i := n; i > 0; i-- {
			if table[i][w] == table[i-1][w] {
				continue
			}
			selected = append(selected, i)
			w -= items[i-1].Weight
			k.Emit("backtrack", fmt.Sprintf("Item %d is part of the optimal load; %d capacity left", i, w),
				step.TableState(table, i),
				step.Highlights(step.Indices(step.ColorPath, w+items[i-1].Weight)),
				step.Meta(step.Metadata{"item": i, "remaining_capacity": w, "comparisons": comparisons}),
			)
		}
		for l, r := 0, len(selected)-1; l < r; l, r = l+1, r-1 {
			selected[l], selected[r] = selected[r], selected[l]
		}

		totalWeight := 0
		for _, i := range selected {
			totalWeight += items[i-1].Weight
		}
		best := table[n][capacity]

		k.Emit(step.OpComplete, fmt.Sprintf("Optimal value: %d (items: %v)", best, selected),
			step.TableState(table, n),
			step.Highlights(step.Indices(step.ColorSorted, capacity)),
			step.Meta(step.Metadata{
				"max_value":      best,
				"selected_items": selected,
				"total_weight":   totalWeight,
				"total_value":    best,
				"comparisons":    comparisons,
			}),
		)
	})
}

func itemPairs(items []Item) [][]int {
	out := make([][]int, len(items))
	for i, it := range items {
		out[i] = []int{it.Weight, it.Value}
	}
	return out
}
