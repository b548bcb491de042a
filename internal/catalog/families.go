// Package catalog wires the instrumented algorithms into a registry. Each
// algorithm family is one input shape plus one entry operation; the
// family's binder is chosen when an algorithm is registered.
package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/awmpietro/golang-algorithm-visualizer/internal/algorithms/dp"
	"github.com/awmpietro/golang-algorithm-visualizer/internal/algorithms/graphs"
	"github.com/awmpietro/golang-algorithm-visualizer/internal/algorithms/trees"
	"github.com/awmpietro/golang-algorithm-visualizer/internal/registry"
	"github.com/awmpietro/golang-algorithm-visualizer/internal/step"
)

const (
	FamilySort          = "sort"
	FamilyArraySearch   = "array_search"
	FamilyGraphSearch   = "graph_search"
	FamilyShortestPath  = "shortest_path"
	FamilyKnapsack      = "knapsack"
	FamilyLCS           = "lcs"
	FamilyFibonacci     = "fibonacci"
	FamilyTreeInsert    = "tree_insert"
	FamilyTreeSearch    = "tree_search"
	FamilyTreeTraversal = "tree_traversal"
)

// MaxTableCells bounds the DP tables an input may ask for. Every step
// snapshots the whole table, so a run retains roughly the square of it.
const MaxTableCells = 4096

type Sorter interface {
	Sort(values []int) step.Sequence
}

type ArraySearcher interface {
	Search(values []int, target int) step.Sequence
}

type GraphSearcher interface {
	Search(g *graphs.Graph, start, target string) step.Sequence
}

type PathFinder interface {
	ShortestPath(g *graphs.Graph, start, target string) step.Sequence
}

type TreeBuilder interface {
	Insert(values []int) step.Sequence
}

type TreeSearcher interface {
	Search(values []int, target int) step.Sequence
}

type TreeWalker interface {
	Traverse(values []*int) step.Sequence
}

func invalid(err error) error {
	return fmt.Errorf("%w: %w", registry.ErrInvalidInput, err)
}

func SortFamily(newSorter func() Sorter) registry.Binder {
	return func(input json.RawMessage) (step.Sequence, error) {
		values, err := intList(input)
		if err != nil {
			return nil, invalid(err)
		}
		return newSorter().Sort(values), nil
	}
}

func ArraySearchFamily(newSearcher func() ArraySearcher) registry.Binder {
	return func(input json.RawMessage) (step.Sequence, error) {
		var in struct {
			Array  *[]json.Number `json:"array"`
			Target *json.Number   `json:"target"`
		}
		if err := decode(input, &in); err != nil {
			return nil, invalid(err)
		}
		if in.Array == nil || in.Target == nil {
			return nil, invalid(errors.New(`expected {"array": [...], "target": n}`))
		}
		values, err := toInts(*in.Array)
		if err != nil {
			return nil, invalid(fmt.Errorf("array: %w", err))
		}
		target, err := toInt(*in.Target)
		if err != nil {
			return nil, invalid(fmt.Errorf("target: %w", err))
		}
		return newSearcher().Search(values, target), nil
	}
}

func GraphSearchFamily(newSearcher func() GraphSearcher) registry.Binder {
	return func(input json.RawMessage) (step.Sequence, error) {
		g, start, target, err := graphQuery(input, false)
		if err != nil {
			return nil, invalid(err)
		}
		return newSearcher().Search(g, start, target), nil
	}
}

func ShortestPathFamily(newFinder func() PathFinder) registry.Binder {
	return func(input json.RawMessage) (step.Sequence, error) {
		g, start, target, err := graphQuery(input, true)
		if err != nil {
			return nil, invalid(err)
		}
		if e, ok := g.NegativeEdge(); ok {
			return nil, invalid(fmt.Errorf("edge %s->%s has a negative weight", e.From, e.To))
		}
		return newFinder().ShortestPath(g, start, target), nil
	}
}

func KnapsackFamily() registry.Binder {
	return func(input json.RawMessage) (step.Sequence, error) {
		var in struct {
			Items    []json.RawMessage `json:"items"`
			Capacity *json.Number      `json:"capacity"`
		}
		if err := decode(input, &in); err != nil {
			return nil, invalid(err)
		}
		if in.Capacity == nil {
			return nil, invalid(errors.New("capacity is required"))
		}
		capacity, err := toInt(*in.Capacity)
		if err != nil || capacity < 0 {
			return nil, invalid(errors.New("capacity must be a non-negative integer"))
		}
		items, err := knapsackItems(in.Items)
		if err != nil {
			return nil, invalid(err)
		}
		if !tableFits(len(items)+1, capacity) {
			return nil, invalid(fmt.Errorf("capacity %d with %d items exceeds %d table cells", capacity, len(items), MaxTableCells))
		}
		return dp.NewKnapsack().Solve(items, capacity), nil
	}
}

// tableFits reports whether a rows x (lastCol+1) table stays within
// MaxTableCells. It divides instead of multiplying so huge inputs cannot
// wrap around.
func tableFits(rows, lastCol int) bool {
	if rows < 1 || lastCol < 0 {
		return false
	}
	return lastCol < MaxTableCells/rows
}

func LCSFamily() registry.Binder {
	return func(input json.RawMessage) (step.Sequence, error) {
		var in struct {
			A    *string `json:"a"`
			B    *string `json:"b"`
			Str1 *string `json:"str1"`
			Str2 *string `json:"str2"`
		}
		if err := decode(input, &in); err != nil {
			return nil, invalid(err)
		}
		a, b := in.A, in.B
		if a == nil {
			a = in.Str1
		}
		if b == nil {
			b = in.Str2
		}
		if a == nil || b == nil {
			return nil, invalid(errors.New(`expected {"a": "...", "b": "..."}`))
		}
		if !tableFits(len([]rune(*a))+1, len([]rune(*b))) {
			return nil, invalid(fmt.Errorf("strings too long: table exceeds %d cells", MaxTableCells))
		}
		return dp.NewLCS().Compute(*a, *b), nil
	}
}

func FibonacciFamily() registry.Binder {
	return func(input json.RawMessage) (step.Sequence, error) {
		var num json.Number
		if err := decode(input, &num); err != nil {
			var in struct {
				N *json.Number `json:"n"`
			}
			if errors.Is(err, errMissingInput) {
				return nil, invalid(err)
			}
			if err := decode(input, &in); err != nil || in.N == nil {
				return nil, invalid(errors.New(`expected an integer or {"n": n}`))
			}
			num = *in.N
		}
		n, err := toInt(num)
		if err != nil {
			return nil, invalid(err)
		}
		if n < 0 || n > dp.MaxFibonacci {
			return nil, invalid(fmt.Errorf("n must be between 0 and %d", dp.MaxFibonacci))
		}
		return dp.NewFibonacci().Compute(n), nil
	}
}

func TreeInsertFamily(newBuilder func() TreeBuilder) registry.Binder {
	return func(input json.RawMessage) (step.Sequence, error) {
		values, err := intList(input)
		if err != nil {
			return nil, invalid(err)
		}
		return newBuilder().Insert(values), nil
	}
}

func TreeSearchFamily(newSearcher func() TreeSearcher) registry.Binder {
	return func(input json.RawMessage) (step.Sequence, error) {
		var in struct {
			Values *[]json.Number `json:"values"`
			Target *json.Number   `json:"target"`
		}
		if err := decode(input, &in); err != nil {
			return nil, invalid(err)
		}
		if in.Values == nil || in.Target == nil {
			return nil, invalid(errors.New(`expected {"values": [...], "target": n}`))
		}
		values, err := toInts(*in.Values)
		if err != nil {
			return nil, invalid(fmt.Errorf("values: %w", err))
		}
		target, err := toInt(*in.Target)
		if err != nil {
			return nil, invalid(fmt.Errorf("target: %w", err))
		}
		return newSearcher().Search(values, target), nil
	}
}

func TreeTraversalFamily(order trees.Order) registry.Binder {
	return func(input json.RawMessage) (step.Sequence, error) {
		values, err := levelOrder(input)
		if err != nil {
			return nil, invalid(err)
		}
		return trees.NewTraversal(order).Traverse(values), nil
	}
}

// sourceOf adapts a package's Source function to one file.
func sourceOf(read func(string) (string, error), file string) registry.SourceFunc {
	return func() (string, error) {
		src, err := read(file)
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(src) + "\n", nil
	}
}
