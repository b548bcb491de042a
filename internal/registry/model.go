package registry

import (
	"encoding/json"

	"github.com/awmpietro/golang-algorithm-visualizer/internal/step"
)

// Category groups algorithms in the catalog.
type Category string

const (
	CategorySorting            Category = "sorting"
	CategorySearch             Category = "search"
	CategoryGraphs             Category = "graphs"
	CategoryTrees              Category = "trees"
	CategoryDynamicProgramming Category = "dynamic_programming"
)

// Metadata is the static, introspectable description of an algorithm.
type Metadata struct {
	ID             string              `json:"id"`
	Name           string              `json:"name"`
	Category       Category            `json:"category"`
	VisualizerType step.VisualizerType `json:"visualizer_type"`
}

// Binder normalizes a raw payload for one algorithm family and returns the
// step sequence of a freshly constructed instance. A Binder must not keep
// state between calls.
type Binder func(input json.RawMessage) (step.Sequence, error)

// SourceFunc returns the source text of an algorithm implementation.
type SourceFunc func() (string, error)

// Entry binds metadata to a family tag and its dispatch rule.
type Entry struct {
	Metadata
	Family string
	Bind   Binder
	Source SourceFunc
}
