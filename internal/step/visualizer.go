package step

import "fmt"

// VisualizerType names the rendering mode a step stream expects.
type VisualizerType string

const (
	Array      VisualizerType = "array"
	Graph      VisualizerType = "graph"
	Tree       VisualizerType = "tree"
	Heap       VisualizerType = "heap"
	Grid       VisualizerType = "grid"
	LinkedList VisualizerType = "linked_list"
	DPTable    VisualizerType = "dp_table"
	StackQueue VisualizerType = "stack_queue"
	Trie       VisualizerType = "trie"
	HashTable  VisualizerType = "hash_table"
	Composite  VisualizerType = "composite"
)

var visualizerTypes = []VisualizerType{
	Array, Graph, Tree, Heap, Grid, LinkedList, DPTable, StackQueue, Trie, HashTable, Composite,
}

// VisualizerTypes returns the closed set in declaration order.
func VisualizerTypes() []VisualizerType {
	out := make([]VisualizerType, len(visualizerTypes))
	copy(out, visualizerTypes)
	return out
}

func (v VisualizerType) Valid() bool {
	for _, t := range visualizerTypes {
		if v == t {
			return true
		}
	}
	return false
}

func ParseVisualizerType(s string) (VisualizerType, error) {
	v := VisualizerType(s)
	if !v.Valid() {
		return "", fmt.Errorf("unknown visualizer type %q", s)
	}
	return v, nil
}
