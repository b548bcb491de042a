package step

import (
	"reflect"
	"slices"
)

// State keys shared by every algorithm family.
const (
	KeyKind   = "kind"
	KeyValues = "values"
)

// State is a full snapshot of the externally relevant data at one instant.
// The kind key is mandatory; it tells a renderer which view to use. By
// convention the values key holds the indexable sequence that highlight
// indices point into.
type State map[string]any

func NewState(kind VisualizerType) State {
	return State{KeyKind: string(kind)}
}

// With sets key to v and returns s so snapshots can be built inline.
func (s State) With(key string, v any) State {
	s[key] = v
	return s
}

func (s State) Kind() string {
	k, _ := s[KeyKind].(string)
	return k
}

// ArrayState snapshots values as an array state. The slice is copied.
func ArrayState(values []int) State {
	return NewState(Array).With(KeyValues, cloneInts(values))
}

// TableState snapshots a DP table. row is the row being filled; its
// contents are exposed as values so highlights can point at columns.
func TableState(table [][]int, row int) State {
	rows := make([][]int, len(table))
	for i, r := range table {
		rows[i] = cloneInts(r)
	}
	var current []int
	if row >= 0 && row < len(rows) {
		current = cloneInts(rows[row])
	}
	if current == nil {
		current = []int{}
	}
	return NewState(DPTable).
		With("table", rows).
		With("row", row).
		With(KeyValues, current)
}

// Cells counts the scalar values held by the snapshot, descending into
// slices, maps, structs and pointers. It approximates the memory a retained
// step pins.
func (s State) Cells() int {
	return cells(reflect.ValueOf(map[string]any(s)))
}

func cells(v reflect.Value) int {
	switch v.Kind() {
	case reflect.Invalid:
		return 0
	case reflect.Pointer, reflect.Interface:
		if v.IsNil() {
			return 0
		}
		return cells(v.Elem())
	case reflect.Slice, reflect.Array:
		if v.Kind() == reflect.Slice && v.IsNil() {
			return 0
		}
		switch v.Type().Elem().Kind() {
		case reflect.Bool, reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
			reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
			reflect.Float32, reflect.Float64, reflect.String:
			return v.Len()
		}
		n := 0
		for i := range v.Len() {
			n += cells(v.Index(i))
		}
		return n
	case reflect.Map:
		n := 0
		iter := v.MapRange()
		for iter.Next() {
			n += cells(iter.Value())
		}
		return n
	case reflect.Struct:
		n := 0
		for i := range v.NumField() {
			n += cells(v.Field(i))
		}
		return n
	default:
		return 1
	}
}

// indexBound returns the length of the values entry when it is a slice.
func (s State) indexBound() (int, bool) {
	v, ok := s[KeyValues]
	if !ok || v == nil {
		return 0, false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		return rv.Len(), true
	default:
		return 0, false
	}
}

func cloneInts(v []int) []int {
	if v == nil {
		return []int{}
	}
	return slices.Clone(v)
}

// GraphState snapshots the shape of a graph. Traversal progress is added
// by the caller with With.
func GraphState(nodes []string, edges []Edge) State {
	if nodes == nil {
		nodes = []string{}
	}
	if edges == nil {
		edges = []Edge{}
	}
	return NewState(Graph).
		With("nodes", slices.Clone(nodes)).
		With("edges", slices.Clone(edges))
}

// TreeState snapshots a tree given as its JSON-ready root (nil for an
// empty tree).
func TreeState(root any) State {
	return NewState(Tree).With("tree", root)
}
