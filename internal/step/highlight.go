package step

// Color says why an entity is highlighted, not how it is painted.
type Color string

const (
	ColorPrimary     Color = "primary"
	ColorActive      Color = "active"
	ColorComparing   Color = "comparing"
	ColorSorted      Color = "sorted"
	ColorSwapped     Color = "swapped"
	ColorVisited     Color = "visited"
	ColorVisiting    Color = "visiting"
	ColorQueued      Color = "queued"
	ColorExploring   Color = "exploring"
	ColorPath        Color = "path"
	ColorStacked     Color = "stacked"
	ColorBacktracked Color = "backtracked"
)

var palette = map[Color]struct{}{
	ColorPrimary: {}, ColorActive: {}, ColorComparing: {}, ColorSorted: {},
	ColorSwapped: {}, ColorVisited: {}, ColorVisiting: {}, ColorQueued: {},
	ColorExploring: {}, ColorPath: {}, ColorStacked: {}, ColorBacktracked: {},
}

func (c Color) Valid() bool {
	_, ok := palette[c]
	return ok
}

// Edge identifies a directed pair of graph or tree nodes.
type Edge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Highlight points at the entities of a step's state that the step calls
// attention to.
type Highlight struct {
	Indices []int    `json:"indices"`
	Nodes   []string `json:"nodes"`
	Edges   []Edge   `json:"edges"`
	Color   Color    `json:"color"`
}

func Indices(c Color, idx ...int) Highlight {
	return Highlight{Indices: idx, Color: c}
}

// Span highlights the half-open index range [lo, hi).
func Span(c Color, lo, hi int) Highlight {
	idx := make([]int, 0, max(hi-lo, 0))
	for i := lo; i < hi; i++ {
		idx = append(idx, i)
	}
	return Highlight{Indices: idx, Color: c}
}

func Nodes(c Color, ids ...string) Highlight {
	return Highlight{Nodes: ids, Color: c}
}

func Edges(c Color, edges ...Edge) Highlight {
	return Highlight{Edges: edges, Color: c}
}

// PathEdges returns the consecutive edges of path.
func PathEdges(path []string) []Edge {
	if len(path) < 2 {
		return nil
	}
	out := make([]Edge, 0, len(path)-1)
	for i := 0; i+1 < len(path); i++ {
		out = append(out, Edge{From: path[i], To: path[i+1]})
	}
	return out
}

func normalizeHighlight(h Highlight) Highlight {
	if h.Indices == nil {
		h.Indices = []int{}
	}
	if h.Nodes == nil {
		h.Nodes = []string{}
	}
	if h.Edges == nil {
		h.Edges = []Edge{}
	}
	if h.Color == "" {
		h.Color = ColorPrimary
	}
	return h
}
