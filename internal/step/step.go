// Package step records the execution of an algorithm as an ordered run of
// numbered snapshots that a generic visualizer can render one at a time.
//
// The package knows nothing about sorting, graphs or tables. An algorithm
// embeds a Tracker, calls Emit at every instant worth showing and hands its
// Sequence to whoever consumes it (a batch collector or a stream forwarder).
package step

// Common operation tags. Algorithms are free to add their own vocabulary
// for intermediate steps, but every run opens with OpInit and closes with
// one of the terminal tags.
const (
	OpInit     = "init"
	OpComplete = "complete"
	OpFound    = "found"
	OpNotFound = "not_found"
)

// DefaultTerminals lists the tags a run may end with.
var DefaultTerminals = []string{OpComplete, OpFound, OpNotFound}

// Metadata holds auxiliary facts about a step (counters, indices,
// decisions). Values must be JSON-serializable.
type Metadata map[string]any

// MetaSource is the metadata key that carries a caller-supplied source
// location tag.
const MetaSource = "source"

// Step is one produced instant of an algorithm's execution.
type Step struct {
	StepNumber  int         `json:"step_number"`
	Operation   string      `json:"operation"`
	Description string      `json:"description"`
	State       State       `json:"state"`
	Highlights  []Highlight `json:"highlights"`
	Metadata    Metadata    `json:"metadata"`
}

// IsTerminal reports whether op is one of DefaultTerminals.
func IsTerminal(op string) bool {
	for _, t := range DefaultTerminals {
		if op == t {
			return true
		}
	}
	return false
}

// Collect drains seq and returns every step in production order.
func Collect(seq Sequence) []Step {
	var out []Step
	for s := range seq {
		out = append(out, s)
	}
	return out
}
