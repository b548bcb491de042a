package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/awmpietro/golang-algorithm-visualizer/internal/algorithms/dp"
	"github.com/awmpietro/golang-algorithm-visualizer/internal/algorithms/graphs"
)

var errMissingInput = errors.New("missing input")

func decode(raw json.RawMessage, v any) error {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return errMissingInput
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("malformed input: %w", err)
	}
	return nil
}

// isArray reports whether raw is a JSON array at the top level.
func isArray(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && raw[0] == '['
}

func toInt(n json.Number) (int, error) {
	if i, err := n.Int64(); err == nil {
		return int(i), nil
	}
	f, err := n.Float64()
	if err != nil || f != math.Trunc(f) || math.Abs(f) > 1<<53 {
		return 0, fmt.Errorf("expected an integer, got %s", n)
	}
	return int(f), nil
}

func toInts(ns []json.Number) ([]int, error) {
	out := make([]int, len(ns))
	for i, n := range ns {
		v, err := toInt(n)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		out[i] = v
	}
	return out, nil
}

func toFloat(n json.Number) (float64, error) {
	f, err := n.Float64()
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("expected a number, got %s", n)
	}
	return f, nil
}

// nodeID accepts a JSON string or number and returns its string form.
func nodeID(raw json.RawMessage) (string, error) {
	var v any
	if err := decode(raw, &v); err != nil {
		return "", err
	}
	switch x := v.(type) {
	case string:
		if strings.TrimSpace(x) == "" {
			return "", errors.New("empty node id")
		}
		return x, nil
	case json.Number:
		return x.String(), nil
	default:
		return "", fmt.Errorf("node id must be a string or a number, got %s", bytes.TrimSpace(raw))
	}
}

// optionalNodeID is nodeID that treats an absent or null value as "".
func optionalNodeID(raw json.RawMessage) (string, error) {
	t := bytes.TrimSpace(raw)
	if len(t) == 0 || bytes.Equal(t, []byte("null")) {
		return "", nil
	}
	return nodeID(raw)
}

// intList accepts [1, 2, 3] or {"values": [1, 2, 3]}.
func intList(raw json.RawMessage) ([]int, error) {
	var ns []json.Number
	if isArray(raw) {
		if err := decode(raw, &ns); err != nil {
			return nil, err
		}
		return toInts(ns)
	}
	var obj struct {
		Values *[]json.Number `json:"values"`
	}
	if err := decode(raw, &obj); err != nil {
		return nil, err
	}
	if obj.Values == nil {
		return nil, errors.New(`expected an array of integers or {"values": [...]}`)
	}
	return toInts(*obj.Values)
}

// parseGraph accepts DOT text or an adjacency object. weighted selects
// [[neighbor, weight], ...] lists over plain neighbor lists. Object keys
// are sorted (numerically when possible) since JSON objects have no order.
func parseGraph(raw json.RawMessage, weighted bool) (*graphs.Graph, error) {
	t := bytes.TrimSpace(raw)
	if len(t) == 0 || bytes.Equal(t, []byte("null")) {
		return nil, errors.New("missing graph")
	}

	if t[0] == '"' {
		var dot string
		if err := json.Unmarshal(t, &dot); err != nil {
			return nil, fmt.Errorf("malformed graph: %w", err)
		}
		return graphs.ParseDOT(dot)
	}

	var adj map[string][]json.RawMessage
	if err := decode(t, &adj); err != nil {
		return nil, fmt.Errorf("graph must be DOT text or an adjacency object: %w", err)
	}

	keys := make([]string, 0, len(adj))
	for k := range adj {
		keys = append(keys, k)
	}
	graphs.SortIDs(keys)

	g := graphs.New()
	for _, k := range keys {
		g.AddNode(k)
	}
	for _, from := range keys {
		for i, entry := range adj[from] {
			to, w, err := neighbor(entry, weighted)
			if err != nil {
				return nil, fmt.Errorf("graph[%s][%d]: %w", from, i, err)
			}
			g.AddEdge(from, to, w)
		}
	}
	return g, nil
}

func neighbor(raw json.RawMessage, weighted bool) (string, float64, error) {
	if !weighted {
		id, err := nodeID(raw)
		return id, 1, err
	}

	var pair []json.RawMessage
	if err := decode(raw, &pair); err != nil || len(pair) != 2 {
		return "", 0, errors.New("expected [neighbor, weight]")
	}
	id, err := nodeID(pair[0])
	if err != nil {
		return "", 0, err
	}
	var n json.Number
	if err := decode(pair[1], &n); err != nil {
		return "", 0, fmt.Errorf("weight: %w", err)
	}
	w, err := toFloat(n)
	if err != nil {
		return "", 0, fmt.Errorf("weight: %w", err)
	}
	return id, w, nil
}

type graphInput struct {
	Graph  json.RawMessage `json:"graph"`
	Start  json.RawMessage `json:"start"`
	Target json.RawMessage `json:"target"`
}

func graphQuery(raw json.RawMessage, weighted bool) (*graphs.Graph, string, string, error) {
	var in graphInput
	if err := decode(raw, &in); err != nil {
		return nil, "", "", err
	}
	g, err := parseGraph(in.Graph, weighted)
	if err != nil {
		return nil, "", "", err
	}
	start, err := nodeID(in.Start)
	if err != nil {
		return nil, "", "", fmt.Errorf("start: %w", err)
	}
	if !g.Has(start) {
		return nil, "", "", fmt.Errorf("start node %q is not in the graph", start)
	}
	target, err := optionalNodeID(in.Target)
	if err != nil {
		return nil, "", "", fmt.Errorf("target: %w", err)
	}
	return g, start, target, nil
}

// knapsackItems accepts [[w, v], ...] or [{"weight": w, "value": v}, ...].
func knapsackItems(raws []json.RawMessage) ([]dp.Item, error) {
	items := make([]dp.Item, 0, len(raws))
	for i, raw := range raws {
		var it dp.Item
		if isArray(raw) {
			var pair []json.Number
			if err := decode(raw, &pair); err != nil || len(pair) != 2 {
				return nil, fmt.Errorf("item %d: expected [weight, value]", i)
			}
			w, err := toInt(pair[0])
			if err != nil {
				return nil, fmt.Errorf("item %d weight: %w", i, err)
			}
			v, err := toInt(pair[1])
			if err != nil {
				return nil, fmt.Errorf("item %d value: %w", i, err)
			}
			it = dp.Item{Weight: w, Value: v}
		} else {
			var obj struct {
				Weight *json.Number `json:"weight"`
				Value  *json.Number `json:"value"`
			}
			if err := decode(raw, &obj); err != nil || obj.Weight == nil || obj.Value == nil {
				return nil, fmt.Errorf(`item %d: expected {"weight": w, "value": v}`, i)
			}
			w, err := toInt(*obj.Weight)
			if err != nil {
				return nil, fmt.Errorf("item %d weight: %w", i, err)
			}
			v, err := toInt(*obj.Value)
			if err != nil {
				return nil, fmt.Errorf("item %d value: %w", i, err)
			}
			it = dp.Item{Weight: w, Value: v}
		}
		if it.Weight < 0 || it.Value < 0 {
			return nil, fmt.Errorf("item %d: weight and value must not be negative", i)
		}
		items = append(items, it)
	}
	return items, nil
}

// levelOrder accepts [1, null, 2] or {"values": [...]}.
func levelOrder(raw json.RawMessage) ([]*int, error) {
	var ns []*json.Number
	if isArray(raw) {
		if err := decode(raw, &ns); err != nil {
			return nil, err
		}
	} else {
		var obj struct {
			Values *[]*json.Number `json:"values"`
		}
		if err := decode(raw, &obj); err != nil {
			return nil, err
		}
		if obj.Values == nil {
			return nil, errors.New(`expected a level-order array or {"values": [...]}`)
		}
		ns = *obj.Values
	}

	out := make([]*int, len(ns))
	for i, n := range ns {
		if n == nil {
			continue
		}
		v, err := toInt(*n)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		out[i] = &v
	}
	return out, nil
}
