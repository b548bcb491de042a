package graphs

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/awalterschulze/gographviz"
)

// ParseDOT builds a Graph from Graphviz DOT text. Nodes keep declaration
// order and edges keep text order so traversals are reproducible. An edge
// weight comes from its weight attribute (label as a fallback) and
// defaults to 1. Undirected graphs get both directions of every edge.
func ParseDOT(dot string) (*Graph, error) {
	ast, err := gographviz.ParseString(dot)
	if err != nil {
		return nil, fmt.Errorf("failed to parse DOT: %w", err)
	}

	parsed := gographviz.NewGraph()
	if err := gographviz.Analyse(ast, parsed); err != nil {
		return nil, fmt.Errorf("failed to analyze DOT: %w", err)
	}

	g := New()
	for _, n := range parsed.Nodes.Nodes {
		g.AddNode(unquote(n.Name))
	}

	edges, err := extractEdgesInTextOrder(dot)
	if err != nil {
		return nil, fmt.Errorf("failed to extract edge order from DOT: %w", err)
	}

	for _, e := range edges {
		if !g.Has(e.From) {
			return nil, fmt.Errorf("edge references unknown source node %q", e.From)
		}
		if !g.Has(e.To) {
			return nil, fmt.Errorf("edge references unknown destination node %q", e.To)
		}
		g.AddEdge(e.From, e.To, e.Weight)
		if !parsed.Directed {
			g.AddEdge(e.To, e.From, e.Weight)
		}
	}

	return g, nil
}

type edgeSpec struct {
	From   string
	To     string
	Weight float64
}

// splitStatements cuts the graph body into statements at ';' and line
// breaks outside quotes and attribute lists.
func splitStatements(dot string) []string {
	if i := strings.Index(dot, "{"); i >= 0 {
		dot = dot[i+1:]
	}
	if i := strings.LastIndex(dot, "}"); i >= 0 {
		dot = dot[:i]
	}

	var out []string
	var b strings.Builder
	inQuotes := false
	escape := false
	depth := 0

	flush := func() {
		if s := strings.TrimSpace(b.String()); s != "" {
			out = append(out, s)
		}
		b.Reset()
	}

	for _, r := range dot {
		if escape {
			b.WriteRune(r)
			escape = false
			continue
		}
		switch {
		case r == '\\' && inQuotes:
			escape = true
		case r == '"':
			inQuotes = !inQuotes
		case r == '[' && !inQuotes:
			depth++
		case r == ']' && !inQuotes:
			depth--
		case (r == ';' || r == '\n') && !inQuotes && depth == 0:
			flush()
			continue
		}
		b.WriteRune(r)
	}
	flush()
	return out
}

var (
	edgeOpRe  = regexp.MustCompile(`\s*(->|--)\s*`)
	nodeIDRe  = regexp.MustCompile(`^(?:"(?:[^"\\]|\\.)*"|[A-Za-z0-9_.]+)$`)
	weightRe  = regexp.MustCompile(`\bweight\s*=\s*"?([-+0-9.eE]+)"?`)
	labelRe   = regexp.MustCompile(`\blabel\s*=\s*"?([-+0-9.eE]+)"?`)
	commentRe = regexp.MustCompile(`(?m)//.*$`)
)

func extractEdgesInTextOrder(dot string) ([]edgeSpec, error) {
	out := make([]edgeSpec, 0)

	for _, s := range splitStatements(commentRe.ReplaceAllString(dot, "")) {
		body, attrs := s, ""
		if i := strings.Index(s, "["); i >= 0 {
			body, attrs = s[:i], s[i:]
		}
		if !strings.Contains(body, "->") && !strings.Contains(body, "--") {
			continue
		}

		ids := edgeOpRe.Split(strings.TrimSpace(body), -1)
		if len(ids) < 2 {
			return nil, fmt.Errorf("unsupported edge statement: %q", s)
		}
		for _, id := range ids {
			if !nodeIDRe.MatchString(id) {
				return nil, fmt.Errorf("unsupported edge statement: %q", s)
			}
		}

		weight, err := edgeWeight(attrs)
		if err != nil {
			return nil, fmt.Errorf("edge statement %q: %w", s, err)
		}

		for i := 0; i+1 < len(ids); i++ {
			out = append(out, edgeSpec{From: unquote(ids[i]), To: unquote(ids[i+1]), Weight: weight})
		}
	}

	return out, nil
}

func edgeWeight(attrs string) (float64, error) {
	m := weightRe.FindStringSubmatch(attrs)
	if m == nil {
		m = labelRe.FindStringSubmatch(attrs)
	}
	if m == nil {
		return 1, nil
	}
	w, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, fmt.Errorf("invalid weight %q", m[1])
	}
	return w, nil
}

// unquote strips the quotes Graphviz keeps around quoted identifiers.
func unquote(id string) string {
	id = strings.TrimSpace(id)
	if len(id) >= 2 && id[0] == '"' && id[len(id)-1] == '"' {
		id = id[1 : len(id)-1]
	}
	return id
}
