package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// parseParams turns "key=value" pairs into an input object. Pairs are
// separated by commas outside brackets and quotes, so list values such as
// values=[5,2,8] stay whole.
func parseParams(raws []string) (map[string]any, error) {
	out := map[string]any{}
	for _, raw := range raws {
		for _, part := range splitTopLevel(raw) {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}

			kv := strings.SplitN(part, "=", 2)
			if len(kv) != 2 {
				return nil, fmt.Errorf("invalid param %q (expected key=value)", part)
			}
			key := strings.TrimSpace(kv[0])
			if key == "" {
				return nil, fmt.Errorf("empty key in param %q", part)
			}
			val, err := parseLiteral(kv[1])
			if err != nil {
				return nil, fmt.Errorf("param %s: %w", key, err)
			}
			out[key] = val
		}
	}
	return out, nil
}

func splitTopLevel(s string) []string {
	var (
		parts []string
		depth int
		quote rune
		start int
	)
	for i, r := range s {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			}
		case r == '"' || r == '\'':
			quote = r
		case r == '[' || r == '{':
			depth++
		case r == ']' || r == '}':
			depth--
		case r == ',' && depth == 0:
			parts = append(parts, s[start:i])
			start = i + 1
		}
	}
	return append(parts, s[start:])
}

func parseLiteral(s string) (any, error) {
	s = strings.TrimSpace(s)

	switch s {
	case "true":
		return true, nil
	case "false":
		return false, nil
	case "null":
		return nil, nil
	}

	if strings.HasPrefix(s, "[") || strings.HasPrefix(s, "{") {
		var v any
		if err := json.Unmarshal([]byte(s), &v); err != nil {
			return nil, fmt.Errorf("invalid json value %q: %w", s, err)
		}
		return v, nil
	}

	if i, err := strconv.Atoi(s); err == nil {
		return i, nil
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f, nil
	}

	if len(s) >= 2 && ((s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'')) {
		if s[0] == '\'' {
			s = `"` + s[1:len(s)-1] + `"`
		}
		if unq, err := strconv.Unquote(s); err == nil {
			return unq, nil
		}
	}

	return s, nil
}
