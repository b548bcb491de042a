package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

type inputFlags struct {
	inline string
	file   string
	params []string
}

// resolve builds the JSON payload handed to the algorithm from whichever
// input flag was given.
func (f inputFlags) resolve() (json.RawMessage, error) {
	set := 0
	for _, given := range []bool{f.inline != "", f.file != "", len(f.params) > 0} {
		if given {
			set++
		}
	}
	switch {
	case set == 0:
		return nil, errors.New("one of --input, --input-file or --param is required")
	case set > 1:
		return nil, errors.New("--input, --input-file and --param are mutually exclusive")
	}

	switch {
	case f.inline != "":
		if !json.Valid([]byte(f.inline)) {
			return nil, fmt.Errorf("--input is not valid json")
		}
		return json.RawMessage(f.inline), nil
	case f.file != "":
		return readInputFile(f.file)
	default:
		obj, err := parseParams(f.params)
		if err != nil {
			return nil, err
		}
		return json.Marshal(obj)
	}
}

func readInputFile(path string) (json.RawMessage, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read input file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		var v any
		if err := yaml.Unmarshal(b, &v); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		return json.Marshal(normalizeYAML(v))
	default:
		if !json.Valid(b) {
			return nil, fmt.Errorf("parse %s: invalid json", path)
		}
		return json.RawMessage(b), nil
	}
}

// normalizeYAML rewrites maps with non-string keys (an adjacency list keyed
// by node number, say) so they can be encoded as JSON objects.
func normalizeYAML(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, e := range t {
			t[k] = normalizeYAML(e)
		}
		return t
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[fmt.Sprint(k)] = normalizeYAML(e)
		}
		return out
	case []any:
		for i, e := range t {
			t[i] = normalizeYAML(e)
		}
		return t
	default:
		return v
	}
}
