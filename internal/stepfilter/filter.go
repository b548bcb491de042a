// Package stepfilter selects steps of a run with a boolean expr-lang
// expression, e.g. `operation in ["swap", "complete"]` or
// `metadata.swaps > 2`.
package stepfilter

import (
	"errors"
	"fmt"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/awmpietro/golang-algorithm-visualizer/internal/step"
)

var ErrInvalidFilter = errors.New("invalid filter")

type Filter struct {
	src  string
	prog *vm.Program
}

// Compile validates src and compiles it against the step environment.
func Compile(src string) (*Filter, error) {
	src = strings.TrimSpace(src)
	if err := Validate(src); err != nil {
		return nil, err
	}

	prog, err := expr.Compile(src, expr.Env(env(step.Step{})), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFilter, err)
	}
	return &Filter{src: src, prog: prog}, nil
}

func (f *Filter) String() string { return f.src }

// Match evaluates the filter for s. A step the expression cannot be
// evaluated on (a metadata key it lacks, say) does not match.
func (f *Filter) Match(s step.Step) bool {
	out, err := expr.Run(f.prog, env(s))
	if err != nil {
		return false
	}
	b, ok := out.(bool)
	return ok && b
}

func env(s step.Step) map[string]any {
	meta := map[string]any(s.Metadata)
	if meta == nil {
		meta = map[string]any{}
	}
	state := map[string]any(s.State)
	if state == nil {
		state = map[string]any{}
	}
	return map[string]any{
		"step_number": s.StepNumber,
		"operation":   s.Operation,
		"description": s.Description,
		"kind":        s.State.Kind(),
		"metadata":    meta,
		"state":       state,
		"highlights":  len(s.Highlights),
	}
}
