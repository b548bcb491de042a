package step

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"
)

// Validate checks the shape of a single step.
func Validate(s Step) error {
	if s.StepNumber < 1 {
		return fmt.Errorf("step_number must be positive (got %d)", s.StepNumber)
	}
	if strings.TrimSpace(s.Operation) == "" {
		return errors.New("operation is empty")
	}
	if strings.TrimSpace(s.Description) == "" {
		return errors.New("description is empty")
	}
	if s.State == nil || s.State.Kind() == "" {
		return errors.New("state has no kind")
	}
	if err := checkJSONValue(map[string]any(s.State)); err != nil {
		return fmt.Errorf("state: %w", err)
	}
	if err := checkJSONValue(map[string]any(s.Metadata)); err != nil {
		return fmt.Errorf("metadata: %w", err)
	}

	for i, h := range s.Highlights {
		if !h.Color.Valid() {
			return fmt.Errorf("highlight %d: unknown color %q", i, h.Color)
		}
		if len(h.Indices) == 0 {
			continue
		}
		bound, ok := s.State.indexBound()
		if !ok {
			return fmt.Errorf("highlight %d: indices given but state has no %s", i, KeyValues)
		}
		for _, idx := range h.Indices {
			if idx < 0 || idx >= bound {
				return fmt.Errorf("highlight %d: index %d out of range [0,%d)", i, idx, bound)
			}
		}
	}
	return nil
}

// CheckSequence verifies the ordering contract of a whole run: numbers are
// 1..N without gaps, the first step is OpInit and the last one carries a
// terminal tag. terminals defaults to DefaultTerminals.
func CheckSequence(steps []Step, terminals ...string) error {
	if len(steps) == 0 {
		return errors.New("empty step sequence")
	}
	if len(terminals) == 0 {
		terminals = DefaultTerminals
	}
	for i, s := range steps {
		if s.StepNumber != i+1 {
			return fmt.Errorf("step %d has step_number %d", i+1, s.StepNumber)
		}
	}
	if steps[0].Operation != OpInit {
		return fmt.Errorf("first operation is %q, want %q", steps[0].Operation, OpInit)
	}
	last := steps[len(steps)-1].Operation
	for _, t := range terminals {
		if last == t {
			return nil
		}
	}
	return fmt.Errorf("last operation %q is not terminal (%s)", last, strings.Join(terminals, ", "))
}

func checkJSONValue(v any) error {
	return checkJSONReflect(reflect.ValueOf(v), 0)
}

func checkJSONReflect(rv reflect.Value, depth int) error {
	if depth > 64 {
		return errors.New("value nested too deeply")
	}
	if !rv.IsValid() {
		return nil
	}
	switch rv.Kind() {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return nil
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return fmt.Errorf("unsupported float value %v", f)
		}
		return nil
	case reflect.Interface, reflect.Pointer:
		if rv.IsNil() {
			return nil
		}
		return checkJSONReflect(rv.Elem(), depth+1)
	case reflect.Slice, reflect.Array:
		for i := 0; i < rv.Len(); i++ {
			if err := checkJSONReflect(rv.Index(i), depth+1); err != nil {
				return err
			}
		}
		return nil
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return fmt.Errorf("map key type %s is not a string", rv.Type().Key())
		}
		iter := rv.MapRange()
		for iter.Next() {
			if err := checkJSONReflect(iter.Value(), depth+1); err != nil {
				return fmt.Errorf("%s: %w", iter.Key().String(), err)
			}
		}
		return nil
	case reflect.Struct:
		for i := 0; i < rv.NumField(); i++ {
			if !rv.Type().Field(i).IsExported() {
				continue
			}
			if err := checkJSONReflect(rv.Field(i), depth+1); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("unsupported value of kind %s", rv.Kind())
	}
}
