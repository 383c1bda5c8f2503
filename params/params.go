// Package params provides a typed view over JSON input documents. A run is
// described by nested objects ("Graph", "Hilbert", "Hamiltonian", ...) whose
// fields are looked up by name with type-checked getters.
package params

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
)

// ErrFieldMissing is returned when a required field is absent.
type ErrFieldMissing struct {
	Field string
}

func (e *ErrFieldMissing) Error() string {
	return fmt.Sprintf("missing required field %q", e.Field)
}

// ErrFieldType is returned when a field is present but cannot be converted
// to the requested type.
type ErrFieldType struct {
	Field string
	Want  string
}

func (e *ErrFieldType) Error() string {
	return fmt.Sprintf("field %q is not a valid %s", e.Field, e.Want)
}

// Params is a decoded JSON object.
type Params map[string]any

// Decode reads a single JSON object from r.
func Decode(r io.Reader) (Params, error) {
	var p Params

	dec := json.NewDecoder(r)
	if err := dec.Decode(&p); err != nil {
		return nil, fmt.Errorf("decode params: %w", err)
	}

	return p, nil
}

// Has reports whether the field is present.
func (p Params) Has(key string) bool {
	_, ok := p[key]
	return ok
}

// Object returns a nested object field.
func (p Params) Object(key string) (Params, error) {
	raw, ok := p[key]
	if !ok {
		return nil, &ErrFieldMissing{Field: key}
	}

	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, &ErrFieldType{Field: key, Want: "object"}
	}

	return Params(obj), nil
}

// Objects returns a field holding a list of objects.
func (p Params) Objects(key string) ([]Params, error) {
	raw, ok := p[key]
	if !ok {
		return nil, &ErrFieldMissing{Field: key}
	}

	list, ok := raw.([]any)
	if !ok {
		return nil, &ErrFieldType{Field: key, Want: "object list"}
	}

	out := make([]Params, len(list))
	for i, e := range list {
		obj, ok := e.(map[string]any)
		if !ok {
			return nil, &ErrFieldType{Field: key, Want: "object list"}
		}
		out[i] = Params(obj)
	}

	return out, nil
}

// String returns a string field.
func (p Params) String(key string) (string, error) {
	raw, ok := p[key]
	if !ok {
		return "", &ErrFieldMissing{Field: key}
	}

	s, ok := raw.(string)
	if !ok {
		return "", &ErrFieldType{Field: key, Want: "string"}
	}

	return s, nil
}

// StringOr returns a string field, or def when absent.
func (p Params) StringOr(key, def string) (string, error) {
	if !p.Has(key) {
		return def, nil
	}
	return p.String(key)
}

// Bool returns a boolean field.
func (p Params) Bool(key string) (bool, error) {
	raw, ok := p[key]
	if !ok {
		return false, &ErrFieldMissing{Field: key}
	}

	b, ok := raw.(bool)
	if !ok {
		return false, &ErrFieldType{Field: key, Want: "bool"}
	}

	return b, nil
}

// BoolOr returns a boolean field, or def when absent.
func (p Params) BoolOr(key string, def bool) (bool, error) {
	if !p.Has(key) {
		return def, nil
	}
	return p.Bool(key)
}

// Float returns a numeric field.
func (p Params) Float(key string) (float64, error) {
	raw, ok := p[key]
	if !ok {
		return 0, &ErrFieldMissing{Field: key}
	}

	f, ok := asFloat(raw)
	if !ok {
		return 0, &ErrFieldType{Field: key, Want: "number"}
	}

	return f, nil
}

// FloatOr returns a numeric field, or def when absent.
func (p Params) FloatOr(key string, def float64) (float64, error) {
	if !p.Has(key) {
		return def, nil
	}
	return p.Float(key)
}

// Int returns an integer field. Numbers with a fractional part are
// rejected.
func (p Params) Int(key string) (int, error) {
	f, err := p.Float(key)
	if err != nil {
		return 0, err
	}

	i, ok := asInt(f)
	if !ok {
		return 0, &ErrFieldType{Field: key, Want: "integer"}
	}

	return i, nil
}

// IntOr returns an integer field, or def when absent.
func (p Params) IntOr(key string, def int) (int, error) {
	if !p.Has(key) {
		return def, nil
	}
	return p.Int(key)
}

// Floats returns a list of numbers.
func (p Params) Floats(key string) ([]float64, error) {
	raw, ok := p[key]
	if !ok {
		return nil, &ErrFieldMissing{Field: key}
	}

	list, ok := raw.([]any)
	if !ok {
		return nil, &ErrFieldType{Field: key, Want: "number list"}
	}

	out := make([]float64, len(list))
	for i, e := range list {
		f, ok := asFloat(e)
		if !ok {
			return nil, &ErrFieldType{Field: key, Want: "number list"}
		}
		out[i] = f
	}

	return out, nil
}

// Ints returns a list of integers.
func (p Params) Ints(key string) ([]int, error) {
	fs, err := p.Floats(key)
	if err != nil {
		return nil, err
	}

	out := make([]int, len(fs))
	for i, f := range fs {
		n, ok := asInt(f)
		if !ok {
			return nil, &ErrFieldType{Field: key, Want: "integer list"}
		}
		out[i] = n
	}

	return out, nil
}

// FloatMatrix returns a list of number lists.
func (p Params) FloatMatrix(key string) ([][]float64, error) {
	rows, err := p.anyRows(key, "number matrix")
	if err != nil {
		return nil, err
	}

	out := make([][]float64, len(rows))
	for i, row := range rows {
		out[i] = make([]float64, len(row))
		for j, e := range row {
			f, ok := asFloat(e)
			if !ok {
				return nil, &ErrFieldType{Field: key, Want: "number matrix"}
			}
			out[i][j] = f
		}
	}

	return out, nil
}

// IntMatrix returns a list of integer lists.
func (p Params) IntMatrix(key string) ([][]int, error) {
	fm, err := p.FloatMatrix(key)
	if err != nil {
		return nil, err
	}

	out := make([][]int, len(fm))
	for i, row := range fm {
		out[i] = make([]int, len(row))
		for j, f := range row {
			n, ok := asInt(f)
			if !ok {
				return nil, &ErrFieldType{Field: key, Want: "integer matrix"}
			}
			out[i][j] = n
		}
	}

	return out, nil
}

// Complexes returns a list whose entries are either plain numbers or
// [re, im] pairs.
func (p Params) Complexes(key string) ([]complex128, error) {
	raw, ok := p[key]
	if !ok {
		return nil, &ErrFieldMissing{Field: key}
	}

	list, ok := raw.([]any)
	if !ok {
		return nil, &ErrFieldType{Field: key, Want: "complex list"}
	}

	out := make([]complex128, len(list))
	for i, e := range list {
		c, ok := asComplex(e)
		if !ok {
			return nil, &ErrFieldType{Field: key, Want: "complex list"}
		}
		out[i] = c
	}

	return out, nil
}

// ComplexMatrix returns a matrix whose entries are either plain numbers or
// [re, im] pairs.
func (p Params) ComplexMatrix(key string) ([][]complex128, error) {
	rows, err := p.anyRows(key, "complex matrix")
	if err != nil {
		return nil, err
	}

	out := make([][]complex128, len(rows))
	for i, row := range rows {
		out[i] = make([]complex128, len(row))
		for j, e := range row {
			c, ok := asComplex(e)
			if !ok {
				return nil, &ErrFieldType{Field: key, Want: "complex matrix"}
			}
			out[i][j] = c
		}
	}

	return out, nil
}

// ComplexMatrices returns a list of complex matrices.
func (p Params) ComplexMatrices(key string) ([][][]complex128, error) {
	raw, ok := p[key]
	if !ok {
		return nil, &ErrFieldMissing{Field: key}
	}

	list, ok := raw.([]any)
	if !ok {
		return nil, &ErrFieldType{Field: key, Want: "complex matrix list"}
	}

	out := make([][][]complex128, len(list))
	for i, e := range list {
		wrapped := Params{key: e}
		m, err := wrapped.ComplexMatrix(key)
		if err != nil {
			return nil, &ErrFieldType{Field: key, Want: "complex matrix list"}
		}
		out[i] = m
	}

	return out, nil
}

func (p Params) anyRows(key, want string) ([][]any, error) {
	raw, ok := p[key]
	if !ok {
		return nil, &ErrFieldMissing{Field: key}
	}

	list, ok := raw.([]any)
	if !ok {
		return nil, &ErrFieldType{Field: key, Want: want}
	}

	out := make([][]any, len(list))
	for i, e := range list {
		row, ok := e.([]any)
		if !ok {
			return nil, &ErrFieldType{Field: key, Want: want}
		}
		out[i] = row
	}

	return out, nil
}

func asFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case json.Number:
		f, err := x.Float64()
		return f, err == nil
	case int:
		return float64(x), true
	default:
		return 0, false
	}
}

func asInt(f float64) (int, bool) {
	if math.Trunc(f) != f || math.IsInf(f, 0) {
		return 0, false
	}
	return int(f), true
}

func asComplex(v any) (complex128, bool) {
	if f, ok := asFloat(v); ok {
		return complex(f, 0), true
	}

	pair, ok := v.([]any)
	if !ok || len(pair) != 2 {
		return 0, false
	}

	re, ok := asFloat(pair[0])
	if !ok {
		return 0, false
	}
	im, ok := asFloat(pair[1])
	if !ok {
		return 0, false
	}

	return complex(re, im), true
}
