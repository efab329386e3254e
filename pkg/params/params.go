// Package params holds the free-form parameter blocks of the configuration:
// sampler parameters, post-processor parameters, label style and the
// per-diagram dynamic arguments handed to a point sampler.
//
// Values come from either YAML or TOML decoding, which disagree on integer
// types (int vs int64), so every getter normalizes numeric kinds. A missing
// key is a MISSING_PARAMETER error; a key of the wrong type is a
// CONFIGURATION error.
package params

import (
	"math"

	"github.com/matzehuels/voronoigen/pkg/errors"
)

// Params is a named set of parameters.
type Params map[string]any

// Has reports whether key is present.
func (p Params) Has(key string) bool {
	_, ok := p[key]
	return ok
}

// Int returns key as an integer. Integral floats are accepted.
func (p Params) Int(variant, key string) (int, error) {
	v, ok := p[key]
	if !ok {
		return 0, errors.MissingParameter(variant, key)
	}
	n, ok := AsInt(v)
	if !ok {
		return 0, errors.Configuration("%s.%s must be an integer, got %T", variant, key, v)
	}
	return n, nil
}

// IntOr returns key as an integer, or def when absent.
func (p Params) IntOr(variant, key string, def int) (int, error) {
	if !p.Has(key) {
		return def, nil
	}
	return p.Int(variant, key)
}

// Float returns key as a float64. Integers are accepted.
func (p Params) Float(variant, key string) (float64, error) {
	v, ok := p[key]
	if !ok {
		return 0, errors.MissingParameter(variant, key)
	}
	f, ok := AsFloat(v)
	if !ok {
		return 0, errors.Configuration("%s.%s must be a number, got %T", variant, key, v)
	}
	return f, nil
}

// FloatOr returns key as a float64, or def when absent.
func (p Params) FloatOr(variant, key string, def float64) (float64, error) {
	if !p.Has(key) {
		return def, nil
	}
	return p.Float(variant, key)
}

// IntList returns key as a list of integers.
func (p Params) IntList(variant, key string) ([]int, error) {
	v, ok := p[key]
	if !ok {
		return nil, errors.MissingParameter(variant, key)
	}
	items, ok := AsList(v)
	if !ok {
		return nil, errors.Configuration("%s.%s must be a list, got %T", variant, key, v)
	}
	out := make([]int, len(items))
	for i, item := range items {
		n, ok := AsInt(item)
		if !ok {
			return nil, errors.Configuration("%s.%s[%d] must be an integer, got %T", variant, key, i, item)
		}
		out[i] = n
	}
	return out, nil
}

// FloatList returns key as a list of float64.
func (p Params) FloatList(variant, key string) ([]float64, error) {
	v, ok := p[key]
	if !ok {
		return nil, errors.MissingParameter(variant, key)
	}
	items, ok := AsList(v)
	if !ok {
		return nil, errors.Configuration("%s.%s must be a list, got %T", variant, key, v)
	}
	out := make([]float64, len(items))
	for i, item := range items {
		f, ok := AsFloat(item)
		if !ok {
			return nil, errors.Configuration("%s.%s[%d] must be a number, got %T", variant, key, i, item)
		}
		out[i] = f
	}
	return out, nil
}

// ColorOr returns key as a single-channel intensity, or def when absent.
// A list color (e.g. [255, 255, 255]) contributes its first element.
func (p Params) ColorOr(variant, key string, def uint8) (uint8, error) {
	v, ok := p[key]
	if !ok {
		return def, nil
	}
	if items, ok := AsList(v); ok {
		if len(items) == 0 {
			return 0, errors.Configuration("%s.%s must not be an empty list", variant, key)
		}
		v = items[0]
	}
	n, ok := AsInt(v)
	if !ok || n < 0 || n > 255 {
		return 0, errors.Configuration("%s.%s must be an integer between 0-255", variant, key)
	}
	return uint8(n), nil
}

// AsInt converts decoded YAML/TOML numbers to int.
func AsInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case int32:
		return int(n), true
	case uint64:
		return int(n), true
	case uint:
		return int(n), true
	case float64:
		if n == math.Trunc(n) && !math.IsInf(n, 0) {
			return int(n), true
		}
	}
	return 0, false
}

// IsStrictInt reports whether v was decoded as an integer literal.
func IsStrictInt(v any) bool {
	switch v.(type) {
	case int, int64, int32, uint64, uint:
		return true
	}
	return false
}

// AsFloat converts decoded YAML/TOML numbers to float64.
func AsFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	}
	if IsStrictInt(v) {
		n, _ := AsInt(v)
		return float64(n), true
	}
	return 0, false
}

// AsList converts decoded YAML/TOML arrays to []any.
func AsList(v any) ([]any, bool) {
	switch l := v.(type) {
	case []any:
		return l, true
	case []int:
		out := make([]any, len(l))
		for i, x := range l {
			out[i] = x
		}
		return out, true
	case []int64:
		out := make([]any, len(l))
		for i, x := range l {
			out[i] = x
		}
		return out, true
	case []float64:
		out := make([]any, len(l))
		for i, x := range l {
			out[i] = x
		}
		return out, true
	case []map[string]any:
		out := make([]any, len(l))
		for i, x := range l {
			out[i] = x
		}
		return out, true
	}
	return nil, false
}

// AsMap converts decoded YAML/TOML tables to map[string]any.
func AsMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case Params:
		return m, true
	}
	return nil, false
}
