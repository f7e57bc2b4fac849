// Package decode turns loosely-typed argument maps (decoded JSON or YAML, or
// built by hand) into structs with optional fields.
package decode

import (
	"fmt"
	"math"
	"reflect"

	"github.com/go-viper/mapstructure/v2"
)

// Lenient decodes m into out, ignoring keys out does not declare.
func Lenient(m map[string]any, out any) error {
	return decodeMap(m, out, false)
}

// Strict decodes m into out and rejects keys out does not declare.
func Strict(m map[string]any, out any) error {
	return decodeMap(m, out, true)
}

func decodeMap(m map[string]any, out any, strict bool) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      out,
		TagName:     "mapstructure",
		ErrorUnused: strict,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			integralFloatHook,
			mapstructure.TextUnmarshallerHookFunc(),
		),
	})
	if err != nil {
		return fmt.Errorf("create decoder: %w", err)
	}
	if err := dec.Decode(m); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	return nil
}

// integralFloatHook lets JSON numbers (always float64) fill integer fields,
// but only when they carry no fractional part.
func integralFloatHook(from, to reflect.Type, data any) (any, error) {
	for to.Kind() == reflect.Pointer {
		to = to.Elem()
	}
	if !isInt(to.Kind()) {
		return data, nil
	}
	var f float64
	switch from.Kind() {
	case reflect.Float64, reflect.Float32:
		f = reflect.ValueOf(data).Float()
	default:
		return data, nil
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return nil, fmt.Errorf("expected an integer, got %v", data)
	}
	if f < math.MinInt64 || f >= math.MaxInt64 || overflows(to, int64(f)) {
		return nil, fmt.Errorf("integer %v out of range", data)
	}
	return int64(f), nil
}

// overflows reports whether n does not fit the integer type t.
func overflows(t reflect.Type, n int64) bool {
	z := reflect.Zero(t)
	switch t.Kind() {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return n < 0 || z.OverflowUint(uint64(n))
	default:
		return z.OverflowInt(n)
	}
}

func isInt(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	default:
		return false
	}
}
