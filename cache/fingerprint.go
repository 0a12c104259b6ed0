package cache

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strings"
)

// Separator delimits fingerprint segments.
const Separator = "::"

// defaultFingerprinter builds fingerprints via reflection. It handles
// pointers, slices, maps and structs deterministically and falls back to
// JSON for anything else, so keys are stable across runs.
type defaultFingerprinter struct{}

// NewFingerprinter returns the default Fingerprinter.
func NewFingerprinter() Fingerprinter {
	return &defaultFingerprinter{}
}

// Fingerprint joins the serialized form of every argument. Every parameter
// that affects a result must be passed so distinct calls cannot collide.
func (f *defaultFingerprinter) Fingerprint(args ...any) string {
	parts := make([]string, 0, len(args))
	for _, arg := range args {
		parts = append(parts, f.serialize(arg))
	}
	return strings.Join(parts, Separator)
}

func (f *defaultFingerprinter) serialize(v any) string {
	if v == nil {
		return "nil"
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr:
		if rv.IsNil() {
			return "nil"
		}
		return f.serialize(rv.Elem().Interface())

	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return "slice:nil"
		}
		parts := make([]string, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			parts[i] = f.serialize(rv.Index(i).Interface())
		}
		return fmt.Sprintf("slice[%d]:{%s}", rv.Len(), strings.Join(parts, ","))

	case reflect.Map:
		if rv.IsNil() {
			return "map:nil"
		}
		pairs := make([]string, 0, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			pairs = append(pairs, fmt.Sprintf("%s=%s", f.serialize(iter.Key().Interface()), f.serialize(iter.Value().Interface())))
		}
		sort.Strings(pairs)
		return fmt.Sprintf("map[%d]:{%s}", len(pairs), strings.Join(pairs, ","))

	case reflect.Struct:
		rt := rv.Type()
		parts := make([]string, 0, rv.NumField())
		for i := 0; i < rv.NumField(); i++ {
			field := rt.Field(i)
			if !field.IsExported() {
				continue
			}
			parts = append(parts, fmt.Sprintf("%s:%s", field.Name, f.serialize(rv.Field(i).Interface())))
		}
		return fmt.Sprintf("struct:{%s}", strings.Join(parts, ","))

	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64,
		reflect.String:
		return fmt.Sprintf("%v", v)

	default:
		return f.jsonFallback(v)
	}
}

// jsonFallback keeps fingerprinting total: when marshaling fails the key
// degrades to type information instead of panicking.
func (f *defaultFingerprinter) jsonFallback(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("fallback:%s", reflect.TypeOf(v).String())
	}
	return fmt.Sprintf("json:%s", string(data))
}
