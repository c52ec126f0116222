package stats

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Common row fields.
const (
	FieldSeason = "season"
	FieldSlug   = "slug"
	FieldName   = "name"
)

// Row is one flat record of named stat fields for an entity in one season.
type Row map[string]any

// Value returns the raw field value. nil values count as absent.
func (r Row) Value(key string) (any, bool) {
	if r == nil {
		return nil, false
	}
	v, ok := r[key]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

// String returns the field rendered as text.
func (r Row) String(key string) (string, bool) {
	v, ok := r.Value(key)
	if !ok {
		return "", false
	}
	switch val := v.(type) {
	case string:
		return val, true
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), true
	case json.Number:
		return val.String(), true
	case bool:
		return strconv.FormatBool(val), true
	case int:
		return strconv.Itoa(val), true
	default:
		return fmt.Sprint(val), true
	}
}

// Float returns the field as a number; numeric strings are accepted.
func (r Row) Float(key string) (float64, bool) {
	v, ok := r.Value(key)
	if !ok {
		return 0, false
	}
	return toFloat(v)
}

// Slug returns the row's entity slug when present and non-empty.
func (r Row) Slug() (string, bool) {
	s, ok := r.String(FieldSlug)
	if !ok || strings.TrimSpace(s) == "" {
		return "", false
	}
	return s, true
}

func (r Row) clone() Row {
	out := make(Row, len(r)+1)
	for k, v := range r {
		out[k] = v
	}
	return out
}

func toFloat(v any) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case int:
		return float64(val), true
	case json.Number:
		f, err := val.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		return f, err == nil
	default:
		return 0, false
	}
}
