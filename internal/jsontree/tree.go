// Package jsontree provides safe traversal of untyped JSON payloads.
//
// Upstream responses vary in shape across seasons and endpoints, so the
// ingestion layers work with a generic tree and extract values by path
// instead of binding to structs. Missing or mistyped nodes yield zero
// values, never panics.
package jsontree

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Tree is an untyped JSON object.
type Tree map[string]any

// Parse decodes raw JSON into a Tree. Non-object documents are an error.
func Parse(data []byte) (Tree, error) {
	var t Tree
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, err
	}
	return t, nil
}

// Get walks the tree along path. Each path element is either a string
// (map key) or an int (slice index). Returns ok=false if any step is
// missing or the wrong shape.
func (t Tree) Get(path ...any) (any, bool) {
	var cur any = map[string]any(t)
	for _, p := range path {
		switch key := p.(type) {
		case string:
			m, ok := cur.(map[string]any)
			if !ok {
				return nil, false
			}
			cur, ok = m[key]
			if !ok {
				return nil, false
			}
		case int:
			s, ok := cur.([]any)
			if !ok || key < 0 || key >= len(s) {
				return nil, false
			}
			cur = s[key]
		default:
			return nil, false
		}
	}
	if cur == nil {
		return nil, false
	}
	return cur, true
}

// Map returns the object at path, or nil.
func (t Tree) Map(path ...any) Tree {
	v, ok := t.Get(path...)
	if !ok {
		return nil
	}
	if m, ok := v.(map[string]any); ok {
		return Tree(m)
	}
	return nil
}

// Slice returns the array at path, or nil.
func (t Tree) Slice(path ...any) []any {
	v, ok := t.Get(path...)
	if !ok {
		return nil
	}
	if s, ok := v.([]any); ok {
		return s
	}
	return nil
}

// Str returns the string at path, or "".
func (t Tree) Str(path ...any) string {
	v, ok := t.Get(path...)
	if !ok {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

// Float returns the numeric value at path coerced via Num, or 0.
func (t Tree) Float(path ...any) float64 {
	v, ok := t.Get(path...)
	if !ok {
		return 0
	}
	f, _ := Num(v)
	return f
}

// Int returns the numeric value at path truncated to int, or 0.
func (t Tree) Int(path ...any) int {
	return int(t.Float(path...))
}

// AsTree converts a raw value to a Tree, or nil.
func AsTree(v any) Tree {
	if m, ok := v.(map[string]any); ok {
		return Tree(m)
	}
	return nil
}

// Num coerces a scalar from the various formats upstream uses for stat
// values: JSON numbers, integers, and strings (with thousands separators).
// Returns ok=false when the value is not numeric; callers treat that as
// zero rather than failing the record.
func Num(val any) (float64, bool) {
	switch v := val.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		if f, err := v.Float64(); err == nil {
			return f, true
		}
		return 0, false
	case string:
		s := strings.ReplaceAll(strings.TrimSpace(v), ",", "")
		if s == "" {
			return 0, false
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f, true
		}
		return 0, false
	default:
		return 0, false
	}
}
