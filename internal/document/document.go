// Package document provides a generic JSON tree value and safe navigation over it.
//
// ORCID responses are handled as untyped trees rather than structs because the
// two API generations disagree on almost every field name. Lookups never panic:
// a missing key, an out-of-range index, or a node of the wrong kind all yield
// (nil, false).
package document

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// Node is any value produced by decoding JSON: map[string]any, []any,
// string, json.Number, bool, or nil.
type Node = any

// Decode reads a single JSON value from r. Numbers are kept as json.Number so
// that identifiers and timestamps round-trip without float conversion.
func Decode(r io.Reader) (Node, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var n Node
	if err := dec.Decode(&n); err != nil {
		return nil, fmt.Errorf("decoding document: %w", err)
	}
	return n, nil
}

// DecodeBytes is Decode for an in-memory buffer.
func DecodeBytes(data []byte) (Node, error) {
	return Decode(bytes.NewReader(data))
}

// Lookup walks path from n. String segments index objects, int segments
// index arrays.
func Lookup(n Node, path ...any) (Node, bool) {
	cur := n
	for _, seg := range path {
		switch key := seg.(type) {
		case string:
			m, ok := cur.(map[string]any)
			if !ok {
				return nil, false
			}
			next, ok := m[key]
			if !ok {
				return nil, false
			}
			cur = next
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
	// An explicit JSON null is treated the same as an absent key.
	if cur == nil {
		return nil, false
	}
	return cur, true
}

// Map returns the object at path.
func Map(n Node, path ...any) (map[string]any, bool) {
	v, ok := Lookup(n, path...)
	if !ok {
		return nil, false
	}
	m, ok := v.(map[string]any)
	return m, ok
}

// Slice returns the array at path.
func Slice(n Node, path ...any) ([]any, bool) {
	v, ok := Lookup(n, path...)
	if !ok {
		return nil, false
	}
	s, ok := v.([]any)
	return s, ok
}

// String returns the string at path. Numbers are not coerced.
func String(n Node, path ...any) (string, bool) {
	v, ok := Lookup(n, path...)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}
