package document

import (
	"encoding/json"
	"strings"
	"testing"
)

const sample = `{
  "person": {
    "emails": {"email": [{"email": "a@example.org"}, {"email": "b@example.org"}]},
    "name": {"given-names": {"value": "Sofia"}, "family-name": null},
    "count": 3
  },
  "list": []
}`

func mustDecode(t *testing.T, s string) Node {
	t.Helper()
	n, err := Decode(strings.NewReader(s))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	return n
}

func TestLookup(t *testing.T) {
	doc := mustDecode(t, sample)

	tests := []struct {
		name   string
		path   []any
		wantOK bool
	}{
		{"root", nil, true},
		{"object key", []any{"person"}, true},
		{"nested array index", []any{"person", "emails", "email", 1, "email"}, true},
		{"missing key", []any{"person", "biography"}, false},
		{"index out of range", []any{"person", "emails", "email", 2}, false},
		{"negative index", []any{"person", "emails", "email", -1}, false},
		{"index into object", []any{"person", 0}, false},
		{"key into array", []any{"list", "x"}, false},
		{"key into scalar", []any{"person", "count", "x"}, false},
		{"explicit null", []any{"person", "name", "family-name"}, false},
		{"empty array index", []any{"list", 0}, false},
		{"unsupported segment type", []any{"person", 1.5}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := Lookup(doc, tt.path...)
			if ok != tt.wantOK {
				t.Errorf("Lookup(%v) ok = %v, want %v", tt.path, ok, tt.wantOK)
			}
		})
	}
}

func TestString(t *testing.T) {
	doc := mustDecode(t, sample)

	got, ok := String(doc, "person", "emails", "email", 0, "email")
	if !ok || got != "a@example.org" {
		t.Errorf("String() = %q, %v; want %q, true", got, ok, "a@example.org")
	}

	if _, ok := String(doc, "person", "count"); ok {
		t.Error("String() on a number should not succeed")
	}
	if _, ok := String(doc, "person", "name"); ok {
		t.Error("String() on an object should not succeed")
	}
}

func TestMapAndSlice(t *testing.T) {
	doc := mustDecode(t, sample)

	if m, ok := Map(doc, "person", "name"); !ok || len(m) != 2 {
		t.Errorf("Map() = %v, %v; want 2-key object", m, ok)
	}
	if _, ok := Map(doc, "list"); ok {
		t.Error("Map() on an array should not succeed")
	}

	if s, ok := Slice(doc, "person", "emails", "email"); !ok || len(s) != 2 {
		t.Errorf("Slice() = %v, %v; want 2 elements", s, ok)
	}
	if s, ok := Slice(doc, "list"); !ok || len(s) != 0 {
		t.Errorf("Slice() on empty array = %v, %v; want empty, true", s, ok)
	}
	if _, ok := Slice(doc, "person"); ok {
		t.Error("Slice() on an object should not succeed")
	}
}

func TestDecodeKeepsNumbers(t *testing.T) {
	doc := mustDecode(t, `{"last-modified-date": {"value": 1487783993519}}`)

	v, ok := Lookup(doc, "last-modified-date", "value")
	if !ok {
		t.Fatal("Lookup() missing value")
	}
	num, ok := v.(json.Number)
	if !ok {
		t.Fatalf("value type = %T, want json.Number", v)
	}
	if num.String() != "1487783993519" {
		t.Errorf("value = %s, want 1487783993519", num)
	}
}

func TestDecodeInvalid(t *testing.T) {
	if _, err := DecodeBytes([]byte(`{"person":`)); err == nil {
		t.Error("DecodeBytes() expected error for truncated input")
	}
}
