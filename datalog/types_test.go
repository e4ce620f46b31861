package datalog

import (
	"strings"
	"testing"
	"time"
)

func TestTripleCreation(t *testing.T) {
	triple := NewTriple(1, "movie/title", "Alien")

	str := triple.String()
	if str == "" {
		t.Error("triple string representation should not be empty")
	}
	if !strings.Contains(str, `"Alien"`) {
		t.Errorf("triple string should contain quoted value, got %s", str)
	}

	if triple.Field(0) != 1 || triple.Field(1) != "movie/title" || triple.Field(2) != "Alien" {
		t.Errorf("Field returned wrong positions: %v %v %v", triple.Field(0), triple.Field(1), triple.Field(2))
	}
}

func TestTripleFieldOutOfRange(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for position 3")
		}
	}()
	NewTriple(1, 2, 3).Field(3)
}

func TestTripleEqual(t *testing.T) {
	a := NewTriple(1, "movie/year", 1979)
	b := NewTriple(int64(1), "movie/year", 1979.0)
	c := NewTriple(1, "movie/year", 1980)

	if !a.Equal(b) {
		t.Error("triples with numerically equal fields should be equal")
	}
	if a.Equal(c) {
		t.Error("triples with different values should not be equal")
	}
}

func TestValueTypes(t *testing.T) {
	tests := []struct {
		name  string
		value interface{}
	}{
		{"string", "Alice"},
		{"int", int64(42)},
		{"float", 3.14},
		{"time", time.Now()},
		{"keyword", NewKeyword(":user/name")},
		{"boolean", true},
		{"bytes", []byte("binary data")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			triple := NewTriple("test:1", NewKeyword(":test/value"), tt.value)
			if !ValuesEqual(triple.V, tt.value) {
				t.Errorf("stored value %v does not equal itself", tt.value)
			}
			if _, err := Type(triple.V); err != nil {
				t.Errorf("Type(%T) failed: %v", tt.value, err)
			}
		})
	}
}

func TestKeyword(t *testing.T) {
	kw := NewKeyword(":movie/title")
	if kw.String() != ":movie/title" {
		t.Errorf("expected :movie/title, got %s", kw.String())
	}
	if kw.Compare(NewKeyword(":movie/year")) >= 0 {
		t.Error(":movie/title should sort before :movie/year")
	}
}
