package geodesy

import (
	"errors"
	"testing"
)

func TestSplitIntoParameters(t *testing.T) {
	args := splitIntoParameters("helmert x:-87 y:-96 z:-120 inv")
	want := []KV{
		{Key: "name", Value: "helmert"},
		{Key: "x", Value: "-87"},
		{Key: "y", Value: "-96"},
		{Key: "z", Value: "-120"},
		{Key: "inv", Value: ""},
	}
	if len(args) != len(want) {
		t.Fatalf("got %d args, want %d: %v", len(args), len(want), args)
	}
	for i, kv := range want {
		if args[i] != kv {
			t.Errorf("arg %d = %+v, want %+v", i, args[i], kv)
		}
	}
}

func TestChaseDirectValue(t *testing.T) {
	locals := []KV{{Key: "x", Value: "42"}}
	value, ok, err := chase(nil, locals, "x")
	if err != nil || !ok || value != "42" {
		t.Fatalf("chase() = %q, %v, %v", value, ok, err)
	}
}

func TestChaseIndirection(t *testing.T) {
	globals := []KV{{Key: "ellps", Value: "GRS80"}}
	locals := []KV{{Key: "datum_ellps", Value: "^ellps"}}
	value, ok, err := chase(globals, locals, "datum_ellps")
	if err != nil || !ok || value != "GRS80" {
		t.Fatalf("chase() = %q, %v, %v", value, ok, err)
	}
}

func TestChaseDefault(t *testing.T) {
	locals := []KV{{Key: "zone", Value: "*32"}}
	value, ok, err := chase(nil, locals, "zone")
	if err != nil || !ok || value != "32" {
		t.Fatalf("chase() = %q, %v, %v", value, ok, err)
	}
}

func TestChaseMissingReturnsNotOK(t *testing.T) {
	value, ok, err := chase(nil, nil, "missing")
	if err != nil || ok || value != "" {
		t.Fatalf("chase() = %q, %v, %v, want not-ok", value, ok, err)
	}
}

func TestChaseIncompleteIndirectionErrors(t *testing.T) {
	locals := []KV{{Key: "x", Value: "^y"}}
	_, _, err := chase(nil, locals, "x")
	if err == nil {
		t.Fatal("expected a SyntaxError for unresolved indirection")
	}
	var syntaxErr *SyntaxError
	if !errors.As(err, &syntaxErr) {
		t.Fatalf("got %T, want *SyntaxError", err)
	}
}

func TestChaseMultiHopIndirection(t *testing.T) {
	locals := []KV{
		{Key: "base", Value: "GRS80"},
		{Key: "mid", Value: "^base"},
		{Key: "top", Value: "^mid"},
	}
	value, ok, err := chase(nil, locals, "top")
	if err != nil || !ok || value != "GRS80" {
		t.Fatalf("chase() = %q, %v, %v", value, ok, err)
	}
}

func TestChaseCyclicIndirectionErrors(t *testing.T) {
	locals := []KV{{Key: "a", Value: "^b"}, {Key: "b", Value: "^a"}}
	_, _, err := chase(nil, locals, "a")
	if err == nil {
		t.Fatal("expected an error for a cyclic indirection chain")
	}
	var syntaxErr *SyntaxError
	var recursionErr *RecursionError
	if !errors.As(err, &syntaxErr) && !errors.As(err, &recursionErr) {
		t.Fatalf("got %T, want *SyntaxError or *RecursionError", err)
	}
}

// TestChaseCyclicIndirectionViaVisitedSet lays out a 3-entry cycle in the
// traversal order that the cursor-resume rule alone does not cut short
// before the chain loops back onto the starting key, so only the visited
// set catches it.
func TestChaseCyclicIndirectionViaVisitedSet(t *testing.T) {
	locals := []KV{{Key: "c", Value: "^a"}, {Key: "b", Value: "^c"}, {Key: "a", Value: "^b"}}
	_, _, err := chase(nil, locals, "a")
	if err == nil {
		t.Fatal("expected an error for a cyclic indirection chain")
	}
	var recursionErr *RecursionError
	if !errors.As(err, &recursionErr) {
		t.Fatalf("got %T, want *RecursionError", err)
	}
}
