package geodesy

import "testing"

func TestRegisterAndLookup(t *testing.T) {
	ctor := func(raw *RawParameters, ctx *Context) (Op, error) {
		return Plain(OpDescriptor{Definition: raw.Definition}, nil), nil
	}
	Register("test_registry_roundtrip", "a test-only operator", ctor)

	found, err := lookup("test_registry_roundtrip")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if found == nil {
		t.Fatal("lookup returned a nil constructor")
	}

	names := Registered()
	seen := false
	for _, n := range names {
		if n == "test_registry_roundtrip" {
			seen = true
		}
	}
	if !seen {
		t.Errorf("Registered() = %v, want it to contain test_registry_roundtrip", names)
	}
}

func TestLookupUnknownOperator(t *testing.T) {
	_, err := lookup("definitely_not_a_registered_operator")
	var notFound *NotFoundError
	if err == nil {
		t.Fatal("expected NotFoundError")
	}
	if _, ok := err.(*NotFoundError); !ok {
		t.Fatalf("got %T, want *NotFoundError", err)
	}
	_ = notFound
}

func TestRegisterPanicsOnDuplicate(t *testing.T) {
	ctor := func(raw *RawParameters, ctx *Context) (Op, error) {
		return Op{}, nil
	}
	Register("test_registry_duplicate", "first registration", ctor)

	defer func() {
		if recover() == nil {
			t.Fatal("expected Register to panic on a duplicate name")
		}
	}()
	Register("test_registry_duplicate", "second registration", ctor)
}
