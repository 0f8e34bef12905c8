package geodesy

import "testing"

func TestContextOpNoopRoundTrips(t *testing.T) {
	ctx := NewContext()
	handle, err := ctx.Op("noop")
	if err != nil {
		t.Fatalf("Op: %v", err)
	}
	operands := []Coord{{1, 2, 3, 4}}
	n, err := ctx.Fwd(handle, operands)
	if err != nil || n != 1 {
		t.Fatalf("Fwd: n=%d err=%v", n, err)
	}
	if operands[0] != (Coord{1, 2, 3, 4}) {
		t.Errorf("noop altered operands: %v", operands[0])
	}
}

func TestContextOpInternsIdenticalDefinitions(t *testing.T) {
	ctx := NewContext()
	first, err := ctx.Op("noop  |  noop")
	if err != nil {
		t.Fatalf("Op: %v", err)
	}
	second, err := ctx.Op("noop | noop")
	if err != nil {
		t.Fatalf("Op: %v", err)
	}
	if first != second {
		t.Errorf("two identical definitions returned distinct handles: %v vs %v", first, second)
	}
	if len(ctx.ops) != 1 {
		t.Errorf("ctx.ops has %d entries, want 1 (no duplicate Op constructed)", len(ctx.ops))
	}
}

func TestContextOpUnknownOperatorErrors(t *testing.T) {
	ctx := NewContext()
	_, err := ctx.Op("definitely_not_registered")
	if err == nil {
		t.Fatal("expected an error for an unregistered operator name")
	}
}

func TestContextOpEmptyDefinitionErrors(t *testing.T) {
	ctx := NewContext()
	_, err := ctx.Op("   ")
	var syntaxErr *SyntaxError
	if err == nil {
		t.Fatal("expected a SyntaxError for an empty definition")
	}
	if _, ok := err.(*SyntaxError); !ok {
		t.Fatalf("got %T, want *SyntaxError", err)
	}
	_ = syntaxErr
}

func TestContextApplyUnknownHandleErrors(t *testing.T) {
	ctx := NewContext()
	_, err := ctx.Apply(OpHandle{}, Fwd, []Coord{{0, 0, 0, 0}})
	if err == nil {
		t.Fatal("expected an error for an unknown handle")
	}
}

func TestContextInvertibleReflectsPipelineSteps(t *testing.T) {
	ctx := NewContext()
	handle, err := ctx.Op("noop | noop")
	if err != nil {
		t.Fatalf("Op: %v", err)
	}
	if !ctx.Invertible(handle) {
		t.Error("expected a multi-step pipeline to report Invertible() true")
	}
}

func TestContextPipelineRunsStepsInOrder(t *testing.T) {
	ctx := NewContext()
	ctor := func(raw *RawParameters, c *Context) (Op, error) {
		descriptor := OpDescriptor{
			Definition: raw.Definition,
			Fwd: func(op *Op, c *Context, operands []Coord) int {
				for i := range operands {
					operands[i][2] *= 2
				}
				return len(operands)
			},
			Inv: func(op *Op, c *Context, operands []Coord) int {
				for i := range operands {
					operands[i][2] /= 2
				}
				return len(operands)
			},
		}
		return Plain(descriptor, nil), nil
	}
	Register("test_context_doubler", "doubles the height field", ctor)

	handle, err := ctx.Op("test_context_doubler | test_context_doubler")
	if err != nil {
		t.Fatalf("Op: %v", err)
	}
	operands := []Coord{{0, 0, 3, 0}}
	n, err := ctx.Fwd(handle, operands)
	if err != nil || n != 1 {
		t.Fatalf("Fwd: n=%d err=%v", n, err)
	}
	if operands[0][2] != 12 {
		t.Fatalf("height = %v, want 12 (3 doubled twice)", operands[0][2])
	}

	n, err = ctx.Inv(handle, operands)
	if err != nil || n != 1 {
		t.Fatalf("Inv: n=%d err=%v", n, err)
	}
	if operands[0][2] != 3 {
		t.Fatalf("height after inverse = %v, want 3", operands[0][2])
	}
}
