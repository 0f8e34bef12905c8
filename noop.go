package geodesy

// newNoop builds the identity operator: every point passes through
// unchanged in both directions. Useful as a pipeline placeholder and in
// tests that need a predictable no-op step.
func newNoop(raw *RawParameters, ctx *Context) (Op, error) {
	params, err := NewParsedParameters(raw, []OpParameter{Flag{Key: "inv"}})
	if err != nil {
		return Op{}, err
	}
	descriptor := OpDescriptor{
		Definition: raw.Definition,
		Fwd:        noopKernel,
		Inv:        noopKernel,
		Inverted:   params.Boolean("inv"),
	}
	return Plain(descriptor, params), nil
}

func noopKernel(op *Op, ctx *Context, operands []Coord) int {
	return len(operands)
}
