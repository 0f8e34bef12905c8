package geodesy

// RawParameters is the unparsed input to a single Op's construction: the
// step's own definition text plus the globals inherited from its
// enclosing pipeline (if any), and a recursion depth counter that
// Context.buildStep checks before building a step. '^'-indirection is
// bounded by chase itself, not by this counter.
type RawParameters struct {
	Definition     string
	Globals        []KV
	RecursionDepth int
}

// NewRawParameters builds the raw parameters for a top-level Op from its
// definition and the given globals, with recursion depth zero.
func NewRawParameters(definition string, globals []KV) *RawParameters {
	return &RawParameters{Definition: definition, Globals: globals}
}

// Nested derives the RawParameters for one step of a pipeline, inheriting
// the parent's globals and incrementing the recursion depth so
// Context.buildStep can cap runaway self-reference.
func (r *RawParameters) Nested(stepDefinition string) *RawParameters {
	return &RawParameters{
		Definition:     stepDefinition,
		Globals:        r.Globals,
		RecursionDepth: r.RecursionDepth + 1,
	}
}
