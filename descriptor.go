package geodesy

// OpKernel is the numerical body of one direction of an operator: it
// mutates operands in place (writing NaNCoord() into any point that
// falls outside the kernel's domain) and returns the count of points
// successfully transformed.
type OpKernel func(op *Op, ctx *Context, operands []Coord) int

// OpDescriptor binds an operator's definition text to its forward and
// (optional) inverse kernels. Inv is nil for operators that have no
// closed-form or iterative inverse; applying such an Op in the Inv
// direction writes NaN into every operand. Inverted is per-instance: a
// step written with "inv: true" has Inverted flipped at construction
// time, which swaps which kernel Apply dispatches to in both pipeline
// directions.
type OpDescriptor struct {
	Definition string
	Fwd        OpKernel
	Inv        OpKernel
	Inverted   bool
}

// Constructor builds an Op from its raw, unparsed parameters. Every
// registered operator name maps to exactly one Constructor.
type Constructor func(raw *RawParameters, ctx *Context) (Op, error)
