package geodesy

import "github.com/google/uuid"

// Op is a single constructed, ready-to-apply operator: either a leaf
// kernel (cart, helmert, tmerc, ...) with Steps empty, or a pipeline
// whose descriptor's kernels iterate Steps in the right order for the
// requested direction. Op carries its own identity (ID) so a Context can
// cache and recall a constructed Op by handle.
type Op struct {
	descriptor OpDescriptor
	params     *ParsedParameters
	steps      []Op
	id         uuid.UUID
}

// Plain builds a leaf Op: a descriptor and its resolved parameters, no
// sub-steps. This is the constructor shape every operations/*.go kernel
// uses to return its finished Op.
func Plain(descriptor OpDescriptor, params *ParsedParameters) Op {
	return Op{descriptor: descriptor, params: params, id: uuid.New()}
}

// WithSteps builds a composite Op (currently only the builtin pipeline
// operator) out of already-constructed child Ops.
func WithSteps(descriptor OpDescriptor, params *ParsedParameters, steps []Op) Op {
	return Op{descriptor: descriptor, params: params, steps: steps, id: uuid.New()}
}

func (op *Op) ID() uuid.UUID             { return op.id }
func (op *Op) Params() *ParsedParameters { return op.params }
func (op *Op) Steps() []Op               { return op.steps }
func (op *Op) Definition() string        { return op.descriptor.Definition }
func (op *Op) Invertible() bool          { return op.descriptor.Inv != nil }

// Apply runs this Op over operands in place, returning the number of
// points successfully transformed. Direction composes with the Op's own
// Inverted flag (set when its definition carried "inv: true"), so a
// pipeline step marked inv runs its "Fwd" kernel when the pipeline as a
// whole is asked to go Inv, and vice versa.
func (op *Op) Apply(ctx *Context, operands []Coord, dir Direction) int {
	fwd := dir == Fwd
	if op.descriptor.Inverted {
		fwd = !fwd
	}

	kernel := op.descriptor.Fwd
	if !fwd {
		kernel = op.descriptor.Inv
	}
	if kernel == nil {
		for i := range operands {
			operands[i] = NaNCoord()
		}
		return 0
	}
	return kernel(op, ctx, operands)
}
