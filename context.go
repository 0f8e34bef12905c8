package geodesy

import (
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// OpHandle identifies a constructed Op inside a Context, returned by
// Op() and consumed by Apply(). It is a plain uuid so callers can log or
// compare it without depending on the Op's internal representation.
type OpHandle = uuid.UUID

const maxRecursionDepth = 100

var registerBuiltinsOnce sync.Once

// Context is the runtime root: it owns the cache of constructed Ops and
// the diagnostic logger every apply-time soft failure reports through.
// The operator registry itself is a package-level global (populated by
// the operations subpackage's blank-import init()s plus noop's
// registration below), since operator *definitions* are process-wide,
// while constructed Op instances are scoped to the Context that built
// them.
type Context struct {
	mu    sync.RWMutex
	ops   map[OpHandle]Op
	byDef map[string]OpHandle
	log   *logrus.Logger
}

// NewContext builds an empty Context. It is safe to create more than
// one Context in a process; they share the global operator registry but
// keep independent Op caches.
func NewContext() *Context {
	registerBuiltinsOnce.Do(func() {
		Register("noop", "identity operator", newNoop)
	})
	log := logrus.New()
	log.SetLevel(logrus.InfoLevel)
	return &Context{ops: map[OpHandle]Op{}, byDef: map[string]OpHandle{}, log: log}
}

// Op parses definition (either GYS shorthand or block YAML), constructs
// the corresponding Op (recursively, for a pipeline), caches it, and
// returns a handle for later Apply calls. A definition already seen by
// this Context (compared after collapsing each run of whitespace to a
// single space and trimming both ends) returns the existing handle
// instead of constructing and storing a duplicate Op.
func (ctx *Context) Op(definition string) (OpHandle, error) {
	canonical := strings.Join(strings.Fields(definition), " ")

	ctx.mu.RLock()
	handle, cached := ctx.byDef[canonical]
	ctx.mu.RUnlock()
	if cached {
		return handle, nil
	}

	resource, err := parseDefinition(definition)
	if err != nil {
		return OpHandle{}, err
	}

	op, err := ctx.build(resource, &RawParameters{Globals: resource.Globals})
	if err != nil {
		return OpHandle{}, err
	}

	ctx.mu.Lock()
	ctx.ops[op.id] = op
	ctx.byDef[canonical] = op.id
	ctx.mu.Unlock()
	return op.id, nil
}

func parseDefinition(definition string) (*GysResource, error) {
	trimmed := strings.TrimSpace(definition)
	if trimmed == "" {
		return nil, &SyntaxError{Detail: "empty definition"}
	}
	defaultGlobals := []KV{{Key: "ellps", Value: "GRS80"}}

	if IsGYS(trimmed) {
		return NewGysResource(trimmed, defaultGlobals), nil
	}
	resource, err := ParseYAMLBlock(trimmed)
	if err != nil {
		return nil, err
	}
	resource.Globals = defaultGlobals
	return resource, nil
}

func (ctx *Context) build(resource *GysResource, raw *RawParameters) (Op, error) {
	if len(resource.Steps) == 0 {
		return Op{}, &SyntaxError{Detail: "definition has no steps"}
	}
	if len(resource.Steps) == 1 {
		return ctx.buildStep(resource.Steps[0], raw)
	}
	return ctx.buildPipeline(resource.Steps, raw)
}

func (ctx *Context) buildStep(stepText string, raw *RawParameters) (Op, error) {
	if raw.RecursionDepth > maxRecursionDepth {
		return Op{}, &RecursionError{Key: stepText}
	}

	locals := splitIntoParameters(stepText)
	name := ""
	for _, kv := range locals {
		if kv.Key == "name" {
			name = kv.Value
		}
	}
	if name == "" {
		return Op{}, &SyntaxError{Detail: "step has no operator name: '" + stepText + "'"}
	}

	ctor, err := lookup(name)
	if err != nil {
		return Op{}, err
	}

	stepRaw := &RawParameters{
		Definition:     stepText,
		Globals:        raw.Globals,
		RecursionDepth: raw.RecursionDepth + 1,
	}
	op, err := ctor(stepRaw, ctx)
	if err != nil {
		ctx.log.WithFields(logrus.Fields{"step": stepText, "error": err}).Warn("operator construction failed")
		return Op{}, err
	}
	return op, nil
}

func (ctx *Context) buildPipeline(steps []string, raw *RawParameters) (Op, error) {
	children := make([]Op, 0, len(steps))
	for _, step := range steps {
		child, err := ctx.buildStep(step, raw)
		if err != nil {
			return Op{}, err
		}
		children = append(children, child)
	}
	return WithSteps(pipelineDescriptor, nil, children), nil
}

// Apply runs the Op identified by handle over operands in place,
// returning the count of points successfully transformed. Points outside
// a kernel's domain are left as NaNCoord() rather than causing Apply to
// fail outright.
func (ctx *Context) Apply(handle OpHandle, dir Direction, operands []Coord) (int, error) {
	ctx.mu.RLock()
	op, ok := ctx.ops[handle]
	ctx.mu.RUnlock()
	if !ok {
		return 0, &NotFoundError{Name: handle.String(), Hint: "no such Op handle in this Context"}
	}

	n := op.Apply(ctx, operands, dir)
	if n < len(operands) {
		ctx.log.WithFields(logrus.Fields{
			"handle":    handle,
			"succeeded": n,
			"total":     len(operands),
		}).Debug("apply completed with out-of-domain points")
	}
	return n, nil
}

// Fwd is a convenience for Apply(handle, Fwd, operands).
func (ctx *Context) Fwd(handle OpHandle, operands []Coord) (int, error) {
	return ctx.Apply(handle, Fwd, operands)
}

// Inv is a convenience for Apply(handle, Inv, operands).
func (ctx *Context) Inv(handle OpHandle, operands []Coord) (int, error) {
	return ctx.Apply(handle, Inv, operands)
}

// Invertible reports whether the Op behind handle has a usable inverse.
func (ctx *Context) Invertible(handle OpHandle) bool {
	ctx.mu.RLock()
	op, ok := ctx.ops[handle]
	ctx.mu.RUnlock()
	if !ok {
		return false
	}
	return op.Invertible() || len(op.Steps()) > 0
}
