// Package proj4 is a convenience layer over the geodesy engine for
// callers that already think in "+key=value" proj4 strings and flat
// lon/lat coordinate arrays, following the shape of the teacher's
// top-level Convert/Inverse entry points.
package proj4

import (
	"fmt"
	"strings"

	"github.com/oahumap/geodesy"
	_ "github.com/oahumap/geodesy/operations"
)

// Converter wraps a Context and a single constructed Op, built once from
// a proj4-style definition string and reused across calls, mirroring the
// teacher's conversion{projString, system, operation, converter} wrapper.
type Converter struct {
	ctx    *geodesy.Context
	handle geodesy.OpHandle
}

// NewConverter parses definition (a proj4 "+proj=..." string, GYS
// shorthand, or block YAML) and constructs the corresponding Op.
func NewConverter(definition string) (*Converter, error) {
	ctx := geodesy.NewContext()
	handle, err := ctx.Op(toGYS(definition))
	if err != nil {
		return nil, err
	}
	return &Converter{ctx: ctx, handle: handle}, nil
}

// toGYS rewrites a "+proj=tmerc +lon_0=9" style proj4 string into the
// engine's "tmerc lon_0:9" shorthand: strip leading '+', the operator
// name moves from a "proj" key to the leading bare token, and '='
// becomes ':'. samlecuyer-projectron's paramset/keyVal tokenizing is
// the grounding for the '+key=value' token shape being translated here.
func toGYS(definition string) string {
	fields := strings.Fields(definition)
	var name string
	var rest []string
	for _, field := range fields {
		field = strings.TrimPrefix(field, "+")
		key, value, hasValue := strings.Cut(field, "=")
		if key == "proj" && hasValue {
			name = value
			continue
		}
		if hasValue {
			rest = append(rest, key+":"+value)
			continue
		}
		rest = append(rest, key)
	}
	if name == "" {
		return definition
	}
	return strings.Join(append([]string{name}, rest...), " ")
}

// Convert projects an array of lon/lat points in degrees, e.g. [lon0,
// lat0, lon1, lat1, ...], into the wrapped system's x/y meters. The
// input length must be even.
func (c *Converter) Convert(input []float64) ([]float64, error) {
	if len(input)%2 != 0 {
		return nil, fmt.Errorf("proj4: input array of lon/lat values must be an even number")
	}

	operands := make([]geodesy.Coord, len(input)/2)
	for i := range operands {
		operands[i] = geodesy.GIS(input[2*i], input[2*i+1], 0, 0)
	}

	if _, err := c.ctx.Fwd(c.handle, operands); err != nil {
		return nil, err
	}

	output := make([]float64, len(input))
	for i, o := range operands {
		output[2*i] = o[0]
		output[2*i+1] = o[1]
	}
	return output, nil
}

// Inverse projects an array of x/y points in meters back to lon/lat
// degrees. The input length must be even.
func (c *Converter) Inverse(input []float64) ([]float64, error) {
	if len(input)%2 != 0 {
		return nil, fmt.Errorf("proj4: input array of x/y values must be an even number")
	}
	if !c.ctx.Invertible(c.handle) {
		return nil, fmt.Errorf("proj4: this operator has no inverse")
	}

	operands := make([]geodesy.Coord, len(input)/2)
	for i := range operands {
		operands[i] = geodesy.Coord{input[2*i], input[2*i+1], 0, 0}
	}

	if _, err := c.ctx.Inv(c.handle, operands); err != nil {
		return nil, err
	}

	output := make([]float64, len(input))
	for i, o := range operands {
		geo := o.ToGeo()
		output[2*i] = geo[1]
		output[2*i+1] = geo[0]
	}
	return output, nil
}

// Convert is a one-shot convenience for a single conversion: parse
// definition, build the Op, convert input, discard the Converter.
func Convert(definition string, input []float64) ([]float64, error) {
	c, err := NewConverter(definition)
	if err != nil {
		return nil, err
	}
	return c.Convert(input)
}

// Inverse is the one-shot counterpart to Convert.
func Inverse(definition string, input []float64) ([]float64, error) {
	c, err := NewConverter(definition)
	if err != nil {
		return nil, err
	}
	return c.Inverse(input)
}
