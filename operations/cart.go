// Package operations registers the geodesy engine's domain kernels:
// each file's init() calls geodesy.Register, the same blank-import
// pattern the teacher used for its own conversion operators.
package operations

import "github.com/oahumap/geodesy"

func init() {
	geodesy.Register("cart", "geographic <-> geocentric cartesian", newCart)
}

var cartGamut = []geodesy.OpParameter{
	geodesy.Flag{Key: "inv"},
	geodesy.Text{Key: "ellps", Default: strPtr("GRS80")},
}

func newCart(raw *geodesy.RawParameters, ctx *geodesy.Context) (geodesy.Op, error) {
	params, err := geodesy.NewParsedParameters(raw, cartGamut)
	if err != nil {
		return geodesy.Op{}, err
	}
	if err := params.ResolveEllipsoid(0, "ellps", geodesy.DefaultEllipsoid()); err != nil {
		return geodesy.Op{}, err
	}

	descriptor := geodesy.OpDescriptor{
		Definition: raw.Definition,
		Fwd:        cartFwd,
		Inv:        cartInv,
		Inverted:   params.Boolean("inv"),
	}
	return geodesy.Plain(descriptor, params), nil
}

func cartFwd(op *geodesy.Op, ctx *geodesy.Context, operands []geodesy.Coord) int {
	ellps := op.Params().Ellps(0)
	successes := 0
	for i, c := range operands {
		operands[i] = ellps.Cartesian(c)
		successes++
	}
	return successes
}

func cartInv(op *geodesy.Op, ctx *geodesy.Context, operands []geodesy.Coord) int {
	ellps := op.Params().Ellps(0)
	successes := 0
	for i, c := range operands {
		operands[i] = ellps.Geographic(c)
		successes++
	}
	return successes
}

func strPtr(s string) *string { return &s }
