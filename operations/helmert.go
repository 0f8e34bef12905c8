package operations

import "github.com/oahumap/geodesy"

func init() {
	geodesy.Register("helmert", "3- or 7-parameter similarity transform", newHelmert)
}

var helmertGamut = []geodesy.OpParameter{
	geodesy.Flag{Key: "inv"},
	geodesy.Real{Key: "x", Default: floatPtr(0)},
	geodesy.Real{Key: "y", Default: floatPtr(0)},
	geodesy.Real{Key: "z", Default: floatPtr(0)},
	geodesy.Real{Key: "rx", Default: floatPtr(0)},
	geodesy.Real{Key: "ry", Default: floatPtr(0)},
	geodesy.Real{Key: "rz", Default: floatPtr(0)},
	geodesy.Real{Key: "s", Default: floatPtr(0)},
}

func newHelmert(raw *geodesy.RawParameters, ctx *geodesy.Context) (geodesy.Op, error) {
	params, err := geodesy.NewParsedParameters(raw, helmertGamut)
	if err != nil {
		return geodesy.Op{}, err
	}

	descriptor := geodesy.OpDescriptor{
		Definition: raw.Definition,
		Fwd:        helmertFwd,
		Inv:        helmertInv,
		Inverted:   params.Boolean("inv"),
	}
	return geodesy.Plain(descriptor, params), nil
}

// helmertMatrix assembles the 3x3 rotation/scale matrix and the 3-vector
// translation for the 7-parameter similarity transform, following
// paulcager-osgridref's applyTransform (tx/ty/tz in metres, rx/ry/rz in
// arcseconds, s in ppm), but keeping the matrix itself around so the
// inverse can be computed algebraically (transposed rotation, negated
// and rescaled translation) rather than by the teacher's shortcut of
// just negating the 7 raw parameters and re-running the forward formula.
func helmertMatrix(params *geodesy.ParsedParameters) (m [3][3]float64, t [3]float64) {
	x, _ := params.RealParam("x")
	y, _ := params.RealParam("y")
	z, _ := params.RealParam("z")
	rx, _ := params.RealParam("rx")
	ry, _ := params.RealParam("ry")
	rz, _ := params.RealParam("rz")
	s, _ := params.RealParam("s")

	scale := 1 + s/1e6
	arcsecToRad := 3.14159265358979323846 / (180 * 3600)
	rxr, ryr, rzr := rx*arcsecToRad, ry*arcsecToRad, rz*arcsecToRad

	m = [3][3]float64{
		{scale, -rzr * scale, ryr * scale},
		{rzr * scale, scale, -rxr * scale},
		{-ryr * scale, rxr * scale, scale},
	}
	t = [3]float64{x, y, z}
	return
}

func helmertFwd(op *geodesy.Op, ctx *geodesy.Context, operands []geodesy.Coord) int {
	m, t := helmertMatrix(op.Params())
	successes := 0
	for i, c := range operands {
		x, y, z := c[0], c[1], c[2]
		operands[i] = geodesy.Coord{
			t[0] + m[0][0]*x + m[0][1]*y + m[0][2]*z,
			t[1] + m[1][0]*x + m[1][1]*y + m[1][2]*z,
			t[2] + m[2][0]*x + m[2][1]*y + m[2][2]*z,
			c[3],
		}
		successes++
	}
	return successes
}

// helmertInv solves the true algebraic inverse x = M^-1 (x' - t), using
// the 3x3 matrix inverse rather than the common approximation of simply
// negating the 7 parameters and re-applying the forward transform (which
// is only first-order correct in the rotation angles).
func helmertInv(op *geodesy.Op, ctx *geodesy.Context, operands []geodesy.Coord) int {
	m, t := helmertMatrix(op.Params())
	inv, ok := invert3x3(m)
	if !ok {
		for i := range operands {
			operands[i] = geodesy.NaNCoord()
		}
		return 0
	}

	successes := 0
	for i, c := range operands {
		dx, dy, dz := c[0]-t[0], c[1]-t[1], c[2]-t[2]
		operands[i] = geodesy.Coord{
			inv[0][0]*dx + inv[0][1]*dy + inv[0][2]*dz,
			inv[1][0]*dx + inv[1][1]*dy + inv[1][2]*dz,
			inv[2][0]*dx + inv[2][1]*dy + inv[2][2]*dz,
			c[3],
		}
		successes++
	}
	return successes
}

func invert3x3(m [3][3]float64) ([3][3]float64, bool) {
	det := m[0][0]*(m[1][1]*m[2][2]-m[1][2]*m[2][1]) -
		m[0][1]*(m[1][0]*m[2][2]-m[1][2]*m[2][0]) +
		m[0][2]*(m[1][0]*m[2][1]-m[1][1]*m[2][0])
	if det == 0 {
		return [3][3]float64{}, false
	}
	invDet := 1 / det

	var inv [3][3]float64
	inv[0][0] = (m[1][1]*m[2][2] - m[1][2]*m[2][1]) * invDet
	inv[0][1] = (m[0][2]*m[2][1] - m[0][1]*m[2][2]) * invDet
	inv[0][2] = (m[0][1]*m[1][2] - m[0][2]*m[1][1]) * invDet
	inv[1][0] = (m[1][2]*m[2][0] - m[1][0]*m[2][2]) * invDet
	inv[1][1] = (m[0][0]*m[2][2] - m[0][2]*m[2][0]) * invDet
	inv[1][2] = (m[0][2]*m[1][0] - m[0][0]*m[1][2]) * invDet
	inv[2][0] = (m[1][0]*m[2][1] - m[1][1]*m[2][0]) * invDet
	inv[2][1] = (m[0][1]*m[2][0] - m[0][0]*m[2][1]) * invDet
	inv[2][2] = (m[0][0]*m[1][1] - m[0][1]*m[1][0]) * invDet
	return inv, true
}

func floatPtr(f float64) *float64 { return &f }
