package operations

import (
	"math"

	"github.com/oahumap/geodesy"
)

func init() {
	geodesy.Register("btmerc", "transverse Mercator (Bowring 1989)", newBtmerc)
	geodesy.Register("butm", "Universal Transverse Mercator (Bowring variant)", newButm)
}

var btmercGamut = []geodesy.OpParameter{
	geodesy.Flag{Key: "inv"},
	geodesy.Text{Key: "ellps", Default: strPtr("GRS80")},
	geodesy.Real{Key: "lat_0", Default: floatPtr(0)},
	geodesy.Real{Key: "lon_0", Default: floatPtr(0)},
	geodesy.Real{Key: "x_0", Default: floatPtr(0)},
	geodesy.Real{Key: "y_0", Default: floatPtr(0)},
	geodesy.Real{Key: "k_0", Default: floatPtr(1)},
}

var butmGamut = []geodesy.OpParameter{
	geodesy.Flag{Key: "inv"},
	geodesy.Text{Key: "ellps", Default: strPtr("GRS80")},
	geodesy.Natural{Key: "zone"},
}

func newBtmerc(raw *geodesy.RawParameters, ctx *geodesy.Context) (geodesy.Op, error) {
	params, err := geodesy.NewParsedParameters(raw, btmercGamut)
	if err != nil {
		return geodesy.Op{}, err
	}
	if err := params.ResolveEllipsoid(0, "ellps", geodesy.DefaultEllipsoid()); err != nil {
		return geodesy.Op{}, err
	}

	lat0, _ := params.RealParam("lat_0")
	lon0, _ := params.RealParam("lon_0")
	x0, _ := params.RealParam("x_0")
	y0, _ := params.RealParam("y_0")
	k0, _ := params.RealParam("k_0")
	params.SetLat(0, lat0*math.Pi/180)
	params.SetLon(0, lon0*math.Pi/180)
	params.SetX(0, x0)
	params.SetY(0, y0)
	params.SetK(0, k0)

	descriptor := geodesy.OpDescriptor{
		Definition: raw.Definition,
		Fwd:        btmercFwd,
		Inv:        btmercInv,
		Inverted:   params.Boolean("inv"),
	}
	return geodesy.Plain(descriptor, params), nil
}

func newButm(raw *geodesy.RawParameters, ctx *geodesy.Context) (geodesy.Op, error) {
	params, err := geodesy.NewParsedParameters(raw, butmGamut)
	if err != nil {
		return geodesy.Op{}, err
	}
	if err := params.ResolveEllipsoid(0, "ellps", geodesy.DefaultEllipsoid()); err != nil {
		return geodesy.Op{}, err
	}

	zone, err := params.Natural("zone")
	if err != nil {
		return geodesy.Op{}, err
	}
	if zone < 1 || zone > 60 {
		return geodesy.Op{}, &geodesy.OperatorError{Name: "butm", Detail: "zone must be an integer in 1..60"}
	}

	params.SetK(0, 0.9996)
	params.SetLon(0, (-183.0+6.0*float64(zone))*math.Pi/180)
	params.SetLat(0, 0)
	params.SetX(0, 500000.0)
	// False northing is 0 in the northern hemisphere convention used here
	// (resolved explicitly, unlike a definition that merely leaves it at
	// its zero value by omission).
	params.SetY(0, 0)

	descriptor := geodesy.OpDescriptor{
		Definition: raw.Definition,
		Fwd:        btmercFwd,
		Inv:        btmercInv,
		Inverted:   params.Boolean("inv"),
	}
	return geodesy.Plain(descriptor, params), nil
}

func btmercFwd(op *geodesy.Op, ctx *geodesy.Context, operands []geodesy.Coord) int {
	p := op.Params()
	ellps := p.Ellps(0)
	eps := ellps.SecondEccentricitySquared()
	lat0, lon0, x0, y0, k0 := p.Lat(0), p.Lon(0), p.X(0), p.Y(0), p.K(0)

	successes := 0
	for i, coord := range operands {
		lat := coord[1] + lat0
		s, c := math.Sin(lat), math.Cos(lat)
		cc, ss := c*c, s*s

		dlon := coord[0] - lon0
		oo := dlon * dlon

		n := ellps.PrimeVerticalRadiusOfCurvature(lat)
		z := eps * dlon * dlon * dlon * math.Pow(c, 5) / 6.0
		sd2 := math.Sin(dlon / 2)

		theta2 := math.Atan2(2*s*c*sd2*sd2, ss+cc*math.Cos(dlon))

		sd := math.Sin(dlon)
		x := x0 + k0*n*(math.Atanh(c*sd)+z*(1+oo*(36*cc-29)/10))

		m := ellps.MeridionalDistance(lat, geodesy.Fwd)
		znos4 := z * n * dlon * s / 4
		ecc := 4 * eps * cc
		y := y0 + k0*(m+n*theta2+znos4*(9+ecc+oo*(20*cc-11)))

		operands[i] = geodesy.Coord{x, y, coord[2], coord[3]}
		successes++
	}
	return successes
}

func btmercInv(op *geodesy.Op, ctx *geodesy.Context, operands []geodesy.Coord) int {
	p := op.Params()
	ellps := p.Ellps(0)
	eps := ellps.SecondEccentricitySquared()
	lat0, lon0, x0, y0, k0 := p.Lat(0), p.Lon(0), p.X(0), p.Y(0), p.K(0)

	successes := 0
	for i, coord := range operands {
		lat := ellps.MeridionalDistance((coord[1]-y0)/k0, geodesy.Inv)
		t := math.Tan(lat)
		c := math.Cos(lat)
		cc := c * c
		n := ellps.PrimeVerticalRadiusOfCurvature(lat)
		x := (coord[0] - x0) / (k0 * n)
		xx := x * x
		theta4 := math.Atan2(math.Sinh(x), c)
		theta5 := math.Atan(t * math.Cos(theta4))

		xet := xx * xx * eps * t / 24
		newLat := lat0 + (1+cc*eps)*(theta5-xet*(9-10*cc)) - eps*cc*lat

		approx := lon0 + theta4
		coef := eps / 60 * xx * x * c
		newLon := approx - coef*(10-4*xx/cc+xx*cc)

		operands[i] = geodesy.Coord{newLon, newLat, coord[2], coord[3]}
		successes++
	}
	return successes
}
