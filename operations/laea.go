package operations

import (
	"math"

	"github.com/oahumap/geodesy"
)

func init() {
	geodesy.Register("laea", "Lambert azimuthal equal area", newLAEA)
}

const laeaEps10 = 1e-10

var laeaGamut = []geodesy.OpParameter{
	geodesy.Flag{Key: "inv"},
	geodesy.Text{Key: "ellps", Default: strPtr("GRS80")},
	geodesy.Real{Key: "lat_0", Default: floatPtr(0)},
	geodesy.Real{Key: "lon_0", Default: floatPtr(0)},
	geodesy.Real{Key: "x_0", Default: floatPtr(0)},
	geodesy.Real{Key: "y_0", Default: floatPtr(0)},
}

// newLAEA implements EPSG coordinate operation method 9820, following
// IOGP (2019) pp. 78-80: polar, equatorial and oblique aspects are
// dispatched on the absolute value of the central latitude and stored as
// boolean flags (rather than a mode enum), mirroring how the chased
// parameters are stored elsewhere as a boolean set.
func newLAEA(raw *geodesy.RawParameters, ctx *geodesy.Context) (geodesy.Op, error) {
	params, err := geodesy.NewParsedParameters(raw, laeaGamut)
	if err != nil {
		return geodesy.Op{}, err
	}
	if err := params.ResolveEllipsoid(0, "ellps", geodesy.DefaultEllipsoid()); err != nil {
		return geodesy.Op{}, err
	}

	lat0Deg, _ := params.RealParam("lat_0")
	lon0Deg, _ := params.RealParam("lon_0")
	lat0 := lat0Deg * math.Pi / 180
	lon0 := lon0Deg * math.Pi / 180
	x0, _ := params.RealParam("x_0")
	y0, _ := params.RealParam("y_0")
	params.SetLat(0, lat0)
	params.SetLon(0, lon0)
	params.SetX(0, x0)
	params.SetY(0, y0)

	if math.IsNaN(lat0) {
		return geodesy.Op{}, &geodesy.BadParamError{Key: "lat_0", Value: "NaN"}
	}
	t := math.Abs(lat0)
	if t > math.Pi/2+laeaEps10 {
		return geodesy.Op{}, &geodesy.BadParamError{Key: "lat_0", Value: "out of range"}
	}

	polar := math.Abs(t-math.Pi/2) < laeaEps10
	north := polar && lat0 > 0
	equatorial := !polar && t < laeaEps10
	oblique := !polar && !equatorial

	switch {
	case polar && north:
		params.SetAspectFlag("north_polar")
	case polar && !north:
		params.SetAspectFlag("south_polar")
	case equatorial:
		params.SetAspectFlag("equatorial")
	default:
		params.SetAspectFlag("oblique")
	}

	ellps := params.Ellps(0)
	a := ellps.SemimajorAxis()
	es := ellps.EccentricitySquared()
	e := math.Sqrt(es)
	sinPhi0, cosPhi0 := math.Sin(lat0), math.Cos(lat0)

	q0 := geodesy.QAuthalic(sinPhi0, e)
	qp := geodesy.QAuthalic(1.0, e)
	xi0 := math.Asin(q0 / qp)
	rq := a * math.Sqrt(0.5*qp)

	var d float64
	switch {
	case oblique:
		d = a * (cosPhi0 / math.Sqrt(1-es*sinPhi0*sinPhi0)) / (rq * math.Cos(xi0))
	case equatorial:
		d = 1 / rq
	default:
		d = a
	}

	params.SetReal("xi_0", xi0)
	params.SetReal("q0", q0)
	params.SetReal("qp", qp)
	params.SetReal("rq", rq)
	params.SetReal("d", d)
	params.SetFourierCoefficients("authalic", ellps.CoefficientsForAuthalicLatitudeComputations())

	descriptor := geodesy.OpDescriptor{
		Definition: raw.Definition,
		Fwd:        laeaFwd,
		Inv:        laeaInv,
		Inverted:   params.Boolean("inv"),
	}
	return geodesy.Plain(descriptor, params), nil
}

func laeaFwd(op *geodesy.Op, ctx *geodesy.Context, operands []geodesy.Coord) int {
	p := op.Params()
	xi0, errXi := p.RealParam("xi_0")
	qp, errQp := p.RealParam("qp")
	rq, errRq := p.RealParam("rq")
	d, errD := p.RealParam("d")
	if errXi != nil || errQp != nil || errRq != nil || errD != nil {
		for i := range operands {
			operands[i] = geodesy.NaNCoord()
		}
		return 0
	}

	oblique := p.Boolean("oblique")
	northPolar := p.Boolean("north_polar")
	southPolar := p.Boolean("south_polar")

	lon0, x0, y0 := p.Lon(0), p.X(0), p.Y(0)
	ellps := p.Ellps(0)
	e := ellps.Eccentricity()
	a := ellps.SemimajorAxis()
	sinXi0, cosXi0 := math.Sin(xi0), math.Cos(xi0)

	successes := 0

	if northPolar || southPolar {
		sign := 1.0
		if northPolar {
			sign = -1.0
		}
		for i, coord := range operands {
			lat, lon := coord[1], coord[0]
			sinLon, cosLon := math.Sin(lon-lon0), math.Cos(lon-lon0)
			q := geodesy.QAuthalic(math.Sin(lat), e)
			rho := a * math.Sqrt(qp+sign*q)
			operands[i] = geodesy.Coord{x0 + rho*sinLon, y0 + sign*rho*cosLon, coord[2], coord[3]}
			successes++
		}
		return successes
	}

	for i, coord := range operands {
		lon, lat := coord[0], coord[1]
		sinLon, cosLon := math.Sin(lon-lon0), math.Cos(lon-lon0)

		xi := math.Asin(geodesy.QAuthalic(math.Sin(lat), e) / qp)
		sinXi, cosXi := math.Sin(xi), math.Cos(xi)

		b := 1.0
		if oblique {
			factor := 1.0 + sinXi0*sinXi + cosXi0*cosXi*cosLon
			b = rq * math.Sqrt(2.0/factor)
		}

		x := x0 + (b*d)*(cosXi*sinLon)
		y := y0 + (b/d)*(cosXi0*sinXi-sinXi0*cosXi*cosLon)
		operands[i] = geodesy.Coord{x, y, coord[2], coord[3]}
		successes++
	}
	return successes
}

func laeaInv(op *geodesy.Op, ctx *geodesy.Context, operands []geodesy.Coord) int {
	p := op.Params()
	xi0, errXi := p.RealParam("xi_0")
	rq, errRq := p.RealParam("rq")
	d, errD := p.RealParam("d")
	authalic, errA := p.FourierCoefficientsParam("authalic")
	if errXi != nil || errRq != nil || errD != nil || errA != nil {
		for i := range operands {
			operands[i] = geodesy.NaNCoord()
		}
		return 0
	}

	northPolar := p.Boolean("north_polar")
	southPolar := p.Boolean("south_polar")
	lon0, lat0, x0, y0 := p.Lon(0), p.Lat(0), p.X(0), p.Y(0)

	ellps := p.Ellps(0)
	a := ellps.SemimajorAxis()
	es := ellps.EccentricitySquared()
	e := math.Sqrt(es)
	sinXi0, cosXi0 := math.Sin(xi0), math.Cos(xi0)

	successes := 0

	if northPolar || southPolar {
		sign := 1.0
		if northPolar {
			sign = -1.0
		}
		for i, coord := range operands {
			x, y := coord[0], coord[1]
			rho := math.Hypot(x-x0, y-y0)
			denom := a * a * (1.0 - ((1.0-es)/(2.0*e))*math.Log((1.0-e)/(1.0+e)))
			xi := math.Asin(-sign * (1.0 - rho*rho/denom))

			lon := lon0 + math.Atan2(x-x0, sign*(y-y0))
			lat := ellps.LatitudeAuthalicToGeographic(xi, authalic)
			operands[i] = geodesy.Coord{lon, lat, coord[2], coord[3]}
			successes++
		}
		return successes
	}

	for i, coord := range operands {
		x, y := coord[0], coord[1]
		rho := math.Hypot((x-x0)/d, d*(y-y0))
		if rho < laeaEps10 {
			operands[i] = geodesy.Coord{0, lat0, coord[2], coord[3]}
			successes++
			continue
		}

		asinArg := 0.5 * rho / rq
		if math.Abs(asinArg) > 1.0 {
			operands[i] = geodesy.NaNCoord()
			continue
		}

		c := 2.0 * math.Asin(asinArg)
		sinC, cosC := math.Sin(c), math.Cos(c)
		xi := math.Asin(cosC*sinXi0 + (d*(y-y0)*sinC*cosXi0)/rho)
		lat := ellps.LatitudeAuthalicToGeographic(xi, authalic)

		num := (x - x0) * sinC
		denom := d*rho*cosXi0*cosC - d*d*(y-y0)*sinXi0*sinC
		lon := math.Atan2(num, denom) + lon0

		operands[i] = geodesy.Coord{lon, lat, coord[2], coord[3]}
		successes++
	}
	return successes
}
