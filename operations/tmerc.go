package operations

import (
	"math"

	"github.com/oahumap/geodesy"
)

func init() {
	geodesy.Register("tmerc", "transverse Mercator (Engsager-Poder)", newTmerc)
	geodesy.Register("utm", "Universal Transverse Mercator", newUTM)
}

var tmercGamut = []geodesy.OpParameter{
	geodesy.Flag{Key: "inv"},
	geodesy.Text{Key: "ellps", Default: strPtr("GRS80")},
	geodesy.Real{Key: "lat_0", Default: floatPtr(0)},
	geodesy.Real{Key: "lon_0", Default: floatPtr(0)},
	geodesy.Real{Key: "x_0", Default: floatPtr(0)},
	geodesy.Real{Key: "y_0", Default: floatPtr(0)},
	geodesy.Real{Key: "k_0", Default: floatPtr(1)},
}

var utmGamut = []geodesy.OpParameter{
	geodesy.Flag{Key: "inv"},
	geodesy.Text{Key: "ellps", Default: strPtr("GRS80")},
	geodesy.Natural{Key: "zone"},
}

// transverseMercatorTable is the Engsager & Poder (2007) series for
// geodetic<->TM conversion, extended to 6th order by Karney (2011),
// published as rational coefficients in the third flattening n.
var transverseMercatorTable = geodesy.PolynomialCoefficients{
	Fwd: [][]float64{
		{1. / 2, -2. / 3, 5. / 16, 41. / 180, -127. / 288.0, 7891. / 37800},
		{0, 13. / 48, -3. / 5, 557. / 1440, 281. / 630, -1983433. / 1935360},
		{0, 0, 61. / 240, -103. / 140, 15061. / 26880, 167603. / 181440},
		{0, 0, 0, 49561. / 161280, -179. / 168, 6601661. / 7257600},
		{0, 0, 0, 0, 34729. / 80640, -3418889. / 1995840},
		{0, 0, 0, 0, 0, 212378941. / 319334400},
	},
	Inv: [][]float64{
		{-1. / 2, 2. / 3, -37. / 96, 1. / 360, 81. / 512, -96199. / 604800},
		{0, -1. / 48, -1. / 15, 437. / 1440, -46. / 105, 1118711. / 3870720},
		{0, 0, -17. / 480, 37. / 840, 209. / 4480, -5569. / 90720},
		{0, 0, 0, -4397. / 161280, 11. / 504, 830251. / 7257600},
		{0, 0, 0, 0, -4583. / 161280, 108847. / 3991680},
		{0, 0, 0, 0, 0, -20648693. / 638668800},
	},
}

// tmercDomainLimit is the radius, in the isometric longitude, beyond
// which the Clenshaw series no longer converges usefully.
const tmercDomainLimit = 2.623395162778

func newTmerc(raw *geodesy.RawParameters, ctx *geodesy.Context) (geodesy.Op, error) {
	params, err := geodesy.NewParsedParameters(raw, tmercGamut)
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

	precomputeTmerc(params)

	descriptor := geodesy.OpDescriptor{
		Definition: raw.Definition,
		Fwd:        tmercFwd,
		Inv:        tmercInv,
		Inverted:   params.Boolean("inv"),
	}
	return geodesy.Plain(descriptor, params), nil
}

func newUTM(raw *geodesy.RawParameters, ctx *geodesy.Context) (geodesy.Op, error) {
	params, err := geodesy.NewParsedParameters(raw, utmGamut)
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
		return geodesy.Op{}, &geodesy.OperatorError{Name: "utm", Detail: "zone must be an integer in 1..60"}
	}

	params.SetK(0, 0.9996)
	params.SetLon(0, (-183.0+6.0*float64(zone))*math.Pi/180)
	params.SetLat(0, 0)
	params.SetX(0, 500000.0)
	params.SetY(0, 0)

	precomputeTmerc(params)

	descriptor := geodesy.OpDescriptor{
		Definition: raw.Definition,
		Fwd:        tmercFwd,
		Inv:        tmercInv,
		Inverted:   params.Boolean("inv"),
	}
	return geodesy.Plain(descriptor, params), nil
}

// precomputeTmerc amortizes the ellipsoid- and origin-dependent series
// evaluation over the Op's lifetime instead of the per-point hot loop,
// following tmerc.rs's precompute().
func precomputeTmerc(params *geodesy.ParsedParameters) {
	ellps := params.Ellps(0)
	n := ellps.ThirdFlattening()
	lat0 := params.Lat(0)
	y0 := params.Y(0)
	k0 := params.K(0)

	qs := k0 * ellps.SemimajorAxis() * ellps.NormalizedMeridianArcUnit()
	params.SetReal("scaled_radius", qs)

	conformal := ellps.CoefficientsForConformalLatitudeComputations()
	params.SetFourierCoefficients("conformal", conformal)

	tm := geodesy.FourierCoefficients(n, transverseMercatorTable)
	params.SetFourierCoefficients("tm", tm)

	z := ellps.LatitudeGeographicToConformal(lat0, conformal)
	zb := y0 - qs*(z+geodesy.ClenshawSin(2*z, tm.Fwd))
	params.SetReal("zb", zb)
}

func tmercFwd(op *geodesy.Op, ctx *geodesy.Context, operands []geodesy.Coord) int {
	p := op.Params()
	ellps := p.Ellps(0)
	lon0 := p.Lon(0)
	x0 := p.X(0)
	conformal, errC := p.FourierCoefficientsParam("conformal")
	tm, errT := p.FourierCoefficientsParam("tm")
	qs, errQ := p.RealParam("scaled_radius")
	zb, errZ := p.RealParam("zb")
	if errC != nil || errT != nil || errQ != nil || errZ != nil {
		for i := range operands {
			operands[i] = geodesy.NaNCoord()
		}
		return 0
	}

	successes := 0
	for i, coord := range operands {
		lat := ellps.LatitudeGeographicToConformal(coord[1], conformal)
		lon := coord[0] - lon0

		sinLat, cosLat := math.Sin(lat), math.Cos(lat)
		sinLon, cosLon := math.Sin(lon), math.Cos(lon)
		cosLatLon := cosLat * cosLon
		lat = math.Atan2(sinLat, cosLatLon)

		invDenomTanLon := 1 / math.Hypot(sinLat, cosLatLon)
		tanLon := sinLon * cosLat * invDenomTanLon
		lon = math.Asinh(tanLon)

		twoInvDenom := 2.0 * invDenomTanLon
		twoInvDenomSq := twoInvDenom * invDenomTanLon
		tmpR := cosLatLon * twoInvDenomSq
		trig := [2]float64{sinLat * tmpR, cosLatLon*tmpR - 1.0}
		hyp := [2]float64{tanLon * twoInvDenom, twoInvDenomSq - 1.0}

		dc := geodesy.ClenshawComplexSinOptimizedForTmerc(trig, hyp, tm.Fwd)
		lat += dc[0]
		lon += dc[1]

		if math.Abs(lon) > tmercDomainLimit {
			operands[i] = geodesy.NaNCoord()
			continue
		}

		operands[i] = geodesy.Coord{qs*lon + x0, qs*lat + zb, coord[2], coord[3]}
		successes++
	}
	return successes
}

func tmercInv(op *geodesy.Op, ctx *geodesy.Context, operands []geodesy.Coord) int {
	p := op.Params()
	ellps := p.Ellps(0)
	lon0 := p.Lon(0)
	x0 := p.X(0)
	conformal, errC := p.FourierCoefficientsParam("conformal")
	tm, errT := p.FourierCoefficientsParam("tm")
	qs, errQ := p.RealParam("scaled_radius")
	zb, errZ := p.RealParam("zb")
	if errC != nil || errT != nil || errQ != nil || errZ != nil {
		for i := range operands {
			operands[i] = geodesy.NaNCoord()
		}
		return 0
	}

	successes := 0
	for i, coord := range operands {
		lon := (coord[0] - x0) / qs
		lat := (coord[1] - zb) / qs

		if math.Abs(lon) > tmercDomainLimit {
			operands[i] = geodesy.NaNCoord()
			continue
		}

		dc := geodesy.ClenshawComplexSin([2]float64{2 * lat, 2 * lon}, tm.Inv)
		lat += dc[0]
		lon += dc[1]
		lon = geodesy.Gudermannian(lon)

		sinLat, cosLat := math.Sin(lat), math.Cos(lat)
		sinLon, cosLon := math.Sin(lon), math.Cos(lon)
		cosLatLon := cosLat * cosLon
		lon = math.Atan2(sinLon, cosLatLon)
		lat = math.Atan2(sinLat*cosLon, math.Hypot(sinLon, cosLatLon))

		finalLon := geodesy.NormalizeAngleSymmetric(lon + lon0)
		finalLat := ellps.LatitudeConformalToGeographic(lat, conformal)
		operands[i] = geodesy.Coord{finalLon, finalLat, coord[2], coord[3]}
		successes++
	}
	return successes
}
