package geodesy

import (
	"math"

	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
)

// Ellipsoid is the immutable record of semi-major axis and flattening that
// backs every geometric and geodetic computation in the engine. All other
// ellipsoidal quantities are pure functions of (a, f).
type Ellipsoid struct {
	a float64
	f float64
}

// NewEllipsoid builds an ad-hoc ellipsoid from its defining constants.
func NewEllipsoid(a, f float64) Ellipsoid { return Ellipsoid{a: a, f: f} }

// builtins mirrors the handful of ellipsoids every geodesy codebase ships
// by name, following samlecuyer-projectron's ellipse_list and
// paulcager-osgridref's ellipsoids table.
var builtins = map[string]Ellipsoid{
	"GRS80":   {a: 6378137.0, f: 1.0 / 298.257222101},
	"WGS84":   {a: 6378137.0, f: 1.0 / 298.257223563},
	"intl":    {a: 6378388.0, f: 1.0 / 297.0},
	"clrk66":  {a: 6378206.4, f: 1.0 / 294.9786982},
	"clrk80":  {a: 6378249.145, f: 1.0 / 293.4663},
	"bessel":  {a: 6377397.155, f: 1.0 / 299.1528128},
	"airy":    {a: 6377563.396, f: 1.0 / 299.3249646},
	"sphere":  {a: 6370997.0, f: 0.0},
	"Mau38":   {a: 6397300.0, f: 1.0 / 191.0},
	"hayford": {a: 6378388.0, f: 1.0 / 297.0},
}

// Named looks up a built-in ellipsoid by name.
func Named(name string) (Ellipsoid, error) {
	if e, ok := builtins[name]; ok {
		return e, nil
	}
	return Ellipsoid{}, &NotFoundError{Name: name, Hint: "not a built-in ellipsoid"}
}

// DefaultEllipsoid is GRS80, the default for every Op whose ellps parameter
// is unspecified.
func DefaultEllipsoid() Ellipsoid {
	e, _ := Named("GRS80")
	return e
}

func (e Ellipsoid) SemimajorAxis() float64 { return e.a }
func (e Ellipsoid) Flattening() float64    { return e.f }

func (e Ellipsoid) SemiminorAxis() float64 { return e.a * (1 - e.f) }

func (e Ellipsoid) EccentricitySquared() float64 { return e.f * (2 - e.f) }

func (e Ellipsoid) Eccentricity() float64 { return math.Sqrt(e.EccentricitySquared()) }

// SecondEccentricitySquared is e'^2 = e^2 / (1 - e^2).
func (e Ellipsoid) SecondEccentricitySquared() float64 {
	es := e.EccentricitySquared()
	return es / (1 - es)
}

// ThirdFlattening is n = (a-b)/(a+b) = f / (2-f).
func (e Ellipsoid) ThirdFlattening() float64 {
	return e.f / (2 - e.f)
}

// LinearEccentricity is E = sqrt(a^2 - b^2).
func (e Ellipsoid) LinearEccentricity() float64 {
	b := e.SemiminorAxis()
	return math.Sqrt(e.a*e.a - b*b)
}

// PolarRadiusOfCurvature is c = a^2 / b.
func (e Ellipsoid) PolarRadiusOfCurvature() float64 {
	return e.a * e.a / e.SemiminorAxis()
}

// PrimeVerticalRadiusOfCurvature is N(lat) = a / sqrt(1 - e^2 sin^2(lat)).
func (e Ellipsoid) PrimeVerticalRadiusOfCurvature(lat float64) float64 {
	es := e.EccentricitySquared()
	s := math.Sin(lat)
	return e.a / math.Sqrt(1-es*s*s)
}

// NormalizedMeridianArcUnit is the coefficient relating latitude to
// meridional arc length, expressed in the third flattening n.
func (e Ellipsoid) NormalizedMeridianArcUnit() float64 {
	n := e.ThirdFlattening()
	n2 := n * n
	n4 := n2 * n2
	n6 := n4 * n2
	return (1.0 / (1.0 + n)) * (1.0 + n2/4.0 + n4/64.0 + n6/256.0)
}

// meridian arc coefficients, Snyder (1987) eq. 3-21, in e^2.
func (e Ellipsoid) meridianArcCoefficients() (c0, c2, c4, c6 float64) {
	es := e.EccentricitySquared()
	es2 := es * es
	es3 := es2 * es
	c0 = 1 - es/4 - 3*es2/64 - 5*es3/256
	c2 = 3*es/8 + 3*es2/32 + 45*es3/1024
	c4 = 15*es2/256 + 45*es3/1024
	c6 = 35 * es3 / 3072
	return
}

// Direction selects which way a reversible kernel runs.
type Direction int

const (
	Fwd Direction = iota
	Inv
)

// MeridionalDistance computes the meridional arc length for a given
// latitude (Fwd), or the footpoint latitude for a given arc length (Inv),
// following the classical Snyder series used throughout the btmerc/tmerc
// kernels for the UTM footpoint-latitude problem.
func (e Ellipsoid) MeridionalDistance(value float64, dir Direction) float64 {
	c0, c2, c4, c6 := e.meridianArcCoefficients()
	if dir == Fwd {
		lat := value
		return e.a * (c0*lat - c2*math.Sin(2*lat) + c4*math.Sin(4*lat) - c6*math.Sin(6*lat))
	}

	m := value
	mu := m / (e.a * c0)
	es := e.EccentricitySquared()
	e1 := (1 - math.Sqrt(1-es)) / (1 + math.Sqrt(1-es))
	e1_2 := e1 * e1
	e1_3 := e1_2 * e1
	e1_4 := e1_3 * e1
	return mu +
		(3*e1/2-27*e1_3/32)*math.Sin(2*mu) +
		(21*e1_2/16-55*e1_4/32)*math.Sin(4*mu) +
		(151*e1_3/96)*math.Sin(6*mu) +
		(1097*e1_4/512)*math.Sin(8*mu)
}

// conformalLatitudeTable and authalicLatitudeTable are the nested
// polynomials-in-n whose evaluation (via FourierCoefficients) yields the
// Fourier series used to convert geographic latitude to/from conformal and
// authalic latitude respectively. Coefficients after Karney (2011) /
// Snyder (1987), the same family of series as the TRANSVERSE_MERCATOR table
// in the tmerc kernel.
var conformalLatitudeTable = PolynomialCoefficients{
	Fwd: [][]float64{
		{-2, 2.0 / 3, 4.0 / 3, -82.0 / 45, -32.0 / 45, 4642.0 / 4725},
		{0, 5.0 / 3, -16.0 / 15, -13.0 / 9, 904.0 / 315, 1522.0 / 945},
		{0, 0, -26.0 / 15, 34.0 / 21, 8.0 / 5, -12686.0 / 2835},
		{0, 0, 0, 1237.0 / 630, -12.0 / 5, -24832.0 / 14175},
		{0, 0, 0, 0, -734.0 / 315, 109598.0 / 31185},
		{0, 0, 0, 0, 0, 444337.0 / 155925},
	},
	Inv: [][]float64{
		{2, -2.0 / 3, -2, 116.0 / 45, 26.0 / 45, -2854.0 / 675},
		{0, 7.0 / 3, -8.0 / 5, -227.0 / 45, 2704.0 / 315, 2323.0 / 945},
		{0, 0, 56.0 / 15, -136.0 / 35, -1262.0 / 105, 73814.0 / 2835},
		{0, 0, 0, 4279.0 / 630, -332.0 / 35, -399572.0 / 14175},
		{0, 0, 0, 0, 4174.0 / 315, -144838.0 / 6237},
		{0, 0, 0, 0, 0, 601676.0 / 22275},
	},
}

var authalicLatitudeTable = PolynomialCoefficients{
	Fwd: [][]float64{
		{-4.0 / 3, -4.0 / 45, 88.0 / 315, 538.0 / 4725, 20824.0 / 467775, -44732.0 / 2837835},
		{0, 34.0 / 45, 8.0 / 105, -2482.0 / 14175, -37192.0 / 467775, -12467.0 / 457380},
		{0, 0, -1532.0 / 2835, -898.0 / 14175, 54968.0 / 467775, 100320856.0 / 1915538625},
		{0, 0, 0, 6007.0 / 14175, 24496.0 / 467775, -5884.0 / 31185},
		{0, 0, 0, 0, -23356.0 / 66825, -839792.0 / 19348875},
		{0, 0, 0, 0, 0, 570284222.0 / 1915538625},
	},
	Inv: [][]float64{
		{4.0 / 3, 4.0 / 45, -16.0 / 35, -2582.0 / 14175, 60136.0 / 467775, 28112932.0 / 212837625},
		{0, 46.0 / 45, 152.0 / 945, -11966.0 / 14175, -21016.0 / 51975, 251310128.0 / 638512875},
		{0, 0, 3044.0 / 2835, 3802.0 / 14175, -94388.0 / 66825, -8797648.0 / 10945935},
		{0, 0, 0, 6059.0 / 4725, 41072.0 / 93555, -1472637.0 / 1915538625},
		{0, 0, 0, 0, 768272.0 / 467775, 455935736.0 / 638512875},
		{0, 0, 0, 0, 0, 4210684958.0 / 1915538625},
	},
}

// CoefficientsForConformalLatitudeComputations evaluates the conformal
// latitude series at this ellipsoid's third flattening.
func (e Ellipsoid) CoefficientsForConformalLatitudeComputations() FourierSeries {
	return FourierCoefficients(e.ThirdFlattening(), conformalLatitudeTable)
}

// CoefficientsForAuthalicLatitudeComputations evaluates the authalic
// latitude series at this ellipsoid's third flattening.
func (e Ellipsoid) CoefficientsForAuthalicLatitudeComputations() FourierSeries {
	return FourierCoefficients(e.ThirdFlattening(), authalicLatitudeTable)
}

// LatitudeGeographicToConformal maps a geographic latitude to its
// conformal counterpart using a precomputed Fourier series.
func (e Ellipsoid) LatitudeGeographicToConformal(lat float64, coeffs FourierSeries) float64 {
	return lat + ClenshawSin(2*lat, coeffs.Fwd)
}

// LatitudeConformalToGeographic inverts LatitudeGeographicToConformal.
func (e Ellipsoid) LatitudeConformalToGeographic(chi float64, coeffs FourierSeries) float64 {
	return chi + ClenshawSin(2*chi, coeffs.Inv)
}

// LatitudeAuthalicToGeographic inverts the authalic-latitude mapping used
// by the equal-area (LAEA) kernel.
func (e Ellipsoid) LatitudeAuthalicToGeographic(xi float64, coeffs FourierSeries) float64 {
	return xi + ClenshawSin(2*xi, coeffs.Inv)
}

// qAuthalic is Snyder's q(phi) (eq. 3-12), the building block of the
// authalic-latitude radius used by the polar aspects of LAEA.
func qAuthalic(sinPhi, e float64) float64 {
	es := e * sinPhi
	return (1 - e*e) * (sinPhi/(1-es*es) - (1/(2*e))*math.Log((1-es)/(1+es)))
}

// QAuthalic exports qAuthalic for the LAEA kernel in the operations
// subpackage, which needs Snyder's q(phi) directly (not wrapped in an
// Ellipsoid receiver, since LAEA computes it for both a point's latitude
// and the pole in the same call).
func QAuthalic(sinPhi, e float64) float64 { return qAuthalic(sinPhi, e) }

// Cartesian converts a geographic Coord (lon, lat, h, _) to geocentric
// cartesian (X, Y, Z, _), following paulcager-osgridref's ToCartesian.
func (e Ellipsoid) Cartesian(p Coord) Coord {
	lon, lat, h := p[0], p[1], p[2]
	nu := e.PrimeVerticalRadiusOfCurvature(lat)
	es := e.EccentricitySquared()
	sinLat, cosLat := math.Sin(lat), math.Cos(lat)
	sinLon, cosLon := math.Sin(lon), math.Cos(lon)
	x := (nu + h) * cosLat * cosLon
	y := (nu + h) * cosLat * sinLon
	z := (nu*(1-es) + h) * sinLat
	return Coord{x, y, z, p[3]}
}

// Geographic converts a geocentric cartesian Coord back to geographic
// (lon, lat, h, _) via the closed-form Bowring (1976) approximation,
// following paulcager-osgridref's ToLatLon. The latitude comes from a
// single evaluation of Bowring's formula and is not refined iteratively.
func (e Ellipsoid) Geographic(c Coord) Coord {
	x, y, z := c[0], c[1], c[2]
	a, b := e.a, e.SemiminorAxis()
	es := e.EccentricitySquared()
	eps := es / (1 - es)
	p := math.Hypot(x, y)

	if p == 0 {
		// On the polar axis: latitude is +/-90, longitude undefined (0).
		lat := math.Copysign(math.Pi/2, z)
		h := math.Abs(z) - b
		return Coord{0, lat, h, c[3]}
	}

	r := math.Hypot(p, z)
	tanBeta := (b * z) / (a * p) * (1 + eps*b/r)
	sinBeta := tanBeta / math.Sqrt(1+tanBeta*tanBeta)
	cosBeta := 1 / math.Sqrt(1+tanBeta*tanBeta)
	if math.IsNaN(sinBeta) {
		sinBeta, cosBeta = 0, 1
	}

	lat := math.Atan2(z+eps*b*sinBeta*sinBeta*sinBeta, p-es*a*cosBeta*cosBeta*cosBeta)

	// Height from the prime-vertical radius at that latitude.
	sinLat := math.Sin(lat)
	nu := a / math.Sqrt(1-es*sinLat*sinLat)
	var h float64
	if math.Abs(p) > 1e-9 {
		h = p/math.Cos(lat) - nu
	} else {
		h = math.Abs(z) - b
	}

	lon := math.Atan2(y, x)
	return Coord{lon, lat, h, c[3]}
}

// Distance is the geodesic (ellipsoidal) distance between two geographic
// points, a convenience wrapper around GeodesicInverse.
func (e Ellipsoid) Distance(p, q Coord) float64 {
	return e.GeodesicInverse(p, q)[2]
}

// meanRadius is the radius (2a+b)/3 of the sphere that GeodesicInverse's
// spherical fallback uses to turn its angular distance into meters.
func (e Ellipsoid) meanRadius() float64 {
	return (2*e.a + e.SemiminorAxis()) / 3
}

// sphericalSeed computes an approximate azimuth and distance between two
// geographic points by treating the ellipsoid as a sphere, using
// github.com/golang/geo's s1/s2 spherical-geometry types. GeodesicInverse
// uses the azimuth as its fallback answer on the rare inputs (near
// antipodal points) for which plain Vincenty iteration fails to converge.
func (e Ellipsoid) sphericalSeed(p, q Coord) (distance s1.Angle, azimuth float64) {
	pp := s2.LatLngFromDegrees(p[1]*180/math.Pi, p[0]*180/math.Pi)
	qq := s2.LatLngFromDegrees(q[1]*180/math.Pi, q[0]*180/math.Pi)
	distance = pp.Distance(qq)

	lat1, lat2 := pp.Lat.Radians(), qq.Lat.Radians()
	dLon := (qq.Lng - pp.Lng).Radians()
	y := math.Sin(dLon) * math.Cos(lat2)
	x := math.Cos(lat1)*math.Sin(lat2) - math.Sin(lat1)*math.Cos(lat2)*math.Cos(dLon)
	azimuth = math.Atan2(y, x)
	return
}

// GeodesicInverse solves the inverse geodesic problem on this ellipsoid:
// given two geographic points it returns a Coord whose first two slots
// are the forward and reverse azimuth (radians) and whose third slot is
// the distance (meters), following Vincenty (1975). The iteration starts
// from the plain longitude difference; when it does not converge, the
// spherical approximation from sphericalSeed is returned instead.
func (e Ellipsoid) GeodesicInverse(p, q Coord) Coord {
	lat1, lon1 := p[1], p[0]
	lat2, lon2 := q[1], q[0]

	if math.Abs(lat1-lat2) < 1e-15 && math.Abs(lon1-lon2) < 1e-15 {
		return Coord{0, 0, 0, 0}
	}

	f := e.f
	a := e.a
	b := e.SemiminorAxis()

	L := lon2 - lon1
	U1 := math.Atan((1 - f) * math.Tan(lat1))
	U2 := math.Atan((1 - f) * math.Tan(lat2))
	sinU1, cosU1 := math.Sin(U1), math.Cos(U1)
	sinU2, cosU2 := math.Sin(U2), math.Cos(U2)

	seedDistance, seedAzimuth := e.sphericalSeed(p, q)
	lambda := L

	var sinSigma, cosSigma, sigma, sinAlpha, cosSqAlpha, cos2SigmaM float64
	converged := false
	for iter := 0; iter < 1000; iter++ {
		sinLambda, cosLambda := math.Sin(lambda), math.Cos(lambda)
		sinSigma = math.Sqrt(math.Pow(cosU2*sinLambda, 2) + math.Pow(cosU1*sinU2-sinU1*cosU2*cosLambda, 2))
		if sinSigma == 0 {
			return Coord{0, 0, 0, 0}
		}
		cosSigma = sinU1*sinU2 + cosU1*cosU2*cosLambda
		sigma = math.Atan2(sinSigma, cosSigma)
		sinAlpha = cosU1 * cosU2 * sinLambda / sinSigma
		cosSqAlpha = 1 - sinAlpha*sinAlpha
		if cosSqAlpha != 0 {
			cos2SigmaM = cosSigma - 2*sinU1*sinU2/cosSqAlpha
		} else {
			cos2SigmaM = 0
		}
		C := f / 16 * cosSqAlpha * (4 + f*(4-3*cosSqAlpha))
		lambdaPrev := lambda
		lambda = L + (1-C)*f*sinAlpha*(sigma+C*sinSigma*(cos2SigmaM+C*cosSigma*(-1+2*cos2SigmaM*cos2SigmaM)))
		if math.Abs(lambda-lambdaPrev) < 1e-14 {
			converged = true
			break
		}
	}

	// Near-antipodal points can make Vincenty's iteration fail to
	// converge; fall back to the spherical seed rather than returning a
	// garbage azimuth pair.
	if !converged {
		return Coord{seedAzimuth, seedAzimuth + math.Pi, float64(seedDistance) * e.meanRadius(), 0}
	}

	uSq := cosSqAlpha * (a*a - b*b) / (b * b)
	A := 1 + uSq/16384*(4096+uSq*(-768+uSq*(320-175*uSq)))
	B := uSq / 1024 * (256 + uSq*(-128+uSq*(74-47*uSq)))
	deltaSigma := B * sinSigma * (cos2SigmaM + B/4*(cosSigma*(-1+2*cos2SigmaM*cos2SigmaM)-
		B/6*cos2SigmaM*(-3+4*sinSigma*sinSigma)*(-3+4*cos2SigmaM*cos2SigmaM)))
	distance := b * A * (sigma - deltaSigma)

	azimuth1 := math.Atan2(cosU2*math.Sin(lambda), cosU1*sinU2-sinU1*cosU2*math.Cos(lambda))
	azimuth2 := math.Atan2(cosU1*math.Sin(lambda), -sinU1*cosU2+cosU1*sinU2*math.Cos(lambda))

	return Coord{NormalizeAngleSymmetric(azimuth1), NormalizeAngleSymmetric(azimuth2), distance, 0}
}

// GeodesicForward solves the direct geodesic problem: given a start point,
// an azimuth and a distance, returns the destination (lon, lat, 0, 0).
func (e Ellipsoid) GeodesicForward(p Coord, azimuth, distance float64) Coord {
	lat1, lon1 := p[1], p[0]
	f := e.f
	a := e.a
	b := e.SemiminorAxis()

	sinAlpha1, cosAlpha1 := math.Sin(azimuth), math.Cos(azimuth)
	tanU1 := (1 - f) * math.Tan(lat1)
	cosU1 := 1 / math.Sqrt(1+tanU1*tanU1)
	sinU1 := tanU1 * cosU1

	sigma1 := math.Atan2(tanU1, cosAlpha1)
	sinAlpha := cosU1 * sinAlpha1
	cosSqAlpha := 1 - sinAlpha*sinAlpha
	uSq := cosSqAlpha * (a*a - b*b) / (b * b)
	A := 1 + uSq/16384*(4096+uSq*(-768+uSq*(320-175*uSq)))
	B := uSq / 1024 * (256 + uSq*(-128+uSq*(74-47*uSq)))

	sigma := distance / (b * A)
	var sigmaP, cos2SigmaM float64
	for iter := 0; iter < 1000; iter++ {
		cos2SigmaM = math.Cos(2*sigma1 + sigma)
		sinSigma, cosSigma := math.Sin(sigma), math.Cos(sigma)
		deltaSigma := B * sinSigma * (cos2SigmaM + B/4*(cosSigma*(-1+2*cos2SigmaM*cos2SigmaM)-
			B/6*cos2SigmaM*(-3+4*sinSigma*sinSigma)*(-3+4*cos2SigmaM*cos2SigmaM)))
		sigmaP = sigma
		sigma = distance/(b*A) + deltaSigma
		if math.Abs(sigma-sigmaP) < 1e-14 {
			break
		}
	}

	sinSigma, cosSigma := math.Sin(sigma), math.Cos(sigma)
	tmp := sinU1*sinSigma - cosU1*cosSigma*cosAlpha1
	lat2 := math.Atan2(sinU1*cosSigma+cosU1*sinSigma*cosAlpha1,
		(1-f)*math.Sqrt(sinAlpha*sinAlpha+tmp*tmp))
	lambda := math.Atan2(sinSigma*sinAlpha1, cosU1*cosSigma-sinU1*sinSigma*cosAlpha1)
	C := f / 16 * cosSqAlpha * (4 + f*(4-3*cosSqAlpha))
	L := lambda - (1-C)*f*sinAlpha*(sigma+C*sinSigma*(cos2SigmaM+C*cosSigma*(-1+2*cos2SigmaM*cos2SigmaM)))
	lon2 := lon1 + L

	return Coord{NormalizeAngleSymmetric(lon2), lat2, 0, 0}
}
