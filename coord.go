package geodesy

import "math"

// Coord is an ordered 4-tuple of doubles. Projection kernels treat it as
// (longitude, latitude, height, time) with angles in radians; projected
// output reinterprets the same slots as (easting, northing, height, time).
// Coord is a value type: the engine never keeps an aliasing reference to a
// single element.
type Coord [4]float64

// Geo builds a Coord from latitude/longitude/height/time, with angular
// input in degrees. Internally longitude always comes first.
func Geo(latitude, longitude, height, time float64) Coord {
	return Coord{longitude, latitude, height, time}.ToRadians()
}

// GIS builds a Coord from longitude/latitude/height/time, with angular
// input in degrees.
func GIS(longitude, latitude, height, time float64) Coord {
	return Coord{longitude, latitude, height, time}.ToRadians()
}

// Raw builds a Coord from longitude/latitude/height/time already in radians.
func Raw(first, second, third, fourth float64) Coord {
	return Coord{first, second, third, fourth}
}

// NaNCoord returns a Coord of four NaNs.
func NaNCoord() Coord {
	return Coord{math.NaN(), math.NaN(), math.NaN(), math.NaN()}
}

// Origin returns a Coord of four zeros.
func Origin() Coord { return Coord{} }

// ToRadians converts the first two elements from degrees to radians.
func (c Coord) ToRadians() Coord {
	return Coord{c[0] * math.Pi / 180, c[1] * math.Pi / 180, c[2], c[3]}
}

// ToDegrees converts the first two elements from radians to degrees.
func (c Coord) ToDegrees() Coord {
	return Coord{c[0] * 180 / math.Pi, c[1] * 180 / math.Pi, c[2], c[3]}
}

// ToGeo swaps the first two elements and converts them to degrees, i.e.
// turns the internal lon/lat/h/t-in-radians layout into lat/lon/h/t-in-degrees.
func (c Coord) ToGeo() Coord {
	return Coord{c[1] * 180 / math.Pi, c[0] * 180 / math.Pi, c[2], c[3]}
}

// GeoAll applies ToGeo in place over a batch.
func GeoAll(operands []Coord) {
	for i := range operands {
		operands[i] = operands[i].ToGeo()
	}
}

// DegreesAll applies ToDegrees in place over a batch.
func DegreesAll(operands []Coord) {
	for i := range operands {
		operands[i] = operands[i].ToDegrees()
	}
}

// RadiansAll applies ToRadians in place over a batch.
func RadiansAll(operands []Coord) {
	for i := range operands {
		operands[i] = operands[i].ToRadians()
	}
}

func (c Coord) First() float64  { return c[0] }
func (c Coord) Second() float64 { return c[1] }
func (c Coord) Third() float64  { return c[2] }
func (c Coord) Fourth() float64 { return c[3] }

// Hypot2 is the Euclidean distance between two points in the subspace
// spanned by the first and second coordinate.
func (c Coord) Hypot2(other Coord) float64 {
	return math.Hypot(c[0]-other[0], c[1]-other[1])
}

// Hypot3 is the Euclidean distance between two points in the subspace
// spanned by the first, second and third coordinate.
func (c Coord) Hypot3(other Coord) float64 {
	return math.Hypot(math.Hypot(c[0]-other[0], c[1]-other[1]), c[2]-other[2])
}

// DefaultEllipsoid3DDistance is a shortcut for test authoring: cartesian
// distance between two geographic points on the default ellipsoid.
func (c Coord) DefaultEllipsoid3DDistance(other Coord) float64 {
	e := DefaultEllipsoid()
	return e.Cartesian(c).Hypot3(e.Cartesian(other))
}

// DMSToDD converts degrees/minutes/seconds to decimal degrees. No sanity
// checking: sign is taken from the degree component.
func DMSToDD(d int, m uint16, s float64) float64 {
	sign := 1.0
	if d < 0 {
		sign = -1.0
	}
	return sign * (math.Abs(float64(d)) + (float64(m)+s/60)/60)
}

// DMToDD converts degrees and minutes-with-decimals to decimal degrees.
func DMToDD(d int, m float64) float64 {
	sign := 1.0
	if d < 0 {
		sign = -1.0
	}
	return sign * (math.Abs(float64(d)) + m/60)
}
