package geodesy

import (
	"math"
	"testing"
)

func TestNamedBuiltinEllipsoid(t *testing.T) {
	e, err := Named("GRS80")
	if err != nil {
		t.Fatalf("Named: %v", err)
	}
	if e.SemimajorAxis() != 6378137.0 {
		t.Errorf("SemimajorAxis() = %v, want 6378137.0", e.SemimajorAxis())
	}
}

func TestNamedUnknownEllipsoid(t *testing.T) {
	_, err := Named("not-a-real-ellipsoid")
	if err == nil {
		t.Fatal("expected an error for an unknown ellipsoid name")
	}
}

func TestDefaultEllipsoidIsGRS80(t *testing.T) {
	if DefaultEllipsoid() != (NewEllipsoid(6378137.0, 1.0/298.257222101)) {
		t.Errorf("DefaultEllipsoid() = %v, want GRS80", DefaultEllipsoid())
	}
}

func TestSphereHasZeroFlattening(t *testing.T) {
	e, err := Named("sphere")
	if err != nil {
		t.Fatalf("Named: %v", err)
	}
	if e.Flattening() != 0 {
		t.Errorf("sphere Flattening() = %v, want 0", e.Flattening())
	}
	if e.SemiminorAxis() != e.SemimajorAxis() {
		t.Errorf("sphere should have equal axes: a=%v b=%v", e.SemimajorAxis(), e.SemiminorAxis())
	}
}

func TestCartesianGeographicRoundTrip(t *testing.T) {
	e := DefaultEllipsoid()
	original := Geo(55, 12, 100, 0)
	xyz := e.Cartesian(original)
	back := e.Geographic(xyz)

	if math.Abs(original[0]-back[0]) > 1e-9 {
		t.Errorf("lon round trip: %v vs %v", original[0], back[0])
	}
	if math.Abs(original[1]-back[1]) > 1e-9 {
		t.Errorf("lat round trip: %v vs %v", original[1], back[1])
	}
	if math.Abs(original[2]-back[2]) > 1e-6 {
		t.Errorf("height round trip: %v vs %v", original[2], back[2])
	}
}

func TestConformalLatitudeRoundTrip(t *testing.T) {
	e := DefaultEllipsoid()
	coeffs := e.CoefficientsForConformalLatitudeComputations()
	lat := 50.0 * math.Pi / 180
	chi := e.LatitudeGeographicToConformal(lat, coeffs)
	back := e.LatitudeConformalToGeographic(chi, coeffs)
	if math.Abs(lat-back) > 1e-12 {
		t.Errorf("conformal round trip: %v vs %v", lat, back)
	}
}

func TestMeridionalDistanceRoundTrip(t *testing.T) {
	e := DefaultEllipsoid()
	lat := 45.0 * math.Pi / 180
	m := e.MeridionalDistance(lat, Fwd)
	back := e.MeridionalDistance(m, Inv)
	if math.Abs(lat-back) > 1e-9 {
		t.Errorf("meridional distance round trip: %v vs %v", lat, back)
	}
}

// TestGeodesicCopenhagenToParisNanodegreePrecision reproduces
// 01-geometric_geodesy.rs's Copenhagen(CPH)->Paris(CDG) example on GRS80:
// an inverse solve from CPH to CDG followed by a forward solve along the
// resulting azimuth/distance must land on CDG to within 1e-9 degrees
// (about 0.1 mm on the ground), the same tolerance the original asserts.
func TestGeodesicCopenhagenToParisNanodegreePrecision(t *testing.T) {
	e := DefaultEllipsoid()
	cph := Geo(55, 12, 0, 0)
	cdg := Geo(49, 2, 0, 0)

	d := e.GeodesicInverse(cph, cdg)
	azimuth, distance := d[0], d[2]

	landed := e.GeodesicForward(cph, azimuth, distance).ToDegrees()
	if math.Abs(landed[0]-2) > 1e-9 {
		t.Errorf("longitude = %v, want 2 (within 1e-9 deg)", landed[0])
	}
	if math.Abs(landed[1]-49) > 1e-9 {
		t.Errorf("latitude = %v, want 49 (within 1e-9 deg)", landed[1])
	}
}

func TestGeodesicInverseAndForwardAgree(t *testing.T) {
	e := DefaultEllipsoid()
	p := Geo(55, 12, 0, 0)
	q := Geo(56, 13, 0, 0)

	result := e.GeodesicInverse(p, q)
	azimuth, distance := result[0], result[2]

	landed := e.GeodesicForward(p, azimuth, distance)
	if math.Abs(landed[0]-q[0]) > 1e-6 {
		t.Errorf("lon = %v, want %v", landed[0], q[0])
	}
	if math.Abs(landed[1]-q[1]) > 1e-6 {
		t.Errorf("lat = %v, want %v", landed[1], q[1])
	}
}
