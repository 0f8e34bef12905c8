package geodesy

import (
	"errors"
	"testing"
)

func floatP(f float64) *float64 { return &f }
func uintP(u uint) *uint        { return &u }
func strP(s string) *string     { return &s }

func TestNewParsedParametersResolvesAndDefaults(t *testing.T) {
	raw := NewRawParameters("tmerc lat_0:55 inv", nil)
	gamut := []OpParameter{
		Flag{Key: "inv"},
		Real{Key: "lat_0", Default: floatP(0)},
		Real{Key: "lon_0", Default: floatP(9)},
		Natural{Key: "zone", Default: uintP(32)},
	}
	p, err := NewParsedParameters(raw, gamut)
	if err != nil {
		t.Fatalf("NewParsedParameters: %v", err)
	}
	if !p.Boolean("inv") {
		t.Error("expected inv flag true")
	}
	if v, _ := p.RealParam("lat_0"); v != 55 {
		t.Errorf("lat_0 = %v, want 55", v)
	}
	if v, _ := p.RealParam("lon_0"); v != 9 {
		t.Errorf("lon_0 default = %v, want 9", v)
	}
	zone, err := p.Natural("zone")
	if err != nil || zone != 32 {
		t.Errorf("zone default = %v, %v, want 32", zone, err)
	}
}

func TestNewParsedParametersMissingRequired(t *testing.T) {
	raw := NewRawParameters("butm", nil)
	gamut := []OpParameter{Natural{Key: "zone"}}
	_, err := NewParsedParameters(raw, gamut)
	var missing *MissingParamError
	if !errors.As(err, &missing) {
		t.Fatalf("got %v, want MissingParamError", err)
	}
}

func TestNewParsedParametersBadValue(t *testing.T) {
	raw := NewRawParameters("utm zone:notanumber", nil)
	gamut := []OpParameter{Natural{Key: "zone"}}
	_, err := NewParsedParameters(raw, gamut)
	var bad *BadParamError
	if !errors.As(err, &bad) {
		t.Fatalf("got %v, want BadParamError", err)
	}
}

func TestNewParsedParametersSeriesRetainsAllElements(t *testing.T) {
	raw := NewRawParameters("helmert args:1,2,3,4,5,6,7", nil)
	gamut := []OpParameter{Series{Key: "args"}}
	p, err := NewParsedParameters(raw, gamut)
	if err != nil {
		t.Fatalf("NewParsedParameters: %v", err)
	}
	series, err := p.SeriesParam("args")
	if err != nil {
		t.Fatalf("SeriesParam: %v", err)
	}
	if len(series) != 7 {
		t.Fatalf("got %d elements, want 7 (full retention, not first-element-only)", len(series))
	}
}

func TestNewParsedParametersIgnoredTracksUnconsumedLocals(t *testing.T) {
	raw := NewRawParameters("cart ellps:GRS80 bogus:1", nil)
	gamut := []OpParameter{Text{Key: "ellps", Default: strP("GRS80")}}
	p, err := NewParsedParameters(raw, gamut)
	if err != nil {
		t.Fatalf("NewParsedParameters: %v", err)
	}
	found := false
	for _, key := range p.Ignored() {
		if key == "bogus" {
			found = true
		}
	}
	if !found {
		t.Errorf("Ignored() = %v, want it to contain 'bogus'", p.Ignored())
	}
}

func TestResolveEllipsoidFallsBackWhenAbsent(t *testing.T) {
	raw := NewRawParameters("cart", nil)
	p, err := NewParsedParameters(raw, nil)
	if err != nil {
		t.Fatalf("NewParsedParameters: %v", err)
	}
	if err := p.ResolveEllipsoid(0, "ellps", DefaultEllipsoid()); err != nil {
		t.Fatalf("ResolveEllipsoid: %v", err)
	}
	if p.Ellps(0) != DefaultEllipsoid() {
		t.Errorf("Ellps(0) = %v, want default", p.Ellps(0))
	}
}

func TestResolveEllipsoidRejectsUnknownName(t *testing.T) {
	raw := NewRawParameters("cart ellps:not_a_real_ellipsoid", nil)
	p, err := NewParsedParameters(raw, nil)
	if err != nil {
		t.Fatalf("NewParsedParameters: %v", err)
	}
	err = p.ResolveEllipsoid(0, "ellps", DefaultEllipsoid())
	var bad *BadParamError
	if !errors.As(err, &bad) {
		t.Fatalf("got %v, want BadParamError", err)
	}
}
