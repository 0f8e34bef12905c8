package geodesy

import (
	"math"
	"testing"
)

func TestClenshawSinZeroCoefficientsIsZero(t *testing.T) {
	if v := ClenshawSin(1.23, nil); v != 0 {
		t.Errorf("ClenshawSin with no coefficients = %v, want 0", v)
	}
}

func TestClenshawSinSingleTermMatchesDirectSine(t *testing.T) {
	x := 0.4
	coeffs := []float64{0.01}
	got := ClenshawSin(x, coeffs)
	want := coeffs[0] * math.Sin(x)
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("ClenshawSin single-term = %v, want %v", got, want)
	}
}

func TestGudermannianAtZero(t *testing.T) {
	if v := Gudermannian(0); v != 0 {
		t.Errorf("Gudermannian(0) = %v, want 0", v)
	}
}

func TestNormalizeAngleSymmetricWrapsIntoRange(t *testing.T) {
	cases := []struct {
		in, want float64
	}{
		{0, 0},
		{math.Pi, math.Pi},
		{3 * math.Pi, math.Pi},
		{-3 * math.Pi, math.Pi},
	}
	for _, c := range cases {
		got := NormalizeAngleSymmetric(c.in)
		if math.Abs(got-c.want) > 1e-9 {
			t.Errorf("NormalizeAngleSymmetric(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestFourierCoefficientsEvaluatesPolynomialRows(t *testing.T) {
	table := PolynomialCoefficients{
		Fwd: [][]float64{{1, 2}, {0, 3}},
		Inv: [][]float64{{5}},
	}
	fs := FourierCoefficients(2.0, table)
	if len(fs.Fwd) != 2 || len(fs.Inv) != 1 {
		t.Fatalf("FourierCoefficients shapes = %v / %v", fs.Fwd, fs.Inv)
	}
	if fs.Fwd[0] != 2.0*(1+2*2.0) {
		t.Errorf("row 0 = %v, want %v", fs.Fwd[0], 2.0*(1+2*2.0))
	}
	if fs.Fwd[1] != 2.0*(0+3*2.0) {
		t.Errorf("row 1 = %v, want %v", fs.Fwd[1], 2.0*(3*2.0))
	}
	if fs.Inv[0] != 2.0*5 {
		t.Errorf("inv row 0 = %v, want 10", fs.Inv[0])
	}
}

func TestClenshawComplexSinRealArgumentMatchesClenshawSin(t *testing.T) {
	coeffs := []float64{0.1, -0.02, 0.003}
	x := 0.7
	want := ClenshawSin(2*x, coeffs)
	got := ClenshawComplexSin([2]float64{2 * x, 0}, coeffs)
	if math.Abs(got[0]-want) > 1e-9 {
		t.Errorf("real part = %v, want %v", got[0], want)
	}
	if math.Abs(got[1]) > 1e-9 {
		t.Errorf("imaginary part = %v, want ~0 for a real argument", got[1])
	}
}
