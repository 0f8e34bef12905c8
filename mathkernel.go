package geodesy

import "math"

// PolynomialCoefficients holds a table of polynomials in the third
// flattening n, one row per harmonic of a Fourier series, in the fwd and
// inv directions. Evaluating a row at a given n (FourierCoefficients)
// yields the corresponding FourierSeries coefficient.
type PolynomialCoefficients struct {
	Fwd [][]float64
	Inv [][]float64
}

// FourierSeries is a ready-to-use set of Clenshaw coefficients for the
// conformal/authalic latitude and transverse Mercator kernels.
type FourierSeries struct {
	Fwd []float64
	Inv []float64
}

// FourierCoefficients evaluates each polynomial-in-n row of table at n,
// producing the Fourier series used by ClenshawSin/ClenshawComplexSin.
// Each row is evaluated highest-power-first with Horner's method and the
// result is multiplied by n, so a row's entries are the coefficients of
// n, n^2, n^3, ... in that order (matching the TRANSVERSE_MERCATOR and
// conformal/authalic tables as published, whose lowest power is n^1).
func FourierCoefficients(n float64, table PolynomialCoefficients) FourierSeries {
	return FourierSeries{
		Fwd: evaluateRows(n, table.Fwd),
		Inv: evaluateRows(n, table.Inv),
	}
}

func evaluateRows(n float64, rows [][]float64) []float64 {
	out := make([]float64, len(rows))
	for i, row := range rows {
		var v float64
		for j := len(row) - 1; j >= 0; j-- {
			v = v*n + row[j]
		}
		out[i] = v * n
	}
	return out
}

// ClenshawSin evaluates sum_k coeffs[k] * sin((k+1) * x) via the Clenshaw
// recurrence, avoiding repeated calls to sin/cos of multiple angles. Used
// throughout the conformal/authalic latitude conversions.
func ClenshawSin(x float64, coeffs []float64) float64 {
	if len(coeffs) == 0 {
		return 0
	}
	cosX2 := 2 * math.Cos(x)
	var bk1, bk2 float64
	for i := len(coeffs) - 1; i >= 0; i-- {
		bk2, bk1 = bk1, cosX2*bk1-bk2+coeffs[i]
	}
	return bk1 * math.Sin(x)
}

// ClenshawComplexSin evaluates a complex-argument Clenshaw sine sum, where
// arg is (real, imaginary) and coeffs holds the same real Fourier
// coefficients used by ClenshawSin, following the transverse Mercator
// kernel's complex series summation (Engsager-Poder / Karney extension).
func ClenshawComplexSin(arg [2]float64, coeffs []float64) [2]float64 {
	re, im := arg[0], arg[1]
	sinRe, cosRe := math.Sin(re), math.Cos(re)
	sinhIm, coshIm := math.Sinh(im), math.Cosh(im)
	return clenshawComplexSinCore(sinRe, cosRe, sinhIm, coshIm, coeffs)
}

// ClenshawComplexSinOptimizedForTmerc is the transverse Mercator kernel's
// specialized entry point: the caller has already computed the trig/hyp
// pairs (sin,cos) and (sinh,cosh) of the complex argument, so the
// recurrence skips recomputing them on every call when stepping a batch
// of points at the same precomputed series.
func ClenshawComplexSinOptimizedForTmerc(trig, hyp [2]float64, coeffs []float64) [2]float64 {
	return clenshawComplexSinCore(trig[0], trig[1], hyp[0], hyp[1], coeffs)
}

func clenshawComplexSinCore(sinRe, cosRe, sinhIm, coshIm float64, coeffs []float64) [2]float64 {
	var hr1, hr2, hi1, hi2 float64
	for k := len(coeffs) - 1; k >= 0; k-- {
		c := coeffs[k]
		hr := 2*cosRe*coshIm*hr1 + 2*sinRe*sinhIm*hi1 - hr2 + c
		hi := 2*cosRe*coshIm*hi1 - 2*sinRe*sinhIm*hr1 - hi2
		hr2, hr1 = hr1, hr
		hi2, hi1 = hi1, hi
	}

	re2 := sinRe*coshIm*hr1 - cosRe*sinhIm*hi1
	im2 := cosRe*sinhIm*hr1 + sinRe*coshIm*hi1
	return [2]float64{re2, im2}
}

// Gudermannian is the Gudermannian function gd(x) = atan(sinh(x)),
// mapping isometric latitude to geographic latitude on the sphere.
func Gudermannian(x float64) float64 {
	return math.Atan(math.Sinh(x))
}

// NormalizeAngleSymmetric reduces an angle in radians into (-pi, pi].
func NormalizeAngleSymmetric(lon float64) float64 {
	lon = math.Mod(lon, 2*math.Pi)
	if lon > math.Pi {
		lon -= 2 * math.Pi
	} else if lon <= -math.Pi {
		lon += 2 * math.Pi
	}
	return lon
}
