package window

import (
	"math"
	"testing"
)

func TestGenerateHannPeriodic(t *testing.T) {
	n := 16

	coeffs := Generate(TypeHann, n, WithPeriodic())
	if len(coeffs) != n {
		t.Fatalf("len = %d, want %d", len(coeffs), n)
	}

	for i, c := range coeffs {
		want := 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(n)))
		if math.Abs(c-want) > 1e-12 {
			t.Fatalf("coeffs[%d] = %v, want %v", i, c, want)
		}
	}
}

func TestGenerateHannSymmetric(t *testing.T) {
	coeffs := Generate(TypeHann, 33)

	if math.Abs(coeffs[0]) > 1e-15 || math.Abs(coeffs[32]) > 1e-15 {
		t.Fatalf("symmetric Hann endpoints must be 0: %v %v", coeffs[0], coeffs[32])
	}

	if math.Abs(coeffs[16]-1) > 1e-12 {
		t.Fatalf("symmetric Hann midpoint = %v, want 1", coeffs[16])
	}

	for i := 0; i < 16; i++ {
		if math.Abs(coeffs[i]-coeffs[32-i]) > 1e-12 {
			t.Fatalf("Hann window not symmetric at %d", i)
		}
	}
}

func TestGenerateRectangular(t *testing.T) {
	coeffs := Generate(TypeRectangular, 8)
	for i, c := range coeffs {
		if c != 1 {
			t.Fatalf("coeffs[%d] = %v, want 1", i, c)
		}
	}
}

func TestGenerateInvalidLength(t *testing.T) {
	if Generate(TypeHann, 0) != nil {
		t.Fatalf("expected nil for zero length")
	}

	if Generate(TypeHann, -3) != nil {
		t.Fatalf("expected nil for negative length")
	}
}

func TestHannReportsError(t *testing.T) {
	_, err := Hann(0)
	if err == nil {
		t.Fatalf("expected error for zero size")
	}

	coeffs, err := Hann(64)
	if err != nil {
		t.Fatalf("Hann error: %v", err)
	}

	if len(coeffs) != 64 {
		t.Fatalf("len = %d, want 64", len(coeffs))
	}
}

func TestApplyCoefficients(t *testing.T) {
	samples := []float64{1, 2, 3, 4}
	coeffs := []float64{0.5, 0.5, 0.5, 0.5}

	out, err := ApplyCoefficients(samples, coeffs)
	if err != nil {
		t.Fatalf("ApplyCoefficients error: %v", err)
	}

	for i := range out {
		if math.Abs(out[i]-samples[i]*0.5) > 1e-15 {
			t.Fatalf("out[%d] = %v", i, out[i])
		}
	}

	_, err = ApplyCoefficients(samples, coeffs[:2])
	if err == nil {
		t.Fatalf("expected length mismatch error")
	}
}

func TestEquivalentNoiseBandwidth(t *testing.T) {
	rect := Generate(TypeRectangular, 128)

	enbw, err := EquivalentNoiseBandwidth(rect)
	if err != nil {
		t.Fatalf("ENBW error: %v", err)
	}

	if math.Abs(enbw-1) > 1e-12 {
		t.Fatalf("rectangular ENBW = %v, want 1", enbw)
	}

	hann := Generate(TypeHann, 4096, WithPeriodic())

	enbw, err = EquivalentNoiseBandwidth(hann)
	if err != nil {
		t.Fatalf("ENBW error: %v", err)
	}

	if math.Abs(enbw-1.5) > 1e-3 {
		t.Fatalf("Hann ENBW = %v, want ~1.5", enbw)
	}

	_, err = EquivalentNoiseBandwidth(nil)
	if err == nil {
		t.Fatalf("expected error for empty coefficients")
	}
}
