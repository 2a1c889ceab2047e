package mix

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-pca/internal/testutil"
)

func TestMixIdentity(t *testing.T) {
	c := testutil.DeterministicSine(440, 44100, 0.9, 4096)

	out := Mix([][]float64{c}, []float64{1.0})

	testutil.RequireSliceNearlyEqual(t, out, c, 1e-12)
}

func TestMixWeightedSum(t *testing.T) {
	a := testutil.DC(0.2, 100)
	b := testutil.DC(0.1, 100)

	out := Mix([][]float64{a, b}, []float64{2.0, -1.0})

	testutil.RequireSliceNearlyEqual(t, out, testutil.DC(0.3, 100), 1e-12)
}

func TestMixPositionalPairing(t *testing.T) {
	a := testutil.DC(0.25, 64)
	b := testutil.DC(0.5, 64)

	// Extra component without a volume contributes nothing.
	out := Mix([][]float64{a, b}, []float64{1.0})
	testutil.RequireSliceNearlyEqual(t, out, a, 1e-12)

	// Extra volumes without components are ignored.
	out = Mix([][]float64{a}, []float64{1.0, 5.0, 7.0})
	testutil.RequireSliceNearlyEqual(t, out, a, 1e-12)
}

func TestMixPeakNormalization(t *testing.T) {
	c := testutil.DeterministicSine(100, 8000, 0.9, 2048)

	out := Mix([][]float64{c, c}, []float64{1.0, 1.0})

	peak := testutil.MaxAbs(out)
	if peak > 1.0+1e-12 {
		t.Fatalf("peak = %v, want <= 1", peak)
	}

	if math.Abs(peak-1.0) > 1e-9 {
		t.Fatalf("peak = %v, expected normalization to exactly 1", peak)
	}

	// Relative balance is preserved: the output is a scaled copy, not a
	// per-sample limited one.
	scale := 1.0 / 1.8
	for i := range out {
		want := c[i] * 1.8 * scale
		if math.Abs(out[i]-want) > 1e-9 {
			t.Fatalf("index %d: got %v, want %v", i, out[i], want)
		}
	}
}

func TestMixNoNormalizationBelowPeak(t *testing.T) {
	c := testutil.DeterministicSine(250, 8000, 0.4, 1024)

	out := Mix([][]float64{c, c}, []float64{1.0, 1.0})

	for i := range out {
		if math.Abs(out[i]-2*c[i]) > 1e-12 {
			t.Fatalf("index %d: got %v, want %v", i, out[i], 2*c[i])
		}
	}
}

func TestMixEmpty(t *testing.T) {
	if Mix(nil, []float64{1}) != nil {
		t.Fatalf("expected nil for empty component list")
	}

	out := Mix([][]float64{testutil.DC(0.5, 16)}, nil)
	testutil.RequireSliceNearlyEqual(t, out, testutil.DC(0, 16), 0)
}
