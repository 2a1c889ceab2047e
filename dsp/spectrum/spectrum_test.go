package spectrum

import (
	"math"
	"testing"
)

func TestMagnitudePhasePower(t *testing.T) {
	bins := []complex128{3 + 4i, -1 - 1i, 0}

	mag := Magnitude(bins)
	if len(mag) != len(bins) {
		t.Fatalf("Magnitude length mismatch: got=%d want=%d", len(mag), len(bins))
	}

	if math.Abs(mag[0]-5) > 1e-12 {
		t.Fatalf("Magnitude[0]=%f want=5", mag[0])
	}

	pow := Power(bins)
	if math.Abs(pow[0]-25) > 1e-12 {
		t.Fatalf("Power[0]=%f want=25", pow[0])
	}

	phase := Phase(bins)
	if math.Abs(phase[0]-math.Atan2(4, 3)) > 1e-12 {
		t.Fatalf("Phase[0]=%f mismatch", phase[0])
	}
}

func TestPolarRoundTrip(t *testing.T) {
	bins := []complex128{1 + 2i, -3 + 0.5i, 0 - 4i, 2, 0}

	mag, phase := Polar(bins)
	if len(mag) != len(bins) || len(phase) != len(bins) {
		t.Fatalf("Polar length mismatch")
	}

	back := FromPolar(mag, phase)
	for i := range bins {
		if math.Abs(real(back[i])-real(bins[i])) > 1e-12 ||
			math.Abs(imag(back[i])-imag(bins[i])) > 1e-12 {
			t.Fatalf("round trip mismatch at %d: got=%v want=%v", i, back[i], bins[i])
		}
	}
}

func TestEmptyInputs(t *testing.T) {
	if Magnitude(nil) != nil {
		t.Fatalf("Magnitude(nil) should be nil")
	}

	mag, phase := Polar(nil)
	if mag != nil || phase != nil {
		t.Fatalf("Polar(nil) should be nil, nil")
	}

	if FromPolar(nil, nil) != nil {
		t.Fatalf("FromPolar(nil, nil) should be nil")
	}
}
