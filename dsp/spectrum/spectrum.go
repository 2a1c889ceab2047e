// Package spectrum provides helpers for working with complex spectra:
// magnitude, power and phase extraction, and polar recombination.
package spectrum

import (
	"math"
	"sync"

	"github.com/cwbudde/algo-vecmath"
)

// scratchBuf holds pooled scratch memory for complex-to-real unpacking.
type scratchBuf struct {
	data []float64
}

var scratchPool = sync.Pool{
	New: func() any { return &scratchBuf{} },
}

func getScratch(n int) (re, im []float64, buf *scratchBuf) {
	buf = scratchPool.Get().(*scratchBuf)
	need := 2 * n
	if cap(buf.data) < need {
		buf.data = make([]float64, need)
	} else {
		buf.data = buf.data[:need]
	}
	return buf.data[:n], buf.data[n:need], buf
}

func putScratch(buf *scratchBuf) {
	scratchPool.Put(buf)
}

// Magnitude returns |X[k]| for each complex spectrum bin.
//
// Scratch buffers are pooled internally, so in steady state this allocates
// only the output slice.
func Magnitude(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}

	out := make([]float64, len(in))
	re, im, buf := getScratch(len(in))

	for i, c := range in {
		re[i] = real(c)
		im[i] = imag(c)
	}

	vecmath.Magnitude(out, re, im)
	putScratch(buf)
	return out
}

// MagnitudeFromParts computes |X[k]| = sqrt(re[k]^2 + im[k]^2) into dst.
//
// This is the zero-allocation fast path for callers that already have real and
// imaginary parts in separate slices. All three slices must have the same length.
func MagnitudeFromParts(dst, re, im []float64) {
	vecmath.Magnitude(dst, re, im)
}

// Power returns |X[k]|^2 for each complex spectrum bin.
func Power(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}

	out := make([]float64, len(in))
	re, im, buf := getScratch(len(in))

	for i, c := range in {
		re[i] = real(c)
		im[i] = imag(c)
	}

	vecmath.Power(out, re, im)
	putScratch(buf)
	return out
}

// Phase returns arg(X[k]) for each complex spectrum bin in radians.
func Phase(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}

	out := make([]float64, len(in))
	for i, c := range in {
		out[i] = math.Atan2(imag(c), real(c))
	}
	return out
}

// Polar splits a complex spectrum into magnitude and phase planes.
//
// Magnitudes use the vecmath fast path; phases fall back to Atan2 per bin.
func Polar(in []complex128) (mag, phase []float64) {
	if len(in) == 0 {
		return nil, nil
	}

	mag = make([]float64, len(in))
	phase = make([]float64, len(in))
	re, im, buf := getScratch(len(in))

	for i, c := range in {
		re[i] = real(c)
		im[i] = imag(c)
		phase[i] = math.Atan2(imag(c), real(c))
	}

	vecmath.Magnitude(mag, re, im)
	putScratch(buf)
	return mag, phase
}

// FromPolar recombines magnitude and phase planes into a complex spectrum.
//
// mag and phase must have the same length.
func FromPolar(mag, phase []float64) []complex128 {
	n := min(len(mag), len(phase))
	if n == 0 {
		return nil
	}

	out := make([]complex128, n)
	for i := range out {
		s, c := math.Sincos(phase[i])
		out[i] = complex(mag[i]*c, mag[i]*s)
	}
	return out
}
