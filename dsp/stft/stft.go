// Package stft implements the short-time Fourier transform and its
// weighted overlap-add inverse for mono float64 waveforms.
package stft

import (
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-pca/dsp/window"
)

// normFloor is the smallest accumulated window energy that still gets
// normalized during overlap-add synthesis. Samples whose accumulated energy
// is at or below this floor are left unnormalized, so regions with incomplete
// window coverage (the first and last window of a signal) keep reduced energy.
const normFloor = 1e-8

// Transform computes forward and inverse short-time Fourier transforms for a
// fixed window size and hop size.
//
// The analysis and synthesis window is a periodic Hann window. A Transform is
// safe for concurrent use only if each goroutine uses its own instance; the
// internal FFT scratch buffers are not synchronized.
type Transform struct {
	windowSize int
	hopSize    int

	plan         *algofft.Plan[complex128]
	windowCoeffs []float64

	frame     []complex128
	timeFrame []complex128
}

// New creates a Transform. windowSize must be a positive power of two,
// hopSize must be positive.
func New(windowSize, hopSize int) (*Transform, error) {
	if !isPowerOf2(windowSize) {
		return nil, fmt.Errorf("%w: %d", ErrInvalidWindowSize, windowSize)
	}

	if hopSize <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidHopSize, hopSize)
	}

	plan, err := algofft.NewPlan64(windowSize)
	if err != nil {
		return nil, fmt.Errorf("stft: failed to create FFT plan: %w", err)
	}

	return &Transform{
		windowSize:   windowSize,
		hopSize:      hopSize,
		plan:         plan,
		windowCoeffs: window.Generate(window.TypeHann, windowSize, window.WithPeriodic()),
		frame:        make([]complex128, windowSize),
		timeFrame:    make([]complex128, windowSize),
	}, nil
}

// WindowSize returns the analysis window length in samples.
func (t *Transform) WindowSize() int { return t.windowSize }

// HopSize returns the hop between adjacent frames in samples.
func (t *Transform) HopSize() int { return t.hopSize }

// NumBins returns the retained bin count, windowSize/2 + 1.
func (t *Transform) NumBins() int { return t.windowSize/2 + 1 }

// NumFrames returns the frame count produced for the given sample count.
//
// Inputs shorter than one window produce zero frames; this is a documented
// boundary case, not an error.
func (t *Transform) NumFrames(sampleCount int) int {
	if sampleCount < t.windowSize {
		return 0
	}

	return (sampleCount-t.windowSize)/t.hopSize + 1
}

// Forward computes the STFT of samples.
//
// Each frame is multiplied by the analysis window and transformed; only bins
// 0..windowSize/2 are retained (real-input conjugate symmetry). The resulting
// spectrogram has NumBins() rows and NumFrames(len(samples)) columns.
func (t *Transform) Forward(samples []float64) (*Spectrogram, error) {
	numFrames := t.NumFrames(len(samples))
	numBins := t.NumBins()
	spec := NewSpectrogram(numBins, numFrames)

	for frame := range numFrames {
		start := frame * t.hopSize

		for i := range t.windowSize {
			t.frame[i] = complex(samples[start+i]*t.windowCoeffs[i], 0)
		}

		err := t.plan.Forward(t.frame, t.frame)
		if err != nil {
			return nil, fmt.Errorf("stft: forward FFT failed: %w", err)
		}

		for bin := range numBins {
			spec.Set(bin, frame, t.frame[bin])
		}
	}

	return spec, nil
}

// Inverse reconstructs a waveform of length outputLength from a spectrogram
// via weighted overlap-add.
//
// Per frame, the full symmetric spectrum is rebuilt by conjugate-mirroring
// bins 1..windowSize/2-1, inverse transformed, multiplied by the synthesis
// window and accumulated into the output; the squared window is accumulated
// into a normalization buffer. Frames that would extend past outputLength are
// skipped. Each output sample is divided by its accumulated window energy
// wherever that exceeds a small floor; below the floor the sample is left as
// accumulated, so boundary regions show reduced energy by design.
func (t *Transform) Inverse(spec *Spectrogram, outputLength int) ([]float64, error) {
	if spec == nil {
		return nil, ErrNilSpectrogram
	}

	if spec.NumBins() != t.NumBins() {
		return nil, fmt.Errorf("%w: got %d bins, want %d", ErrShapeMismatch, spec.NumBins(), t.NumBins())
	}

	if outputLength < 0 {
		outputLength = 0
	}

	output := make([]float64, outputLength)
	windowSum := make([]float64, outputLength)
	half := t.windowSize / 2

	for frame := range spec.NumFrames() {
		start := frame * t.hopSize
		if start+t.windowSize > outputLength {
			break
		}

		for bin := 0; bin <= half; bin++ {
			t.frame[bin] = spec.At(bin, frame)
		}

		// Mirror for real-valued IFFT.
		for bin := 1; bin < half; bin++ {
			v := spec.At(bin, frame)
			t.frame[t.windowSize-bin] = complex(real(v), -imag(v))
		}

		err := t.plan.Inverse(t.timeFrame, t.frame)
		if err != nil {
			return nil, fmt.Errorf("stft: inverse FFT failed: %w", err)
		}

		for i := range t.windowSize {
			w := t.windowCoeffs[i]
			output[start+i] += real(t.timeFrame[i]) * w
			windowSum[start+i] += w * w
		}
	}

	for i := range output {
		if windowSum[i] > normFloor {
			output[i] /= windowSum[i]
		}
	}

	return output, nil
}

func isPowerOf2(v int) bool {
	return v > 0 && (v&(v-1)) == 0
}
