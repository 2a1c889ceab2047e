// Package pca decomposes mono audio into variance-ranked principal
// components via singular value decomposition of the STFT magnitude matrix.
// Each component is independently reconstructed as a time-aligned waveform
// using the phase of the original signal.
package pca

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/cwbudde/algo-pca/dsp/spectrum"
	"github.com/cwbudde/algo-pca/dsp/stft"
)

// DecomposeSpectrogram ranks the spectrogram's magnitude variance directions
// by SVD and re-synthesizes the top nComponents as complex spectrograms.
//
// The magnitude matrix is centered by subtracting the per-bin mean across
// frames before factorization. For each retained component i (descending
// singular value), eigenvalue_i = sigma_i^2 and varianceRatio_i is its share
// of the total sum of squared singular values in percent (0 when the total
// is zero, never NaN). The component magnitude is the rank-1 outer product
// U[:,i]*sigma_i*V[i,:] plus eigenvalue_i/total times the mean profile, then
// taken by absolute value. Adding the mean share back is a deliberate
// heuristic that keeps low-rank components audible; it is not a PCA
// reconstruction identity and the component magnitudes do not sum back to
// the original. Each component is recombined with the original, unmodified
// phase.
//
// nComponents is clamped to the number of singular values. A spectrogram
// with zero frames yields zero components.
func DecomposeSpectrogram(spec *stft.Spectrogram, nComponents int) ([]*stft.Spectrogram, []float64, []float64, error) {
	if spec == nil || nComponents <= 0 {
		return nil, nil, nil, fmt.Errorf("%w: spectrogram and component count required", ErrInvalidInput)
	}

	numBins := spec.NumBins()
	numFrames := spec.NumFrames()
	if numBins == 0 || numFrames == 0 {
		return nil, nil, nil, nil
	}

	mag, phase := spectrum.Polar(spec.Data())

	// Per-bin mean magnitude across frames.
	mean := make([]float64, numBins)
	for bin := range numBins {
		row := mag[bin*numFrames : (bin+1)*numFrames]
		sum := 0.0
		for _, v := range row {
			sum += v
		}
		mean[bin] = sum / float64(numFrames)
	}

	centered := make([]float64, len(mag))
	for bin := range numBins {
		m := mean[bin]
		for frame := range numFrames {
			idx := bin*numFrames + frame
			centered[idx] = mag[idx] - m
		}
	}

	var svd mat.SVD
	if !svd.Factorize(mat.NewDense(numBins, numFrames, centered), mat.SVDThin) {
		return nil, nil, nil, fmt.Errorf("%w: SVD did not converge", ErrDecomposition)
	}

	singular := svd.Values(nil)

	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)

	n := min(nComponents, len(singular))

	totalVariance := 0.0
	for _, s := range singular {
		totalVariance += s * s
	}

	components := make([]*stft.Spectrogram, 0, n)
	eigenvalues := make([]float64, 0, n)
	varianceRatios := make([]float64, 0, n)

	compMag := make([]float64, len(mag))
	for i := range n {
		sigma := singular[i]
		eigenvalue := sigma * sigma

		ratio := 0.0
		scale := 0.0
		if totalVariance > 0 {
			scale = eigenvalue / totalVariance
			ratio = scale * 100
		}

		for bin := range numBins {
			uv := u.At(bin, i) * sigma
			meanShare := scale * mean[bin]
			for frame := range numFrames {
				compMag[bin*numFrames+frame] = math.Abs(uv*v.At(frame, i) + meanShare)
			}
		}

		comp, err := stft.FromData(numBins, numFrames, spectrum.FromPolar(compMag, phase))
		if err != nil {
			return nil, nil, nil, fmt.Errorf("%w: %s", ErrDecomposition, err)
		}

		components = append(components, comp)
		eigenvalues = append(eigenvalues, eigenvalue)
		varianceRatios = append(varianceRatios, ratio)
	}

	return components, eigenvalues, varianceRatios, nil
}

// Decompose runs the full pipeline: forward STFT, spectral PCA, and
// per-component inverse STFT.
//
// Every component waveform has exactly len(samples) samples, which is what
// makes direct sample-wise mixing of components valid. The returned result
// is immutable and safe to share across goroutines.
func Decompose(samples []float64, sampleRate, nComponents, windowSize, hopSize int) (*Result, error) {
	if len(samples) == 0 {
		return nil, fmt.Errorf("%w: empty sample buffer", ErrInvalidInput)
	}

	if sampleRate <= 0 {
		return nil, fmt.Errorf("%w: sample rate must be > 0: %d", ErrInvalidInput, sampleRate)
	}

	if nComponents <= 0 {
		return nil, fmt.Errorf("%w: component count must be > 0: %d", ErrInvalidInput, nComponents)
	}

	transform, err := stft.New(windowSize, hopSize)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	spec, err := transform.Forward(samples)
	if err != nil {
		return nil, err
	}

	componentSpecs, eigenvalues, varianceRatios, err := DecomposeSpectrogram(spec, nComponents)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Components: make([]Component, len(componentSpecs)),
		SampleRate: sampleRate,
	}

	for i, compSpec := range componentSpecs {
		waveform, err := transform.Inverse(compSpec, len(samples))
		if err != nil {
			return nil, err
		}

		result.Components[i] = Component{
			Index:         i,
			Eigenvalue:    eigenvalues[i],
			VarianceRatio: varianceRatios[i],
			Waveform:      waveform,
		}
	}

	return result, nil
}
