package pca

// Component is one principal component of a decomposition, reconstructed as
// a time-domain waveform of the same length as the source signal.
type Component struct {
	// Index is the 0-based rank of the component (descending eigenvalue).
	Index int

	// Eigenvalue is the squared singular value of the component.
	Eigenvalue float64

	// VarianceRatio is the component's share of total variance in percent.
	VarianceRatio float64

	// Waveform holds the reconstructed mono samples.
	Waveform []float64
}

// Result owns the ordered components of one decomposition.
//
// A Result is immutable after creation and may be shared by reference across
// goroutines without synchronization.
type Result struct {
	Components []Component
	SampleRate int
}

// Eigenvalues returns the eigenvalue of each component in rank order.
func (r *Result) Eigenvalues() []float64 {
	out := make([]float64, len(r.Components))
	for i, c := range r.Components {
		out[i] = c.Eigenvalue
	}
	return out
}

// VarianceRatios returns the variance percentage of each component in rank order.
func (r *Result) VarianceRatios() []float64 {
	out := make([]float64, len(r.Components))
	for i, c := range r.Components {
		out[i] = c.VarianceRatio
	}
	return out
}

// Waveforms returns the component waveforms in rank order.
//
// The returned slices share backing storage with the result; callers must
// treat them as read-only.
func (r *Result) Waveforms() [][]float64 {
	out := make([][]float64, len(r.Components))
	for i, c := range r.Components {
		out[i] = c.Waveform
	}
	return out
}
