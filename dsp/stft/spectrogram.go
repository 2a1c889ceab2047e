package stft

// Spectrogram is a complex time-frequency matrix indexed [bin, frame].
//
// It stores only the non-redundant half of a real-input transform:
// NumBins() == windowSize/2 + 1. Data is laid out bin-major, so the flat
// slice returned by Data() groups all frames of bin 0 first, then bin 1,
// and so on.
type Spectrogram struct {
	numBins   int
	numFrames int
	data      []complex128
}

// NewSpectrogram allocates a zeroed spectrogram of the given shape.
func NewSpectrogram(numBins, numFrames int) *Spectrogram {
	if numBins < 0 {
		numBins = 0
	}
	if numFrames < 0 {
		numFrames = 0
	}

	return &Spectrogram{
		numBins:   numBins,
		numFrames: numFrames,
		data:      make([]complex128, numBins*numFrames),
	}
}

// FromData wraps a bin-major flat slice as a spectrogram.
// len(data) must equal numBins*numFrames.
func FromData(numBins, numFrames int, data []complex128) (*Spectrogram, error) {
	if numBins < 0 || numFrames < 0 || len(data) != numBins*numFrames {
		return nil, ErrShapeMismatch
	}

	return &Spectrogram{numBins: numBins, numFrames: numFrames, data: data}, nil
}

// NumBins returns the frequency bin count.
func (s *Spectrogram) NumBins() int { return s.numBins }

// NumFrames returns the time frame count.
func (s *Spectrogram) NumFrames() int { return s.numFrames }

// At returns the value at the given bin and frame.
func (s *Spectrogram) At(bin, frame int) complex128 {
	return s.data[bin*s.numFrames+frame]
}

// Set stores a value at the given bin and frame.
func (s *Spectrogram) Set(bin, frame int, v complex128) {
	s.data[bin*s.numFrames+frame] = v
}

// Data returns the backing bin-major flat slice.
//
// The slice is shared with the spectrogram; callers that need an independent
// copy should use Clone.
func (s *Spectrogram) Data() []complex128 { return s.data }

// Clone returns a deep copy of the spectrogram.
func (s *Spectrogram) Clone() *Spectrogram {
	out := NewSpectrogram(s.numBins, s.numFrames)
	copy(out.data, s.data)
	return out
}
