package stft

import "errors"

var (
	// ErrInvalidWindowSize indicates a window size that is not a positive power of two.
	ErrInvalidWindowSize = errors.New("stft: window size must be a power of two and > 0")

	// ErrInvalidHopSize indicates a non-positive hop size.
	ErrInvalidHopSize = errors.New("stft: hop size must be > 0")

	// ErrNilSpectrogram indicates a nil spectrogram argument.
	ErrNilSpectrogram = errors.New("stft: spectrogram must not be nil")

	// ErrShapeMismatch indicates spectrogram dimensions that do not match the transform.
	ErrShapeMismatch = errors.New("stft: spectrogram shape mismatch")
)
