// Package mix combines component waveforms by weighted summation with a
// global peak-normalization guard against clipping.
package mix

import (
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// Mix sums equal-length component waveforms scaled by their volumes.
//
// Components and volumes are paired positionally; unmatched entries on
// either side contribute nothing. If the summed peak exceeds 1.0, the whole
// buffer is scaled once by 1/peak, preserving the relative balance between
// samples (no per-sample limiting). An empty component list yields nil.
func Mix(components [][]float64, volumes []float64) []float64 {
	if len(components) == 0 {
		return nil
	}

	length := len(components[0])
	mixed := make([]float64, length)
	scaled := make([]float64, length)

	n := min(len(components), len(volumes))
	for k := range n {
		component := components[k]
		if len(component) > length {
			component = component[:length]
		}

		vecmath.ScaleBlock(scaled[:len(component)], component, volumes[k])
		vecmath.AddBlockInPlace(mixed[:len(component)], scaled[:len(component)])
	}

	peak := 0.0
	for _, v := range mixed {
		if a := math.Abs(v); a > peak {
			peak = a
		}
	}

	if peak > 1.0 {
		inv := 1 / peak
		for i := range mixed {
			mixed[i] *= inv
		}
	}

	return mixed
}
