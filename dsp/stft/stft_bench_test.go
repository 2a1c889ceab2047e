package stft

import (
	"testing"

	"github.com/cwbudde/algo-pca/internal/testutil"
)

func BenchmarkForward(b *testing.B) {
	tr, err := New(2048, 512)
	if err != nil {
		b.Fatal(err)
	}

	samples := testutil.DeterministicNoise(1, 0.8, 44100)

	b.ResetTimer()
	for range b.N {
		_, err := tr.Forward(samples)
		if err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkInverse(b *testing.B) {
	tr, err := New(2048, 512)
	if err != nil {
		b.Fatal(err)
	}

	samples := testutil.DeterministicNoise(1, 0.8, 44100)

	spec, err := tr.Forward(samples)
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for range b.N {
		_, err := tr.Inverse(spec, len(samples))
		if err != nil {
			b.Fatal(err)
		}
	}
}
