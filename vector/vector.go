// Package vector implements the pure numeric kernel over fixed-dimension
// real vectors: cosine similarity, Euclidean distance, normalization, and
// weighted accumulation. Cosine, Norm, and Normalize are built on
// gonum/floats; Euclidean and AddWeighted are plain loops.
package vector

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Dim is the compile-time vector width used throughout the overlay.
const Dim = 8

// NormBias keeps normalize from overflowing on the zero vector.
const NormBias = 1e-8

// Cosine returns the cosine similarity of a and b. Either vector being zero
// yields 0 rather than NaN.
func Cosine(a, b []float64) float64 {
	normA := floats.Norm(a, 2)
	normB := floats.Norm(b, 2)
	if normA == 0 || normB == 0 {
		return 0
	}
	return floats.Dot(a, b) / (normA * normB)
}

// Euclidean returns the Euclidean distance between a and b.
func Euclidean(a, b []float64) float64 {
	sum := 0.0
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum)
}

// Normalize divides v by its norm in place, biased so the zero vector
// doesn't produce Inf/NaN components.
func Normalize(v []float64) {
	n := floats.Norm(v, 2)
	scale := 1.0 / (n + NormBias)
	floats.Scale(scale, v)
}

// AddWeighted performs dst += w*src elementwise.
func AddWeighted(dst, src []float64, w float64) {
	for i := range dst {
		dst[i] += w * src[i]
	}
}

// Norm returns the Euclidean norm of v.
func Norm(v []float64) float64 {
	return floats.Norm(v, 2)
}
