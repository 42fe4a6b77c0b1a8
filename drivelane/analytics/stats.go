package analytics

import (
	"math"
	"sort"
)

// Median returns the middle value of the sample, averaging the two
// central values for even-sized input. Returns 0 for empty input.
func Median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}

// Mean returns the arithmetic mean, 0 for empty input.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// Dispersion returns the coefficient of variation, the standard
// deviation relative to the mean. Returns 0 when the mean is 0 or the
// sample has fewer than two values.
func Dispersion(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}

	mean := Mean(values)
	if mean == 0 {
		return 0
	}

	var sumSquares float64
	for _, v := range values {
		d := v - mean
		sumSquares += d * d
	}
	stddev := math.Sqrt(sumSquares / float64(len(values)-1))

	return stddev / mean
}

// MinMax returns the smallest and largest values, both 0 for empty input.
func MinMax(values []float64) (float64, float64) {
	if len(values) == 0 {
		return 0, 0
	}

	min, max := values[0], values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max
}
