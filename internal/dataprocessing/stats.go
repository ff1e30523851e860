package dataprocessing

import (
	"math"

	"littercli/pkg/contracts/domain"
)

// nanMean returns the mean of the non-missing values, or the missing
// sentinel when none remain.
func nanMean(values []float64) float64 {
	var sum float64
	var n int
	for _, v := range values {
		if domain.IsMissing(v) {
			continue
		}
		sum += v
		n++
	}
	if n == 0 {
		return domain.Missing()
	}
	return sum / float64(n)
}

// nanSD returns the sample standard deviation (n−1 denominator) of the
// non-missing values; missing when fewer than two remain.
func nanSD(values []float64) float64 {
	mean := nanMean(values)
	if domain.IsMissing(mean) {
		return domain.Missing()
	}

	var sumSq float64
	var n int
	for _, v := range values {
		if domain.IsMissing(v) {
			continue
		}
		d := v - mean
		sumSq += d * d
		n++
	}
	if n < 2 {
		return domain.Missing()
	}
	return math.Sqrt(sumSq / float64(n-1))
}
