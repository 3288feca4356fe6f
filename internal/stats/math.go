package stats

import (
	"math"
	"slices"

	"ticketlens/internal/scalar"
)

// Percentiles are resolution-time levels in days. P85 is the usual service
// level expectation quoted to stakeholders.
type Percentiles struct {
	P50 float64 `json:"p50"`
	P85 float64 `json:"p85"`
	P95 float64 `json:"p95"`
}

// MedianCount finds the median value in a slice of counts.
func MedianCount(values []int) float64 {
	if len(values) == 0 {
		return 0
	}

	// Work on a copy to avoid mutating the original
	temp := slices.Clone(values)
	slices.Sort(temp)

	n := len(temp)
	if n%2 == 1 {
		return float64(temp[n/2])
	}
	return float64(temp[n/2-1]+temp[n/2]) / 2.0
}

// Median finds the median value in a slice of day spans.
func Median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	temp := slices.Clone(values)
	slices.Sort(temp)

	n := len(temp)
	if n%2 == 1 {
		return temp[n/2]
	}
	return (temp[n/2-1] + temp[n/2]) / 2.0
}

// PercentilesOf ranks values by index, the way aging thresholds are read off a
// sorted history: the q-th level is sorted[floor(n*q)].
func PercentilesOf(values []float64) Percentiles {
	if len(values) == 0 {
		return Percentiles{}
	}
	sorted := slices.Clone(values)
	slices.Sort(sorted)

	at := func(q float64) float64 {
		i := int(math.Floor(float64(len(sorted)) * q))
		if i >= len(sorted) {
			i = len(sorted) - 1
		}
		return scalar.Round1(sorted[i])
	}
	return Percentiles{P50: at(0.50), P85: at(0.85), P95: at(0.95)}
}
