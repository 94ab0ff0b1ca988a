package telemetry

import (
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"
)

// Summary describes a set of durations.
type Summary struct {
	Samples int
	Mean    time.Duration
	StdDev  time.Duration
	Min     time.Duration
	Max     time.Duration
	P50     time.Duration
	P95     time.Duration
}

// Summarize computes a Summary over durations given in nanoseconds.
// vals is sorted in place.
func Summarize(vals []float64) Summary {
	if len(vals) == 0 {
		return Summary{}
	}
	sort.Float64s(vals)

	s := Summary{
		Samples: len(vals),
		Mean:    time.Duration(stat.Mean(vals, nil)),
		Min:     time.Duration(vals[0]),
		Max:     time.Duration(vals[len(vals)-1]),
		P50:     time.Duration(stat.Quantile(0.5, stat.Empirical, vals, nil)),
		P95:     time.Duration(stat.Quantile(0.95, stat.Empirical, vals, nil)),
	}
	if len(vals) > 1 {
		s.StdDev = time.Duration(stat.StdDev(vals, nil))
	}
	return s
}
