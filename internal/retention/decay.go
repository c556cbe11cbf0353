// Package retention implements the exponential retention-decay model that
// drives review scheduling: a piecewise daily decay-rate table, a forward
// simulation that finds the next review date, and forgetting-curve
// reconstruction from raw review history.
package retention

// decayBucket maps elapsed days below an upper bound to a daily decay rate.
type decayBucket struct {
	upperDays int
	rate      float64
}

// Daily decay rates by elapsed time since the reference date. Retention is
// multiplied by exp(-rate) once per simulated day. Rates only ever shrink
// as the reference date recedes, which is what stretches review intervals
// without any explicit multiplier state.
var decayBuckets = []decayBucket{
	{upperDays: 7, rate: 0.45},
	{upperDays: 14, rate: 0.18},
	{upperDays: 28, rate: 0.09},
	{upperDays: 56, rate: 0.035},
	{upperDays: 112, rate: 0.015},
}

// Tail of the table: beyond tailPeriod days the rate halves every time the
// period doubles (112 -> 224 -> 448 -> ...).
const (
	tailPeriod = 112
	tailRate   = 0.015
)

// DecayRate returns the daily retention-decay rate for a word whose decay
// reference date lies elapsedDays in the past. Pure and total over
// non-negative inputs; negative inputs are treated as zero.
func DecayRate(elapsedDays int) float64 {
	if elapsedDays < 0 {
		elapsedDays = 0
	}
	for _, b := range decayBuckets {
		if elapsedDays < b.upperDays {
			return b.rate
		}
	}
	rate := tailRate
	for period := tailPeriod; period <= elapsedDays; period *= 2 {
		rate /= 2
	}
	return rate
}
