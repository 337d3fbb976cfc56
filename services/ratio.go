package services

import "math"

// Ratio divides num by den rounded to 6 decimal places. A zero denominator yields
// exactly 0, never NaN or Inf.
func Ratio(num, den uint64) float64 {
	if den == 0 {
		return 0
	}
	return math.Round(float64(num)/float64(den)*1e6) / 1e6
}
