package common

import "math"

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// Ratio returns part/whole clamped to [0, 1]; zero when whole is not positive.
func Ratio(part, whole float64) float64 {
	if whole <= 0 {
		return 0
	}
	return math.Max(0, math.Min(1, part/whole))
}
