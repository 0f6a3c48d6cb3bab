package audioengine

import "math"

func clamp(v, lo, hi float64) float64 {
	if v < lo || math.IsInf(v, -1) {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func mixMono(l, r float64) float64 {
	return (l + r) / 2
}

// Boost menormalisasi nilai 0-255 lalu mengalikan gain, maksimum 1.
func Boost(value, gain float64) float64 {
	return math.Min(value/255*gain, 1)
}

// Clamp membatasi v ke [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return clamp(v, lo, hi)
}
