package previewcache

import "math"

// DefaultQuantizationRate is the key grid in frames per second. It is fixed
// and independent of the source's native rate: quantizing by the native rate
// would collide keys whenever the native rate is below the display refresh
// rate.
const DefaultQuantizationRate = 60.0

// Quantize maps a time in seconds onto the integer key grid.
func Quantize(at, rate float64) int64 {
	if rate <= 0 {
		rate = DefaultQuantizationRate
	}
	return int64(math.Round(at * rate))
}

// KeyTime maps a key back to the center of its grid cell in seconds.
func KeyTime(key int64, rate float64) float64 {
	if rate <= 0 {
		rate = DefaultQuantizationRate
	}
	return float64(key) / rate
}
