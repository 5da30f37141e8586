package brain

import (
	"math"
)

// Rand is the source of randomness the engine draws from.
// *math/rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
	Float64() float64
}

// clamp restricts a value to a given range [minVal, maxVal].
func clamp(value, minVal, maxVal float64) float64 {
	return math.Max(minVal, math.Min(value, maxVal))
}

// clampInt restricts an integer to [minVal, maxVal].
func clampInt(value, minVal, maxVal int) int {
	if value < minVal {
		return minVal
	}
	if value > maxVal {
		return maxVal
	}
	return value
}

// randSigned draws uniformly from [-power, power).
func randSigned(rng Rand, power float64) float64 {
	return (rng.Float64()*2 - 1) * power
}

// randBool is a fair coin.
func randBool(rng Rand) bool {
	return rng.Intn(2) == 0
}

// chance reports whether a percentage coin in [0,100] succeeds.
func chance(rng Rand, percent float64) bool {
	return rng.Float64()*100 < percent
}

// PowInt raises x to an integer power by repeated squaring. Negative powers
// return the reciprocal.
func PowInt(x float64, n int) float64 {
	if n < 0 {
		return 1 / PowInt(x, -n)
	}
	result := 1.0
	for n > 0 {
		if n&1 == 1 {
			result *= x
		}
		x *= x
		n >>= 1
	}
	return result
}
