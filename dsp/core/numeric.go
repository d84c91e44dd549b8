package core

import "math"

const defaultEpsilon = 1e-12

// q31Scale converts a signed 31-bit fixed-point fraction to [-1, 1).
const q31Scale = 1.0 / 2147483648.0

// Clamp limits value to the inclusive range [min, max].
func Clamp(value, min, max float64) float64 {
	if min > max {
		min, max = max, min
	}

	if value < min {
		return min
	}

	if value > max {
		return max
	}

	return value
}

// NearlyEqual reports whether a and b are equal within eps.
func NearlyEqual(a, b, eps float64) bool {
	if eps <= 0 {
		eps = defaultEpsilon
	}

	diff := math.Abs(a - b)
	if diff <= eps {
		return true
	}

	largest := math.Max(math.Abs(a), math.Abs(b))
	if largest == 0 {
		return diff <= eps
	}

	return diff/largest <= eps
}

// FlushDenormals converts tiny denormal-like values to exact zero.
// This can reduce denormal-related CPU slowdowns in hot DSP loops.
func FlushDenormals(x float64) float64 {
	const epsilon = 1e-30
	if x > -epsilon && x < epsilon {
		return 0
	}

	return x
}

// Q31ToFloat64 converts a q31 fixed-point control value to floating point.
// Non-negative inputs map onto [0, 1), the normalized unit interval used by
// host control messages; negative inputs map onto [-1, 0).
func Q31ToFloat64(v int32) float64 {
	return float64(v) * q31Scale
}

// Float64ToQ31 converts a floating-point value in [-1, 1) to q31 fixed point.
// Values outside the representable range are saturated.
func Float64ToQ31(v float64) int32 {
	scaled := v / q31Scale
	if scaled >= math.MaxInt32 {
		return math.MaxInt32
	}

	if scaled <= math.MinInt32 {
		return math.MinInt32
	}

	return int32(scaled)
}

// DBToLinear converts dB to linear amplitude (20*log10 convention).
func DBToLinear(db float64) float64 {
	return math.Pow(10, db/20)
}

// LinearToDB converts linear amplitude to dB (20*log10 convention).
// Returns -Inf for zero and NaN for negative values.
func LinearToDB(linear float64) float64 {
	if linear < 0 {
		return math.NaN()
	}

	if linear == 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(linear)
}
