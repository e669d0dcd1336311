package utils

import (
	"fmt"
	"math"
)

// Panics with the formatted message if cond is false
func Assert(cond bool, format string, args ...interface{}) {
	if !cond {
		panic(fmt.Sprintf("Assertion failed: "+format, args...))
	}
}

// Clamps to -1.0 .. 1.0. NaN becomes 0.
func ClampUnit(v float32) float32 {
	if v != v {
		return 0
	}
	if v > 1.0 {
		return 1.0
	}
	if v < -1.0 {
		return -1.0
	}
	return v
}

// -1.0 .. 1.0 => -32768 .. 32767
func ToPCM16(v float32) int16 {
	v = ClampUnit(v)
	if v >= 0 {
		return int16(math.Round(float64(v) * 32767.0))
	}
	return int16(math.Round(float64(v) * 32768.0))
}

// Linear amplitude to dBFS. Silence is -Inf.
func ToDecibels(amplitude float64) float64 {
	if amplitude <= 0 {
		return math.Inf(-1)
	}
	return 20.0 * math.Log10(amplitude)
}
