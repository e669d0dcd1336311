package dsp

import (
	"fmt"
	"math"
)

// DebugFlags collects signal problems seen by a dac~ while running. Values
// are written unchanged; the flags only count.
type DebugFlags struct {
	LeftOverflowCount  int // |left| > 1.0
	RightOverflowCount int // |right| > 1.0
	NaNCount           int // NaN or Inf on either channel

	LeftPeak  float64
	RightPeak float64
}

func (df *DebugFlags) Reset() {
	df.LeftOverflowCount = 0
	df.RightOverflowCount = 0
	df.NaNCount = 0
	df.LeftPeak = 0
	df.RightPeak = 0
}

func (df *DebugFlags) Check(left float32, right float32) {
	l := float64(left)
	r := float64(right)

	if math.IsNaN(l) || math.IsInf(l, 0) || math.IsNaN(r) || math.IsInf(r, 0) {
		df.NaNCount += 1
		return
	}

	l = math.Abs(l)
	r = math.Abs(r)
	if l > 1.0 {
		df.LeftOverflowCount += 1
	}
	if r > 1.0 {
		df.RightOverflowCount += 1
	}
	if l > df.LeftPeak {
		df.LeftPeak = l
	}
	if r > df.RightPeak {
		df.RightPeak = r
	}
}

func (df *DebugFlags) HasProblems() bool {
	return df.LeftOverflowCount > 0 || df.RightOverflowCount > 0 || df.NaNCount > 0
}

func (df *DebugFlags) String() string {
	return fmt.Sprintf("DebugFlags:\n"+
		" LeftOverflowCount = %d\n"+
		" RightOverflowCount = %d\n"+
		" NaNCount = %d\n"+
		" LeftPeak = %f\n"+
		" RightPeak = %f\n",
		df.LeftOverflowCount,
		df.RightOverflowCount,
		df.NaNCount,
		df.LeftPeak,
		df.RightPeak)
}
