package utils

import (
	"math"
	"testing"
)

func Test_ClampUnit(t *testing.T) {
	tests := []struct {
		in       float32
		expected float32
	}{
		{0.0, 0.0},
		{0.5, 0.5},
		{-0.5, -0.5},
		{1.5, 1.0},
		{-7.0, -1.0},
		{float32(math.NaN()), 0.0},
		{float32(math.Inf(1)), 1.0},
	}

	for _, tt := range tests {
		if got := ClampUnit(tt.in); got != tt.expected {
			t.Errorf("ClampUnit(%f) = %f, expected %f", tt.in, got, tt.expected)
		}
	}
}

func Test_ToPCM16(t *testing.T) {
	tests := []struct {
		in       float32
		expected int16
	}{
		{0.0, 0},
		{1.0, 32767},
		{-1.0, -32768},
		{2.0, 32767},
		{-2.0, -32768},
		{0.5, 16384},
		{-0.5, -16384},
	}

	for _, tt := range tests {
		if got := ToPCM16(tt.in); got != tt.expected {
			t.Errorf("ToPCM16(%f) = %d, expected %d", tt.in, got, tt.expected)
		}
	}
}

func Test_ToDecibels(t *testing.T) {
	if db := ToDecibels(1.0); db != 0.0 {
		t.Fatalf("1.0 should be 0 dBFS, got %f", db)
	}
	if db := ToDecibels(0.5); math.Abs(db-(-6.0206)) > 0.001 {
		t.Fatalf("0.5 should be about -6.02 dBFS, got %f", db)
	}
	if db := ToDecibels(0); !math.IsInf(db, -1) {
		t.Fatalf("Silence should be -Inf, got %f", db)
	}
}

func Test_Assert(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("Assert(false) did not panic")
		}
	}()
	Assert(true, "never")
	Assert(false, "value was %d", 3)
}
