package dsp

import (
	"math"
)

const twoPi = 2.0 * math.Pi

// C-style fmodf: the result has the sign of x
func fmod32(x float32, y float32) float32 {
	return float32(math.Mod(float64(x), float64(y)))
}

//
// Cosine oscillator (osc~)
//

type SineOscillator struct {
	phase      float32 // radians, -2pi .. 2pi
	sampleRate float32
}

func (s *SineOscillator) Reset() {
	s.phase = 0
}

// Returns the output for the current sample and advances the phase by
// one sample at the given frequency.
func (s *SineOscillator) Update(freq float32) float32 {
	out := float32(math.Cos(float64(s.phase)))
	inc := float32(float64(freq) * twoPi / float64(s.sampleRate))
	s.phase = fmod32(s.phase+inc, float32(twoPi))
	return out
}

//
// Ramp oscillator (phasor~)
//

type RampOscillator struct {
	value      float32 // -1 .. 1, positive for positive frequencies
	sampleRate float32
}

func (r *RampOscillator) Reset() {
	r.value = 0
}

func (r *RampOscillator) Update(freq float32) float32 {
	out := r.value
	inc := freq / r.sampleRate
	r.value = fmod32(r.value+inc, 1.0)
	return out
}
