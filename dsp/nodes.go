package dsp

import (
	"math"

	"github.com/handegar/pdrun/writer"
)

// A compiled patch object. Inputs are pointers to the outputs of earlier
// nodes in the chain (or to constant cells), so a tick only moves float32s.
type node interface {
	init() error
	tick() error
	deinit() error
}

type oscNode struct {
	freq *float32
	out  float32
	osc  SineOscillator
}

func (n *oscNode) init() error   { n.osc.Reset(); return nil }
func (n *oscNode) deinit() error { return nil }
func (n *oscNode) tick() error {
	n.out = n.osc.Update(*n.freq)
	return nil
}

type phasorNode struct {
	freq *float32
	out  float32
	ramp RampOscillator
}

func (n *phasorNode) init() error   { n.ramp.Reset(); return nil }
func (n *phasorNode) deinit() error { return nil }
func (n *phasorNode) tick() error {
	n.out = n.ramp.Update(*n.freq)
	return nil
}

type unaryNode struct {
	in  *float32
	out float32
	fn  func(float32) float32
}

func (n *unaryNode) init() error   { return nil }
func (n *unaryNode) deinit() error { return nil }
func (n *unaryNode) tick() error {
	n.out = n.fn(*n.in)
	return nil
}

type binaryNode struct {
	a   *float32
	b   *float32
	out float32
	fn  func(float32, float32) float32
}

func (n *binaryNode) init() error   { return nil }
func (n *binaryNode) deinit() error { return nil }
func (n *binaryNode) tick() error {
	n.out = n.fn(*n.a, *n.b)
	return nil
}

type clipNode struct {
	in  *float32
	lo  *float32
	hi  *float32
	out float32
}

func (n *clipNode) init() error   { return nil }
func (n *clipNode) deinit() error { return nil }
func (n *clipNode) tick() error {
	n.out = clip(*n.in, *n.lo, *n.hi)
	return nil
}

type dacNode struct {
	id    int
	left  *float32
	right *float32
	sink  writer.Sink
	flags DebugFlags
}

func (n *dacNode) init() error {
	n.flags.Reset()
	if n.sink == nil {
		return nil
	}
	return n.sink.Open()
}

func (n *dacNode) tick() error {
	l, r := *n.left, *n.right
	n.flags.Check(l, r)
	if n.sink == nil {
		return nil
	}
	return n.sink.WriteFrame(l, r)
}

func (n *dacNode) deinit() error {
	if n.sink == nil {
		return nil
	}
	return n.sink.Close()
}

//
// Operator functions
//

func add(a, b float32) float32 { return a + b }
func sub(a, b float32) float32 { return a - b }
func mul(a, b float32) float32 { return a * b }
func div(a, b float32) float32 { return a / b }

func max32(a, b float32) float32 {
	return float32(math.Max(float64(a), float64(b)))
}

func min32(a, b float32) float32 {
	return float32(math.Min(float64(a), float64(b)))
}

func pow32(a, b float32) float32 {
	return float32(math.Pow(float64(a), float64(b)))
}

func ln32(a float32) float32 {
	return float32(math.Log(float64(a)))
}

func logBase32(a, b float32) float32 {
	return ln32(a) / ln32(b)
}

func abs32(x float32) float32 {
	return float32(math.Abs(float64(x)))
}

func exp32(x float32) float32 {
	return float32(math.Exp(float64(x)))
}

// cos~ takes its input in cycles
func cycleCos32(x float32) float32 {
	return float32(math.Cos(float64(x) * twoPi))
}

func identity(x float32) float32 { return x }

// Fractional part. Zero and negative whole numbers map to 1.
func wrap(x float32) float32 {
	t := float32(int32(x))
	if x > 0 {
		return x - t
	}
	return x - (t - 1.0)
}

func clip(x, lo, hi float32) float32 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
