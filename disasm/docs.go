package disasm

import (
	"github.com/handegar/pdrun/base"
)

type ClassDoc struct {
	Short    string
	Formulae string
}

var ClassDocs = map[string]ClassDoc{
	base.DAC:    {Short: "Audio output", Formulae: "out(L, R)"},
	base.OSC:    {Short: "Cosine oscillator", Formulae: "cos(phase); phase += 2pi * f / SR"},
	base.PHASOR: {Short: "Sawtooth 0..1", Formulae: "phase; phase += f / SR"},
	base.SIG:    {Short: "Constant signal", Formulae: "x"},
	base.ADD:    {Short: "Add", Formulae: "a + b"},
	base.SUB:    {Short: "Subtract", Formulae: "a - b"},
	base.MUL:    {Short: "Multiply", Formulae: "a * b"},
	base.DIV:    {Short: "Divide", Formulae: "a / b"},
	base.MAX:    {Short: "Maximum", Formulae: "max(a, b)"},
	base.MIN:    {Short: "Minimum", Formulae: "min(a, b)"},
	base.POW:    {Short: "Power", Formulae: "a ^ b"},
	base.LOG:    {Short: "Logarithm", Formulae: "ln(a) / ln(b)"},
	base.ABS:    {Short: "Absolute value", Formulae: "|x|"},
	base.EXP:    {Short: "Exponential", Formulae: "e ^ x"},
	base.WRAP:   {Short: "Fractional part", Formulae: "x - int(x)"},
	base.COS:    {Short: "Cosine of cycles", Formulae: "cos(2pi * x)"},
	base.CLIP:   {Short: "Clamp", Formulae: "clamp(x, lo, hi)"},
}
