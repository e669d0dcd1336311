package base

type Class struct {
	Name    string
	Inlets  int
	Outlets int
	// Inlets that are fed by the creation arguments, in argument order
	ArgInlets []int
}

var Classes = map[string]Class{
	// Output
	DAC: {DAC, 2, 0, nil}, // left, right

	// Generators
	OSC:    {OSC, 2, 1, []int{0}}, // frequency, phase (unused)
	PHASOR: {PHASOR, 2, 1, []int{0}},
	SIG:    {SIG, 1, 1, []int{0}},

	// Binary operators, argument sets the right inlet
	ADD: {ADD, 2, 1, []int{1}},
	SUB: {SUB, 2, 1, []int{1}},
	MUL: {MUL, 2, 1, []int{1}},
	DIV: {DIV, 2, 1, []int{1}},
	MAX: {MAX, 2, 1, []int{1}},
	MIN: {MIN, 2, 1, []int{1}},
	POW: {POW, 2, 1, []int{1}},
	LOG: {LOG, 2, 1, []int{1}}, // ln(a) or log base b

	// Unary functions
	ABS:  {ABS, 1, 1, nil},
	EXP:  {EXP, 1, 1, nil},
	WRAP: {WRAP, 1, 1, nil},
	COS:  {COS, 2, 1, nil}, // input, phase (unused)

	CLIP: {CLIP, 3, 1, []int{1, 2}}, // input, lo, hi
}

func LookupClass(name string) (Class, bool) {
	c, found := Classes[name]
	return c, found
}
