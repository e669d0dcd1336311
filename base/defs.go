package base

// Element kinds found in a patch. Every kind except Connect takes an object
// index.
const (
	Obj int = iota
	Msg
	Text
	Connect
)

var ElementNames = map[string]int{
	"obj":     Obj,
	"msg":     Msg,
	"text":    Text,
	"connect": Connect,
}

// Common class names
const (
	DAC    = "dac~"
	OSC    = "osc~"
	PHASOR = "phasor~"
	ADD    = "+~"
	SUB    = "-~"
	MUL    = "*~"
	DIV    = "/~"
	MAX    = "max~"
	MIN    = "min~"
	POW    = "pow~"
	LOG    = "log~"
	ABS    = "abs~"
	EXP    = "exp~"
	WRAP   = "wrap~"
	COS    = "cos~"
	SIG    = "sig~"
	CLIP   = "clip~"
)

// The reference sampling rate of generated networks
const SampleRate = 44100

// Sink channels per dac~
const Channels = 2
