package dsp

import (
	"github.com/pkg/errors"

	"github.com/handegar/pdrun/base"
	"github.com/handegar/pdrun/patch"
	"github.com/handegar/pdrun/writer"
)

// SinkFactory returns the sink a dac~ writes to. A nil sink discards the
// output.
type SinkFactory func(dac *patch.Object) writer.Sink

type Config struct {
	SampleRate int
	Sinks      SinkFactory
}

// Network is a patch compiled into a chain of nodes. It satisfies
// harness.Network.
type Network struct {
	SampleRate int

	chain []*patch.Object
	nodes []node
	dacs  []*dacNode
	ticks int

	zero float32
}

type port struct {
	object *patch.Object
	outlet int
}

// Compile orders every object feeding a dac~ so that sources always come
// before their consumers, and builds a node for each.
func Compile(p *patch.Patch, cfg Config) (*Network, error) {
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = base.SampleRate
	}

	chain, err := BuildChain(p)
	if err != nil {
		return nil, err
	}

	n := &Network{
		SampleRate: cfg.SampleRate,
		chain:      chain,
	}

	outputs := make(map[port]*float32)
	for _, o := range chain {
		nd, out, err := n.compileObject(o, outputs, cfg)
		if err != nil {
			return nil, errors.Wrapf(err, "compiling %s", o)
		}
		if out != nil {
			outputs[port{o, 0}] = out
		}
		n.nodes = append(n.nodes, nd)
	}

	return n, nil
}

// BuildChain walks each dac~ depth-first through its inlet sources. Objects
// that do not reach a dac~ are left out. A signal cycle is an error.
func BuildChain(p *patch.Patch) ([]*patch.Object, error) {
	var chain []*patch.Object
	done := make(map[*patch.Object]bool)
	visiting := make(map[*patch.Object]bool)

	var walk func(o *patch.Object) error
	walk = func(o *patch.Object) error {
		if done[o] {
			return nil
		}
		if visiting[o] {
			return errors.Errorf("DSP loop detected at %s", o)
		}
		visiting[o] = true

		for _, inlet := range o.Inlets {
			src := inlet.Source
			if src == nil || src.IsConstant() {
				continue
			}
			if err := walk(src.Object); err != nil {
				return err
			}
		}

		visiting[o] = false
		done[o] = true
		chain = append(chain, o)
		return nil
	}

	for _, dac := range p.ObjectsOfClass(base.DAC) {
		if err := walk(dac); err != nil {
			return nil, err
		}
	}
	return chain, nil
}

func (n *Network) compileObject(o *patch.Object, outputs map[port]*float32, cfg Config) (node, *float32, error) {
	in := func(i int) (*float32, error) {
		if !o.Connected(i) {
			return &n.zero, nil
		}
		src := o.Inlets[i].Source
		if src.IsConstant() {
			v := src.Constant
			return &v, nil
		}
		out, found := outputs[port{src.Object, src.Outlet}]
		if !found {
			return nil, errors.Errorf("inlet %d: source %s not compiled", i, src)
		}
		return out, nil
	}

	var inputs [3]*float32
	for i := range o.Inlets {
		if i >= len(inputs) {
			break
		}
		p, err := in(i)
		if err != nil {
			return nil, nil, err
		}
		inputs[i] = p
	}

	sr := float32(n.SampleRate)

	switch o.Class {
	case base.DAC:
		d := &dacNode{id: o.ID, left: inputs[0], right: inputs[1]}
		if cfg.Sinks != nil {
			d.sink = cfg.Sinks(o)
		}
		n.dacs = append(n.dacs, d)
		return d, nil, nil
	case base.OSC:
		nd := &oscNode{freq: inputs[0], osc: SineOscillator{sampleRate: sr}}
		return nd, &nd.out, nil
	case base.PHASOR:
		nd := &phasorNode{freq: inputs[0], ramp: RampOscillator{sampleRate: sr}}
		return nd, &nd.out, nil
	case base.CLIP:
		nd := &clipNode{in: inputs[0], lo: inputs[1], hi: inputs[2]}
		return nd, &nd.out, nil
	}

	if fn, found := unaryOps[o.Class]; found {
		nd := &unaryNode{in: inputs[0], fn: fn}
		return nd, &nd.out, nil
	}

	if fn, found := binaryOps[o.Class]; found {
		if o.Class == base.LOG && !o.Connected(1) {
			nd := &unaryNode{in: inputs[0], fn: ln32}
			return nd, &nd.out, nil
		}
		nd := &binaryNode{a: inputs[0], b: inputs[1], fn: fn}
		return nd, &nd.out, nil
	}

	return nil, nil, errors.Errorf("no DSP implementation for '%s'", o.Class)
}

var unaryOps = map[string]func(float32) float32{
	base.ABS:  abs32,
	base.EXP:  exp32,
	base.WRAP: wrap,
	base.COS:  cycleCos32,
	base.SIG:  identity,
}

var binaryOps = map[string]func(float32, float32) float32{
	base.ADD: add,
	base.SUB: sub,
	base.MUL: mul,
	base.DIV: div,
	base.MAX: max32,
	base.MIN: min32,
	base.POW: pow32,
	base.LOG: logBase32,
}

// Init initializes every node in chain order. On failure the nodes that
// were already initialized are shut down again, in reverse.
func (n *Network) Init() error {
	n.ticks = 0
	for i, nd := range n.nodes {
		if err := nd.init(); err != nil {
			for j := i - 1; j >= 0; j-- {
				_ = n.nodes[j].deinit()
			}
			return errors.Wrapf(err, "initializing %s", n.chain[i])
		}
	}
	return nil
}

func (n *Network) Tick() error {
	for i, nd := range n.nodes {
		if err := nd.tick(); err != nil {
			return errors.Wrapf(err, "%s", n.chain[i])
		}
	}
	n.ticks++
	return nil
}

// Shutdown shuts down every node and returns the first error.
func (n *Network) Shutdown() error {
	var first error
	for i, nd := range n.nodes {
		if err := nd.deinit(); err != nil && first == nil {
			first = errors.Wrapf(err, "shutting down %s", n.chain[i])
		}
	}
	return first
}

func (n *Network) Chain() []*patch.Object {
	return n.chain
}

func (n *Network) Ticks() int {
	return n.ticks
}

func (n *Network) NumOutputs() int {
	return len(n.dacs)
}

// DebugFlags per dac~, keyed by object index
func (n *Network) DebugFlags() map[int]*DebugFlags {
	ret := make(map[int]*DebugFlags, len(n.dacs))
	for _, d := range n.dacs {
		ret[d.id] = &d.flags
	}
	return ret
}
