package harness

// Network is a compiled signal-processing network. The harness has no
// visibility into its structure, all output happens as side effects of Tick.
type Network interface {
	// Init prepares the internal DSP state. Called exactly once per session.
	Init() error
	// Tick advances the network by exactly one sample period.
	Tick() error
	// Shutdown releases internal resources. Called exactly once, after
	// the last tick of a session whose Init succeeded.
	Shutdown() error
}

// Funcs builds a Network from plain functions. A nil function is a no-op.
type Funcs struct {
	InitFn     func() error
	TickFn     func() error
	ShutdownFn func() error
}

func (f Funcs) Init() error {
	if f.InitFn == nil {
		return nil
	}
	return f.InitFn()
}

func (f Funcs) Tick() error {
	if f.TickFn == nil {
		return nil
	}
	return f.TickFn()
}

func (f Funcs) Shutdown() error {
	if f.ShutdownFn == nil {
		return nil
	}
	return f.ShutdownFn()
}
