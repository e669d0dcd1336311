package harness

import (
	"github.com/pkg/errors"
)

const (
	DefaultSampleRate      = 44100
	DefaultDurationSeconds = 3
)

type State int

const (
	Uninitialized State = iota
	Running
	ShutDown
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "UNINITIALIZED"
	case Running:
		return "RUNNING"
	case ShutDown:
		return "SHUT_DOWN"
	}
	return "UNKNOWN"
}

// Result describes a completed session.
type Result struct {
	TotalSamples int
	Ticks        int   // Ticks that completed without error
	ShutdownErr  error // Reported, but does not fail the run
}

// Session drives one network through init, a fixed number of ticks and
// shutdown. A session can only be run once.
type Session struct {
	sampleRate      int
	durationSeconds int

	network Network
	state   State
	used    bool
	total   int
	index   int
}

func NewSession(network Network, sampleRate int, durationSeconds int) (*Session, error) {
	if network == nil {
		return nil, errors.New("nil network")
	}
	if sampleRate <= 0 {
		return nil, errors.Wrapf(ErrInvalidSampleRate, "sample rate %d", sampleRate)
	}
	if durationSeconds < 0 {
		return nil, errors.Wrapf(ErrInvalidDuration, "duration %d", durationSeconds)
	}

	return &Session{
		sampleRate:      sampleRate,
		durationSeconds: durationSeconds,
		network:         network,
		state:           Uninitialized,
	}, nil
}

func (s *Session) State() State {
	return s.state
}

func (s *Session) SampleRate() int {
	return s.sampleRate
}

func (s *Session) DurationSeconds() int {
	return s.durationSeconds
}

// Index is the sample being processed while a tick runs. After Run it is
// the number of samples reached: TotalSamples after a full run, the failing
// sample after a tick failure.
func (s *Session) Index() int {
	return s.index
}

func (s *Session) TotalSamples() int {
	return s.total
}

// Run initializes the network, ticks it sampleRate*durationSeconds times and
// shuts it down. A failing Init returns an *InitError without any tick or
// shutdown. A failing Tick stops the loop, shuts down and returns a
// *TickError. A failing Shutdown is only reported in the Result.
func (s *Session) Run() (Result, error) {
	if s.used {
		return Result{}, ErrSessionUsed
	}
	s.used = true

	if err := s.network.Init(); err != nil {
		return Result{}, &InitError{Err: err}
	}
	s.state = Running

	s.total = s.sampleRate * s.durationSeconds
	res := Result{TotalSamples: s.total}

	var tickErr error
	for s.index = 0; s.index < s.total; s.index++ {
		if err := s.network.Tick(); err != nil {
			tickErr = &TickError{Sample: s.index, Err: err}
			break
		}
		res.Ticks++
	}

	res.ShutdownErr = s.network.Shutdown()
	s.state = ShutDown

	return res, tickErr
}

// Run is a shorthand for a single session over network.
func Run(network Network, sampleRate int, durationSeconds int) (Result, error) {
	s, err := NewSession(network, sampleRate, durationSeconds)
	if err != nil {
		return Result{}, err
	}
	return s.Run()
}
