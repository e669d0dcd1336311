package harness

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder logs every call the harness makes, plus the tick indices as seen
// from inside the network.
type recorder struct {
	calls     []string
	ticks     []int
	initErr   error
	tickErr   error
	failAt    int
	shutErr   error
	initCount int
	shutCount int
}

func (r *recorder) Init() error {
	r.initCount++
	r.calls = append(r.calls, "init")
	return r.initErr
}

func (r *recorder) Tick() error {
	n := len(r.ticks)
	if r.tickErr != nil && n == r.failAt {
		r.calls = append(r.calls, "tick-fail")
		return r.tickErr
	}
	r.ticks = append(r.ticks, n)
	if len(r.calls) == 0 || r.calls[len(r.calls)-1] != "tick" {
		r.calls = append(r.calls, "tick")
	}
	return nil
}

func (r *recorder) Shutdown() error {
	r.shutCount++
	r.calls = append(r.calls, "shutdown")
	return r.shutErr
}

func TestReferenceRun(t *testing.T) {
	rec := &recorder{}
	res, err := Run(rec, DefaultSampleRate, DefaultDurationSeconds)
	require.NoError(t, err)

	assert.Equal(t, 132300, res.TotalSamples)
	assert.Equal(t, 132300, res.Ticks)
	assert.Len(t, rec.ticks, 132300)
	assert.Equal(t, 1, rec.initCount)
	assert.Equal(t, 1, rec.shutCount)
	assert.Equal(t, []string{"init", "tick", "shutdown"}, rec.calls)
	assert.NoError(t, res.ShutdownErr)
}

func TestTickCount(t *testing.T) {
	cases := []struct {
		sampleRate int
		duration   int
	}{
		{1, 1},
		{8000, 1},
		{22050, 2},
		{48000, 1},
		{7, 13},
	}

	for _, c := range cases {
		rec := &recorder{}
		res, err := Run(rec, c.sampleRate, c.duration)
		require.NoError(t, err)
		assert.Equal(t, c.sampleRate*c.duration, res.Ticks)
		assert.Len(t, rec.ticks, c.sampleRate*c.duration)
	}
}

func TestSequentialTickIndices(t *testing.T) {
	var seen []int
	var s *Session
	net := Funcs{
		TickFn: func() error {
			seen = append(seen, s.Index())
			return nil
		},
	}

	s, err := NewSession(net, 100, 3)
	require.NoError(t, err)
	_, err = s.Run()
	require.NoError(t, err)

	require.Len(t, seen, 300)
	for i, idx := range seen {
		if idx != i {
			t.Fatalf("tick %d observed index %d", i, idx)
		}
	}
	assert.Equal(t, 300, s.Index())
	assert.Equal(t, s.TotalSamples(), s.Index())
}

func TestIndexAfterTickFailure(t *testing.T) {
	rec := &recorder{tickErr: errors.New("sink full"), failAt: 7}
	s, err := NewSession(rec, 100, 1)
	require.NoError(t, err)

	_, err = s.Run()
	require.Error(t, err)
	assert.Equal(t, 7, s.Index())
}

func TestSessionTimingIsFixedAtConstruction(t *testing.T) {
	s, err := NewSession(Funcs{}, 100, 2)
	require.NoError(t, err)
	assert.Equal(t, 100, s.SampleRate())
	assert.Equal(t, 2, s.DurationSeconds())

	res, err := s.Run()
	require.NoError(t, err)
	assert.Equal(t, 200, res.TotalSamples)
	assert.Equal(t, 200, res.Ticks)
}

func TestOrdering(t *testing.T) {
	var s *Session
	var states []State
	initDone := false
	shutdownStarted := false

	net := Funcs{
		InitFn: func() error {
			states = append(states, s.State())
			initDone = true
			return nil
		},
		TickFn: func() error {
			if !initDone {
				t.Fatalf("tick before init completed")
			}
			if shutdownStarted {
				t.Fatalf("tick after shutdown started")
			}
			return nil
		},
		ShutdownFn: func() error {
			states = append(states, s.State())
			shutdownStarted = true
			return nil
		},
	}

	s, err := NewSession(net, 1000, 2)
	require.NoError(t, err)
	assert.Equal(t, Uninitialized, s.State())

	_, err = s.Run()
	require.NoError(t, err)

	assert.Equal(t, []State{Uninitialized, Running}, states)
	assert.Equal(t, ShutDown, s.State())
}

func TestDeterminism(t *testing.T) {
	a := &recorder{}
	b := &recorder{}
	resA, errA := Run(a, 4410, 3)
	resB, errB := Run(b, 4410, 3)
	require.NoError(t, errA)
	require.NoError(t, errB)

	assert.Equal(t, resA, resB)
	assert.Equal(t, a.calls, b.calls)
	assert.Equal(t, a.ticks, b.ticks)
}

func TestZeroDuration(t *testing.T) {
	rec := &recorder{}
	res, err := Run(rec, DefaultSampleRate, 0)
	require.NoError(t, err)

	assert.Equal(t, 0, res.Ticks)
	assert.Equal(t, []string{"init", "shutdown"}, rec.calls)
}

func TestInitFailure(t *testing.T) {
	cause := errors.New("no device")
	rec := &recorder{initErr: cause}

	s, err := NewSession(rec, DefaultSampleRate, DefaultDurationSeconds)
	require.NoError(t, err)
	res, err := s.Run()
	require.Error(t, err)

	var initErr *InitError
	require.True(t, errors.As(err, &initErr))
	assert.Equal(t, cause, errors.Cause(initErr.Err))
	assert.True(t, errors.Is(err, cause))

	assert.Empty(t, rec.ticks)
	assert.Equal(t, 0, rec.shutCount)
	assert.Equal(t, []string{"init"}, rec.calls)
	assert.Equal(t, 0, res.Ticks)
	assert.Equal(t, Uninitialized, s.State())
}

func TestTickFailureStopsAndShutsDown(t *testing.T) {
	cause := errors.New("sink full")
	rec := &recorder{tickErr: cause, failAt: 10}

	res, err := Run(rec, 100, 1)
	require.Error(t, err)

	var tickErr *TickError
	require.True(t, errors.As(err, &tickErr))
	assert.Equal(t, 10, tickErr.Sample)
	assert.True(t, errors.Is(err, cause))

	assert.Equal(t, 10, res.Ticks)
	assert.Equal(t, 1, rec.shutCount)
	assert.Equal(t, []string{"init", "tick", "tick-fail", "shutdown"}, rec.calls)
}

func TestShutdownFailureIsReported(t *testing.T) {
	cause := errors.New("close failed")
	rec := &recorder{shutErr: cause}

	res, err := Run(rec, 10, 1)
	require.NoError(t, err)
	assert.Equal(t, 10, res.Ticks)
	assert.Equal(t, cause, res.ShutdownErr)
}

func TestSessionRunsOnce(t *testing.T) {
	rec := &recorder{}
	s, err := NewSession(rec, 10, 1)
	require.NoError(t, err)

	_, err = s.Run()
	require.NoError(t, err)

	_, err = s.Run()
	assert.Equal(t, ErrSessionUsed, err)
	assert.Equal(t, 1, rec.initCount)
	assert.Equal(t, 1, rec.shutCount)
	assert.Len(t, rec.ticks, 10)
}

func TestNewSessionValidation(t *testing.T) {
	t.Run("nil network", func(t *testing.T) {
		_, err := NewSession(nil, 44100, 1)
		assert.Error(t, err)
	})

	t.Run("sample rate", func(t *testing.T) {
		_, err := NewSession(Funcs{}, 0, 1)
		assert.True(t, errors.Is(err, ErrInvalidSampleRate))
		_, err = NewSession(Funcs{}, -44100, 1)
		assert.True(t, errors.Is(err, ErrInvalidSampleRate))
	})

	t.Run("duration", func(t *testing.T) {
		_, err := NewSession(Funcs{}, 44100, -1)
		assert.True(t, errors.Is(err, ErrInvalidDuration))
	})
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "UNINITIALIZED", Uninitialized.String())
	assert.Equal(t, "RUNNING", Running.String())
	assert.Equal(t, "SHUT_DOWN", ShutDown.String())
}
