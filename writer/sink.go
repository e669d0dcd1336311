package writer

import (
	"bufio"
	"encoding/binary"
	"math"
	"os"

	"github.com/pkg/errors"
	"github.com/zaf/g711"

	"github.com/handegar/pdrun/utils"
)

// Sink receives one stereo frame per tick from a dac~. Open is called
// during network initialization, Close during shutdown.
type Sink interface {
	Open() error
	WriteFrame(left, right float32) error
	Close() error
}

// Raw little-endian float32 pairs, one pair per frame
type RawSink struct {
	Path string

	file    *os.File
	buf     *bufio.Writer
	scratch [8]byte
}

func NewRawSink(path string) *RawSink {
	return &RawSink{Path: path}
}

func (s *RawSink) Open() error {
	f, err := os.Create(s.Path)
	if err != nil {
		return errors.Wrapf(err, "creating '%s'", s.Path)
	}
	s.file = f
	s.buf = bufio.NewWriter(f)
	return nil
}

func (s *RawSink) WriteFrame(left, right float32) error {
	binary.LittleEndian.PutUint32(s.scratch[0:4], math.Float32bits(left))
	binary.LittleEndian.PutUint32(s.scratch[4:8], math.Float32bits(right))
	_, err := s.buf.Write(s.scratch[:])
	return err
}

func (s *RawSink) Close() error {
	if s.file == nil {
		return nil
	}
	flushErr := s.buf.Flush()
	closeErr := s.file.Close()
	s.file = nil
	if flushErr != nil {
		return errors.Wrapf(flushErr, "flushing '%s'", s.Path)
	}
	return closeErr
}

// G.711 u-law bytes, interleaved left/right
type UlawSink struct {
	Path string

	file    *os.File
	buf     *bufio.Writer
	scratch [2]byte
}

func NewUlawSink(path string) *UlawSink {
	return &UlawSink{Path: path}
}

func (s *UlawSink) Open() error {
	f, err := os.Create(s.Path)
	if err != nil {
		return errors.Wrapf(err, "creating '%s'", s.Path)
	}
	s.file = f
	s.buf = bufio.NewWriter(f)
	return nil
}

func (s *UlawSink) WriteFrame(left, right float32) error {
	s.scratch[0] = g711.EncodeUlawFrame(utils.ToPCM16(left))
	s.scratch[1] = g711.EncodeUlawFrame(utils.ToPCM16(right))
	_, err := s.buf.Write(s.scratch[:])
	return err
}

func (s *UlawSink) Close() error {
	if s.file == nil {
		return nil
	}
	flushErr := s.buf.Flush()
	closeErr := s.file.Close()
	s.file = nil
	if flushErr != nil {
		return errors.Wrapf(flushErr, "flushing '%s'", s.Path)
	}
	return closeErr
}

// BufferSink keeps all frames in memory. Capacity is reserved up front so
// WriteFrame does not allocate for the expected number of frames.
type BufferSink struct {
	Frames [][2]float64

	capacity int
}

func NewBufferSink(capacity int) *BufferSink {
	return &BufferSink{capacity: capacity}
}

func (s *BufferSink) Open() error {
	s.Frames = make([][2]float64, 0, s.capacity)
	return nil
}

func (s *BufferSink) WriteFrame(left, right float32) error {
	s.Frames = append(s.Frames, [2]float64{float64(left), float64(right)})
	return nil
}

func (s *BufferSink) Close() error {
	return nil
}

type teeSink struct {
	sinks []Sink
}

// Tee writes every frame to all sinks in order. Open stops at the first
// failure and closes what was already opened.
func Tee(sinks ...Sink) Sink {
	return &teeSink{sinks: sinks}
}

func (t *teeSink) Open() error {
	for i, s := range t.sinks {
		if err := s.Open(); err != nil {
			for j := i - 1; j >= 0; j-- {
				_ = t.sinks[j].Close()
			}
			return err
		}
	}
	return nil
}

func (t *teeSink) WriteFrame(left, right float32) error {
	for _, s := range t.sinks {
		if err := s.WriteFrame(left, right); err != nil {
			return err
		}
	}
	return nil
}

func (t *teeSink) Close() error {
	var first error
	for _, s := range t.sinks {
		if err := s.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
