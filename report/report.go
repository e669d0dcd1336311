package report

import (
	"math"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/handegar/pdrun/utils"
)

type Channel struct {
	Peak       float64 `yaml:"peak"`
	PeakDB     float64 `yaml:"peak_db"`
	RMS        float64 `yaml:"rms"`
	Overflows  int     `yaml:"overflows"`
	NonFinites int     `yaml:"non_finite"`
}

type Report struct {
	SessionID       string    `yaml:"session_id"`
	Patch           string    `yaml:"patch"`
	SampleRate      int       `yaml:"sample_rate"`
	DurationSeconds int       `yaml:"duration_seconds"`
	TotalSamples    int       `yaml:"total_samples"`
	Ticks           int       `yaml:"ticks"`
	Outputs         int       `yaml:"outputs"`
	Elapsed         float64   `yaml:"elapsed_seconds"`
	RealtimeFactor  float64   `yaml:"realtime_factor"`
	Left            Channel   `yaml:"left"`
	Right           Channel   `yaml:"right"`
	InitError       string    `yaml:"init_error,omitempty"`
	TickError       string    `yaml:"tick_error,omitempty"`
	ShutdownError   string    `yaml:"shutdown_error,omitempty"`
	Created         time.Time `yaml:"created"`
}

func New(patch string, sampleRate int, durationSeconds int) *Report {
	return &Report{
		SessionID:       uuid.NewString(),
		Patch:           patch,
		SampleRate:      sampleRate,
		DurationSeconds: durationSeconds,
		Created:         time.Now().UTC(),
	}
}

// SetTiming records the wall-clock time the render took. The realtime
// factor is rendered audio time divided by wall-clock time.
func (r *Report) SetTiming(elapsed time.Duration) {
	r.Elapsed = elapsed.Seconds()
	if elapsed > 0 && r.SampleRate > 0 {
		audio := float64(r.Ticks) / float64(r.SampleRate)
		r.RealtimeFactor = audio / elapsed.Seconds()
	}
}

// Analyze fills in the per-channel statistics from rendered frames.
func (r *Report) Analyze(frames [][2]float64) {
	r.Left = analyzeChannel(frames, 0)
	r.Right = analyzeChannel(frames, 1)
}

func analyzeChannel(frames [][2]float64, ch int) Channel {
	var c Channel
	sum := 0.0
	finite := 0
	for _, f := range frames {
		v := f[ch]
		if math.IsNaN(v) || math.IsInf(v, 0) {
			c.NonFinites++
			continue
		}
		a := math.Abs(v)
		if a > c.Peak {
			c.Peak = a
		}
		if a > 1.0 {
			c.Overflows++
		}
		sum += v * v
		finite++
	}

	if finite > 0 {
		c.RMS = math.Sqrt(sum / float64(finite))
	}
	c.PeakDB = utils.ToDecibels(c.Peak)
	if math.IsInf(c.PeakDB, -1) {
		c.PeakDB = -999.0 // YAML has no -Inf for most readers
	}
	return c
}

func (r *Report) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(r)
	if err != nil {
		return nil, errors.Wrap(err, "encoding report")
	}
	return data, nil
}

func (r *Report) Save(filename string) error {
	data, err := r.Marshal()
	if err != nil {
		return err
	}
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return errors.Wrapf(err, "writing '%s'", filename)
	}
	return nil
}

func Load(filename string) (*Report, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	r := &Report{}
	if err := yaml.Unmarshal(data, r); err != nil {
		return nil, errors.Wrapf(err, "decoding '%s'", filename)
	}
	return r, nil
}
