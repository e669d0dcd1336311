package settings

import (
	"github.com/caarlos0/env/v11"
	"github.com/pkg/errors"
)

var Version = "0.1"

// Environment variables are prefixed with this, e.g. PDRUN_SAMPLE_RATE
const EnvPrefix = "PDRUN_"

type Settings struct {
	// Pure Data patch to render. Empty renders the built-in test tone.
	PatchFile string `env:"PATCH"`

	// Current samplerate
	SampleRate int `env:"SAMPLE_RATE" envDefault:"44100"`

	// Render length
	DurationSeconds int `env:"DURATION" envDefault:"3"`

	// Raw float32 output, one dac_<index>.f32 file per dac~
	RawOutput bool   `env:"RAW" envDefault:"true"`
	OutputDir string `env:"OUTPUT_DIR" envDefault:"."`

	// WAV output of the first dac~ and its sample size in bytes
	OutputWav    string `env:"WAV"`
	WavPrecision int    `env:"WAV_PRECISION" envDefault:"2"`

	// G.711 u-law output of the first dac~
	OutputUlaw string `env:"ULAW"`

	// YAML session report
	ReportFile string `env:"REPORT"`

	// Print the compiled signal chain
	PrintCode bool `env:"PRINT_CODE"`

	// Stream result to speaker?
	Stream bool `env:"STREAM"`

	// Show the rendered waveform in the terminal
	Scope bool `env:"SCOPE"`

	// View an existing .wav/.f32 file instead of rendering
	ViewFile string
}

func Load() (*Settings, error) {
	return LoadFrom(nil)
}

// LoadFrom reads settings from the given environment, or from the process
// environment when environ is nil.
func LoadFrom(environ map[string]string) (*Settings, error) {
	s := &Settings{}
	opts := env.Options{Prefix: EnvPrefix}
	if environ != nil {
		opts.Environment = environ
	}

	if err := env.ParseWithOptions(s, opts); err != nil {
		return nil, errors.Wrap(err, "reading environment")
	}
	return s, nil
}

func (s *Settings) Validate() error {
	if s.SampleRate <= 0 {
		return errors.Errorf("sample rate must be positive (got %d)", s.SampleRate)
	}
	if s.DurationSeconds < 0 {
		return errors.Errorf("duration must not be negative (got %d)", s.DurationSeconds)
	}
	if s.WavPrecision < 1 || s.WavPrecision > 3 {
		return errors.Errorf("WAV precision must be 1, 2 or 3 bytes (got %d)", s.WavPrecision)
	}
	return nil
}

// Frames the first dac~ will produce
func (s *Settings) TotalSamples() int {
	return s.SampleRate * s.DurationSeconds
}

// Anything that needs the rendered frames kept in memory?
func (s *Settings) NeedsBuffer() bool {
	return s.OutputWav != "" || s.Stream || s.Scope || s.ReportFile != ""
}
