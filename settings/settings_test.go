package settings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	s, err := LoadFrom(map[string]string{})
	require.NoError(t, err)

	assert.Equal(t, 44100, s.SampleRate)
	assert.Equal(t, 3, s.DurationSeconds)
	assert.Equal(t, 132300, s.TotalSamples())
	assert.True(t, s.RawOutput)
	assert.Equal(t, ".", s.OutputDir)
	assert.Equal(t, 2, s.WavPrecision)
	assert.False(t, s.NeedsBuffer())
	assert.NoError(t, s.Validate())
}

func TestEnvironmentOverrides(t *testing.T) {
	s, err := LoadFrom(map[string]string{
		"PDRUN_SAMPLE_RATE": "48000",
		"PDRUN_DURATION":    "0",
		"PDRUN_PATCH":       "tone.pd",
		"PDRUN_RAW":         "false",
		"PDRUN_WAV":         "out.wav",
		"SAMPLE_RATE":       "8000",
	})
	require.NoError(t, err)

	assert.Equal(t, 48000, s.SampleRate)
	assert.Equal(t, 0, s.DurationSeconds)
	assert.Equal(t, "tone.pd", s.PatchFile)
	assert.False(t, s.RawOutput)
	assert.True(t, s.NeedsBuffer())
	assert.NoError(t, s.Validate())
}

func TestBadEnvironment(t *testing.T) {
	_, err := LoadFrom(map[string]string{"PDRUN_SAMPLE_RATE": "fast"})
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := map[string]func(s *Settings){
		"zero sample rate":  func(s *Settings) { s.SampleRate = 0 },
		"negative duration": func(s *Settings) { s.DurationSeconds = -1 },
		"precision":         func(s *Settings) { s.WavPrecision = 4 },
	}

	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			s, err := LoadFrom(map[string]string{})
			require.NoError(t, err)
			mutate(s)
			assert.Error(t, s.Validate())
		})
	}
}
