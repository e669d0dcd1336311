package writer

import (
	"os"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"
	"github.com/pkg/errors"

	"github.com/handegar/pdrun/base"
	"github.com/handegar/pdrun/utils"
)

// FrameStreamer plays back a rendered frame buffer as a beep.Streamer.
type FrameStreamer struct {
	Data           [][2]float64
	SamplesWritten int
}

func NewFrameStreamer(data [][2]float64) *FrameStreamer {
	return &FrameStreamer{Data: data}
}

func (fs *FrameStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	remaining := len(fs.Data) - fs.SamplesWritten
	if remaining <= 0 {
		return 0, false
	}

	n = len(samples)
	if n > remaining {
		n = remaining
	}

	utils.Assert(fs.SamplesWritten+n <= len(fs.Data), "Index out of bounds")
	copy(samples[:n], fs.Data[fs.SamplesWritten:fs.SamplesWritten+n])

	fs.SamplesWritten += n
	return n, true
}

func (fs *FrameStreamer) Err() error {
	return nil
}

func Format(sampleRate int, precision int) beep.Format {
	return beep.Format{
		SampleRate:  beep.SampleRate(sampleRate),
		NumChannels: base.Channels,
		Precision:   precision,
	}
}

func SaveAsWAV(filename string, wavFormat beep.Format, samples [][2]float64) error {
	outWAVFile, err := os.Create(filename)
	if err != nil {
		return errors.Wrapf(err, "creating '%s'", filename)
	}
	defer outWAVFile.Close()

	err = wav.Encode(outWAVFile, NewFrameStreamer(samples), wavFormat)
	if err != nil {
		return errors.Wrapf(err, "writing samples to '%s'", filename)
	}

	return nil
}

// Play streams the frames to the default audio device and blocks until
// playback has finished.
func Play(samples [][2]float64, sampleRate int) error {
	sr := beep.SampleRate(sampleRate)
	if err := speaker.Init(sr, sr.N(time.Second/10)); err != nil {
		return errors.Wrap(err, "initializing speaker")
	}
	defer speaker.Close()

	done := make(chan bool)
	speaker.Play(beep.Seq(NewFrameStreamer(samples), beep.Callback(func() {
		done <- true
	})))
	<-done
	return nil
}
