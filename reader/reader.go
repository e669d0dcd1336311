package reader

import (
	"bufio"
	"encoding/binary"
	"io"
	"math"
	"os"
	"strings"

	"github.com/faiface/beep"
	"github.com/faiface/beep/wav"
	"github.com/pkg/errors"

	"github.com/handegar/pdrun/patch"
)

func ReadPatch(filename string) (*patch.Patch, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	p, err := patch.Parse(bufio.NewReader(file))
	if err != nil {
		return nil, errors.Wrapf(err, "parsing '%s'", filename)
	}
	return p, nil
}

// Raw dac~ output: little-endian float32 (left, right) pairs
func ReadRawF32(filename string) ([][2]float32, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	stats, statsErr := file.Stat()
	if statsErr != nil {
		return nil, statsErr
	}
	if stats.Size()%8 != 0 {
		return nil, errors.Errorf("'%s' is not a whole number of frames (%d bytes)",
			filename, stats.Size())
	}

	frames := make([][2]float32, 0, stats.Size()/8)
	rdr := bufio.NewReader(file)
	var chunk [8]byte
	for {
		_, err := io.ReadFull(rdr, chunk[:])
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "reading '%s'", filename)
		}

		frames = append(frames, [2]float32{
			math.Float32frombits(binary.LittleEndian.Uint32(chunk[0:4])),
			math.Float32frombits(binary.LittleEndian.Uint32(chunk[4:8])),
		})
	}

	return frames, nil
}

func ReadWAV(filename string) ([][2]float64, beep.Format, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, beep.Format{}, err
	}
	defer f.Close()

	stream, wavFormat, err := wav.Decode(f)
	if err != nil {
		return nil, beep.Format{}, errors.Wrapf(err, "decoding '%s'", filename)
	}

	frames := make([][2]float64, 0, stream.Len())
	buf := make([][2]float64, 512)
	for {
		n, ok := stream.Stream(buf)
		frames = append(frames, buf[:n]...)
		if !ok {
			break
		}
	}
	if err := stream.Err(); err != nil {
		return nil, beep.Format{}, errors.Wrapf(err, "decoding '%s'", filename)
	}

	return frames, wavFormat, nil
}

// ReadFrames loads rendered output from a .wav or a raw .f32 file.
func ReadFrames(filename string, sampleRate int) ([][2]float64, int, error) {
	if strings.HasSuffix(strings.ToLower(filename), ".wav") {
		frames, format, err := ReadWAV(filename)
		if err != nil {
			return nil, 0, err
		}
		return frames, int(format.SampleRate), nil
	}

	raw, err := ReadRawF32(filename)
	if err != nil {
		return nil, 0, err
	}
	frames := make([][2]float64, len(raw))
	for i, f := range raw {
		frames[i] = [2]float64{float64(f[0]), float64(f[1])}
	}
	return frames, sampleRate, nil
}
