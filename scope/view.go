package scope

import (
	"fmt"
	"math"
)

const MIN_ZOOM = 1
const MAX_ZOOM = 4096

// View is the part of the rendered output currently on screen. Zoom is
// the number of frames folded into one plot point.
type View struct {
	Frames     [][2]float64
	SampleRate int
	Offset     int
	Zoom       int
}

func NewView(frames [][2]float64, sampleRate int) *View {
	return &View{
		Frames:     frames,
		SampleRate: sampleRate,
		Zoom:       MIN_ZOOM,
	}
}

// Window returns one point per column for each channel. Each point is the
// value with the largest magnitude among the frames it covers, shifted by
// +1.0 so silence sits in the middle of a 0..2 plot.
func (v *View) Window(columns int) ([]float64, []float64) {
	if columns < 2 {
		columns = 2
	}
	left := make([]float64, columns)
	right := make([]float64, columns)

	for col := 0; col < columns; col++ {
		start := v.Offset + col*v.Zoom
		l, r := 0.0, 0.0
		for i := start; i < start+v.Zoom && i < len(v.Frames); i++ {
			if math.Abs(v.Frames[i][0]) > math.Abs(l) {
				l = v.Frames[i][0]
			}
			if math.Abs(v.Frames[i][1]) > math.Abs(r) {
				r = v.Frames[i][1]
			}
		}
		left[col] = clampPlot(l + 1.0)
		right[col] = clampPlot(r + 1.0)
	}

	return left, right
}

func clampPlot(v float64) float64 {
	if math.IsNaN(v) {
		return 1.0
	}
	return math.Max(0.0, math.Min(2.0, v))
}

func (v *View) Pan(frames int) {
	v.Offset += frames
	v.clampOffset()
}

func (v *View) ZoomIn() {
	if v.Zoom > MIN_ZOOM {
		v.Zoom /= 2
	}
}

func (v *View) ZoomOut() {
	if v.Zoom < MAX_ZOOM {
		v.Zoom *= 2
	}
}

func (v *View) Home() {
	v.Offset = 0
}

func (v *View) End(columns int) {
	v.Offset = len(v.Frames) - columns*v.Zoom
	v.clampOffset()
}

func (v *View) clampOffset() {
	if v.Offset > len(v.Frames)-1 {
		v.Offset = len(v.Frames) - 1
	}
	if v.Offset < 0 {
		v.Offset = 0
	}
}

func (v *View) Status(columns int) string {
	end := v.Offset + columns*v.Zoom
	if end > len(v.Frames) {
		end = len(v.Frames)
	}
	seconds := 0.0
	if v.SampleRate > 0 {
		seconds = float64(v.Offset) / float64(v.SampleRate)
	}
	return fmt.Sprintf("Frames %d..%d of %d | %.3fs | %d frames/point",
		v.Offset, end, len(v.Frames), seconds, v.Zoom)
}
