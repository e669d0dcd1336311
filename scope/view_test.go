package scope

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func rampFrames(n int) [][2]float64 {
	frames := make([][2]float64, n)
	for i := range frames {
		frames[i] = [2]float64{float64(i) / float64(n), -float64(i) / float64(n)}
	}
	return frames
}

func TestWindowShiftsAndPicksPeaks(t *testing.T) {
	v := NewView([][2]float64{{0.5, 0}, {-0.75, 0.25}, {0, 0}, {2, math.NaN()}}, 100)
	v.Zoom = 2

	left, right := v.Window(3)
	assert.Equal(t, []float64{0.25, 2.0, 1.0}, left)
	assert.Equal(t, 1.25, right[0])
	assert.Equal(t, 1.0, right[1], "NaN is plotted as silence")
	assert.Equal(t, 1.0, right[2], "past the end is silence")
}

func TestWindowMinimumColumns(t *testing.T) {
	v := NewView(rampFrames(10), 100)
	left, right := v.Window(0)
	assert.Len(t, left, 2)
	assert.Len(t, right, 2)
}

func TestPanAndZoom(t *testing.T) {
	v := NewView(rampFrames(1000), 100)

	v.Pan(-10)
	assert.Equal(t, 0, v.Offset)

	v.Pan(250)
	assert.Equal(t, 250, v.Offset)

	v.Pan(5000)
	assert.Equal(t, 999, v.Offset)

	v.Home()
	assert.Equal(t, 0, v.Offset)

	v.ZoomIn()
	assert.Equal(t, MIN_ZOOM, v.Zoom)
	v.ZoomOut()
	v.ZoomOut()
	assert.Equal(t, 4, v.Zoom)

	v.End(100)
	assert.Equal(t, 600, v.Offset)

	for i := 0; i < 20; i++ {
		v.ZoomOut()
	}
	assert.Equal(t, MAX_ZOOM, v.Zoom)
}

func TestStatus(t *testing.T) {
	v := NewView(rampFrames(1000), 100)
	v.Pan(500)
	assert.Equal(t, "Frames 500..1000 of 1000 | 5.000s | 1 frames/point", v.Status(800))
}
