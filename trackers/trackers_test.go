package trackers

import (
	"image"
	"image/color"
	"testing"

	"github.com/LdDl/trackbench/eval"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"
)

func TestUnsupportedKinds(t *testing.T) {
	for _, kind := range []eval.Kind{eval.KindBoosting, eval.KindMedianFlow, eval.KindMOSSE} {
		tracker, err := New(kind)
		assert.Nil(t, tracker)
		assert.True(t, errors.Is(err, ErrUnsupportedKind), "kind %s", kind)
		assert.False(t, Supported(kind))
	}
}

func TestEntries(t *testing.T) {
	entries := Entries(eval.DefaultKinds())
	require.Len(t, entries, 7)
	for i, kind := range eval.DefaultKinds() {
		assert.Equal(t, kind.String(), entries[i].Name)
		assert.Equal(t, kind.ReinitInterval(), entries[i].Interval)
	}
	_, err := entries[0].New()
	assert.True(t, errors.Is(err, ErrUnsupportedKind))
}

// squareFrame draws filled square with a cross inside on dark background
func squareFrame(t *testing.T, x, y int) gocv.Mat {
	t.Helper()
	frame := gocv.NewMatWithSize(240, 320, gocv.MatTypeCV8UC3)
	frame.SetTo(gocv.NewScalar(20, 20, 20, 0))
	gocv.Rectangle(&frame, image.Rect(x, y, x+40, y+40), color.RGBA{R: 230, G: 200, B: 40, A: 0}, -1)
	gocv.Line(&frame, image.Pt(x, y), image.Pt(x+40, y+40), color.RGBA{R: 0, G: 0, B: 255, A: 0}, 3)
	gocv.Line(&frame, image.Pt(x+40, y), image.Pt(x, y+40), color.RGBA{R: 0, G: 255, B: 0, A: 0}, 3)
	return frame
}

func TestTemplateKalmanFollowsObject(t *testing.T) {
	tracker, err := New(eval.KindTemplateKalman)
	require.NoError(t, err)
	defer tracker.Close()

	first := squareFrame(t, 100, 80)
	defer first.Close()
	require.True(t, tracker.Init(first, eval.NewBox(95, 75, 50, 50)))

	positions := [][2]int{{104, 82}, {108, 84}, {112, 86}}
	for _, pos := range positions {
		frame := squareFrame(t, pos[0], pos[1])
		box, ok := tracker.Update(frame)
		frame.Close()
		assert.True(t, ok, "position %v", pos)
		truth := eval.NewBox(float64(pos[0]-5), float64(pos[1]-5), 50, 50)
		iou := eval.IoU(eval.Derive(box), eval.Derive(truth))
		assert.Greater(t, iou, 0.5, "position %v, box %+v", pos, box)
	}
}

func TestTemplateKalmanInitOutsideFrame(t *testing.T) {
	tracker := NewTemplateKalman()
	defer tracker.Close()
	frame := squareFrame(t, 10, 10)
	defer frame.Close()
	assert.False(t, tracker.Init(frame, eval.NewBox(1000, 1000, 20, 20)))
	box, ok := tracker.Update(frame)
	assert.False(t, ok)
	assert.Equal(t, eval.Box{}, box)
}
