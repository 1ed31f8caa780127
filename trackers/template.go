package trackers

import (
	"image"

	kalman_filter "github.com/LdDl/kalman-filter"
	"github.com/LdDl/trackbench/eval"
	"gocv.io/x/gocv"
)

const (
	// Search window size relative to template size
	defaultSearchScale = 2.0
	// Minimum normalized cross-correlation to accept a match
	defaultMinScore = 0.3
)

// TemplateKalman finds the initial object patch in a window around predicted position
// and smooths matched box with 8-D Kalman filter: [cx, cy, w, h, vx, vy, vw, vh].
// It implements eval.Tracker[gocv.Mat].
type TemplateKalman struct {
	template    gocv.Mat
	box         eval.Box
	searchScale float64
	minScore    float32
	tracker     *kalman_filter.KalmanBBox
}

// NewTemplateKalman creates tracker with default search window and score threshold
func NewTemplateKalman() *TemplateKalman {
	return NewTemplateKalmanWith(defaultSearchScale, defaultMinScore)
}

// NewTemplateKalmanWith creates tracker with specified search scale and minimum match score
func NewTemplateKalmanWith(searchScale float64, minScore float32) *TemplateKalman {
	return &TemplateKalman{
		template:    gocv.NewMat(),
		searchScale: searchScale,
		minScore:    minScore,
	}
}

// Init stores patch of the frame under the box as a template and resets the filter
func (tr *TemplateKalman) Init(frame gocv.Mat, box eval.Box) bool {
	rect := box.Rect().Intersect(image.Rect(0, 0, frame.Cols(), frame.Rows()))
	if rect.Empty() {
		return false
	}
	region := frame.Region(rect)
	defer region.Close()
	tr.template.Close()
	tr.template = region.Clone()
	tr.box = eval.NewBoxFrom(rect)

	// Kalman filter props
	centerX := tr.box.X + tr.box.Width/2.0
	centerY := tr.box.Y + tr.box.Height/2.0
	uCx := 1.0
	uCy := 1.0
	uW := 0.0
	uH := 0.0
	stdDevA := 2.0
	stdDevMCx := 0.1
	stdDevMCy := 0.1
	stdDevMW := 0.1
	stdDevMH := 0.1
	tr.tracker = kalman_filter.NewKalmanBBox(
		1.0, uCx, uCy, uW, uH,
		stdDevA, stdDevMCx, stdDevMCy, stdDevMW, stdDevMH,
		kalman_filter.WithStateBBox(centerX, centerY, tr.box.Width, tr.box.Height),
	)
	return true
}

// Update matches template around predicted position.
// When there is no confident match the predicted box is returned with false status.
func (tr *TemplateKalman) Update(frame gocv.Mat) (eval.Box, bool) {
	if tr.tracker == nil || tr.template.Empty() {
		return tr.box, false
	}
	tr.tracker.Predict()
	cx, cy, w, h := tr.tracker.GetState()
	predicted := eval.NewBox(cx-w/2.0, cy-h/2.0, w, h)
	tr.box = predicted

	templW := tr.template.Cols()
	templH := tr.template.Rows()
	searchW := int(float64(templW) * tr.searchScale)
	searchH := int(float64(templH) * tr.searchScale)
	search := image.Rect(
		int(cx)-searchW/2, int(cy)-searchH/2,
		int(cx)+searchW/2, int(cy)+searchH/2,
	).Intersect(image.Rect(0, 0, frame.Cols(), frame.Rows()))
	if search.Dx() < templW || search.Dy() < templH {
		return predicted, false
	}

	window := frame.Region(search)
	defer window.Close()
	result := gocv.NewMat()
	defer result.Close()
	mask := gocv.NewMat()
	defer mask.Close()
	gocv.MatchTemplate(window, tr.template, &result, gocv.TmCcoeffNormed, mask)
	_, maxScore, _, maxLoc := gocv.MinMaxLoc(result)
	if maxScore < tr.minScore {
		return predicted, false
	}

	matchedX := float64(search.Min.X + maxLoc.X)
	matchedY := float64(search.Min.Y + maxLoc.Y)
	err := tr.tracker.Update(matchedX+float64(templW)/2.0, matchedY+float64(templH)/2.0, float64(templW), float64(templH))
	if err != nil {
		return predicted, false
	}
	cx, cy, w, h = tr.tracker.GetState()
	tr.box = eval.NewBox(cx-w/2.0, cy-h/2.0, w, h)
	return tr.box, true
}

// Close releases template
func (tr *TemplateKalman) Close() error {
	return tr.template.Close()
}
