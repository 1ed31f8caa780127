package trackers

import (
	"github.com/LdDl/trackbench/eval"
	"gocv.io/x/gocv"
)

// openCVTracker adapts gocv tracker to the evaluation interface.
// OpenCV trackers work with integer rectangles, so seed box is truncated.
type openCVTracker struct {
	tracker gocv.Tracker
}

func newOpenCVTracker(tracker gocv.Tracker) *openCVTracker {
	return &openCVTracker{
		tracker: tracker,
	}
}

// Init initializes the tracker with the frame and object's box
func (tr *openCVTracker) Init(frame gocv.Mat, box eval.Box) bool {
	return tr.tracker.Init(frame, box.Rect())
}

// Update returns box found by OpenCV. Box is returned even when status is false
func (tr *openCVTracker) Update(frame gocv.Mat) (eval.Box, bool) {
	rect, ok := tr.tracker.Update(frame)
	return eval.NewBoxFrom(rect), ok
}

// Close releases native resources
func (tr *openCVTracker) Close() error {
	return tr.tracker.Close()
}
