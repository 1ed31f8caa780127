package eval

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrBadInterval is returned when re-initialization interval is not positive
	ErrBadInterval = errors.New("re-initialization interval must be positive")
	// ErrMisaligned is returned when there are fewer ground truth boxes than frames
	ErrMisaligned = errors.New("ground truth is not aligned with frames")
)

// FrameSource is ordered finite sequence of decoded frames of a single video.
// F is the concrete frame type.
type FrameSource[F any] interface {
	// Len returns number of frames
	Len() int
	// Frame decodes frame with the given index
	Frame(index int) (F, error)
	// Release frees decoded frame once evaluation of it is done
	Release(frame F)
	// Close releases the source itself
	Close() error
}

// Video is a labeled sequence which could be opened many times (once per tracker)
type Video[F any] interface {
	Name() string
	// Open returns frames and ground truth aligned index by index
	Open() (FrameSource[F], []Box, error)
}

// FrameError points to the frame which broke evaluation
type FrameError struct {
	Frame int
	Err   error
}

func (e *FrameError) Error() string {
	return fmt.Sprintf("frame %d: %v", e.Frame, e.Err)
}

func (e *FrameError) Unwrap() error {
	return e.Err
}

// FrameObserver is called for every evaluated frame before it is released
type FrameObserver[F any] func(index int, frame F, predicted, truth Box)

// VideoSamples holds per-frame metric values of one (tracker, video) run
type VideoSamples struct {
	IoU           []float64
	Precision     []float64
	NormPrecision []float64
	// Frames is total number of frames
	Frames int
	// ValidFrames is number of frames with object present
	ValidFrames int
	// Inits is number of tracker instances created (first frame and re-initializations)
	Inits          int
	InitFailures   int
	UpdateFailures int
}

func newVideoSamples(frames int) *VideoSamples {
	return &VideoSamples{
		IoU:           make([]float64, 0, frames),
		Precision:     make([]float64, 0, frames),
		NormPrecision: make([]float64, 0, frames),
		Frames:        frames,
		ValidFrames:   frames,
	}
}

// addFrame evaluates all metrics for the frame or skips it when there is no object
func (samples *VideoSamples) addFrame(predicted, truth Box) {
	if truth.IsAbsent() {
		samples.ValidFrames--
		return
	}
	predictedGeom := Derive(predicted)
	truthGeom := Derive(truth)
	samples.IoU = append(samples.IoU, IoU(predictedGeom, truthGeom))
	samples.Precision = append(samples.Precision, Precision(predictedGeom, truthGeom))
	samples.NormPrecision = append(samples.NormPrecision, NormalizedPrecision(predictedGeom, truthGeom, truth.Width, truth.Height))
}

type trackerState uint16

const (
	stateUninitialized trackerState = iota
	stateTracking
)

// needsReinit returns true on the first frame and on every frame where (index + 1) is divisible by interval
func needsReinit(index, interval int) bool {
	return index == 0 || (index+1)%interval == 0
}

// EvaluateVideo drives tracker through all frames of the video.
// Tracker is created on the first frame and re-created every entry.Interval frames,
// each time seeded with ground truth box of the current frame.
// Update is called on every frame, failed statuses are counted and predicted box is used as is.
func EvaluateVideo[F any](entry TrackerEntry[F], frames FrameSource[F], truth []Box, observers ...FrameObserver[F]) (*VideoSamples, error) {
	if entry.Interval <= 0 {
		return nil, ErrBadInterval
	}
	framesNum := frames.Len()
	if len(truth) < framesNum {
		return nil, errors.Wrapf(ErrMisaligned, "%d frames, %d boxes", framesNum, len(truth))
	}

	samples := newVideoSamples(framesNum)
	state := stateUninitialized
	var tracker Tracker[F]
	defer func() {
		if tracker != nil {
			tracker.Close()
		}
	}()

	for i := 0; i < framesNum; i++ {
		frame, err := frames.Frame(i)
		if err != nil {
			return nil, &FrameError{Frame: i, Err: errors.Wrap(err, "Can't decode frame")}
		}
		truthBox := truth[i]

		if needsReinit(i, entry.Interval) {
			if tracker != nil {
				tracker.Close()
				tracker = nil
			}
			state = stateUninitialized
		}
		if state == stateUninitialized {
			tracker, err = entry.New()
			if err != nil {
				frames.Release(frame)
				return nil, &FrameError{Frame: i, Err: errors.Wrap(err, "Can't create tracker")}
			}
			samples.Inits++
			if !tracker.Init(frame, truthBox) {
				samples.InitFailures++
			}
			state = stateTracking
		}

		predicted, ok := tracker.Update(frame)
		if !ok {
			samples.UpdateFailures++
		}
		samples.addFrame(predicted, truthBox)

		for _, observer := range observers {
			observer(i, frame, predicted, truthBox)
		}
		frames.Release(frame)
	}
	return samples, nil
}
