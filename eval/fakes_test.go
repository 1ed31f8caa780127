package eval

import (
	"github.com/pkg/errors"
)

// frame for tests is just its index
type testFrame int

// scriptedTracker returns predefined boxes by frame index and remembers calls
type scriptedTracker struct {
	id          int
	predictions map[testFrame]Box
	initOK      bool
	updateOK    bool
	initFrame   testFrame
	initBox     Box
	initialized bool
	closed      bool
	updates     []testFrame
}

func (tr *scriptedTracker) Init(frame testFrame, box Box) bool {
	tr.initialized = true
	tr.initFrame = frame
	tr.initBox = box
	return tr.initOK
}

func (tr *scriptedTracker) Update(frame testFrame) (Box, bool) {
	tr.updates = append(tr.updates, frame)
	return tr.predictions[frame], tr.updateOK
}

func (tr *scriptedTracker) Close() error {
	tr.closed = true
	return nil
}

// trackerFactory creates scripted trackers and keeps all of them for inspection
type trackerFactory struct {
	predictions map[testFrame]Box
	initOK      bool
	updateOK    bool
	failAt      int
	created     []*scriptedTracker
}

func newTrackerFactory(predictions map[testFrame]Box) *trackerFactory {
	return &trackerFactory{
		predictions: predictions,
		initOK:      true,
		updateOK:    true,
		failAt:      -1,
	}
}

func (f *trackerFactory) entry(interval int) TrackerEntry[testFrame] {
	return TrackerEntry[testFrame]{
		Name:     "scripted",
		Kind:     KindTemplateKalman,
		Interval: interval,
		New:      f.new,
	}
}

func (f *trackerFactory) new() (Tracker[testFrame], error) {
	if len(f.created) == f.failAt {
		return nil, errors.New("no more trackers")
	}
	tr := &scriptedTracker{
		id:          len(f.created),
		predictions: f.predictions,
		initOK:      f.initOK,
		updateOK:    f.updateOK,
	}
	f.created = append(f.created, tr)
	return tr, nil
}

// sliceSource serves frame indices and tracks released frames
type sliceSource struct {
	frames   int
	failAt   int
	released []testFrame
	closed   bool
}

func newSliceSource(frames int) *sliceSource {
	return &sliceSource{frames: frames, failAt: -1}
}

func (s *sliceSource) Len() int {
	return s.frames
}

func (s *sliceSource) Frame(index int) (testFrame, error) {
	if index == s.failAt {
		return 0, errors.New("corrupted image")
	}
	return testFrame(index), nil
}

func (s *sliceSource) Release(frame testFrame) {
	s.released = append(s.released, frame)
}

func (s *sliceSource) Close() error {
	s.closed = true
	return nil
}

// memoryVideo is a labeled video kept in memory
type memoryVideo struct {
	name    string
	truth   []Box
	openErr error
	failAt  int
	sources []*sliceSource
}

func (v *memoryVideo) Name() string {
	return v.name
}

func (v *memoryVideo) Open() (FrameSource[testFrame], []Box, error) {
	if v.openErr != nil {
		return nil, nil, v.openErr
	}
	source := newSliceSource(len(v.truth))
	if v.failAt > 0 {
		source.failAt = v.failAt
	}
	v.sources = append(v.sources, source)
	return source, v.truth, nil
}

// perfectFactory creates trackers which always predict ground truth of the video
func perfectFactory(truth []Box) *trackerFactory {
	predictions := make(map[testFrame]Box, len(truth))
	for i, box := range truth {
		predictions[testFrame(i)] = box
	}
	return newTrackerFactory(predictions)
}
