package eval

import (
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// RunError tells which tracker and video aborted evaluation
type RunError struct {
	Tracker string
	Video   string
	Err     error
}

func (e *RunError) Error() string {
	return fmt.Sprintf("tracker '%s', video '%s': %v", e.Tracker, e.Video, e.Err)
}

func (e *RunError) Unwrap() error {
	return e.Err
}

// Hooks are optional callbacks for progress reporting and instrumentation.
// Nil callbacks are skipped.
type Hooks[F any] struct {
	TrackerStarted  func(tracker string, videos int)
	VideoFinished   func(tracker, video string, samples *VideoSamples, err error)
	TrackerFinished func(row Row)
	FrameEvaluated  func(tracker, video string, index int, frame F, predicted, truth Box)
}

// Benchmark runs every tracker over every video and aggregates scores per tracker.
// Runs are sequential: one video is fully processed before the next one starts.
type Benchmark[F any] struct {
	Trackers []TrackerEntry[F]
	Videos   []Video[F]
	Logger   logrus.FieldLogger
	Hooks    Hooks[F]
}

// NewBenchmark creates benchmark with discarding logger and no hooks
func NewBenchmark[F any](trackers []TrackerEntry[F], videos []Video[F]) *Benchmark[F] {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return &Benchmark[F]{
		Trackers: trackers,
		Videos:   videos,
		Logger:   logger,
	}
}

// Run evaluates all trackers. Fatal error of a tracker is stored in its row and does not stop other trackers.
func (bench *Benchmark[F]) Run() *Report {
	report := &Report{
		Rows: make([]Row, 0, len(bench.Trackers)),
	}
	for _, entry := range bench.Trackers {
		row := bench.runTracker(entry)
		if bench.Hooks.TrackerFinished != nil {
			bench.Hooks.TrackerFinished(row)
		}
		report.Rows = append(report.Rows, row)
	}
	return report
}

func (bench *Benchmark[F]) runTracker(entry TrackerEntry[F]) Row {
	row := Row{
		Name: entry.Name,
		Kind: entry.Kind,
	}
	trackerLog := bench.Logger.WithField("tracker", entry.Name)
	trackerLog.Infof("Evaluating tracker on %d videos (re-initialization every %d frames)", len(bench.Videos), entry.Interval)
	if bench.Hooks.TrackerStarted != nil {
		bench.Hooks.TrackerStarted(entry.Name, len(bench.Videos))
	}

	acc := NewAccumulator()
	for _, video := range bench.Videos {
		runLog := trackerLog.WithFields(logrus.Fields{
			"video":  video.Name(),
			"run_id": uuid.New().String(),
		})
		samples, err := bench.runVideo(entry, video, runLog)
		if bench.Hooks.VideoFinished != nil {
			bench.Hooks.VideoFinished(entry.Name, video.Name(), samples, err)
		}
		if err != nil {
			row.Err = &RunError{Tracker: entry.Name, Video: video.Name(), Err: err}
			runLog.WithError(err).Error("Evaluation aborted")
			return row
		}
		if samples.InitFailures > 0 || samples.UpdateFailures > 0 {
			runLog.Warnf("Tracker reported failures: init %d of %d, update %d of %d", samples.InitFailures, samples.Inits, samples.UpdateFailures, samples.Frames)
		}
		runLog.Debugf("Video done: %d frames, %d valid", samples.Frames, samples.ValidFrames)

		acc.AddVideo(samples)
		row.Videos++
		row.Frames += samples.Frames
		row.ValidFrames += samples.ValidFrames
		row.InitFailures += samples.InitFailures
		row.UpdateFailures += samples.UpdateFailures
	}
	row.Scores = acc.Scores()
	trackerLog.Infof("Scores: IoU %.4f, Precision %.4f, N.Precision %.4f", row.Scores.IoU, row.Scores.Precision, row.Scores.NormPrecision)
	return row
}

func (bench *Benchmark[F]) runVideo(entry TrackerEntry[F], video Video[F], runLog logrus.FieldLogger) (*VideoSamples, error) {
	frames, truth, err := video.Open()
	if err != nil {
		return nil, errors.Wrap(err, "Can't open video")
	}
	defer func() {
		if err := frames.Close(); err != nil {
			runLog.WithError(err).Warn("Can't close frame source")
		}
	}()
	observers := []FrameObserver[F]{}
	if bench.Hooks.FrameEvaluated != nil {
		observers = append(observers, func(index int, frame F, predicted, truthBox Box) {
			bench.Hooks.FrameEvaluated(entry.Name, video.Name(), index, frame, predicted, truthBox)
		})
	}
	return EvaluateVideo(entry, frames, truth, observers...)
}
