package eval

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/integrate"
)

// ThresholdCount is number of points in every threshold grid
const ThresholdCount = 21

// Metric is for accuracy metric type
type Metric uint16

const (
	// MetricIoU is intersection over union, success means value >= threshold
	MetricIoU Metric = iota
	// MetricPrecision is center distance in pixels, success means value <= threshold
	MetricPrecision
	// MetricNormPrecision is center distance normalized by ground truth size, success means value <= threshold
	MetricNormPrecision
)

// Metrics lists all metrics in the order of report columns
var Metrics = []Metric{MetricIoU, MetricPrecision, MetricNormPrecision}

func (m Metric) String() string {
	switch m {
	case MetricIoU:
		return "iou"
	case MetricPrecision:
		return "precision"
	case MetricNormPrecision:
		return "norm_precision"
	default:
		return fmt.Sprintf("metric(%d)", uint16(m))
	}
}

// UpperBound returns last value of metric's threshold grid
func (m Metric) UpperBound() float64 {
	switch m {
	case MetricPrecision:
		return 50.0
	case MetricNormPrecision:
		return 0.5
	default:
		return 1.0
	}
}

// Comparator returns how a sample is checked against a threshold for the metric
func (m Metric) Comparator() Comparator {
	if m == MetricIoU {
		return AtLeast
	}
	return AtMost
}

// Thresholds returns evenly spaced grid from zero to metric's upper bound.
// Last point is exactly the upper bound.
func (m Metric) Thresholds() []float64 {
	grid := floats.Span(make([]float64, ThresholdCount), 0, m.UpperBound())
	grid[ThresholdCount-1] = m.UpperBound()
	return grid
}

// Comparator decides whether a metric sample passes a threshold
type Comparator uint16

const (
	// AtLeast accepts samples greater or equal to threshold
	AtLeast Comparator = iota
	// AtMost accepts samples less or equal to threshold
	AtMost
)

func (c Comparator) accepts(sample, threshold float64) bool {
	if c == AtLeast {
		return sample >= threshold
	}
	return sample <= threshold
}

// SuccessCurve holds fraction of valid frames passing every threshold of a grid
type SuccessCurve []float64

// Curve evaluates success fraction for every threshold.
// Zero valid frames gives curve of zeros.
func Curve(samples, thresholds []float64, validFrames int, cmp Comparator) SuccessCurve {
	curve := make(SuccessCurve, len(thresholds))
	if validFrames == 0 {
		return curve
	}
	for i, threshold := range thresholds {
		passed := 0
		for _, sample := range samples {
			if cmp.accepts(sample, threshold) {
				passed++
			}
		}
		curve[i] = float64(passed) / float64(validFrames)
	}
	return curve
}

// AUC integrates curve over thresholds with trapezoidal rule and normalizes by the last threshold
func AUC(curve SuccessCurve, thresholds []float64) float64 {
	if len(thresholds) < 2 {
		return 0.0
	}
	return integrate.Trapezoidal(thresholds, curve) / thresholds[len(thresholds)-1]
}

// CurveAccumulator sums per-video success curves of a single metric.
// Every video has equal weight regardless of its frames number.
type CurveAccumulator struct {
	metric     Metric
	thresholds []float64
	sum        SuccessCurve
	videos     int
}

func NewCurveAccumulator(metric Metric) *CurveAccumulator {
	return &CurveAccumulator{
		metric:     metric,
		thresholds: metric.Thresholds(),
		sum:        make(SuccessCurve, ThresholdCount),
	}
}

// Add evaluates curve for the video samples and adds it to the sum
func (acc *CurveAccumulator) Add(samples []float64, validFrames int) SuccessCurve {
	curve := Curve(samples, acc.thresholds, validFrames, acc.metric.Comparator())
	floats.Add(acc.sum, curve)
	acc.videos++
	return curve
}

// Videos returns number of accumulated videos
func (acc *CurveAccumulator) Videos() int {
	return acc.videos
}

// Mean returns averaged curve. No videos gives curve of zeros
func (acc *CurveAccumulator) Mean() SuccessCurve {
	mean := make(SuccessCurve, len(acc.sum))
	if acc.videos == 0 {
		return mean
	}
	floats.ScaleTo(mean, 1.0/float64(acc.videos), acc.sum)
	return mean
}

// Score returns normalized area under averaged curve
func (acc *CurveAccumulator) Score() float64 {
	return AUC(acc.Mean(), acc.thresholds)
}

// Scores holds final values of a tracker
type Scores struct {
	IoU           float64
	Precision     float64
	NormPrecision float64
}

// Get returns score of the given metric
func (s Scores) Get(metric Metric) float64 {
	switch metric {
	case MetricPrecision:
		return s.Precision
	case MetricNormPrecision:
		return s.NormPrecision
	default:
		return s.IoU
	}
}

// Accumulator owns curve accumulators of all metrics for one tracker
type Accumulator struct {
	iou           *CurveAccumulator
	precision     *CurveAccumulator
	normPrecision *CurveAccumulator
}

func NewAccumulator() *Accumulator {
	return &Accumulator{
		iou:           NewCurveAccumulator(MetricIoU),
		precision:     NewCurveAccumulator(MetricPrecision),
		normPrecision: NewCurveAccumulator(MetricNormPrecision),
	}
}

// AddVideo merges samples of a completed video
func (acc *Accumulator) AddVideo(samples *VideoSamples) {
	acc.iou.Add(samples.IoU, samples.ValidFrames)
	acc.precision.Add(samples.Precision, samples.ValidFrames)
	acc.normPrecision.Add(samples.NormPrecision, samples.ValidFrames)
}

// Curve returns accumulator of the given metric
func (acc *Accumulator) Curve(metric Metric) *CurveAccumulator {
	switch metric {
	case MetricPrecision:
		return acc.precision
	case MetricNormPrecision:
		return acc.normPrecision
	default:
		return acc.iou
	}
}

// Scores finalizes accumulated curves
func (acc *Accumulator) Scores() Scores {
	return Scores{
		IoU:           acc.iou.Score(),
		Precision:     acc.precision.Score(),
		NormPrecision: acc.normPrecision.Score(),
	}
}
