// Package trackers provides single object trackers for the benchmark.
//
// MIL and GOTURN come from OpenCV video module, KCF and CSRT from opencv_contrib.
// Boosting, MedianFlow and MOSSE are in OpenCV legacy namespace which has no Go bindings,
// so New returns ErrUnsupportedKind for them.
package trackers

import (
	"github.com/LdDl/trackbench/eval"
	"github.com/pkg/errors"
	"gocv.io/x/gocv"
	"gocv.io/x/gocv/contrib"
)

// ErrUnsupportedKind is returned for algorithms without OpenCV bindings
var ErrUnsupportedKind = errors.New("tracker kind is not available in OpenCV bindings")

// New creates fresh tracker instance of the given kind
func New(kind eval.Kind) (eval.Tracker[gocv.Mat], error) {
	switch kind {
	case eval.KindMIL:
		return newOpenCVTracker(gocv.NewTrackerMIL()), nil
	case eval.KindGOTURN:
		return newOpenCVTracker(gocv.NewTrackerGOTURN()), nil
	case eval.KindKCF:
		return newOpenCVTracker(contrib.NewTrackerKCF()), nil
	case eval.KindCSRT:
		return newOpenCVTracker(contrib.NewTrackerCSRT()), nil
	case eval.KindTemplateKalman:
		return NewTemplateKalman(), nil
	default:
		return nil, errors.Wrapf(ErrUnsupportedKind, "'%s'", kind)
	}
}

// Supported tells whether New can create trackers of the kind
func Supported(kind eval.Kind) bool {
	switch kind {
	case eval.KindMIL, eval.KindGOTURN, eval.KindKCF, eval.KindCSRT, eval.KindTemplateKalman:
		return true
	default:
		return false
	}
}

// Entry pairs constructor of the kind with its re-initialization interval
func Entry(kind eval.Kind) eval.TrackerEntry[gocv.Mat] {
	return eval.NewTrackerEntry(kind, func() (eval.Tracker[gocv.Mat], error) {
		return New(kind)
	})
}

// Entries creates entries for all given kinds preserving order
func Entries(kinds []eval.Kind) []eval.TrackerEntry[gocv.Mat] {
	entries := make([]eval.TrackerEntry[gocv.Mat], 0, len(kinds))
	for _, kind := range kinds {
		entries = append(entries, Entry(kind))
	}
	return entries
}
