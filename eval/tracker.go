package eval

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Tracker is the interface for single object trackers.
// F is the concrete frame type (e.g., gocv.Mat).
// Re-initialization always creates new instance, so Init is called once per instance.
type Tracker[F any] interface {
	// Init seeds tracker with object's box on the frame
	Init(frame F, box Box) bool
	// Update returns predicted box for the next frame
	Update(frame F) (Box, bool)
	// Close releases underlying resources
	Close() error
}

// Kind is for tracking algorithm type
type Kind uint16

const (
	KindBoosting Kind = iota
	KindMIL
	KindKCF
	KindMedianFlow
	KindGOTURN
	KindMOSSE
	KindCSRT
	// KindTemplateKalman is template matching with Kalman smoothing of the box
	KindTemplateKalman
)

var kindNames = map[Kind]string{
	KindBoosting:       "Boosting",
	KindMIL:            "MIL",
	KindKCF:            "KCF",
	KindMedianFlow:     "MedianFlow",
	KindGOTURN:         "GOTURN",
	KindMOSSE:          "MOSSE",
	KindCSRT:           "CSRT",
	KindTemplateKalman: "TemplateKalman",
}

// Number of frames after which tracker is re-initialized from ground truth
var reinitIntervals = map[Kind]int{
	KindBoosting:       500,
	KindMIL:            1000,
	KindKCF:            1000,
	KindMedianFlow:     1000,
	KindGOTURN:         250,
	KindMOSSE:          1000,
	KindCSRT:           1000,
	KindTemplateKalman: 1000,
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", uint16(k))
}

// ReinitInterval returns fixed re-initialization interval (in frames) of the kind
func (k Kind) ReinitInterval() int {
	return reinitIntervals[k]
}

// ParseKind converts tracker name (case insensitive) into Kind
func ParseKind(name string) (Kind, error) {
	normalized := strings.TrimSpace(name)
	for kind, kindName := range kindNames {
		if strings.EqualFold(kindName, normalized) {
			return kind, nil
		}
	}
	return 0, errors.Errorf("unknown tracker kind '%s'", name)
}

// DefaultKinds returns trackers of the reference benchmark table
func DefaultKinds() []Kind {
	return []Kind{KindBoosting, KindMIL, KindKCF, KindMedianFlow, KindGOTURN, KindMOSSE, KindCSRT}
}

// TrackerEntry pairs tracker constructor with its re-initialization interval
type TrackerEntry[F any] struct {
	Name     string
	Kind     Kind
	Interval int
	New      func() (Tracker[F], error)
}

// NewTrackerEntry creates entry with name and interval of the kind
func NewTrackerEntry[F any](kind Kind, factory func() (Tracker[F], error)) TrackerEntry[F] {
	return TrackerEntry[F]{
		Name:     kind.String(),
		Kind:     kind,
		Interval: kind.ReinitInterval(),
		New:      factory,
	}
}
