package eval

import (
	"testing"
)

func TestKindReinitIntervals(t *testing.T) {
	correctAnswers := map[Kind]int{
		KindBoosting:   500,
		KindMIL:        1000,
		KindKCF:        1000,
		KindMedianFlow: 1000,
		KindGOTURN:     250,
		KindMOSSE:      1000,
		KindCSRT:       1000,
	}
	for kind, correctAnswer := range correctAnswers {
		if answer := kind.ReinitInterval(); answer != correctAnswer {
			t.Errorf("Kind %s: %d, correct answer: %d", kind, answer, correctAnswer)
		}
	}
}

func TestParseKind(t *testing.T) {
	for _, kind := range append(DefaultKinds(), KindTemplateKalman) {
		parsed, err := ParseKind(kind.String())
		if err != nil {
			t.Errorf("Can't parse '%s': %v", kind, err)
			continue
		}
		if parsed != kind {
			t.Errorf("Parsed '%s' as %s", kind, parsed)
		}
	}
	parsed, err := ParseKind(" medianflow ")
	if err != nil || parsed != KindMedianFlow {
		t.Errorf("Case insensitive parsing failed: %v, %v", parsed, err)
	}
	if _, err := ParseKind("TLD"); err == nil {
		t.Error("Unknown kind should not be parsed")
	}
}

func TestDefaultKindsOrder(t *testing.T) {
	names := []string{"Boosting", "MIL", "KCF", "MedianFlow", "GOTURN", "MOSSE", "CSRT"}
	kinds := DefaultKinds()
	if len(kinds) != len(names) {
		t.Fatalf("Expected %d kinds, got %d", len(names), len(kinds))
	}
	for i, kind := range kinds {
		if kind.String() != names[i] {
			t.Errorf("Kind %d: %s, correct answer: %s", i, kind, names[i])
		}
	}
}

func TestNewTrackerEntry(t *testing.T) {
	entry := NewTrackerEntry(KindGOTURN, func() (Tracker[testFrame], error) {
		return &scriptedTracker{}, nil
	})
	if entry.Name != "GOTURN" || entry.Interval != 250 || entry.Kind != KindGOTURN {
		t.Errorf("Wrong entry: %+v", entry)
	}
}
