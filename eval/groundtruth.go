package eval

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ParseError describes malformed ground truth line
type ParseError struct {
	// Line is 1-based line number
	Line int
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("ground truth line %d '%s': %v", e.Line, e.Text, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ParseGroundTruth reads one "x,y,w,h" box per line.
// Trailing empty lines are ignored, empty line in the middle is an error.
func ParseGroundTruth(r io.Reader) ([]Box, error) {
	boxes := []Box{}
	scanner := bufio.NewScanner(r)
	pendingEmpty := 0
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			pendingEmpty++
			continue
		}
		if pendingEmpty > 0 {
			return nil, &ParseError{Line: line - pendingEmpty, Text: "", Err: errors.New("empty line")}
		}
		box, err := ParseBox(text)
		if err != nil {
			return nil, &ParseError{Line: line, Text: text, Err: err}
		}
		boxes = append(boxes, box)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "Can't read ground truth")
	}
	return boxes, nil
}

// ParseBox parses single "x,y,w,h" record
func ParseBox(text string) (Box, error) {
	fields := strings.Split(text, ",")
	if len(fields) != 4 {
		return Box{}, errors.Errorf("expected 4 fields, got %d", len(fields))
	}
	values := [4]float64{}
	for i, field := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil {
			return Box{}, errors.Wrapf(err, "field %d", i+1)
		}
		values[i] = v
	}
	return NewBox(values[0], values[1], values[2], values[3]), nil
}
