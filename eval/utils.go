package eval

import "math"

// IoU calculates Intersection over Union between predicted and ground truth boxes.
// Zero overlap gives exactly zero without evaluating the union.
func IoU(predicted, truth Geometry) float64 {
	dx := maxFloat64(0, minFloat64(predicted.XMax, truth.XMax)-maxFloat64(predicted.XMin, truth.XMin))
	dy := maxFloat64(0, minFloat64(predicted.YMax, truth.YMax)-maxFloat64(predicted.YMin, truth.YMin))
	overlap := dx * dy
	if overlap == 0 {
		return 0.0
	}
	return overlap / (predicted.area() + truth.area() - overlap)
}

// Precision is the euclidean distance between centers (in pixels).
func Precision(predicted, truth Geometry) float64 {
	return euclideanDistance(predicted.center(), truth.center())
}

// NormalizedPrecision is the center distance where x and y offsets are divided
// by width and height of the ground truth box.
func NormalizedPrecision(predicted, truth Geometry, truthWidth, truthHeight float64) float64 {
	dx := (predicted.CX - truth.CX) / truthWidth
	dy := (predicted.CY - truth.CY) / truthHeight
	return math.Sqrt(dx*dx + dy*dy)
}

func maxFloat64(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func minFloat64(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
