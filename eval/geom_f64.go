package eval

import (
	"image"
	"math"
)

// Box is an axis-aligned bounding box: top-left corner plus size.
// Zero value means that there is no object on the frame.
type Box struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

func NewBox(x, y, width, height float64) Box {
	return Box{
		X:      x,
		Y:      y,
		Width:  width,
		Height: height,
	}
}

func NewBoxFrom(rect image.Rectangle) Box {
	return Box{
		X:      float64(rect.Min.X),
		Y:      float64(rect.Min.Y),
		Width:  float64(rect.Dx()),
		Height: float64(rect.Dy()),
	}
}

// Rect converts box into integer rectangle. Coordinates are truncated.
func (b Box) Rect() image.Rectangle {
	return image.Rect(int(b.X), int(b.Y), int(b.X+b.Width), int(b.Y+b.Height))
}

// IsAbsent returns true for the (0, 0, 0, 0) box which marks frames without object
func (b Box) IsAbsent() bool {
	return b == Box{}
}

// Geometry holds corners and center of a box in pixel-center convention.
type Geometry struct {
	XMin float64
	XMax float64
	YMin float64
	YMax float64
	CX   float64
	CY   float64
}

// Derive evaluates corners and center of the given box.
// Last pixel of the box is (x + w - 1, y + h - 1), center is shifted by half pixel.
// Negative sizes are not validated.
func Derive(b Box) Geometry {
	return Geometry{
		XMin: b.X,
		XMax: b.X + b.Width - 1.0,
		YMin: b.Y,
		YMax: b.Y + b.Height - 1.0,
		CX:   b.X + (b.Width+1.0)/2,
		CY:   b.Y + (b.Height+1.0)/2,
	}
}

func (g Geometry) area() float64 {
	return (g.XMax - g.XMin) * (g.YMax - g.YMin)
}

func (g Geometry) center() Point {
	return Point{X: g.CX, Y: g.CY}
}

type Point struct {
	X float64
	Y float64
}

func NewPoint(x, y float64) Point {
	return Point{
		X: x,
		Y: y,
	}
}

func euclideanDistance(p1, p2 Point) float64 {
	dx := p1.X - p2.X
	dy := p1.Y - p2.Y
	return math.Sqrt(dx*dx + dy*dy)
}
