package main

import (
	"image/color"

	"github.com/LdDl/trackbench/eval"
	"gocv.io/x/gocv"
)

var (
	predictedColor = color.RGBA{200, 0, 0, 0}
	truthColor     = color.RGBA{0, 200, 0, 0}
)

// viewer shows every evaluated frame with predicted box and ground truth box
type viewer struct {
	window *gocv.Window
}

func newViewer() *viewer {
	return &viewer{
		window: gocv.NewWindow("Tracking"),
	}
}

func (v *viewer) show(tracker, video string, index int, frame gocv.Mat, predicted, truth eval.Box) {
	if frame.Empty() {
		return
	}
	if !truth.IsAbsent() {
		gocv.Rectangle(&frame, truth.Rect(), truthColor, 2)
	}
	gocv.Rectangle(&frame, predicted.Rect(), predictedColor, 2)
	v.window.SetWindowTitle(tracker + ": " + video)
	v.window.IMShow(frame)
	v.window.WaitKey(1)
}

func (v *viewer) Close() error {
	return v.window.Close()
}
