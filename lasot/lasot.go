// Package lasot reads benchmark videos stored in LaSOT layout:
//
//	<root>/testing_set.txt          names of videos, one per line
//	<root>/<video>/groundtruth.txt  "x,y,w,h" per frame
//	<root>/<video>/img/*            frames, ordered by file name
package lasot

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"github.com/LdDl/trackbench/eval"
	"github.com/pkg/errors"
	"gocv.io/x/gocv"
)

const (
	ListFile        = "testing_set.txt"
	GroundTruthFile = "groundtruth.txt"
	FramesDir       = "img"
)

// Dataset is list of videos under the root directory
type Dataset struct {
	root  string
	names []string
}

// Open reads list of videos. The list itself is not validated against directories.
func Open(root string) (*Dataset, error) {
	file, err := os.Open(filepath.Join(root, ListFile))
	if err != nil {
		return nil, errors.Wrap(err, "Can't open list of videos")
	}
	defer file.Close()

	names := []string{}
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		name := strings.TrimSpace(scanner.Text())
		if name == "" {
			continue
		}
		names = append(names, name)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "Can't read list of videos")
	}
	return &Dataset{
		root:  root,
		names: names,
	}, nil
}

// Root returns dataset directory
func (ds *Dataset) Root() string {
	return ds.root
}

// Names returns video names in the list order
func (ds *Dataset) Names() []string {
	return ds.names
}

// Videos returns all videos of the dataset in the list order
func (ds *Dataset) Videos() []eval.Video[gocv.Mat] {
	videos := make([]eval.Video[gocv.Mat], 0, len(ds.names))
	for _, name := range ds.names {
		videos = append(videos, NewVideo(ds.root, name))
	}
	return videos
}

// Video is a single labeled sequence. It implements eval.Video[gocv.Mat]
type Video struct {
	dir  string
	name string
}

func NewVideo(root, name string) *Video {
	return &Video{
		dir:  filepath.Join(root, name),
		name: name,
	}
}

func (v *Video) Name() string {
	return v.name
}

// FramePaths returns image files sorted by name
func (v *Video) FramePaths() ([]string, error) {
	dir := filepath.Join(v.dir, FramesDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrap(err, "Can't list frames")
	}
	paths := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	return paths, nil
}

// GroundTruth parses ground truth boxes of the video
func (v *Video) GroundTruth() ([]eval.Box, error) {
	file, err := os.Open(filepath.Join(v.dir, GroundTruthFile))
	if err != nil {
		return nil, errors.Wrap(err, "Can't open ground truth")
	}
	defer file.Close()
	boxes, err := eval.ParseGroundTruth(file)
	if err != nil {
		return nil, errors.Wrapf(err, "Can't parse ground truth of '%s'", v.name)
	}
	return boxes, nil
}

// Open prepares lazy frame decoding and reads ground truth
func (v *Video) Open() (eval.FrameSource[gocv.Mat], []eval.Box, error) {
	paths, err := v.FramePaths()
	if err != nil {
		return nil, nil, err
	}
	boxes, err := v.GroundTruth()
	if err != nil {
		return nil, nil, err
	}
	return NewFrames(paths), boxes, nil
}

// Frames decodes images on demand. It implements eval.FrameSource[gocv.Mat]
type Frames struct {
	paths []string
}

func NewFrames(paths []string) *Frames {
	return &Frames{
		paths: paths,
	}
}

func (f *Frames) Len() int {
	return len(f.paths)
}

// Frame decodes color image. Unreadable file is an error
func (f *Frames) Frame(index int) (gocv.Mat, error) {
	if index < 0 || index >= len(f.paths) {
		return gocv.Mat{}, errors.Errorf("frame index %d is out of range [0, %d)", index, len(f.paths))
	}
	frame := gocv.IMRead(f.paths[index], gocv.IMReadColor)
	if frame.Empty() {
		frame.Close()
		return gocv.Mat{}, errors.Errorf("Can't decode image '%s'", f.paths[index])
	}
	return frame, nil
}

// Release frees decoded image
func (f *Frames) Release(frame gocv.Mat) {
	frame.Close()
}

func (f *Frames) Close() error {
	return nil
}
