package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/LdDl/trackbench/eval"
	"github.com/k0kubun/go-ansi"
	"github.com/mitchellh/colorstring"
	"github.com/schollz/progressbar/v3"
)

// progress draws one bar per tracker: videos processed so far
type progress struct {
	writer io.Writer
	bar    *progressbar.ProgressBar
}

func newProgress() *progress {
	return &progress{
		writer: ansi.NewAnsiStderr(),
	}
}

func (p *progress) start(tracker string, videos int) {
	p.bar = progressbar.NewOptions(videos,
		progressbar.OptionSetWriter(p.writer),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(15),
		progressbar.OptionSetDescription(fmt.Sprintf("[cyan][%s][reset] Evaluate tracker", tracker)),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))
}

func (p *progress) advance(tracker, video string) {
	if p.bar == nil {
		return
	}
	p.bar.Describe(fmt.Sprintf("[cyan][%s][reset] %s", tracker, video))
	p.bar.Add(1)
}

func (p *progress) finish(row eval.Row) {
	if p.bar == nil {
		return
	}
	p.bar.Finish()
	fmt.Fprintln(p.writer)
	p.bar = nil
}

// printReport writes the result table. Header is bold, aborted trackers are red
func printReport(w io.Writer, report *eval.Report) {
	header := eval.FormatLine(report.Header())
	colorstring.Fprintln(w, "[bold]"+header)
	fmt.Fprintln(w, strings.Repeat("-", len(header)))
	for _, row := range report.Rows {
		line := eval.FormatLine(row.Cells())
		if row.Err != nil {
			colorstring.Fprintln(w, "[red]"+line)
			continue
		}
		fmt.Fprintln(w, line)
	}
}
