package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/LdDl/trackbench/eval"
	"github.com/LdDl/trackbench/lasot"
	"github.com/LdDl/trackbench/metrics"
	"github.com/LdDl/trackbench/trackers"
	"github.com/k0kubun/go-ansi"
	"github.com/sirupsen/logrus"
	"gocv.io/x/gocv"
)

var (
	datasetFlag       = flag.String("path_to_dataset", "LaSOTTesting", "Root of LaSOT testing set: directory with testing_set.txt and one folder per video")
	visualizationFlag = flag.Bool("visualization", false, "Show every frame with predicted and ground truth boxes")
	trackersFlag      = flag.String("trackers", "", "Comma separated tracker names. Empty means Boosting,MIL,KCF,MedianFlow,GOTURN,MOSSE,CSRT")
	configFlag        = flag.String("config", "", "Path to JSON configuration file. Explicitly set flags override its values")
	logLevelFlag      = flag.String("log-level", "info", "Log level: debug, info, warn, error")
	metricsAddrFlag   = flag.String("metrics-addr", "", "Address for Prometheus /metrics endpoint. Empty disables it")
)

func main() {
	flag.Parse()

	cfg := DefaultConfig()
	if *configFlag != "" {
		var err error
		cfg, err = LoadConfig(*configFlag, cfg)
		if err != nil {
			logrus.WithError(err).Fatal("Can't load configuration")
		}
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "path_to_dataset":
			cfg.Dataset = *datasetFlag
		case "visualization":
			cfg.Visualization = *visualizationFlag
		case "trackers":
			cfg.Trackers = ParseTrackerList(*trackersFlag)
		case "log-level":
			cfg.LogLevel = *logLevelFlag
		case "metrics-addr":
			cfg.MetricsAddr = *metricsAddrFlag
		}
	})

	logger := newLogger(cfg.LogLevel)
	kinds, err := cfg.Kinds()
	if err != nil {
		logger.WithError(err).Fatal("Bad tracker list")
	}
	dataset, err := lasot.Open(cfg.Dataset)
	if err != nil {
		logger.WithError(err).Fatal("Can't open dataset")
	}
	logger.WithField("dataset", dataset.Root()).Infof("Loaded %d videos", len(dataset.Names()))

	runMetrics := metrics.New()
	if cfg.MetricsAddr != "" {
		server := runMetrics.Serve(cfg.MetricsAddr, logger)
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := server.Shutdown(ctx); err != nil {
				logger.WithError(err).Warn("Can't stop metrics server")
			}
		}()
	}

	bar := newProgress()
	bench := eval.NewBenchmark(trackers.Entries(kinds), dataset.Videos())
	bench.Logger = logger
	bench.Hooks = eval.Hooks[gocv.Mat]{
		TrackerStarted: bar.start,
		VideoFinished: func(tracker, video string, samples *eval.VideoSamples, err error) {
			runMetrics.ObserveVideo(tracker, samples, err)
			bar.advance(tracker, video)
		},
		TrackerFinished: func(row eval.Row) {
			runMetrics.ObserveRow(row)
			bar.finish(row)
		},
	}
	if cfg.Visualization {
		view := newViewer()
		defer view.Close()
		bench.Hooks.FrameEvaluated = view.show
	}

	report := bench.Run()
	printReport(ansi.NewAnsiStdout(), report)
	for _, row := range report.Failed() {
		logger.WithField("tracker", row.Name).WithError(row.Err).Warn("Tracker has no scores")
	}
}

func newLogger(level string) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		logger.WithError(err).Warnf("Unknown log level '%s', using info", level)
		parsed = logrus.InfoLevel
	}
	logger.SetLevel(parsed)
	return logger
}
