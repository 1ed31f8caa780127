// Package metrics exposes progress of a benchmark run to Prometheus.
package metrics

import (
	"net/http"

	"github.com/LdDl/trackbench/eval"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

const namespace = "trackbench"

// Metrics holds collectors of a single benchmark run registered in own registry
type Metrics struct {
	registry        *prometheus.Registry
	framesEvaluated *prometheus.CounterVec
	validFrames     *prometheus.CounterVec
	trackerFailures *prometheus.CounterVec
	videos          *prometheus.CounterVec
	scores          *prometheus.GaugeVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		framesEvaluated: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "frames_evaluated_total",
				Help:      "Number of frames passed through tracker.",
			},
			[]string{"tracker"},
		),
		validFrames: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "valid_frames_total",
				Help:      "Number of frames with object present.",
			},
			[]string{"tracker"},
		),
		trackerFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "tracker_failures_total",
				Help:      "Number of failed tracker calls.",
			},
			[]string{"tracker", "stage"},
		),
		videos: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "videos_total",
				Help:      "Number of processed videos.",
			},
			[]string{"tracker", "status"},
		),
		scores: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "score",
				Help:      "Final area under success curve.",
			},
			[]string{"tracker", "metric"},
		),
	}
	m.registry.MustRegister(m.framesEvaluated)
	m.registry.MustRegister(m.validFrames)
	m.registry.MustRegister(m.trackerFailures)
	m.registry.MustRegister(m.videos)
	m.registry.MustRegister(m.scores)
	return m
}

// Registry returns registry with all collectors of the run
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveVideo accounts finished (tracker, video) run
func (m *Metrics) ObserveVideo(tracker string, samples *eval.VideoSamples, err error) {
	if err != nil {
		m.videos.WithLabelValues(tracker, "failed").Inc()
		return
	}
	m.videos.WithLabelValues(tracker, "ok").Inc()
	m.framesEvaluated.WithLabelValues(tracker).Add(float64(samples.Frames))
	m.validFrames.WithLabelValues(tracker).Add(float64(samples.ValidFrames))
	m.trackerFailures.WithLabelValues(tracker, "init").Add(float64(samples.InitFailures))
	m.trackerFailures.WithLabelValues(tracker, "update").Add(float64(samples.UpdateFailures))
}

// ObserveRow publishes final scores. Aborted trackers have no scores
func (m *Metrics) ObserveRow(row eval.Row) {
	if row.Err != nil {
		return
	}
	for _, metric := range eval.Metrics {
		m.scores.WithLabelValues(row.Name, metric.String()).Set(row.Scores.Get(metric))
	}
}

// Handler returns HTTP handler for the run's registry
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Serve starts HTTP server with /metrics endpoint in background
func (m *Metrics) Serve(addr string, logger logrus.FieldLogger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	server := &http.Server{
		Addr:    addr,
		Handler: mux,
	}
	go func() {
		logger.Infof("Starting metrics server on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Error("Metrics server failed")
		}
	}()
	return server
}
