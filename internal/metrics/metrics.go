package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/beetlebugorg/osmclip/pkg/osm"
)

const namespace = "osmclip"

// Recorder mirrors extraction counters into a Prometheus registry owned by
// one run. The registry is written out in text format at exit, for the
// node_exporter textfile collector.
type Recorder struct {
	registry *prometheus.Registry

	linesRead      prometheus.Gauge
	nodesKept      prometheus.Gauge
	waysKept       prometheus.Gauge
	relationsKept  prometheus.Gauge
	elements       prometheus.Gauge
	dropped        prometheus.Gauge
	malformed      prometheus.Gauge
	nonWhitelisted prometheus.Gauge
	bytesWritten   prometheus.Gauge
	reports        prometheus.Counter
	duration       prometheus.Gauge
	lastSuccess    prometheus.Gauge
}

// NewRecorder creates a recorder with all metrics registered.
func NewRecorder() *Recorder {
	gauge := func(name, help string) prometheus.Gauge {
		return prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      name,
			Help:      help,
		})
	}

	r := &Recorder{
		registry:       prometheus.NewRegistry(),
		linesRead:      gauge("lines_read", "Input lines read"),
		nodesKept:      gauge("nodes_kept", "Nodes inside the region"),
		waysKept:       gauge("ways_kept", "Ways whose nodes were all kept"),
		relationsKept:  gauge("relations_kept", "Relations kept with at least one member line"),
		elements:       gauge("elements_scanned", "Complete elements scanned"),
		dropped:        gauge("elements_dropped", "Elements discarded by a keep decision"),
		malformed:      gauge("elements_malformed", "Elements discarded for missing or invalid attributes"),
		nonWhitelisted: gauge("lines_non_whitelisted", "Nested lines and blocks dropped for an unknown tag"),
		bytesWritten:   gauge("output_bytes", "Bytes written to the output"),
		reports: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "progress_reports_total",
			Help:      "Progress reports emitted",
		}),
		duration:    gauge("run_duration_seconds", "Wall time of the extraction"),
		lastSuccess: gauge("last_success_timestamp_seconds", "Unix time the last successful run finished"),
	}

	r.registry.MustRegister(
		r.linesRead, r.nodesKept, r.waysKept, r.relationsKept,
		r.elements, r.dropped, r.malformed, r.nonWhitelisted,
		r.bytesWritten, r.reports, r.duration, r.lastSuccess,
	)
	return r
}

// Observe records a progress snapshot.
func (r *Recorder) Observe(s osm.Stats) {
	r.linesRead.Set(float64(s.Lines))
	r.nodesKept.Set(float64(s.Nodes))
	r.waysKept.Set(float64(s.Ways))
	r.relationsKept.Set(float64(s.Relations))
	r.elements.Set(float64(s.Elements))
	r.dropped.Set(float64(s.Dropped))
	r.malformed.Set(float64(s.Malformed))
	r.nonWhitelisted.Set(float64(s.NonWhitelisted))
	r.bytesWritten.Set(float64(s.Bytes))
	r.reports.Inc()
}

// Finish records the run duration, and the completion time when ok.
func (r *Recorder) Finish(elapsed time.Duration, ok bool) {
	r.duration.Set(elapsed.Seconds())
	if ok {
		r.lastSuccess.SetToCurrentTime()
	}
}

// Registry exposes the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// WriteTextfile writes all metrics to path in Prometheus text format.
// The file is replaced atomically.
func (r *Recorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}
