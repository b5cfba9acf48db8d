// Package metrics records Prometheus metrics for a bucketcrypt run and
// writes them in the node-exporter textfile format.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/imamik/bucketcrypt/internal/observe"
)

const namespace = "bucketcrypt"

// Recorder collects run metrics from observer events. Each Recorder owns
// its registry so runs and tests never share state.
type Recorder struct {
	registry *prometheus.Registry
	bucket   string

	listPages      prometheus.Counter
	objectsListed  prometheus.Counter
	copiesTotal    *prometheus.CounterVec
	retriesTotal   *prometheus.CounterVec
	bytesEncrypted prometheus.Counter
	copyDuration   prometheus.Histogram
	runDuration    prometheus.Gauge
	lastRunSuccess prometheus.Gauge
	lastRunTime    prometheus.Gauge
}

// NewRecorder creates a Recorder whose series carry a bucket label.
func NewRecorder(bucket string) *Recorder {
	labels := prometheus.Labels{"bucket": bucket}
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		bucket:   bucket,

		listPages: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "list",
			Name:        "pages_total",
			Help:        "Total number of listing pages retrieved",
			ConstLabels: labels,
		}),
		objectsListed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "list",
			Name:        "objects_total",
			Help:        "Total number of objects enumerated",
			ConstLabels: labels,
		}),
		copiesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "copy",
			Name:        "requests_total",
			Help:        "Total number of copy-in-place requests by result",
			ConstLabels: labels,
		}, []string{"result"}),
		retriesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "run",
			Name:        "retries_total",
			Help:        "Total number of retried transient list and copy failures by phase",
			ConstLabels: labels,
		}, []string{"phase"}),
		bytesEncrypted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "copy",
			Name:        "bytes_total",
			Help:        "Total size of re-encrypted objects in bytes",
			ConstLabels: labels,
		}),
		copyDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace:   namespace,
			Subsystem:   "copy",
			Name:        "duration_seconds",
			Help:        "Duration of copy-in-place requests in seconds",
			ConstLabels: labels,
			Buckets:     prometheus.ExponentialBuckets(0.01, 2, 12), // 10ms to ~20s
		}),
		runDuration: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Subsystem:   "run",
			Name:        "duration_seconds",
			Help:        "Duration of the last run in seconds",
			ConstLabels: labels,
		}),
		lastRunSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Subsystem:   "run",
			Name:        "success",
			Help:        "Whether the last run re-encrypted every object (1) or aborted (0)",
			ConstLabels: labels,
		}),
		lastRunTime: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Subsystem:   "run",
			Name:        "last_timestamp_seconds",
			Help:        "Unix time the last run finished",
			ConstLabels: labels,
		}),
	}

	r.registry.MustRegister(
		r.listPages,
		r.objectsListed,
		r.copiesTotal,
		r.retriesTotal,
		r.bytesEncrypted,
		r.copyDuration,
		r.runDuration,
		r.lastRunSuccess,
		r.lastRunTime,
	)
	return r
}

// Registry returns the registry holding the recorder's collectors.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Event implements observe.Observer.
func (r *Recorder) Event(e observe.Event) {
	switch e.Type {
	case observe.EventListPage:
		r.listPages.Inc()
	case observe.EventListCompleted:
		r.objectsListed.Add(float64(e.Total))
	case observe.EventObjectEncrypted:
		r.copiesTotal.WithLabelValues("success").Inc()
		r.bytesEncrypted.Add(float64(e.Bytes))
		r.copyDuration.Observe(e.Duration.Seconds())
	case observe.EventObjectFailed:
		r.copiesTotal.WithLabelValues("error").Inc()
	case observe.EventObjectRetrying:
		r.retriesTotal.WithLabelValues(e.Phase).Inc()
	case observe.EventRunCompleted:
		r.finishRun(true, e.Duration)
	case observe.EventRunFailed:
		r.finishRun(false, e.Duration)
	}
}

// Progress implements observe.Observer. Progress is derived from events.
func (r *Recorder) Progress(string, int, int) {}

// WithFields implements observe.Observer. Context fields are not labels.
func (r *Recorder) WithFields(map[string]string) observe.Observer {
	return r
}

func (r *Recorder) finishRun(success bool, duration time.Duration) {
	r.runDuration.Set(duration.Seconds())
	if success {
		r.lastRunSuccess.Set(1)
	} else {
		r.lastRunSuccess.Set(0)
	}
	r.lastRunTime.SetToCurrentTime()
}

// WriteTextfile writes every metric to path in the text exposition format.
// The file is written to a temporary name and renamed into place.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}
	return nil
}
