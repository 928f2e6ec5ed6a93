// Package metrics exposes Prometheus counters for the render pipeline. A nil
// *Recorder is valid and records nothing.
package metrics

import (
	"errors"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "qrgen"

// Outcome label values.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Recorder tracks render pipeline statistics.
type Recorder struct {
	mu sync.Mutex

	rendersTotal   *prometheus.CounterVec
	loadsTotal     *prometheus.CounterVec
	imagesTotal    *prometheus.CounterVec
	clipboardTotal *prometheus.CounterVec

	registerer prometheus.Registerer
	registered bool
}

func newCounterVec(subsystem, name, help string, labels []string) *prometheus.CounterVec {
	return prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      name,
			Help:      help,
		},
		labels,
	)
}

// New creates a recorder bound to registerer, or the default registerer when
// nil. Call Register before exposing the metrics.
func New(registerer prometheus.Registerer) *Recorder {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	return &Recorder{
		registerer:     registerer,
		rendersTotal:   newCounterVec("render", "calls_total", "Render calls by the stage that settled them", []string{"stage"}),
		loadsTotal:     newCounterVec("backend", "loads_total", "Local backend load attempts", []string{"outcome"}),
		imagesTotal:    newCounterVec("remote", "images_total", "Remote image loads by service", []string{"service", "outcome"}),
		clipboardTotal: newCounterVec("clipboard", "writes_total", "Clipboard writes", []string{"outcome"}),
	}
}

// Register registers the collectors. Safe to call multiple times.
func (r *Recorder) Register() error {
	if r == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.registered {
		return nil
	}

	collectors := []prometheus.Collector{
		r.rendersTotal,
		r.loadsTotal,
		r.imagesTotal,
		r.clipboardTotal,
	}
	for _, c := range collectors {
		if err := r.registerer.Register(c); err != nil {
			var already prometheus.AlreadyRegisteredError
			if !errors.As(err, &already) {
				return err
			}
		}
	}

	r.registered = true
	return nil
}

// ObserveRender counts a settled render call.
func (r *Recorder) ObserveRender(stage string) {
	if r == nil {
		return
	}
	r.rendersTotal.WithLabelValues(stage).Inc()
}

// ObserveLoad counts a local backend load attempt.
func (r *Recorder) ObserveLoad(err error) {
	if r == nil {
		return
	}
	r.loadsTotal.WithLabelValues(outcome(err)).Inc()
}

// ObserveImage counts a remote image load or error event.
func (r *Recorder) ObserveImage(service string, err error) {
	if r == nil {
		return
	}
	r.imagesTotal.WithLabelValues(service, outcome(err)).Inc()
}

// ObserveClipboard counts a clipboard write.
func (r *Recorder) ObserveClipboard(err error) {
	if r == nil {
		return
	}
	r.clipboardTotal.WithLabelValues(outcome(err)).Inc()
}

func outcome(err error) string {
	if err != nil {
		return OutcomeFailure
	}
	return OutcomeSuccess
}
