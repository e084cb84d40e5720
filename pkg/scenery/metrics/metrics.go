// Package metrics exports navigator activity as Prometheus metrics.
//
// A Recorder is a PostTransitionFunc; chain it with the application's own
// post hook:
//
//	rec := metrics.NewRecorder(prometheus.DefaultRegisterer)
//	opts.PostTransition = scenery.ChainPostTransitions(rec.PostTransition, indicator.Update)
package metrics

import (
	"errors"
	"strconv"

	"github.com/BrandonKowalski/scenery/pkg/scenery"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	namespace = "scenery"
	subsystem = "navigator"
)

// Recorder counts transitions and hook failures and tracks the active scene.
type Recorder struct {
	transitions *prometheus.CounterVec
	hookErrors  *prometheus.CounterVec
	active      prometheus.Gauge
}

// NewRecorder registers the navigator metrics with reg.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	factory := promauto.With(reg)
	return &Recorder{
		transitions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "transitions_total",
				Help:      "Committed transitions by trigger group and whether the scene changed",
			},
			[]string{"trigger", "moved"},
		),
		hookErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "hook_errors_total",
				Help:      "Transition hook failures by phase",
			},
			[]string{"phase"},
		),
		active: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "active_index",
				Help:      "Index of the active scene",
			},
		),
	}
}

// PostTransition records a committed transition.
func (r *Recorder) PostTransition(res scenery.Result, evt *scenery.Event) error {
	trigger := scenery.TriggerNone
	if evt != nil {
		trigger = evt.Trigger
	}
	r.transitions.WithLabelValues(trigger.String(), strconv.FormatBool(res.Current != res.Previous)).Inc()
	r.active.Set(float64(res.Current))
	return nil
}

// ObserveError counts err if it came out of a transition hook.
func (r *Recorder) ObserveError(err error) {
	var hookErr *scenery.HookError
	if errors.As(err, &hookErr) {
		r.hookErrors.WithLabelValues(hookErr.Phase).Inc()
	}
}

// SetActive seeds the active scene gauge, e.g. with the initial index.
func (r *Recorder) SetActive(index int) {
	r.active.Set(float64(index))
}
