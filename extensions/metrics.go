package extensions

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/statem-go/statem"
)

// Metrics is an extension that exports machine activity as Prometheus
// counters, partitioned by machine name.
type Metrics[S, E comparable] struct {
	statem.ExtensionBase[S, E]

	queued     *prometheus.CounterVec
	fired      *prometheus.CounterVec
	declined   *prometheus.CounterVec
	switched   *prometheus.CounterVec
	exceptions *prometheus.CounterVec
}

// NewMetrics creates a metrics extension and registers its collectors. A nil
// registerer falls back to the default registry.
func NewMetrics[S, E comparable](reg prometheus.Registerer) *Metrics[S, E] {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	labels := []string{"machine"}
	return &Metrics[S, E]{
		queued: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "statem_events_queued_total",
			Help: "Events accepted into a machine's queue.",
		}, labels),
		fired: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "statem_events_fired_total",
			Help: "Events that fired a transition.",
		}, labels),
		declined: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "statem_transitions_declined_total",
			Help: "Events for which no transition fired.",
		}, labels),
		switched: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "statem_state_switches_total",
			Help: "Completed state changes.",
		}, labels),
		exceptions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "statem_exceptions_total",
			Help: "User code errors funnelled through the exception channel.",
		}, labels),
	}
}

func (m *Metrics[S, E]) EventQueued(info statem.Info[S, E], event E, arg any) {
	m.queued.WithLabelValues(info.Name()).Inc()
}

func (m *Metrics[S, E]) EventQueuedWithPriority(info statem.Info[S, E], event E, arg any) {
	m.queued.WithLabelValues(info.Name()).Inc()
}

func (m *Metrics[S, E]) FiredEvent(info statem.Info[S, E], ctx *statem.TransitionContext[S, E]) {
	m.fired.WithLabelValues(info.Name()).Inc()
}

func (m *Metrics[S, E]) SkippedTransition(info statem.Info[S, E], event E, arg any) {
	m.declined.WithLabelValues(info.Name()).Inc()
}

func (m *Metrics[S, E]) SwitchedState(info statem.Info[S, E], old *S, new S) {
	m.switched.WithLabelValues(info.Name()).Inc()
}

func (m *Metrics[S, E]) HandledGuardException(info statem.Info[S, E], ctx *statem.TransitionContext[S, E], err error) {
	m.exceptions.WithLabelValues(info.Name()).Inc()
}

func (m *Metrics[S, E]) HandledTransitionException(info statem.Info[S, E], ctx *statem.TransitionContext[S, E], err error) {
	m.exceptions.WithLabelValues(info.Name()).Inc()
}

func (m *Metrics[S, E]) HandledEntryActionException(info statem.Info[S, E], ctx *statem.TransitionContext[S, E], stateID S, err error) {
	m.exceptions.WithLabelValues(info.Name()).Inc()
}

func (m *Metrics[S, E]) HandledExitActionException(info statem.Info[S, E], ctx *statem.TransitionContext[S, E], stateID S, err error) {
	m.exceptions.WithLabelValues(info.Name()).Inc()
}
