// Package metrics defines the Prometheus instruments the engine exposes
// on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"fulfillment/internal/core/ports"
)

// Metrics bundles all counters so the composition root can register them
// once and hand them to the adapters that increment them.
type Metrics struct {
	AssignmentProposalsTotal   prometheus.Counter
	AssignmentConflictsTotal   prometheus.Counter
	CompensationFailuresTotal  prometheus.Counter
	SettlementObligationsTotal prometheus.Counter
	ChangeSignalsTotal         *prometheus.CounterVec
}

// New creates and registers all engine counters on the given registerer.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		AssignmentProposalsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "assignment_proposals_total",
			Help: "Total number of assignment proposals attempted",
		}),
		AssignmentConflictsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "assignment_conflicts_total",
			Help: "Total number of proposals lost to a concurrent claim",
		}),
		CompensationFailuresTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "assignment_compensation_failures_total",
			Help: "Total number of failed claim reverts leaving an order stuck assigned",
		}),
		SettlementObligationsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "settlement_obligations_created_total",
			Help: "Total number of settlement rows created by reconciliation",
		}),
		ChangeSignalsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "change_signals_published_total",
			Help: "Total number of table-changed signals published in-process",
		}, []string{"table"}),
	}

	reg.MustRegister(
		m.AssignmentProposalsTotal,
		m.AssignmentConflictsTotal,
		m.CompensationFailuresTotal,
		m.SettlementObligationsTotal,
		m.ChangeSignalsTotal,
	)
	return m
}

// InstrumentedPublisher wraps a ChangePublisher and counts every signal by
// table.
type InstrumentedPublisher struct {
	next    ports.ChangePublisher
	signals *prometheus.CounterVec
}

// NewInstrumentedPublisher decorates the given publisher with the
// change-signal counter.
func NewInstrumentedPublisher(next ports.ChangePublisher, m *Metrics) *InstrumentedPublisher {
	return &InstrumentedPublisher{next: next, signals: m.ChangeSignalsTotal}
}

func (p *InstrumentedPublisher) Publish(table string) {
	p.signals.WithLabelValues(table).Inc()
	p.next.Publish(table)
}
