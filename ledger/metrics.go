package ledger

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the ledger's Prometheus counters. A nil *Metrics is valid
// and records nothing.
type Metrics struct {
	groupsCreated     prometheus.Counter
	groupsDeleted     prometheus.Counter
	distributions     prometheus.Counter
	distributedAmount *prometheus.CounterVec
	rejectedCalls     *prometheus.CounterVec
}

// NewMetrics creates the ledger counters and registers them on reg.
// A nil reg returns nil metrics.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	if reg == nil {
		return nil, nil
	}
	m := &Metrics{
		groupsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "splitledger_groups_created_total",
			Help: "Number of groups created.",
		}),
		groupsDeleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "splitledger_groups_deleted_total",
			Help: "Number of groups deleted.",
		}),
		distributions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "splitledger_distributions_total",
			Help: "Number of committed distributions.",
		}),
		distributedAmount: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "splitledger_distributed_amount_total",
			Help: "Total amount distributed, by asset.",
		}, []string{"asset"}),
		rejectedCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "splitledger_rejected_calls_total",
			Help: "Mutating calls that returned an error, by operation.",
		}, []string{"op"}),
	}
	for _, c := range []prometheus.Collector{
		m.groupsCreated, m.groupsDeleted, m.distributions, m.distributedAmount, m.rejectedCalls,
	} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) groupCreated() {
	if m != nil {
		m.groupsCreated.Inc()
	}
}

func (m *Metrics) groupDeleted() {
	if m != nil {
		m.groupsDeleted.Inc()
	}
}

func (m *Metrics) distributed(asset string, amount int64) {
	if m == nil {
		return
	}
	m.distributions.Inc()
	m.distributedAmount.WithLabelValues(asset).Add(float64(amount))
}

func (m *Metrics) rejected(op string) {
	if m != nil {
		m.rejectedCalls.WithLabelValues(op).Inc()
	}
}
