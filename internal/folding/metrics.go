package folding

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus metrics for fold reconciliation.
//
// Metrics:
//   - foldkit_reconcile_total - reconciliation passes that were applied
//   - foldkit_reconcile_rejected_total - passes rejected for bad candidates
//   - foldkit_regions_total{outcome} - regions matched, created, evicted or preserved
//   - foldkit_live_regions - live regions after the last pass
type Metrics struct {
	ReconcileTotal prometheus.Counter
	RejectedTotal  prometheus.Counter
	RegionsTotal   *prometheus.CounterVec
	LiveRegions    prometheus.Gauge
}

// NewMetrics creates the metrics and registers them with reg. A nil reg
// leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		ReconcileTotal: f.NewCounter(prometheus.CounterOpts{
			Name: "foldkit_reconcile_total",
			Help: "Total number of applied fold reconciliations",
		}),
		RejectedTotal: f.NewCounter(prometheus.CounterOpts{
			Name: "foldkit_reconcile_rejected_total",
			Help: "Total number of reconciliations rejected for invalid candidates",
		}),
		RegionsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "foldkit_regions_total",
				Help: "Fold regions handled by reconciliation, by outcome",
			},
			[]string{"outcome"}, // "matched", "created", "evicted", "preserved"
		),
		LiveRegions: f.NewGauge(prometheus.GaugeOpts{
			Name: "foldkit_live_regions",
			Help: "Number of live fold regions after the last reconciliation",
		}),
	}
}

func (m *Metrics) observe(res Result, live int) {
	if m == nil {
		return
	}
	m.ReconcileTotal.Inc()
	m.RegionsTotal.WithLabelValues("matched").Add(float64(res.Matched))
	m.RegionsTotal.WithLabelValues("created").Add(float64(res.Created))
	m.RegionsTotal.WithLabelValues("evicted").Add(float64(res.Evicted))
	m.RegionsTotal.WithLabelValues("preserved").Add(float64(res.Preserved))
	m.LiveRegions.Set(float64(live))
}

func (m *Metrics) rejected() {
	if m == nil {
		return
	}
	m.RejectedTotal.Inc()
}
