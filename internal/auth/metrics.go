package auth

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics tracks authentication outcomes.
type Metrics struct {
	logins *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		logins: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "bfcms_auth_logins_total",
			Help: "Login attempts by outcome.",
		}, []string{"outcome"}),
	}
}

func (m *Metrics) ObserveLogin(outcome string) {
	if m == nil {
		return
	}
	m.logins.WithLabelValues(outcome).Inc()
}
