package warning

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics tracks warning pipeline activity.
type Metrics struct {
	raised           prometheus.Counter
	lettersGenerated prometheus.Counter
	emailsSent       prometheus.Counter
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		raised: factory.NewCounter(prometheus.CounterOpts{
			Name: "bfcms_warnings_raised_total",
			Help: "Attendance warnings raised by the absence monitor.",
		}),
		lettersGenerated: factory.NewCounter(prometheus.CounterOpts{
			Name: "bfcms_warning_letters_generated_total",
			Help: "Warning letters rendered successfully.",
		}),
		emailsSent: factory.NewCounter(prometheus.CounterOpts{
			Name: "bfcms_warning_emails_sent_total",
			Help: "Warning emails delivered successfully.",
		}),
	}
}

func (m *Metrics) ObserveRaised() {
	if m != nil {
		m.raised.Inc()
	}
}

func (m *Metrics) ObserveLetterGenerated() {
	if m != nil {
		m.lettersGenerated.Inc()
	}
}

func (m *Metrics) ObserveEmailSent() {
	if m != nil {
		m.emailsSent.Inc()
	}
}
