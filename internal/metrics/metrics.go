package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the bot's Prometheus counters.
type Metrics struct {
	Commands       *prometheus.CounterVec
	ProviderErrors *prometheus.CounterVec
	RepliesSent    prometheus.Counter
	ReplyFailures  prometheus.Counter
}

// New registers the counters with the given registerer. Tests pass a fresh
// registry to avoid duplicate-registration panics.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		Commands: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "signalbot_commands_total",
			Help: "Inbound commands received, by command.",
		}, []string{"command"}),
		ProviderErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "signalbot_provider_errors_total",
			Help: "Market-data provider failures, by endpoint.",
		}, []string{"endpoint"}),
		RepliesSent: factory.NewCounter(prometheus.CounterOpts{
			Name: "signalbot_replies_sent_total",
			Help: "Outbound messages delivered to the transport.",
		}),
		ReplyFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "signalbot_reply_failures_total",
			Help: "Outbound messages the transport failed to deliver.",
		}),
	}
}
