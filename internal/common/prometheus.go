package common

import "github.com/prometheus/client_golang/prometheus"

const (
	HTTPRequestTotal           = "http_requests_total"
	HTTPRequestDurationSeconds = "http_request_duration_seconds"
	ReactionTotal              = "reactions_total"
)

var (
	PromCounters = map[string]*prometheus.CounterVec{
		HTTPRequestTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: HTTPRequestTotal,
			Help: "Count of all HTTP requests",
		}, []string{"path", "code"}),
		ReactionTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: ReactionTotal,
			Help: "Count of reaction requests by outcome",
		}, []string{"target", "kind", "outcome"}),
	}

	PromHistograms = map[string]*prometheus.HistogramVec{
		HTTPRequestDurationSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name: HTTPRequestDurationSeconds,
			Help: "Duration of all HTTP requests",
		}, []string{"path", "code"}),
	}
)

// RegisterPromCollectors must be called once per process before /metrics is
// served.
func RegisterPromCollectors(registerer prometheus.Registerer) error {
	for _, counter := range PromCounters {
		if err := registerer.Register(counter); err != nil {
			return err
		}
	}

	for _, histogram := range PromHistograms {
		if err := registerer.Register(histogram); err != nil {
			return err
		}
	}

	return nil
}
