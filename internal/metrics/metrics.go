package metrics

import (
	"time"

	"github.com/UnknownOlympus/mapquest/geocoding"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the collectors describing calls made by the geocoding client.
// It satisfies geocoding.RequestObserver.
type Metrics struct {
	Requests        *prometheus.CounterVec
	RequestSeconds  *prometheus.HistogramVec
	LocationsPerHit prometheus.Histogram
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		Requests: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "geocoding_requests_total",
			Help: "Total number of geocoding API calls by endpoint and outcome.",
		}, []string{"endpoint", "outcome"}),
		RequestSeconds: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "geocoding_request_duration_seconds",
			Help:    "Duration of requests to the geocoding API, decoding included.",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),
		LocationsPerHit: promauto.With(reg).NewHistogram(prometheus.HistogramOpts{
			Name:    "geocoding_locations_returned",
			Help:    "Number of candidate locations in successfully decoded responses.",
			Buckets: []float64{0, 1, 2, 5, 10, 25},
		}),
	}
}

// ObserveRequest records one call.
func (m *Metrics) ObserveRequest(endpoint, outcome string, duration time.Duration, locations int) {
	m.Requests.WithLabelValues(endpoint, outcome).Inc()
	m.RequestSeconds.WithLabelValues(endpoint).Observe(duration.Seconds())

	if outcome == geocoding.OutcomeSuccess {
		m.LocationsPerHit.Observe(float64(locations))
	}
}
