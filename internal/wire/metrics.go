package wire

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "loqui_client",
			Name:      "requests_total",
			Help:      "HTTP exchanges performed, by method.",
		},
		[]string{"method"},
	)

	cacheHitsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "loqui_client",
			Name:      "response_cache_hits_total",
			Help:      "Requests answered from the response cache without network activity.",
		},
	)

	cacheMissesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "loqui_client",
			Name:      "response_cache_misses_total",
			Help:      "Cacheable requests that had to go to the network.",
		},
	)
)
