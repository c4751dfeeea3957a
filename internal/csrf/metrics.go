package csrf

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var tokenFetchesTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: "loqui_client",
		Name:      "csrf_token_fetches_total",
		Help:      "Anti-CSRF token fetches started (single-flight, so one per miss or invalidation).",
	},
)
