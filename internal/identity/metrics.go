package identity

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var batchCallsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "loqui_client",
		Name:      "identity_batch_calls_total",
		Help:      "Batched identity resolution calls, by lookup kind.",
	},
	[]string{"kind"},
)
