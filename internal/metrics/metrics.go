package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mockapi_requests_total",
			Help: "Order API requests by platform and outcome",
		},
		[]string{"platform", "outcome"}, // ok|bad_request|unauthorized|rate_limited|error
	)

	OrdersGeneratedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mockapi_orders_generated_total",
			Help: "Mock orders inserted by the generator, per platform",
		},
		[]string{"platform"},
	)
)

func MustRegister(r prometheus.Registerer) {
	r.MustRegister(
		RequestsTotal,
		OrdersGeneratedTotal,
	)
}
