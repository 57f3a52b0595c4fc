// Package metrics defines and registers all custom Prometheus metrics for
// the Kambaz API. It is the single source of truth for metric names, labels,
// and help strings. Metrics register with the default registry via promauto
// at package load; the HTTP surface increments them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "kambaz"

// SignupsTotal counts accounts created through the signup flow.
var SignupsTotal = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: namespace,
	Name:      "signups_total",
	Help:      "Total number of successful signups.",
})

// SigninsTotal counts sign-in attempts.
// Label:
//   - result: "success" or "failure"
var SigninsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signins_total",
		Help:      "Total number of sign-in attempts, labelled by result.",
	},
	[]string{"result"},
)

// SignoutsTotal counts destroyed sessions.
var SignoutsTotal = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: namespace,
	Name:      "signouts_total",
	Help:      "Total number of sign-outs.",
})

// CoursesCreatedTotal counts courses created through any path.
var CoursesCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: namespace,
	Name:      "courses_created_total",
	Help:      "Total number of courses created.",
})

// EnrollmentsCreatedTotal counts enrollment rows inserted.
var EnrollmentsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: namespace,
	Name:      "enrollments_created_total",
	Help:      "Total number of enrollments created.",
})
