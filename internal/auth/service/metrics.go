package service

import (
	"github.com/pkravets/huddle-auth/internal/observability/metrics"
)

func incrementRegistrations(result string) {
	metrics.RegistrationsTotal.WithLabelValues(result).Inc()
}

func incrementLogins(result string) {
	metrics.LoginsTotal.WithLabelValues(result).Inc()
}

func incrementAvailabilityChecks(field string, result string) {
	metrics.AvailabilityChecksTotal.WithLabelValues(field, result).Inc()
}
