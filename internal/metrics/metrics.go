// Package metrics holds the service's Prometheus collectors.
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcome label values.
const (
	OutcomeFound    = "found"
	OutcomeNotFound = "not_found"
	OutcomeError    = "error"
	OutcomeSent     = "sent"
	OutcomeFailed   = "failed"
)

var (
	LocationSearches = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "bbq_location_searches_total",
		Help: "Location searches by outcome.",
	}, []string{"outcome"})

	ContactEmails = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "bbq_contact_emails_total",
		Help: "Contact form submissions by outcome.",
	}, []string{"outcome"})
)

// Register registers the collectors on reg, or on the default registerer
// when reg is nil. Registering twice is not an error.
func Register(reg prometheus.Registerer) error {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	for _, c := range []prometheus.Collector{LocationSearches, ContactEmails} {
		if err := reg.Register(c); err != nil {
			var already prometheus.AlreadyRegisteredError
			if !errors.As(err, &already) {
				return err
			}
		}
	}
	return nil
}

// ObserveSearch counts one location search.
func ObserveSearch(outcome string) {
	LocationSearches.WithLabelValues(outcome).Inc()
}

// ObserveContact counts one contact submission.
func ObserveContact(outcome string) {
	ContactEmails.WithLabelValues(outcome).Inc()
}
