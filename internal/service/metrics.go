package service

import (
	"github.com/Eursukkul/screening-service/internal/models"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	bookingsSubmittedCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "screening",
			Name:      "bookings_submitted_total",
			Help:      "Booking submissions by result.",
		},
		[]string{"result"}, // success, invalid, not_found, conflict, error
	)

	bookingsResolvedCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "screening",
			Name:      "bookings_resolved_total",
			Help:      "Booking resolutions by requested status and result.",
		},
		[]string{"status", "result"}, // status: approved, denied, pending, invalid
	)

	whitelistChecksCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "screening",
			Name:      "whitelist_checks_total",
			Help:      "Whitelist lookups by outcome.",
		},
		[]string{"result"}, // allowed, screened, invalid, error
	)
)

// statusLabel keeps the status label to the known set so arbitrary request
// input cannot create new series.
func statusLabel(target models.BookingStatus) string {
	if target.Valid() {
		return string(target)
	}
	return "invalid"
}
