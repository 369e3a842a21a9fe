package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	NameTotalSearches         = "total_searches"
	NameTotalBookings         = "total_bookings"
	NameTotalBookingConflicts = "total_booking_conflicts"
)

var TotalSearches = promauto.NewCounter(prometheus.CounterOpts{
	Name:      NameTotalSearches,
	Help:      "Total availability searches",
	Namespace: Namespace,
})

var TotalBookings = promauto.NewCounter(prometheus.CounterOpts{
	Name:      NameTotalBookings,
	Help:      "Total committed bookings",
	Namespace: Namespace,
})

var TotalBookingConflicts = promauto.NewCounter(prometheus.CounterOpts{
	Name:      NameTotalBookingConflicts,
	Help:      "Total booking attempts rejected because the slot was no longer free",
	Namespace: Namespace,
})
