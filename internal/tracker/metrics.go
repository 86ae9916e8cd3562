package tracker

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	updatesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "screentime_updates_total",
		Help: "Accepted screen-time updates.",
	})
	minutesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "screentime_minutes_total",
		Help: "Sum of accepted screen-time increments in minutes.",
	})
	screenshotsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "screentime_screenshots_total",
		Help: "Screenshots stored with an update.",
	})
	registrationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "screentime_registrations_total",
		Help: "Accounts created.",
	})
	loginsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "screentime_logins_total",
		Help: "Login attempts by outcome.",
	}, []string{"outcome"})
)
