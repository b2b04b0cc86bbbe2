package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeOK       = "ok"
	outcomeRejected = "rejected"
	outcomeConflict = "conflict"
	outcomeError    = "error"
)

var (
	interviewTransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "interview_transitions_total",
			Help: "Interview request transitions by outcome",
		},
		[]string{"transition", "outcome"},
	)

	calendarFallbacksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "calendar_fallbacks_total",
			Help: "Accepted interviews that got a fallback meeting link",
		},
		[]string{"reason"},
	)
)
