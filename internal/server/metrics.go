package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Pipeline metrics, exposed on /metrics.
var (
	framesProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "repcoach_frames_processed_total",
		Help: "Landmark frames run through the motion pipeline.",
	}, []string{"exercise"})

	repsCounted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "repcoach_reps_counted_total",
		Help: "Repetitions counted across all sessions.",
	}, []string{"exercise"})

	sessionsStarted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "repcoach_sessions_started_total",
		Help: "Live sessions started.",
	}, []string{"exercise"})

	liveSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "repcoach_live_sessions",
		Help: "Currently active live sessions.",
	})
)
