// Package metrics exposes Prometheus instruments for the event pipeline and controller lifecycle.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Event pipeline metrics
var (
	EventsTranslated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mediactl_events_translated_total",
			Help: "Native events translated into application events",
		},
		[]string{"kind"},
	)

	EventsDropped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mediactl_events_dropped_total",
			Help: "Native events not delivered to listeners",
		},
		[]string{"reason"}, // "filtered", "shutdown"
	)

	ListenerFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mediactl_listener_failures_total",
			Help: "Listener hooks that panicked during a broadcast",
		},
		[]string{"kind"},
	)
)

// Dispatch queue metrics
var (
	QueueDepth = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "mediactl_dispatch_queue_depth",
			Help: "Tasks waiting in a dispatch queue",
		},
		[]string{"queue"},
	)

	TasksProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mediactl_dispatch_tasks_total",
			Help: "Tasks run by a dispatch queue worker",
		},
		[]string{"queue", "status"}, // "ok", "panic"
	)

	TaskDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mediactl_dispatch_task_duration_seconds",
			Help:    "Time spent running a single dispatch task",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
		[]string{"queue"},
	)
)

// Controller lifecycle metrics
var (
	ControllersActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "mediactl_controllers_active",
			Help: "Controllers constructed and not yet released",
		},
	)

	MediaBinds = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mediactl_media_binds_total",
			Help: "Attempts to bind a locator to a player",
		},
		[]string{"status"}, // "ok", "invalid"
	)

	SubItemsPlayed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "mediactl_sub_items_played_total",
			Help: "Sub-items started by the chainer",
		},
	)

	Repeats = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "mediactl_repeats_total",
			Help: "Media restarted by auto-repeat",
		},
	)

	VideoOutputDetections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mediactl_video_output_detections_total",
			Help: "Video output detection outcomes",
		},
		[]string{"result"}, // "available", "timeout", "cancelled"
	)
)
