package editor

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var autosaveTriggers = promauto.NewCounter(prometheus.CounterOpts{
	Name: "editor_autosave_triggers_total",
	Help: "Number of content changes that armed the autosave timer",
})

var saveResults = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "editor_saves_total",
	Help: "Number of save calls by origin and result",
}, []string{"origin", "result"})

var saveDuration = promauto.NewHistogram(prometheus.HistogramOpts{
	Name:    "editor_save_duration_seconds",
	Help:    "Duration of save calls to the backend",
	Buckets: prometheus.ExponentialBuckets(0.01, 2, 12),
})

var autosaveSkipped = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "editor_autosave_skipped_total",
	Help: "Number of timer fires that did not save",
}, []string{"reason"})
