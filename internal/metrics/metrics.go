package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "blog_http_requests_total",
	Help: "Number of HTTP requests by method, route and status code",
}, []string{"method", "route", "code"})

var HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "blog_http_request_duration_seconds",
	Help:    "Duration of HTTP requests",
	Buckets: prometheus.DefBuckets,
}, []string{"method", "route"})

var PostMutations = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "blog_post_mutations_total",
	Help: "Number of post mutations by event type",
}, []string{"event"})

var MalformedDocuments = promauto.NewCounter(prometheus.CounterOpts{
	Name: "blog_malformed_documents_total",
	Help: "Number of stored documents that failed structural validation",
})

var PublishedCacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "blog_published_cache_lookups_total",
	Help: "Published post cache lookups by result",
}, []string{"result"})

var AIGenerations = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "blog_ai_generations_total",
	Help: "AI generation requests by action and source (llm, cache, fallback)",
}, []string{"action", "source"})

var EventsForwarded = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "blog_events_forwarded_total",
	Help: "Post events forwarded to the event bus by result",
}, []string{"result"})
