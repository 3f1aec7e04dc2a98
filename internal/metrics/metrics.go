package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "photo_stories_http_requests_total",
			Help: "Количество HTTP-запросов по методу, пути и статусу",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "photo_stories_http_request_duration_seconds",
			Help:    "Длительность обработки HTTP-запросов",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	DraftSavesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "photo_stories_draft_saves_total",
			Help: "Количество сохранений черновиков по результату",
		},
		[]string{"result"},
	)

	PhotoUploadsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "photo_stories_photo_uploads_total",
			Help: "Количество загруженных фотографий",
		},
	)
)
