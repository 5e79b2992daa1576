// Package metrics は推薦処理のPrometheusメトリクスを定義する。
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RecommendationsTotal は生成元ごとの推薦回数
	RecommendationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendations_total",
			Help: "Total number of recommendation batches by source",
		},
		[]string{"source"},
	)

	// RecommendationFallbacksTotal はヒューリスティックへの切り替え回数
	RecommendationFallbacksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendation_fallbacks_total",
			Help: "Total number of fallbacks to the heuristic scorer by reason",
		},
		[]string{"reason"},
	)

	// LLMRequestDuration はLLM APIの応答時間
	LLMRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "llm_request_duration_seconds",
			Help:    "Duration of chat completion requests in seconds",
			Buckets: []float64{0.25, 0.5, 1, 2, 5, 10, 20, 30, 60},
		},
		[]string{"status"},
	)

	// PlaceSearchTotal は店舗検索の回数
	PlaceSearchTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "place_search_total",
			Help: "Total number of place searches by provider and status",
		},
		[]string{"provider", "status"},
	)
)

const (
	FallbackNotConfigured = "not_configured"
	FallbackRemoteError   = "remote_error"
	FallbackNoCandidates  = "no_candidates"

	StatusOK    = "ok"
	StatusError = "error"
)

// RecordRecommendation は推薦の生成元を記録する
func RecordRecommendation(source string) {
	RecommendationsTotal.WithLabelValues(source).Inc()
}

// RecordFallback はヒューリスティックへの切り替え理由を記録する
func RecordFallback(reason string) {
	RecommendationFallbacksTotal.WithLabelValues(reason).Inc()
}

// ObserveLLMRequest はLLM APIの応答時間を記録する
func ObserveLLMRequest(start time.Time, err error) {
	status := StatusOK
	if err != nil {
		status = StatusError
	}
	LLMRequestDuration.WithLabelValues(status).Observe(time.Since(start).Seconds())
}

// RecordPlaceSearch は店舗検索の結果を記録する
func RecordPlaceSearch(provider string, err error) {
	status := StatusOK
	if err != nil {
		status = StatusError
	}
	PlaceSearchTotal.WithLabelValues(provider, status).Inc()
}
