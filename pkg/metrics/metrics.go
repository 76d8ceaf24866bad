package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// 标注调用延迟（毫秒）
	AnnotationLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "annotation_call_latency_ms",
			Help:    "Completion backend call latency in milliseconds",
			Buckets: prometheus.ExponentialBuckets(100, 2, 10), // 100ms to ~100s
		},
		[]string{"kind", "status"},
	)

	// 降级计数：标注失败后返回 fallback 的次数
	AnnotationFallbackCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "annotation_fallback_count",
			Help: "Total number of annotations served from the static fallback",
		},
		[]string{"kind", "reason"},
	)

	// HTTP 请求延迟（秒）
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"method", "path", "status"},
	)

	// MQ 消费延迟（毫秒）
	MQConsumeLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mq_consume_latency_ms",
			Help:    "MQ message consumption latency in milliseconds",
			Buckets: prometheus.ExponentialBuckets(10, 2, 10), // 10ms to ~10s
		},
		[]string{"routing_key", "queue"},
	)

	// 记录创建计数
	RecordChangeCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "record_change_count",
			Help: "Total number of record changes published",
		},
		[]string{"record_type", "action"}, // record_type: task, event, recommendation
	)
)

// RecordAnnotationLatency 记录标注调用延迟
func RecordAnnotationLatency(kind, status string, duration time.Duration) {
	AnnotationLatency.WithLabelValues(kind, status).Observe(float64(duration.Milliseconds()))
}

// IncrementAnnotationFallback 增加降级计数
func IncrementAnnotationFallback(kind, reason string) {
	AnnotationFallbackCount.WithLabelValues(kind, reason).Inc()
}

// RecordHTTPRequestDuration 记录 HTTP 请求延迟
func RecordHTTPRequestDuration(method, path, status string, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// RecordMQConsumeLatency 记录 MQ 消费延迟
func RecordMQConsumeLatency(routingKey, queue string, duration time.Duration) {
	MQConsumeLatency.WithLabelValues(routingKey, queue).Observe(float64(duration.Milliseconds()))
}

// IncrementRecordChange 增加记录变更计数
func IncrementRecordChange(recordType, action string) {
	RecordChangeCount.WithLabelValues(recordType, action).Inc()
}
