package metrics

import "github.com/prometheus/client_golang/prometheus"

// ChatMetrics exposes counters/histograms for /chat turns.
type ChatMetrics struct {
	repliesTotal  *prometheus.CounterVec
	errorsTotal   *prometheus.CounterVec
	replyDuration prometheus.Histogram
}

func NewChatMetrics(reg prometheus.Registerer) *ChatMetrics {
	m := &ChatMetrics{
		repliesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "bank_assistant",
			Subsystem: "chat",
			Name:      "replies_total",
			Help:      "Total /chat replies by detected intent",
		}, []string{"intent", "farewell"}),
		errorsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "bank_assistant",
			Subsystem: "chat",
			Name:      "errors_total",
			Help:      "Total failed /chat requests by error code",
		}, []string{"code"}),
		replyDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "bank_assistant",
			Subsystem: "chat",
			Name:      "reply_duration_seconds",
			Help:      "Latency of /chat reply generation",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.repliesTotal, m.errorsTotal, m.replyDuration)
	return m
}

func (m *ChatMetrics) ObserveReply(intent string, farewell bool, seconds float64) {
	if m == nil {
		return
	}
	label := "false"
	if farewell {
		label = "true"
	}
	m.repliesTotal.WithLabelValues(intent, label).Inc()
	m.replyDuration.Observe(seconds)
}

func (m *ChatMetrics) ObserveError(code string) {
	if m == nil {
		return
	}
	m.errorsTotal.WithLabelValues(code).Inc()
}
