package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics: все счётчики бота. Реестр свой, чтобы в тестах не ловить duplicate registration.
type Metrics struct {
	registry *prometheus.Registry

	FetchTotal       *prometheus.CounterVec // labels: source, result
	FetchDuration    *prometheus.HistogramVec
	SignalsTotal     *prometheus.CounterVec // labels: engine, direction
	QuestsNewTotal   *prometheus.CounterVec // labels: feed
	FeedErrorsTotal  *prometheus.CounterVec // labels: feed
	DispatchFailures prometheus.Counter
	TaskRunsTotal    *prometheus.CounterVec // labels: task, result
	CommandsTotal    *prometheus.CounterVec // labels: command
	Subscribers      prometheus.Gauge
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),

		FetchTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "signalbot_fetch_total",
			Help: "Outbound API requests by source and result",
		}, []string{"source", "result"}),
		FetchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "signalbot_fetch_duration_seconds",
			Help:    "Outbound API request latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"source"}),
		SignalsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "signalbot_signals_total",
			Help: "Non-NONE signals produced",
		}, []string{"engine", "direction"}),
		QuestsNewTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "signalbot_quests_new_total",
			Help: "Newly observed quest IDs",
		}, []string{"feed"}),
		FeedErrorsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "signalbot_feed_errors_total",
			Help: "Quest feed cycles that failed",
		}, []string{"feed"}),
		DispatchFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "signalbot_dispatch_failures_total",
			Help: "Messages that could not be delivered to a recipient",
		}),
		TaskRunsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "signalbot_task_runs_total",
			Help: "Recurring task runs by result",
		}, []string{"task", "result"}),
		CommandsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "signalbot_commands_total",
			Help: "Chat commands handled",
		}, []string{"command"}),
		Subscribers: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "signalbot_watch_subscribers",
			Help: "Chats with the signal watcher enabled",
		}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.FetchTotal,
		m.FetchDuration,
		m.SignalsTotal,
		m.QuestsNewTotal,
		m.FeedErrorsTotal,
		m.DispatchFailures,
		m.TaskRunsTotal,
		m.CommandsTotal,
		m.Subscribers,
	)
	return m
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveFetch: одна точка учёта для всех внешних клиентов. nil-safe.
func (m *Metrics) ObserveFetch(source string, seconds float64, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.FetchTotal.WithLabelValues(source, result).Inc()
	m.FetchDuration.WithLabelValues(source).Observe(seconds)
}

func (m *Metrics) ObserveTask(task string, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.TaskRunsTotal.WithLabelValues(task, result).Inc()
}
