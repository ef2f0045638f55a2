package api

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/vovakirdan/pattern-island/internal/events"
)

// Metrics are the Prometheus collectors fed from game events and HTTP traffic.
type Metrics struct {
	choices   *prometheus.CounterVec
	completed *prometheus.CounterVec
	solve     *prometheus.HistogramVec
	hints     *prometheus.CounterVec
	badges    *prometheus.CounterVec
	streams   prometheus.Gauge
	requests  *prometheus.CounterVec
	latency   *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		choices: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "patternisland",
			Name:      "choices_total",
			Help:      "Option picks by result.",
		}, []string{"result"}),
		completed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "patternisland",
			Name:      "levels_completed_total",
			Help:      "Completed levels by category, tier and boss flag.",
		}, []string{"category", "tier", "boss"}),
		solve: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "patternisland",
			Name:      "solve_seconds",
			Help:      "Time from level start to the correct pick.",
			Buckets:   []float64{1, 2, 3, 5, 7, 10, 15, 20, 30, 60},
		}, []string{"category"}),
		hints: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "patternisland",
			Name:      "hints_total",
			Help:      "Resolved hints by source.",
		}, []string{"source"}),
		badges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "patternisland",
			Name:      "badges_unlocked_total",
			Help:      "Badges unlocked.",
		}, []string{"badge"}),
		streams: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "patternisland",
			Name:      "event_streams",
			Help:      "Open websocket event streams.",
		}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "patternisland",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status.",
		}, []string{"method", "route", "status"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "patternisland",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
	}
	reg.MustRegister(m.choices, m.completed, m.solve, m.hints, m.badges, m.streams, m.requests, m.latency)
	return m
}

// Observe records one game event.
func (m *Metrics) Observe(ev events.Event) {
	switch e := ev.(type) {
	case events.ChoiceCorrect:
		m.choices.WithLabelValues("correct").Inc()
	case events.ChoiceWrong:
		m.choices.WithLabelValues("wrong").Inc()
	case events.LevelCompleted:
		m.completed.WithLabelValues(string(e.Category), e.Tier.String(), strconv.FormatBool(e.Boss)).Inc()
		m.solve.WithLabelValues(string(e.Category)).Observe(float64(e.SolveMs) / 1000)
	case events.HintResolved:
		m.hints.WithLabelValues(e.Source).Inc()
	case events.BadgeUnlocked:
		m.badges.WithLabelValues(e.Badge).Inc()
	}
}

// Run observes bus events until ctx is done or the bus closes.
func (m *Metrics) Run(ctx context.Context, bus *events.Bus) {
	if bus == nil {
		return
	}
	ch, cancel := bus.Subscribe()
	defer cancel()
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-ch:
			if !ok {
				return
			}
			m.Observe(ev)
		}
	}
}

func (m *Metrics) observeRequest(method, route string, status int, d time.Duration) {
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.latency.WithLabelValues(route).Observe(d.Seconds())
}
