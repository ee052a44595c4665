package api

import (
	"errors"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/youssefsiam38/adminui/callback"
	"github.com/youssefsiam38/adminui/page"
)

const metricsNamespace = "adminui"

// unknownMethod labels logins naming an unregistered method, keeping the
// method label bounded by the registered handlers.
const unknownMethod = "unknown"

// Callback invocation outcomes.
const (
	outcomeOK     = "ok"
	outcomeAbsent = "absent"
	outcomeEmpty  = "empty"
	outcomeError  = "error"
)

type metrics struct {
	requests    *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	invocations *prometheus.CounterVec
	logins      *prometheus.CounterVec
}

func newMetrics(reg prometheus.Registerer, callbacks *callback.Registry, pages *page.Set) (*metrics, error) {
	m := &metrics{}
	var err error

	m.requests, err = register(reg, prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "route", "status"},
	))
	if err != nil {
		return nil, err
	}

	m.duration, err = register(reg, prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~5s
		},
		[]string{"method", "route"},
	))
	if err != nil {
		return nil, err
	}

	m.invocations, err = register(reg, prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "callbacks",
			Name:      "invocations_total",
			Help:      "Page action invocations by outcome.",
		},
		[]string{"outcome"},
	))
	if err != nil {
		return nil, err
	}

	m.logins, err = register(reg, prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "auth",
			Name:      "logins_total",
			Help:      "Login attempts by method and result.",
		},
		[]string{"method", "result"},
	))
	if err != nil {
		return nil, err
	}

	// Gauges read live state, so a second router on the same registerer
	// keeps reporting the first one's registry.
	gauges := []prometheus.Collector{
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Subsystem: "callbacks",
			Name:      "registered",
			Help:      "Number of callbacks in the registry. The registry never shrinks.",
		}, func() float64 { return float64(callbacks.Len()) }),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Subsystem: "pages",
			Name:      "registered",
			Help:      "Number of registered pages.",
		}, func() float64 { return float64(pages.Len()) }),
	}
	for _, g := range gauges {
		if _, err := register(reg, g); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// register registers c, reusing an identical collector that is already
// registered.
func register[T prometheus.Collector](reg prometheus.Registerer, c T) (T, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

func (m *metrics) observeRequest(method, route string, status int, elapsed time.Duration) {
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.duration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func (m *metrics) invocation(outcome string) {
	if m != nil {
		m.invocations.WithLabelValues(outcome).Inc()
	}
}

func (m *metrics) login(method, result string) {
	if m != nil {
		m.logins.WithLabelValues(method, result).Inc()
	}
}
