// Package metrics contains prometheus metrics of the bridge.
package metrics

import (
	"net/http"

	"github.com/go-home-io/kiwi/providers"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	namespace = "kiwi"
	subsystem = "bridge"

	resultSuccess = "success"
	resultError   = "error"
)

// Prometheus metrics provider.
type provider struct {
	registry *prometheus.Registry

	refreshTotal *prometheus.CounterVec
	openTotal    *prometheus.CounterVec
	accessories  prometheus.Gauge
}

// NewMetrics constructs a new metrics provider.
// If registry is nil, a new one is created.
func NewMetrics(registry *prometheus.Registry) providers.IMetricsProvider {
	if nil == registry {
		registry = prometheus.NewRegistry()
	}

	p := &provider{
		registry: registry,
		refreshTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "refresh_total",
			Help:      "Total number of sensor list refreshes by result",
		}, []string{"result"}),
		openTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "open_total",
			Help:      "Total number of open commands by result",
		}, []string{"result"}),
		accessories: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "accessories",
			Help:      "Number of currently exposed accessories",
		}),
	}

	registry.MustRegister(p.refreshTotal, p.openTotal, p.accessories)
	return p
}

// ObserveRefresh counts sensor list refresh.
func (p *provider) ObserveRefresh(err error) {
	p.refreshTotal.WithLabelValues(result(err)).Inc()
}

// ObserveOpen counts open command.
func (p *provider) ObserveOpen(err error) {
	p.openTotal.WithLabelValues(result(err)).Inc()
}

// SetAccessoriesCount updates exposed accessories gauge.
func (p *provider) SetAccessoriesCount(count int) {
	p.accessories.Set(float64(count))
}

// Handler returns HTTP handler exposing registered metrics.
func (p *provider) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{})
}

// Converts error into result label.
func result(err error) string {
	if err != nil {
		return resultError
	}

	return resultSuccess
}
