// Package metrics records router activity as Prometheus metrics.
package metrics

import (
	"github.com/RobertWHurst/signpost"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Observer is a signpost.Observer that counts matches, misses, and builds.
//
// The following metrics are registered:
//   - <namespace>_route_matches_total{route,method}
//   - <namespace>_route_misses_total{method}
//   - <namespace>_route_builds_total{route}
type Observer struct {
	matches *prometheus.CounterVec
	misses  *prometheus.CounterVec
	builds  *prometheus.CounterVec
}

var _ signpost.Observer = &Observer{}

// Config configures the metrics an Observer registers.
type Config struct {
	// Namespace is the metrics namespace (default: "signpost").
	Namespace string

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// Option configures an Observer.
type Option func(*Config)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) Option {
	return func(c *Config) {
		c.Namespace = namespace
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) Option {
	return func(c *Config) {
		c.Registry = registry
	}
}

// NewObserver creates an observer and registers its metrics. It panics if the
// metrics are already registered with the registry.
func NewObserver(opts ...Option) *Observer {
	config := Config{
		Namespace: "signpost",
		Registry:  prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(&config)
	}

	factory := promauto.With(config.Registry)

	return &Observer{
		matches: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: config.Namespace,
			Name:      "route_matches_total",
			Help:      "Number of paths matched, by route and method.",
		}, []string{"route", "method"}),
		misses: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: config.Namespace,
			Name:      "route_misses_total",
			Help:      "Number of paths no route matched, by method.",
		}, []string{"method"}),
		builds: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: config.Namespace,
			Name:      "route_builds_total",
			Help:      "Number of paths built, by route.",
		}, []string{"route"}),
	}
}

// RouteMatched implements signpost.Observer.
func (o *Observer) RouteMatched(route *signpost.Route, method string) {
	o.matches.WithLabelValues(route.Name(), method).Inc()
}

// RouteMissed implements signpost.Observer. The path is not used as a label
// to keep the metric's cardinality bounded.
func (o *Observer) RouteMissed(_ string, method string) {
	o.misses.WithLabelValues(method).Inc()
}

// RouteBuilt implements signpost.Observer.
func (o *Observer) RouteBuilt(route *signpost.Route) {
	o.builds.WithLabelValues(route.Name()).Inc()
}
