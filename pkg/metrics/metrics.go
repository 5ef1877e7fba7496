// Package metrics publishes facts about the effective security policy as
// Prometheus gauges, so dashboards can alert when a deployment runs with an
// unexpected environment or limiter configuration.
package metrics

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lewisedginton/security_policy/pkg/logger"
	"github.com/lewisedginton/security_policy/pkg/policy"
	"github.com/lewisedginton/security_policy/pkg/registry"
)

const (
	subsystem = "security_policy"
)

// PolicyCollector is a prometheus.Collector reporting a registry's values.
// The registry is immutable, so values are computed on every scrape.
type PolicyCollector struct {
	registry *registry.Registry

	info                 *prometheus.Desc
	rateLimitMax         *prometheus.Desc
	rateLimitWindow      *prometheus.Desc
	failedLoginThreshold *prometheus.Desc
	cspDirectives        *prometheus.Desc
	uploadMaxBytes       *prometheus.Desc
	piiFields            *prometheus.Desc
}

// NewPolicyCollector creates a collector for r.
func NewPolicyCollector(r *registry.Registry) *PolicyCollector {
	return &PolicyCollector{
		registry: r,
		info: prometheus.NewDesc(
			prometheus.BuildFQName("", subsystem, "info"),
			"Effective security policy, labelled by environment",
			[]string{"environment"}, nil,
		),
		rateLimitMax: prometheus.NewDesc(
			prometheus.BuildFQName("", subsystem, "rate_limit_max"),
			"Maximum requests per window for each named limiter",
			[]string{"limiter"}, nil,
		),
		rateLimitWindow: prometheus.NewDesc(
			prometheus.BuildFQName("", subsystem, "rate_limit_window_seconds"),
			"Window length in seconds for each named limiter",
			[]string{"limiter"}, nil,
		),
		failedLoginThreshold: prometheus.NewDesc(
			prometheus.BuildFQName("", subsystem, "failed_login_threshold"),
			"Failed logins before a security alert is raised",
			nil, nil,
		),
		cspDirectives: prometheus.NewDesc(
			prometheus.BuildFQName("", subsystem, "csp_directives"),
			"Number of Content-Security-Policy directives",
			nil, nil,
		),
		uploadMaxBytes: prometheus.NewDesc(
			prometheus.BuildFQName("", subsystem, "upload_max_bytes"),
			"Maximum accepted upload size in bytes",
			nil, nil,
		),
		piiFields: prometheus.NewDesc(
			prometheus.BuildFQName("", subsystem, "pii_fields"),
			"Number of fields classified as personally identifiable",
			nil, nil,
		),
	}
}

// Describe implements prometheus.Collector.
func (c *PolicyCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.info
	ch <- c.rateLimitMax
	ch <- c.rateLimitWindow
	ch <- c.failedLoginThreshold
	ch <- c.cspDirectives
	ch <- c.uploadMaxBytes
	ch <- c.piiFields
}

// Collect implements prometheus.Collector.
func (c *PolicyCollector) Collect(ch chan<- prometheus.Metric) {
	r := c.registry
	ch <- prometheus.MustNewConstMetric(c.info, prometheus.GaugeValue, 1, string(r.Environment()))

	for name, rl := range r.RateLimits() {
		ch <- prometheus.MustNewConstMetric(c.rateLimitMax, prometheus.GaugeValue, float64(rl.Max), name)
		if window, err := policy.ParseDuration(rl.Window); err == nil {
			ch <- prometheus.MustNewConstMetric(c.rateLimitWindow, prometheus.GaugeValue, window.Seconds(), name)
		}
	}

	ch <- prometheus.MustNewConstMetric(c.failedLoginThreshold, prometheus.GaugeValue,
		float64(r.SecurityMonitoring().FailedLoginThreshold))
	ch <- prometheus.MustNewConstMetric(c.cspDirectives, prometheus.GaugeValue, float64(len(r.CSP())))
	if size, err := policy.ParseSize(r.UploadRestrictions().MaxFileSize); err == nil {
		ch <- prometheus.MustNewConstMetric(c.uploadMaxBytes, prometheus.GaugeValue, float64(size))
	}
	ch <- prometheus.MustNewConstMetric(c.piiFields, prometheus.GaugeValue, float64(len(r.DataProtection().PIIFields)))
}

// Metrics owns a Prometheus registry with the policy collector registered.
type Metrics struct {
	reg *prometheus.Registry
	log logger.Logger
}

// NewMetrics registers a PolicyCollector for r on a fresh registry.
func NewMetrics(r *registry.Registry, l logger.Logger) *Metrics {
	if l == nil {
		l = logger.Discard()
	}
	m := &Metrics{
		reg: prometheus.NewRegistry(),
		log: l,
	}
	m.reg.MustRegister(NewPolicyCollector(r))
	return m
}

// AddCustomMetric registers an additional collector.
func (m *Metrics) AddCustomMetric(c prometheus.Collector) {
	m.reg.MustRegister(c)
}

// Gatherer exposes the underlying registry for encoding or testing.
func (m *Metrics) Gatherer() prometheus.Gatherer {
	return m.reg
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{})
}

// Listen serves /metrics on port until ctx is cancelled.
func (m *Metrics) Listen(ctx context.Context, port int) error {
	m.log.Info("Starting metrics listener", logger.IntField("port", port))
	mux := http.NewServeMux()
	mux.Handle("/", http.NotFoundHandler())
	mux.Handle("/metrics", m.Handler())
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		errChan <- server.ListenAndServe()
	}()

	select {
	case err := <-errChan:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		m.log.Info("Stopping metrics listener")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	}
}
