/*
Copyright © 2025 Stackaroo Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package scaling

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "stackmanager"

// Metrics counts scaling outcomes on a private registry
type Metrics struct {
	decisions *prometheus.CounterVec
	failures  prometheus.Counter
	lastRun   prometheus.Gauge
	registry  *prometheus.Registry
}

// NewMetrics creates and registers the scaling metrics
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	m := &Metrics{
		registry: registry,
		decisions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: "scaling",
				Name:      "decisions_total",
				Help:      "Total number of scaling decisions by verdict",
			},
			[]string{"verdict"},
		),
		failures: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: "scaling",
				Name:      "failures_total",
				Help:      "Total number of stacks whose scaling failed",
			},
		),
		lastRun: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: metricsNamespace,
				Subsystem: "scaling",
				Name:      "last_run_timestamp_seconds",
				Help:      "Unix time of the last completed scaling run",
			},
		),
	}
	registry.MustRegister(m.decisions, m.failures, m.lastRun)
	return m
}

// Registry exposes the underlying registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordDecision counts one decision
func (m *Metrics) RecordDecision(d Decision) {
	m.decisions.WithLabelValues(d.Verdict.String()).Inc()
}

// RecordFailure counts one failed stack
func (m *Metrics) RecordFailure() {
	m.failures.Inc()
}

// RecordRun sets the completion time of a run
func (m *Metrics) RecordRun(unixSeconds float64) {
	m.lastRun.Set(unixSeconds)
}

// WriteTextfile writes the metrics in the text exposition format for the
// node exporter textfile collector
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}
	return nil
}
