// SPDX-License-Identifier: MIT

// Package metrics provides Prometheus metrics for configuration loading.
package metrics

import (
	"regexp"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Load outcomes.
const (
	ResultSuccess = "success"
	ResultInvalid = "invalid" // configuration error
	ResultError   = "error"   // I/O or other failure
)

var (
	configLoadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sitecfg_config_loads_total",
		Help: "Total number of configuration loads by result",
	}, []string{"result"}) // result=success|invalid|error

	configLoadDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "sitecfg_config_load_duration_seconds",
		Help:    "Time spent reading, decoding and validating a configuration",
		Buckets: []float64{.0005, .001, .005, .01, .05, .1, .5},
	})

	configValidationErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sitecfg_config_validation_errors_total",
		Help: "Total number of configuration validation errors by key",
	}, []string{"key"})

	configReloadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sitecfg_config_reloads_total",
		Help: "Total number of configuration reloads by result",
	}, []string{"result"})

	configLastSuccess = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "sitecfg_config_last_success_timestamp_seconds",
		Help: "Unix time of the last successful configuration load",
	})
)

// indexSuffix keeps label cardinality bounded: integrations[3] -> integrations.
var indexSuffix = regexp.MustCompile(`\[\d+\]$`)

// RecordLoad records one load attempt.
func RecordLoad(result string, took time.Duration) {
	configLoadsTotal.WithLabelValues(result).Inc()
	configLoadDuration.Observe(took.Seconds())
	if result == ResultSuccess {
		configLastSuccess.SetToCurrentTime()
	}
}

// RecordValidationErrors counts failing keys.
func RecordValidationErrors(keys []string) {
	for _, k := range keys {
		configValidationErrors.WithLabelValues(indexSuffix.ReplaceAllString(k, "")).Inc()
	}
}

// RecordReload records one hot reload attempt.
func RecordReload(result string) {
	configReloadsTotal.WithLabelValues(result).Inc()
}

// WriteTextfile writes all registered metrics in the textfile-collector format.
func WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, prometheus.DefaultGatherer)
}
