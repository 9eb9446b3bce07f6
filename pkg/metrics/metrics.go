// Copyright 2025 Philipp Hossner
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package metrics provides small constructor helpers around
// prometheus/client_golang and the metric bundle for the parser.
//
// All constructors register on a caller-supplied registry. Pass an
// instance registry (prometheus.NewRegistry()), not the default one, so
// metric lifetimes follow the component that owns them.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// NewCounter creates and registers a counter.
func NewCounter(registry prometheus.Registerer, name, help string) prometheus.Counter {
	c := prometheus.NewCounter(prometheus.CounterOpts{Name: name, Help: help})
	registry.MustRegister(c)
	return c
}

// NewCounterVec creates and registers a counter vector.
func NewCounterVec(registry prometheus.Registerer, name, help string, labels []string) *prometheus.CounterVec {
	c := prometheus.NewCounterVec(prometheus.CounterOpts{Name: name, Help: help}, labels)
	registry.MustRegister(c)
	return c
}

// NewGauge creates and registers a gauge.
func NewGauge(registry prometheus.Registerer, name, help string) prometheus.Gauge {
	g := prometheus.NewGauge(prometheus.GaugeOpts{Name: name, Help: help})
	registry.MustRegister(g)
	return g
}

// NewGaugeVec creates and registers a gauge vector.
func NewGaugeVec(registry prometheus.Registerer, name, help string, labels []string) *prometheus.GaugeVec {
	g := prometheus.NewGaugeVec(prometheus.GaugeOpts{Name: name, Help: help}, labels)
	registry.MustRegister(g)
	return g
}

// NewHistogramWithBuckets creates and registers a histogram with explicit
// buckets.
func NewHistogramWithBuckets(registry prometheus.Registerer, name, help string, buckets []float64) prometheus.Histogram {
	h := prometheus.NewHistogram(prometheus.HistogramOpts{Name: name, Help: help, Buckets: buckets})
	registry.MustRegister(h)
	return h
}

// NewHistogramVec creates and registers a histogram vector.
func NewHistogramVec(registry prometheus.Registerer, name, help string, buckets []float64, labels []string) *prometheus.HistogramVec {
	h := prometheus.NewHistogramVec(prometheus.HistogramOpts{Name: name, Help: help, Buckets: buckets}, labels)
	registry.MustRegister(h)
	return h
}

// DurationBuckets returns histogram buckets suited to parse durations:
// sub-millisecond for small buffers up to seconds for pathological ones.
func DurationBuckets() []float64 {
	return []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5}
}

// ParserMetrics holds the parser's Prometheus metrics.
//
// Create one instance per registry lifetime and attach it to a parser
// with parser.WithMetrics.
type ParserMetrics struct {
	ParsesTotal   prometheus.Counter
	ParseErrors   prometheus.Counter
	ParseDuration prometheus.Histogram
	CacheHits     prometheus.Counter
	CacheMisses   prometheus.Counter
}

// NewParserMetrics creates all parser metrics and registers them with the
// provided registry.
func NewParserMetrics(registry prometheus.Registerer) *ParserMetrics {
	return &ParserMetrics{
		ParsesTotal: NewCounter(
			registry,
			"haconfig_parses_total",
			"Total number of configuration parses",
		),
		ParseErrors: NewCounter(
			registry,
			"haconfig_parse_errors_total",
			"Total number of failed configuration parses",
		),
		ParseDuration: NewHistogramWithBuckets(
			registry,
			"haconfig_parse_duration_seconds",
			"Time spent parsing configuration buffers",
			DurationBuckets(),
		),
		CacheHits: NewCounter(
			registry,
			"haconfig_parse_cache_hits_total",
			"Parses served from the parsed-configuration cache",
		),
		CacheMisses: NewCounter(
			registry,
			"haconfig_parse_cache_misses_total",
			"Parses that missed the parsed-configuration cache",
		),
	}
}
