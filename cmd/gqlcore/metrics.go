// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package main

import (
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kraklabs/graphqlcore/pkg/analysis"
)

// queryNames are the tracked queries pkg/analysis memoizes, each
// instrumented as its own counter so P1 (content idempotence) and P2
// (granular invalidation) show up as an observable metric instead of
// only a unit-test assertion.
var queryNames = []string{"file_structure", "merged_schema", "all_fragments"}

// registerEngineMetrics builds a dedicated Prometheus registry exposing
// live gauges over eng's tracked-query counts and validation cache size.
// A dedicated registry (not prometheus.DefaultRegisterer) keeps repeated
// calls across engines in the same process from colliding on metric
// names, since each long-running subcommand owns exactly one engine.
func registerEngineMetrics(eng *analysis.Engine) *prometheus.Registry {
	reg := prometheus.NewRegistry()

	for _, name := range queryNames {
		n := name // capture for the closure below
		reg.MustRegister(prometheus.NewGaugeFunc(
			prometheus.GaugeOpts{
				Name: "gqlcore_query_invocations_total",
				Help: "Cumulative recomputations of a tracked incremental query",
				ConstLabels: prometheus.Labels{
					"query": n,
				},
			},
			func() float64 { return float64(eng.Stats().Count(n)) },
		))
	}

	reg.MustRegister(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "gqlcore_validation_cache_entries",
			Help: "Entries currently held in the content-hash validation cache",
		},
		func() float64 { return float64(eng.ValidationCacheLen()) },
	))

	return reg
}

// serveMetrics starts a background HTTP server exposing eng's metrics
// at addr + "/metrics". loadProjects starts it for any subcommand that
// loads projects while --metrics-addr is set.
func serveMetrics(addr string, eng *analysis.Engine, logger *slog.Logger) {
	reg := registerEngineMetrics(eng)
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	go func() {
		logger.Info("metrics.http.start", "addr", addr, "path", "/metrics")
		if err := http.ListenAndServe(addr, mux); err != nil && err != http.ErrServerClosed {
			logger.Warn("metrics.http.error", "err", err)
		}
	}()
}
