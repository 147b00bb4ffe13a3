// Copyright 2025 Esteban Alvarez. All Rights Reserved.
//
// Created: October 2025
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

package status

import "github.com/prometheus/client_golang/prometheus"

// PrometheusExporter mirrors a Realtime's counters as gauges. This is
// ambient instrumentation, not core aggregation: nothing in the
// measurement path depends on it, and a run with no registered
// exporter behaves identically.
type PrometheusExporter struct {
	activeOperations  prometheus.GaugeFunc
	activeConnections prometheus.GaugeFunc
	totalOperations   prometheus.GaugeFunc
}

// NewPrometheusExporter builds gauges reading live from realtime,
// namespaced under namespace (e.g. "loadforge").
func NewPrometheusExporter(realtime *Realtime, namespace string) *PrometheusExporter {
	return &PrometheusExporter{
		activeOperations: prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_operations",
			Help:      "Number of operations currently in flight across all virtual users.",
		}, func() float64 { return float64(realtime.ActiveOperations()) }),
		activeConnections: prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_connections",
			Help:      "Number of connections currently open across all virtual users.",
		}, func() float64 { return float64(realtime.ActiveConnections()) }),
		totalOperations: prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "total_operations",
			Help:      "Cumulative count of operations started since run start.",
		}, func() float64 { return float64(realtime.TotalOperations()) }),
	}
}

// MustRegister registers every gauge with reg, panicking on a
// duplicate registration (mirrors prometheus.MustRegister's contract).
func (e *PrometheusExporter) MustRegister(reg prometheus.Registerer) {
	reg.MustRegister(e.activeOperations, e.activeConnections, e.totalOperations)
}
