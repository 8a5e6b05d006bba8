// Copyright (c) 2025 Sonic Operations Ltd
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at soniclabs.com/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package metrics collects Prometheus metrics of hashcheck operations. The
// hashcheck tool is short lived, so metrics are exported by writing them to
// a file in the text exposition format, suitable for the textfile collector
// of a node exporter.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "hashcheck"

const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Recorder tracks the hashes computed and the operations performed. It is
// safe for concurrent use and may be attached to chain engines as observer.
type Recorder struct {
	registry   *prometheus.Registry
	hashes     *prometheus.CounterVec
	operations *prometheus.CounterVec
	durations  *prometheus.HistogramVec
}

func NewRecorder() *Recorder {
	res := &Recorder{
		registry: prometheus.NewRegistry(),
		hashes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "hashes_total",
			Help:      "Number of hash function applications.",
		}, []string{"algorithm"}),
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operations_total",
			Help:      "Number of completed operations by outcome.",
		}, []string{"operation", "outcome"}),
		durations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "operation_duration_seconds",
			Help:      "Duration of completed operations.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10),
		}, []string{"operation"}),
	}
	res.registry.MustRegister(res.hashes, res.operations, res.durations)
	return res
}

// Advanced counts hashes computed with the given algorithm.
func (r *Recorder) Advanced(algorithm string, steps int) {
	if steps <= 0 {
		return
	}
	r.hashes.WithLabelValues(algorithm).Add(float64(steps))
}

// Observe records the completion of an operation started at the given time.
// A nil error counts as success.
func (r *Recorder) Observe(operation string, start time.Time, err error) {
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeFailure
	}
	r.operations.WithLabelValues(operation, outcome).Inc()
	r.durations.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

// Gatherer provides access to the collected metrics.
func (r *Recorder) Gatherer() prometheus.Gatherer {
	return r.registry
}

// WriteTextfile writes all collected metrics to the given file. The file is
// replaced atomically.
func (r *Recorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}
