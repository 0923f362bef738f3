// Copyright 2026 Outreach Corporation. All Rights Reserved.

// Description: Prometheus instrumentation for archive operations.

// Package metrics implements the archivebox metrics API
//
// This consists of the ReportLatency and CountEntries functions
package metrics

import (
	"context"
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/getoutreach/archivebox/pkg/orerr"
)

// Op names an archive operation.
type Op string

const (
	OpImport Op = "import"
	OpExport Op = "export"
	OpStream Op = "stream"
)

// nolint:gochecknoglobals
var opLatency = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name: "archive_operation_seconds",
		Help: "The latency of an archive import or export, in seconds",
		// use prometheus.DefBuckets which is
		// []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}
	},
	[]string{"op", "format", "status"},
)

// nolint:gochecknoglobals
var entriesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "archive_entries_total",
		Help: "The number of archive entries read or written",
	},
	[]string{"op", "format"},
)

// Status maps an operation result onto the status label: ok, canceled
// or error. Consumers abandoning a stream count as canceled.
func Status(err error) string {
	var shutdown orerr.ShutdownError
	var shutdownPtr *orerr.ShutdownError
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, context.Canceled), errors.As(err, &shutdown), errors.As(err, &shutdownPtr):
		return "canceled"
	default:
		return "error"
	}
}

// ReportLatency reports the latency metric for this operation
func ReportLatency(op Op, format string, latencySeconds float64, err error) {
	opLatency.WithLabelValues(string(op), format, Status(err)).Observe(latencySeconds)
}

// CountEntries adds n to the number of entries processed by op.
func CountEntries(op Op, format string, n int) {
	if n <= 0 {
		return
	}
	entriesTotal.WithLabelValues(string(op), format).Add(float64(n))
}

// EntriesCounter exposes the counter for the given labels. Only meant
// for tests.
func EntriesCounter(op Op, format string) prometheus.Counter {
	return entriesTotal.WithLabelValues(string(op), format)
}
