package metrics_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"gotest.tools/v3/assert"

	"github.com/getoutreach/archivebox/pkg/metrics"
	"github.com/getoutreach/archivebox/pkg/orerr"
)

func Example() {
	metrics.ReportLatency(metrics.OpExport, "example_format", 0.007, nil)

	got, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	for _, metricFamily := range got {
		if metricFamily.GetName() != "archive_operation_seconds" {
			continue
		}
		for _, metric := range metricFamily.Metric {
			found := false
			for _, labelPair := range metric.GetLabel() {
				if labelPair.GetName() == "format" && labelPair.GetValue() == "example_format" {
					found = true
				}
			}
			if !found {
				continue
			}
			fmt.Println("name", metricFamily.GetName())
			fmt.Println("type", metricFamily.GetType())
			fmt.Println("label", len(metric.GetLabel()))
			fmt.Println("sample count", metric.GetHistogram().GetSampleCount())
		}
	}

	// Output:
	// name archive_operation_seconds
	// type HISTOGRAM
	// label 3
	// sample count 1
}

func TestCountEntries(t *testing.T) {
	c := metrics.EntriesCounter(metrics.OpImport, "count_test")
	before := testutil.ToFloat64(c)

	metrics.CountEntries(metrics.OpImport, "count_test", 3)
	metrics.CountEntries(metrics.OpImport, "count_test", 0)
	assert.Equal(t, testutil.ToFloat64(c)-before, float64(3))
}

func TestStatus(t *testing.T) {
	assert.Equal(t, metrics.Status(nil), "ok")
	assert.Equal(t, metrics.Status(errors.New("x")), "error")
	assert.Equal(t, metrics.Status(context.Canceled), "canceled")
	assert.Equal(t, metrics.Status(orerr.ShutdownError{}), "canceled")
	assert.Equal(t, metrics.Status(&orerr.ShutdownError{}), "canceled")
}
