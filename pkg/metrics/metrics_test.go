package metrics

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestHTTPMetricsExportsCounterAndHistogram(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewHTTPMetrics(reg)
	m.Observe("/api/incidents/{id}", "GET", 200, 250*time.Millisecond)
	m.Observe("/api/incidents/{id}", "GET", 200, 10*time.Millisecond)
	m.Observe("", "GET", 404, time.Millisecond)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}
	if got, err := fetchCounterValue(mfs, "http_requests_total", "route", "/api/incidents/{id}"); err != nil || got != 2 {
		t.Fatalf("expected 2 requests, got %f err %v", got, err)
	}
	if got, err := fetchCounterValue(mfs, "http_requests_total", "route", "unknown"); err != nil || got != 1 {
		t.Fatalf("expected unknown route counted once, got %f err %v", got, err)
	}
	if got, err := fetchHistogramSum(mfs, "http_request_duration_seconds", "route", "/api/incidents/{id}"); err != nil || got <= 0 {
		t.Fatalf("expected duration sum > 0, got %f err %v", got, err)
	}
}

func TestBusinessCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	b := NewBusiness(reg)
	b.SignatureCaptured("ppe")
	b.SignatureCaptured("ppe")
	b.PDFRendered("incident", nil)
	b.PDFRendered("incident", errors.New("boom"))
	b.FileUploaded("library")
	b.VoteCast()

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	if got, _ := fetchCounterValue(mfs, "safetyhub_signatures_total", "kind", "ppe"); got != 2 {
		t.Fatalf("expected 2 ppe signatures, got %f", got)
	}
	if got, _ := fetchCounterValue(mfs, "safetyhub_pdf_renders_total", "outcome", "error"); got != 1 {
		t.Fatalf("expected 1 failed render, got %f", got)
	}
	if got, _ := fetchCounterValue(mfs, "safetyhub_uploads_total", "folder", "library"); got != 1 {
		t.Fatalf("expected 1 upload, got %f", got)
	}
	if mf := findMetricFamily(mfs, "safetyhub_votes_total"); mf == nil || mf.GetMetric()[0].GetCounter().GetValue() != 1 {
		t.Fatalf("expected one vote")
	}
}

func TestNilMetricsAreNoops(t *testing.T) {
	var b *Business
	b.VoteCast()
	NewHTTPMetrics(nil).Observe("/x", "GET", 200, time.Second)
	NewBusiness(nil).SignatureCaptured("appointment")
}

func fetchCounterValue(mfs []*dto.MetricFamily, name, label, value string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if matchesLabel(metric.GetLabel(), label, value) {
			return metric.GetCounter().GetValue(), nil
		}
	}
	return 0, fmt.Errorf("metric %q missing label %s=%s", name, label, value)
}

func fetchHistogramSum(mfs []*dto.MetricFamily, name, label, value string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if matchesLabel(metric.GetLabel(), label, value) {
			return metric.GetHistogram().GetSampleSum(), nil
		}
	}
	return 0, fmt.Errorf("histogram %q missing label %s=%s", name, label, value)
}

func findMetricFamily(mfs []*dto.MetricFamily, name string) *dto.MetricFamily {
	for _, mf := range mfs {
		if mf.GetName() == name {
			return mf
		}
	}
	return nil
}

func matchesLabel(labels []*dto.LabelPair, name, value string) bool {
	for _, label := range labels {
		if label.GetName() == name && label.GetValue() == value {
			return true
		}
	}
	return false
}
