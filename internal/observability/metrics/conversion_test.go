package metrics

import (
	"errors"
	"testing"
	"time"

	dto "github.com/prometheus/client_model/go"

	"github.com/dkhalturin/docforge/internal/core/domain"
)

func labelValue(m *dto.Metric, name string) string {
	for _, l := range m.GetLabel() {
		if l.GetName() == name {
			return l.GetValue()
		}
	}
	return ""
}

func TestConversionMetricsCarryServiceLabel(t *testing.T) {
	m := NewConversionMetrics("custom-svc")
	m.ConversionStarted()
	m.ConversionFinished(domain.FormatPDF, 50*time.Millisecond, nil)
	m.ConversionFinished(domain.FormatTXT, 10*time.Millisecond, errors.New("boom"))
	m.ObserveIngest(domain.IngestResult{
		Accepted: []domain.FileItem{{Category: domain.CategoryImage}},
		Rejected: []domain.RawFile{{Name: "clip.mp4"}},
	})

	families, err := m.registry.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	if len(families) == 0 {
		t.Fatalf("no metrics registered")
	}
	for _, fam := range families {
		for _, metric := range fam.GetMetric() {
			if got := labelValue(metric, "service"); got != "custom-svc" {
				t.Fatalf("%s carries service=%q, want custom-svc", fam.GetName(), got)
			}
		}
	}
}

func TestConversionMetricsStatusLabel(t *testing.T) {
	m := NewConversionMetrics("svc")
	m.ConversionFinished(domain.FormatPDF, time.Millisecond, nil)
	m.ConversionFinished(domain.FormatPDF, time.Millisecond, errors.New("boom"))

	families, err := m.registry.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	statuses := map[string]bool{}
	for _, fam := range families {
		if fam.GetName() != "docforge_convert_conversions_total" {
			continue
		}
		for _, metric := range fam.GetMetric() {
			statuses[labelValue(metric, "status")] = true
		}
	}
	if !statuses["success"] || !statuses["error"] {
		t.Fatalf("expected success and error series, got %v", statuses)
	}
}
