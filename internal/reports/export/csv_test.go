package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stocklens/stocklens/internal/reports"
	"github.com/stocklens/stocklens/internal/reports/ui"
)

func TestWriteKPICSV(t *testing.T) {
	var buf bytes.Buffer
	err := WriteKPICSV(&buf, reports.KPISummary{
		DistinctSKUCount: 12,
		TotalOnHand:      345,
		LowStockCount:    4,
		TotalTxnCount:    99,
		TotalInTxnCount:  60,
		TotalOutTxnCount: 39,
	})
	if err != nil {
		t.Fatalf("WriteKPICSV: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 7 {
		t.Fatalf("expected header + 6 metric rows, got %d lines:\n%s", len(lines), buf.String())
	}
	if lines[0] != "Metric,Value" {
		t.Fatalf("header = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "Distinct SKUs,") {
		t.Fatalf("first metric = %q", lines[1])
	}
}

func TestWriteKPICSVVietnameseGrouping(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteKPICSV(&buf, reports.KPISummary{TotalOnHand: 1234567}); err != nil {
		t.Fatalf("WriteKPICSV: %v", err)
	}
	// vi-VN groups thousands with dots, matching the dashboard rendering.
	if !strings.Contains(buf.String(), "1.234.567") {
		t.Fatalf("expected vi-VN grouping in:\n%s", buf.String())
	}
}

func TestWriteSeriesCSVUsesDisplayLabels(t *testing.T) {
	var buf bytes.Buffer
	err := WriteSeriesCSV(&buf, ui.TimeSeries{
		Labels:        []string{"2025-03-01", "2025-03-02"},
		DisplayLabels: []string{"01/03", "02/03"},
		In:            []int64{5, 0},
		Out:           []int64{2, 7},
	})
	if err != nil {
		t.Fatalf("WriteSeriesCSV: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if lines[0] != "Bucket,In,Out" {
		t.Fatalf("header = %q", lines[0])
	}
	if lines[1] != "01/03,5,2" {
		t.Fatalf("first row = %q, want display label", lines[1])
	}
}

func TestWriteCurrentStockCSV(t *testing.T) {
	updated := time.Date(2025, 3, 1, 14, 30, 0, 0, time.UTC)
	var buf bytes.Buffer
	err := WriteCurrentStockCSV(&buf, []reports.StockRow{
		{SKU: "A", ProductName: "Widget", WarehouseCode: "HN", QtyOnHand: 40, Unit: "pcs", ReorderLevel: 10, LastUpdated: &updated},
		{SKU: "B", ProductName: "Gadget", WarehouseCode: "SG", QtyOnHand: 5},
	})
	if err != nil {
		t.Fatalf("WriteCurrentStockCSV: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %d:\n%s", len(lines), buf.String())
	}
	if !strings.Contains(lines[1], "2025-03-01 14:30") {
		t.Fatalf("row with timestamp = %q", lines[1])
	}
	if !strings.HasSuffix(lines[2], "-") {
		t.Fatalf("row without timestamp should end with placeholder: %q", lines[2])
	}
}
