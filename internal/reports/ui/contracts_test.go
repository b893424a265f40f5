package ui

import (
	"testing"
	"time"

	"github.com/stocklens/stocklens/internal/reports"
)

func TestToTimeSeriesDayLabels(t *testing.T) {
	series := reports.Series{
		Labels: []string{"2025-03-01", "2025-03-15", "weird"},
		In:     []int64{1, 2, 3},
		Out:    []int64{0, 0, 0},
	}
	ts := ToTimeSeries(series, reports.ScaleDay)

	if ts.Labels[0] != "2025-03-01" {
		t.Fatalf("raw labels must stay the sort keys: %+v", ts.Labels)
	}
	want := []string{"01/03", "15/03", "weird"}
	for i, label := range want {
		if ts.DisplayLabels[i] != label {
			t.Fatalf("display label %d = %q, want %q", i, ts.DisplayLabels[i], label)
		}
	}
}

func TestToTimeSeriesMonthKeepsRawLabels(t *testing.T) {
	series := reports.Series{Labels: []string{"2025-01"}, In: []int64{1}, Out: []int64{2}}
	ts := ToTimeSeries(series, reports.ScaleMonth)
	if ts.DisplayLabels[0] != "2025-01" {
		t.Fatalf("month display label = %q", ts.DisplayLabels[0])
	}
	if ts.NoData {
		t.Fatalf("series with rows must not flag no_data")
	}
}

func TestToTimeSeriesNoData(t *testing.T) {
	ts := ToTimeSeries(reports.Series{}, reports.ScaleMonth)
	if !ts.NoData {
		t.Fatalf("empty series must flag no_data")
	}
}

func TestToTransactionLinesAppliesSign(t *testing.T) {
	when := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	lines := ToTransactionLines([]reports.TransactionRow{
		{TxnType: reports.TxnIn, Quantity: 5, CreatedAt: &when},
		{TxnType: reports.TxnOut, Quantity: 3},
		{TxnType: reports.TxnAdjust, Quantity: 2},
	})
	if lines[0].Quantity != 5 || lines[1].Quantity != -3 || lines[2].Quantity != 2 {
		t.Fatalf("signed quantities = %d/%d/%d", lines[0].Quantity, lines[1].Quantity, lines[2].Quantity)
	}
	if lines[0].When == "" || lines[1].When != "" {
		t.Fatalf("when formatting = %q / %q", lines[0].When, lines[1].When)
	}
}

func TestFromDashboardFlagsEmptySections(t *testing.T) {
	vm := FromDashboard(reports.DashboardData{Scale: reports.ScaleMonth}, reports.DateRange{})
	if !vm.NoCurrentStock || !vm.NoLowStock || !vm.NoTransactions {
		t.Fatalf("empty dashboard must set all no-data flags: %+v", vm)
	}
	if !vm.Series.NoData {
		t.Fatalf("empty series must flag no_data")
	}
	if vm.FetchedAt != "" {
		t.Fatalf("zero fetch time must render empty, got %q", vm.FetchedAt)
	}
}
