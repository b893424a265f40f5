// Package ui defines the view-model contract handed to render sinks. The
// engine computes these values; painting them (tables, charts) is the
// consumer's concern.
package ui

import (
	"strings"
	"time"

	"github.com/stocklens/stocklens/internal/reports"
)

// DashboardFilters echoes the sanitized filter state back to the sink.
type DashboardFilters struct {
	ProductID   *int64 `json:"product_id,omitempty"`
	WarehouseID *int64 `json:"warehouse_id,omitempty"`
	DateFrom    string `json:"date_from,omitempty"`
	DateTo      string `json:"date_to,omitempty"`
	Scale       string `json:"scale"`
}

// KPICard exposes the headline metrics for the report header.
type KPICard struct {
	DistinctSKUCount int64 `json:"distinct_sku_count"`
	TotalOnHand      int64 `json:"total_on_hand"`
	LowStockCount    int64 `json:"low_stock_count"`
	TotalTxnCount    int64 `json:"total_txn_count"`
	TotalInTxnCount  int64 `json:"total_in_txn_count"`
	TotalOutTxnCount int64 `json:"total_out_txn_count"`
}

// TimeSeries is the chart payload. Labels hold the raw bucket keys (the sort
// order), DisplayLabels the human form (dd/mm on the day scale). In and Out
// are index-aligned with Labels.
type TimeSeries struct {
	Labels        []string `json:"labels"`
	DisplayLabels []string `json:"display_labels"`
	In            []int64  `json:"series_in"`
	Out           []int64  `json:"series_out"`
	NoData        bool     `json:"no_data"`
}

// StockLine is one row of the current-stock or low-stock table.
type StockLine struct {
	SKU           string `json:"sku"`
	ProductName   string `json:"product_name"`
	WarehouseCode string `json:"warehouse_code"`
	QtyOnHand     int64  `json:"qty_on_hand"`
	Unit          string `json:"unit,omitempty"`
	ReorderLevel  int64  `json:"reorder_level"`
	LastUpdated   string `json:"last_updated,omitempty"`
}

// TopMovingLine ranks one product on the top-moving table.
type TopMovingLine struct {
	SKU             string `json:"sku"`
	Name            string `json:"name"`
	TotalMovement30 int64  `json:"total_movement_30d"`
}

// TransactionLine is one detail ledger row with the display sign convention
// applied: OUT quantities are negative.
type TransactionLine struct {
	When          string `json:"when,omitempty"`
	Type          string `json:"type"`
	SKU           string `json:"sku"`
	ProductName   string `json:"product_name"`
	WarehouseCode string `json:"warehouse_code"`
	Quantity      int64  `json:"quantity"`
	RefDocument   string `json:"ref_document,omitempty"`
	Reason        string `json:"reason,omitempty"`
}

// DashboardViewModel combines everything one report update cycle paints.
// Empty sections carry explicit no-data flags so the sink renders an
// indicator instead of a bare empty table.
type DashboardViewModel struct {
	Filters        DashboardFilters  `json:"filters"`
	KPI            KPICard           `json:"kpi"`
	Series         TimeSeries        `json:"series"`
	CurrentStock   []StockLine       `json:"current_stock"`
	NoCurrentStock bool              `json:"no_current_stock"`
	LowStock       []StockLine       `json:"low_stock"`
	NoLowStock     bool              `json:"no_low_stock"`
	TopMoving      []TopMovingLine   `json:"top_moving"`
	Transactions   []TransactionLine `json:"transactions"`
	NoTransactions bool              `json:"no_transactions"`
	FetchedAt      string            `json:"fetched_at"`
}

// DrilldownViewModel answers a chart bucket click.
type DrilldownViewModel struct {
	DateFrom       string            `json:"date_from"`
	DateTo         string            `json:"date_to"`
	Transactions   []TransactionLine `json:"transactions"`
	NoTransactions bool              `json:"no_transactions"`
}

// FromDashboard converts engine output into the sink contract.
func FromDashboard(data reports.DashboardData, dates reports.DateRange) DashboardViewModel {
	vm := DashboardViewModel{
		Filters: DashboardFilters{
			ProductID:   data.Filter.ProductID,
			WarehouseID: data.Filter.WarehouseID,
			DateFrom:    dates.From,
			DateTo:      dates.To,
			Scale:       string(data.Scale),
		},
		KPI: KPICard{
			DistinctSKUCount: data.KPI.DistinctSKUCount,
			TotalOnHand:      data.KPI.TotalOnHand,
			LowStockCount:    data.KPI.LowStockCount,
			TotalTxnCount:    data.KPI.TotalTxnCount,
			TotalInTxnCount:  data.KPI.TotalInTxnCount,
			TotalOutTxnCount: data.KPI.TotalOutTxnCount,
		},
		Series:       ToTimeSeries(data.Series, data.Scale),
		CurrentStock: ToStockLines(data.Cur),
		LowStock:     ToStockLines(data.Low),
		TopMoving:    ToTopMovingLines(data.Top),
		Transactions: ToTransactionLines(data.Txns),
	}
	vm.NoCurrentStock = len(vm.CurrentStock) == 0
	vm.NoLowStock = len(vm.LowStock) == 0
	vm.NoTransactions = len(vm.Transactions) == 0
	if !data.FetchedAt.IsZero() {
		vm.FetchedAt = data.FetchedAt.Format(time.RFC3339)
	}
	return vm
}

// ToTimeSeries shapes an aggregated series for the chart. Day buckets get
// dd/mm display labels derived after sorting; the raw keys stay the sort
// order.
func ToTimeSeries(series reports.Series, scale reports.Scale) TimeSeries {
	ts := TimeSeries{
		Labels:        series.Labels,
		DisplayLabels: series.Labels,
		In:            series.In,
		Out:           series.Out,
		NoData:        series.IsEmpty(),
	}
	if scale == reports.ScaleDay {
		display := make([]string, len(series.Labels))
		for i, label := range series.Labels {
			display[i] = dayDisplayLabel(label)
		}
		ts.DisplayLabels = display
	}
	return ts
}

// dayDisplayLabel reformats "YYYY-MM-DD" to "dd/mm", leaving unexpected
// shapes untouched.
func dayDisplayLabel(key string) string {
	parts := strings.Split(key, "-")
	if len(parts) != 3 {
		return key
	}
	return parts[2] + "/" + parts[1]
}

// ToStockLines converts stock rows for tabular display.
func ToStockLines(rows []reports.StockRow) []StockLine {
	lines := make([]StockLine, 0, len(rows))
	for _, row := range rows {
		line := StockLine{
			SKU:           row.SKU,
			ProductName:   row.ProductName,
			WarehouseCode: row.WarehouseCode,
			QtyOnHand:     row.QtyOnHand,
			Unit:          row.Unit,
			ReorderLevel:  row.ReorderLevel,
		}
		if row.LastUpdated != nil {
			line.LastUpdated = row.LastUpdated.Format(time.RFC3339)
		}
		lines = append(lines, line)
	}
	return lines
}

// ToTopMovingLines converts the product movement ranking.
func ToTopMovingLines(rows []reports.TopMovingRow) []TopMovingLine {
	lines := make([]TopMovingLine, 0, len(rows))
	for _, row := range rows {
		lines = append(lines, TopMovingLine{
			SKU:             row.SKU,
			Name:            row.Name,
			TotalMovement30: row.TotalMovement30,
		})
	}
	return lines
}

// ToTransactionLines converts ledger rows, applying the display sign.
func ToTransactionLines(rows []reports.TransactionRow) []TransactionLine {
	lines := make([]TransactionLine, 0, len(rows))
	for _, row := range rows {
		line := TransactionLine{
			Type:          string(row.TxnType),
			SKU:           row.SKU,
			ProductName:   row.ProductName,
			WarehouseCode: row.WarehouseCode,
			Quantity:      row.SignedQuantity(),
			RefDocument:   row.RefDocument,
			Reason:        row.Reason,
		}
		if row.CreatedAt != nil {
			line.When = row.CreatedAt.Format(time.RFC3339)
		}
		lines = append(lines, line)
	}
	return lines
}
