// Package export serialises report view data to CSV downloads.
package export

import (
	"encoding/csv"
	"io"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/stocklens/stocklens/internal/reports"
	"github.com/stocklens/stocklens/internal/reports/ui"
)

// Numbers render with vi-VN grouping, same as the dashboard UI.
var printer = message.NewPrinter(language.Vietnamese)

func formatInt(v int64) string {
	return printer.Sprintf("%d", v)
}

// WriteKPICSV serialises the KPI card metrics to CSV.
func WriteKPICSV(w io.Writer, kpi reports.KPISummary) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	if err := writer.Write([]string{"Metric", "Value"}); err != nil {
		return err
	}
	records := [][]string{
		{"Distinct SKUs", formatInt(kpi.DistinctSKUCount)},
		{"Total On Hand", formatInt(kpi.TotalOnHand)},
		{"Low Stock Items", formatInt(kpi.LowStockCount)},
		{"Transactions", formatInt(kpi.TotalTxnCount)},
		{"Inbound Transactions", formatInt(kpi.TotalInTxnCount)},
		{"Outbound Transactions", formatInt(kpi.TotalOutTxnCount)},
	}
	for _, record := range records {
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteSeriesCSV emits the aggregated in/out movement series as CSV.
func WriteSeriesCSV(w io.Writer, series ui.TimeSeries) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()
	if err := writer.Write([]string{"Bucket", "In", "Out"}); err != nil {
		return err
	}
	for i, label := range series.DisplayLabels {
		if err := writer.Write([]string{
			label,
			formatInt(series.In[i]),
			formatInt(series.Out[i]),
		}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteCurrentStockCSV prints the current-stock table to CSV using the same
// column headings as the dashboard.
func WriteCurrentStockCSV(w io.Writer, rows []reports.StockRow) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()
	if err := writer.Write([]string{"SKU", "Tên", "Kho", "Tồn", "ĐVT", "Reorder", "Cập nhật"}); err != nil {
		return err
	}
	for _, row := range rows {
		updated := "-"
		if row.LastUpdated != nil {
			updated = row.LastUpdated.Format("2006-01-02 15:04")
		}
		if err := writer.Write([]string{
			row.SKU,
			row.ProductName,
			row.WarehouseCode,
			formatInt(row.QtyOnHand),
			row.Unit,
			formatInt(row.ReorderLevel),
			updated,
		}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
