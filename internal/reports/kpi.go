package reports

import "strconv"

// KPISummary contains the scalar indicators surfaced on the report header
// cards. The three transaction counters are summed independently from the
// monthly rows; the upstream does not guarantee TotalTxnCount equals
// TotalInTxnCount+TotalOutTxnCount, so none is ever derived from the others.
type KPISummary struct {
	DistinctSKUCount int64
	TotalOnHand      int64
	LowStockCount    int64
	TotalTxnCount    int64
	TotalInTxnCount  int64
	TotalOutTxnCount int64
}

// Summarize derives the KPI card values from the already-filtered current
// stock, low stock and monthly movement rows.
func Summarize(cur, low []StockRow, monthly []MovementRow) KPISummary {
	var summary KPISummary

	distinct := make(map[string]struct{}, len(cur))
	for _, row := range cur {
		key := skuKey(row)
		if key != "" {
			distinct[key] = struct{}{}
		}
		summary.TotalOnHand += row.QtyOnHand
	}
	summary.DistinctSKUCount = int64(len(distinct))
	summary.LowStockCount = int64(len(low))

	for _, row := range monthly {
		summary.TotalTxnCount += row.TxnCount
		summary.TotalInTxnCount += row.TxnInCount
		summary.TotalOutTxnCount += row.TxnOutCount
	}
	return summary
}

// skuKey identifies a product by id, falling back to the SKU string when the
// id is absent.
func skuKey(row StockRow) string {
	if row.ProductID != 0 {
		return "id:" + strconv.FormatInt(row.ProductID, 10)
	}
	return row.SKU
}
