// Package reports implements the inventory reporting engine: filtering,
// time-bucket aggregation, KPI summarization and drill-down resolution over
// report datasets fetched from the upstream inventory API.
package reports

import (
	"fmt"
	"time"
)

// Scale selects the time bucket granularity for movement series.
type Scale string

const (
	ScaleMonth Scale = "month"
	ScaleWeek  Scale = "week"
	ScaleDay   Scale = "day"
)

// ParseScale validates a scale token coming from the outside.
func ParseScale(raw string) (Scale, error) {
	switch Scale(raw) {
	case ScaleMonth, ScaleWeek, ScaleDay:
		return Scale(raw), nil
	case "":
		return ScaleMonth, nil
	default:
		return "", fmt.Errorf("reports: unknown scale %q", raw)
	}
}

// StockRow is one SKU/warehouse pairing's point-in-time snapshot. Low-stock
// rows share the shape; the upstream decides the reorder threshold, this
// engine only counts and displays them.
type StockRow struct {
	ProductID     int64
	WarehouseID   int64
	SKU           string
	ProductName   string
	WarehouseCode string
	Unit          string
	QtyOnHand     int64
	ReorderLevel  int64
	LastUpdated   *time.Time
}

// MovementRow is one pre-aggregated in/out quantity row. Bucket holds the raw
// key (ym "YYYY-MM", yw ISO year-week, or yd "YYYY-MM-DD") normalized at the
// fetch boundary. Multiple rows may share a bucket (one per product and
// warehouse) and must be summed, never overwritten.
type MovementRow struct {
	Bucket      string
	ProductID   int64
	WarehouseID int64
	QtyIn       int64
	QtyOut      int64
	TxnCount    int64
	TxnInCount  int64
	TxnOutCount int64
}

// TopMovingRow ranks a product by total movement over the trailing 30 days.
// It carries no warehouse dimension.
type TopMovingRow struct {
	ProductID       int64
	SKU             string
	Name            string
	TotalMovement30 int64
}

// TxnType is the movement direction of a ledger entry.
type TxnType string

const (
	TxnIn     TxnType = "IN"
	TxnOut    TxnType = "OUT"
	TxnAdjust TxnType = "ADJUST"
)

// TransactionRow is a single stock movement event from the append-only
// upstream ledger.
type TransactionRow struct {
	ID            int64
	CreatedAt     *time.Time
	TxnType       TxnType
	SKU           string
	ProductName   string
	WarehouseCode string
	Quantity      int64
	RefDocument   string
	Reason        string
	CreatedBy     string
	SupplierName  string
}

// SignedQuantity applies the display sign convention: OUT movements render
// negative, everything else positive.
func (t TransactionRow) SignedQuantity() int64 {
	if t.TxnType == TxnOut {
		return -t.Quantity
	}
	return t.Quantity
}

// DateRange is an inclusive from/to pair of ISO dates ("2006-01-02").
type DateRange struct {
	From string
	To   string
}

// TxnQuery scopes a transaction-detail fetch.
type TxnQuery struct {
	WarehouseID *int64
	ProductID   *int64
	From        string
	To          string
}
