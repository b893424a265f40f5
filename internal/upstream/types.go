package upstream

import (
	"bytes"
	"encoding/json"
	"strconv"
	"time"

	"github.com/stocklens/stocklens/internal/reports"
)

// envelope mirrors the upstream's {items: [...]} response wrapper.
type envelope[T any] struct {
	Items []T `json:"items"`
}

// looseInt decodes upstream numeric fields defensively: missing, null,
// non-numeric or fractional values become the truncated integer or zero
// instead of failing the whole payload.
type looseInt int64

func (l *looseInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*l = 0
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			*l = 0
			return nil
		}
		if v, err := strconv.ParseFloat(s, 64); err == nil {
			*l = looseInt(v)
		} else {
			*l = 0
		}
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		*l = 0
		return nil
	}
	*l = looseInt(f)
	return nil
}

// looseTime accepts the timestamp spellings the upstream emits and maps
// anything unparseable to nil.
type looseTime struct {
	t *time.Time
}

var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"Mon, 02 Jan 2006 15:04:05 GMT",
	"2006-01-02",
}

func (l *looseTime) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil || s == "" {
		l.t = nil
		return nil
	}
	for _, layout := range timeLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			l.t = &parsed
			return nil
		}
	}
	l.t = nil
	return nil
}

type stockPayload struct {
	ProductID     looseInt  `json:"product_id"`
	WarehouseID   looseInt  `json:"warehouse_id"`
	SKU           string    `json:"sku"`
	ProductName   string    `json:"product_name"`
	Name          string    `json:"name"`
	WarehouseCode string    `json:"warehouse_code"`
	Warehouse     string    `json:"warehouse"`
	Unit          string    `json:"unit"`
	QtyOnHand     looseInt  `json:"qty_on_hand"`
	ReorderLevel  looseInt  `json:"reorder_level"`
	LastUpdated   looseTime `json:"last_updated"`
}

// toRow resolves the upstream's alternative field spellings exactly once so
// the engine never sees duck-typed fallbacks.
func (p stockPayload) toRow() reports.StockRow {
	name := p.ProductName
	if name == "" {
		name = p.Name
	}
	code := p.WarehouseCode
	if code == "" {
		code = p.Warehouse
	}
	return reports.StockRow{
		ProductID:     int64(p.ProductID),
		WarehouseID:   int64(p.WarehouseID),
		SKU:           p.SKU,
		ProductName:   name,
		WarehouseCode: code,
		Unit:          p.Unit,
		QtyOnHand:     int64(p.QtyOnHand),
		ReorderLevel:  int64(p.ReorderLevel),
		LastUpdated:   p.LastUpdated.t,
	}
}

type movementPayload struct {
	YM          string   `json:"ym"`
	YW          string   `json:"yw"`
	YD          string   `json:"yd"`
	ProductID   looseInt `json:"product_id"`
	WarehouseID looseInt `json:"warehouse_id"`
	QtyIn       looseInt `json:"qty_in"`
	QtyOut      looseInt `json:"qty_out"`
	TxnCount    looseInt `json:"txn_count"`
	TxnInCount  looseInt `json:"txn_in_count"`
	TxnOutCount looseInt `json:"txn_out_count"`
}

func (p movementPayload) toRow() reports.MovementRow {
	bucket := p.YM
	if bucket == "" {
		bucket = p.YW
	}
	if bucket == "" {
		bucket = p.YD
	}
	return reports.MovementRow{
		Bucket:      bucket,
		ProductID:   int64(p.ProductID),
		WarehouseID: int64(p.WarehouseID),
		QtyIn:       int64(p.QtyIn),
		QtyOut:      int64(p.QtyOut),
		TxnCount:    int64(p.TxnCount),
		TxnInCount:  int64(p.TxnInCount),
		TxnOutCount: int64(p.TxnOutCount),
	}
}

type topMovingPayload struct {
	ProductID       looseInt `json:"product_id"`
	SKU             string   `json:"sku"`
	Name            string   `json:"name"`
	ProductName     string   `json:"product_name"`
	TotalMovement30 looseInt `json:"total_movement_30d"`
}

func (p topMovingPayload) toRow() reports.TopMovingRow {
	name := p.Name
	if name == "" {
		name = p.ProductName
	}
	return reports.TopMovingRow{
		ProductID:       int64(p.ProductID),
		SKU:             p.SKU,
		Name:            name,
		TotalMovement30: int64(p.TotalMovement30),
	}
}

type txnPayload struct {
	ID            looseInt  `json:"id"`
	CreatedAt     looseTime `json:"created_at"`
	TxnType       string    `json:"txn_type"`
	Quantity      looseInt  `json:"quantity"`
	RefDocument   string    `json:"ref_document"`
	Reason        string    `json:"reason"`
	SKU           string    `json:"sku"`
	ProductName   string    `json:"product_name"`
	WarehouseCode string    `json:"warehouse_code"`
	CreatedBy     string    `json:"created_by"`
	SupplierName  string    `json:"supplier_name"`
}

func (p txnPayload) toRow() reports.TransactionRow {
	return reports.TransactionRow{
		ID:            int64(p.ID),
		CreatedAt:     p.CreatedAt.t,
		TxnType:       reports.TxnType(p.TxnType),
		SKU:           p.SKU,
		ProductName:   p.ProductName,
		WarehouseCode: p.WarehouseCode,
		Quantity:      int64(p.Quantity),
		RefDocument:   p.RefDocument,
		Reason:        p.Reason,
		CreatedBy:     p.CreatedBy,
		SupplierName:  p.SupplierName,
	}
}
