package reports

// Filter narrows report rows by product and/or warehouse. A nil field imposes
// no constraint on that dimension; a set field requires exact id equality.
type Filter struct {
	ProductID   *int64
	WarehouseID *int64
}

// IsZero reports whether the filter constrains nothing.
func (f Filter) IsZero() bool {
	return f.ProductID == nil && f.WarehouseID == nil
}

// MatchesStock reports whether a stock row satisfies both dimensions.
func (f Filter) MatchesStock(row StockRow) bool {
	if f.ProductID != nil && row.ProductID != *f.ProductID {
		return false
	}
	if f.WarehouseID != nil && row.WarehouseID != *f.WarehouseID {
		return false
	}
	return true
}

// MatchesMovement reports whether a movement row satisfies both dimensions.
func (f Filter) MatchesMovement(row MovementRow) bool {
	if f.ProductID != nil && row.ProductID != *f.ProductID {
		return false
	}
	if f.WarehouseID != nil && row.WarehouseID != *f.WarehouseID {
		return false
	}
	return true
}

// MatchesTopMoving filters top-moving rows by product only; they carry no
// warehouse dimension.
func (f Filter) MatchesTopMoving(row TopMovingRow) bool {
	return f.ProductID == nil || row.ProductID == *f.ProductID
}

// FilterStock returns the stock rows matching the filter, preserving order.
func FilterStock(rows []StockRow, f Filter) []StockRow {
	out := make([]StockRow, 0, len(rows))
	for _, row := range rows {
		if f.MatchesStock(row) {
			out = append(out, row)
		}
	}
	return out
}

// FilterMovements returns the movement rows matching the filter.
func FilterMovements(rows []MovementRow, f Filter) []MovementRow {
	out := make([]MovementRow, 0, len(rows))
	for _, row := range rows {
		if f.MatchesMovement(row) {
			out = append(out, row)
		}
	}
	return out
}

// FilterTopMoving returns the top-moving rows matching the filter.
func FilterTopMoving(rows []TopMovingRow, f Filter) []TopMovingRow {
	out := make([]TopMovingRow, 0, len(rows))
	for _, row := range rows {
		if f.MatchesTopMoving(row) {
			out = append(out, row)
		}
	}
	return out
}
