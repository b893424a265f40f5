package reports

import "testing"

func ptr(v int64) *int64 { return &v }

func TestNilFilterMatchesEverything(t *testing.T) {
	rows := []StockRow{
		{ProductID: 1, WarehouseID: 1},
		{ProductID: 2, WarehouseID: 9},
		{},
	}
	var f Filter
	for i, row := range rows {
		if !f.MatchesStock(row) {
			t.Fatalf("row %d should match the empty filter", i)
		}
	}
	if !f.IsZero() {
		t.Fatalf("empty filter should report zero")
	}
}

func TestFilterExactProductMatch(t *testing.T) {
	rows := []StockRow{
		{ProductID: 1, QtyOnHand: 10},
		{ProductID: 2, QtyOnHand: 20},
		{ProductID: 1, QtyOnHand: 30},
		{ProductID: 3, QtyOnHand: 40},
	}
	got := FilterStock(rows, Filter{ProductID: ptr(1)})
	if len(got) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(got))
	}
	if got[0].QtyOnHand != 10 || got[1].QtyOnHand != 30 {
		t.Fatalf("expected original positions 0 and 2, got %+v", got)
	}
}

func TestFilterBothDimensions(t *testing.T) {
	rows := []MovementRow{
		{Bucket: "2024-01", ProductID: 1, WarehouseID: 1},
		{Bucket: "2024-01", ProductID: 1, WarehouseID: 2},
		{Bucket: "2024-01", ProductID: 2, WarehouseID: 1},
	}
	got := FilterMovements(rows, Filter{ProductID: ptr(1), WarehouseID: ptr(1)})
	if len(got) != 1 {
		t.Fatalf("expected 1 row, got %d", len(got))
	}
}

func TestTopMovingIgnoresWarehouseFilter(t *testing.T) {
	rows := []TopMovingRow{
		{ProductID: 1, SKU: "A"},
		{ProductID: 2, SKU: "B"},
	}
	// Top-moving rows carry no warehouse dimension; the warehouse filter
	// must not exclude them.
	got := FilterTopMoving(rows, Filter{WarehouseID: ptr(7)})
	if len(got) != 2 {
		t.Fatalf("expected warehouse filter to be a no-op, got %d rows", len(got))
	}

	got = FilterTopMoving(rows, Filter{ProductID: ptr(2)})
	if len(got) != 1 || got[0].SKU != "B" {
		t.Fatalf("expected product filter to keep only B, got %+v", got)
	}
}
