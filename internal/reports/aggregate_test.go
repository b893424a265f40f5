package reports

import (
	"math/rand"
	"reflect"
	"testing"
)

func TestAggregateSumsSharedBuckets(t *testing.T) {
	rows := []MovementRow{
		{Bucket: "2024-03", ProductID: 1, QtyIn: 10, QtyOut: 4},
		{Bucket: "2024-03", ProductID: 2, QtyIn: 5, QtyOut: 1},
		{Bucket: "2024-01", ProductID: 1, QtyIn: 7, QtyOut: 2},
		{Bucket: "2024-02", ProductID: 1, QtyIn: 3, QtyOut: 9},
	}

	series := Aggregate(rows)

	wantLabels := []string{"2024-01", "2024-02", "2024-03"}
	if !reflect.DeepEqual(series.Labels, wantLabels) {
		t.Fatalf("labels = %v, want %v", series.Labels, wantLabels)
	}
	wantIn := []int64{7, 3, 15}
	if !reflect.DeepEqual(series.In, wantIn) {
		t.Fatalf("in = %v, want %v", series.In, wantIn)
	}
	wantOut := []int64{2, 9, 5}
	if !reflect.DeepEqual(series.Out, wantOut) {
		t.Fatalf("out = %v, want %v", series.Out, wantOut)
	}
}

func TestAggregateIsOrderIndependent(t *testing.T) {
	rows := []MovementRow{
		{Bucket: "2024-05", QtyIn: 1, QtyOut: 2},
		{Bucket: "2024-04", QtyIn: 3, QtyOut: 4},
		{Bucket: "2024-05", QtyIn: 5, QtyOut: 6},
		{Bucket: "2024-06", QtyIn: 7, QtyOut: 8},
		{Bucket: "2024-04", QtyIn: 9, QtyOut: 10},
	}
	want := Aggregate(rows)

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 25; i++ {
		shuffled := make([]MovementRow, len(rows))
		copy(shuffled, rows)
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})
		got := Aggregate(shuffled)
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("permutation %d changed result: got %+v want %+v", i, got, want)
		}
	}
}

func TestAggregateUnorderedInputSortsOnRawKeys(t *testing.T) {
	rows := []MovementRow{
		{Bucket: "2024-03", QtyIn: 1},
		{Bucket: "2024-01", QtyIn: 2},
		{Bucket: "2024-02", QtyIn: 3},
	}
	series := Aggregate(rows)
	want := []string{"2024-01", "2024-02", "2024-03"}
	if !reflect.DeepEqual(series.Labels, want) {
		t.Fatalf("labels = %v, want %v", series.Labels, want)
	}
}

func TestAggregateEmptyInput(t *testing.T) {
	series := Aggregate(nil)
	if !series.IsEmpty() {
		t.Fatalf("expected empty series, got %+v", series)
	}
	if len(series.In) != 0 || len(series.Out) != 0 {
		t.Fatalf("expected aligned empty slices, got %+v", series)
	}
}
