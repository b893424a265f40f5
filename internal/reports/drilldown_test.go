package reports

import (
	"errors"
	"testing"
	"time"
)

func TestResolveRangeMonth(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		label    string
		from, to string
	}{
		{"2024-02", "2024-02-01", "2024-02-29"}, // leap year
		{"2023-02", "2023-02-01", "2023-02-28"},
		{"2024-12", "2024-12-01", "2024-12-31"},
		{"2024-04", "2024-04-01", "2024-04-30"},
	}
	for _, tc := range cases {
		got, err := ResolveRange(ScaleMonth, tc.label, now)
		if err != nil {
			t.Fatalf("ResolveRange(%q): %v", tc.label, err)
		}
		if got.From != tc.from || got.To != tc.to {
			t.Fatalf("ResolveRange(%q) = %s..%s, want %s..%s", tc.label, got.From, got.To, tc.from, tc.to)
		}
	}
}

func TestResolveRangeWeekIsLastSevenDays(t *testing.T) {
	now := time.Date(2025, 3, 15, 8, 30, 0, 0, time.UTC)
	got, err := ResolveRange(ScaleWeek, "2025-W11", now)
	if err != nil {
		t.Fatalf("ResolveRange: %v", err)
	}
	if got.From != "2025-03-09" || got.To != "2025-03-15" {
		t.Fatalf("week range = %s..%s, want 2025-03-09..2025-03-15", got.From, got.To)
	}

	// The label itself is ignored; any label resolves against now.
	other, err := ResolveRange(ScaleWeek, "garbage", now)
	if err != nil {
		t.Fatalf("ResolveRange: %v", err)
	}
	if other != got {
		t.Fatalf("week range should not depend on the label: %+v vs %+v", other, got)
	}
}

func TestResolveRangeDay(t *testing.T) {
	now := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)
	got, err := ResolveRange(ScaleDay, "05/07", now)
	if err != nil {
		t.Fatalf("ResolveRange: %v", err)
	}
	if got.From != "2025-07-05" || got.To != "2025-07-05" {
		t.Fatalf("day range = %s..%s, want single day 2025-07-05", got.From, got.To)
	}
}

func TestResolveRangeBadLabels(t *testing.T) {
	now := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		scale Scale
		label string
	}{
		{ScaleMonth, "2024-13"},
		{ScaleMonth, "202403"},
		{ScaleMonth, "03/2024"},
		{ScaleMonth, ""},
		{ScaleDay, "2024-03-05"},
		{ScaleDay, "32/01"},
		{ScaleDay, "05/13"},
		{ScaleDay, ""},
		{Scale("hour"), "anything"},
	}
	for _, tc := range cases {
		_, err := ResolveRange(tc.scale, tc.label, now)
		if !errors.Is(err, ErrBadLabel) {
			t.Fatalf("ResolveRange(%s, %q): err = %v, want ErrBadLabel", tc.scale, tc.label, err)
		}
	}
}
