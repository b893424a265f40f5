package reports

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// ErrBadLabel marks drill-down inputs the resolver cannot interpret.
var ErrBadLabel = errors.New("reports: bad drilldown label")

var (
	monthLabelRegex = regexp.MustCompile(`^(\d{4})-(\d{2})$`)
	dayLabelRegex   = regexp.MustCompile(`^(\d{2})/(\d{2})$`)
)

const isoDate = "2006-01-02"

// ResolveRange maps a clicked chart bucket back to the inclusive date range
// that feeds the transaction-detail fetch.
//
// Month labels ("YYYY-MM") resolve to the first through last calendar day of
// that month; the last day comes from calendar arithmetic, so leap Februaries
// resolve correctly. Week labels resolve to the last 7 days ending at now,
// matching the upstream dashboard's wire behavior (the label's actual ISO
// week is ignored; see DESIGN.md). Day labels ("dd/mm") are taken to belong
// to the current year of now and resolve to that single day.
func ResolveRange(scale Scale, label string, now time.Time) (DateRange, error) {
	switch scale {
	case ScaleMonth:
		m := monthLabelRegex.FindStringSubmatch(label)
		if m == nil {
			return DateRange{}, fmt.Errorf("%w: malformed month label %q", ErrBadLabel, label)
		}
		year, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		if month < 1 || month > 12 {
			return DateRange{}, fmt.Errorf("%w: malformed month label %q", ErrBadLabel, label)
		}
		first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
		// Day zero of the next month is the last day of this one.
		last := time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC)
		return DateRange{From: first.Format(isoDate), To: last.Format(isoDate)}, nil

	case ScaleWeek:
		end := now.UTC()
		start := end.AddDate(0, 0, -6)
		return DateRange{From: start.Format(isoDate), To: end.Format(isoDate)}, nil

	case ScaleDay:
		m := dayLabelRegex.FindStringSubmatch(label)
		if m == nil {
			return DateRange{}, fmt.Errorf("%w: malformed day label %q", ErrBadLabel, label)
		}
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		if month < 1 || month > 12 || day < 1 || day > 31 {
			return DateRange{}, fmt.Errorf("%w: malformed day label %q", ErrBadLabel, label)
		}
		date := fmt.Sprintf("%04d-%02d-%02d", now.UTC().Year(), month, day)
		return DateRange{From: date, To: date}, nil

	default:
		return DateRange{}, fmt.Errorf("%w: unknown scale %q", ErrBadLabel, scale)
	}
}
