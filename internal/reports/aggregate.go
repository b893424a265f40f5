package reports

import "sort"

// Series is an aggregated in/out movement series ready for charting. Labels
// are raw bucket keys in ascending lexicographic order, which for the ym/yw/yd
// key formats is also chronological order. In and Out are index-aligned with
// Labels.
type Series struct {
	Labels []string
	In     []int64
	Out    []int64
}

type bucketTotals struct {
	in  int64
	out int64
}

// Aggregate groups movement rows by their raw bucket key and sums the in and
// out quantities per key. Summation is commutative and associative: input
// order never affects the result. Rows sharing a bucket accumulate, never
// overwrite.
func Aggregate(rows []MovementRow) Series {
	byBucket := make(map[string]bucketTotals, len(rows))
	for _, row := range rows {
		totals := byBucket[row.Bucket]
		totals.in += row.QtyIn
		totals.out += row.QtyOut
		byBucket[row.Bucket] = totals
	}

	labels := make([]string, 0, len(byBucket))
	for bucket := range byBucket {
		labels = append(labels, bucket)
	}
	// Sort on the raw key, never on any display-formatted label.
	sort.Strings(labels)

	series := Series{
		Labels: labels,
		In:     make([]int64, len(labels)),
		Out:    make([]int64, len(labels)),
	}
	for i, bucket := range labels {
		series.In[i] = byBucket[bucket].in
		series.Out[i] = byBucket[bucket].out
	}
	return series
}

// IsEmpty reports whether the series holds no buckets.
func (s Series) IsEmpty() bool {
	return len(s.Labels) == 0
}
