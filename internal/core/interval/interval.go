// Package interval merges activity time spans and computes covered effort.
//
// Raw activity events arrive as possibly-overlapping (start, end) spans.
// Summing their durations directly double-counts overlap, so callers must
// merge first and only then total. Merge produces the minimal disjoint
// covering set, sorted by start.
package interval

import (
	"sort"
	"time"

	perr "trawlwatch/internal/platform/errors"
)

// Span is one contiguous stretch of observed activity. Start <= End always
// holds for spans built through New
type Span struct {
	Start time.Time
	End   time.Time
}

// New builds a Span, rejecting inverted bounds. An inverted span is a caller
// contract violation and is never silently reversed
func New(start, end time.Time) (Span, error) {
	if end.Before(start) {
		return Span{}, perr.Parsef("inverted span: start %s after end %s",
			start.Format(time.RFC3339), end.Format(time.RFC3339))
	}
	return Span{Start: start, End: end}, nil
}

// Hours returns the span's duration in hours
func (s Span) Hours() float64 {
	return s.End.Sub(s.Start).Seconds() / 3600.0
}

// Merge collapses spans into a minimal disjoint set, sorted by start, each
// maximal. The input is not mutated. Empty input produces empty output
func Merge(spans []Span) []Span {
	if len(spans) == 0 {
		return nil
	}

	sorted := make([]Span, len(spans))
	copy(sorted, spans)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start.Before(sorted[j].Start)
	})

	merged := make([]Span, 0, len(sorted))
	open := sorted[0]
	for _, next := range sorted[1:] {
		// overlapping or contiguous extends the open span
		if !next.Start.After(open.End) {
			if next.End.After(open.End) {
				open.End = next.End
			}
			continue
		}
		merged = append(merged, open)
		open = next
	}
	return append(merged, open)
}

// TotalHours sums the durations of an already-merged (disjoint) set.
// Callers must merge first; totalling raw spans double-counts overlap
func TotalHours(merged []Span) float64 {
	var secs float64
	for _, s := range merged {
		secs += s.End.Sub(s.Start).Seconds()
	}
	return secs / 3600.0
}
