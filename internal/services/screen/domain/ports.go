package domain

import (
	"context"
	"time"
)

// EventsPort abstracts the paginated activity events collaborator.
// Implementations return the full event set for the window; pagination is
// an adapter concern
type EventsPort interface {
	FishingEvents(ctx context.Context, vesselID string, start, end time.Time) ([]ActivityEvent, error)
}

// ScreenerPort classifies one resolved-and-screened unit
type ScreenerPort interface {
	Screen(ctx context.Context, in Input, p Params) (Result, error)
}

// ReportSink receives finished results (CSV file, Postgres table)
type ReportSink interface {
	WriteResults(ctx context.Context, runID string, results []Result) error
}
