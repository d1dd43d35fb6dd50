package service

import (
	"context"
	"testing"
	"time"

	"trawlwatch/internal/core/classify"
	perr "trawlwatch/internal/platform/errors"
	"trawlwatch/internal/platform/testkit"
	resolvedom "trawlwatch/internal/services/resolve/domain"
	"trawlwatch/internal/services/screen/domain"
)

type fakeResolver struct {
	rec   resolvedom.Record
	err   error
	calls int
}

func (r *fakeResolver) Resolve(context.Context, string, string) (resolvedom.Record, error) {
	r.calls++
	return r.rec, r.err
}

type fakeEvents struct {
	events []domain.ActivityEvent
	err    error
	calls  int
}

func (e *fakeEvents) FishingEvents(context.Context, string, time.Time, time.Time) ([]domain.ActivityEvent, error) {
	e.calls++
	return e.events, e.err
}

func params() domain.Params {
	return domain.Params{
		JurisdictionFilter:   "SEN",
		EffortThresholdHours: 3.0,
		Start:                time.Date(2015, 1, 1, 0, 0, 0, 0, time.UTC),
		End:                  time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
	}
}

func resolvedRecord() resolvedom.Record {
	return resolvedom.Record{
		PrimaryID:   "9999999",
		ResolvedID:  "abc123",
		DisplayName: "TEST VESSEL",
		Flag:        "SEN",
		Source:      resolvedom.SourceBasic,
	}
}

func TestNew_NilPortsPanic(t *testing.T) {
	testkit.MustPanic(t, func() { New(nil, &fakeEvents{}) })
	testkit.MustPanic(t, func() { New(&fakeResolver{}, nil) })
}

func TestScreen_ParamValidation(t *testing.T) {
	svc := New(&fakeResolver{rec: resolvedRecord()}, &fakeEvents{})

	p := params()
	p.JurisdictionFilter = "SENEGAL" // must be a 3-letter code
	if _, err := svc.Screen(context.Background(), domain.Input{PrimaryID: "9999999"}, p); !perr.IsCode(err, perr.ErrorCodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}

	p = params()
	p.End = p.Start.Add(-time.Hour)
	if _, err := svc.Screen(context.Background(), domain.Input{PrimaryID: "9999999"}, p); !perr.IsCode(err, perr.ErrorCodeValidation) {
		t.Fatalf("expected validation error for inverted window, got %v", err)
	}
}

func TestScreen_GenuineAboveThreshold(t *testing.T) {
	events := &fakeEvents{events: []domain.ActivityEvent{
		{Start: "2023-12-18T10:00:00.000Z", End: "2023-12-18T12:00:00.000Z"},
		{Start: "2023-12-18T11:30:00.000Z", End: "2023-12-18T13:00:00.000Z"},
		{Start: "2023-12-18T14:00:00.000Z", End: "2023-12-18T15:00:00.000Z"},
	}}
	svc := New(&fakeResolver{rec: resolvedRecord()}, events)

	res, err := svc.Screen(context.Background(), domain.Input{PrimaryID: "9999999", Name: "TEST VESSEL"}, params())
	if err != nil {
		t.Fatalf("screen: %v", err)
	}
	if res.Label != classify.LabelGenuine {
		t.Fatalf("label = %q, want %q", res.Label, classify.LabelGenuine)
	}
	if res.TotalHours == nil {
		t.Fatalf("total hours missing on effort path")
	}
	// 10:00-13:00 merged with the overlap, plus 14:00-15:00
	testkit.NearlyEqual(t, *res.TotalHours, 4.0, 1e-9)
	if res.DroppedEvents != 0 {
		t.Fatalf("unexpected dropped events: %d", res.DroppedEvents)
	}
}

func TestScreen_FlagMismatchSkipsEventsFetch(t *testing.T) {
	rec := resolvedRecord()
	rec.Flag = "ESP"
	events := &fakeEvents{}
	svc := New(&fakeResolver{rec: rec}, events)

	res, err := svc.Screen(context.Background(), domain.Input{PrimaryID: "9999999"}, params())
	if err != nil {
		t.Fatalf("screen: %v", err)
	}
	if res.Label != classify.LabelSuspectFlag {
		t.Fatalf("label = %q, want %q", res.Label, classify.LabelSuspectFlag)
	}
	if res.TotalHours != nil {
		t.Fatalf("total hours must be nil on the flag short-circuit")
	}
	if events.calls != 0 {
		t.Fatalf("flag mismatch must not fetch events, saw %d calls", events.calls)
	}
}

func TestScreen_LowEffort(t *testing.T) {
	events := &fakeEvents{events: []domain.ActivityEvent{
		{Start: "2023-12-18T10:00:00.000Z", End: "2023-12-18T10:30:00.000Z"},
	}}
	svc := New(&fakeResolver{rec: resolvedRecord()}, events)

	p := params()
	p.EffortThresholdHours = 500
	res, err := svc.Screen(context.Background(), domain.Input{PrimaryID: "9999999"}, p)
	if err != nil {
		t.Fatalf("screen: %v", err)
	}
	if res.Label != classify.LabelSuspectLowEffort {
		t.Fatalf("label = %q, want %q", res.Label, classify.LabelSuspectLowEffort)
	}
	testkit.NearlyEqual(t, *res.TotalHours, 0.5, 1e-9)
}

func TestScreen_NoEventsIsLowEffortZeroHours(t *testing.T) {
	svc := New(&fakeResolver{rec: resolvedRecord()}, &fakeEvents{})

	res, err := svc.Screen(context.Background(), domain.Input{PrimaryID: "9999999"}, params())
	if err != nil {
		t.Fatalf("screen: %v", err)
	}
	if res.Label != classify.LabelSuspectLowEffort {
		t.Fatalf("label = %q, want %q", res.Label, classify.LabelSuspectLowEffort)
	}
	if res.TotalHours == nil || *res.TotalHours != 0 {
		t.Fatalf("expected explicit zero hours, got %v", res.TotalHours)
	}
}

func TestScreen_UnresolvedIdentity(t *testing.T) {
	rec := resolvedom.Record{
		PrimaryID:   "9999999",
		DisplayName: resolvedom.UnknownName,
		Source:      resolvedom.SourceNone,
	}
	events := &fakeEvents{}
	svc := New(&fakeResolver{rec: rec}, events)

	res, err := svc.Screen(context.Background(), domain.Input{PrimaryID: "9999999"}, params())
	if err != nil {
		t.Fatalf("screen: %v", err)
	}
	if res.Label != classify.LabelUnresolvedNoIdentity {
		t.Fatalf("label = %q, want %q", res.Label, classify.LabelUnresolvedNoIdentity)
	}
	if res.TotalHours != nil || events.calls != 0 {
		t.Fatalf("unresolved identity must short-circuit before effort")
	}
}

func TestScreen_ResolvedWithoutRegistryID(t *testing.T) {
	rec := resolvedom.Record{
		PrimaryID:   "9999999",
		DisplayName: "TEST VESSEL",
		Flag:        "SEN",
		Source:      resolvedom.SourceAdvanced, // matched, but carries no id
	}
	svc := New(&fakeResolver{rec: rec}, &fakeEvents{})

	res, err := svc.Screen(context.Background(), domain.Input{PrimaryID: "9999999"}, params())
	if err != nil {
		t.Fatalf("screen: %v", err)
	}
	if res.Label != classify.LabelUnresolvedNoCanonicalID {
		t.Fatalf("label = %q, want %q", res.Label, classify.LabelUnresolvedNoCanonicalID)
	}
}

func TestScreen_EventsFaultDegradesUnit(t *testing.T) {
	events := &fakeEvents{err: perr.Unavailablef("gateway down")}
	svc := New(&fakeResolver{rec: resolvedRecord()}, events)

	res, err := svc.Screen(context.Background(), domain.Input{PrimaryID: "9999999"}, params())
	if err != nil {
		t.Fatalf("an events fault must degrade, not fail: %v", err)
	}
	if res.Label != classify.LabelUnresolvedNoCanonicalID {
		t.Fatalf("label = %q, want %q", res.Label, classify.LabelUnresolvedNoCanonicalID)
	}
	if res.TotalHours != nil {
		t.Fatalf("total hours must be nil when effort was not computed")
	}
}

func TestScreen_MalformedEventsDroppedAndCounted(t *testing.T) {
	events := &fakeEvents{events: []domain.ActivityEvent{
		{Start: "2023-12-18T10:00:00.000Z", End: "2023-12-18T12:00:00.000Z"},
		{Start: "garbage", End: "2023-12-18T13:00:00.000Z"},
		{Start: "2023-12-18T14:00:00.000Z", End: ""},
		{Start: "2023-12-18T16:00:00.000Z", End: "2023-12-18T15:00:00.000Z"}, // inverted
	}}
	svc := New(&fakeResolver{rec: resolvedRecord()}, events)

	res, err := svc.Screen(context.Background(), domain.Input{PrimaryID: "9999999"}, params())
	if err != nil {
		t.Fatalf("screen: %v", err)
	}
	if res.DroppedEvents != 3 {
		t.Fatalf("dropped = %d, want 3", res.DroppedEvents)
	}
	testkit.NearlyEqual(t, *res.TotalHours, 2.0, 1e-9)
}

func TestScreen_EmptyFilterDisablesFlagGate(t *testing.T) {
	rec := resolvedRecord()
	rec.Flag = "ESP"
	events := &fakeEvents{}
	svc := New(&fakeResolver{rec: rec}, events)

	p := params()
	p.JurisdictionFilter = ""
	res, err := svc.Screen(context.Background(), domain.Input{PrimaryID: "9999999"}, p)
	if err != nil {
		t.Fatalf("screen: %v", err)
	}
	if res.Label == classify.LabelSuspectFlag {
		t.Fatalf("empty filter must disable the flag gate")
	}
	if events.calls != 1 {
		t.Fatalf("effort path should have run")
	}
}

func TestScreen_FishingAndSuperTrawlerFlags(t *testing.T) {
	rec := resolvedRecord()
	rec.Detail = resolvedom.Detail{
		LengthM:   120,
		GearTypes: []string{"trawlers"},
	}
	svc := New(&fakeResolver{rec: rec}, &fakeEvents{})

	res, err := svc.Screen(context.Background(), domain.Input{PrimaryID: "9999999"}, params())
	if err != nil {
		t.Fatalf("screen: %v", err)
	}
	if !res.Fishing || !res.SuperTrawler {
		t.Fatalf("expected fishing super trawler, got fishing=%v super=%v", res.Fishing, res.SuperTrawler)
	}
}

func TestScreen_ResolverErrorSurfaces(t *testing.T) {
	svc := New(&fakeResolver{err: perr.InvalidArgf("empty primary identifier")}, &fakeEvents{})
	_, err := svc.Screen(context.Background(), domain.Input{}, params())
	if !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
		t.Fatalf("expected resolver error to surface, got %v", err)
	}
}
