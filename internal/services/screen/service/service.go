// Package service implements activity screening over resolved identities
package service

import (
	"context"

	"trawlwatch/internal/core/classify"
	"trawlwatch/internal/core/interval"
	"trawlwatch/internal/platform/logger"
	"trawlwatch/internal/platform/validate"
	resolvedom "trawlwatch/internal/services/resolve/domain"
	"trawlwatch/internal/services/screen/domain"
)

// Svc screens vessels: resolve, gate on flag, aggregate effort, label
type Svc struct {
	resolver resolvedom.ResolverPort
	events   domain.EventsPort
	log      logger.Logger
}

// New constructs the screening service
func New(resolver resolvedom.ResolverPort, events domain.EventsPort) *Svc {
	if resolver == nil {
		panic("screen.Svc requires a non-nil ResolverPort")
	}
	if events == nil {
		panic("screen.Svc requires a non-nil EventsPort")
	}
	return &Svc{resolver: resolver, events: events, log: *logger.Named("screen")}
}

// Screen resolves one input and classifies its activity.
//
// The stage order is binding: an unresolved identity skips the flag check,
// and a flag mismatch skips the events fetch entirely. Effort is only ever
// computed on the final path
func (s *Svc) Screen(ctx context.Context, in domain.Input, p domain.Params) (domain.Result, error) {
	if err := validate.Struct(p); err != nil {
		return domain.Result{}, err
	}

	rec, err := s.resolver.Resolve(ctx, in.PrimaryID, in.Name)
	if err != nil {
		return domain.Result{}, err
	}
	return s.Classify(ctx, rec, p)
}

// Classify labels an already-resolved identity. Exposed separately so the
// ops API can classify cached identities without re-resolving
func (s *Svc) Classify(ctx context.Context, rec resolvedom.Record, p domain.Params) (domain.Result, error) {
	res := domain.Result{Identity: rec}
	res.Fishing = classify.IsFishing(rec.Detail.ShipTypes, rec.Detail.GearTypes)
	res.SuperTrawler = classify.IsSuperTrawler(res.Fishing, rec.Detail.LengthM)

	if rec.Source == resolvedom.SourceNone {
		res.Label = classify.LabelUnresolvedNoIdentity
		return res, nil
	}
	if !rec.Resolved() {
		// matched somewhere but no registry id usable for the events lookup
		res.Label = classify.LabelUnresolvedNoCanonicalID
		return res, nil
	}
	if !classify.FlagMatches(rec.Flag, p.JurisdictionFilter) {
		res.Label = classify.LabelSuspectFlag
		return res, nil
	}

	events, err := s.events.FishingEvents(ctx, rec.ResolvedID, p.Start, p.End)
	if err != nil {
		// a transport fault degrades this unit, it never aborts siblings
		logger.C(ctx).Warn().Err(err).Str("vessel_id", rec.ResolvedID).Msg("events fetch failed")
		res.Label = classify.LabelUnresolvedNoCanonicalID
		return res, nil
	}

	spans := make([]interval.Span, 0, len(events))
	for _, ev := range events {
		sp, err := interval.SpanFromStrings(ev.Start, ev.End)
		if err != nil {
			res.DroppedEvents++
			continue
		}
		spans = append(spans, sp)
	}
	if res.DroppedEvents > 0 {
		logger.C(ctx).Debug().
			Int("dropped", res.DroppedEvents).
			Int("kept", len(spans)).
			Str("vessel_id", rec.ResolvedID).
			Msg("events dropped during span construction")
	}

	total := interval.TotalHours(interval.Merge(spans))
	res.TotalHours = &total
	res.Label = classify.EffortLabel(total, p.EffortThresholdHours)
	return res, nil
}
