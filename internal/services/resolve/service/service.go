// Package service implements the identity resolution cascade
package service

import (
	"context"
	"strings"

	perr "trawlwatch/internal/platform/errors"
	"trawlwatch/internal/platform/logger"
	"trawlwatch/internal/services/resolve/domain"
)

// stage is one cascade step. Stage order is a data structure: the slice is
// iterated in order and the first success wins
type stage struct {
	source domain.Source
	needs  func(primaryID, name string) bool
	run    func(ctx context.Context, primaryID, name string) (domain.Record, bool, error)
}

// Svc resolves primary identifiers through the cache and the registry cascade
type Svc struct {
	cache  domain.CachePort
	stages []stage
	log    logger.Logger
}

// New constructs the resolver over a cache and a registry
func New(cache domain.CachePort, registry domain.RegistryPort) *Svc {
	if cache == nil {
		panic("resolve.Svc requires a non-nil CachePort")
	}
	if registry == nil {
		panic("resolve.Svc requires a non-nil RegistryPort")
	}
	return &Svc{
		cache: cache,
		stages: []stage{
			{
				source: domain.SourceCombined,
				needs:  func(id, name string) bool { return id != "" && name != "" },
				run:    registry.SearchCombined,
			},
			{
				source: domain.SourceAdvanced,
				needs:  func(id, name string) bool { return id != "" || name != "" },
				run:    registry.SearchAdvanced,
			},
			{
				source: domain.SourceBasic,
				needs:  func(id, name string) bool { return id != "" || name != "" },
				run:    registry.SearchBasic,
			},
		},
		log: *logger.Named("resolve"),
	}
}

// Resolve walks the cascade for one primary identifier. A transport fault at
// any stage is logged and treated as "this stage found nothing"; exhaustion
// returns a normal unresolved record, never an error
func (s *Svc) Resolve(ctx context.Context, primaryID, name string) (domain.Record, error) {
	primaryID = strings.TrimSpace(primaryID)
	name = domain.CanonicalName(name)
	if primaryID == "" {
		return domain.Record{}, perr.InvalidArgf("resolve: empty primary identifier")
	}

	if rec, ok := s.cache.Lookup(primaryID); ok {
		rec.Source = domain.SourceCache
		return rec, nil
	}

	for _, st := range s.stages {
		if !st.needs(primaryID, name) {
			continue
		}
		rec, ok, err := st.run(ctx, primaryID, name)
		if err != nil {
			logger.C(ctx).Warn().
				Err(err).
				Str("stage", string(st.source)).
				Str("primary_id", primaryID).
				Msg("lookup stage failed, continuing cascade")
			continue
		}
		if !ok {
			continue
		}

		rec.PrimaryID = primaryID
		rec.Source = st.source
		if rec.DisplayName == "" {
			rec.DisplayName = domain.UnknownName
		}
		if err := s.cache.Store(primaryID, rec); err != nil {
			// a failed write-back costs a future lookup, not this one
			logger.C(ctx).Warn().Err(err).Str("primary_id", primaryID).Msg("cache store failed")
		}
		return rec, nil
	}

	return domain.Record{
		PrimaryID:   primaryID,
		DisplayName: domain.UnknownName,
		Source:      domain.SourceNone,
	}, nil
}
