package service

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"trawlwatch/internal/core/classify"
	"trawlwatch/internal/platform/logger"
	resolvedom "trawlwatch/internal/services/resolve/domain"
	"trawlwatch/internal/services/screen/domain"
)

// RunConfig tunes the batch worker pool
type RunConfig struct {
	// Workers is the pool size; <=0 -> 1
	Workers int

	// DelayPerUnit is an optional sleep after each processed unit (per worker)
	DelayPerUnit time.Duration

	// BatchSize and BatchPause insert a pause after every BatchSize units.
	// Self-imposed backpressure against the registry's undocumented rate
	// limits, not a correctness requirement
	BatchSize  int
	BatchPause time.Duration
}

// RunBatch screens every input through a bounded worker pool. Units are
// independent: no ordering is guaranteed between them and a failed unit
// never aborts its siblings. Inputs are deduplicated by primary identifier
// before dispatch to avoid redundant registry calls
func (s *Svc) RunBatch(
	ctx context.Context,
	inputs []domain.Input,
	p domain.Params,
	cfg RunConfig,
) []domain.Result {
	inputs = dedupe(inputs)

	workers := max(cfg.Workers, 1)
	jobs := make(chan domain.Input)
	results := make([]domain.Result, 0, len(inputs))

	var (
		mu    sync.Mutex
		done  atomic.Int64
		fails atomic.Int64
		wg    sync.WaitGroup
	)

	worker := func() {
		defer wg.Done()
		for in := range jobs {
			uctx := logger.WithVessel(ctx, in.PrimaryID)
			res, err := s.Screen(uctx, in, p)
			if err != nil {
				fails.Add(1)
				logger.C(uctx).Error().Err(err).Msg("screen unit failed")
				res = degraded(in)
			}
			mu.Lock()
			results = append(results, res)
			mu.Unlock()

			n := done.Add(1)
			if cfg.DelayPerUnit > 0 {
				_ = sleepCtx(ctx, cfg.DelayPerUnit)
			}
			if cfg.BatchSize > 0 && cfg.BatchPause > 0 && n%int64(cfg.BatchSize) == 0 {
				logger.C(ctx).Debug().Int64("processed", n).Msg("batch boundary pause")
				_ = sleepCtx(ctx, cfg.BatchPause)
			}
		}
	}

	wg.Add(workers)
	for range workers {
		go worker()
	}

feed:
	for _, in := range inputs {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- in:
		}
	}
	close(jobs)
	wg.Wait()

	resolved := 0
	for _, r := range results {
		if r.Identity.Resolved() {
			resolved++
		}
	}
	pct := 0.0
	if len(results) > 0 {
		pct = float64(resolved) / float64(len(results)) * 100
	}
	logger.C(ctx).Info().
		Int("total", len(results)).
		Int("resolved", resolved).
		Float64("resolved_pct", pct).
		Int64("unit_failures", fails.Load()).
		Msg("batch screen complete")

	return results
}

// dedupe keeps the first occurrence of each primary identifier
func dedupe(inputs []domain.Input) []domain.Input {
	seen := make(map[string]struct{}, len(inputs))
	out := inputs[:0:0]
	for _, in := range inputs {
		if _, ok := seen[in.PrimaryID]; ok {
			continue
		}
		seen[in.PrimaryID] = struct{}{}
		out = append(out, in)
	}
	return out
}

// degraded is the row emitted for a unit that faulted outright
func degraded(in domain.Input) domain.Result {
	return domain.Result{
		Identity: resolvedom.Record{
			PrimaryID:   in.PrimaryID,
			DisplayName: resolvedom.UnknownName,
			Source:      resolvedom.SourceNone,
		},
		Label: classify.LabelUnresolvedNoIdentity,
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
