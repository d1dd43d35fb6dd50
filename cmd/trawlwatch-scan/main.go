package main

import (
	"context"
	"flag"
	"time"

	"github.com/google/uuid"

	"trawlwatch/internal/adapters/cache"
	"trawlwatch/internal/adapters/registry/gfw"
	"trawlwatch/internal/adapters/reportpg"
	"trawlwatch/internal/adapters/tabular"
	"trawlwatch/internal/platform/config"
	"trawlwatch/internal/platform/logger"
	resolvesvc "trawlwatch/internal/services/resolve/service"
	screendom "trawlwatch/internal/services/screen/domain"
	screensvc "trawlwatch/internal/services/screen/service"
)

func main() {
	root := config.New()
	gfwCfg := root.Prefix("GFW_")
	scanCfg := root.Prefix("SCAN_")

	l := logger.Get()

	var (
		fInput     = flag.String("input", "", "vessel list CSV (requires an IMO column)")
		fOutput    = flag.String("output", "vessel_analysis_report.csv", "report CSV path")
		fStart     = flag.String("start", "2015-01-01", "events window start YYYY-MM-DD")
		fEnd       = flag.String("end", "2025-12-31", "events window end YYYY-MM-DD (inclusive)")
		fThreshold = flag.Float64("threshold", 500, "minimum fishing hours for Genuine")
		fFlag      = flag.String("flag", "SEN", "expected flag code; empty disables the gate")
		fWorkers   = flag.Int("workers", 5, "worker pool size")
		fPG        = flag.Bool("pg", false, "also write the report to Postgres (REPORT_PGSQL_DBURL)")
	)
	flag.Parse()

	if *fInput == "" {
		l.Panic().Msg("must provide -input")
	}
	start, err := time.Parse("2006-01-02", *fStart)
	if err != nil {
		l.Panic().Err(err).Msg("bad -start")
	}
	end, err := time.Parse("2006-01-02", *fEnd)
	if err != nil {
		l.Panic().Err(err).Msg("bad -end")
	}
	if end.Before(start) {
		l.Panic().Str("start", *fStart).Str("end", *fEnd).Msg("-end before -start")
	}

	// Missing credentials are fatal before any resolution work begins
	client := gfw.NewClient(gfw.Options{
		BaseURL:    gfwCfg.MayString("BASE_URL", ""),
		Token:      gfwCfg.MustString("API_TOKEN"),
		Timeout:    gfwCfg.MayDuration("TIMEOUT", 10*time.Second),
		MaxRetries: gfwCfg.MayInt("MAX_RETRIES", 4),
	})

	idCache := cache.NewFile(scanCfg.MayString("CACHE_PATH", "data/reference/vessel_identity_cache.json"))
	resolver := resolvesvc.New(idCache, client)
	screener := screensvc.New(resolver, client)

	runID := uuid.NewString()
	ctx := logger.WithRun(context.Background(), runID)

	inputs, err := tabular.ReadVessels(*fInput)
	if err != nil {
		l.Fatal().Err(err).Str("input", *fInput).Msg("read vessel list failed")
	}
	l.Info().Int("vessels", len(inputs)).Str("run_id", runID).Msg("vessel list loaded")

	results := screener.RunBatch(ctx, inputs, screendom.Params{
		JurisdictionFilter:   *fFlag,
		EffortThresholdHours: *fThreshold,
		Start:                start.UTC(),
		End:                  end.UTC(),
	}, screensvc.RunConfig{
		Workers:      *fWorkers,
		DelayPerUnit: scanCfg.MayDuration("UNIT_DELAY", 500*time.Millisecond),
		BatchSize:    scanCfg.MayInt("BATCH_SIZE", 10),
		BatchPause:   scanCfg.MayDuration("BATCH_PAUSE", 2*time.Second),
	})

	csvSink := tabular.Writer{Path: *fOutput}
	if err := csvSink.WriteResults(ctx, runID, results); err != nil {
		l.Fatal().Err(err).Str("output", *fOutput).Msg("write report failed")
	}
	l.Info().Str("output", *fOutput).Msg("report written")

	if *fPG {
		pgCfg := root.Prefix("REPORT_PGSQL_")
		sink, err := reportpg.Open(ctx, reportpg.Config{
			URL:      pgCfg.MustString("DBURL"),
			MaxConns: int32(pgCfg.MayInt("MAX_CONNS", 4)),
		})
		if err != nil {
			l.Fatal().Err(err).Msg("reportpg open failed")
		}
		defer sink.Close()
		if err := sink.WriteResults(ctx, runID, results); err != nil {
			l.Fatal().Err(err).Msg("reportpg write failed")
		}
	}
}
