// Package reportpg persists screening results to a Postgres report table
// using pgxpool
package reportpg

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	perr "trawlwatch/internal/platform/errors"
	"trawlwatch/internal/platform/logger"
	screendom "trawlwatch/internal/services/screen/domain"
)

// Config configures pgxpool for the report sink
type Config struct {
	URL      string
	MaxConns int32
}

// Sink is a postgres report writer; it implements screen/domain.ReportSink
type Sink struct {
	pool *pgxpool.Pool
	log  logger.Logger
}

var newPool = pgxpool.NewWithConfig

// Open creates a new Sink and ensures the report table exists
func Open(ctx context.Context, cfg Config) (*Sink, error) {
	pcfg, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeDB, "reportpg parse config")
	}
	if cfg.MaxConns > 0 {
		pcfg.MaxConns = cfg.MaxConns
	}
	pool, err := newPool(ctx, pcfg)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeDB, "reportpg open pool")
	}
	s := &Sink{pool: pool, log: *logger.Named("reportpg")}
	if err := s.ensureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the pool
func (s *Sink) Close() {
	if s != nil && s.pool != nil {
		s.pool.Close()
	}
}

const schemaSQL = `
CREATE TABLE IF NOT EXISTS vessel_report (
	run_id        uuid        NOT NULL,
	primary_id    text        NOT NULL,
	resolved_id   text,
	display_name  text        NOT NULL,
	flag          text,
	ssvid         text,
	callsign      text,
	source        text        NOT NULL,
	total_hours   double precision,
	label         text        NOT NULL,
	is_fishing    boolean     NOT NULL DEFAULT false,
	is_super_trawler boolean  NOT NULL DEFAULT false,
	dropped_events integer    NOT NULL DEFAULT 0,
	created_at    timestamptz NOT NULL DEFAULT now(),
	PRIMARY KEY (run_id, primary_id)
)`

func (s *Sink) ensureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, schemaSQL)
	return perr.WrapIf(err, perr.ErrorCodeDB, "reportpg ensure schema")
}

const insertSQL = `
INSERT INTO vessel_report (
	run_id, primary_id, resolved_id, display_name, flag, ssvid, callsign,
	source, total_hours, label, is_fishing, is_super_trawler, dropped_events
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
ON CONFLICT (run_id, primary_id) DO UPDATE SET
	resolved_id = EXCLUDED.resolved_id,
	display_name = EXCLUDED.display_name,
	flag = EXCLUDED.flag,
	ssvid = EXCLUDED.ssvid,
	callsign = EXCLUDED.callsign,
	source = EXCLUDED.source,
	total_hours = EXCLUDED.total_hours,
	label = EXCLUDED.label,
	is_fishing = EXCLUDED.is_fishing,
	is_super_trawler = EXCLUDED.is_super_trawler,
	dropped_events = EXCLUDED.dropped_events`

// WriteResults upserts one row per result under the given run id
func (s *Sink) WriteResults(ctx context.Context, runID string, results []screendom.Result) error {
	if len(results) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, res := range results {
		var resolvedID, flag, ssvid, callsign *string
		if res.Identity.ResolvedID != "" {
			resolvedID = &res.Identity.ResolvedID
		}
		if res.Identity.Flag != "" {
			flag = &res.Identity.Flag
		}
		if res.Identity.SSVID != "" {
			ssvid = &res.Identity.SSVID
		}
		if res.Identity.Callsign != "" {
			callsign = &res.Identity.Callsign
		}
		batch.Queue(insertSQL,
			runID,
			res.Identity.PrimaryID,
			resolvedID,
			res.Identity.DisplayName,
			flag,
			ssvid,
			callsign,
			string(res.Identity.Source),
			res.TotalHours,
			string(res.Label),
			res.Fishing,
			res.SuperTrawler,
			res.DroppedEvents,
		)
	}
	br := s.pool.SendBatch(ctx, batch)
	defer func() { _ = br.Close() }()
	for range results {
		if _, err := br.Exec(); err != nil {
			return perr.Wrap(err, perr.ErrorCodeDB, "reportpg insert")
		}
	}
	s.log.Info().Int("rows", len(results)).Str("run_id", runID).Msg("report rows written")
	return nil
}
