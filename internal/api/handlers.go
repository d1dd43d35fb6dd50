package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	perr "trawlwatch/internal/platform/errors"
	resolvedom "trawlwatch/internal/services/resolve/domain"
	screendom "trawlwatch/internal/services/screen/domain"
)

// ClassifierPort classifies an already-resolved record
type ClassifierPort interface {
	Classify(ctx context.Context, rec resolvedom.Record, p screendom.Params) (screendom.Result, error)
}

// CacheReader lists cached identities
type CacheReader interface {
	Snapshot() map[string]resolvedom.Record
	Len() int
}

// Server holds the handler dependencies
type Server struct {
	Resolver   resolvedom.ResolverPort
	Classifier ClassifierPort
	Cache      CacheReader

	// Defaults applied when the query omits them
	DefaultFilter    string
	DefaultThreshold float64
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":            "ok",
		"cached_identities": s.Cache.Len(),
	})
}

func (s *Server) handleListIdentities(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.Cache.Snapshot())
}

func (s *Server) handleGetIdentity(w http.ResponseWriter, r *http.Request) {
	imo := chi.URLParam(r, "imo")
	name := r.URL.Query().Get("name")

	rec, err := s.Resolver.Resolve(r.Context(), imo, name)
	if err != nil {
		writeErr(w, err)
		return
	}
	if rec.Source == resolvedom.SourceNone {
		writeErr(w, perr.NotFoundf("no identity found for %s", imo))
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleClassify(w http.ResponseWriter, r *http.Request) {
	imo := chi.URLParam(r, "imo")
	q := r.URL.Query()

	p, err := s.classifyParams(q.Get("start"), q.Get("end"), q.Get("threshold"), q.Get("flag"))
	if err != nil {
		writeErr(w, err)
		return
	}

	rec, err := s.Resolver.Resolve(r.Context(), imo, q.Get("name"))
	if err != nil {
		writeErr(w, err)
		return
	}
	res, err := s.Classifier.Classify(r.Context(), rec, p)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// classifyParams parses the query window and gates, falling back to server
// defaults for threshold and flag
func (s *Server) classifyParams(start, end, threshold, flag string) (screendom.Params, error) {
	p := screendom.Params{
		JurisdictionFilter:   s.DefaultFilter,
		EffortThresholdHours: s.DefaultThreshold,
	}
	if flag != "" {
		p.JurisdictionFilter = flag
	}
	if threshold != "" {
		v, err := strconv.ParseFloat(threshold, 64)
		if err != nil || v < 0 {
			return p, perr.InvalidArgf("bad threshold %q", threshold)
		}
		p.EffortThresholdHours = v
	}

	var err error
	if p.Start, err = parseDate(start); err != nil {
		return p, perr.InvalidArgf("bad start date %q", start)
	}
	if p.End, err = parseDate(end); err != nil {
		return p, perr.InvalidArgf("bad end date %q", end)
	}
	if p.End.Before(p.Start) {
		return p, perr.InvalidArgf("end before start")
	}
	return p, nil
}

func parseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}
