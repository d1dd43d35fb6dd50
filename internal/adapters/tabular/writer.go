package tabular

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"

	perr "trawlwatch/internal/platform/errors"
	screendom "trawlwatch/internal/services/screen/domain"
)

// reportHeader matches the original analysis report, extended with the
// identity and detail columns the resolver now carries
var reportHeader = []string{
	"IMO",
	"Vessel Name",
	"Vessel ID",
	"Flag",
	"SSVID",
	"Callsign",
	"Source",
	"Total Fishing Hours",
	"Classification",
	"Is Fishing",
	"Is Super Trawler",
	"Dropped Events",
}

// Writer writes report CSVs; it implements screen/domain.ReportSink
type Writer struct {
	Path string
}

// WriteResults writes the whole report in one pass. TotalHours is blank for
// rows where effort was not computed
func (w Writer) WriteResults(_ context.Context, _ string, results []screendom.Result) error {
	if err := os.MkdirAll(filepath.Dir(w.Path), 0o755); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnknown, "mkdir for %s", w.Path)
	}
	f, err := os.Create(w.Path)
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnknown, "create report %s", w.Path)
	}
	defer func() { _ = f.Close() }()

	cw := csv.NewWriter(f)
	if err := cw.Write(reportHeader); err != nil {
		return err
	}
	for _, res := range results {
		hours := ""
		if res.TotalHours != nil {
			hours = strconv.FormatFloat(*res.TotalHours, 'f', 2, 64)
		}
		row := []string{
			res.Identity.PrimaryID,
			res.Identity.DisplayName,
			res.Identity.ResolvedID,
			res.Identity.Flag,
			res.Identity.SSVID,
			res.Identity.Callsign,
			string(res.Identity.Source),
			hours,
			string(res.Label),
			strconv.FormatBool(res.Fishing),
			strconv.FormatBool(res.SuperTrawler),
			strconv.Itoa(res.DroppedEvents),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
