// Package tabular reads vessel list CSVs and writes report CSVs
package tabular

import (
	"encoding/csv"
	"io"
	"os"
	"strings"

	perr "trawlwatch/internal/platform/errors"
	"trawlwatch/internal/platform/logger"
	screendom "trawlwatch/internal/services/screen/domain"
)

// ReadVessels loads the input table. The IMO column is required; a vessel
// name column is optional. Column matching is case-insensitive. Rows with
// an empty IMO are skipped and counted
func ReadVessels(path string) ([]screendom.Input, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeInvalidArgument, "open input %s", path)
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeInvalidArgument, "read header of %s", path)
	}

	imoCol, nameCol := -1, -1
	for i, h := range header {
		switch normalizeHeader(h) {
		case "imo":
			imoCol = i
		case "vessel name", "name", "shipname":
			if nameCol < 0 {
				nameCol = i
			}
		}
	}
	if imoCol < 0 {
		return nil, perr.InvalidArgf("input %s has no IMO column", path)
	}

	var inputs []screendom.Input
	skipped := 0
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// a malformed row degrades that row, not the whole file
			skipped++
			continue
		}
		if imoCol >= len(row) {
			skipped++
			continue
		}
		imo := strings.TrimSpace(row[imoCol])
		if imo == "" {
			skipped++
			continue
		}
		in := screendom.Input{PrimaryID: imo}
		if nameCol >= 0 && nameCol < len(row) {
			in.Name = strings.TrimSpace(row[nameCol])
		}
		inputs = append(inputs, in)
	}

	if skipped > 0 {
		logger.Named("tabular").Warn().Int("skipped", skipped).Str("path", path).Msg("rows skipped")
	}
	return inputs, nil
}

func normalizeHeader(h string) string {
	return strings.ToLower(strings.TrimSpace(strings.Trim(h, "\uFEFF")))
}
