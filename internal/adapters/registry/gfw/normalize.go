package gfw

import (
	"strings"

	resolvedom "trawlwatch/internal/services/resolve/domain"
)

// canonicalize folds one heterogeneous registry blob into a canonical
// identity record. Field priority: the first registryInfo sub-record is
// authoritative; any field it leaves blank is filled from the first
// selfReportedInfo sub-record; a still-missing resolved id falls back to
// the blob's top-level id. The messy external schema stops here
func canonicalize(entry vesselEntry) resolvedom.Record {
	rec := resolvedom.Record{DisplayName: resolvedom.UnknownName}

	var reg, self subInfo
	if len(entry.RegistryInfo) > 0 {
		reg = entry.RegistryInfo[0]
	}
	if len(entry.SelfReportedInfo) > 0 {
		self = entry.SelfReportedInfo[0]
	}

	rec.ResolvedID = firstNonEmpty(reg.ID, self.ID, entry.ID)
	rec.Flag = firstNonEmpty(reg.Flag, self.Flag, entry.Flag)
	rec.SSVID = firstNonEmpty(reg.SSVID, self.SSVID, entry.SSVID)
	rec.Callsign = firstNonEmpty(reg.Callsign, self.Callsign, entry.Callsign)
	if name := firstNonEmpty(reg.Shipname, self.Shipname, entry.Shipname); name != "" {
		rec.DisplayName = name
	}

	rec.Detail = extractDetail(entry, reg)
	return rec
}

// extractDetail pulls length, gear and ship types for the raw-detail
// sub-object: length and geartypes from registry sub-records, typed name
// lists from combinedSourcesInfo
func extractDetail(entry vesselEntry, reg subInfo) resolvedom.Detail {
	d := resolvedom.Detail{
		LengthM:   reg.LengthM,
		GearTypes: append([]string(nil), reg.GearTypes...),
	}
	for _, ri := range entry.RegistryInfo[min(1, len(entry.RegistryInfo)):] {
		if d.LengthM == 0 && ri.LengthM > 0 {
			d.LengthM = ri.LengthM
		}
		if len(d.GearTypes) == 0 && len(ri.GearTypes) > 0 {
			d.GearTypes = append([]string(nil), ri.GearTypes...)
		}
	}
	for _, cs := range entry.CombinedSourcesInfo {
		for _, st := range cs.ShipTypes {
			if st.Name != "" {
				d.ShipTypes = append(d.ShipTypes, st.Name)
			}
		}
		if len(d.GearTypes) == 0 {
			for _, gt := range cs.GearTypes {
				if gt.Name != "" && strings.Contains(strings.ToUpper(gt.Name), "TRAWL") {
					d.GearTypes = append(d.GearTypes, gt.Name)
					break
				}
			}
		}
	}
	return d
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
