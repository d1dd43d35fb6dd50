// Package classify holds the terminal labels and pure decision rules for
// vessel activity screening.
//
// Rule order is binding: identity fully gates the flag check, which fully
// gates effort computation. Each stage is strictly cheaper than the next,
// so the orchestrating service short-circuits before paying for the later
// stages. The rules here are pure; fetching and merging happen elsewhere.
package classify

import "strings"

// Label is a terminal classification outcome
type Label string

const (
	// LabelGenuine is activity above the effort threshold under the
	// expected jurisdiction
	LabelGenuine Label = "Genuine"

	// LabelSuspectFlag is a resolved vessel flying an unexpected flag
	LabelSuspectFlag Label = "Suspect-Flag"

	// LabelSuspectLowEffort is aggregated effort below the threshold
	LabelSuspectLowEffort Label = "Suspect-LowEffort"

	// LabelUnresolvedNoIdentity is an identifier that matched nothing
	LabelUnresolvedNoIdentity Label = "Unresolved-NoIdentity"

	// LabelUnresolvedNoCanonicalID is a match that carries no registry id
	// usable for the events lookup
	LabelUnresolvedNoCanonicalID Label = "Unresolved-NoCanonicalId"
)

// FlagMatches reports whether a registry flag satisfies the jurisdiction
// filter. An empty filter disables the gate
func FlagMatches(flag, filter string) bool {
	if filter == "" {
		return true
	}
	return flag == filter
}

// EffortLabel applies the threshold decision over merged total hours
func EffortLabel(totalHours, thresholdHours float64) Label {
	if totalHours < thresholdHours {
		return LabelSuspectLowEffort
	}
	return LabelGenuine
}

// IsFishing reports whether the ship types or gear types mark the vessel as
// a fishing vessel (FISHING ship type, or any TRAWL gear)
func IsFishing(shipTypes, gearTypes []string) bool {
	for _, st := range shipTypes {
		if strings.EqualFold(st, "FISHING") {
			return true
		}
	}
	for _, gt := range gearTypes {
		if strings.Contains(strings.ToUpper(gt), "TRAWL") {
			return true
		}
	}
	return false
}

// superTrawlerMinLengthM is the hull length above which a fishing vessel is
// flagged as a super trawler
const superTrawlerMinLengthM = 100.0

// IsSuperTrawler reports whether a fishing vessel of the given length is a
// super trawler
func IsSuperTrawler(fishing bool, lengthM float64) bool {
	return fishing && lengthM > superTrawlerMinLengthM
}
