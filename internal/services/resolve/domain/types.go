// Package domain defines the core types and ports for identity resolution
package domain

// Source names the cascade stage that produced a resolved identity
type Source string

const (
	// SourceCache is a hit in the local persistent cache
	SourceCache Source = "local-cache"

	// SourceCombined is the combined where-clause stage (IMO and name both exact)
	SourceCombined Source = "combined"

	// SourceAdvanced is the advanced stage (exact IMO, exact name, partial name)
	SourceAdvanced Source = "advanced"

	// SourceBasic is the free-text search stage
	SourceBasic Source = "basic"

	// SourceNone marks an exhausted cascade; a normal outcome, not a fault
	SourceNone Source = "none"
)

// UnknownName is the display-name sentinel. Records at rest never carry an
// empty display name
const UnknownName = "Unknown"

// Detail is the raw-detail sub-object carried alongside a record in the
// cache and surfaced in reports
type Detail struct {
	LengthM   float64  `json:"length_m,omitempty"`
	GearTypes []string `json:"gear_types,omitempty"`
	ShipTypes []string `json:"ship_types,omitempty"`
}

// Record is the canonical resolved identity for one primary identifier.
// ResolvedID is only ever set by a lookup stage or the cache; empty means
// unresolved. Cache entries are replaced wholesale, never mutated in place
type Record struct {
	PrimaryID   string `json:"primary_id"`
	ResolvedID  string `json:"resolved_id,omitempty"`
	DisplayName string `json:"display_name"`
	Flag        string `json:"flag,omitempty"`
	SSVID       string `json:"ssvid,omitempty"`
	Callsign    string `json:"callsign,omitempty"`
	Source      Source `json:"source_strategy"`
	Detail      Detail `json:"detail,omitempty"`
}

// Resolved reports whether the record carries a canonical registry id
func (r Record) Resolved() bool { return r.ResolvedID != "" }
