package gfw

import "encoding/json"

// searchResponse is the envelope for /vessels/search and /vessels
type searchResponse struct {
	Entries []vesselEntry `json:"entries"`
	Total   int           `json:"total"`
}

// vesselEntry is one opaque vessel blob from the registry. Field presence
// varies wildly between datasets; canonicalization lives in normalize.go
type vesselEntry struct {
	ID                  string           `json:"id"`
	SSVID               string           `json:"ssvid"`
	Shipname            string           `json:"shipname"`
	Flag                string           `json:"flag"`
	Callsign            string           `json:"callsign"`
	IMO                 string           `json:"imo"`
	RegistryInfo        subInfos         `json:"registryInfo"`
	SelfReportedInfo    subInfos         `json:"selfReportedInfo"`
	CombinedSourcesInfo []combinedSource `json:"combinedSourcesInfo"`
}

// subInfo is a registry or self-reported sub-record
type subInfo struct {
	ID        string   `json:"id"`
	SSVID     string   `json:"ssvid"`
	Shipname  string   `json:"shipname"`
	Flag      string   `json:"flag"`
	IMO       string   `json:"imo"`
	Callsign  string   `json:"callsign"`
	LengthM   float64  `json:"lengthM"`
	GearTypes []string `json:"geartypes"`
}

// subInfos tolerates the registry's two shapes for the same concept:
// a JSON array of sub-records or a single bare object
type subInfos []subInfo

// UnmarshalJSON accepts either a list or a single object
func (s *subInfos) UnmarshalJSON(data []byte) error {
	var many []subInfo
	if err := json.Unmarshal(data, &many); err == nil {
		*s = many
		return nil
	}
	var one subInfo
	if err := json.Unmarshal(data, &one); err != nil {
		return err
	}
	*s = subInfos{one}
	return nil
}

// combinedSource carries typed name lists from combinedSourcesInfo
type combinedSource struct {
	ShipTypes []namedValue `json:"shiptypes"`
	GearTypes []namedValue `json:"geartypes"`
}

type namedValue struct {
	Name string `json:"name"`
}

// eventsResponse is the envelope for /events. NextOffset absent on the last
// page terminates pagination
type eventsResponse struct {
	Entries []eventEntry `json:"entries"`

	NextOffset *int `json:"nextOffset,omitempty"`
}

type eventEntry struct {
	ID    string `json:"id"`
	Type  string `json:"type"`
	Start string `json:"start"`
	End   string `json:"end"`
}
