// Package dto holds request bodies accepted by the v1 API.
package dto

// StationAttributes carries a station's writable fields.
type StationAttributes struct {
	Name string `json:"name"`
}

// StationData wraps station attributes.
type StationData struct {
	Type       string            `json:"type"`
	Attributes StationAttributes `json:"attributes"`
}

// StationRequest creates or renames a station.
type StationRequest struct {
	Data StationData `json:"data"`
}

// LineCreateAttributes describes a new line and its first section.
type LineCreateAttributes struct {
	Name          string `json:"name"`
	Color         string `json:"color"`
	UpStationID   int64  `json:"up_station_id"`
	DownStationID int64  `json:"down_station_id"`
	Length        int    `json:"length"`
}

// LineCreateData wraps line creation attributes.
type LineCreateData struct {
	Type       string               `json:"type"`
	Attributes LineCreateAttributes `json:"attributes"`
}

// LineCreateRequest creates a line.
type LineCreateRequest struct {
	Data LineCreateData `json:"data"`
}

// LineUpdateAttributes holds the line header fields. Empty fields are unchanged.
type LineUpdateAttributes struct {
	Name  string `json:"name,omitempty"`
	Color string `json:"color,omitempty"`
}

// LineUpdateData wraps line update attributes.
type LineUpdateData struct {
	Type       string               `json:"type"`
	Attributes LineUpdateAttributes `json:"attributes"`
}

// LineUpdateRequest updates a line header.
type LineUpdateRequest struct {
	Data LineUpdateData `json:"data"`
}

// SectionAttributes describes a section to insert.
type SectionAttributes struct {
	UpStationID   int64 `json:"up_station_id"`
	DownStationID int64 `json:"down_station_id"`
	Length        int   `json:"length"`
}

// SectionData wraps section attributes.
type SectionData struct {
	Type       string            `json:"type"`
	Attributes SectionAttributes `json:"attributes"`
}

// SectionRequest adds a section to a line.
type SectionRequest struct {
	Data SectionData `json:"data"`
}
