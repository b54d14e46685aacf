package jsonapi

import (
	"github.com/helixml/subway/domain/line"
	"github.com/helixml/subway/domain/station"
)

// Resource type names.
const (
	TypeStation = "station"
	TypeLine    = "line"
	TypeSection = "section"
)

// StationAttributes represents station attributes in JSON:API format.
type StationAttributes struct {
	Name      string   `json:"name"`
	CreatedAt DateTime `json:"created_at"`
	UpdatedAt DateTime `json:"updated_at"`
}

// LineAttributes represents line attributes in JSON:API format.
type LineAttributes struct {
	Name         string   `json:"name"`
	Color        string   `json:"color"`
	StationCount int      `json:"station_count"`
	TotalLength  int      `json:"total_length"`
	CreatedAt    DateTime `json:"created_at"`
	UpdatedAt    DateTime `json:"updated_at"`
}

// SectionAttributes represents a section in JSON:API format.
type SectionAttributes struct {
	UpStationID     int64  `json:"up_station_id"`
	UpStationName   string `json:"up_station_name"`
	DownStationID   int64  `json:"down_station_id"`
	DownStationName string `json:"down_station_name"`
	Length          int    `json:"length"`
}

// StationResource serializes a station.
func StationResource(st station.Station) *Resource {
	return NewResource(TypeStation, st.ID(), StationAttributes{
		Name:      st.Name(),
		CreatedAt: DateTime(st.CreatedAt()),
		UpdatedAt: DateTime(st.UpdatedAt()),
	})
}

// StationResources serializes stations in order.
func StationResources(stations []station.Station) []*Resource {
	out := make([]*Resource, 0, len(stations))
	for _, st := range stations {
		out = append(out, StationResource(st))
	}
	return out
}

// LineResource serializes a line. The stations relationship lists the
// stations in travel order.
func LineResource(l line.Line) *Resource {
	stations := l.Stations()
	ids := make([]ResourceIdentifier, 0, len(stations))
	for _, st := range stations {
		ids = append(ids, NewIdentifier(TypeStation, st.ID()))
	}

	return NewResource(TypeLine, l.ID(), LineAttributes{
		Name:         l.Name(),
		Color:        l.Color(),
		StationCount: len(stations),
		TotalLength:  l.TotalLength(),
		CreatedAt:    DateTime(l.CreatedAt()),
		UpdatedAt:    DateTime(l.UpdatedAt()),
	}).Relate("stations", ids)
}

// LineResources serializes lines.
func LineResources(lines []line.Line) []*Resource {
	out := make([]*Resource, 0, len(lines))
	for _, l := range lines {
		out = append(out, LineResource(l))
	}
	return out
}

// SectionResource serializes a section.
func SectionResource(seg line.Segment) *Resource {
	return NewResource(TypeSection, seg.ID(), SectionAttributes{
		UpStationID:     seg.Up().ID(),
		UpStationName:   seg.Up().Name(),
		DownStationID:   seg.Down().ID(),
		DownStationName: seg.Down().Name(),
		Length:          seg.Length(),
	}).
		Relate("up_station", NewIdentifier(TypeStation, seg.Up().ID())).
		Relate("down_station", NewIdentifier(TypeStation, seg.Down().ID()))
}

// SectionResources serializes sections in order.
func SectionResources(segs []line.Segment) []*Resource {
	out := make([]*Resource, 0, len(segs))
	for _, seg := range segs {
		out = append(out, SectionResource(seg))
	}
	return out
}

// LineDocument serializes a line with its stations included.
func LineDocument(l line.Line) *Document {
	doc := NewSingleResponse(LineResource(l))
	doc.Included = StationResources(l.Stations())
	return doc
}
