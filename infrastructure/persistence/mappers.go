package persistence

import (
	"github.com/helixml/subway/domain/line"
	"github.com/helixml/subway/domain/station"
)

// StationMapper maps between station.Station and StationModel.
type StationMapper struct{}

// ToDomain converts a StationModel to a domain Station.
func (StationMapper) ToDomain(e StationModel) station.Station {
	return station.ReconstructStation(e.ID, e.Name, e.CreatedAt, e.UpdatedAt)
}

// ToModel converts a domain Station to a StationModel.
func (StationMapper) ToModel(s station.Station) StationModel {
	return StationModel{
		ID:        s.ID(),
		Name:      s.Name(),
		CreatedAt: s.CreatedAt(),
		UpdatedAt: s.UpdatedAt(),
	}
}

// LineMapper maps line headers. The chain is attached separately by
// LineStore, so ToDomain yields a line with an empty chain.
type LineMapper struct{}

// ToDomain converts a LineModel to a domain Line without segments.
func (LineMapper) ToDomain(e LineModel) line.Line {
	return line.ReconstructLine(e.ID, e.Name, e.Color, nil, e.CreatedAt, e.UpdatedAt)
}

// ToModel converts the header fields of a domain Line.
func (LineMapper) ToModel(l line.Line) LineModel {
	return LineModel{
		ID:        l.ID(),
		Name:      l.Name(),
		Color:     l.Color(),
		CreatedAt: l.CreatedAt(),
		UpdatedAt: l.UpdatedAt(),
	}
}

// SegmentMapper maps between line.Segment and SegmentModel.
type SegmentMapper struct{}

// ToDomain converts a SegmentModel with preloaded stations.
func (SegmentMapper) ToDomain(e SegmentModel) line.Segment {
	var m StationMapper
	return line.ReconstructSegment(e.ID, m.ToDomain(e.UpStation), m.ToDomain(e.DownStation), e.Length)
}

// ToModel converts a segment belonging to lineID.
func (SegmentMapper) ToModel(s line.Segment, lineID int64) SegmentModel {
	return SegmentModel{
		ID:            s.ID(),
		LineID:        lineID,
		UpStationID:   s.Up().ID(),
		DownStationID: s.Down().ID(),
		Length:        s.Length(),
	}
}
