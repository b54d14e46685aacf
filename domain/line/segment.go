package line

import (
	"fmt"

	"github.com/helixml/subway/domain/station"
)

// Segment is a directed stretch of track from an up station to a down
// station.
type Segment struct {
	id     int64
	up     station.Station
	down   station.Station
	length int
}

// NewSegment creates an unsaved Segment.
func NewSegment(up, down station.Station, length int) (Segment, error) {
	s := Segment{up: up, down: down, length: length}
	if err := s.validate(); err != nil {
		return Segment{}, err
	}
	return s, nil
}

// ReconstructSegment rebuilds a Segment from persistence.
func ReconstructSegment(id int64, up, down station.Station, length int) Segment {
	return Segment{id: id, up: up, down: down, length: length}
}

// ID returns the persistence ID (0 until saved).
func (s Segment) ID() int64 { return s.id }

// Up returns the upstream station.
func (s Segment) Up() station.Station { return s.up }

// Down returns the downstream station.
func (s Segment) Down() station.Station { return s.down }

// Length returns the segment length.
func (s Segment) Length() int { return s.length }

// Stations returns the endpoints as {up, down}.
func (s Segment) Stations() [2]station.Station {
	return [2]station.Station{s.up, s.down}
}

// HasSameUpStation reports whether both segments leave the same station.
func (s Segment) HasSameUpStation(other Segment) bool {
	return s.up.Equal(other.up)
}

// HasSameDownStation reports whether both segments arrive at the same station.
func (s Segment) HasSameDownStation(other Segment) bool {
	return s.down.Equal(other.down)
}

// String returns "up-down(length)".
func (s Segment) String() string {
	return fmt.Sprintf("%s-%s(%d)", s.up.Name(), s.down.Name(), s.length)
}

func (s Segment) validate() error {
	if s.up.Equal(s.down) {
		return ErrSameStations
	}
	if s.length <= 0 {
		return ErrNonPositiveLength
	}
	return nil
}

// trimHead shortens s so that it starts where inserted ends. Both leave
// the same up station and inserted is strictly shorter.
func (s Segment) trimHead(inserted Segment) Segment {
	s.up = inserted.down
	s.length -= inserted.length
	return s
}

// trimTail shortens s so that it ends where inserted starts. Both arrive
// at the same down station and inserted is strictly shorter.
func (s Segment) trimTail(inserted Segment) Segment {
	s.down = inserted.up
	s.length -= inserted.length
	return s
}

// extendTo absorbs next, which must leave from s's down station.
func (s Segment) extendTo(next Segment) Segment {
	s.down = next.down
	s.length += next.length
	return s
}
