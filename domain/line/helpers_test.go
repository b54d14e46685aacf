package line

import (
	"testing"
	"time"

	"github.com/helixml/subway/domain/station"
	"github.com/stretchr/testify/require"
)

var (
	stA = testStation(1, "A")
	stB = testStation(2, "B")
	stC = testStation(3, "C")
	stD = testStation(4, "D")
	stE = testStation(5, "E")
	stX = testStation(99, "X")
)

func testStation(id int64, name string) station.Station {
	return station.ReconstructStation(id, name, time.Time{}, time.Time{})
}

func mustSegment(t *testing.T, up, down station.Station, length int) Segment {
	t.Helper()
	s, err := NewSegment(up, down, length)
	require.NoError(t, err)
	return s
}

func mustChain(t *testing.T, segments ...Segment) *Chain {
	t.Helper()
	c := NewChain()
	for _, s := range segments {
		require.NoError(t, c.Insert(s))
	}
	return c
}

func stationNames(stations []station.Station) []string {
	out := make([]string, len(stations))
	for i, s := range stations {
		out[i] = s.Name()
	}
	return out
}

func segmentStrings(segments []Segment) []string {
	out := make([]string, len(segments))
	for i, s := range segments {
		out[i] = s.String()
	}
	return out
}
