package line

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLine(t *testing.T) {
	l, err := NewLine(" Line 2 ", " green ", mustSegment(t, stA, stB, 10))
	require.NoError(t, err)

	assert.Equal(t, "Line 2", l.Name())
	assert.Equal(t, "green", l.Color())
	assert.Equal(t, []string{"A", "B"}, stationNames(l.Stations()))
	assert.Equal(t, 10, l.TotalLength())
}

func TestNewLine_Errors(t *testing.T) {
	_, err := NewLine("", "red", mustSegment(t, stA, stB, 10))
	assert.ErrorIs(t, err, ErrEmptyName)

	_, err = NewLine("Line 1", "red", ReconstructSegment(0, stA, stB, -1))
	assert.ErrorIs(t, err, ErrNonPositiveLength)
}

func TestLine_AddSegmentLeavesReceiverUntouched(t *testing.T) {
	l, err := NewLine("Line 1", "red", mustSegment(t, stA, stB, 10))
	require.NoError(t, err)

	updated, err := l.AddSegment(mustSegment(t, stA, stC, 3))
	require.NoError(t, err)

	assert.Equal(t, []string{"A", "B"}, stationNames(l.Stations()))
	assert.Equal(t, []string{"A", "C", "B"}, stationNames(updated.Stations()))
	assert.Equal(t, []string{"A-C(3)", "C-B(7)"}, segmentStrings(updated.Sections()))
}

func TestLine_AddSegmentRejected(t *testing.T) {
	l, err := NewLine("Line 1", "red", mustSegment(t, stA, stB, 10))
	require.NoError(t, err)

	_, err = l.AddSegment(mustSegment(t, stD, stE, 3))
	assert.ErrorIs(t, err, ErrDisconnected)
	assert.Equal(t, 1, len(l.Segments()))
}

func TestLine_RemoveStation(t *testing.T) {
	l, err := NewLine("Line 1", "red", mustSegment(t, stA, stB, 10))
	require.NoError(t, err)
	l, err = l.AddSegment(mustSegment(t, stA, stC, 3))
	require.NoError(t, err)

	removed, err := l.RemoveStation(stC)
	require.NoError(t, err)
	assert.Equal(t, []string{"A-B(10)"}, segmentStrings(removed.Sections()))
	assert.Equal(t, []string{"A", "C", "B"}, stationNames(l.Stations()))

	_, err = removed.RemoveStation(stA)
	assert.ErrorIs(t, err, ErrChainTooShort)
}

func TestLine_WithNameAndColor(t *testing.T) {
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	l := ReconstructLine(5, "Old", "red", nil, created, created)
	assert.True(t, l.Chain().IsEmpty())

	renamed, err := l.WithName("New")
	require.NoError(t, err)
	assert.Equal(t, "New", renamed.Name())
	assert.True(t, renamed.UpdatedAt().After(created))

	_, err = l.WithName("  ")
	assert.ErrorIs(t, err, ErrEmptyName)

	assert.Equal(t, "blue", l.WithColor("blue").Color())
	assert.Equal(t, int64(5), l.WithColor("blue").ID())
}

func TestLine_ChainReturnsCopy(t *testing.T) {
	l, err := NewLine("Line 1", "red", mustSegment(t, stA, stB, 10))
	require.NoError(t, err)

	c := l.Chain()
	require.NoError(t, c.Insert(mustSegment(t, stB, stC, 1)))
	assert.Len(t, l.Segments(), 1)
}
