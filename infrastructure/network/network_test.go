package network

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helixml/subway/application/service"
	"github.com/helixml/subway/domain/line"
	"github.com/helixml/subway/domain/repository"
	"github.com/helixml/subway/infrastructure/persistence"
	"github.com/helixml/subway/internal/testdb"
)

const sampleYAML = `
stations:
  - Depot
lines:
  - name: Shinbundang
    color: red
    sections:
      - {up: Gangnam, down: Yangjae, length: 7}
      - {up: Jeongja, down: Gwanggyo, length: 9}
      - {up: Yangjae, down: Jeongja, length: 12}
  - name: Line 2
    color: green
    sections:
      - {up: Gangnam, down: Yeoksam, length: 3}
`

func newServices(t *testing.T) (*service.Station, *service.Line) {
	t.Helper()
	db := testdb.New(t)
	stationStore := persistence.NewStationStore(db)
	lineStore := persistence.NewLineStore(db)
	logger := slog.New(slog.DiscardHandler)
	return service.NewStation(stationStore, lineStore, logger), service.NewLine(lineStore, stationStore, logger)
}

func TestDecode(t *testing.T) {
	doc, err := Decode(strings.NewReader(sampleYAML))
	require.NoError(t, err)

	assert.Equal(t, []string{"Depot"}, doc.Stations)
	require.Len(t, doc.Lines, 2)
	assert.Equal(t, "Shinbundang", doc.Lines[0].Name)
	assert.Equal(t, Section{Up: "Gangnam", Down: "Yangjae", Length: 7}, doc.Lines[0].Sections[0])
}

func TestDecode_RejectsUnknownFields(t *testing.T) {
	_, err := Decode(strings.NewReader("lines:\n  - name: X\n    colour: red\n"))
	assert.ErrorIs(t, err, ErrInvalidDocument)
}

func TestDocument_Validate(t *testing.T) {
	tests := []struct {
		name string
		doc  Document
	}{
		{name: "unnamed line", doc: Document{Lines: []Line{{Sections: []Section{{Up: "A", Down: "B", Length: 1}}}}}},
		{name: "no sections", doc: Document{Lines: []Line{{Name: "L"}}}},
		{name: "missing station", doc: Document{Lines: []Line{{Name: "L", Sections: []Section{{Up: "A", Length: 1}}}}}},
		{name: "duplicate line", doc: Document{Lines: []Line{
			{Name: "L", Sections: []Section{{Up: "A", Down: "B", Length: 1}}},
			{Name: "L", Sections: []Section{{Up: "C", Down: "D", Length: 1}}},
		}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.doc.Validate(), ErrInvalidDocument)
		})
	}
}

func TestImport(t *testing.T) {
	ctx := context.Background()
	stations, lines := newServices(t)

	doc, err := Decode(strings.NewReader(sampleYAML))
	require.NoError(t, err)

	report, err := NewImporter(stations, lines, nil).Import(ctx, doc)
	require.NoError(t, err)

	assert.Equal(t, Report{StationsCreated: 6, LinesCreated: 2, SectionsAdded: 4}, report)

	l, err := lines.Get(ctx, repository.WithName("Shinbundang"))
	require.NoError(t, err)
	names := make([]string, 0)
	for _, st := range l.Stations() {
		names = append(names, st.Name())
	}
	assert.Equal(t, []string{"Gangnam", "Yangjae", "Jeongja", "Gwanggyo"}, names)
	assert.Equal(t, 28, l.TotalLength())
}

func TestImport_ReusesExistingStations(t *testing.T) {
	ctx := context.Background()
	stations, lines := newServices(t)
	_, err := stations.Create(ctx, "Gangnam")
	require.NoError(t, err)

	report, err := NewImporter(stations, lines, nil).Import(ctx, Document{Lines: []Line{
		{Name: "Line 2", Color: "green", Sections: []Section{{Up: "Gangnam", Down: "Yeoksam", Length: 3}}},
	}})
	require.NoError(t, err)
	assert.Equal(t, 1, report.StationsCreated)
}

func TestImport_RejectsBadSections(t *testing.T) {
	ctx := context.Background()
	stations, lines := newServices(t)

	_, err := NewImporter(stations, lines, nil).Import(ctx, Document{Lines: []Line{
		{Name: "Broken", Color: "grey", Sections: []Section{
			{Up: "A", Down: "B", Length: 5},
			{Up: "C", Down: "D", Length: 5},
		}},
	}})
	assert.ErrorIs(t, err, line.ErrDisconnected)

	_, err = NewImporter(stations, lines, nil).Import(ctx, Document{Lines: []Line{
		{Name: "TooLong", Color: "grey", Sections: []Section{
			{Up: "A", Down: "B", Length: 5},
			{Up: "A", Down: "X", Length: 5},
		}},
	}})
	assert.ErrorIs(t, err, line.ErrInvalidDistance)
}

func TestExport_RoundTrip(t *testing.T) {
	ctx := context.Background()
	stations, lines := newServices(t)

	doc, err := Decode(strings.NewReader(sampleYAML))
	require.NoError(t, err)
	_, err = NewImporter(stations, lines, nil).Import(ctx, doc)
	require.NoError(t, err)

	exported, err := Export(ctx, stations, lines)
	require.NoError(t, err)

	require.Len(t, exported.Lines, 2)
	assert.Equal(t, []Section{
		{Up: "Gangnam", Down: "Yangjae", Length: 7},
		{Up: "Yangjae", Down: "Jeongja", Length: 12},
		{Up: "Jeongja", Down: "Gwanggyo", Length: 9},
	}, exported.Lines[0].Sections)

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, exported))

	reread, err := Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, exported, reread)

	otherStations, otherLines := newServices(t)
	_, err = NewImporter(otherStations, otherLines, nil).Import(ctx, reread)
	require.NoError(t, err)
	again, err := Export(ctx, otherStations, otherLines)
	require.NoError(t, err)
	assert.Equal(t, exported.Lines, again.Lines)
}
