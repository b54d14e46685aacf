package network

import (
	"context"
	"fmt"

	"github.com/helixml/subway/domain/line"
	"github.com/helixml/subway/domain/repository"
	"github.com/helixml/subway/domain/station"
)

// LineFinder lists lines.
type LineFinder interface {
	Find(ctx context.Context, options ...repository.Option) ([]line.Line, error)
}

// StationFinder lists stations.
type StationFinder interface {
	Find(ctx context.Context, options ...repository.Option) ([]station.Station, error)
}

// Export builds a document holding every station and every line, with
// each line's sections in travel order.
func Export(ctx context.Context, stations StationFinder, lines LineFinder) (Document, error) {
	allStations, err := stations.Find(ctx, repository.WithOrderAsc("id"))
	if err != nil {
		return Document{}, fmt.Errorf("find stations: %w", err)
	}
	allLines, err := lines.Find(ctx, repository.WithOrderAsc("id"))
	if err != nil {
		return Document{}, fmt.Errorf("find lines: %w", err)
	}

	doc := Document{
		Stations: make([]string, 0, len(allStations)),
		Lines:    make([]Line, 0, len(allLines)),
	}
	for _, st := range allStations {
		doc.Stations = append(doc.Stations, st.Name())
	}
	for _, l := range allLines {
		dl := Line{Name: l.Name(), Color: l.Color()}
		for _, seg := range l.Sections() {
			dl.Sections = append(dl.Sections, Section{
				Up:     seg.Up().Name(),
				Down:   seg.Down().Name(),
				Length: seg.Length(),
			})
		}
		doc.Lines = append(doc.Lines, dl)
	}
	return doc, nil
}
