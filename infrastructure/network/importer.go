package network

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/helixml/subway/application/service"
	"github.com/helixml/subway/domain/line"
	"github.com/helixml/subway/domain/station"
)

// StationResolver finds stations by name, creating them when missing.
type StationResolver interface {
	FindOrCreate(ctx context.Context, name string) (station.Station, bool, error)
}

// LineBuilder creates lines and adds sections to them.
type LineBuilder interface {
	Create(ctx context.Context, params *service.LineCreateParams) (line.Line, error)
	AddSection(ctx context.Context, lineID int64, params *service.SectionAddParams) (line.Line, error)
}

// Report summarises an import.
type Report struct {
	StationsCreated int
	LinesCreated    int
	SectionsAdded   int
}

// Importer loads documents into the network.
type Importer struct {
	stations StationResolver
	lines    LineBuilder
	logger   *slog.Logger
}

// NewImporter creates a new Importer.
func NewImporter(stations StationResolver, lines LineBuilder, logger *slog.Logger) *Importer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Importer{stations: stations, lines: lines, logger: logger}
}

// Import creates the document's stations and lines. Each line starts from
// its first section; the rest are added through the line engine. A section
// that does not yet touch the line is retried after the others, so
// sections need not be listed in travel order.
func (im *Importer) Import(ctx context.Context, doc Document) (Report, error) {
	if err := doc.Validate(); err != nil {
		return Report{}, err
	}

	var report Report
	resolved := map[string]station.Station{}
	resolve := func(name string) (station.Station, error) {
		if st, ok := resolved[name]; ok {
			return st, nil
		}
		st, created, err := im.stations.FindOrCreate(ctx, name)
		if err != nil {
			return station.Station{}, fmt.Errorf("station %q: %w", name, err)
		}
		if created {
			report.StationsCreated++
		}
		resolved[name] = st
		return st, nil
	}

	for _, name := range doc.Stations {
		if _, err := resolve(name); err != nil {
			return report, err
		}
	}

	for _, dl := range doc.Lines {
		if err := im.importLine(ctx, dl, resolve, &report); err != nil {
			return report, fmt.Errorf("line %q: %w", dl.Name, err)
		}
	}

	im.logger.Info("network imported",
		slog.Int("stations_created", report.StationsCreated),
		slog.Int("lines_created", report.LinesCreated),
		slog.Int("sections_added", report.SectionsAdded),
	)
	return report, nil
}

func (im *Importer) importLine(ctx context.Context, dl Line, resolve func(string) (station.Station, error), report *Report) error {
	params := make([]service.SectionAddParams, 0, len(dl.Sections))
	for _, s := range dl.Sections {
		up, err := resolve(s.Up)
		if err != nil {
			return err
		}
		down, err := resolve(s.Down)
		if err != nil {
			return err
		}
		params = append(params, service.SectionAddParams{
			UpStationID:   up.ID(),
			DownStationID: down.ID(),
			Length:        s.Length,
		})
	}

	first := params[0]
	l, err := im.lines.Create(ctx, &service.LineCreateParams{
		Name:          dl.Name,
		Color:         dl.Color,
		UpStationID:   first.UpStationID,
		DownStationID: first.DownStationID,
		Length:        first.Length,
	})
	if err != nil {
		return err
	}
	report.LinesCreated++
	report.SectionsAdded++

	pending := params[1:]
	for len(pending) > 0 {
		var deferred []service.SectionAddParams
		for _, p := range pending {
			if _, err := im.lines.AddSection(ctx, l.ID(), &p); err != nil {
				if errors.Is(err, line.ErrDisconnected) {
					deferred = append(deferred, p)
					continue
				}
				return err
			}
			report.SectionsAdded++
		}
		if len(deferred) == len(pending) {
			return fmt.Errorf("%d section(s) never connect to the line: %w", len(deferred), line.ErrDisconnected)
		}
		pending = deferred
	}
	return nil
}
