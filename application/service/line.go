package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/helixml/subway/domain/line"
	"github.com/helixml/subway/domain/repository"
	"github.com/helixml/subway/domain/station"
)

// LineCreateParams configures a new line and its first section.
type LineCreateParams struct {
	Name          string
	Color         string
	UpStationID   int64
	DownStationID int64
	Length        int
}

// LineUpdateParams changes a line's header. Empty fields are left alone.
type LineUpdateParams struct {
	Name  string
	Color string
}

// SectionAddParams describes a section to insert into a line.
type SectionAddParams struct {
	UpStationID   int64
	DownStationID int64
	Length        int
}

// Line provides line management and section editing.
// Edits to the same line are serialised.
type Line struct {
	repository.Collection[line.Line]
	lines    line.Store
	stations station.Store
	locks    *keyedMutex
	logger   *slog.Logger
}

// NewLine creates a new Line service.
func NewLine(lines line.Store, stations station.Store, logger *slog.Logger) *Line {
	return &Line{
		Collection: repository.NewCollection[line.Line](lines),
		lines:      lines,
		stations:   stations,
		locks:      newKeyedMutex(),
		logger:     logger,
	}
}

// Create adds a line whose chain starts with the given section.
func (s *Line) Create(ctx context.Context, params *LineCreateParams) (line.Line, error) {
	seed, err := s.segment(ctx, params.UpStationID, params.DownStationID, params.Length)
	if err != nil {
		return line.Line{}, err
	}
	l, err := line.NewLine(params.Name, params.Color, seed)
	if err != nil {
		return line.Line{}, err
	}
	saved, err := s.lines.Save(ctx, l)
	if err != nil {
		return line.Line{}, fmt.Errorf("save line: %w", err)
	}
	s.logger.Info("line created",
		slog.Int64("line_id", saved.ID()),
		slog.String("name", saved.Name()),
		slog.String("section", seed.String()),
	)
	return saved, nil
}

// Update renames or recolours a line.
func (s *Line) Update(ctx context.Context, id int64, params *LineUpdateParams) (line.Line, error) {
	defer s.locks.Lock(id)()

	l, err := s.lines.FindOne(ctx, repository.WithID(id))
	if err != nil {
		return line.Line{}, fmt.Errorf("get line: %w", err)
	}
	if params.Name != "" {
		if l, err = l.WithName(params.Name); err != nil {
			return line.Line{}, err
		}
	}
	if params.Color != "" {
		l = l.WithColor(params.Color)
	}
	saved, err := s.lines.Save(ctx, l)
	if err != nil {
		return line.Line{}, fmt.Errorf("save line: %w", err)
	}
	s.logger.Info("line updated",
		slog.Int64("line_id", id),
		slog.String("name", saved.Name()),
		slog.String("color", saved.Color()),
	)
	return saved, nil
}

// Delete removes a line and its sections.
func (s *Line) Delete(ctx context.Context, id int64) error {
	defer s.locks.Lock(id)()

	l, err := s.lines.FindOne(ctx, repository.WithID(id))
	if err != nil {
		return fmt.Errorf("get line: %w", err)
	}
	if err := s.lines.Delete(ctx, l); err != nil {
		return fmt.Errorf("delete line: %w", err)
	}
	s.logger.Info("line deleted", slog.Int64("line_id", id))
	return nil
}

// AddSection inserts a section into the line, splitting an existing
// section when the new one starts or ends inside it.
func (s *Line) AddSection(ctx context.Context, lineID int64, params *SectionAddParams) (line.Line, error) {
	defer s.locks.Lock(lineID)()

	l, err := s.lines.FindOne(ctx, repository.WithID(lineID))
	if err != nil {
		return line.Line{}, fmt.Errorf("get line: %w", err)
	}
	seg, err := s.segment(ctx, params.UpStationID, params.DownStationID, params.Length)
	if err != nil {
		return line.Line{}, err
	}
	updated, err := l.AddSegment(seg)
	if err != nil {
		s.logger.Debug("section rejected",
			slog.Int64("line_id", lineID),
			slog.String("section", seg.String()),
			slog.String("reason", err.Error()),
		)
		return line.Line{}, fmt.Errorf("add section %s: %w", seg, err)
	}
	saved, err := s.lines.Save(ctx, updated)
	if err != nil {
		return line.Line{}, fmt.Errorf("save line: %w", err)
	}
	s.logger.Info("section added",
		slog.Int64("line_id", lineID),
		slog.String("section", seg.String()),
		slog.Int("sections", len(saved.Segments())),
	)
	return saved, nil
}

// RemoveStation takes a station off the line, merging the sections on
// either side of it.
func (s *Line) RemoveStation(ctx context.Context, lineID, stationID int64) (line.Line, error) {
	defer s.locks.Lock(lineID)()

	l, err := s.lines.FindOne(ctx, repository.WithID(lineID))
	if err != nil {
		return line.Line{}, fmt.Errorf("get line: %w", err)
	}
	st, err := s.stations.FindOne(ctx, repository.WithID(stationID))
	if err != nil {
		return line.Line{}, fmt.Errorf("get station: %w", err)
	}
	updated, err := l.RemoveStation(st)
	if err != nil {
		return line.Line{}, fmt.Errorf("remove station %s: %w", st.Name(), err)
	}
	saved, err := s.lines.Save(ctx, updated)
	if err != nil {
		return line.Line{}, fmt.Errorf("save line: %w", err)
	}
	s.logger.Info("station removed from line",
		slog.Int64("line_id", lineID),
		slog.Int64("station_id", stationID),
		slog.Int("sections", len(saved.Segments())),
	)
	return saved, nil
}

func (s *Line) segment(ctx context.Context, upID, downID int64, length int) (line.Segment, error) {
	up, err := s.stations.FindOne(ctx, repository.WithID(upID))
	if err != nil {
		return line.Segment{}, fmt.Errorf("get up station: %w", err)
	}
	down, err := s.stations.FindOne(ctx, repository.WithID(downID))
	if err != nil {
		return line.Segment{}, fmt.Errorf("get down station: %w", err)
	}
	return line.NewSegment(up, down, length)
}
