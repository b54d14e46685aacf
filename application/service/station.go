package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/helixml/subway/domain/line"
	"github.com/helixml/subway/domain/repository"
	"github.com/helixml/subway/domain/station"
	"github.com/helixml/subway/internal/database"
)

// Station provides station management.
// Embeds Collection for Find/Get/Count; bespoke methods handle writes.
type Station struct {
	repository.Collection[station.Station]
	stations station.Store
	lines    line.Store
	logger   *slog.Logger
}

// NewStation creates a new Station service.
func NewStation(stations station.Store, lines line.Store, logger *slog.Logger) *Station {
	return &Station{
		Collection: repository.NewCollection[station.Station](stations),
		stations:   stations,
		lines:      lines,
		logger:     logger,
	}
}

// Create adds a new station.
func (s *Station) Create(ctx context.Context, name string) (station.Station, error) {
	st, err := station.NewStation(name)
	if err != nil {
		return station.Station{}, err
	}
	saved, err := s.stations.Save(ctx, st)
	if err != nil {
		return station.Station{}, fmt.Errorf("save station: %w", err)
	}
	s.logger.Info("station created",
		slog.Int64("station_id", saved.ID()),
		slog.String("name", saved.Name()),
	)
	return saved, nil
}

// FindOrCreate returns the station called name, creating it when missing.
// The boolean reports whether a station was created.
func (s *Station) FindOrCreate(ctx context.Context, name string) (station.Station, bool, error) {
	probe, err := station.NewStation(name)
	if err != nil {
		return station.Station{}, false, err
	}
	existing, err := s.stations.FindOne(ctx, repository.WithName(probe.Name()))
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, database.ErrNotFound) {
		return station.Station{}, false, fmt.Errorf("find station: %w", err)
	}
	created, err := s.Create(ctx, probe.Name())
	if err != nil {
		return station.Station{}, false, err
	}
	return created, true, nil
}

// Rename changes a station's name.
func (s *Station) Rename(ctx context.Context, id int64, name string) (station.Station, error) {
	st, err := s.stations.FindOne(ctx, repository.WithID(id))
	if err != nil {
		return station.Station{}, fmt.Errorf("get station: %w", err)
	}
	renamed, err := st.WithName(name)
	if err != nil {
		return station.Station{}, err
	}
	saved, err := s.stations.Save(ctx, renamed)
	if err != nil {
		return station.Station{}, fmt.Errorf("save station: %w", err)
	}
	s.logger.Info("station renamed",
		slog.Int64("station_id", id),
		slog.String("from", st.Name()),
		slog.String("to", saved.Name()),
	)
	return saved, nil
}

// Delete removes a station that no line uses.
func (s *Station) Delete(ctx context.Context, id int64) error {
	st, err := s.stations.FindOne(ctx, repository.WithID(id))
	if err != nil {
		return fmt.Errorf("get station: %w", err)
	}
	used, err := s.lines.ReferencesStation(ctx, id)
	if err != nil {
		return fmt.Errorf("check station usage: %w", err)
	}
	if used {
		return fmt.Errorf("%w: %s", station.ErrInUse, st.Name())
	}
	if err := s.stations.Delete(ctx, st); err != nil {
		return fmt.Errorf("delete station: %w", err)
	}
	s.logger.Info("station deleted", slog.Int64("station_id", id))
	return nil
}
