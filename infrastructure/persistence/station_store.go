package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/helixml/subway/domain/repository"
	"github.com/helixml/subway/domain/station"
	"github.com/helixml/subway/internal/database"
	"gorm.io/gorm"
)

// StationStore implements station.Store using GORM.
type StationStore struct {
	database.Repository[station.Station, StationModel]
}

// NewStationStore creates a new StationStore.
func NewStationStore(db database.Database) StationStore {
	return StationStore{
		Repository: database.NewRepository[station.Station, StationModel](db, StationMapper{}, "station"),
	}
}

// Save creates or updates a station.
func (s StationStore) Save(ctx context.Context, st station.Station) (station.Station, error) {
	saved, err := s.Repository.Save(ctx, st)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return station.Station{}, fmt.Errorf("%w: %s", station.ErrDuplicateName, st.Name())
	}
	return saved, err
}

// Delete removes a station.
func (s StationStore) Delete(ctx context.Context, st station.Station) error {
	return s.DeleteBy(ctx, repository.WithID(st.ID()))
}
