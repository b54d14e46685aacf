package line

import (
	"context"

	"github.com/helixml/subway/domain/repository"
)

// Store persists lines together with their segments.
type Store interface {
	repository.Store[Line]
	Save(ctx context.Context, l Line) (Line, error)
	Delete(ctx context.Context, l Line) error
	ReferencesStation(ctx context.Context, stationID int64) (bool, error)
}
