package station

import (
	"context"

	"github.com/helixml/subway/domain/repository"
)

// Store persists stations.
type Store interface {
	repository.Store[Station]
	Save(ctx context.Context, s Station) (Station, error)
	Delete(ctx context.Context, s Station) error
}
