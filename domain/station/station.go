// Package station provides the station value type shared by all lines.
package station

import (
	"errors"
	"strings"
	"time"
)

// Station errors.
var (
	ErrEmptyName     = errors.New("station name must not be empty")
	ErrDuplicateName = errors.New("station name already exists")
	ErrInUse         = errors.New("station is referenced by a line")
)

// Station is a stop on one or more lines. Two stations are the same
// station when their IDs match.
type Station struct {
	id        int64
	name      string
	createdAt time.Time
	updatedAt time.Time
}

// NewStation creates an unsaved Station.
func NewStation(name string) (Station, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Station{}, ErrEmptyName
	}
	now := time.Now().UTC()
	return Station{
		name:      name,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// ReconstructStation rebuilds a Station from persistence.
func ReconstructStation(id int64, name string, createdAt, updatedAt time.Time) Station {
	return Station{
		id:        id,
		name:      name,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// ID returns the station ID.
func (s Station) ID() int64 { return s.id }

// Name returns the station name.
func (s Station) Name() string { return s.name }

// CreatedAt returns the creation timestamp.
func (s Station) CreatedAt() time.Time { return s.createdAt }

// UpdatedAt returns the last update timestamp.
func (s Station) UpdatedAt() time.Time { return s.updatedAt }

// Equal reports whether both values refer to the same station.
func (s Station) Equal(other Station) bool { return s.id == other.id }

// WithID returns a copy carrying the given ID.
func (s Station) WithID(id int64) Station {
	s.id = id
	return s
}

// WithName returns a renamed copy.
func (s Station) WithName(name string) (Station, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return s, ErrEmptyName
	}
	s.name = name
	s.updatedAt = time.Now().UTC()
	return s, nil
}

// String returns the station name.
func (s Station) String() string { return s.name }
