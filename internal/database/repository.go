package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/helixml/subway/domain/repository"
	"gorm.io/gorm"
)

// ErrNotFound indicates the requested entity was not found.
var ErrNotFound = errors.New("entity not found")

// EntityMapper converts between domain values and GORM models.
type EntityMapper[D any, E any] interface {
	ToDomain(entity E) D
	ToModel(domain D) E
}

// Repository provides the read side and simple writes for one table.
// Stores embed it and add aggregate-specific behaviour.
type Repository[D any, E any] struct {
	db     Database
	mapper EntityMapper[D, E]
	label  string
}

// NewRepository creates a new Repository. label names the entity in errors.
func NewRepository[D any, E any](db Database, mapper EntityMapper[D, E], label string) Repository[D, E] {
	return Repository[D, E]{
		db:     db,
		mapper: mapper,
		label:  label,
	}
}

// Find retrieves entities matching the given options.
func (r Repository[D, E]) Find(ctx context.Context, options ...repository.Option) ([]D, error) {
	var entities []E
	if err := ApplyOptions(r.DB(ctx).Model(new(E)), options...).Find(&entities).Error; err != nil {
		return nil, fmt.Errorf("find %s: %w", r.label, err)
	}

	domains := make([]D, len(entities))
	for i, entity := range entities {
		domains[i] = r.mapper.ToDomain(entity)
	}
	return domains, nil
}

// FindOne retrieves the first entity matching the given options.
func (r Repository[D, E]) FindOne(ctx context.Context, options ...repository.Option) (D, error) {
	var zero D
	entity, err := r.FindModel(ctx, options...)
	if err != nil {
		return zero, err
	}
	return r.mapper.ToDomain(entity), nil
}

// FindModel is FindOne without the mapping step.
func (r Repository[D, E]) FindModel(ctx context.Context, options ...repository.Option) (E, error) {
	var entity E
	err := ApplyOptions(r.DB(ctx), options...).First(&entity).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return entity, fmt.Errorf("%w: %s", ErrNotFound, r.label)
	}
	if err != nil {
		return entity, fmt.Errorf("find one %s: %w", r.label, err)
	}
	return entity, nil
}

// Exists checks if any entity matches the given options.
func (r Repository[D, E]) Exists(ctx context.Context, options ...repository.Option) (bool, error) {
	count, err := r.Count(ctx, options...)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Count returns the number of entities matching the given options.
// Limit, offset and ordering are ignored.
func (r Repository[D, E]) Count(ctx context.Context, options ...repository.Option) (int64, error) {
	var count int64
	if err := ApplyConditions(r.DB(ctx).Model(new(E)), options...).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count %s: %w", r.label, err)
	}
	return count, nil
}

// Save inserts or updates the entity and returns it as stored.
func (r Repository[D, E]) Save(ctx context.Context, domain D) (D, error) {
	entity := r.mapper.ToModel(domain)
	if err := r.DB(ctx).Save(&entity).Error; err != nil {
		var zero D
		return zero, fmt.Errorf("save %s: %w", r.label, err)
	}
	return r.mapper.ToDomain(entity), nil
}

// DeleteBy removes entities matching the given options. At least one
// condition is required.
func (r Repository[D, E]) DeleteBy(ctx context.Context, options ...repository.Option) error {
	if len(repository.Build(options...).Conditions()) == 0 {
		return fmt.Errorf("delete %s: refusing unconditional delete", r.label)
	}
	if err := ApplyConditions(r.DB(ctx), options...).Delete(new(E)).Error; err != nil {
		return fmt.Errorf("delete %s: %w", r.label, err)
	}
	return nil
}

// DB returns a GORM session bound to ctx.
func (r Repository[D, E]) DB(ctx context.Context) *gorm.DB {
	return r.db.Session(ctx)
}

// Database returns the wrapped connection.
func (r Repository[D, E]) Database() Database {
	return r.db
}

// Mapper returns the entity mapper.
func (r Repository[D, E]) Mapper() EntityMapper[D, E] {
	return r.mapper
}
