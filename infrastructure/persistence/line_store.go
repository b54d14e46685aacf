package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/helixml/subway/domain/line"
	"github.com/helixml/subway/domain/repository"
	"github.com/helixml/subway/internal/database"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LineStore implements line.Store using GORM. A line is stored as a header
// row plus one row per segment; reads reassemble the chain.
type LineStore struct {
	database.Repository[line.Line, LineModel]
	segments SegmentMapper
}

// NewLineStore creates a new LineStore.
func NewLineStore(db database.Database) LineStore {
	return LineStore{
		Repository: database.NewRepository[line.Line, LineModel](db, LineMapper{}, "line"),
	}
}

// Find retrieves lines with their chains.
func (s LineStore) Find(ctx context.Context, options ...repository.Option) ([]line.Line, error) {
	lines, err := s.Repository.Find(ctx, options...)
	if err != nil {
		return nil, err
	}
	return s.hydrate(s.DB(ctx), lines)
}

// FindOne retrieves a single line with its chain.
func (s LineStore) FindOne(ctx context.Context, options ...repository.Option) (line.Line, error) {
	l, err := s.Repository.FindOne(ctx, options...)
	if err != nil {
		return line.Line{}, err
	}
	hydrated, err := s.hydrate(s.DB(ctx), []line.Line{l})
	if err != nil {
		return line.Line{}, err
	}
	return hydrated[0], nil
}

// Save writes the header and reconciles the segment rows with the chain
// in a single transaction. Segments missing from the chain are deleted,
// rewritten segments are updated in place, and new ones are inserted.
func (s LineStore) Save(ctx context.Context, l line.Line) (line.Line, error) {
	return database.WithTransactionResult(ctx, s.Database(), func(tx *gorm.DB) (line.Line, error) {
		header := s.Mapper().ToModel(l)
		var err error
		if header.ID == 0 {
			err = tx.Create(&header).Error
		} else {
			err = tx.Save(&header).Error
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return line.Line{}, fmt.Errorf("%w: %s", line.ErrDuplicateName, l.Name())
		}
		if err != nil {
			return line.Line{}, fmt.Errorf("save line: %w", err)
		}

		segments := l.Segments()
		keep := make([]int64, 0, len(segments))
		for _, seg := range segments {
			if seg.ID() != 0 {
				keep = append(keep, seg.ID())
			}
		}
		stale := tx.Where("line_id = ?", header.ID)
		if len(keep) > 0 {
			stale = stale.Where("id NOT IN ?", keep)
		}
		if err := stale.Delete(&SegmentModel{}).Error; err != nil {
			return line.Line{}, fmt.Errorf("delete stale sections: %w", err)
		}

		saved := make([]line.Segment, 0, len(segments))
		for _, seg := range segments {
			if seg.ID() == 0 {
				continue
			}
			err := tx.Model(&SegmentModel{ID: seg.ID()}).Updates(map[string]any{
				"up_station_id":   seg.Up().ID(),
				"down_station_id": seg.Down().ID(),
				"length":          seg.Length(),
			}).Error
			if err != nil {
				return line.Line{}, fmt.Errorf("update section %d: %w", seg.ID(), err)
			}
			saved = append(saved, seg)
		}
		for _, seg := range segments {
			if seg.ID() != 0 {
				continue
			}
			model := s.segments.ToModel(seg, header.ID)
			if err := tx.Omit(clause.Associations).Create(&model).Error; err != nil {
				return line.Line{}, fmt.Errorf("create section: %w", err)
			}
			saved = append(saved, line.ReconstructSegment(model.ID, seg.Up(), seg.Down(), seg.Length()))
		}

		chain, err := line.ReconstructChain(saved)
		if err != nil {
			return line.Line{}, fmt.Errorf("rebuild chain: %w", err)
		}
		return s.Mapper().ToDomain(header).WithChain(chain), nil
	})
}

// Delete removes a line and all of its segments.
func (s LineStore) Delete(ctx context.Context, l line.Line) error {
	return database.WithTransaction(ctx, s.Database(), func(tx *gorm.DB) error {
		if err := tx.Where("line_id = ?", l.ID()).Delete(&SegmentModel{}).Error; err != nil {
			return fmt.Errorf("delete sections: %w", err)
		}
		if err := tx.Delete(&LineModel{}, l.ID()).Error; err != nil {
			return fmt.Errorf("delete line: %w", err)
		}
		return nil
	})
}

// ReferencesStation reports whether any line has a segment touching the station.
func (s LineStore) ReferencesStation(ctx context.Context, stationID int64) (bool, error) {
	var count int64
	err := s.DB(ctx).Model(&SegmentModel{}).
		Where("up_station_id = ? OR down_station_id = ?", stationID, stationID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("count station references: %w", err)
	}
	return count > 0, nil
}

// hydrate loads the segments of every line in one query and attaches the
// rebuilt chains.
func (s LineStore) hydrate(db *gorm.DB, lines []line.Line) ([]line.Line, error) {
	if len(lines) == 0 {
		return lines, nil
	}
	ids := make([]int64, len(lines))
	for i, l := range lines {
		ids[i] = l.ID()
	}

	var models []SegmentModel
	err := db.Preload("UpStation").Preload("DownStation").
		Where("line_id IN ?", ids).
		Order("id ASC").
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("load sections: %w", err)
	}

	byLine := make(map[int64][]line.Segment, len(lines))
	for _, m := range models {
		byLine[m.LineID] = append(byLine[m.LineID], s.segments.ToDomain(m))
	}

	out := make([]line.Line, len(lines))
	for i, l := range lines {
		chain, err := line.ReconstructChain(byLine[l.ID()])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", l.ID(), err)
		}
		out[i] = l.WithChain(chain)
	}
	return out, nil
}
