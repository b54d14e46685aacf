// Package line provides the line aggregate and the segment chain that
// keeps each line a single path of stations.
package line

import (
	"strings"
	"time"

	"github.com/helixml/subway/domain/station"
)

// Line is a named, coloured route over a chain of segments.
type Line struct {
	id        int64
	name      string
	color     string
	chain     *Chain
	createdAt time.Time
	updatedAt time.Time
}

// NewLine creates an unsaved Line whose chain starts with seed.
func NewLine(name, color string, seed Segment) (Line, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Line{}, ErrEmptyName
	}
	chain := NewChain()
	if err := chain.Insert(seed); err != nil {
		return Line{}, err
	}
	now := time.Now().UTC()
	return Line{
		name:      name,
		color:     strings.TrimSpace(color),
		chain:     chain,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// ReconstructLine rebuilds a Line from persistence.
func ReconstructLine(id int64, name, color string, chain *Chain, createdAt, updatedAt time.Time) Line {
	if chain == nil {
		chain = NewChain()
	}
	return Line{
		id:        id,
		name:      name,
		color:     color,
		chain:     chain,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// ID returns the line ID.
func (l Line) ID() int64 { return l.id }

// Name returns the line name.
func (l Line) Name() string { return l.name }

// Color returns the line colour.
func (l Line) Color() string { return l.color }

// CreatedAt returns the creation timestamp.
func (l Line) CreatedAt() time.Time { return l.createdAt }

// UpdatedAt returns the last update timestamp.
func (l Line) UpdatedAt() time.Time { return l.updatedAt }

// Chain returns a copy of the line's chain.
func (l Line) Chain() *Chain { return l.chain.Clone() }

// Stations returns the stations in travel order.
func (l Line) Stations() []station.Station { return l.chain.Stations() }

// Sections returns the segments in travel order.
func (l Line) Sections() []Segment { return l.chain.OrderedSegments() }

// Segments returns the segments in storage order.
func (l Line) Segments() []Segment { return l.chain.Segments() }

// TotalLength returns the length of the whole line.
func (l Line) TotalLength() int { return l.chain.TotalLength() }

// WithID returns a copy carrying the given ID.
func (l Line) WithID(id int64) Line {
	l.id = id
	return l
}

// WithChain returns a copy backed by chain.
func (l Line) WithChain(chain *Chain) Line {
	l.chain = chain
	return l
}

// WithName returns a renamed copy.
func (l Line) WithName(name string) (Line, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return l, ErrEmptyName
	}
	l.name = name
	l.updatedAt = time.Now().UTC()
	return l, nil
}

// WithColor returns a recoloured copy.
func (l Line) WithColor(color string) Line {
	l.color = strings.TrimSpace(color)
	l.updatedAt = time.Now().UTC()
	return l
}

// AddSegment returns a copy of the line with seg inserted into its chain.
// The receiver is never modified.
func (l Line) AddSegment(seg Segment) (Line, error) {
	chain := l.chain.Clone()
	if err := chain.Insert(seg); err != nil {
		return l, err
	}
	l.chain = chain
	l.updatedAt = time.Now().UTC()
	return l, nil
}

// RemoveStation returns a copy of the line without st.
// The receiver is never modified.
func (l Line) RemoveStation(st station.Station) (Line, error) {
	chain := l.chain.Clone()
	if err := chain.Remove(st); err != nil {
		return l, err
	}
	l.chain = chain
	l.updatedAt = time.Now().UTC()
	return l, nil
}
