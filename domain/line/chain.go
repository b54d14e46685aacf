package line

import (
	"slices"

	"github.com/helixml/subway/domain/station"
)

// Chain is the ordered set of segments making up a line. Segments live in
// an arena and are addressed by index; byUp and byDown map a station ID to
// the index of the segment leaving or arriving at that station.
//
// A non-empty chain is always a single simple path: no station has two
// departing or two arriving segments, and exactly one segment has an up
// station that nothing arrives at.
type Chain struct {
	segments []Segment
	byUp     map[int64]int
	byDown   map[int64]int
}

// NewChain returns an empty chain.
func NewChain() *Chain {
	return &Chain{
		byUp:   map[int64]int{},
		byDown: map[int64]int{},
	}
}

// ReconstructChain rebuilds a chain from segments in any order, rejecting
// sets that branch, loop, or split into several paths.
func ReconstructChain(segments []Segment) (*Chain, error) {
	c := NewChain()
	c.segments = slices.Clone(segments)
	for i, s := range c.segments {
		if err := s.validate(); err != nil {
			return nil, err
		}
		if _, ok := c.byUp[s.up.ID()]; ok {
			return nil, ErrBrokenChain
		}
		if _, ok := c.byDown[s.down.ID()]; ok {
			return nil, ErrBrokenChain
		}
		c.byUp[s.up.ID()] = i
		c.byDown[s.down.ID()] = i
	}
	if len(c.segments) > 0 && len(c.OrderedSegments()) != len(c.segments) {
		return nil, ErrBrokenChain
	}
	return c, nil
}

// Len returns the number of segments.
func (c *Chain) Len() int { return len(c.segments) }

// IsEmpty reports whether the chain has no segments.
func (c *Chain) IsEmpty() bool { return len(c.segments) == 0 }

// Contains reports whether st is an endpoint of any segment.
func (c *Chain) Contains(st station.Station) bool {
	_, up := c.byUp[st.ID()]
	_, down := c.byDown[st.ID()]
	return up || down
}

// Segments returns the segments in storage order.
func (c *Chain) Segments() []Segment {
	return slices.Clone(c.segments)
}

// TotalLength returns the sum of all segment lengths.
func (c *Chain) TotalLength() int {
	total := 0
	for _, s := range c.segments {
		total += s.length
	}
	return total
}

// Clone returns an independent copy.
func (c *Chain) Clone() *Chain {
	out := &Chain{segments: slices.Clone(c.segments)}
	out.reindex()
	return out
}

// Insert adds seg to the chain. The first segment is accepted as is.
// Afterwards exactly one endpoint must already be on the line; when the
// new segment shares an up or down station with an existing segment, that
// segment is split and seg must be strictly shorter than it. A rejected
// insert leaves the chain untouched.
func (c *Chain) Insert(seg Segment) error {
	if err := seg.validate(); err != nil {
		return err
	}
	if c.IsEmpty() {
		c.segments = append(c.segments, seg)
		c.reindex()
		return nil
	}

	upKnown, downKnown := c.Contains(seg.up), c.Contains(seg.down)
	switch {
	case upKnown && downKnown:
		return ErrDuplicateSegment
	case !upKnown && !downKnown:
		return ErrDisconnected
	}

	if i, ok := c.byUp[seg.up.ID()]; ok {
		if seg.length >= c.segments[i].length {
			return ErrInvalidDistance
		}
		c.segments[i] = c.segments[i].trimHead(seg)
	} else if i, ok := c.byDown[seg.down.ID()]; ok {
		if seg.length >= c.segments[i].length {
			return ErrInvalidDistance
		}
		c.segments[i] = c.segments[i].trimTail(seg)
	}

	c.segments = append(c.segments, seg)
	c.reindex()
	return nil
}

// Remove takes st off the line. An interior station has its arriving and
// departing segments merged into one; a terminus loses its only segment.
func (c *Chain) Remove(st station.Station) error {
	if len(c.segments) < 2 {
		return ErrChainTooShort
	}

	arriving, hasArriving := c.byDown[st.ID()]
	departing, hasDeparting := c.byUp[st.ID()]
	switch {
	case hasArriving && hasDeparting:
		c.segments[arriving] = c.segments[arriving].extendTo(c.segments[departing])
		c.segments = slices.Delete(c.segments, departing, departing+1)
	case hasArriving:
		c.segments = slices.Delete(c.segments, arriving, arriving+1)
	case hasDeparting:
		c.segments = slices.Delete(c.segments, departing, departing+1)
	default:
		return ErrStationNotOnLine
	}
	c.reindex()
	return nil
}

// Stations returns the stations from the up terminus to the down terminus.
func (c *Chain) Stations() []station.Station {
	ordered := c.OrderedSegments()
	if len(ordered) == 0 {
		return nil
	}
	out := make([]station.Station, 0, len(ordered)+1)
	out = append(out, ordered[0].up)
	for _, s := range ordered {
		out = append(out, s.down)
	}
	return out
}

// OrderedSegments returns the segments from the up terminus onwards.
func (c *Chain) OrderedSegments() []Segment {
	head, ok := c.head()
	if !ok {
		return nil
	}
	out := make([]Segment, 0, len(c.segments))
	for i := head; len(out) < len(c.segments); {
		out = append(out, c.segments[i])
		next, ok := c.byUp[c.segments[i].down.ID()]
		if !ok {
			break
		}
		i = next
	}
	return out
}

// head returns the index of the segment nothing arrives at.
func (c *Chain) head() (int, bool) {
	for i, s := range c.segments {
		if _, ok := c.byDown[s.up.ID()]; !ok {
			return i, true
		}
	}
	return 0, false
}

func (c *Chain) reindex() {
	c.byUp = make(map[int64]int, len(c.segments))
	c.byDown = make(map[int64]int, len(c.segments))
	for i, s := range c.segments {
		c.byUp[s.up.ID()] = i
		c.byDown[s.down.ID()] = i
	}
}
