package line

import "errors"

// Insertion errors.
var (
	ErrInvalidDistance  = errors.New("section length must be shorter than the section it splits")
	ErrDuplicateSegment = errors.New("both stations are already on the line")
	ErrDisconnected     = errors.New("neither station is on the line")
)

// Removal errors.
var (
	ErrChainTooShort    = errors.New("line must keep at least one section")
	ErrStationNotOnLine = errors.New("station is not on the line")
)

// Construction errors.
var (
	ErrSameStations      = errors.New("section must connect two different stations")
	ErrNonPositiveLength = errors.New("section length must be positive")
	ErrBrokenChain       = errors.New("sections do not form a single path")
	ErrEmptyName         = errors.New("line name must not be empty")
	ErrDuplicateName     = errors.New("line name already exists")
)
