package mcp

import (
	"fmt"
	"strconv"
	"strings"
)

const lineURIPrefix = "subway://lines/"

// LineURITemplate is the resource template for lines.
const LineURITemplate = lineURIPrefix + "{id}"

// LineURI identifies a line resource.
type LineURI struct {
	lineID int64
}

// NewLineURI creates a LineURI for the given line.
func NewLineURI(lineID int64) LineURI {
	return LineURI{lineID: lineID}
}

// ParseLineURI parses a subway://lines/{id} URI.
func ParseLineURI(raw string) (LineURI, error) {
	rest, ok := strings.CutPrefix(raw, lineURIPrefix)
	if !ok {
		return LineURI{}, fmt.Errorf("not a line uri: %s", raw)
	}
	id, err := strconv.ParseInt(rest, 10, 64)
	if err != nil || id <= 0 {
		return LineURI{}, fmt.Errorf("invalid line id in uri: %s", raw)
	}
	return LineURI{lineID: id}, nil
}

// LineID returns the line ID.
func (u LineURI) LineID() int64 { return u.lineID }

// String builds the URI string.
func (u LineURI) String() string {
	return lineURIPrefix + strconv.FormatInt(u.lineID, 10)
}
