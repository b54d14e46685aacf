// Package mcp provides Model Context Protocol server functionality.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/helixml/subway/application/service"
	"github.com/helixml/subway/domain/line"
	"github.com/helixml/subway/domain/repository"
	"github.com/helixml/subway/domain/station"
)

// LineService reads and edits lines for MCP tools.
type LineService interface {
	Find(ctx context.Context, options ...repository.Option) ([]line.Line, error)
	Get(ctx context.Context, options ...repository.Option) (line.Line, error)
	AddSection(ctx context.Context, lineID int64, params *service.SectionAddParams) (line.Line, error)
	RemoveStation(ctx context.Context, lineID, stationID int64) (line.Line, error)
}

// StationLister lists stations for MCP tools.
type StationLister interface {
	Find(ctx context.Context, options ...repository.Option) ([]station.Station, error)
}

// Server wraps the MCP server with subway tools.
type Server struct {
	mcpServer *server.MCPServer
	lines     LineService
	stations  StationLister
	version   string
	logger    *slog.Logger
}

// NewServer creates a new MCP server with the given dependencies.
func NewServer(lines LineService, stations StationLister, version string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		lines:    lines,
		stations: stations,
		version:  version,
		logger:   logger,
	}

	mcpServer := server.NewMCPServer(
		"subway",
		version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, false),
	)

	s.registerTools(mcpServer)
	s.registerResources(mcpServer)

	s.mcpServer = mcpServer
	return s
}

func (s *Server) registerTools(mcpServer *server.MCPServer) {
	mcpServer.AddTool(mcp.NewTool("list_lines",
		mcp.WithDescription("List subway lines with their stations in travel order"),
		mcp.WithString("color", mcp.Description("Only lines with this color")),
	), s.handleListLines)

	mcpServer.AddTool(mcp.NewTool("get_line",
		mcp.WithDescription("Get a line with its ordered stations and sections"),
		mcp.WithNumber("line_id", mcp.Required(), mcp.Description("The line ID")),
	), s.handleGetLine)

	mcpServer.AddTool(mcp.NewTool("list_stations",
		mcp.WithDescription("List stations, optionally filtered by name prefix"),
		mcp.WithString("name_prefix", mcp.Description("Only stations whose name starts with this")),
		mcp.WithNumber("limit", mcp.Description("Maximum number of stations (default: 100)")),
	), s.handleListStations)

	mcpServer.AddTool(mcp.NewTool("add_section",
		mcp.WithDescription("Add a section to a line. The section must share exactly one station with the line; "+
			"a section starting or ending inside an existing section must be shorter than it"),
		mcp.WithNumber("line_id", mcp.Required(), mcp.Description("The line ID")),
		mcp.WithNumber("up_station_id", mcp.Required(), mcp.Description("Station the section starts at")),
		mcp.WithNumber("down_station_id", mcp.Required(), mcp.Description("Station the section ends at")),
		mcp.WithNumber("length", mcp.Required(), mcp.Description("Section length, greater than zero")),
	), s.handleAddSection)

	mcpServer.AddTool(mcp.NewTool("remove_station",
		mcp.WithDescription("Remove a station from a line, merging the sections on either side"),
		mcp.WithNumber("line_id", mcp.Required(), mcp.Description("The line ID")),
		mcp.WithNumber("station_id", mcp.Required(), mcp.Description("The station to remove")),
	), s.handleRemoveStation)

	mcpServer.AddTool(mcp.NewTool("get_version",
		mcp.WithDescription("Get the server version"),
	), func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return mcp.NewToolResultText(s.version), nil
	})
}

func (s *Server) registerResources(mcpServer *server.MCPServer) {
	mcpServer.AddResourceTemplate(
		mcp.NewResourceTemplate(LineURITemplate, "line",
			mcp.WithTemplateDescription("A subway line with its ordered stations and sections"),
			mcp.WithTemplateMIMEType("application/json"),
		),
		s.handleReadLine,
	)
}

type stationResult struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type sectionResult struct {
	Up     string `json:"up"`
	Down   string `json:"down"`
	Length int    `json:"length"`
}

type lineResult struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Color       string          `json:"color"`
	TotalLength int             `json:"total_length"`
	Stations    []stationResult `json:"stations"`
	Sections    []sectionResult `json:"sections,omitempty"`
}

func toLineResult(l line.Line, withSections bool) lineResult {
	stations := l.Stations()
	out := lineResult{
		ID:          l.ID(),
		Name:        l.Name(),
		Color:       l.Color(),
		TotalLength: l.TotalLength(),
		Stations:    make([]stationResult, 0, len(stations)),
	}
	for _, st := range stations {
		out.Stations = append(out.Stations, stationResult{ID: st.ID(), Name: st.Name()})
	}
	if withSections {
		for _, seg := range l.Sections() {
			out.Sections = append(out.Sections, sectionResult{
				Up:     seg.Up().Name(),
				Down:   seg.Down().Name(),
				Length: seg.Length(),
			})
		}
	}
	return out
}

func jsonResult(v any) *mcp.CallToolResult {
	b, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err))
	}
	return mcp.NewToolResultText(string(b))
}

func (s *Server) handleListLines(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	opts := []repository.Option{repository.WithOrderAsc("id")}
	if color := request.GetString("color", ""); color != "" {
		opts = append(opts, repository.WithColor(color))
	}

	lines, err := s.lines.Find(ctx, opts...)
	if err != nil {
		s.logger.Error("failed to list lines", slog.Any("error", err))
		return mcp.NewToolResultError(fmt.Sprintf("list lines: %v", err)), nil
	}

	results := make([]lineResult, 0, len(lines))
	for _, l := range lines {
		results = append(results, toLineResult(l, false))
	}
	return jsonResult(results), nil
}

func (s *Server) handleGetLine(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireInt("line_id")
	if err != nil {
		return mcp.NewToolResultError("line_id is required"), nil
	}

	l, err := s.lines.Get(ctx, repository.WithID(int64(id)))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("get line %d: %v", id, err)), nil
	}
	return jsonResult(toLineResult(l, true)), nil
}

func (s *Server) handleListStations(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := request.GetInt("limit", 100)
	if limit < 1 {
		limit = 100
	}
	opts := []repository.Option{repository.WithOrderAsc("name"), repository.WithLimit(limit)}
	if prefix := request.GetString("name_prefix", ""); prefix != "" {
		opts = append(opts, repository.WithNamePrefix(prefix))
	}

	stations, err := s.stations.Find(ctx, opts...)
	if err != nil {
		s.logger.Error("failed to list stations", slog.Any("error", err))
		return mcp.NewToolResultError(fmt.Sprintf("list stations: %v", err)), nil
	}

	results := make([]stationResult, 0, len(stations))
	for _, st := range stations {
		results = append(results, stationResult{ID: st.ID(), Name: st.Name()})
	}
	return jsonResult(results), nil
}

func (s *Server) handleAddSection(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	lineID, err := request.RequireInt("line_id")
	if err != nil {
		return mcp.NewToolResultError("line_id is required"), nil
	}
	upID, err := request.RequireInt("up_station_id")
	if err != nil {
		return mcp.NewToolResultError("up_station_id is required"), nil
	}
	downID, err := request.RequireInt("down_station_id")
	if err != nil {
		return mcp.NewToolResultError("down_station_id is required"), nil
	}
	length, err := request.RequireInt("length")
	if err != nil {
		return mcp.NewToolResultError("length is required"), nil
	}

	l, err := s.lines.AddSection(ctx, int64(lineID), &service.SectionAddParams{
		UpStationID:   int64(upID),
		DownStationID: int64(downID),
		Length:        length,
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(toLineResult(l, true)), nil
}

func (s *Server) handleRemoveStation(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	lineID, err := request.RequireInt("line_id")
	if err != nil {
		return mcp.NewToolResultError("line_id is required"), nil
	}
	stationID, err := request.RequireInt("station_id")
	if err != nil {
		return mcp.NewToolResultError("station_id is required"), nil
	}

	l, err := s.lines.RemoveStation(ctx, int64(lineID), int64(stationID))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(toLineResult(l, true)), nil
}

func (s *Server) handleReadLine(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	uri, err := ParseLineURI(request.Params.URI)
	if err != nil {
		return nil, err
	}

	l, err := s.lines.Get(ctx, repository.WithID(uri.LineID()))
	if err != nil {
		return nil, fmt.Errorf("get line %d: %w", uri.LineID(), err)
	}

	b, err := json.Marshal(toLineResult(l, true))
	if err != nil {
		return nil, fmt.Errorf("marshal line: %w", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri.String(),
			MIMEType: "application/json",
			Text:     string(b),
		},
	}, nil
}

// MCPServer returns the underlying MCP server for stdio serving.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio runs the MCP server on stdio.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}
