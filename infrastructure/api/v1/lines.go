package v1

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/helixml/subway"
	"github.com/helixml/subway/application/service"
	"github.com/helixml/subway/domain/repository"
	"github.com/helixml/subway/infrastructure/api/jsonapi"
	"github.com/helixml/subway/infrastructure/api/middleware"
	"github.com/helixml/subway/infrastructure/api/v1/dto"
)

// LinesRouter handles line and section API endpoints.
type LinesRouter struct {
	client *subway.Client
	logger *slog.Logger
}

// NewLinesRouter creates a new LinesRouter.
func NewLinesRouter(client *subway.Client) *LinesRouter {
	return &LinesRouter{
		client: client,
		logger: client.Logger(),
	}
}

// Routes returns the chi router for line endpoints.
func (r *LinesRouter) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", r.List)
	router.Post("/", r.Create)
	router.Get("/{id}", r.Get)
	router.Put("/{id}", r.Update)
	router.Delete("/{id}", r.Delete)
	router.Get("/{id}/stations", r.ListStations)
	router.Get("/{id}/sections", r.ListSections)
	router.Post("/{id}/sections", r.AddSection)
	router.Delete("/{id}/sections", r.RemoveStation)

	return router
}

// List handles GET /api/v1/lines. The optional color query parameter
// filters by color.
func (r *LinesRouter) List(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()
	pagination := ParsePagination(req)

	var filter []repository.Option
	if color := req.URL.Query().Get("color"); color != "" {
		filter = append(filter, repository.WithColor(color))
	}

	opts := append([]repository.Option{repository.WithOrderAsc("id")}, filter...)
	lines, err := r.client.Lines.Find(ctx, append(opts, pagination.Options()...)...)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	total, err := r.client.Lines.Count(ctx, filter...)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	doc := jsonapi.NewListResponse(jsonapi.LineResources(lines))
	doc.Meta = pagination.Meta(total)
	doc.Links = pagination.Links(req, total)
	middleware.WriteJSON(w, http.StatusOK, doc)
}

// Get handles GET /api/v1/lines/{id}.
func (r *LinesRouter) Get(w http.ResponseWriter, req *http.Request) {
	id, err := pathID(req, "id")
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	l, err := r.client.Lines.Get(req.Context(), repository.WithID(id))
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, jsonapi.LineDocument(l))
}

// Create handles POST /api/v1/lines.
func (r *LinesRouter) Create(w http.ResponseWriter, req *http.Request) {
	var body dto.LineCreateRequest
	if err := decode(req, &body); err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	attrs := body.Data.Attributes
	l, err := r.client.Lines.Create(req.Context(), &service.LineCreateParams{
		Name:          attrs.Name,
		Color:         attrs.Color,
		UpStationID:   attrs.UpStationID,
		DownStationID: attrs.DownStationID,
		Length:        attrs.Length,
	})
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	w.Header().Set("Location", "/api/v1/lines/"+strconv.FormatInt(l.ID(), 10))
	middleware.WriteJSON(w, http.StatusCreated, jsonapi.LineDocument(l))
}

// Update handles PUT /api/v1/lines/{id}.
func (r *LinesRouter) Update(w http.ResponseWriter, req *http.Request) {
	id, err := pathID(req, "id")
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	var body dto.LineUpdateRequest
	if err := decode(req, &body); err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	l, err := r.client.Lines.Update(req.Context(), id, &service.LineUpdateParams{
		Name:  body.Data.Attributes.Name,
		Color: body.Data.Attributes.Color,
	})
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, jsonapi.LineDocument(l))
}

// Delete handles DELETE /api/v1/lines/{id}.
func (r *LinesRouter) Delete(w http.ResponseWriter, req *http.Request) {
	id, err := pathID(req, "id")
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	if err := r.client.Lines.Delete(req.Context(), id); err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListStations handles GET /api/v1/lines/{id}/stations, returning the
// stations in travel order.
func (r *LinesRouter) ListStations(w http.ResponseWriter, req *http.Request) {
	id, err := pathID(req, "id")
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	l, err := r.client.Lines.Get(req.Context(), repository.WithID(id))
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, jsonapi.NewListResponse(jsonapi.StationResources(l.Stations())))
}

// ListSections handles GET /api/v1/lines/{id}/sections, returning the
// sections from the head terminus down.
func (r *LinesRouter) ListSections(w http.ResponseWriter, req *http.Request) {
	id, err := pathID(req, "id")
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	l, err := r.client.Lines.Get(req.Context(), repository.WithID(id))
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	doc := jsonapi.NewListResponse(jsonapi.SectionResources(l.Sections()))
	doc.Meta = &jsonapi.Meta{"total_length": l.TotalLength()}
	middleware.WriteJSON(w, http.StatusOK, doc)
}

// AddSection handles POST /api/v1/lines/{id}/sections.
func (r *LinesRouter) AddSection(w http.ResponseWriter, req *http.Request) {
	id, err := pathID(req, "id")
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	var body dto.SectionRequest
	if err := decode(req, &body); err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	attrs := body.Data.Attributes
	l, err := r.client.Lines.AddSection(req.Context(), id, &service.SectionAddParams{
		UpStationID:   attrs.UpStationID,
		DownStationID: attrs.DownStationID,
		Length:        attrs.Length,
	})
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusCreated, jsonapi.LineDocument(l))
}

// RemoveStation handles DELETE /api/v1/lines/{id}/sections?station_id=N.
func (r *LinesRouter) RemoveStation(w http.ResponseWriter, req *http.Request) {
	id, err := pathID(req, "id")
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	stationID, err := queryID(req, "station_id")
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	l, err := r.client.Lines.RemoveStation(req.Context(), id, stationID)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, jsonapi.LineDocument(l))
}
