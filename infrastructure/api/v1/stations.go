// Package v1 provides the v1 API routes.
package v1

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/helixml/subway"
	"github.com/helixml/subway/domain/repository"
	"github.com/helixml/subway/infrastructure/api/jsonapi"
	"github.com/helixml/subway/infrastructure/api/middleware"
	"github.com/helixml/subway/infrastructure/api/v1/dto"
)

// StationsRouter handles station API endpoints.
type StationsRouter struct {
	client *subway.Client
	logger *slog.Logger
}

// NewStationsRouter creates a new StationsRouter.
func NewStationsRouter(client *subway.Client) *StationsRouter {
	return &StationsRouter{
		client: client,
		logger: client.Logger(),
	}
}

// Routes returns the chi router for station endpoints.
func (r *StationsRouter) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", r.List)
	router.Post("/", r.Create)
	router.Get("/{id}", r.Get)
	router.Put("/{id}", r.Rename)
	router.Delete("/{id}", r.Delete)

	return router
}

// List handles GET /api/v1/stations. The optional name query parameter
// filters by name prefix.
func (r *StationsRouter) List(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()
	pagination := ParsePagination(req)

	var filter []repository.Option
	if prefix := req.URL.Query().Get("name"); prefix != "" {
		filter = append(filter, repository.WithNamePrefix(prefix))
	}

	opts := append([]repository.Option{repository.WithOrderAsc("id")}, filter...)
	stations, err := r.client.Stations.Find(ctx, append(opts, pagination.Options()...)...)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	total, err := r.client.Stations.Count(ctx, filter...)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	doc := jsonapi.NewListResponse(jsonapi.StationResources(stations))
	doc.Meta = pagination.Meta(total)
	doc.Links = pagination.Links(req, total)
	middleware.WriteJSON(w, http.StatusOK, doc)
}

// Get handles GET /api/v1/stations/{id}.
func (r *StationsRouter) Get(w http.ResponseWriter, req *http.Request) {
	id, err := pathID(req, "id")
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	st, err := r.client.Stations.Get(req.Context(), repository.WithID(id))
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, jsonapi.NewSingleResponse(jsonapi.StationResource(st)))
}

// Create handles POST /api/v1/stations.
func (r *StationsRouter) Create(w http.ResponseWriter, req *http.Request) {
	var body dto.StationRequest
	if err := decode(req, &body); err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	st, err := r.client.Stations.Create(req.Context(), body.Data.Attributes.Name)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	w.Header().Set("Location", "/api/v1/stations/"+strconv.FormatInt(st.ID(), 10))
	middleware.WriteJSON(w, http.StatusCreated, jsonapi.NewSingleResponse(jsonapi.StationResource(st)))
}

// Rename handles PUT /api/v1/stations/{id}.
func (r *StationsRouter) Rename(w http.ResponseWriter, req *http.Request) {
	id, err := pathID(req, "id")
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	var body dto.StationRequest
	if err := decode(req, &body); err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	st, err := r.client.Stations.Rename(req.Context(), id, body.Data.Attributes.Name)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, jsonapi.NewSingleResponse(jsonapi.StationResource(st)))
}

// Delete handles DELETE /api/v1/stations/{id}. Stations still on a line
// cannot be deleted.
func (r *StationsRouter) Delete(w http.ResponseWriter, req *http.Request) {
	id, err := pathID(req, "id")
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	if err := r.client.Stations.Delete(req.Context(), id); err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func pathID(req *http.Request, name string) (int64, error) {
	raw := chi.URLParam(req, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, middleware.NewAPIError(http.StatusBadRequest, "invalid "+name+": "+raw, err)
	}
	return id, nil
}

func queryID(req *http.Request, name string) (int64, error) {
	raw := req.URL.Query().Get(name)
	if raw == "" {
		return 0, middleware.NewAPIError(http.StatusBadRequest, name+" is required", nil)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, middleware.NewAPIError(http.StatusBadRequest, "invalid "+name+": "+raw, err)
	}
	return id, nil
}

func decode(req *http.Request, v any) error {
	if err := json.NewDecoder(req.Body).Decode(v); err != nil {
		return middleware.NewAPIError(http.StatusBadRequest, "invalid request body", err)
	}
	return nil
}
