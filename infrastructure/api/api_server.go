package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/mark3labs/mcp-go/server"

	"github.com/helixml/subway"
	apimiddleware "github.com/helixml/subway/infrastructure/api/middleware"
	v1 "github.com/helixml/subway/infrastructure/api/v1"
	mcpinternal "github.com/helixml/subway/internal/mcp"
)

// DefaultRequestTimeout bounds /api/v1 requests.
const DefaultRequestTimeout = 60 * time.Second

// APIServer provides an HTTP API backed by a subway Client.
type APIServer struct {
	client         *subway.Client
	apiKeys        []string
	corsOrigins    []string
	requestTimeout time.Duration
	version        string
	server         *Server
	router         chi.Router
	routerCalled   bool
	logger         *slog.Logger
}

// APIServerOption configures an APIServer.
type APIServerOption func(*APIServer)

// WithCORSOrigins allows cross-origin requests from the given origins.
func WithCORSOrigins(origins []string) APIServerOption {
	return func(a *APIServer) { a.corsOrigins = origins }
}

// WithRequestTimeout bounds /api/v1 requests. Non-positive values keep the default.
func WithRequestTimeout(d time.Duration) APIServerOption {
	return func(a *APIServer) {
		if d > 0 {
			a.requestTimeout = d
		}
	}
}

// WithVersion sets the version reported by /health and the MCP server.
func WithVersion(version string) APIServerOption {
	return func(a *APIServer) { a.version = version }
}

// NewAPIServer creates a new APIServer wired to the given Client.
// apiKeys configures write-protection: POST, PUT, PATCH and DELETE under
// /api/v1 require a valid key. Reads, health and MCP remain open.
func NewAPIServer(client *subway.Client, apiKeys []string, opts ...APIServerOption) *APIServer {
	a := &APIServer{
		client:         client,
		apiKeys:        apiKeys,
		requestTimeout: DefaultRequestTimeout,
		version:        "dev",
		logger:         client.Logger(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Router returns the chi router for customization before starting.
// Call this first, add custom middleware with router.Use(), then call MountRoutes().
func (a *APIServer) Router() chi.Router {
	if a.router != nil {
		return a.router
	}

	a.router = chi.NewRouter()
	a.routerCalled = true
	return a.router
}

// MountRoutes wires up all routes on the router.
func (a *APIServer) MountRoutes() {
	if a.router == nil {
		a.Router()
	}
	a.mountRoutes(a.router)
}

func (a *APIServer) mountRoutes(router chi.Router) {
	c := a.client

	router.Use(apimiddleware.CorrelationID)
	router.Use(apimiddleware.Logging(a.logger))
	if len(a.corsOrigins) > 0 {
		router.Use(apimiddleware.CORS(a.corsOrigins))
	}

	router.Get("/health", a.health)
	router.Get("/healthz", a.health)

	stationsRouter := v1.NewStationsRouter(c)
	linesRouter := v1.NewLinesRouter(c)

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(chimiddleware.Timeout(a.requestTimeout))
		r.Use(apimiddleware.WriteProtectAuth(a.apiKeys))
		r.Mount("/stations", stationsRouter.Routes())
		r.Mount("/lines", linesRouter.Routes())
	})

	// No timeout middleware: MCP streams responses and sets its own
	// session headers.
	mcpSrv := mcpinternal.NewServer(c.Lines, c.Stations, a.version, a.logger)
	router.Mount("/mcp", server.NewStreamableHTTPServer(mcpSrv.MCPServer()))
}

type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

func (a *APIServer) health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := a.client.Ping(ctx); err != nil {
		a.logger.Warn("health check failed", slog.Any("error", err))
		apimiddleware.WriteJSON(w, http.StatusServiceUnavailable, healthResponse{Status: "unhealthy", Version: a.version})
		return
	}
	apimiddleware.WriteJSON(w, http.StatusOK, healthResponse{Status: "healthy", Version: a.version})
}

// ListenAndServe starts the HTTP server on the given address.
func (a *APIServer) ListenAndServe(addr string) error {
	srv := NewServer(addr, a.logger)
	a.server = &srv

	if a.routerCalled && a.router != nil {
		srv.Router().Mount("/", a.router)
	} else {
		a.mountRoutes(srv.Router())
	}

	return srv.Start()
}

// Shutdown gracefully shuts down the server.
func (a *APIServer) Shutdown(ctx context.Context) error {
	if a.server == nil {
		return nil
	}
	return a.server.Shutdown(ctx)
}

// Handler returns the router as an http.Handler for use with custom servers.
func (a *APIServer) Handler() http.Handler {
	if a.router == nil {
		a.Router()
		a.MountRoutes()
	}
	return a.router
}
