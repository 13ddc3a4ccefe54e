package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/aretw0/rsflow/internal/logging"
	presentation "github.com/aretw0/rsflow/internal/presentation/graph"
	"github.com/aretw0/rsflow/pkg/domain"
	"github.com/aretw0/rsflow/pkg/graph"
	"github.com/aretw0/rsflow/pkg/ports"
	"github.com/aretw0/rsflow/pkg/rsf"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server exposes a read-only view of a recipe graph.
type Server struct {
	Graph   *graph.Graph
	Store   ports.SignatureStore // optional, adds build records to artifact views
	Metrics http.Handler         // optional, served on /metrics
	Version string
	Logger  *slog.Logger
}

// ArtifactView is the JSON shape of an artifact.
type ArtifactView struct {
	Name        string              `json:"name"`
	Sources     []string            `json:"sources"`
	Command     string              `json:"command"`
	Programs    []string            `json:"programs"`
	Description string              `json:"description,omitempty"`
	Level       int                 `json:"level"`
	Dependents  []string            `json:"dependents"`
	Record      *domain.BuildRecord `json:"record,omitempty"`
}

// NewHandler creates the HTTP handler for the server.
func NewHandler(s *Server) http.Handler {
	if s.Logger == nil {
		s.Logger = logging.NewNop()
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Get("/artifacts", s.ListArtifacts)
	r.Get("/artifacts/{name}", s.GetArtifact)
	r.Get("/graph", s.GetGraph)
	r.Get("/sconstruct", s.GetSConstruct)
	if s.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.Metrics)
	}
	return r
}

// GetHealth handles the GET /healthz request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"app":       "rsflow-http",
		"version":   s.Version,
		"artifacts": s.Graph.Len(),
		"levels":    len(s.Graph.Levels()),
	})
}

// ListArtifacts handles the GET /artifacts request.
func (s *Server) ListArtifacts(w http.ResponseWriter, r *http.Request) {
	views := make([]ArtifactView, 0, s.Graph.Len())
	for level, names := range s.Graph.Levels() {
		for _, name := range names {
			views = append(views, s.view(name, level))
		}
	}
	s.writeJSON(w, http.StatusOK, views)
}

// GetArtifact handles the GET /artifacts/{name} request.
func (s *Server) GetArtifact(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if !s.Graph.Has(name) {
		http.Error(w, fmt.Sprintf("%v: %q", domain.ErrArtifactNotFound, name), http.StatusNotFound)
		return
	}

	level := 0
	for i, names := range s.Graph.Levels() {
		for _, n := range names {
			if n == name {
				level = i
			}
		}
	}

	view := s.view(name, level)
	if s.Store != nil {
		rec, err := s.Store.Load(r.Context(), name)
		switch {
		case err == nil:
			view.Record = &rec
		case !errors.Is(err, domain.ErrRecordNotFound):
			s.Logger.Warn("failed to load build record", "artifact", name, "error", err)
		}
	}
	s.writeJSON(w, http.StatusOK, view)
}

// GetGraph handles the GET /graph request with a Mermaid flowchart.
func (s *Server) GetGraph(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprint(w, presentation.GenerateMermaid(s.Graph, nil))
}

// GetSConstruct handles the GET /sconstruct request.
func (s *Server) GetSConstruct(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/x-python; charset=utf-8")
	fmt.Fprint(w, rsf.SConstruct(s.Graph))
}

func (s *Server) view(name string, level int) ArtifactView {
	a, _ := s.Graph.Artifact(name)
	dependents, _ := s.Graph.Dependents(name)
	sources := a.Sources
	if sources == nil {
		sources = []string{}
	}
	if dependents == nil {
		dependents = []string{}
	}
	return ArtifactView{
		Name:        a.Name,
		Sources:     sources,
		Command:     rsf.Command(a.Operation),
		Programs:    a.Operation.Programs(),
		Description: a.Description,
		Level:       level,
		Dependents:  dependents,
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.Logger.Error("encode response", "error", err)
	}
}
