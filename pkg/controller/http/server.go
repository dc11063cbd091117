package http

import (
	"io/fs"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/m-mizutani/goerr/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/secmon-lab/fmea/frontend"
	"github.com/secmon-lab/fmea/pkg/usecase"
	"github.com/secmon-lab/fmea/pkg/utils/safe"
)

type Server struct {
	router   *chi.Mux
	uc       *usecase.UseCases
	registry *prometheus.Registry
	metrics  *metrics
	static   fs.FS
}

type Options func(*Server)

// WithRegistry sets the registry HTTP metrics are registered to and /metrics serves
func WithRegistry(registry *prometheus.Registry) Options {
	return func(s *Server) {
		s.registry = registry
	}
}

// WithStaticFS replaces the embedded single page application
func WithStaticFS(static fs.FS) Options {
	return func(s *Server) {
		s.static = static
	}
}

func New(uc *usecase.UseCases, opts ...Options) (*Server, error) {
	r := chi.NewRouter()

	s := &Server{
		router: r,
		uc:     uc,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.registry == nil {
		s.registry = newRegistry()
	}
	m, err := newMetrics(s.registry)
	if err != nil {
		return nil, err
	}
	s.metrics = m

	if s.static == nil {
		staticFS, err := fs.Sub(frontend.StaticFiles, "dist")
		if err != nil {
			return nil, goerr.Wrap(err, "failed to bind dist dir for static")
		}
		s.static = staticFS
	}

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(requestLogger)
	r.Use(accessLogger)
	r.Use(s.metrics.middleware)
	r.Use(middleware.Recoverer)

	r.Get("/health", healthHandler)
	r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{Registry: s.registry}))

	r.Route("/api", func(r chi.Router) {
		r.Route("/projects", func(r chi.Router) {
			r.Get("/", s.listProjects)
			r.Post("/", s.createProject)
			r.Post("/import", s.importProject)

			r.Route("/{projectID}", func(r chi.Router) {
				r.Get("/", s.getProject)
				r.Patch("/", s.updateProject)
				r.Delete("/", s.deleteProject)

				r.Get("/settings", s.getSettings)
				r.Put("/settings", s.updateSettings)
				r.Post("/settings/validate", s.validateSettings)

				r.Get("/components", s.listComponents)
				r.Post("/components", s.createComponent)

				r.Get("/failure-modes", s.listProjectRisks)
				r.Get("/tree", s.getTree)
				r.Get("/dashboard", s.getDashboard)
				r.Get("/summary", s.getSummary)
				r.Get("/classify", s.classify)
				r.Get("/export", s.exportProject)
			})
		})

		r.Route("/components/{componentID}", func(r chi.Router) {
			r.Get("/", s.getComponent)
			r.Patch("/", s.updateComponent)
			r.Delete("/", s.deleteComponent)
			r.Get("/failure-modes", s.listFailureModes)
			r.Post("/failure-modes", s.createFailureMode)
		})

		r.Route("/failure-modes/{failureModeID}", func(r chi.Router) {
			r.Get("/", s.getFailureMode)
			r.Patch("/", s.updateFailureMode)
			r.Delete("/", s.deleteFailureMode)
			r.Post("/causes", s.addCause)
			r.Post("/effects", s.addEffect)
			r.Post("/controls", s.addControl)
			r.Post("/actions", s.addAction)
		})

		r.Route("/causes/{causeID}", func(r chi.Router) {
			r.Patch("/", s.updateCause)
			r.Delete("/", s.deleteCause)
		})
		r.Route("/effects/{effectID}", func(r chi.Router) {
			r.Patch("/", s.updateEffect)
			r.Delete("/", s.deleteEffect)
		})
		r.Route("/controls/{controlID}", func(r chi.Router) {
			r.Patch("/", s.updateControl)
			r.Delete("/", s.deleteControl)
		})
		r.Route("/actions/{actionID}", func(r chi.Router) {
			r.Patch("/", s.updateAction)
			r.Delete("/", s.deleteAction)
		})

		r.Post("/suggestions", s.suggest)

		r.NotFound(func(w http.ResponseWriter, r *http.Request) {
			writeError(w, r, http.StatusNotFound, "no such endpoint")
		})
	})

	// Static file serving for SPA (catch-all, must be last)
	r.Get("/*", spaHandler(s.static))

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

// spaHandler handles SPA routing by serving static files and falling back to index.html
func spaHandler(staticFS fs.FS) http.HandlerFunc {
	fileServer := http.FileServer(http.FS(staticFS))

	return func(w http.ResponseWriter, r *http.Request) {
		urlPath := strings.TrimPrefix(r.URL.Path, "/")
		if urlPath == "" {
			urlPath = "index.html"
		}

		file, err := staticFS.Open(urlPath)
		if err != nil {
			// Unknown paths are client side routes
			indexFile, err := staticFS.Open("index.html")
			if err != nil {
				http.NotFound(w, r)
				return
			}
			defer safe.Close(r.Context(), indexFile)
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			safe.Copy(r.Context(), w, indexFile)
			return
		}
		safe.Close(r.Context(), file)

		fileServer.ServeHTTP(w, r)
	}
}
