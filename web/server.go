// ABOUTME: JSON HTTP API over the in-memory workspace
// ABOUTME: Chi router with CRUD routes, metrics, search, graphs, and a Prometheus endpoint
package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/harperreed/crmpro/activity"
	"github.com/harperreed/crmpro/models"
	"github.com/harperreed/crmpro/store"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Options tune a Server. Zero values get defaults.
type Options struct {
	Today  func() models.Date
	User   string
	Money  *models.Money
	Logger *log.Logger
}

type Server struct {
	ws     *store.Workspace
	feed   *activity.Feed
	today  func() models.Date
	user   string
	money  *models.Money
	logger *log.Logger

	registry *prometheus.Registry
	requests *prometheus.CounterVec
	router   chi.Router
}

// NewServer wires the routes. feed may be nil.
func NewServer(ws *store.Workspace, feed *activity.Feed, opts Options) *Server {
	s := &Server{
		ws:       ws,
		feed:     feed,
		today:    opts.Today,
		user:     opts.User,
		money:    opts.Money,
		logger:   opts.Logger,
		registry: prometheus.NewRegistry(),
	}
	if s.today == nil {
		s.today = func() models.Date { return models.Today(time.Local) }
	}
	if s.money == nil {
		s.money = models.USD()
	}
	if s.logger == nil {
		s.logger = log.Default()
	}

	s.requests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "crmpro_http_requests_total",
		Help: "HTTP requests served, by route and status code.",
	}, []string{"method", "route", "code"})
	s.registry.MustRegister(s.requests, NewCollector(ws, s.today))

	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))

	r.Route("/api", func(r chi.Router) {
		r.Route("/contacts", func(r chi.Router) {
			r.Get("/", s.listContacts)
			r.Post("/", s.createContact)
			r.Get("/{id}", s.getContact)
			r.Put("/{id}", s.updateContact)
			r.Delete("/{id}", s.deleteContact)
		})
		r.Route("/deals", func(r chi.Router) {
			r.Get("/", s.listDeals)
			r.Post("/", s.createDeal)
			r.Get("/{id}", s.getDeal)
			r.Put("/{id}", s.updateDeal)
			r.Delete("/{id}", s.deleteDeal)
			r.Post("/{id}/stage", s.changeDealStage)
		})
		r.Route("/tasks", func(r chi.Router) {
			r.Get("/", s.listTasks)
			r.Post("/", s.createTask)
			r.Get("/{id}", s.getTask)
			r.Put("/{id}", s.updateTask)
			r.Delete("/{id}", s.deleteTask)
			r.Post("/{id}/toggle", s.toggleTask)
		})
		r.Get("/metrics/pipeline", s.pipelineMetrics)
		r.Get("/metrics/tasks", s.taskMetrics)
		r.Get("/search", s.search)
		r.Get("/activity", s.recentActivity)
		r.Get("/dashboard", s.dashboard)
		r.Get("/graph/{type}", s.graph)
	})

	return r
}

// ServeHTTP makes the server usable with httptest.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Start listens on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting web server", "addr", fmt.Sprintf("http://%s", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Info("Shutting down web server")
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		s.requests.WithLabelValues(r.Method, route, fmt.Sprint(status)).Inc()
		s.logger.Debug("request",
			"method", r.Method,
			"route", route,
			"status", status,
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()))
	})
}
