package web

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/harperreed/crmpro/activity"
	"github.com/harperreed/crmpro/models"
	"github.com/harperreed/crmpro/store"
	"github.com/harperreed/crmpro/viz"
)

type pipelineResponse struct {
	store.Pipeline
	TotalFormatted    string `json:"total_formatted"`
	WeightedFormatted string `json:"weighted_formatted"`
}

func (s *Server) pipelineMetrics(w http.ResponseWriter, _ *http.Request) {
	s.ws.Lock()
	p := s.ws.Deals.Pipeline()
	s.ws.Unlock()

	writeJSON(w, http.StatusOK, pipelineResponse{
		Pipeline:          p,
		TotalFormatted:    s.money.Format(p.Total),
		WeightedFormatted: s.money.Format(p.Weighted),
	})
}

type taskStatsResponse struct {
	Today models.Date `json:"today"`
	store.TaskStats
}

func (s *Server) taskMetrics(w http.ResponseWriter, r *http.Request) {
	today := s.today()
	if raw := r.URL.Query().Get("today"); raw != "" {
		d, err := models.ParseDate(raw)
		if err != nil {
			s.writeError(w, fmt.Errorf("%w: today must be YYYY-MM-DD", errBadRequest))
			return
		}
		today = d
	}

	s.ws.Lock()
	stats := s.ws.Tasks.Stats(today)
	s.ws.Unlock()
	writeJSON(w, http.StatusOK, taskStatsResponse{Today: today, TaskStats: stats})
}

type searchResponse struct {
	Contacts []models.Contact `json:"contacts"`
	Deals    []models.Deal    `json:"deals"`
	Tasks    []taskView       `json:"tasks"`
	Total    int              `json:"total"`
}

func (s *Server) search(w http.ResponseWriter, r *http.Request) {
	s.ws.Lock()
	res := s.ws.Search(r.URL.Query().Get("q"))
	s.ws.Unlock()

	writeJSON(w, http.StatusOK, searchResponse{
		Contacts: nonNil(res.Contacts),
		Deals:    nonNil(res.Deals),
		Tasks:    s.taskViews(res.Tasks),
		Total:    res.Len(),
	})
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}

func (s *Server) recentActivity(w http.ResponseWriter, r *http.Request) {
	n, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	entries := []activity.Entry{}
	if s.feed != nil {
		s.ws.Lock()
		entries = nonNil(s.feed.Recent(n))
		s.ws.Unlock()
	}
	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) dashboard(w http.ResponseWriter, _ *http.Request) {
	s.ws.Lock()
	stats := viz.GenerateDashboardStats(s.ws, s.feed, s.today())
	s.ws.Unlock()

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(viz.RenderDashboard(stats, s.money)))
}

func (s *Server) graph(w http.ResponseWriter, r *http.Request) {
	kind := viz.GraphType(chi.URLParam(r, "type"))
	if kind != viz.GraphPipeline && kind != viz.GraphComplete {
		s.writeError(w, fmt.Errorf("%w: unknown graph type %q", errNotFound, kind))
		return
	}

	s.ws.Lock()
	dot, err := viz.NewGraphGenerator(s.ws, s.money).Generate(kind)
	s.ws.Unlock()
	if err != nil {
		s.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/vnd.graphviz")
	_, _ = w.Write([]byte(dot))
}
