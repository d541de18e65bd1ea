package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/goalwing/goalwing/internal/app"
	"github.com/goalwing/goalwing/models"
	"github.com/goalwing/goalwing/progress"
)

// goalSummary is the list-view shape: the goal plus its overall progress.
type goalSummary struct {
	Goal    models.Goal   `json:"goal"`
	Done    int           `json:"done"`
	Total   int           `json:"total"`
	Percent int           `json:"percent"`
	Band    progress.Band `json:"band"`
}

func summarizeGoal(g models.Goal) goalSummary {
	overall := progress.OverallProgress(&g)
	percent := overall.Percent()
	return goalSummary{
		Goal:    g,
		Done:    overall.Done,
		Total:   overall.Total,
		Percent: percent,
		Band:    progress.BandFor(percent),
	}
}

// handleCreateGoal runs the full create flow. When the remote generator
// failed and the template stood in, the response carries an advisory but
// still succeeds.
func (s *Server) handleCreateGoal(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Period      int    `json:"period"`
		StartDate   string `json:"startDate"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.StartDate == "" {
		req.StartDate = time.Now().Format(models.DateLayout)
	}

	goal, genErr, err := s.creator.CreateGoal(r.Context(), app.CreateGoalInput{
		Title:       req.Title,
		Description: req.Description,
		Period:      req.Period,
		StartDate:   req.StartDate,
	})
	if err != nil {
		writeAPIError(w, err)
		return
	}

	resp := struct {
		Goal     models.Goal `json:"goal"`
		Advisory string      `json:"advisory,omitempty"`
	}{Goal: goal}
	if genErr != nil {
		resp.Advisory = app.TemplateAdvisory
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(resp)
}

func (s *Server) handleListGoals(w http.ResponseWriter, r *http.Request) {
	goals, err := s.store.ListGoals()
	if err != nil {
		writeAPIError(w, err)
		return
	}

	summaries := make([]goalSummary, 0, len(goals))
	for _, g := range goals {
		summaries = append(summaries, summarizeGoal(g))
	}
	writeAPIJSON(w, summaries)
}

func (s *Server) handleGetGoal(w http.ResponseWriter, r *http.Request) {
	goal, err := s.store.GetGoal(r.PathValue("id"))
	if err != nil {
		writeAPIError(w, err)
		return
	}
	writeAPIJSON(w, goal)
}

func (s *Server) handleDeleteGoal(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteGoal(r.PathValue("id")); err != nil {
		writeAPIError(w, err)
		return
	}
	writeAPIJSON(w, map[string]bool{"success": true})
}

func (s *Server) handleToggleTask(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Date   string `json:"date"`
		TaskID string `json:"taskId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Date == "" || req.TaskID == "" {
		http.Error(w, "date and taskId are required", http.StatusBadRequest)
		return
	}

	goal, err := s.store.ToggleTask(r.PathValue("id"), req.Date, req.TaskID)
	if err != nil {
		writeAPIError(w, err)
		return
	}
	writeAPIJSON(w, goal)
}

func (s *Server) handleProgress(w http.ResponseWriter, r *http.Request) {
	goal, err := s.store.GetGoal(r.PathValue("id"))
	if err != nil {
		writeAPIError(w, err)
		return
	}
	writeAPIJSON(w, summarizeGoal(goal))
}

func (s *Server) handleDayProgress(w http.ResponseWriter, r *http.Request) {
	goal, err := s.store.GetGoal(r.PathValue("id"))
	if err != nil {
		writeAPIError(w, err)
		return
	}

	date := r.URL.Query().Get("date")
	if date == "" {
		date = time.Now().Format(models.DateLayout)
	}

	summary := progress.DayProgress(&goal, date)
	percent := summary.Percent()
	writeAPIJSON(w, struct {
		Date    string        `json:"date"`
		Done    int           `json:"done"`
		Total   int           `json:"total"`
		Percent int           `json:"percent"`
		Band    progress.Band `json:"band"`
	}{date, summary.Done, summary.Total, percent, progress.BandFor(percent)})
}

func (s *Server) handleRecentProgress(w http.ResponseWriter, r *http.Request) {
	goal, err := s.store.GetGoal(r.PathValue("id"))
	if err != nil {
		writeAPIError(w, err)
		return
	}

	n := 7
	if raw := r.URL.Query().Get("n"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 && parsed <= 90 {
			n = parsed
		}
	}
	anchor := r.URL.Query().Get("anchor")
	if anchor == "" {
		anchor = time.Now().Format(models.DateLayout)
	}

	series, err := progress.RecentSeries(&goal, n, anchor)
	if err != nil {
		writeAPIError(w, err)
		return
	}
	writeAPIJSON(w, series)
}
