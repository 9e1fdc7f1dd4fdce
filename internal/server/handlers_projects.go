package server

import (
	"net/http"
	"strconv"

	"github.com/jonathan/nac-planner/internal/selection"
	"github.com/jonathan/nac-planner/internal/types"
)

// CreateProjectRequest is the body of POST /projects. When SessionID is set,
// intake and selection lists missing from the body are taken from the session.
type CreateProjectRequest struct {
	types.CreateProjectRequest
	SessionID string `json:"session_id,omitempty"`
}

// handleCreateProject handles POST /projects
func (s *Server) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	var req CreateProjectRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.handleError(w, r, err)
		return
	}

	if req.SessionID != "" {
		ps, err := s.sessions.get(req.SessionID)
		if err != nil {
			s.handleError(w, r, err)
			return
		}
		ps.mu.Lock()
		fillFromSession(&req.CreateProjectRequest, ps.rec.Intake(), ps.rec.Selection())
		ps.mu.Unlock()
	}

	project, err := s.projects.Create(r.Context(), &req.CreateProjectRequest)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, project)
}

// handleGetProject handles GET /projects/{id}
func (s *Server) handleGetProject(w http.ResponseWriter, r *http.Request) {
	project, err := s.projects.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, project)
}

// handleListProjects handles GET /projects?limit=
func (s *Server) handleListProjects(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			s.handleError(w, r, &ErrValidation{Field: "limit", Message: "must be a non-negative integer"})
			return
		}
		limit = n
	}

	list, err := s.projects.List(r.Context(), limit)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	if list == nil {
		list = []types.Project{}
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"projects": list,
		"count":    len(list),
	})
}

func fillFromSession(req *types.CreateProjectRequest, intake *types.IntakeData, state *selection.State) {
	if req.Intake == nil {
		req.Intake = intake
	}
	if len(req.PainPointIDs) == 0 {
		req.PainPointIDs = state.PainPoints
	}
	if len(req.UseCaseIDs) == 0 {
		req.UseCaseIDs = state.UseCases
	}
	if len(req.RequirementIDs) == 0 {
		req.RequirementIDs = state.Requirements
	}
}
