package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/nac-planner/internal/configgen"
	"github.com/jonathan/nac-planner/internal/recommend"
	"github.com/jonathan/nac-planner/internal/selection"
	"github.com/jonathan/nac-planner/internal/types"
)

// CreateSessionRequest is the body of POST /sessions.
type CreateSessionRequest struct {
	Intake    json.RawMessage  `json:"intake"`
	Selection *selection.State `json:"selection,omitempty"`
}

// RecommendationAction is the body of the apply and dismiss endpoints.
type RecommendationAction struct {
	RecommendationID string `json:"recommendation_id"`
}

// ApplyResponse is returned by POST /sessions/{id}/apply.
type ApplyResponse struct {
	Result  recommend.ApplyResult     `json:"result"`
	State   types.RecommendationState `json:"state"`
	Session sessionView               `json:"session"`
}

// handleCreateSession handles POST /sessions
func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req CreateSessionRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.handleError(w, r, err)
		return
	}

	intake, err := decodeIntake(req.Intake)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	lib, err := s.library.Load(r.Context())
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	var state *selection.State
	if req.Selection != nil {
		state = selection.NewState(req.Selection.PainPoints, req.Selection.UseCases, req.Selection.Requirements)
	}

	ps := s.sessions.create(lib, intake, state)
	ps.mu.Lock()
	view := ps.view()
	ps.mu.Unlock()

	s.logger.Info("session created",
		zap.String("session_id", view.ID),
		zap.Int("recommendations", len(view.Recommendations)))
	s.jsonResponse(w, http.StatusCreated, view)
}

// handleGetSession handles GET /sessions/{id}
func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	ps, err := s.sessions.get(r.PathValue("id"))
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	ps.mu.Lock()
	view := ps.view()
	ps.mu.Unlock()
	s.jsonResponse(w, http.StatusOK, view)
}

// handleUpdateIntake handles PUT /sessions/{id}/intake. The body is the intake
// document itself. Dismissed recommendations stay dismissed.
func (s *Server) handleUpdateIntake(w http.ResponseWriter, r *http.Request) {
	ps, err := s.sessions.get(r.PathValue("id"))
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	var raw json.RawMessage
	if err := s.decodeJSON(w, r, &raw); err != nil {
		s.handleError(w, r, err)
		return
	}
	intake, err := decodeIntake(raw)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	ps.mu.Lock()
	ps.rec.SetIntake(intake)
	s.sessions.touch(ps)
	view := ps.view()
	ps.mu.Unlock()

	s.jsonResponse(w, http.StatusOK, view)
}

// handleApply handles POST /sessions/{id}/apply. Applying a recommendation
// that is already applied or dismissed is a no-op that reports its state.
func (s *Server) handleApply(w http.ResponseWriter, r *http.Request) {
	ps, action, ok := s.sessionAction(w, r)
	if !ok {
		return
	}

	// Resolve against the freshest library snapshot
	lib, err := s.library.Load(r.Context())
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	ps.mu.Lock()
	defer ps.mu.Unlock()

	ps.rec.SetLibrary(lib)
	id := action.RecommendationID

	if state := ps.rec.State(id); state != types.StateActive {
		s.jsonResponse(w, http.StatusOK, ApplyResponse{
			Result:  recommend.ApplyResult{RecommendationID: id},
			State:   state,
			Session: ps.view(),
		})
		return
	}

	result, err := ps.rec.ApplyID(id)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.sessions.touch(ps)

	s.jsonResponse(w, http.StatusOK, ApplyResponse{
		Result:  result,
		State:   ps.rec.State(id),
		Session: ps.view(),
	})
}

// handleDismiss handles POST /sessions/{id}/dismiss. Any id may be dismissed,
// including ones not currently shown, and repeating it is harmless.
func (s *Server) handleDismiss(w http.ResponseWriter, r *http.Request) {
	ps, action, ok := s.sessionAction(w, r)
	if !ok {
		return
	}

	ps.mu.Lock()
	ps.rec.Dismiss(action.RecommendationID)
	s.sessions.touch(ps)
	view := ps.view()
	ps.mu.Unlock()

	s.jsonResponse(w, http.StatusOK, view)
}

// handleBusinessAnalysis handles POST /sessions/{id}/business-analysis
func (s *Server) handleBusinessAnalysis(w http.ResponseWriter, r *http.Request) {
	ps, err := s.sessions.get(r.PathValue("id"))
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	gen, err := s.generator(r)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	ps.mu.Lock()
	intake := ps.rec.Intake()
	recs := ps.rec.Recommendations()
	ps.mu.Unlock()

	analysis, err := gen.BusinessAnalysis(r.Context(), intake, recs)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"session_id": ps.id.String(),
		"analysis":   analysis,
	})
}

// sessionAction loads the session and decodes a RecommendationAction body,
// writing the error response itself when either fails.
func (s *Server) sessionAction(w http.ResponseWriter, r *http.Request) (*planningSession, RecommendationAction, bool) {
	var action RecommendationAction

	ps, err := s.sessions.get(r.PathValue("id"))
	if err != nil {
		s.handleError(w, r, err)
		return nil, action, false
	}
	if err := s.decodeJSON(w, r, &action); err != nil {
		s.handleError(w, r, err)
		return nil, action, false
	}
	action.RecommendationID = strings.TrimSpace(action.RecommendationID)
	if action.RecommendationID == "" {
		s.handleError(w, r, &ErrValidation{Field: "recommendation_id", Message: "is required"})
		return nil, action, false
	}
	return ps, action, true
}

// generator returns a config generator over the current library snapshot.
func (s *Server) generator(r *http.Request) (*configgen.Generator, error) {
	if s.llm == nil {
		return nil, &ErrUnavailable{Feature: "LLM features", Reason: "server started without GEMINI_API_KEY"}
	}
	lib, err := s.library.Load(r.Context())
	if err != nil {
		return nil, err
	}
	return configgen.NewGenerator(s.llm, lib, s.logger), nil
}
