package server

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/nac-planner/internal/configgen"
	"github.com/jonathan/nac-planner/internal/types"
	"github.com/jonathan/nac-planner/internal/validation"
	"github.com/jonathan/nac-planner/internal/vendors"
)

// AnalyzeConfigRequest is the body of POST /configs/analyze.
type AnalyzeConfigRequest struct {
	Vendor  string `json:"vendor,omitempty"`
	Content string `json:"content"`
}

// AnalyzeConfigResponse combines local lint with the optional model review.
type AnalyzeConfigResponse struct {
	Vendor   string                    `json:"vendor,omitempty"`
	Syntax   vendors.Syntax            `json:"syntax"`
	Lint     *types.Violations         `json:"lint"`
	Analysis *configgen.ConfigAnalysis `json:"analysis,omitempty"`
}

// handleGenerateConfig handles POST /configs/generate
func (s *Server) handleGenerateConfig(w http.ResponseWriter, r *http.Request) {
	var req configgen.Request
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.handleError(w, r, err)
		return
	}
	// Reject bad requests before touching the model or library
	if err := req.Validate(); err != nil {
		s.handleError(w, r, err)
		return
	}

	gen, err := s.generator(r)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	out, err := gen.Generate(r.Context(), &req)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	s.logger.Info("configuration generated",
		zap.String("vendor", out.Vendor),
		zap.String("model", out.Model),
		zap.Int("lint_findings", len(out.Lint.Violations)))
	s.jsonResponse(w, http.StatusOK, out)
}

// handleAnalyzeConfig handles POST /configs/analyze. Lint always runs; the
// model review is added when the server has an LLM client.
func (s *Server) handleAnalyzeConfig(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeConfigRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.handleError(w, r, err)
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		s.handleError(w, r, &ErrValidation{Field: "content", Message: "is required"})
		return
	}

	syntax := vendors.SyntaxGeneric
	if req.Vendor != "" {
		vendor, err := vendors.Resolve(req.Vendor)
		if err != nil {
			s.handleError(w, r, &ErrValidation{Field: "vendor", Message: err.Error()})
			return
		}
		syntax = vendor.Syntax
	}

	resp := AnalyzeConfigResponse{
		Vendor: req.Vendor,
		Syntax: syntax,
		Lint:   validation.Lint(req.Content, syntax, nil),
	}

	if s.llm != nil {
		gen, err := s.generator(r)
		if err != nil {
			s.handleError(w, r, err)
			return
		}
		analysis, err := gen.Analyze(r.Context(), req.Vendor, req.Content)
		if err != nil {
			s.handleError(w, r, err)
			return
		}
		resp.Analysis = analysis
	}

	s.jsonResponse(w, http.StatusOK, resp)
}
