package server

import (
	"encoding/json"
	"net/http"

	"github.com/jonathan/nac-planner/internal/recommend"
	"github.com/jonathan/nac-planner/internal/selection"
	"github.com/jonathan/nac-planner/internal/types"
	"github.com/jonathan/nac-planner/internal/vendors"
)

// libraryKinds maps URL path segments to selection kinds.
var libraryKinds = map[string]selection.Kind{
	"pain-points":  selection.KindPainPoints,
	"use-cases":    selection.KindUseCases,
	"requirements": selection.KindRequirements,
}

// handleListLibrary handles GET /library/{kind}?q=&category=
func (s *Server) handleListLibrary(w http.ResponseWriter, r *http.Request) {
	kind, ok := libraryKinds[r.PathValue("kind")]
	if !ok {
		s.handleError(w, r, &ErrNotFound{Resource: "library collection", ID: r.PathValue("kind")})
		return
	}

	lib, err := s.library.Load(r.Context())
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	query := r.URL.Query()
	items := lib.Filter(kind, query.Get("q"), query.Get("category"))
	if items == nil {
		items = []types.LibraryItem{}
	}
	categories := lib.Categories(kind)
	if categories == nil {
		categories = []string{}
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"kind":       kind,
		"items":      items,
		"count":      len(items),
		"categories": categories,
	})
}

// RecommendationsRequest is the body of POST /recommendations.
type RecommendationsRequest struct {
	Intake    json.RawMessage `json:"intake"`
	Dismissed []string        `json:"dismissed,omitempty"`
}

// handleRecommendations handles POST /recommendations. It derives
// recommendations without creating a session.
func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	var req RecommendationsRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.handleError(w, r, err)
		return
	}

	intake, err := decodeIntake(req.Intake)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	recs := recommend.Derive(intake, recommend.NewSet(req.Dismissed...))
	if recs == nil {
		recs = []types.Recommendation{}
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"recommendations": recs,
		"count":           len(recs),
	})
}

// handleListVendors handles GET /vendors?category=
func (s *Server) handleListVendors(w http.ResponseWriter, r *http.Request) {
	list := vendors.All()
	if c := r.URL.Query().Get("category"); c != "" {
		list = vendors.ByCategory(vendors.Category(c))
	}
	if list == nil {
		list = []vendors.Vendor{}
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"vendors": list})
}

// decodeIntake decodes an intake document. Absent or null intake is empty;
// anything other than a JSON object is rejected.
func decodeIntake(raw json.RawMessage) (*types.IntakeData, error) {
	intake := &types.IntakeData{}
	if len(raw) == 0 || string(raw) == "null" {
		return intake, nil
	}
	if err := json.Unmarshal(raw, intake); err != nil {
		return nil, &ErrValidation{Field: "intake", Message: "must be a JSON object"}
	}
	return intake, nil
}
