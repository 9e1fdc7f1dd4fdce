package recommend

import (
	"errors"
	"fmt"

	"github.com/jonathan/nac-planner/internal/library"
	"github.com/jonathan/nac-planner/internal/selection"
	"github.com/jonathan/nac-planner/internal/types"
	"go.uber.org/zap"
)

// ErrUnknownRecommendation is returned when an id is not among the session's
// current recommendations.
var ErrUnknownRecommendation = errors.New("recommendation not available")

// ApplyResult describes what Apply did to the selection.
type ApplyResult struct {
	RecommendationID string         `json:"recommendation_id"`
	Kind             selection.Kind `json:"kind,omitempty"`
	Resolved         bool           `json:"resolved"`
	ItemID           string         `json:"item_id,omitempty"`
	Added            bool           `json:"added"`
}

// Session tracks one planning workflow: its intake, its selection and the
// recommendation ids it has applied or dismissed. Dismissed ids accumulate for
// the life of the session.
//
// A Session is not safe for concurrent use.
type Session struct {
	engine    *Engine
	lib       *library.Library
	intake    *types.IntakeData
	state     *selection.State
	sinks     selection.Sinks
	dismissed Set
	applied   Set
	logger    *zap.Logger
}

// Option configures a Session.
type Option func(*Session)

// WithEngine overrides the default rule table.
func WithEngine(e *Engine) Option {
	return func(s *Session) { s.engine = e }
}

// WithLogger sets the session logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// WithObserver forwards every selection update to fn after the session's
// own state has been replaced.
func WithObserver(fn func(kind selection.Kind, ids []string)) Option {
	return func(s *Session) { s.sinks = selection.Observe(s.sinks, fn) }
}

// NewSession creates a session over lib and state. A nil state starts empty.
func NewSession(lib *library.Library, state *selection.State, opts ...Option) *Session {
	if lib == nil {
		lib = &library.Library{}
	}
	if state == nil {
		state = selection.NewState(nil, nil, nil)
	}
	s := &Session{
		engine:    defaultEngine,
		lib:       lib,
		intake:    &types.IntakeData{},
		state:     state,
		dismissed: make(Set),
		applied:   make(Set),
		logger:    zap.NewNop(),
	}
	s.sinks = state.Sinks()
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetIntake replaces the intake data recommendations are derived from.
func (s *Session) SetIntake(intake *types.IntakeData) {
	if intake == nil {
		intake = &types.IntakeData{}
	}
	s.intake = intake
}

// Intake returns the current intake data.
func (s *Session) Intake() *types.IntakeData {
	return s.intake
}

// SetLibrary swaps the library snapshot used for resolution.
func (s *Session) SetLibrary(lib *library.Library) {
	if lib != nil {
		s.lib = lib
	}
}

// Selection returns a copy of the current selection.
func (s *Session) Selection() *selection.State {
	return s.state.Clone()
}

// Recommendations derives the active recommendations for the current intake.
func (s *Session) Recommendations() []types.Recommendation {
	return s.engine.Derive(s.intake, s.dismissed)
}

// Find returns the active recommendation with the given id.
func (s *Session) Find(id string) (types.Recommendation, bool) {
	for _, rec := range s.Recommendations() {
		if rec.ID == id {
			return rec, true
		}
	}
	return types.Recommendation{}, false
}

// Apply resolves rec to a library item and appends it to the matching
// selection list if it is not already there. The recommendation is dismissed
// whether or not it resolved.
func (s *Session) Apply(rec types.Recommendation) ApplyResult {
	result := ApplyResult{RecommendationID: rec.ID}
	defer func() {
		// applied and dismissed are both terminal; the first one reached sticks
		if !s.dismissed.Has(rec.ID) {
			s.applied.Add(rec.ID)
		}
		s.dismissed.Add(rec.ID)
	}()

	kind, err := selection.KindFor(rec.Type)
	if err != nil {
		s.logger.Debug("recommendation has no selection kind", zap.String("id", rec.ID), zap.Error(err))
		return result
	}
	result.Kind = kind

	item, ok := s.lib.Find(kind, rec.Title, rec.Category)
	if !ok {
		s.logger.Debug("recommendation did not resolve to a library item",
			zap.String("id", rec.ID), zap.String("title", rec.Title), zap.String("category", rec.Category))
		return result
	}
	result.Resolved = true
	result.ItemID = item.ItemID()

	ids, added := selection.AppendUnique(s.state.IDs(kind), item.ItemID())
	if added {
		if sink := s.sinks.For(kind); sink != nil {
			sink(ids)
		}
		result.Added = true
	}

	s.logger.Info("recommendation applied",
		zap.String("id", rec.ID),
		zap.String("item_id", result.ItemID),
		zap.Bool("added", added))
	return result
}

// ApplyID applies the active recommendation with the given id.
func (s *Session) ApplyID(id string) (ApplyResult, error) {
	rec, ok := s.Find(id)
	if !ok {
		return ApplyResult{}, fmt.Errorf("%w: %s", ErrUnknownRecommendation, id)
	}
	return s.Apply(rec), nil
}

// Dismiss hides a recommendation for the rest of the session.
func (s *Session) Dismiss(id string) {
	s.dismissed.Add(id)
	s.logger.Debug("recommendation dismissed", zap.String("id", id))
}

// Dismissed returns the dismissed ids in lexical order.
func (s *Session) Dismissed() []string {
	return s.dismissed.Sorted()
}

// DismissedSet returns a copy of the dismissed set.
func (s *Session) DismissedSet() Set {
	return s.dismissed.Clone()
}

// State reports the lifecycle state of a recommendation id.
func (s *Session) State(id string) types.RecommendationState {
	switch {
	case s.applied.Has(id):
		return types.StateApplied
	case s.dismissed.Has(id):
		return types.StateDismissed
	default:
		return types.StateActive
	}
}
