// Package selection holds the library items chosen for a project and the
// callbacks used to update them.
package selection

import (
	"fmt"
	"slices"

	"github.com/jonathan/nac-planner/internal/types"
)

// Kind identifies one of the three selection lists.
type Kind string

const (
	KindPainPoints   Kind = "pain_points"
	KindUseCases     Kind = "use_cases"
	KindRequirements Kind = "requirements"
)

// Kinds lists every selection kind in display order.
var Kinds = []Kind{KindPainPoints, KindUseCases, KindRequirements}

// KindFor maps a recommendation type onto the selection list it writes to.
func KindFor(t types.RecommendationType) (Kind, error) {
	switch t {
	case types.RecommendationPainPoint:
		return KindPainPoints, nil
	case types.RecommendationUseCase:
		return KindUseCases, nil
	case types.RecommendationRequirement:
		return KindRequirements, nil
	}
	return "", fmt.Errorf("unknown recommendation type %q", t)
}

// Sink receives the complete new list of selected ids for one kind.
// Callers always pass the whole array, never a delta.
type Sink func(ids []string)

// Sinks groups the per-kind update callbacks owned by the host workflow.
type Sinks struct {
	PainPoints   Sink
	UseCases     Sink
	Requirements Sink
}

// For returns the sink for a kind, or nil if none is registered.
func (s Sinks) For(kind Kind) Sink {
	switch kind {
	case KindPainPoints:
		return s.PainPoints
	case KindUseCases:
		return s.UseCases
	case KindRequirements:
		return s.Requirements
	}
	return nil
}

// State is the set of library item ids chosen for a project.
// Lists are ordered and never contain duplicates.
type State struct {
	PainPoints   []string `json:"pain_points"`
	UseCases     []string `json:"use_cases"`
	Requirements []string `json:"requirements"`
}

// NewState builds a State from existing lists, dropping duplicate and empty ids.
func NewState(painPoints, useCases, requirements []string) *State {
	return &State{
		PainPoints:   Dedupe(painPoints),
		UseCases:     Dedupe(useCases),
		Requirements: Dedupe(requirements),
	}
}

// IDs returns a copy of the list for a kind.
func (s *State) IDs(kind Kind) []string {
	switch kind {
	case KindPainPoints:
		return slices.Clone(s.PainPoints)
	case KindUseCases:
		return slices.Clone(s.UseCases)
	case KindRequirements:
		return slices.Clone(s.Requirements)
	}
	return nil
}

// Replace overwrites the list for a kind with ids.
func (s *State) Replace(kind Kind, ids []string) {
	ids = slices.Clone(ids)
	switch kind {
	case KindPainPoints:
		s.PainPoints = ids
	case KindUseCases:
		s.UseCases = ids
	case KindRequirements:
		s.Requirements = ids
	}
}

// Contains reports whether id is selected for kind.
func (s *State) Contains(kind Kind, id string) bool {
	switch kind {
	case KindPainPoints:
		return slices.Contains(s.PainPoints, id)
	case KindUseCases:
		return slices.Contains(s.UseCases, id)
	case KindRequirements:
		return slices.Contains(s.Requirements, id)
	}
	return false
}

// Sinks returns callbacks that write back into the state.
func (s *State) Sinks() Sinks {
	return Sinks{
		PainPoints:   func(ids []string) { s.Replace(KindPainPoints, ids) },
		UseCases:     func(ids []string) { s.Replace(KindUseCases, ids) },
		Requirements: func(ids []string) { s.Replace(KindRequirements, ids) },
	}
}

// Clone returns a deep copy of the state.
func (s *State) Clone() *State {
	return &State{
		PainPoints:   slices.Clone(s.PainPoints),
		UseCases:     slices.Clone(s.UseCases),
		Requirements: slices.Clone(s.Requirements),
	}
}

// Observe wraps every sink so that observer runs after the update is delivered.
func Observe(sinks Sinks, observer func(kind Kind, ids []string)) Sinks {
	wrap := func(kind Kind, next Sink) Sink {
		return func(ids []string) {
			if next != nil {
				next(ids)
			}
			observer(kind, ids)
		}
	}
	return Sinks{
		PainPoints:   wrap(KindPainPoints, sinks.PainPoints),
		UseCases:     wrap(KindUseCases, sinks.UseCases),
		Requirements: wrap(KindRequirements, sinks.Requirements),
	}
}

// AppendUnique returns ids with id appended, and whether it was added.
// The input slice is never modified.
func AppendUnique(ids []string, id string) ([]string, bool) {
	if id == "" || slices.Contains(ids, id) {
		return slices.Clone(ids), false
	}
	out := make([]string, 0, len(ids)+1)
	out = append(out, ids...)
	return append(out, id), true
}

// Dedupe drops empty and repeated ids, keeping first occurrences in order.
func Dedupe(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
