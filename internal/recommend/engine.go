package recommend

import (
	"slices"
	"sort"

	"github.com/jonathan/nac-planner/internal/types"
)

// Set is a set of recommendation ids.
type Set map[string]struct{}

// NewSet builds a Set from ids.
func NewSet(ids ...string) Set {
	s := make(Set, len(ids))
	for _, id := range ids {
		s.Add(id)
	}
	return s
}

// Add inserts id. Adding an existing id is a no-op.
func (s Set) Add(id string) {
	s[id] = struct{}{}
}

// Has reports whether id is in the set. A nil Set is empty.
func (s Set) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// Sorted returns the ids in lexical order.
func (s Set) Sorted() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Clone returns an independent copy.
func (s Set) Clone() Set {
	out := make(Set, len(s))
	for id := range s {
		out[id] = struct{}{}
	}
	return out
}

// Engine evaluates an ordered rule table.
type Engine struct {
	rules []Rule
}

// NewEngine returns an engine over rules. With no rules it uses the default table.
func NewEngine(rules ...Rule) *Engine {
	if len(rules) == 0 {
		rules = defaultRules
	}
	return &Engine{rules: slices.Clone(rules)}
}

// Derive evaluates every rule against intake in table order and returns the
// recommendations that fired, minus any whose id is in dismissed.
// The result depends only on its inputs, and an id appears at most once.
func (e *Engine) Derive(intake *types.IntakeData, dismissed Set) []types.Recommendation {
	recs := make([]types.Recommendation, 0, len(e.rules))
	if intake == nil {
		return recs
	}

	seen := make(map[string]bool, len(e.rules))
	for _, rule := range e.rules {
		if seen[rule.ID] || dismissed.Has(rule.ID) {
			continue
		}
		rec, ok := rule.Evaluate(intake)
		if !ok {
			continue
		}
		seen[rule.ID] = true
		recs = append(recs, rec)
	}
	return recs
}

var defaultEngine = NewEngine()

// Derive runs the default rule table. See Engine.Derive.
func Derive(intake *types.IntakeData, dismissed Set) []types.Recommendation {
	return defaultEngine.Derive(intake, dismissed)
}
