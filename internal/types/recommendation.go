package types

import "fmt"

// RecommendationType names the library collection a recommendation targets.
type RecommendationType string

const (
	RecommendationPainPoint   RecommendationType = "pain_point"
	RecommendationUseCase     RecommendationType = "use_case"
	RecommendationRequirement RecommendationType = "requirement"
)

// Valid reports whether t is one of the known recommendation types.
func (t RecommendationType) Valid() bool {
	switch t {
	case RecommendationPainPoint, RecommendationUseCase, RecommendationRequirement:
		return true
	}
	return false
}

// Priority ranks how strongly a recommendation should be considered.
type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

// Rank orders priorities from low (1) to critical (4); unknown values rank 0.
func (p Priority) Rank() int {
	switch p {
	case PriorityLow:
		return 1
	case PriorityMedium:
		return 2
	case PriorityHigh:
		return 3
	case PriorityCritical:
		return 4
	}
	return 0
}

// Recommendation is a suggested library addition derived from intake data.
// ID is assigned by the rule that produced it, not by the library.
type Recommendation struct {
	ID           string             `json:"id"`
	Type         RecommendationType `json:"type"`
	Title        string             `json:"title"`
	Description  string             `json:"description"`
	Reason       string             `json:"reason"`
	Priority     Priority           `json:"priority"`
	Category     string             `json:"category"`
	Actionable   bool               `json:"actionable"`
	RelatedItems []string           `json:"related_items,omitempty"`
}

// String returns a compact representation used in logs.
func (r Recommendation) String() string {
	return fmt.Sprintf("%s[%s/%s]", r.ID, r.Type, r.Priority)
}

// RecommendationState is the lifecycle position of a recommendation id within a session.
type RecommendationState string

const (
	StateActive    RecommendationState = "active"
	StateApplied   RecommendationState = "applied"
	StateDismissed RecommendationState = "dismissed"
)
