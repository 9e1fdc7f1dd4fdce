package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPriority_Rank(t *testing.T) {
	assert.Less(t, PriorityLow.Rank(), PriorityMedium.Rank())
	assert.Less(t, PriorityMedium.Rank(), PriorityHigh.Rank())
	assert.Less(t, PriorityHigh.Rank(), PriorityCritical.Rank())
	assert.Equal(t, 0, Priority("urgent").Rank())
}

func TestRecommendationType_Valid(t *testing.T) {
	assert.True(t, RecommendationPainPoint.Valid())
	assert.True(t, RecommendationUseCase.Valid())
	assert.True(t, RecommendationRequirement.Valid())
	assert.False(t, RecommendationType("vendor").Valid())
}

func TestLibraryItems_ImplementLibraryItem(t *testing.T) {
	items := []LibraryItem{
		PainPoint{ID: "pp-1", Title: "Shadow IT", Category: "visibility"},
		UseCase{ID: "uc-1", Name: "Guest access", Category: "guest"},
		Requirement{ID: "rq-1", Title: "RADIUS accounting", Category: "aaa"},
	}

	assert.Equal(t, "Shadow IT", items[0].DisplayName())
	assert.Equal(t, "Guest access", items[1].DisplayName())
	assert.Equal(t, "aaa", items[2].ItemCategory())
	assert.Equal(t, "uc-1", items[1].ItemID())
}
