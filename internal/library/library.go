// Package library provides read access to the NAC knowledge library:
// pain points, use cases and requirements.
package library

import (
	"strings"

	"github.com/jonathan/nac-planner/internal/selection"
	"github.com/jonathan/nac-planner/internal/types"
)

// Library is a read-only snapshot of the three library collections.
// Slice order is the library's natural iteration order and is significant
// for resolution.
type Library struct {
	PainPoints   []types.PainPoint   `json:"pain_points"`
	UseCases     []types.UseCase     `json:"use_cases"`
	Requirements []types.Requirement `json:"requirements"`
}

// Items returns the collection for a selection kind as LibraryItems.
func (l *Library) Items(kind selection.Kind) []types.LibraryItem {
	if l == nil {
		return nil
	}
	var items []types.LibraryItem
	switch kind {
	case selection.KindPainPoints:
		items = make([]types.LibraryItem, 0, len(l.PainPoints))
		for _, p := range l.PainPoints {
			items = append(items, p)
		}
	case selection.KindUseCases:
		items = make([]types.LibraryItem, 0, len(l.UseCases))
		for _, u := range l.UseCases {
			items = append(items, u)
		}
	case selection.KindRequirements:
		items = make([]types.LibraryItem, 0, len(l.Requirements))
		for _, r := range l.Requirements {
			items = append(items, r)
		}
	}
	return items
}

// Find returns the first item in kind whose display name contains title
// (case-insensitive) or whose category equals category.
func (l *Library) Find(kind selection.Kind, title, category string) (types.LibraryItem, bool) {
	needle := strings.ToLower(title)
	for _, item := range l.Items(kind) {
		if needle != "" && strings.Contains(strings.ToLower(item.DisplayName()), needle) {
			return item, true
		}
		if category != "" && item.ItemCategory() == category {
			return item, true
		}
	}
	return nil, false
}

// Get returns the item with the given id.
func (l *Library) Get(kind selection.Kind, id string) (types.LibraryItem, bool) {
	for _, item := range l.Items(kind) {
		if item.ItemID() == id {
			return item, true
		}
	}
	return nil, false
}

// Filter returns items matching query (substring of name, description or a tag)
// and category (exact). Empty arguments match everything.
func (l *Library) Filter(kind selection.Kind, query, category string) []types.LibraryItem {
	query = strings.ToLower(strings.TrimSpace(query))

	var out []types.LibraryItem
	for _, item := range l.Items(kind) {
		if category != "" && item.ItemCategory() != category {
			continue
		}
		if query != "" && !matchesQuery(item, query) {
			continue
		}
		out = append(out, item)
	}
	return out
}

// Categories returns the distinct categories of a kind in first-seen order.
func (l *Library) Categories(kind selection.Kind) []string {
	seen := make(map[string]bool)
	var out []string
	for _, item := range l.Items(kind) {
		c := item.ItemCategory()
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}

// Size returns the total number of items.
func (l *Library) Size() int {
	if l == nil {
		return 0
	}
	return len(l.PainPoints) + len(l.UseCases) + len(l.Requirements)
}

func matchesQuery(item types.LibraryItem, query string) bool {
	if strings.Contains(strings.ToLower(item.DisplayName()), query) {
		return true
	}
	if strings.Contains(strings.ToLower(item.ItemDescription()), query) {
		return true
	}
	for _, tag := range item.ItemTags() {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}
	return false
}
