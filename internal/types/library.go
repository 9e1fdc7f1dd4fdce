package types

// LibraryItem is the read-only contract shared by pain points, use cases and requirements.
type LibraryItem interface {
	ItemID() string
	DisplayName() string
	ItemCategory() string
	ItemTags() []string
	ItemDescription() string
}

// PainPoint is a library entry describing a customer problem NAC addresses.
type PainPoint struct {
	ID          string   `json:"id" db:"id"`
	Title       string   `json:"title" db:"title"`
	Category    string   `json:"category" db:"category"`
	Severity    string   `json:"severity,omitempty" db:"severity"`
	Description string   `json:"description,omitempty" db:"description"`
	Tags        []string `json:"tags,omitempty" db:"tags"`
}

// UseCase is a library entry describing a NAC deployment scenario.
type UseCase struct {
	ID          string   `json:"id" db:"id"`
	Name        string   `json:"name" db:"name"`
	Category    string   `json:"category" db:"category"`
	Complexity  string   `json:"complexity,omitempty" db:"complexity"`
	Description string   `json:"description,omitempty" db:"description"`
	Tags        []string `json:"tags,omitempty" db:"tags"`
}

// Requirement is a library entry describing a technical or compliance requirement.
type Requirement struct {
	ID          string   `json:"id" db:"id"`
	Title       string   `json:"title" db:"title"`
	Category    string   `json:"category" db:"category"`
	Priority    string   `json:"priority,omitempty" db:"priority"`
	Description string   `json:"description,omitempty" db:"description"`
	Tags        []string `json:"tags,omitempty" db:"tags"`
}

func (p PainPoint) ItemID() string          { return p.ID }
func (p PainPoint) DisplayName() string     { return p.Title }
func (p PainPoint) ItemCategory() string    { return p.Category }
func (p PainPoint) ItemTags() []string      { return p.Tags }
func (p PainPoint) ItemDescription() string { return p.Description }

func (u UseCase) ItemID() string          { return u.ID }
func (u UseCase) DisplayName() string     { return u.Name }
func (u UseCase) ItemCategory() string    { return u.Category }
func (u UseCase) ItemTags() []string      { return u.Tags }
func (u UseCase) ItemDescription() string { return u.Description }

func (r Requirement) ItemID() string          { return r.ID }
func (r Requirement) DisplayName() string     { return r.Title }
func (r Requirement) ItemCategory() string    { return r.Category }
func (r Requirement) ItemTags() []string      { return r.Tags }
func (r Requirement) ItemDescription() string { return r.Description }
