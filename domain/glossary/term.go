package glossary

import (
	"fmt"
	"time"
	"unicode/utf8"
)

// Field bounds for a glossary term. A record violating these must never enter
// the store.
const (
	TitleMinLen      = 1
	TitleMaxLen      = 100
	DefinitionMinLen = 10
	DefinitionMaxLen = 2000

	// DefaultCategory is assigned when a term is created without a category.
	DefaultCategory = "General"
)

// Term is one glossary entry. ID and CreatedAt are immutable after creation;
// UpdatedAt refreshes on every successful update.
type Term struct {
	ID           int       `json:"id"`
	Title        string    `json:"title"`
	Definition   string    `json:"definition"`
	Category     string    `json:"category"`
	Examples     []string  `json:"examples"`
	RelatedTerms []string  `json:"related_terms"`
	Source       string    `json:"source"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TermPatch is a partial update of a term. Each field is independently
// optional; only non-nil fields are applied to the stored record.
type TermPatch struct {
	Title        *string   `json:"title"`
	Definition   *string   `json:"definition"`
	Category     *string   `json:"category"`
	Examples     *[]string `json:"examples"`
	RelatedTerms *[]string `json:"related_terms"`
	Source       *string   `json:"source"`
}

// IsEmpty reports whether the patch carries no recognized fields.
func (p TermPatch) IsEmpty() bool {
	return p.Title == nil &&
		p.Definition == nil &&
		p.Category == nil &&
		p.Examples == nil &&
		p.RelatedTerms == nil &&
		p.Source == nil
}

// apply merges the patch into a copy of t and returns it. The receiver is not
// modified.
func (p TermPatch) apply(t Term) Term {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Definition != nil {
		t.Definition = *p.Definition
	}
	if p.Category != nil {
		t.Category = *p.Category
	}
	if p.Examples != nil {
		t.Examples = *p.Examples
	}
	if p.RelatedTerms != nil {
		t.RelatedTerms = *p.RelatedTerms
	}
	if p.Source != nil {
		t.Source = *p.Source
	}
	return t
}

// ValidateFields checks the title/definition length bounds and returns one
// message per violated constraint. An empty slice means the fields are valid.
func ValidateFields(title, definition string) []string {
	var violations []string

	titleLen := utf8.RuneCountInString(title)
	if titleLen < TitleMinLen {
		violations = append(violations, "title is required")
	} else if titleLen > TitleMaxLen {
		violations = append(violations, fmt.Sprintf("title must be at most %d characters", TitleMaxLen))
	}

	defLen := utf8.RuneCountInString(definition)
	if defLen < DefinitionMinLen {
		violations = append(violations, fmt.Sprintf("definition must be at least %d characters", DefinitionMinLen))
	} else if defLen > DefinitionMaxLen {
		violations = append(violations, fmt.Sprintf("definition must be at most %d characters", DefinitionMaxLen))
	}

	return violations
}
