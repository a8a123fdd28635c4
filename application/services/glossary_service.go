package services

import (
	"strings"

	"glossary-backend/domain/glossary"
	"glossary-backend/infrastructure/observability"
	apperrors "glossary-backend/pkg/errors"

	"go.uber.org/zap"
)

// PageLimits bounds the list operation. Default applies when the client sends
// no limit (or a non-positive one); Max caps whatever the client asks for.
type PageLimits struct {
	Default int
	Max     int
}

// LimitsProvider supplies the current page limits. Implementations may change
// the values at runtime (see the config watcher).
type LimitsProvider interface {
	PageLimits() PageLimits
}

// Snapshotter persists the full collection after successful mutations. A nil
// Snapshotter disables persistence.
type Snapshotter interface {
	Save(terms []glossary.Term) error
}

// ListResult is the payload of the list operation: the requested page plus the
// total count before slicing.
type ListResult struct {
	Total int             `json:"total"`
	Skip  int             `json:"skip"`
	Limit int             `json:"limit"`
	Items []glossary.Term `json:"items"`
}

// Statistics summarizes the collection by category.
type Statistics struct {
	TotalTerms      int            `json:"total_terms"`
	Categories      map[string]int `json:"categories"`
	CategoriesCount int            `json:"categories_count"`
}

// CreateTermInput carries the client-supplied fields for a new term.
type CreateTermInput struct {
	Title        string
	Definition   string
	Category     string
	Examples     []string
	RelatedTerms []string
	Source       string
}

// GlossaryService composes store primitives with list-level policy.
type GlossaryService struct {
	store       *glossary.Store
	limits      LimitsProvider
	snapshotter Snapshotter
	metrics     *observability.Collector
	logger      *zap.Logger
}

// NewGlossaryService creates a new glossary service. snapshotter and metrics
// may be nil.
func NewGlossaryService(
	store *glossary.Store,
	limits LimitsProvider,
	snapshotter Snapshotter,
	metrics *observability.Collector,
	logger *zap.Logger,
) *GlossaryService {
	return &GlossaryService{
		store:       store,
		limits:      limits,
		snapshotter: snapshotter,
		metrics:     metrics,
		logger:      logger,
	}
}

// List returns the sub-sequence of the collection starting at offset skip, at
// most limit items. Negative skip clamps to 0; a non-positive limit falls back
// to the configured default; limit is capped at the configured maximum. A skip
// beyond the total yields an empty page, not an error.
func (s *GlossaryService) List(skip, limit int) ListResult {
	bounds := s.limits.PageLimits()
	if skip < 0 {
		skip = 0
	}
	if limit < 1 {
		limit = bounds.Default
	}
	if limit > bounds.Max {
		limit = bounds.Max
	}

	all := s.store.All()
	total := len(all)

	items := []glossary.Term{}
	if skip < total {
		end := skip + limit
		if end > total {
			end = total
		}
		items = all[skip:end]
	}

	return ListResult{Total: total, Skip: skip, Limit: limit, Items: items}
}

// Get returns the term with the matching id.
func (s *GlossaryService) Get(id int) (glossary.Term, error) {
	return s.store.FindByID(id)
}

// Search returns all terms whose title, definition, category, examples, or
// related terms contain the keyword, case-insensitively, in collection order.
// An empty or all-whitespace keyword matches nothing.
func (s *GlossaryService) Search(keyword string) []glossary.Term {
	if s.metrics != nil {
		s.metrics.SearchQueries.Inc()
	}

	results := []glossary.Term{}
	keyword = strings.ToLower(strings.TrimSpace(keyword))
	if keyword == "" {
		return results
	}

	for _, t := range s.store.All() {
		if termMatches(t, keyword) {
			results = append(results, t)
		}
	}
	return results
}

func termMatches(t glossary.Term, keyword string) bool {
	if strings.Contains(strings.ToLower(t.Title), keyword) ||
		strings.Contains(strings.ToLower(t.Definition), keyword) ||
		strings.Contains(strings.ToLower(t.Category), keyword) {
		return true
	}
	for _, e := range t.Examples {
		if strings.Contains(strings.ToLower(e), keyword) {
			return true
		}
	}
	for _, r := range t.RelatedTerms {
		if strings.Contains(strings.ToLower(r), keyword) {
			return true
		}
	}
	return false
}

// Create validates the input, listing every violated constraint, and inserts
// a new term. Category defaults to General when omitted.
func (s *GlossaryService) Create(input CreateTermInput) (glossary.Term, error) {
	if violations := glossary.ValidateFields(input.Title, input.Definition); len(violations) > 0 {
		return glossary.Term{}, apperrors.NewValidation("term validation failed", violations)
	}

	term, err := s.store.Insert(glossary.Term{
		Title:        input.Title,
		Definition:   input.Definition,
		Category:     input.Category,
		Examples:     input.Examples,
		RelatedTerms: input.RelatedTerms,
		Source:       input.Source,
	})
	if err != nil {
		return glossary.Term{}, err
	}

	if s.metrics != nil {
		s.metrics.TermsCreated.Inc()
	}
	s.snapshot()
	return term, nil
}

// Update applies a partial update. At least one recognized field must be
// present in the patch.
func (s *GlossaryService) Update(id int, patch glossary.TermPatch) (glossary.Term, error) {
	if patch.IsEmpty() {
		return glossary.Term{}, apperrors.NewValidation(
			"no fields to update", []string{"at least one field must be provided"})
	}

	term, err := s.store.ReplaceFields(id, patch)
	if err != nil {
		return glossary.Term{}, err
	}

	if s.metrics != nil {
		s.metrics.TermsUpdated.Inc()
	}
	s.snapshot()
	return term, nil
}

// Delete removes the term with the matching id and returns the removed id.
func (s *GlossaryService) Delete(id int) (int, error) {
	deletedID, err := s.store.Remove(id)
	if err != nil {
		return 0, err
	}

	if s.metrics != nil {
		s.metrics.TermsDeleted.Inc()
	}
	s.snapshot()
	return deletedID, nil
}

// Statistics returns per-category term counts.
func (s *GlossaryService) Statistics() Statistics {
	all := s.store.All()
	categories := make(map[string]int)
	for _, t := range all {
		categories[t.Category]++
	}
	return Statistics{
		TotalTerms:      len(all),
		Categories:      categories,
		CategoriesCount: len(categories),
	}
}

// snapshot persists the collection after a successful mutation. Persistence
// failures are logged, not surfaced to the client.
func (s *GlossaryService) snapshot() {
	if s.snapshotter == nil {
		return
	}
	if err := s.snapshotter.Save(s.store.All()); err != nil {
		s.logger.Warn("Failed to persist glossary snapshot", zap.Error(err))
	}
}
