package services_test

import (
	"testing"

	"glossary-backend/application/services"
	"glossary-backend/domain/glossary"
	apperrors "glossary-backend/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type staticLimits struct {
	def, max int
}

func (s staticLimits) PageLimits() services.PageLimits {
	return services.PageLimits{Default: s.def, Max: s.max}
}

type recordingSnapshotter struct {
	saves int
	last  []glossary.Term
}

func (r *recordingSnapshotter) Save(terms []glossary.Term) error {
	r.saves++
	r.last = terms
	return nil
}

func seedTerms() []glossary.Term {
	return []glossary.Term{
		{
			ID:           1,
			Title:        "Blockchain",
			Definition:   "A distributed ledger replicated across many nodes",
			Category:     "Fundamentals",
			RelatedTerms: []string{"Consensus"},
		},
		{
			ID:         2,
			Title:      "Smart Contract",
			Definition: "Self-executing code deployed on a blockchain",
			Category:   "Development",
			Examples:   []string{"An escrow contract releasing funds on delivery"},
		},
		{
			ID:         3,
			Title:      "Oracle",
			Definition: "A service feeding external data into smart contracts",
			Category:   "Infrastructure",
		},
	}
}

func newService(t *testing.T) (*services.GlossaryService, *glossary.Store) {
	t.Helper()
	store := glossary.NewStore()
	require.NoError(t, store.Load(seedTerms()))
	svc := services.NewGlossaryService(store, staticLimits{def: 100, max: 1000}, nil, nil, zap.NewNop())
	return svc, store
}

func TestList(t *testing.T) {
	svc, _ := newService(t)

	t.Run("returns full page with total", func(t *testing.T) {
		result := svc.List(0, 10)
		assert.Equal(t, 3, result.Total)
		assert.Len(t, result.Items, 3)
		assert.Equal(t, "Blockchain", result.Items[0].Title)
	})

	t.Run("slices by skip and limit", func(t *testing.T) {
		result := svc.List(1, 1)
		assert.Equal(t, 3, result.Total)
		require.Len(t, result.Items, 1)
		assert.Equal(t, "Smart Contract", result.Items[0].Title)
	})

	t.Run("skip equal to total yields empty page", func(t *testing.T) {
		result := svc.List(3, 10)
		assert.Equal(t, 3, result.Total)
		assert.Empty(t, result.Items)
	})

	t.Run("negative skip clamps to zero", func(t *testing.T) {
		result := svc.List(-5, 10)
		assert.Equal(t, 0, result.Skip)
		assert.Len(t, result.Items, 3)
	})

	t.Run("non-positive limit falls back to default", func(t *testing.T) {
		result := svc.List(0, 0)
		assert.Equal(t, 100, result.Limit)
	})

	t.Run("limit capped at maximum", func(t *testing.T) {
		result := svc.List(0, 5000)
		assert.Equal(t, 1000, result.Limit)
	})
}

func TestSearch(t *testing.T) {
	svc, _ := newService(t)

	t.Run("empty keyword matches nothing", func(t *testing.T) {
		assert.Empty(t, svc.Search(""))
		assert.Empty(t, svc.Search("   "))
	})

	t.Run("case-insensitive title match", func(t *testing.T) {
		results := svc.Search("BLOCKCHAIN")
		require.Len(t, results, 2) // title match + definition match
		assert.Equal(t, "Blockchain", results[0].Title)
	})

	t.Run("matches definition", func(t *testing.T) {
		results := svc.Search("external data")
		require.Len(t, results, 1)
		assert.Equal(t, "Oracle", results[0].Title)
	})

	t.Run("matches category", func(t *testing.T) {
		results := svc.Search("infrastructure")
		require.Len(t, results, 1)
		assert.Equal(t, "Oracle", results[0].Title)
	})

	t.Run("matches examples entries", func(t *testing.T) {
		results := svc.Search("escrow")
		require.Len(t, results, 1)
		assert.Equal(t, "Smart Contract", results[0].Title)
	})

	t.Run("matches related terms entries", func(t *testing.T) {
		results := svc.Search("consensus")
		require.Len(t, results, 1)
		assert.Equal(t, "Blockchain", results[0].Title)
	})

	t.Run("no match yields empty slice", func(t *testing.T) {
		results := svc.Search("nonexistent keyword")
		assert.NotNil(t, results)
		assert.Empty(t, results)
	})

	t.Run("results keep collection order", func(t *testing.T) {
		results := svc.Search("a") // matches everything
		require.Len(t, results, 3)
		assert.Equal(t, "Blockchain", results[0].Title)
		assert.Equal(t, "Smart Contract", results[1].Title)
		assert.Equal(t, "Oracle", results[2].Title)
	})
}

func TestCreate(t *testing.T) {
	t.Run("defaults category", func(t *testing.T) {
		svc, _ := newService(t)
		term, err := svc.Create(services.CreateTermInput{
			Title:      "Test",
			Definition: "1234567890",
		})
		require.NoError(t, err)
		assert.Equal(t, 4, term.ID)
		assert.Equal(t, glossary.DefaultCategory, term.Category)
		assert.Empty(t, term.Examples)
	})

	t.Run("collects every violation", func(t *testing.T) {
		svc, _ := newService(t)
		_, err := svc.Create(services.CreateTermInput{Title: "", Definition: "short"})
		require.Error(t, err)

		appErr, ok := apperrors.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.ErrorTypeValidation, appErr.Type)
		require.Len(t, appErr.Violations, 2)
		assert.Contains(t, appErr.Violations[0], "title")
		assert.Contains(t, appErr.Violations[1], "definition")
	})

	t.Run("round-trips through get", func(t *testing.T) {
		svc, _ := newService(t)
		created, err := svc.Create(services.CreateTermInput{
			Title:        "Layer 2",
			Definition:   "A protocol settling batches back to the base chain",
			Category:     "Infrastructure",
			Examples:     []string{"Optimistic rollups"},
			RelatedTerms: []string{"Rollup"},
			Source:       "docs",
		})
		require.NoError(t, err)

		got, err := svc.Get(created.ID)
		require.NoError(t, err)
		assert.Equal(t, created, got)
	})

	t.Run("snapshots after mutation", func(t *testing.T) {
		store := glossary.NewStore()
		require.NoError(t, store.Load(seedTerms()))
		snap := &recordingSnapshotter{}
		svc := services.NewGlossaryService(store, staticLimits{def: 100, max: 1000}, snap, nil, zap.NewNop())

		_, err := svc.Create(services.CreateTermInput{
			Title:      "Wallet",
			Definition: "Software managing a user's key pairs",
		})
		require.NoError(t, err)
		assert.Equal(t, 1, snap.saves)
		assert.Len(t, snap.last, 4)
	})
}

func TestUpdate(t *testing.T) {
	t.Run("empty patch fails", func(t *testing.T) {
		svc, _ := newService(t)
		_, err := svc.Update(1, glossary.TermPatch{})
		require.Error(t, err)

		appErr, ok := apperrors.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.ErrorTypeValidation, appErr.Type)
		assert.Equal(t, "no fields to update", appErr.Message)
	})

	t.Run("preserves absent fields", func(t *testing.T) {
		svc, _ := newService(t)
		newDef := "An updated definition that is long enough"

		updated, err := svc.Update(2, glossary.TermPatch{Definition: &newDef})
		require.NoError(t, err)
		assert.Equal(t, newDef, updated.Definition)
		assert.Equal(t, "Smart Contract", updated.Title)
		assert.Equal(t, "Development", updated.Category)
		assert.Equal(t, []string{"An escrow contract releasing funds on delivery"}, updated.Examples)
	})

	t.Run("unknown id", func(t *testing.T) {
		svc, _ := newService(t)
		newDef := "An updated definition that is long enough"
		_, err := svc.Update(99999, glossary.TermPatch{Definition: &newDef})
		require.Error(t, err)
		assert.True(t, apperrors.IsNotFound(err))
	})
}

func TestDelete(t *testing.T) {
	t.Run("removes and reports id", func(t *testing.T) {
		svc, _ := newService(t)
		deletedID, err := svc.Delete(1)
		require.NoError(t, err)
		assert.Equal(t, 1, deletedID)

		_, err = svc.Get(1)
		require.Error(t, err)
		assert.True(t, apperrors.IsNotFound(err))
	})

	t.Run("deleted id is never reassigned", func(t *testing.T) {
		svc, _ := newService(t)
		_, err := svc.Delete(3)
		require.NoError(t, err)

		created, err := svc.Create(services.CreateTermInput{
			Title:      "Mining",
			Definition: "Producing new blocks in a proof-of-work network",
		})
		require.NoError(t, err)
		assert.Equal(t, 4, created.ID)
	})
}

func TestStatistics(t *testing.T) {
	svc, _ := newService(t)
	stats := svc.Statistics()

	assert.Equal(t, 3, stats.TotalTerms)
	assert.Equal(t, 3, stats.CategoriesCount)
	assert.Equal(t, 1, stats.Categories["Fundamentals"])
	assert.Equal(t, 1, stats.Categories["Development"])
	assert.Equal(t, 1, stats.Categories["Infrastructure"])
}
