package seed_test

import (
	"path/filepath"
	"testing"

	"glossary-backend/domain/glossary"
	"glossary-backend/domain/glossary/seed"
	apperrors "glossary-backend/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbedded(t *testing.T) {
	terms, err := seed.Embedded()
	require.NoError(t, err)
	assert.Len(t, terms, 22)

	// The bundled dataset must load cleanly; a malformed seed would abort
	// startup.
	store := glossary.NewStore()
	require.NoError(t, store.Load(terms))
	assert.Equal(t, 22, store.Len())
	assert.Equal(t, 23, store.NextID())
}

func TestFromFileMissing(t *testing.T) {
	_, err := seed.FromFile(filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)
	assert.True(t, apperrors.IsMalformedSeed(err))
}
