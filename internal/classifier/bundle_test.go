package classifier

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"projectai/internal/project"
	"projectai/internal/shared/storage/object"
	"projectai/internal/shared/storage/object/local"
)

const referenceModelDir = "../../models"

func TestLoadReferenceBundle(t *testing.T) {
	bundle, err := Load(context.Background(), local.New(referenceModelDir))
	require.NoError(t, err)

	assert.Equal(t, FeatureOrder, bundle.Metadata.Features)
	assert.Equal(t, []string{"Alto", "Baixo", "Médio"}, bundle.Vocabularies[project.FieldResources])
	assert.Equal(t, []string{"Alta", "Baixa", "Média"}, bundle.Vocabularies[project.FieldComplexity])
	assert.Equal(t, []string{"Construção", "Marketing", "P&D", "TI"}, bundle.Vocabularies[project.FieldProjectType])
}

func TestReferenceBundleScores(t *testing.T) {
	bundle, err := Load(context.Background(), local.New(referenceModelDir))
	require.NoError(t, err)

	// 24 months, 200k, 25 people, Baixo, Alta, 2 years, TI.
	p, success, err := bundle.SuccessProbability([]float64{24, 200000, 25, 1, 0, 2, 3})
	require.NoError(t, err)
	assert.InDelta(t, 1.55/6, p, 1e-9)
	assert.False(t, success)

	// 12 months, 1M, 10 people, Alto, Baixa, 15 years, TI.
	p, success, err = bundle.SuccessProbability([]float64{12, 1_000_000, 10, 0, 1, 15, 3})
	require.NoError(t, err)
	assert.InDelta(t, 4.55/6, p, 1e-9)
	assert.True(t, success)
}

func TestLoadMissingArtifact(t *testing.T) {
	_, err := Load(context.Background(), local.New(t.TempDir()))
	require.Error(t, err)
	assert.True(t, errors.Is(err, object.ErrNotFound))
}

func TestLoadRejectsInvalidDocuments(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		content string
	}{
		{name: "forest fails schema", key: KeyModel, content: `{"n_features": 7, "classes": [0, 1]}`},
		{name: "feature order", key: KeyMetadata, content: `{"accuracy": 0.8, "features": ["budget"], "classes": [0, 1]}`},
		{name: "vocabulary field", key: KeyComplexity, content: `{"field": "complexidade", "classes": ["Alta"]}`},
		{name: "vocabulary duplicate", key: KeyType, content: `{"field": "project_type", "classes": ["TI", "TI"]}`},
		{name: "not json", key: KeyResources, content: `nope`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := copyReferenceBundle(t)
			require.NoError(t, os.WriteFile(filepath.Join(dir, tt.key), []byte(tt.content), 0o644))

			_, err := Load(context.Background(), local.New(dir))
			assert.Error(t, err)
		})
	}
}

func copyReferenceBundle(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for _, key := range []string{KeyModel, KeyMetadata, KeyResources, KeyComplexity, KeyType} {
		raw, err := os.ReadFile(filepath.Join(referenceModelDir, key))
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(filepath.Join(dir, key), raw, 0o644))
	}
	return dir
}
