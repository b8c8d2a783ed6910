package classifier

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"slices"

	"github.com/xeipuuv/gojsonschema"

	"projectai/internal/project"
	"projectai/internal/shared/storage/object"
)

// Artifact keys inside the model store.
const (
	KeyModel      = "trained_model.json"
	KeyMetadata   = "model_metadata.json"
	KeyResources  = "le_available_resources.json"
	KeyComplexity = "le_complexity.json"
	KeyType       = "le_project_type.json"
)

// ArtifactKeys lists every document Load reads.
func ArtifactKeys() []string {
	return []string{KeyModel, KeyMetadata, KeyResources, KeyComplexity, KeyType}
}

// FeatureOrder is the column order the model was trained on.
var FeatureOrder = []string{
	"duration_months",
	"budget",
	"team_size",
	"resources_encoded",
	"complexity_encoded",
	"manager_experience_years",
	"type_encoded",
}

// maxArtifactBytes bounds a single artifact document.
const maxArtifactBytes = 32 << 20

// Vocabulary is one label-encoder table. Codes are slice indices.
type Vocabulary struct {
	Field   string   `json:"field"`
	Classes []string `json:"classes"`
}

// Metadata describes the training run.
type Metadata struct {
	Accuracy  float64  `json:"accuracy"`
	TrainedAt string   `json:"trained_at,omitempty"`
	Features  []string `json:"features"`
	Classes   []int    `json:"classes"`
}

// Bundle is a fully loaded, validated artifact set. It is read-only after Load.
type Bundle struct {
	Forest       *Forest
	Metadata     Metadata
	Vocabularies map[string][]string
}

// vocabularyKeys maps each categorical attribute to its artifact key.
var vocabularyKeys = map[string]string{
	project.FieldResources:   KeyResources,
	project.FieldComplexity:  KeyComplexity,
	project.FieldProjectType: KeyType,
}

// Load reads and validates every artifact from store. Any missing or invalid
// document fails the whole load.
func Load(ctx context.Context, store object.Store) (*Bundle, error) {
	var forest Forest
	if err := readDocument(ctx, store, KeyModel, forestSchema, &forest); err != nil {
		return nil, err
	}
	if err := forest.Check(); err != nil {
		return nil, fmt.Errorf("%s: %w", KeyModel, err)
	}

	var meta Metadata
	if err := readDocument(ctx, store, KeyMetadata, metadataSchema, &meta); err != nil {
		return nil, err
	}
	if !slices.Equal(meta.Features, FeatureOrder) {
		return nil, fmt.Errorf("%s: feature order %v does not match %v", KeyMetadata, meta.Features, FeatureOrder)
	}
	if forest.NFeatures != len(FeatureOrder) {
		return nil, fmt.Errorf("%s: model expects %d features, want %d", KeyModel, forest.NFeatures, len(FeatureOrder))
	}
	if _, ok := forest.ClassIndex(1); !ok {
		return nil, fmt.Errorf("%s: positive class 1 missing from %v", KeyModel, forest.Classes)
	}

	vocab := make(map[string][]string, len(vocabularyKeys))
	for field, key := range vocabularyKeys {
		var v Vocabulary
		if err := readDocument(ctx, store, key, vocabularySchema, &v); err != nil {
			return nil, err
		}
		if v.Field != field {
			return nil, fmt.Errorf("%s: field %q, want %q", key, v.Field, field)
		}
		vocab[field] = v.Classes
	}

	return &Bundle{Forest: &forest, Metadata: meta, Vocabularies: vocab}, nil
}

// SuccessProbability returns the positive-class probability and the hard
// label for one feature vector.
func (b *Bundle) SuccessProbability(x []float64) (float64, bool, error) {
	proba, err := b.Forest.PredictProba(x)
	if err != nil {
		return 0, false, err
	}
	label, err := b.Forest.Predict(x)
	if err != nil {
		return 0, false, err
	}
	idx, _ := b.Forest.ClassIndex(1)
	return proba[idx], label == 1, nil
}

func readDocument(ctx context.Context, store object.Store, key string, schema *gojsonschema.Schema, dst any) error {
	rc, err := store.Open(ctx, key)
	if err != nil {
		return fmt.Errorf("open %s: %w", key, err)
	}
	defer rc.Close()

	raw, err := io.ReadAll(io.LimitReader(rc, maxArtifactBytes))
	if err != nil {
		return fmt.Errorf("read %s: %w", key, err)
	}
	if err := validateDocument(schema, key, raw); err != nil {
		return err
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}
