package classifier

import (
	"embed"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed schemas/*.json
var schemaFiles embed.FS

var (
	forestSchema     = mustSchema("schemas/forest.json")
	vocabularySchema = mustSchema("schemas/vocabulary.json")
	metadataSchema   = mustSchema("schemas/metadata.json")
)

func mustSchema(name string) *gojsonschema.Schema {
	raw, err := schemaFiles.ReadFile(name)
	if err != nil {
		panic(fmt.Sprintf("classifier: read %s: %v", name, err))
	}
	schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		panic(fmt.Sprintf("classifier: compile %s: %v", name, err))
	}
	return schema
}

// validateDocument checks raw JSON against schema and folds every violation
// into a single error.
func validateDocument(schema *gojsonschema.Schema, name string, raw []byte) error {
	result, err := schema.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	if result.Valid() {
		return nil
	}
	errs := make([]string, len(result.Errors()))
	for i, desc := range result.Errors() {
		errs[i] = desc.String()
	}
	return fmt.Errorf("%s: schema validation failed: %s", name, strings.Join(errs, "; "))
}
