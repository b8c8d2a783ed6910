package prediction

import (
	"fmt"
	"slices"

	"projectai/internal/classifier"
	"projectai/internal/project"
)

// Encoder maps categorical option strings to the integer codes used at
// training time. It is immutable once built.
type Encoder struct {
	classes map[string][]string
	codes   map[string]map[string]int
}

// NewEncoder builds an encoder from the artifact vocabularies. Each table must
// hold exactly the option set of its field; order decides the codes.
func NewEncoder(vocab map[string][]string) (*Encoder, error) {
	e := &Encoder{
		classes: make(map[string][]string, len(vocab)),
		codes:   make(map[string]map[string]int, len(vocab)),
	}
	for _, field := range project.CategoricalFields() {
		classes, ok := vocab[field]
		if !ok {
			return nil, fmt.Errorf("vocabulary for %s missing", field)
		}
		want := slices.Clone(project.Options(field))
		got := slices.Clone(classes)
		slices.Sort(want)
		slices.Sort(got)
		if !slices.Equal(want, got) {
			return nil, fmt.Errorf("vocabulary for %s is %v, want the options %v", field, classes, project.Options(field))
		}
		codes := make(map[string]int, len(classes))
		for i, c := range classes {
			codes[c] = i
		}
		e.classes[field] = slices.Clone(classes)
		e.codes[field] = codes
	}
	return e, nil
}

// Encode returns the code of raw within field's vocabulary. Matching is exact.
func (e *Encoder) Encode(field, raw string) (int, error) {
	codes, ok := e.codes[field]
	if !ok {
		return 0, fmt.Errorf("field %s is not categorical", field)
	}
	code, ok := codes[raw]
	if !ok {
		return 0, &UnknownCategoryError{Field: field, Value: raw, Allowed: project.Options(field)}
	}
	return code, nil
}

// Vector assembles the feature vector in classifier.FeatureOrder.
func (e *Encoder) Vector(a project.Attributes) ([]float64, error) {
	resources, err := e.Encode(project.FieldResources, a.AvailableResources)
	if err != nil {
		return nil, err
	}
	complexity, err := e.Encode(project.FieldComplexity, a.Complexity)
	if err != nil {
		return nil, err
	}
	projectType, err := e.Encode(project.FieldProjectType, a.ProjectType)
	if err != nil {
		return nil, err
	}
	x := []float64{
		float64(a.DurationMonths),
		a.Budget,
		float64(a.TeamSize),
		float64(resources),
		float64(complexity),
		float64(a.ManagerExperienceYears),
		float64(projectType),
	}
	if len(x) != len(classifier.FeatureOrder) {
		return nil, fmt.Errorf("vector width %d does not match feature order", len(x))
	}
	return x, nil
}
