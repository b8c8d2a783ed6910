// Package project holds the project attribute record scored by the prediction
// service and collected by the intake flow.
package project

import (
	"fmt"
	"strings"
)

// Field names, shared by the JSON surface, the intake flow and the encoder.
const (
	FieldDuration          = "duration_months"
	FieldBudget            = "budget"
	FieldTeamSize          = "team_size"
	FieldResources         = "available_resources"
	FieldComplexity        = "complexity"
	FieldManagerExperience = "manager_experience_years"
	FieldProjectType       = "project_type"
)

// Categorical option strings. These are the training-time vocabulary.
const (
	ResourcesLow    = "Baixo"
	ResourcesMedium = "Médio"
	ResourcesHigh   = "Alto"

	ComplexityLow    = "Baixa"
	ComplexityMedium = "Média"
	ComplexityHigh   = "Alta"

	TypeIT           = "TI"
	TypeConstruction = "Construção"
	TypeMarketing    = "Marketing"
	TypeRAndD        = "P&D"
)

// Domain-expected bounds advertised to users.
const (
	MinDuration          = 3
	MaxDuration          = 36
	MinTeamSize          = 3
	MaxTeamSize          = 50
	MinManagerExperience = 0
	MaxManagerExperience = 30
)

// Attributes is one project to score. All fields are required.
type Attributes struct {
	DurationMonths         int     `json:"duration_months"`
	Budget                 float64 `json:"budget"`
	TeamSize               int     `json:"team_size"`
	AvailableResources     string  `json:"available_resources"`
	Complexity             string  `json:"complexity"`
	ManagerExperienceYears int     `json:"manager_experience_years"`
	ProjectType            string  `json:"project_type"`
}

// Options returns the fixed option list for a categorical field, in display order.
func Options(field string) []string {
	switch field {
	case FieldResources:
		return []string{ResourcesLow, ResourcesMedium, ResourcesHigh}
	case FieldComplexity:
		return []string{ComplexityLow, ComplexityMedium, ComplexityHigh}
	case FieldProjectType:
		return []string{TypeIT, TypeConstruction, TypeMarketing, TypeRAndD}
	default:
		return nil
	}
}

// CategoricalFields lists the fields encoded through a vocabulary.
func CategoricalFields() []string {
	return []string{FieldResources, FieldComplexity, FieldProjectType}
}

// FieldError reports a missing or malformed attribute.
type FieldError struct {
	Field  string
	Reason string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Validate checks that every field is present and sign constraints hold.
// Domain ranges are not enforced here.
func (a Attributes) Validate() []FieldError {
	var errs []FieldError
	if a.DurationMonths <= 0 {
		errs = append(errs, FieldError{Field: FieldDuration, Reason: "must be a positive integer"})
	}
	if a.Budget <= 0 {
		errs = append(errs, FieldError{Field: FieldBudget, Reason: "must be greater than zero"})
	}
	if a.TeamSize <= 0 {
		errs = append(errs, FieldError{Field: FieldTeamSize, Reason: "must be a positive integer"})
	}
	if a.ManagerExperienceYears < 0 {
		errs = append(errs, FieldError{Field: FieldManagerExperience, Reason: "must not be negative"})
	}
	if strings.TrimSpace(a.AvailableResources) == "" {
		errs = append(errs, FieldError{Field: FieldResources, Reason: "is required"})
	}
	if strings.TrimSpace(a.Complexity) == "" {
		errs = append(errs, FieldError{Field: FieldComplexity, Reason: "is required"})
	}
	if strings.TrimSpace(a.ProjectType) == "" {
		errs = append(errs, FieldError{Field: FieldProjectType, Reason: "is required"})
	}
	return errs
}

// Categorical returns the raw value of a categorical field.
func (a Attributes) Categorical(field string) (string, bool) {
	switch field {
	case FieldResources:
		return a.AvailableResources, true
	case FieldComplexity:
		return a.Complexity, true
	case FieldProjectType:
		return a.ProjectType, true
	default:
		return "", false
	}
}
