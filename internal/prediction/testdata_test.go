package prediction

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"projectai/internal/classifier"
	"projectai/internal/project"
	"projectai/internal/shared/storage/object/local"
)

func referenceService(t *testing.T) *Service {
	t.Helper()
	bundle, err := classifier.Load(context.Background(), local.New("../../models"))
	require.NoError(t, err)
	svc, err := NewService(bundle)
	require.NoError(t, err)
	return svc
}

func referenceVocab() map[string][]string {
	return map[string][]string{
		project.FieldResources:   {"Alto", "Baixo", "Médio"},
		project.FieldComplexity:  {"Alta", "Baixa", "Média"},
		project.FieldProjectType: {"Construção", "Marketing", "P&D", "TI"},
	}
}

type fixedModel struct {
	p       float64
	success bool
	lastX   []float64
}

func (m *fixedModel) SuccessProbability(x []float64) (float64, bool, error) {
	m.lastX = x
	return m.p, m.success, nil
}

func riskyProject() project.Attributes {
	return project.Attributes{
		DurationMonths:         24,
		Budget:                 200000,
		TeamSize:               25,
		AvailableResources:     project.ResourcesLow,
		Complexity:             project.ComplexityHigh,
		ManagerExperienceYears: 2,
		ProjectType:            project.TypeIT,
	}
}
