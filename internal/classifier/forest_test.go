package classifier

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stump(feature int, threshold float64, left, right []float64) Tree {
	return Tree{Nodes: []Node{
		{Feature: feature, Threshold: threshold, Left: 1, Right: 2},
		{Feature: -2, Left: -1, Right: -1, Value: left},
		{Feature: -2, Left: -1, Right: -1, Value: right},
	}}
}

func TestPredictProbaAveragesNormalizedLeaves(t *testing.T) {
	f := &Forest{
		NFeatures: 2,
		Classes:   []int{0, 1},
		Trees: []Tree{
			stump(0, 10, []float64{1, 3}, []float64{3, 1}),
			stump(1, 0.5, []float64{50, 50}, []float64{0, 20}),
		},
	}
	require.NoError(t, f.Check())

	proba, err := f.PredictProba([]float64{5, 1})
	require.NoError(t, err)
	assert.InDelta(t, 0.125, proba[0], 1e-12)
	assert.InDelta(t, 0.875, proba[1], 1e-12)

	label, err := f.Predict([]float64{5, 1})
	require.NoError(t, err)
	assert.Equal(t, 1, label)
}

func TestThresholdIsInclusiveLeft(t *testing.T) {
	f := &Forest{NFeatures: 1, Classes: []int{0, 1}, Trees: []Tree{stump(0, 18.5, []float64{0, 1}, []float64{1, 0})}}

	p, err := f.PredictProba([]float64{18.5})
	require.NoError(t, err)
	assert.Equal(t, 1.0, p[1])

	p, err = f.PredictProba([]float64{18.6})
	require.NoError(t, err)
	assert.Equal(t, 0.0, p[1])
}

func TestPredictTieGoesToFirstClass(t *testing.T) {
	f := &Forest{NFeatures: 1, Classes: []int{0, 1}, Trees: []Tree{stump(0, 1, []float64{5, 5}, []float64{5, 5})}}

	label, err := f.Predict([]float64{0})
	require.NoError(t, err)
	assert.Equal(t, 0, label)
}

func TestZeroWeightLeafIsUniform(t *testing.T) {
	f := &Forest{NFeatures: 1, Classes: []int{0, 1}, Trees: []Tree{stump(0, 1, []float64{0, 0}, []float64{1, 1})}}

	p, err := f.PredictProba([]float64{0})
	require.NoError(t, err)
	assert.Equal(t, []float64{0.5, 0.5}, p)
}

func TestPredictProbaRejectsWrongWidth(t *testing.T) {
	f := &Forest{NFeatures: 2, Classes: []int{0, 1}, Trees: []Tree{stump(0, 1, []float64{1, 0}, []float64{0, 1})}}

	_, err := f.PredictProba([]float64{1})
	assert.True(t, errors.Is(err, ErrFeatureCount))
}

func TestCheckRejectsMalformedTrees(t *testing.T) {
	tests := []struct {
		name   string
		forest Forest
	}{
		{
			name:   "no trees",
			forest: Forest{NFeatures: 1, Classes: []int{0, 1}},
		},
		{
			name:   "single class",
			forest: Forest{NFeatures: 1, Classes: []int{1}, Trees: []Tree{stump(0, 1, []float64{1}, []float64{1})}},
		},
		{
			name: "backward child",
			forest: Forest{NFeatures: 1, Classes: []int{0, 1}, Trees: []Tree{{Nodes: []Node{
				{Feature: 0, Left: 0, Right: 1},
				{Left: -1, Right: -1, Value: []float64{1, 0}},
			}}}},
		},
		{
			name: "feature out of range",
			forest: Forest{NFeatures: 1, Classes: []int{0, 1}, Trees: []Tree{
				stump(3, 1, []float64{1, 0}, []float64{0, 1}),
			}},
		},
		{
			name: "leaf weight count",
			forest: Forest{NFeatures: 1, Classes: []int{0, 1}, Trees: []Tree{
				stump(0, 1, []float64{1, 0, 0}, []float64{0, 1}),
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.forest.Check(); err == nil {
				t.Fatalf("expected Check to fail")
			}
		})
	}
}
