package risk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ZanzyTHEbar/project-risk-radar/internal/config"
)

func TestAggregate(t *testing.T) {
	classifier := NewClassifier(config.DefaultRiskConfig())

	tests := []struct {
		name          string
		scores        []float64
		expectedScore float64
		expectedLevel Level
	}{
		{name: "empty factors give zero low", scores: nil, expectedScore: 0, expectedLevel: LevelLow},
		{name: "single factor", scores: []float64{85}, expectedScore: 85, expectedLevel: LevelHigh},
		{name: "mean of two factors", scores: []float64{30, 90}, expectedScore: 60, expectedLevel: LevelMedium},
		{name: "mean rounds to two decimals", scores: []float64{30, 30, 40}, expectedScore: 33.33, expectedLevel: LevelLow},
		{name: "mean on high boundary", scores: []float64{70, 70}, expectedScore: 70, expectedLevel: LevelHigh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			factors := make([]Factor, 0, len(tt.scores))
			for _, s := range tt.scores {
				factors = append(factors, Factor{Name: "Test", Score: s})
			}

			assessment := Aggregate(classifier, factors)

			assert.Equal(t, tt.expectedScore, assessment.Score)
			assert.Equal(t, tt.expectedLevel, assessment.Level)
			assert.Len(t, assessment.Factors, len(tt.scores))
		})
	}
}

func TestAggregatePreservesOrder(t *testing.T) {
	classifier := NewClassifier(config.DefaultRiskConfig())

	factors := []Factor{
		{Name: "first", Score: 10},
		{Name: "second", Score: 90},
		{Name: "third", Score: 50},
	}

	assessment := Aggregate(classifier, factors)

	require.Len(t, assessment.Factors, 3)
	assert.Equal(t, "first", assessment.Factors[0].Name)
	assert.Equal(t, "second", assessment.Factors[1].Name)
	assert.Equal(t, "third", assessment.Factors[2].Name)
}

func TestAggregateEmptyHasNonNilFactors(t *testing.T) {
	classifier := NewClassifier(config.DefaultRiskConfig())

	assessment := Aggregate(classifier, nil)

	assert.NotNil(t, assessment.Factors)
	assert.Empty(t, assessment.Factors)
}
