package risk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ZanzyTHEbar/project-risk-radar/internal/config"
	"github.com/ZanzyTHEbar/project-risk-radar/internal/types"
)

func newTestScorer() *StaticScorer {
	return NewStaticScorer(NewClassifier(config.DefaultRiskConfig()))
}

func TestScoreCategory(t *testing.T) {
	scorer := newTestScorer()

	tests := []struct {
		name     string
		category Category
		value    string
		expected float64
	}{
		{name: "UK is low risk location", category: CategoryLocation, value: "UK", expected: 30},
		{name: "united states is low risk", category: CategoryLocation, value: "United States", expected: 30},
		{name: "india is medium risk", category: CategoryLocation, value: "India", expected: 60},
		{name: "japan is medium risk", category: CategoryLocation, value: "japan", expected: 60},
		{name: "middle east is high risk", category: CategoryLocation, value: "Middle East", expected: 85},
		{name: "syria is high risk", category: CategoryLocation, value: "Syria", expected: 85},
		{name: "unmatched location defaults to medium", category: CategoryLocation, value: "Atlantis", expected: 60},

		{name: "small project is low risk", category: CategorySize, value: "15", expected: 30},
		{name: "size 20 is medium boundary", category: CategorySize, value: "20", expected: 60},
		{name: "mid-size project is medium", category: CategorySize, value: "30", expected: 60},
		{name: "size 50 is high boundary", category: CategorySize, value: "50", expected: 85},
		{name: "large project is high risk", category: CategorySize, value: "75", expected: 85},
		{name: "unparseable size defaults to medium", category: CategorySize, value: "big", expected: 60},

		{name: "proven technology is low risk", category: CategoryTechnology, value: "proven methods", expected: 30},
		{name: "innovative technology is high risk", category: CategoryTechnology, value: "innovative material", expected: 85},
		{name: "emerging technology is high risk", category: CategoryTechnology, value: "Emerging AI stack", expected: 85},
		{name: "unmatched technology defaults to medium", category: CategoryTechnology, value: "steel", expected: 60},

		{name: "resignation yes is high risk", category: CategoryResignation, value: "yes", expected: 85},
		{name: "resignation no is low risk", category: CategoryResignation, value: "no", expected: 30},
		{name: "milestone yes is high risk", category: CategoryMilestone, value: "yes", expected: 85},
		{name: "milestone uppercase yes is high risk", category: CategoryMilestone, value: "YES", expected: 85},
		{name: "budget problem absent is low risk", category: CategoryBudget, value: "none", expected: 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, scorer.ScoreCategory(tt.category, tt.value))
		})
	}
}

func TestAnalyzeBuildsFactors(t *testing.T) {
	scorer := newTestScorer()

	assessment := scorer.Analyze(types.ProjectAttributes{
		ProjectLocation: "Middle East",
		ProjectSize:     "75",
		MissedMilestone: "yes",
	})

	require.Len(t, assessment.Factors, 3)

	location := assessment.Factors[0]
	assert.Equal(t, "Project Location", location.Name)
	assert.Equal(t, "Middle East", location.Value)
	assert.Equal(t, 85.0, location.Score)
	assert.Equal(t, LevelHigh, location.Level)
	assert.Equal(t, "Project Location (Middle East) - High Risk", location.Description)

	milestone := assessment.Factors[2]
	assert.Equal(t, "Missed Milestone", milestone.Name)
	assert.Equal(t, "Missed Milestone (yes) - High Risk", milestone.Description)

	assert.Equal(t, 85.0, assessment.Score)
	assert.Equal(t, LevelHigh, assessment.Level)
}

func TestAnalyzeSkipsEmptyAttributes(t *testing.T) {
	scorer := newTestScorer()

	assessment := scorer.Analyze(types.ProjectAttributes{
		ProjectLocation: "UK",
	})

	require.Len(t, assessment.Factors, 1)
	assert.Equal(t, 30.0, assessment.Score)
	assert.Equal(t, LevelLow, assessment.Level)
}

func TestAnalyzeNoAttributes(t *testing.T) {
	scorer := newTestScorer()

	assessment := scorer.Analyze(types.ProjectAttributes{ProjectName: "Empty"})

	assert.Empty(t, assessment.Factors)
	assert.Equal(t, 0.0, assessment.Score)
	assert.Equal(t, LevelLow, assessment.Level)
}

func TestAnalyzeLevelAlwaysMatchesScore(t *testing.T) {
	scorer := newTestScorer()
	classifier := NewClassifier(config.DefaultRiskConfig())

	assessment := scorer.Analyze(types.ProjectAttributes{
		ProjectLocation:     "India",
		ProjectSize:         "10",
		Technology:          "new sensor array",
		EmployeeResignation: "no",
		MissedMilestone:     "yes",
		BudgetProblem:       "yes",
	})

	for _, f := range assessment.Factors {
		assert.Equal(t, classifier.Classify(f.Score), f.Level, "factor %s", f.Name)
	}
	assert.Equal(t, classifier.Classify(assessment.Score), assessment.Level)
}
