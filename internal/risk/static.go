package risk

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ZanzyTHEbar/project-risk-radar/internal/types"
)

// Category is one of the recognized static attribute categories.
type Category string

const (
	CategoryLocation    Category = "project_location"
	CategorySize        Category = "project_size"
	CategoryTechnology  Category = "technology"
	CategoryResignation Category = "employee_resignation"
	CategoryMilestone   Category = "missed_milestone"
	CategoryBudget      Category = "budget_problem"
)

// Tabulated rule scores. Anything the tables do not match gets the
// medium default.
const (
	scoreLow     = 30.0
	scoreDefault = 60.0
	scoreHigh    = 85.0
)

var (
	lowRiskLocations = []string{"us", "uk", "united states", "united kingdom"}
	mediumRiskLocations = []string{
		"india", "asia", "china", "japan", "southeast asia", "south asia",
	}
	highRiskLocations = []string{
		"africa", "middle east", "afghanistan", "iraq", "syria",
	}

	lowRiskTechTerms  = []string{"established", "proven", "old"}
	highRiskTechTerms = []string{"new", "emerging", "innovative"}
)

// StaticScorer maps declared project attributes to risk scores using
// fixed rule tables.
type StaticScorer struct {
	classifier Classifier
}

// NewStaticScorer builds a scorer bound to the given classifier.
func NewStaticScorer(classifier Classifier) *StaticScorer {
	return &StaticScorer{classifier: classifier}
}

// ScoreCategory returns the tabulated 0-100 score for one attribute.
// Matching is case-insensitive; values the tables do not recognize,
// including unparseable project sizes, score the medium default.
func (s *StaticScorer) ScoreCategory(category Category, rawValue string) float64 {
	value := strings.ToLower(strings.TrimSpace(rawValue))

	switch category {
	case CategoryLocation:
		switch {
		case containsExact(lowRiskLocations, value):
			return scoreLow
		case containsExact(mediumRiskLocations, value):
			return scoreDefault
		case containsExact(highRiskLocations, value):
			return scoreHigh
		default:
			return scoreDefault
		}

	case CategorySize:
		size, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return scoreDefault
		}
		switch {
		case size < 20:
			return scoreLow
		case size < 50:
			return scoreDefault
		default:
			return scoreHigh
		}

	case CategoryTechnology:
		switch {
		case containsAnySubstring(value, highRiskTechTerms):
			return scoreHigh
		case containsAnySubstring(value, lowRiskTechTerms):
			return scoreLow
		default:
			return scoreDefault
		}

	case CategoryResignation, CategoryMilestone, CategoryBudget:
		if value == "yes" {
			return scoreHigh
		}
		return scoreLow
	}

	return scoreDefault
}

// Analyze evaluates every present, non-empty recognized attribute and
// aggregates the resulting factors into a stage assessment.
func (s *StaticScorer) Analyze(project types.ProjectAttributes) Assessment {
	attributes := []struct {
		category Category
		value    string
	}{
		{CategoryLocation, project.ProjectLocation},
		{CategorySize, project.ProjectSize},
		{CategoryTechnology, project.Technology},
		{CategoryResignation, project.EmployeeResignation},
		{CategoryMilestone, project.MissedMilestone},
		{CategoryBudget, project.BudgetProblem},
	}

	factors := make([]Factor, 0, len(attributes))
	for _, attr := range attributes {
		if attr.value == "" {
			continue
		}

		score := s.ScoreCategory(attr.category, attr.value)
		level := s.classifier.Classify(score)
		name := displayName(attr.category)

		factors = append(factors, Factor{
			Name:        name,
			Value:       attr.value,
			Score:       score,
			Level:       level,
			Description: fmt.Sprintf("%s (%s) - %s Risk", name, attr.value, level),
		})
	}

	return Aggregate(s.classifier, factors)
}

// displayName turns a category key into its human-readable form, e.g.
// "missed_milestone" -> "Missed Milestone".
func displayName(category Category) string {
	words := strings.Split(string(category), "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func containsExact(set []string, value string) bool {
	for _, s := range set {
		if s == value {
			return true
		}
	}
	return false
}

func containsAnySubstring(value string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(value, term) {
			return true
		}
	}
	return false
}
