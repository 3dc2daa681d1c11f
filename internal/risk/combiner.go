package risk

import (
	"context"
	"fmt"
	"sort"

	"github.com/ZanzyTHEbar/project-risk-radar/internal/config"
)

// topFactorCount bounds how many factors feed the insight summary and
// the notification payload.
const topFactorCount = 5

// InsightSummary is the structured input handed to the summarizer
// collaborator.
type InsightSummary struct {
	OverallScore float64
	Level        Level
	TopFactors   []Factor
	StaticScore  float64
	NewsScore    float64
}

// Summarizer generates free-text insight from a combined assessment.
// The returned text is attached as-is; an error aborts the combine.
type Summarizer interface {
	Summarize(ctx context.Context, summary InsightSummary) (string, error)
}

// Combiner merges the static and news stage assessments into the
// overall result via a fixed weighted sum.
type Combiner struct {
	weights    config.RiskConfig
	classifier Classifier
	summarizer Summarizer
}

// NewCombiner builds a combiner from the configured weights and the
// insight collaborator.
func NewCombiner(cfg config.RiskConfig, classifier Classifier, summarizer Summarizer) *Combiner {
	return &Combiner{weights: cfg, classifier: classifier, summarizer: summarizer}
}

// Combine computes the weighted overall score, merges and re-sorts the
// underlying factors, and attaches insight text from the summarizer.
// The sort is stable and descending by score, so ties keep their
// static-before-news concatenation order. Summarizer failure is
// returned to the caller, never replaced with a default.
func (c *Combiner) Combine(ctx context.Context, static, news Assessment) (CombinedAssessment, error) {
	overallScore := round2(static.Score*c.weights.StaticWeight + news.Score*c.weights.NewsWeight)
	level := c.classifier.Classify(overallScore)

	factors := make([]Factor, 0, len(static.Factors)+len(news.Factors))
	factors = append(factors, static.Factors...)
	factors = append(factors, news.Factors...)
	sort.SliceStable(factors, func(i, j int) bool {
		return factors[i].Score > factors[j].Score
	})

	insights, err := c.summarizer.Summarize(ctx, InsightSummary{
		OverallScore: overallScore,
		Level:        level,
		TopFactors:   TopFactors(factors, topFactorCount),
		StaticScore:  static.Score,
		NewsScore:    news.Score,
	})
	if err != nil {
		return CombinedAssessment{}, fmt.Errorf("generate risk insights: %w", err)
	}

	return CombinedAssessment{
		Assessment: Assessment{
			Factors: factors,
			Score:   overallScore,
			Level:   level,
		},
		Insights:    insights,
		StaticScore: static.Score,
		NewsScore:   news.Score,
	}, nil
}

// TopFactors returns at most n leading factors without copying the
// underlying array further than needed.
func TopFactors(factors []Factor, n int) []Factor {
	if len(factors) <= n {
		return factors
	}
	return factors[:n]
}
