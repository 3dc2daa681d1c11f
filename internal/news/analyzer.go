package news

import (
	"context"
	"log/slog"

	"github.com/ZanzyTHEbar/project-risk-radar/internal/risk"
	"github.com/ZanzyTHEbar/project-risk-radar/internal/types"
)

// maxScoredItems bounds how many filtered headlines are submitted to
// the narrative scorer per analysis, to cap external-call cost.
const maxScoredItems = 10

// ItemScore is the structured verdict the narrative scorer returns for
// one headline. The level is re-derived locally from the score, so the
// collaborator's own label is never trusted.
type ItemScore struct {
	Score       float64
	Explanation string
}

// ItemScorer is the external narrative-risk collaborator. A returned
// error marks the single item as dropped; it never aborts the batch.
type ItemScorer interface {
	ScoreNewsItem(ctx context.Context, project types.ProjectAttributes, item types.NewsItem) (ItemScore, error)
}

// Result carries the stage assessment plus per-batch accounting for
// observability.
type Result struct {
	Assessment risk.Assessment
	Filtered   int
	Scored     int
	Dropped    int
}

// Analyzer runs the news stage: relevance filtering followed by
// best-effort narrative scoring of the surviving headlines.
type Analyzer struct {
	scorer     ItemScorer
	classifier risk.Classifier
	logger     *slog.Logger
}

// NewAnalyzer builds the news stage around the given scorer.
func NewAnalyzer(scorer ItemScorer, classifier risk.Classifier, logger *slog.Logger) *Analyzer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Analyzer{scorer: scorer, classifier: classifier, logger: logger}
}

// Analyze filters the feed against the project's keywords and scores
// the top matches. Items whose scoring call fails are dropped and
// counted; if nothing survives filtering the scorer is never invoked
// and a zero, Low, empty assessment comes back.
func (a *Analyzer) Analyze(ctx context.Context, project types.ProjectAttributes, feed []types.NewsItem) Result {
	relevant := FilterRelevant(feed, BuildKeywords(project))
	if len(relevant) == 0 {
		return Result{Assessment: risk.Aggregate(a.classifier, nil)}
	}

	candidates := relevant
	if len(candidates) > maxScoredItems {
		candidates = candidates[:maxScoredItems]
	}

	factors := make([]risk.Factor, 0, len(candidates))
	dropped := 0

	for _, item := range candidates {
		verdict, err := a.scorer.ScoreNewsItem(ctx, project, item)
		if err != nil {
			dropped++
			a.logger.Warn("dropping news item after scoring failure",
				"title", item.Title,
				"source", item.Source,
				"error", err,
			)
			continue
		}

		factors = append(factors, risk.Factor{
			Name:        "News Risk",
			Value:       item.Title,
			Score:       verdict.Score,
			Level:       a.classifier.Classify(verdict.Score),
			Description: verdict.Explanation,
			Source:      item.Source,
			Link:        item.Link,
		})
	}

	return Result{
		Assessment: risk.Aggregate(a.classifier, factors),
		Filtered:   len(relevant),
		Scored:     len(factors),
		Dropped:    dropped,
	}
}
