// Package pipeline orchestrates one risk analysis request: the static
// and news stages run independently, their results meet in the
// combiner, and the notification gate acts on the combined outcome.
package pipeline

import (
	"context"

	"github.com/ZanzyTHEbar/project-risk-radar/internal/monitoring"
	"github.com/ZanzyTHEbar/project-risk-radar/internal/news"
	"github.com/ZanzyTHEbar/project-risk-radar/internal/notify"
	"github.com/ZanzyTHEbar/project-risk-radar/internal/risk"
	"github.com/ZanzyTHEbar/project-risk-radar/internal/types"
)

// Result is the full outcome of one analysis request. Everything in it
// is created for this request and discarded afterwards.
type Result struct {
	Project          types.ProjectAttributes `json:"project_data"`
	Static           risk.Assessment         `json:"static_risk_analysis"`
	News             risk.Assessment         `json:"news_risk_analysis"`
	NewsItemsDropped int                     `json:"news_items_dropped"`
	Overall          risk.CombinedAssessment `json:"overall_risk"`
	Notification     notify.Decision         `json:"notification"`

	// DocumentIndexed reports whether supporting documentation is on
	// file for the project. Informational only; it never moves a score.
	// Populated by the server from the history store, not by the
	// pipeline itself.
	DocumentIndexed bool `json:"document_indexed"`
}

// Pipeline wires the four stages together.
type Pipeline struct {
	static   *risk.StaticScorer
	news     *news.Analyzer
	combiner *risk.Combiner
	gate     *notify.Gate
	metrics  *monitoring.Metrics
}

// New builds a pipeline from its stages.
func New(static *risk.StaticScorer, newsAnalyzer *news.Analyzer, combiner *risk.Combiner, gate *notify.Gate, metrics *monitoring.Metrics) *Pipeline {
	return &Pipeline{
		static:   static,
		news:     newsAnalyzer,
		combiner: combiner,
		gate:     gate,
		metrics:  metrics,
	}
}

// Analyze runs the full pipeline for one project. The static and news
// branches have no data dependency on each other and run concurrently;
// they join at the combiner. A summarizer failure aborts the run.
func (p *Pipeline) Analyze(ctx context.Context, project types.ProjectAttributes, feed []types.NewsItem) (*Result, error) {
	newsDone := make(chan news.Result, 1)
	go func() {
		newsDone <- p.news.Analyze(ctx, project, feed)
	}()

	staticAssessment := p.static.Analyze(project)
	newsResult := <-newsDone

	overall, err := p.combiner.Combine(ctx, staticAssessment, newsResult.Assessment)
	if err != nil {
		return nil, err
	}

	decision := p.gate.Decide(ctx,
		overall.Level,
		project.ProjectManagerEmail,
		project.ProjectName,
		overall.Score,
		overall.Factors,
	)

	if p.metrics != nil {
		p.metrics.RecordAnalysis(overall.Level.String(), newsResult.Filtered, newsResult.Scored, newsResult.Dropped)
		p.metrics.RecordNotification(decision.Sent)
	}

	return &Result{
		Project:          project,
		Static:           staticAssessment,
		News:             newsResult.Assessment,
		NewsItemsDropped: newsResult.Dropped,
		Overall:          overall,
		Notification:     decision,
	}, nil
}
