package pipeline

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ZanzyTHEbar/project-risk-radar/internal/config"
	"github.com/ZanzyTHEbar/project-risk-radar/internal/monitoring"
	"github.com/ZanzyTHEbar/project-risk-radar/internal/news"
	"github.com/ZanzyTHEbar/project-risk-radar/internal/notify"
	"github.com/ZanzyTHEbar/project-risk-radar/internal/risk"
	"github.com/ZanzyTHEbar/project-risk-radar/internal/types"
)

type fixedScorer struct{ score float64 }

func (f fixedScorer) ScoreNewsItem(_ context.Context, _ types.ProjectAttributes, _ types.NewsItem) (news.ItemScore, error) {
	return news.ItemScore{Score: f.score, Explanation: "fixed verdict"}, nil
}

type fixedSummarizer struct{ text string }

func (f fixedSummarizer) Summarize(_ context.Context, _ risk.InsightSummary) (string, error) {
	return f.text, nil
}

type recordingDispatcher struct{ calls int }

func (d *recordingDispatcher) Send(_ context.Context, _, _, _ string) error {
	d.calls++
	return nil
}

func newTestPipeline(newsScore float64, dispatcher notify.Dispatcher) *Pipeline {
	cfg := config.DefaultRiskConfig()
	classifier := risk.NewClassifier(cfg)

	return New(
		risk.NewStaticScorer(classifier),
		news.NewAnalyzer(fixedScorer{score: newsScore}, classifier, nil),
		risk.NewCombiner(cfg, classifier, fixedSummarizer{text: "stable insights"}),
		notify.NewGate(dispatcher),
		monitoring.NewMetrics(),
	)
}

func highRiskProject() types.ProjectAttributes {
	return types.ProjectAttributes{
		ProjectID:           "P12345",
		ProjectName:         "New Solar Power Plant",
		ProjectLocation:     "Middle East",
		ProjectSize:         "75",
		Technology:          "new solar panel technology",
		EmployeeResignation: "no",
		MissedMilestone:     "yes",
		BudgetProblem:       "yes",
		ProjectManagerEmail: "pm@example.com",
	}
}

func TestAnalyzeEndToEnd(t *testing.T) {
	dispatcher := &recordingDispatcher{}
	p := newTestPipeline(90, dispatcher)

	feed := []types.NewsItem{
		{Title: "New tariff imposed on steel imports", Source: "reuters.com"},
		{Title: "Local weather forecast", Source: "bbc.com"},
	}

	result, err := p.Analyze(context.Background(), highRiskProject(), feed)
	require.NoError(t, err)

	// Static: 85, 85, 85, 30, 85, 85 (technology contains "new").
	assert.Equal(t, 75.83, result.Static.Score)
	assert.Equal(t, risk.LevelHigh, result.Static.Level)

	require.Len(t, result.News.Factors, 1)
	assert.Equal(t, 90.0, result.News.Score)

	// 75.83*0.6 + 90*0.4 = 81.5
	assert.Equal(t, 81.5, result.Overall.Score)
	assert.Equal(t, risk.LevelHigh, result.Overall.Level)
	assert.Equal(t, "stable insights", result.Overall.Insights)

	// Factors merged and sorted descending.
	require.NotEmpty(t, result.Overall.Factors)
	for i := 1; i < len(result.Overall.Factors); i++ {
		assert.GreaterOrEqual(t, result.Overall.Factors[i-1].Score, result.Overall.Factors[i].Score)
	}

	assert.True(t, result.Notification.Sent)
	assert.Equal(t, 1, dispatcher.calls)
}

func TestAnalyzeLowRiskSkipsNotification(t *testing.T) {
	dispatcher := &recordingDispatcher{}
	p := newTestPipeline(10, dispatcher)

	project := types.ProjectAttributes{
		ProjectName:         "Warehouse",
		ProjectLocation:     "UK",
		ProjectSize:         "10",
		ProjectManagerEmail: "pm@example.com",
	}

	result, err := p.Analyze(context.Background(), project, nil)
	require.NoError(t, err)

	assert.Equal(t, risk.LevelLow, result.Overall.Level)
	assert.False(t, result.Notification.Sent)
	assert.Zero(t, dispatcher.calls)
}

func TestAnalyzeEmptyFeedSkipsScoring(t *testing.T) {
	p := newTestPipeline(90, &recordingDispatcher{})

	result, err := p.Analyze(context.Background(), highRiskProject(), nil)
	require.NoError(t, err)

	assert.Empty(t, result.News.Factors)
	assert.Equal(t, 0.0, result.News.Score)
	// 75.83*0.6 + 0*0.4 = 45.5
	assert.Equal(t, 45.5, result.Overall.Score)
	assert.Equal(t, risk.LevelMedium, result.Overall.Level)
}

func TestAnalyzeIsDeterministic(t *testing.T) {
	feed := []types.NewsItem{
		{Title: "tariff dispute escalates", Source: "reuters.com"},
		{Title: "currency controls announced", Source: "ft.com"},
	}

	run := func() *Result {
		p := newTestPipeline(55, &recordingDispatcher{})
		result, err := p.Analyze(context.Background(), highRiskProject(), feed)
		require.NoError(t, err)
		// Timestamps vary between runs; everything else must not.
		result.Notification.Timestamp = ""
		return result
	}

	first, err := json.Marshal(run())
	require.NoError(t, err)
	second, err := json.Marshal(run())
	require.NoError(t, err)

	assert.JSONEq(t, string(first), string(second))
}
