// Package llm adapts the OpenAI chat completion API into the two
// collaborator roles the pipeline consumes: narrative scoring of news
// headlines and free-text insight generation. All free-text handling
// stays inside this adapter; callers only see typed results or errors.
package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"

	"github.com/ZanzyTHEbar/project-risk-radar/internal/config"
	apperrors "github.com/ZanzyTHEbar/project-risk-radar/internal/errors"
	"github.com/ZanzyTHEbar/project-risk-radar/internal/monitoring"
	"github.com/ZanzyTHEbar/project-risk-radar/internal/news"
	"github.com/ZanzyTHEbar/project-risk-radar/internal/resilience"
	"github.com/ZanzyTHEbar/project-risk-radar/internal/risk"
	"github.com/ZanzyTHEbar/project-risk-radar/internal/types"
)

const apiName = "openai"

// Client is the OpenAI-backed collaborator. Calls are paced with a
// rate limiter and guarded by retry plus a circuit breaker; every
// completed call is fed into the external-call accounting.
type Client struct {
	api     *openai.Client
	model   string
	limiter *rate.Limiter
	breaker *resilience.CircuitBreaker
	retry   resilience.RetryConfig
	logger  *monitoring.Logger
	metrics *monitoring.Metrics
}

// NewClient builds the collaborator client from configuration. metrics
// may be nil, in which case calls are logged but not counted.
func NewClient(cfg config.OpenAIConfig, logger *monitoring.Logger, metrics *monitoring.Metrics) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, apperrors.NewConfigurationError("OPENAI_API_KEY not set", nil)
	}
	if logger == nil {
		logger = &monitoring.Logger{Logger: slog.Default()}
	}

	model := cfg.Model
	if model == "" {
		model = "gpt-4o-mini"
		logger.Warn("OPENAI_MODEL not set, defaulting to gpt-4o-mini")
	}

	rps := cfg.RateLimit
	if rps <= 0 {
		rps = 2
	}

	retryCfg := resilience.DefaultRetryConfig()
	retryCfg.Retryable = apperrors.IsRetryableError

	return &Client{
		api:     openai.NewClient(cfg.APIKey),
		model:   model,
		limiter: rate.NewLimiter(rate.Limit(rps), 1),
		breaker: resilience.NewCircuitBreaker(resilience.CircuitBreakerConfig{}),
		retry:   retryCfg,
		logger:  logger,
		metrics: metrics,
	}, nil
}

// itemScorePayload is the strict JSON contract the scoring prompt
// requests. Score is a pointer so a missing field is distinguishable
// from zero.
type itemScorePayload struct {
	Score       *float64 `json:"score"`
	RiskLevel   string   `json:"risk_level"`
	Explanation string   `json:"explanation"`
}

// ScoreNewsItem asks the model to rate one headline's risk impact on
// the project between 0 and 100. Output failing the structured
// contract comes back as a malformed-output error so the caller can
// drop the item.
func (c *Client) ScoreNewsItem(ctx context.Context, project types.ProjectAttributes, item types.NewsItem) (news.ItemScore, error) {
	prompt := fmt.Sprintf(`Analyze the following news headline and determine its risk impact on a project with these details:
- Project location: %s
- Project size: %s
- Technology: %s

News headline: %q from %s

Assign a risk score from 0-100, where 0-39 is low, 40-69 is medium and 70-100 is high risk impact.

Respond with a JSON object of the form {"score": <number>, "risk_level": "<Low|Medium|High>", "explanation": "<brief explanation>"}.`,
		orUnknown(project.ProjectLocation),
		orUnknown(project.ProjectSize),
		orUnknown(project.Technology),
		item.Title,
		item.Source,
	)

	raw, err := c.complete(ctx, "score_news_item",
		"You are an expert in identifying emerging risks from global news sources that might impact ongoing projects.",
		prompt, true)
	if err != nil {
		return news.ItemScore{}, err
	}

	var payload itemScorePayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return news.ItemScore{}, apperrors.NewMalformedOutputError(apiName, fmt.Sprintf("invalid JSON: %v", err))
	}
	if payload.Score == nil {
		return news.ItemScore{}, apperrors.NewMalformedOutputError(apiName, "missing score field")
	}
	if *payload.Score < 0 || *payload.Score > 100 {
		return news.ItemScore{}, apperrors.NewMalformedOutputError(apiName, fmt.Sprintf("score %v out of range", *payload.Score))
	}
	if payload.Explanation == "" {
		return news.ItemScore{}, apperrors.NewMalformedOutputError(apiName, "missing explanation field")
	}

	return news.ItemScore{Score: *payload.Score, Explanation: payload.Explanation}, nil
}

// Summarize generates insight text from the combined assessment. The
// returned text is passed through untouched; errors propagate to the
// caller.
func (c *Client) Summarize(ctx context.Context, summary risk.InsightSummary) (string, error) {
	var factors strings.Builder
	for _, f := range summary.TopFactors {
		fmt.Fprintf(&factors, "- %s: %s\n", f.Name, f.Description)
	}

	prompt := fmt.Sprintf(`As a risk management expert, provide insights and recommendations based on the following project risk analysis:

Overall Risk Score: %.2f
Risk Level: %s

Top Risk Factors:
%s
Static Risk Score: %.2f
News-based Risk Score: %.2f

Please provide:
1. A brief summary of the key risk drivers
2. 2-3 specific recommendations to mitigate the identified risks
3. Potential impact if these risks are not addressed

Keep your response concise and actionable.`,
		summary.OverallScore,
		summary.Level,
		factors.String(),
		summary.StaticScore,
		summary.NewsScore,
	)

	return c.complete(ctx, "summarize",
		"You are a sophisticated risk analyst capable of weighing various risk factors to determine overall project risk levels.",
		prompt, false)
}

func (c *Client) complete(ctx context.Context, operation, system, prompt string, jsonOutput bool) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}

	req := openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	}
	if jsonOutput {
		req.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	var content string
	start := time.Now()

	err := resilience.Retry(ctx, c.retry, func() error {
		return c.breaker.Call(func() error {
			resp, callErr := c.api.CreateChatCompletion(ctx, req)
			if callErr != nil {
				return apperrors.NewExternalAPIError(apiName, callErr)
			}
			if len(resp.Choices) == 0 {
				return apperrors.NewMalformedOutputError(apiName, "no choices returned")
			}
			content = resp.Choices[0].Message.Content
			return nil
		})
	})

	c.logger.ExternalAPILogger(apiName, operation, time.Since(start), err == nil)
	if c.metrics != nil {
		c.metrics.RecordExternalAPICall(apiName, err == nil)
	}
	if err != nil {
		return "", err
	}
	return content, nil
}

func orUnknown(v string) string {
	if v == "" {
		return "Unknown"
	}
	return v
}
