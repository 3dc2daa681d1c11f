package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/ZanzyTHEbar/project-risk-radar/internal/config"
	"github.com/ZanzyTHEbar/project-risk-radar/internal/database"
	"github.com/ZanzyTHEbar/project-risk-radar/internal/docs"
	"github.com/ZanzyTHEbar/project-risk-radar/internal/errors"
	"github.com/ZanzyTHEbar/project-risk-radar/internal/llm"
	"github.com/ZanzyTHEbar/project-risk-radar/internal/monitoring"
	"github.com/ZanzyTHEbar/project-risk-radar/internal/news"
	"github.com/ZanzyTHEbar/project-risk-radar/internal/notify"
	"github.com/ZanzyTHEbar/project-risk-radar/internal/pipeline"
	"github.com/ZanzyTHEbar/project-risk-radar/internal/risk"
	"github.com/ZanzyTHEbar/project-risk-radar/internal/types"
)

// headlineSource fetches candidate news items when the request does
// not carry its own feed.
type headlineSource interface {
	FetchCandidateItems(ctx context.Context) []types.NewsItem
}

// historyStore persists and reads back assessment history.
type historyStore interface {
	SaveAssessment(rec *database.AssessmentRecord) error
	SaveNotification(rec *database.NotificationRecord) error
	ListRecentAssessments(limit int) ([]database.AssessmentRecord, error)
	HasIndexedDocument(projectID string) (bool, error)
}

// serverDeps bundles everything the handlers need, so tests can wire
// stub collaborators.
type serverDeps struct {
	cfg      *config.Config
	pipeline *pipeline.Pipeline
	source   headlineSource
	repo     historyStore
	indexer  *docs.Indexer
	metrics  *monitoring.Metrics
	logger   *monitoring.Logger
}

func main() {
	// .env is optional; real deployments use the environment directly.
	_ = godotenv.Load()

	logger := monitoring.NewLogger()
	slog.SetDefault(logger.Logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	db, err := database.NewDB(cfg.DataDir)
	if err != nil {
		slog.Error("Failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	repo := database.NewRepository(db)

	metrics := monitoring.NewMetrics()

	llmClient, err := llm.NewClient(cfg.OpenAI, logger, metrics)
	if err != nil {
		slog.Error("Failed to initialize LLM collaborator", "error", err)
		os.Exit(1)
	}

	classifier := risk.NewClassifier(cfg.Risk)
	staticScorer := risk.NewStaticScorer(classifier)
	newsAnalyzer := news.NewAnalyzer(llmClient, classifier, logger.Logger)
	combiner := risk.NewCombiner(cfg.Risk, classifier, llmClient)
	gate := notify.NewGate(notify.NewSMTPMailer(cfg.SMTP))

	deps := &serverDeps{
		cfg:      cfg,
		pipeline: pipeline.New(staticScorer, newsAnalyzer, combiner, gate, metrics),
		source:   news.NewScraper(cfg.Sources, logger, metrics),
		repo:     repo,
		indexer:  docs.NewIndexer(docs.FileExtractor{}, repo, logger.Logger),
		metrics:  metrics,
		logger:   logger,
	}

	r := setupRouter(deps)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		slog.Info("Server starting", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown failed", "error", err)
	}
}

func setupRouter(deps *serverDeps) *gin.Engine {
	r := gin.New()

	r.Use(requestMiddleware(deps))
	r.Use(errors.ErrorHandler())
	r.Use(errors.RecoveryHandler())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}
	r.Use(cors.New(corsConfig))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
		})
	})

	r.GET("/metrics", func(c *gin.Context) {
		c.JSON(http.StatusOK, deps.metrics.GetStats())
	})

	api := r.Group("/api/v1")
	api.POST("/analyze", deps.handleAnalyze)
	api.GET("/assessments", deps.handleListAssessments)
	api.POST("/projects/:id/document", deps.handleIndexDocument)

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

func requestMiddleware(deps *serverDeps) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		deps.metrics.IncrementRequest()

		c.Next()

		duration := time.Since(start)
		deps.metrics.RecordResponseTime(duration)
		if c.Writer.Status() >= http.StatusBadRequest {
			deps.metrics.IncrementError()
		}
		deps.logger.RequestLogger(c.Request.Method, c.Request.URL.Path, c.ClientIP(), c.Writer.Status(), duration)
	}
}

// handleAnalyze runs the full risk pipeline for one project.
//
//	@Summary	Analyze project risk
//	@Accept		json
//	@Produce	json
//	@Router		/api/v1/analyze [post]
func (deps *serverDeps) handleAnalyze(c *gin.Context) {
	var req types.AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		appErr := errors.NewValidationError("invalid analyze request", err)
		errors.LogError(c, appErr)
		c.JSON(appErr.HTTPStatus, gin.H{"error": appErr.ErrBuilder.Msg})
		return
	}

	feed := req.NewsItems
	if len(feed) == 0 && deps.source != nil {
		feed = deps.source.FetchCandidateItems(c.Request.Context())
	}

	start := time.Now()
	result, err := deps.pipeline.Analyze(c.Request.Context(), req.Project, feed)
	if err != nil {
		appErr := errors.ToAppError(err)
		errors.LogError(c, appErr)
		c.JSON(appErr.HTTPStatus, gin.H{"error": appErr.ErrBuilder.Msg, "category": appErr.Category})
		return
	}

	if deps.repo != nil && req.Project.ProjectID != "" {
		if indexed, err := deps.repo.HasIndexedDocument(req.Project.ProjectID); err == nil {
			result.DocumentIndexed = indexed
		}
	}

	deps.logger.AnalysisLogger(
		req.Project.ProjectName,
		result.Static.Score,
		result.News.Score,
		result.Overall.Score,
		result.Overall.Level.String(),
		time.Since(start),
	)
	deps.logger.NotificationLogger(req.Project.ProjectName, result.Notification.Sent, result.Notification.Reason)

	// History is observability only; persist off the request path.
	if deps.repo != nil {
		go deps.saveResult(result)
	}

	c.JSON(http.StatusOK, result)
}

func (deps *serverDeps) saveResult(result *pipeline.Result) {
	factorsJSON, err := json.Marshal(result.Overall.Factors)
	if err != nil {
		slog.Error("Failed to encode factors for history", "error", err)
		return
	}

	rec := database.NewAssessmentRecord(
		result.Project.ProjectID,
		result.Project.ProjectName,
		result.Overall.StaticScore,
		result.Overall.NewsScore,
		result.Overall.Score,
		result.Overall.Level.String(),
		string(factorsJSON),
		result.Overall.Insights,
	)
	if err := deps.repo.SaveAssessment(rec); err != nil {
		slog.Error("Failed to save assessment history", "error", err)
		return
	}

	notif := database.NewNotificationRecord(rec.ID, result.Notification.Recipient, result.Notification.Sent, result.Notification.Reason)
	if err := deps.repo.SaveNotification(notif); err != nil {
		slog.Error("Failed to save notification history", "error", err)
	}
}

// handleListAssessments returns recent assessment history.
//
//	@Summary	List recent assessments
//	@Produce	json
//	@Router		/api/v1/assessments [get]
func (deps *serverDeps) handleListAssessments(c *gin.Context) {
	limit := 20
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}

	records, err := deps.repo.ListRecentAssessments(limit)
	if err != nil {
		appErr := errors.ToAppError(err)
		errors.LogError(c, appErr)
		c.JSON(appErr.HTTPStatus, gin.H{"error": appErr.ErrBuilder.Msg})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"assessments": records,
		"count":       len(records),
	})
}

// handleIndexDocument indexes a project document. Availability is
// informational; it never changes a score.
//
//	@Summary	Index a project document
//	@Accept		json
//	@Produce	json
//	@Router		/api/v1/projects/{id}/document [post]
func (deps *serverDeps) handleIndexDocument(c *gin.Context) {
	projectID := c.Param("id")

	var req types.IndexDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		appErr := errors.NewValidationError("invalid document request", err)
		errors.LogError(c, appErr)
		c.JSON(appErr.HTTPStatus, gin.H{"error": appErr.ErrBuilder.Msg})
		return
	}

	indexed, err := deps.indexer.IndexProjectDocument(projectID, req.Path)
	if err != nil {
		appErr := errors.ToAppError(err)
		errors.LogError(c, appErr)
		c.JSON(appErr.HTTPStatus, gin.H{"error": appErr.ErrBuilder.Msg})
		return
	}

	if indexed {
		deps.metrics.RecordDocumentIndexed()
	}

	c.JSON(http.StatusOK, gin.H{
		"project_id": projectID,
		"indexed":    indexed,
	})
}
