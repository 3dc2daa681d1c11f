package monitoring

import (
	"context"
	"log/slog"
	"os"
	"time"
)

// Logger provides structured JSON logging with domain helpers.
type Logger struct {
	*slog.Logger
}

// NewLogger creates the application logger.
func NewLogger() *Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.Attr{
					Key:   "timestamp",
					Value: slog.StringValue(a.Value.Time().Format(time.RFC3339)),
				}
			}
			return a
		},
	})

	return &Logger{Logger: slog.New(handler)}
}

// RequestLogger logs HTTP request details.
func (l *Logger) RequestLogger(method, path, ip string, statusCode int, duration time.Duration) {
	l.Info("HTTP Request",
		"method", method,
		"path", path,
		"ip", ip,
		"status_code", statusCode,
		"duration_ms", duration.Milliseconds(),
	)
}

// AnalysisLogger logs one completed risk analysis.
func (l *Logger) AnalysisLogger(projectName string, staticScore, newsScore, overallScore float64, level string, duration time.Duration) {
	l.Info("Risk Analysis Completed",
		"project", projectName,
		"static_score", staticScore,
		"news_score", newsScore,
		"overall_score", overallScore,
		"risk_level", level,
		"duration_ms", duration.Milliseconds(),
	)
}

// ExternalAPILogger logs external collaborator calls.
func (l *Logger) ExternalAPILogger(apiName, operation string, duration time.Duration, success bool) {
	level := slog.LevelInfo
	if !success {
		level = slog.LevelWarn
	}

	l.Log(context.Background(), level, "External Collaborator Call",
		"api_name", apiName,
		"operation", operation,
		"duration_ms", duration.Milliseconds(),
		"success", success,
	)
}

// NotificationLogger logs the outcome of a notification decision.
func (l *Logger) NotificationLogger(projectName string, sent bool, reason string) {
	if sent {
		l.Info("Risk Notification Sent", "project", projectName)
		return
	}
	l.Info("Risk Notification Suppressed", "project", projectName, "reason", reason)
}
