package database

import (
	"time"

	"github.com/google/uuid"
)

// AssessmentRecord is one stored analysis run. History is
// observability only; nothing reads it back into scoring.
type AssessmentRecord struct {
	ID           string    `json:"id"`
	ProjectID    string    `json:"project_id"`
	ProjectName  string    `json:"project_name"`
	StaticScore  float64   `json:"static_score"`
	NewsScore    float64   `json:"news_score"`
	OverallScore float64   `json:"overall_score"`
	RiskLevel    string    `json:"risk_level"`
	FactorsJSON  string    `json:"factors_json"`
	Insights     string    `json:"insights"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewAssessmentRecord creates a record with a generated ID.
func NewAssessmentRecord(projectID, projectName string, staticScore, newsScore, overallScore float64, riskLevel, factorsJSON, insights string) *AssessmentRecord {
	return &AssessmentRecord{
		ID:           uuid.New().String(),
		ProjectID:    projectID,
		ProjectName:  projectName,
		StaticScore:  staticScore,
		NewsScore:    newsScore,
		OverallScore: overallScore,
		RiskLevel:    riskLevel,
		FactorsJSON:  factorsJSON,
		Insights:     insights,
		CreatedAt:    time.Now(),
	}
}

// NotificationRecord is one stored gate outcome.
type NotificationRecord struct {
	ID           string    `json:"id"`
	AssessmentID string    `json:"assessment_id"`
	Recipient    string    `json:"recipient,omitempty"`
	Sent         bool      `json:"sent"`
	Reason       string    `json:"reason,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewNotificationRecord creates a record with a generated ID.
func NewNotificationRecord(assessmentID, recipient string, sent bool, reason string) *NotificationRecord {
	return &NotificationRecord{
		ID:           uuid.New().String(),
		AssessmentID: assessmentID,
		Recipient:    recipient,
		Sent:         sent,
		Reason:       reason,
		CreatedAt:    time.Now(),
	}
}

// ProjectDocument tracks an indexed project document. Only its
// availability matters; content never feeds scoring.
type ProjectDocument struct {
	ID         string    `json:"id"`
	ProjectID  string    `json:"project_id"`
	Path       string    `json:"path"`
	TextLength int       `json:"text_length"`
	CreatedAt  time.Time `json:"created_at"`
}

// NewProjectDocument creates a record with a generated ID.
func NewProjectDocument(projectID, path string, textLength int) *ProjectDocument {
	return &ProjectDocument{
		ID:         uuid.New().String(),
		ProjectID:  projectID,
		Path:       path,
		TextLength: textLength,
		CreatedAt:  time.Now(),
	}
}
