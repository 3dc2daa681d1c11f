package database

import (
	"fmt"
)

// Repository handles history persistence.
type Repository struct {
	db *DB
}

// NewRepository creates a repository over the given database.
func NewRepository(db *DB) *Repository {
	return &Repository{db: db}
}

// SaveAssessment stores one completed analysis.
func (r *Repository) SaveAssessment(rec *AssessmentRecord) error {
	_, err := r.db.Exec(`
		INSERT INTO assessments (id, project_id, project_name, static_score, news_score, overall_score, risk_level, factors_json, insights, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, rec.ID, rec.ProjectID, rec.ProjectName, rec.StaticScore, rec.NewsScore, rec.OverallScore, rec.RiskLevel, rec.FactorsJSON, rec.Insights, rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save assessment: %w", err)
	}
	return nil
}

// SaveNotification stores one gate outcome.
func (r *Repository) SaveNotification(rec *NotificationRecord) error {
	_, err := r.db.Exec(`
		INSERT INTO notifications (id, assessment_id, recipient, sent, reason, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, rec.ID, rec.AssessmentID, rec.Recipient, rec.Sent, rec.Reason, rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save notification: %w", err)
	}
	return nil
}

// ListRecentAssessments returns up to limit assessments, newest first.
func (r *Repository) ListRecentAssessments(limit int) ([]AssessmentRecord, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	rows, err := r.db.Query(`
		SELECT id, project_id, project_name, static_score, news_score, overall_score, risk_level, factors_json, insights, created_at
		FROM assessments
		ORDER BY created_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query assessments: %w", err)
	}
	defer rows.Close()

	records := make([]AssessmentRecord, 0, limit)
	for rows.Next() {
		var rec AssessmentRecord
		if err := rows.Scan(
			&rec.ID, &rec.ProjectID, &rec.ProjectName,
			&rec.StaticScore, &rec.NewsScore, &rec.OverallScore,
			&rec.RiskLevel, &rec.FactorsJSON, &rec.Insights, &rec.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan assessment: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// SaveProjectDocument stores an indexed document record.
func (r *Repository) SaveProjectDocument(rec *ProjectDocument) error {
	_, err := r.db.Exec(`
		INSERT INTO project_documents (id, project_id, path, text_length, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, rec.ID, rec.ProjectID, rec.Path, rec.TextLength, rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save project document: %w", err)
	}
	return nil
}

// HasIndexedDocument reports whether a project has any indexed
// document. Informational only; it never alters scores.
func (r *Repository) HasIndexedDocument(projectID string) (bool, error) {
	var count int
	err := r.db.QueryRow(`
		SELECT COUNT(1) FROM project_documents WHERE project_id = ?
	`, projectID).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to query project documents: %w", err)
	}
	return count > 0, nil
}
