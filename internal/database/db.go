package database

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// DB wraps the sqlite connection used for assessment history.
type DB struct {
	*sql.DB
}

// NewDB opens (creating if needed) the history database under dataDir.
func NewDB(dataDir string) (*DB, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "risk_radar.db")
	connStr := fmt.Sprintf("%s?_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)&_pragma=foreign_keys(ON)&_pragma=busy_timeout(5000)", dbPath)

	db, err := sql.Open("sqlite3", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	wrapped := &DB{DB: db}
	if err := wrapped.initSchema(); err != nil {
		db.Close()
		return nil, err
	}

	slog.Info("Database initialized", "path", dbPath)
	return wrapped, nil
}

func (db *DB) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS assessments (
		id TEXT PRIMARY KEY,
		project_id TEXT NOT NULL,
		project_name TEXT NOT NULL,
		static_score REAL NOT NULL,
		news_score REAL NOT NULL,
		overall_score REAL NOT NULL,
		risk_level TEXT NOT NULL,
		factors_json TEXT NOT NULL,
		insights TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_assessments_project ON assessments(project_id);
	CREATE INDEX IF NOT EXISTS idx_assessments_created ON assessments(created_at);

	CREATE TABLE IF NOT EXISTS notifications (
		id TEXT PRIMARY KEY,
		assessment_id TEXT NOT NULL,
		recipient TEXT,
		sent INTEGER NOT NULL,
		reason TEXT,
		created_at TIMESTAMP NOT NULL,
		FOREIGN KEY (assessment_id) REFERENCES assessments(id)
	);

	CREATE TABLE IF NOT EXISTS project_documents (
		id TEXT PRIMARY KEY,
		project_id TEXT NOT NULL,
		path TEXT NOT NULL,
		text_length INTEGER NOT NULL,
		created_at TIMESTAMP NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_documents_project ON project_documents(project_id);
	`

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}
	return nil
}
