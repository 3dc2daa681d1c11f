// Package docs handles project document indexing. Indexing is
// informational: the pipeline reports whether a document is available
// but never lets it influence a score.
package docs

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/project-risk-radar/internal/database"
)

// Extractor pulls plain text out of a project document. PDF or other
// format support plugs in behind this interface.
type Extractor interface {
	ExtractText(path string) (string, error)
}

// FileExtractor reads plain-text documents from disk.
type FileExtractor struct{}

// ExtractText reads a .txt or .md file.
func (FileExtractor) ExtractText(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".md":
	default:
		return "", fmt.Errorf("unsupported document type %q", filepath.Ext(path))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read document: %w", err)
	}
	return string(data), nil
}

// Indexer extracts document text and records its availability.
type Indexer struct {
	extractor Extractor
	repo      *database.Repository
	logger    *slog.Logger
}

// NewIndexer builds an indexer over the given extractor and repository.
func NewIndexer(extractor Extractor, repo *database.Repository, logger *slog.Logger) *Indexer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Indexer{extractor: extractor, repo: repo, logger: logger}
}

// IndexProjectDocument extracts text and records the document for the
// project. Returns false without error when the document is missing or
// empty.
func (ix *Indexer) IndexProjectDocument(projectID, path string) (bool, error) {
	if path == "" {
		return false, nil
	}
	if _, err := os.Stat(path); err != nil {
		return false, nil
	}

	text, err := ix.extractor.ExtractText(path)
	if err != nil {
		return false, err
	}
	if text == "" {
		return false, nil
	}

	rec := database.NewProjectDocument(projectID, path, len(text))
	if err := ix.repo.SaveProjectDocument(rec); err != nil {
		return false, err
	}

	ix.logger.Info("Project document indexed",
		"project_id", projectID,
		"path", path,
		"text_length", len(text),
	)
	return true, nil
}
