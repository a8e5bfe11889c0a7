// Package storage keeps generated documents on the local filesystem.
package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/garyjia/expense-companion/internal/application/port"
)

// ErrPathEscapes is returned for paths that resolve outside the base directory
var ErrPathEscapes = errors.New("path escapes base directory")

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9_]+`)

// DocumentStore implements port.FileStorage rooted at one directory.
// All paths given to it are relative to that directory.
type DocumentStore struct {
	baseDir string
	logger  *zap.Logger
}

// NewDocumentStore creates a DocumentStore rooted at baseDir
func NewDocumentStore(baseDir string, logger *zap.Logger) *DocumentStore {
	return &DocumentStore{
		baseDir: baseDir,
		logger:  logger,
	}
}

// Save writes content, creating parent directories as needed
func (s *DocumentStore) Save(ctx context.Context, path string, content []byte) error {
	fullPath, err := s.resolve(path)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		s.logger.Error("Failed to create parent directories", zap.String("path", fullPath), zap.Error(err))
		return fmt.Errorf("failed to create directories: %w", err)
	}
	if err := os.WriteFile(fullPath, content, 0644); err != nil {
		s.logger.Error("Failed to write document", zap.String("path", fullPath), zap.Error(err))
		return fmt.Errorf("failed to write file: %w", err)
	}

	s.logger.Debug("Document saved", zap.String("path", fullPath), zap.Int("size", len(content)))
	return nil
}

func (s *DocumentStore) Read(ctx context.Context, path string) ([]byte, error) {
	fullPath, err := s.resolve(path)
	if err != nil {
		return nil, err
	}
	content, err := os.ReadFile(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return content, nil
}

func (s *DocumentStore) Exists(ctx context.Context, path string) bool {
	fullPath, err := s.resolve(path)
	if err != nil {
		return false
	}
	info, err := os.Stat(fullPath)
	return err == nil && !info.IsDir()
}

// Delete removes a document. Deleting a missing document succeeds.
func (s *DocumentStore) Delete(ctx context.Context, path string) error {
	fullPath, err := s.resolve(path)
	if err != nil {
		return err
	}
	if err := os.Remove(fullPath); err != nil && !os.IsNotExist(err) {
		s.logger.Error("Failed to delete document", zap.String("path", fullPath), zap.Error(err))
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

func (s *DocumentStore) GetFullPath(relativePath string) string {
	return filepath.Join(s.baseDir, relativePath)
}

// resolve joins path onto the base directory and rejects anything outside it
func (s *DocumentStore) resolve(path string) (string, error) {
	absBase, err := filepath.Abs(s.baseDir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve base path: %w", err)
	}
	absPath, err := filepath.Abs(s.GetFullPath(path))
	if err != nil {
		return "", fmt.Errorf("failed to resolve path: %w", err)
	}

	rel, err := filepath.Rel(absBase, absPath)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrPathEscapes, path)
	}
	return absPath, nil
}

// SafeName reduces s to letters, digits, hyphens and underscores so it can be
// used as a single path element. Runs of other characters become one hyphen.
func SafeName(s string) string {
	name := unsafeChars.ReplaceAllString(strings.TrimSpace(s), "-")
	name = strings.Trim(name, "-")
	if name == "" {
		return "untitled"
	}
	return name
}

var _ port.FileStorage = (*DocumentStore)(nil)
