package file

import (
	"context"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ashishu703/facial-attendence-backend/internal/pkg/storage"
)

// FileService stores check-in snapshots and hands back a serving URL.
type FileService interface {
	UploadSnapshot(ctx context.Context, employeeID string, date time.Time, file io.Reader, filename string) (string, error)
	DeleteSnapshot(ctx context.Context, path string) error
}

type FileServiceImpl struct {
	storage storage.FileStorage
}

func NewFileService(fileStorage storage.FileStorage) FileService {
	return &FileServiceImpl{storage: fileStorage}
}

// UploadSnapshot stores a face snapshot under a per-employee, per-day prefix.
// The stored name is a fresh UUID; the client filename only contributes its
// extension.
func (s *FileServiceImpl) UploadSnapshot(ctx context.Context, employeeID string, date time.Time, file io.Reader, filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	contentType := mime.TypeByExtension(ext)
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	path := fmt.Sprintf("snapshots/%s/%s/%s%s",
		date.Format("2006-01-02"), employeeID, uuid.New().String(), ext)

	storedPath, err := s.storage.Upload(ctx, file, path, contentType)
	if err != nil {
		return "", fmt.Errorf("failed to upload snapshot: %w", err)
	}

	url, err := s.storage.GetURL(ctx, storedPath, 0)
	if err != nil {
		return "", fmt.Errorf("failed to build snapshot url: %w", err)
	}

	return url, nil
}

func (s *FileServiceImpl) DeleteSnapshot(ctx context.Context, path string) error {
	if err := s.storage.Delete(ctx, path); err != nil {
		return fmt.Errorf("failed to delete snapshot: %w", err)
	}
	return nil
}
