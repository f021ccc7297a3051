package file

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/timepulse/timepulse-backend/internal/pkg/storage"
)

var ErrUnsupportedFileType = errors.New("unsupported attachment type: only pdf, jpg, jpeg, png allowed")

var leaveAttachmentExts = []string{".pdf", ".jpg", ".jpeg", ".png"}

type FileService interface {
	// UploadLeaveAttachment stores a supporting document for a leave request
	UploadLeaveAttachment(ctx context.Context, employeeID string, file io.Reader, filename string) (string, error)

	DeleteFile(ctx context.Context, path string) error
	GetFileURL(ctx context.Context, path string) (string, error)
}

type fileServiceImpl struct {
	storage storage.FileStorage
}

func NewFileService(storage storage.FileStorage) FileService {
	return &fileServiceImpl{
		storage: storage,
	}
}

// UploadLeaveAttachment uploads leave request attachment
func (s *fileServiceImpl) UploadLeaveAttachment(ctx context.Context, employeeID string, file io.Reader, filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	allowed := false
	for _, e := range leaveAttachmentExts {
		if ext == e {
			allowed = true
			break
		}
	}
	if !allowed {
		return "", ErrUnsupportedFileType
	}

	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("failed to generate attachment id: %w", err)
	}
	path := filepath.Join("leave", employeeID, id.String()+ext)

	uploadedPath, err := s.storage.Upload(ctx, file, path)
	if err != nil {
		return "", fmt.Errorf("failed to upload leave attachment: %w", err)
	}

	return uploadedPath, nil
}

// DeleteFile deletes a file
func (s *fileServiceImpl) DeleteFile(ctx context.Context, path string) error {
	return s.storage.Delete(ctx, path)
}

// GetFileURL generates URL to access file
func (s *fileServiceImpl) GetFileURL(ctx context.Context, path string) (string, error) {
	return s.storage.GetURL(ctx, path)
}
