package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"filedrop/internal/common"
	"filedrop/internal/domain/model"
	"filedrop/internal/domain/repository"
	"filedrop/internal/platform/metrics"

	"github.com/google/uuid"
)

type FileService struct {
	fileRepo repository.FileRepository
	metrics  *metrics.Manager
}

func NewFileService(fileRepo repository.FileRepository, m *metrics.Manager) *FileService {
	return &FileService{fileRepo: fileRepo, metrics: m}
}

// Save stores the raw bytes under a fresh storage name and returns that name
// for the caller to append to the owning entity's file list.
func (s *FileService) Save(ctx context.Context, originalName string, mimeType *string, data []byte) (string, error) {
	if originalName == "" {
		return "", common.Errorf("file name is required: %w", common.ErrValidation)
	}

	file := &model.StoredFile{
		Filename:     storageName(originalName),
		OriginalName: originalName,
		MimeType:     mimeType,
		Size:         int64(len(data)),
		Data:         data,
	}
	if err := s.fileRepo.SaveFile(ctx, file); err != nil {
		return "", common.Errorf("failed to save file: %w", err)
	}

	s.metrics.ObserveFileStored(file.Size)
	return file.Filename, nil
}

func (s *FileService) Get(ctx context.Context, name string) (*model.StoredFile, error) {
	return s.fileRepo.FindFileByName(ctx, name)
}

// storageName builds `<unixMillis>-<random infix>_<originalName>`. The random
// infix keeps same-named uploads within one millisecond from colliding, and
// the prefix contains no underscore so OriginalName can split on the first
// one.
func storageName(originalName string) string {
	infix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("%d-%s_%s", time.Now().UnixMilli(), infix, originalName)
}

// OriginalName recovers the uploaded file name from a storage name: the
// substring after the first underscore, best effort. Used for the
// Content-Disposition header on downloads.
func OriginalName(storageName string) string {
	if i := strings.Index(storageName, "_"); i >= 0 {
		return storageName[i+1:]
	}
	return storageName
}
