package service

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"bouncearound.com/daycare/internal/modules/upload/dto"
	"bouncearound.com/daycare/pkg/apperror"
	"bouncearound.com/daycare/pkg/storage"
	"bouncearound.com/daycare/pkg/validator"
	"github.com/rs/zerolog/log"
)

const (
	FolderChildren   = "children"
	FolderPickups    = "pickups"
	FolderSignatures = "signatures"
	FolderIncidents  = "incidents"
	FolderDocuments  = "documents"
	FolderPhotos     = "photos"
)

var Folders = []string{FolderChildren, FolderPickups, FolderSignatures, FolderIncidents, FolderDocuments, FolderPhotos}

type Policy struct {
	MaxBytes          int64
	AllowedExtensions []string
}

// UploadService validates files against the policy and hands them to FileStorage.
type UploadService interface {
	Upload(ctx context.Context, folder string, file *multipart.FileHeader) (*dto.UploadResponse, error)
	// Remove deletes a stored file; failures are logged and swallowed.
	Remove(ctx context.Context, fileURL string)
}

type uploadService struct {
	storage storage.FileStorage
	policy  Policy
}

// NewUploadService accepts a nil storage; uploads then fail with 503.
func NewUploadService(fileStorage storage.FileStorage, policy Policy) UploadService {
	return &uploadService{
		storage: fileStorage,
		policy:  policy,
	}
}

func (s *uploadService) check(file *multipart.FileHeader) error {
	if s.policy.MaxBytes > 0 && file.Size > s.policy.MaxBytes {
		return apperror.BadRequest(fmt.Sprintf("File exceeds the maximum size of %d MB", s.policy.MaxBytes>>20))
	}

	if len(s.policy.AllowedExtensions) == 0 {
		return nil
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	for _, allowed := range s.policy.AllowedExtensions {
		if ext == allowed {
			return nil
		}
	}
	return apperror.BadRequest(fmt.Sprintf("File type %q is not allowed. Allowed types: %s", ext, strings.Join(s.policy.AllowedExtensions, ", ")))
}

func (s *uploadService) Upload(ctx context.Context, folder string, file *multipart.FileHeader) (*dto.UploadResponse, error) {
	if err := validator.OneOf("folder", folder, Folders); err != nil {
		return nil, err
	}
	if err := s.check(file); err != nil {
		return nil, err
	}
	if s.storage == nil {
		return nil, apperror.Unavailable("File storage is not configured", storage.ErrNotConfigured)
	}

	f, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	url, err := s.storage.Upload(ctx, f, folder, file.Filename)
	if err != nil {
		if errors.Is(err, storage.ErrNotConfigured) {
			return nil, apperror.Unavailable("File storage is not configured", err)
		}
		return nil, err
	}

	log.Info().Str("folder", folder).Str("file", file.Filename).Int64("size", file.Size).Msg("file uploaded")
	return &dto.UploadResponse{
		URL:      url,
		FileName: file.Filename,
		Size:     file.Size,
	}, nil
}

func (s *uploadService) Remove(ctx context.Context, fileURL string) {
	if s.storage == nil || fileURL == "" {
		return
	}
	if err := s.storage.Delete(ctx, fileURL); err != nil {
		log.Warn().Err(err).Str("url", fileURL).Msg("failed to delete stored file")
	}
}
