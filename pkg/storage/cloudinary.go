package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

var ErrNotConfigured = errors.New("file storage is not configured")

// FileStorage stores uploaded photos, signatures and documents and hands
// back an opaque URL that records keep as a plain string.
type FileStorage interface {
	// Upload stores the content under folder and returns its secure URL.
	Upload(ctx context.Context, r io.Reader, folder, fileName string) (string, error)
	// Delete removes a previously uploaded file by URL.
	Delete(ctx context.Context, fileURL string) error
}

type CloudinaryOptions struct {
	URL        string
	CloudName  string
	APIKey     string
	APISecret  string
	BaseFolder string
}

type cloudinaryStorage struct {
	cld        *cloudinary.Cloudinary
	baseFolder string
}

// NewCloudinaryStorage prefers CLOUDINARY_URL and falls back to the discrete credentials.
func NewCloudinaryStorage(opts CloudinaryOptions) (FileStorage, error) {
	var (
		cld *cloudinary.Cloudinary
		err error
	)
	switch {
	case opts.URL != "":
		cld, err = cloudinary.NewFromURL(opts.URL)
	case opts.CloudName != "" && opts.APIKey != "" && opts.APISecret != "":
		cld, err = cloudinary.NewFromParams(opts.CloudName, opts.APIKey, opts.APISecret)
	default:
		return nil, ErrNotConfigured
	}
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cloudinary client: %w", err)
	}

	cld.Config.URL.Secure = true

	return &cloudinaryStorage{cld: cld, baseFolder: opts.BaseFolder}, nil
}

func (s *cloudinaryStorage) Upload(ctx context.Context, r io.Reader, folder, fileName string) (string, error) {
	if s == nil || s.cld == nil {
		return "", ErrNotConfigured
	}

	base := strings.TrimSuffix(filepath.Base(fileName), filepath.Ext(fileName))
	params := uploader.UploadParams{
		Folder:         s.folder(folder),
		PublicID:       fmt.Sprintf("%d-%s", time.Now().UnixNano(), base),
		UniqueFilename: api.Bool(true),
		Overwrite:      api.Bool(false),
		ResourceType:   "auto",
	}

	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".jpg", ".jpeg", ".png", ".heic", ".webp":
		params.Format = "webp"
		params.Transformation = "q_auto"
	}

	resp, err := s.cld.Upload.Upload(ctx, r, params)
	if err != nil {
		return "", fmt.Errorf("failed to upload file to cloudinary: %w", err)
	}
	if resp.Error.Message != "" {
		return "", fmt.Errorf("cloudinary upload rejected: %s", resp.Error.Message)
	}
	if resp.SecureURL == "" {
		return "", fmt.Errorf("cloudinary upload succeeded but secure URL is empty")
	}

	return resp.SecureURL, nil
}

func (s *cloudinaryStorage) Delete(ctx context.Context, fileURL string) error {
	if s == nil || s.cld == nil {
		return ErrNotConfigured
	}

	publicID := PublicIDFromURL(fileURL)
	if publicID == "" {
		return fmt.Errorf("could not extract public ID from URL: %s", fileURL)
	}

	resp, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID:   publicID,
		Invalidate: api.Bool(true),
	})
	if err != nil {
		return fmt.Errorf("failed to delete file from cloudinary: %w", err)
	}
	if resp.Result != "ok" && resp.Result != "not found" {
		return fmt.Errorf("cloudinary destroy api returned result: %s", resp.Result)
	}

	return nil
}

func (s *cloudinaryStorage) folder(sub string) string {
	if s.baseFolder == "" {
		return sub
	}
	if sub == "" {
		return s.baseFolder
	}
	return s.baseFolder + "/" + sub
}

// PublicIDFromURL extracts folder/name from a delivery URL such as
// https://res.cloudinary.com/demo/image/upload/v123456789/daycare/photos/sample.webp
func PublicIDFromURL(fileURL string) string {
	u, err := url.Parse(fileURL)
	if err != nil {
		return ""
	}

	parts := strings.Split(u.Path, "/")
	uploadIndex := -1
	for i, p := range parts {
		if p == "upload" {
			uploadIndex = i
			break
		}
	}
	if uploadIndex == -1 || uploadIndex+1 >= len(parts) {
		return ""
	}

	rest := parts[uploadIndex+1:]
	if len(rest) > 1 && isVersionSegment(rest[0]) {
		rest = rest[1:]
	}

	joined := strings.Join(rest, "/")
	return strings.TrimSuffix(joined, filepath.Ext(joined))
}

func isVersionSegment(s string) bool {
	if len(s) < 2 || s[0] != 'v' {
		return false
	}
	for _, r := range s[1:] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
