package service_test

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"bouncearound.com/daycare/internal/modules/upload/service"
	"bouncearound.com/daycare/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryStorage struct {
	files   map[string][]byte
	deleted []string
}

func (m *memoryStorage) Upload(_ context.Context, r io.Reader, folder, fileName string) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	url := "https://files.test/" + folder + "/" + fileName
	m.files[url] = data
	return url, nil
}

func (m *memoryStorage) Delete(_ context.Context, fileURL string) error {
	m.deleted = append(m.deleted, fileURL)
	return nil
}

func fileHeader(t *testing.T, name string, content []byte) *multipart.FileHeader {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", name)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/uploads", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))
	return req.MultipartForm.File["file"][0]
}

func TestUpload(t *testing.T) {
	store := &memoryStorage{files: map[string][]byte{}}
	svc := service.NewUploadService(store, service.Policy{
		MaxBytes:          1 << 20,
		AllowedExtensions: []string{".jpg", ".png", ".pdf"},
	})
	ctx := context.Background()

	res, err := svc.Upload(ctx, service.FolderSignatures, fileHeader(t, "Sig.PNG", []byte("png-bytes")))
	require.NoError(t, err)
	assert.Equal(t, "https://files.test/signatures/Sig.PNG", res.URL)
	assert.Equal(t, int64(9), res.Size)
	assert.Equal(t, []byte("png-bytes"), store.files[res.URL])

	t.Run("rejects unknown folder", func(t *testing.T) {
		_, err := svc.Upload(ctx, "tmp", fileHeader(t, "a.jpg", []byte("x")))
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, apperror.MapErrorToStatus(err))
	})

	t.Run("rejects extension", func(t *testing.T) {
		_, err := svc.Upload(ctx, service.FolderDocuments, fileHeader(t, "run.exe", []byte("x")))
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, apperror.MapErrorToStatus(err))
		assert.Contains(t, err.Error(), ".exe")
	})

	t.Run("rejects oversize", func(t *testing.T) {
		_, err := svc.Upload(ctx, service.FolderPhotos, fileHeader(t, "big.jpg", make([]byte, 2<<20)))
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, apperror.MapErrorToStatus(err))
	})

	t.Run("remove forwards to storage", func(t *testing.T) {
		svc.Remove(ctx, res.URL)
		assert.Equal(t, []string{res.URL}, store.deleted)
	})
}

func TestUploadWithoutStorage(t *testing.T) {
	svc := service.NewUploadService(nil, service.Policy{})
	_, err := svc.Upload(context.Background(), service.FolderPhotos, fileHeader(t, "a.jpg", []byte("x")))
	require.Error(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, apperror.MapErrorToStatus(err))
}
