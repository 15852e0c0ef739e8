package service_test

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"bouncearound.com/daycare/internal/entity"
	childRepo "bouncearound.com/daycare/internal/modules/child/repository"
	"bouncearound.com/daycare/internal/modules/photo/dto"
	"bouncearound.com/daycare/internal/modules/photo/repository"
	"bouncearound.com/daycare/internal/modules/photo/service"
	uploadService "bouncearound.com/daycare/internal/modules/upload/service"
	"bouncearound.com/daycare/internal/testutil"
	"bouncearound.com/daycare/pkg/apperror"
	"bouncearound.com/daycare/pkg/datetime"
	commonDto "bouncearound.com/daycare/pkg/dto"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStorage struct {
	uploaded []string
	deleted  []string
}

func (f *fakeStorage) Upload(_ context.Context, _ io.Reader, folder, fileName string) (string, error) {
	url := "https://files.test/" + folder + "/" + fileName
	f.uploaded = append(f.uploaded, url)
	return url, nil
}

func (f *fakeStorage) Delete(_ context.Context, fileURL string) error {
	f.deleted = append(f.deleted, fileURL)
	return nil
}

func header(t *testing.T, name string) *multipart.FileHeader {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", name)
	require.NoError(t, err)
	_, err = part.Write([]byte("jpeg"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/photos/upload", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))
	return req.MultipartForm.File["file"][0]
}

func TestPhotos(t *testing.T) {
	db := testutil.NewDB(t)
	store := &fakeStorage{}
	uploads := uploadService.NewUploadService(store, uploadService.Policy{AllowedExtensions: []string{".jpg"}})
	svc := service.NewPhotoService(repository.NewPhotoRepository(db), childRepo.NewChildRepository(db), uploads, nil)
	ctx := context.Background()

	uploader := testutil.Actor(testutil.CreateUser(t, db, entity.RoleStaff))
	other := testutil.Actor(testutil.CreateUser(t, db, entity.RoleStaff))
	emma := testutil.CreateChild(t, db, "Emma", "Johnson")
	liam := testutil.CreateChild(t, db, "Liam", "Smith")
	day := datetime.NewDate(2024, 3, 4)

	t.Run("unknown child rejects the photo", func(t *testing.T) {
		_, err := svc.Create(ctx, uploader, dto.CreatePhotoInput{
			PhotoURL:  "https://example.com/p.jpg",
			PhotoDate: &day,
			ChildIDs:  []uuid.UUID{emma.ID, uuid.New()},
		})
		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, apperror.MapErrorToStatus(err))
	})

	photo, err := svc.Create(ctx, uploader, dto.CreatePhotoInput{
		PhotoURL:  "https://example.com/p.jpg",
		PhotoDate: &day,
		ChildIDs:  []uuid.UUID{emma.ID, emma.ID},
	})
	require.NoError(t, err)
	require.Len(t, photo.Children, 1)

	t.Run("tagging", func(t *testing.T) {
		tagged, err := svc.TagChild(ctx, photo.ID, liam.ID)
		require.NoError(t, err)
		assert.Len(t, tagged.Children, 2)

		_, err = svc.TagChild(ctx, photo.ID, liam.ID)
		require.Error(t, err)
		assert.Equal(t, http.StatusConflict, apperror.MapErrorToStatus(err))

		require.NoError(t, svc.UntagChild(ctx, photo.ID, liam.ID))
		err = svc.UntagChild(ctx, photo.ID, liam.ID)
		assert.Equal(t, http.StatusNotFound, apperror.MapErrorToStatus(err))
	})

	t.Run("upload stores then records", func(t *testing.T) {
		uploaded, err := svc.Upload(ctx, uploader, header(t, "nap.jpg"), dto.UploadPhotoForm{
			PhotoDate: "2024-03-04",
			Caption:   "Nap time",
			ChildIDs:  liam.ID.String() + ", " + emma.ID.String(),
		})
		require.NoError(t, err)
		assert.Equal(t, "https://files.test/photos/nap.jpg", uploaded.PhotoURL)
		assert.Len(t, uploaded.Children, 2)
		assert.Equal(t, "Nap time", *uploaded.Caption)

		_, err = svc.Upload(ctx, uploader, header(t, "nap.jpg"), dto.UploadPhotoForm{ChildIDs: uuid.NewString()})
		require.Error(t, err)
		assert.Len(t, store.uploaded, 1)
	})

	t.Run("child listing", func(t *testing.T) {
		page, err := svc.ListByChild(ctx, liam.ID, commonDto.PageQuery{})
		require.NoError(t, err)
		assert.Equal(t, int64(1), page.Meta.TotalItems)

		page, err = svc.List(ctx, dto.PhotoFilter{ChildID: emma.ID.String(), PhotoDate: "2024-03-04"})
		require.NoError(t, err)
		assert.Equal(t, int64(2), page.Meta.TotalItems)
	})

	t.Run("only the uploader deletes", func(t *testing.T) {
		err := svc.Delete(ctx, other, photo.ID)
		require.Error(t, err)
		assert.Equal(t, http.StatusForbidden, apperror.MapErrorToStatus(err))

		require.NoError(t, svc.Delete(ctx, uploader, photo.ID))
		assert.Contains(t, store.deleted, photo.PhotoURL)

		_, err = svc.Get(ctx, photo.ID)
		assert.Equal(t, http.StatusNotFound, apperror.MapErrorToStatus(err))
	})
}
