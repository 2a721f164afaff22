package media

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmssspace/na-predele--crm-sub000/internal/api"
)

type fakeUploader struct {
	asset     *Asset
	err       error
	folder    string
	destroyed string
}

func (f *fakeUploader) Upload(ctx context.Context, file io.Reader, folder string) (*Asset, error) {
	f.folder = folder
	return f.asset, f.err
}

func (f *fakeUploader) Destroy(ctx context.Context, publicID string) error {
	f.destroyed = publicID
	return f.err
}

func setupRouter(u Uploader) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(u)

	r := gin.New()
	r.POST("/media", h.Upload)
	r.DELETE("/media/*publicID", h.Delete)
	return r
}

func multipartBody(t *testing.T, field, filename string, content []byte) (*bytes.Buffer, string) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fw, err := w.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	return &buf, w.FormDataContentType()
}

func TestUpload(t *testing.T) {
	fake := &fakeUploader{asset: &Asset{
		PublicID:  "napredele/abc123",
		SecureURL: "https://res.cloudinary.com/demo/image/upload/abc123.jpg",
		Format:    "jpg",
		Bytes:     1024,
	}}
	r := setupRouter(fake)

	body, contentType := multipartBody(t, "file", "photo.jpg", []byte("fake image bytes"))

	req := httptest.NewRequest(http.MethodPost, "/media", body)
	req.Header.Set("Content-Type", contentType)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "napredele", fake.folder)

	var resp api.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Nil(t, resp.Error)
}

func TestUploadMissingFile(t *testing.T) {
	r := setupRouter(&fakeUploader{})

	req := httptest.NewRequest(http.MethodPost, "/media", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUploadFailure(t *testing.T) {
	r := setupRouter(&fakeUploader{err: ErrUploadFailed})

	body, contentType := multipartBody(t, "file", "photo.jpg", []byte("fake image bytes"))

	req := httptest.NewRequest(http.MethodPost, "/media", body)
	req.Header.Set("Content-Type", contentType)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestDelete(t *testing.T) {
	fake := &fakeUploader{}
	r := setupRouter(fake)

	req := httptest.NewRequest(http.MethodDelete, "/media/napredele/abc123", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "napredele/abc123", fake.destroyed)
}
