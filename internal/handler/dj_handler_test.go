package handler

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/radio-cms-api/internal/dto"
	"github.com/noah-isme/radio-cms-api/internal/models"
	"github.com/noah-isme/radio-cms-api/internal/service"
	appErrors "github.com/noah-isme/radio-cms-api/pkg/errors"
)

type djServiceMock struct {
	lastReq   dto.DJProfileRequest
	lastID    string
	photo     []byte
	hadPhoto  bool
	createErr error
}

func (m *djServiceMock) List(ctx context.Context) ([]models.DJProfile, error) {
	return []models.DJProfile{{ID: "dj-1", Name: "Jolly Jo"}}, nil
}

func (m *djServiceMock) Get(ctx context.Context, id string) (*models.DJProfile, error) {
	if id != "dj-1" {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "dj profile not found")
	}
	return &models.DJProfile{ID: id, Name: "Jolly Jo"}, nil
}

func (m *djServiceMock) Create(ctx context.Context, req dto.DJProfileRequest, photo *service.PhotoUpload) (*models.DJProfile, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	m.capture(req, photo)
	return &models.DJProfile{ID: "dj-2", Name: req.Name, Bio: req.Bio}, nil
}

func (m *djServiceMock) Update(ctx context.Context, id string, req dto.DJProfileRequest, photo *service.PhotoUpload) (*models.DJProfile, error) {
	m.lastID = id
	m.capture(req, photo)
	return &models.DJProfile{ID: id, Name: req.Name, Bio: req.Bio}, nil
}

func (m *djServiceMock) Delete(ctx context.Context, id string) error {
	m.lastID = id
	return nil
}

func (m *djServiceMock) capture(req dto.DJProfileRequest, photo *service.PhotoUpload) {
	m.lastReq = req
	m.hadPhoto = photo != nil
	if photo != nil {
		m.photo, _ = io.ReadAll(photo.Body)
	}
}

func multipartContext(t *testing.T, method, target string, fields map[string]string, photo []byte) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	if photo != nil {
		part, err := writer.CreateFormFile("photo", "dj.png")
		require.NoError(t, err)
		_, err = part.Write(photo)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	c, w := newContext(method, target, nil, adminClaims)
	c.Request = httptest.NewRequest(method, target, &body)
	c.Request.Header.Set("Content-Type", writer.FormDataContentType())
	return c, w
}

func TestDJHandlerCreateWithPhoto(t *testing.T) {
	mock := &djServiceMock{}
	h := NewDJHandler(mock)

	photo := []byte("\x89PNG\r\n\x1a\nfake")
	c, w := multipartContext(t, http.MethodPost, "/admin/djs", map[string]string{"name": "Cocoa Kate", "bio": "Hot cocoa and carols"}, photo)
	h.Create(c)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "Cocoa Kate", mock.lastReq.Name)
	assert.Equal(t, "Hot cocoa and carols", mock.lastReq.Bio)
	assert.True(t, mock.hadPhoto)
	assert.Equal(t, photo, mock.photo)
}

func TestDJHandlerCreateWithoutPhoto(t *testing.T) {
	mock := &djServiceMock{}
	h := NewDJHandler(mock)

	c, w := multipartContext(t, http.MethodPost, "/admin/djs", map[string]string{"name": "Cocoa Kate"}, nil)
	h.Create(c)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.False(t, mock.hadPhoto)
}

func TestDJHandlerPropagatesServiceErrors(t *testing.T) {
	mock := &djServiceMock{createErr: appErrors.Clone(appErrors.ErrPayloadTooLarge, "photo exceeds 5242880 bytes")}
	h := NewDJHandler(mock)

	c, w := multipartContext(t, http.MethodPost, "/admin/djs", map[string]string{"name": "Big"}, []byte("x"))
	h.Create(c)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Equal(t, appErrors.ErrPayloadTooLarge.Code, errorCodeOf(t, w))
}

func TestDJHandlerUpdateGetDelete(t *testing.T) {
	mock := &djServiceMock{}
	h := NewDJHandler(mock)

	c, w := multipartContext(t, http.MethodPut, "/admin/djs/dj-1", map[string]string{"name": "Jolly Jo"}, nil)
	c.Params = gin.Params{{Key: "id", Value: "dj-1"}}
	h.Update(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "dj-1", mock.lastID)

	c, w = newContext(http.MethodGet, "/djs/nope", nil, nil)
	c.Params = gin.Params{{Key: "id", Value: "nope"}}
	h.Get(c)
	assert.Equal(t, http.StatusNotFound, w.Code)

	c, _ = newContext(http.MethodDelete, "/admin/djs/dj-1", nil, adminClaims)
	c.Params = gin.Params{{Key: "id", Value: "dj-1"}}
	h.Delete(c)
	assert.Equal(t, http.StatusNoContent, c.Writer.Status())
}
