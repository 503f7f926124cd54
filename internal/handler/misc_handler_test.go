package handler

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/radio-cms-api/internal/dto"
	"github.com/noah-isme/radio-cms-api/internal/models"
	"github.com/noah-isme/radio-cms-api/internal/service"
	appErrors "github.com/noah-isme/radio-cms-api/pkg/errors"
	"github.com/noah-isme/radio-cms-api/pkg/storage"
)

type songRequestServiceMock struct {
	clientIP string
	filter   models.SongRequestFilter
}

func (m *songRequestServiceMock) Submit(ctx context.Context, req dto.SubmitSongRequest, clientIP string) (*models.SongRequest, error) {
	m.clientIP = clientIP
	return &models.SongRequest{ID: "req-1", Name: req.Name, SongTitle: req.SongTitle}, nil
}

func (m *songRequestServiceMock) List(ctx context.Context, filter models.SongRequestFilter) ([]models.SongRequest, *models.Pagination, error) {
	m.filter = filter
	return []models.SongRequest{}, &models.Pagination{Page: filter.Page, PageSize: filter.PageSize}, nil
}

func (m *songRequestServiceMock) Clear(ctx context.Context, actorID string) (int64, error) {
	return 3, nil
}

func TestSongRequestHandler(t *testing.T) {
	mock := &songRequestServiceMock{}
	h := NewSongRequestHandler(mock)

	c, w := newContext(http.MethodPost, "/song-requests", jsonBody(t, map[string]string{
		"name": "Ivy", "song_title": "Jingle Bell Rock",
	}), nil)
	c.Request.RemoteAddr = "203.0.113.9:5555"
	h.Submit(c)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "203.0.113.9", mock.clientIP)
	assert.NotContains(t, w.Body.String(), "203.0.113.9")

	c, w = newContext(http.MethodGet, "/admin/song-requests?page=2&page_size=5", nil, adminClaims)
	h.List(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2, mock.filter.Page)
	assert.Equal(t, 5, mock.filter.PageSize)
	assert.Equal(t, 2, decode(t, w).Pagination.Page)

	c, w = newContext(http.MethodDelete, "/admin/song-requests", nil, adminClaims)
	h.Clear(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"removed":3}`, string(decode(t, w).Data))
}

func TestAuthHandlerRoleOracle(t *testing.T) {
	h := NewAuthHandler(nil)

	cases := []struct {
		name    string
		claims  *models.JWTClaims
		role    models.UserRole
		isAdmin bool
	}{
		{name: "anonymous", claims: nil, role: models.RoleGuest},
		{name: "listener", claims: &models.JWTClaims{UserID: "u1", Role: models.RoleUser}, role: models.RoleUser},
		{name: "admin", claims: adminClaims, role: models.RoleAdmin, isAdmin: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, w := newContext(http.MethodGet, "/auth/role", nil, tc.claims)
			h.Role(c)
			require.Equal(t, http.StatusOK, w.Code)

			var got dto.RoleResponse
			require.NoError(t, jsonUnmarshal(decode(t, w).Data, &got))
			assert.Equal(t, tc.role, got.Role)
			assert.Equal(t, tc.isAdmin, got.IsAdmin)
		})
	}
}

func TestAuthHandlerMeRequiresClaims(t *testing.T) {
	h := NewAuthHandler(nil)
	c, w := newContext(http.MethodGet, "/auth/me", nil, nil)
	h.Me(c)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

type publishServiceMock struct {
	req     dto.RunUpdateRequest
	preview bool
	err     error
}

func (m *publishServiceMock) Run(ctx context.Context, req dto.RunUpdateRequest, actorID string, preview bool) (*models.LastUpdateResult, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.req = req
	m.preview = preview
	return &models.LastUpdateResult{JobID: "job-1", Sections: req.Sections, Preview: preview}, nil
}

func (m *publishServiceMock) Last(ctx context.Context) (*models.LastUpdateResult, error) {
	return nil, nil
}

func TestUpdateHandlerRun(t *testing.T) {
	mock := &publishServiceMock{}
	h := NewUpdateHandler(mock)

	c, w := newContext(http.MethodPost, "/admin/updates", nil, adminClaims)
	h.Run(c)
	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.Empty(t, mock.req.Sections)

	c, w = newContext(http.MethodPost, "/admin/updates?preview=true", jsonBody(t, map[string][]string{"sections": {"theme"}}), adminClaims)
	h.Run(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, mock.preview)
	assert.Equal(t, []string{"theme"}, mock.req.Sections)

	mock.err = appErrors.Clone(appErrors.ErrUnavailable, "update queue is unavailable")
	c, w = newContext(http.MethodPost, "/admin/updates", nil, adminClaims)
	h.Run(c)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestMediaHandlerServe(t *testing.T) {
	local, err := storage.NewLocalStorage(t.TempDir(), storage.NewSignedURLSigner("secret", time.Hour), "/media")
	require.NoError(t, err)
	content := []byte("jpeg-ish bytes")
	require.NoError(t, local.Put(context.Background(), "djs/dj-1/a.jpg", bytes.NewReader(content), int64(len(content)), "image/jpeg"))
	url, err := local.URL(context.Background(), "djs/dj-1/a.jpg")
	require.NoError(t, err)

	h := NewMediaHandler(local)

	c, w := newContext(http.MethodGet, url, nil, nil)
	c.Params = gin.Params{{Key: "token", Value: strings.TrimPrefix(url, "/media/")}}
	h.Serve(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, content, w.Body.Bytes())

	c, w = newContext(http.MethodGet, "/media/forged", nil, nil)
	c.Params = gin.Params{{Key: "token", Value: "forged"}}
	h.Serve(c)
	assert.Equal(t, http.StatusForbidden, w.Code)

	require.NoError(t, local.Delete(context.Background(), "djs/dj-1/a.jpg"))
	c, w = newContext(http.MethodGet, url, nil, nil)
	c.Params = gin.Params{{Key: "token", Value: strings.TrimPrefix(url, "/media/")}}
	h.Serve(c)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMetricsHandlerHealth(t *testing.T) {
	healthy := NewMetricsHandler(service.NewMetricsService(), map[string]func() error{
		"database": func() error { return nil },
	})
	c, w := newContext(http.MethodGet, "/health", nil, nil)
	healthy.Health(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)

	degraded := NewMetricsHandler(nil, map[string]func() error{
		"database": func() error { return nil },
		"redis":    func() error { return errors.New("connection refused") },
	})
	c, w = newContext(http.MethodGet, "/health", nil, nil)
	degraded.Health(c)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "connection refused")
}
