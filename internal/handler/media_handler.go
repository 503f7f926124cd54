package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	appErrors "github.com/noah-isme/radio-cms-api/pkg/errors"
	"github.com/noah-isme/radio-cms-api/pkg/response"
	"github.com/noah-isme/radio-cms-api/pkg/storage"
)

type mediaStore interface {
	KeyFromToken(token string) (string, error)
	Get(ctx context.Context, key string) (*storage.Object, error)
}

// MediaHandler streams files kept by the local storage provider through the
// signed links it hands out. Remote providers link to their own URLs.
type MediaHandler struct {
	store mediaStore
}

// NewMediaHandler creates the handler.
func NewMediaHandler(store mediaStore) *MediaHandler {
	return &MediaHandler{store: store}
}

// Serve godoc
// @Summary Download a media file
// @Tags Media
// @Param token path string true "Signed token"
// @Success 200 {file} file
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /media/{token} [get]
func (h *MediaHandler) Serve(c *gin.Context) {
	key, err := h.store.KeyFromToken(c.Param("token"))
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrForbidden.Code, appErrors.ErrForbidden.Status, "invalid or expired media link"))
		return
	}
	obj, err := h.store.Get(c.Request.Context(), key)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "media not found"))
			return
		}
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to open media"))
		return
	}
	defer obj.Body.Close() //nolint:errcheck

	contentType := obj.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Header("Cache-Control", "private, max-age=300")
	c.DataFromReader(http.StatusOK, obj.ContentLength, contentType, obj.Body, nil)
}
