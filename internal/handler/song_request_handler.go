package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/radio-cms-api/internal/dto"
	"github.com/noah-isme/radio-cms-api/internal/models"
	"github.com/noah-isme/radio-cms-api/pkg/response"
)

type songRequestService interface {
	Submit(ctx context.Context, req dto.SubmitSongRequest, clientIP string) (*models.SongRequest, error)
	List(ctx context.Context, filter models.SongRequestFilter) ([]models.SongRequest, *models.Pagination, error)
	Clear(ctx context.Context, actorID string) (int64, error)
}

// SongRequestHandler takes listener requests and lets admins review them.
type SongRequestHandler struct {
	service songRequestService
}

// NewSongRequestHandler creates the handler.
func NewSongRequestHandler(svc songRequestService) *SongRequestHandler {
	return &SongRequestHandler{service: svc}
}

// Submit godoc
// @Summary Request a song
// @Tags Song Requests
// @Accept json
// @Produce json
// @Param payload body dto.SubmitSongRequest true "Request"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 429 {object} response.Envelope
// @Router /song-requests [post]
func (h *SongRequestHandler) Submit(c *gin.Context) {
	var req dto.SubmitSongRequest
	if err := bindJSON(c, &req, "invalid song request"); err != nil {
		response.Error(c, err)
		return
	}
	saved, err := h.service.Submit(c.Request.Context(), req, c.ClientIP())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, saved)
}

// List godoc
// @Summary List song requests
// @Tags Song Requests
// @Produce json
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /admin/song-requests [get]
func (h *SongRequestHandler) List(c *gin.Context) {
	filter := models.SongRequestFilter{
		Page:     queryInt(c, "page", 1),
		PageSize: queryInt(c, "page_size", 20),
	}
	requests, pagination, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, requests, pagination)
}

// Clear godoc
// @Summary Delete every song request
// @Tags Song Requests
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /admin/song-requests [delete]
func (h *SongRequestHandler) Clear(c *gin.Context) {
	removed, err := h.service.Clear(c.Request.Context(), actorID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"removed": removed}, nil)
}
