package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/radio-cms-api/internal/dto"
	"github.com/noah-isme/radio-cms-api/internal/middleware"
	"github.com/noah-isme/radio-cms-api/internal/models"
	"github.com/noah-isme/radio-cms-api/pkg/response"
)

type onAirService interface {
	Status(ctx context.Context) (*models.OnAirStatus, error)
	Upcoming(ctx context.Context, limit int) ([]models.UpcomingShow, error)
	GetOverride(ctx context.Context) (*models.OverrideView, error)
	SetOverride(ctx context.Context, req dto.SetOverrideRequest, actorID string) (*models.OverrideView, error)
	ClearOverride(ctx context.Context) error
}

// OnAirHandler answers what is playing now and next.
type OnAirHandler struct {
	service      onAirService
	refreshAfter time.Duration
}

// NewOnAirHandler creates the handler. refreshAfter is advertised to clients
// as the interval at which the status should be polled again.
func NewOnAirHandler(svc onAirService, refreshAfter time.Duration) *OnAirHandler {
	if refreshAfter <= 0 {
		refreshAfter = 10 * time.Second
	}
	return &OnAirHandler{service: svc, refreshAfter: refreshAfter}
}

// Status godoc
// @Summary Program on air now
// @Description Active override first, then the scheduled live program, then the filler program.
// @Tags On Air
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /on-air [get]
func (h *OnAirHandler) Status(c *gin.Context) {
	status, err := h.service.Status(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetMeta(c, "refresh_after_seconds", int(h.refreshAfter/time.Second))
	response.JSON(c, http.StatusOK, status, nil, middleware.ExtractMeta(c))
}

// Upcoming godoc
// @Summary Coming up next
// @Tags On Air
// @Produce json
// @Param limit query int false "Number of shows"
// @Success 200 {object} response.Envelope
// @Router /on-air/upcoming [get]
func (h *OnAirHandler) Upcoming(c *gin.Context) {
	shows, err := h.service.Upcoming(c.Request.Context(), queryInt(c, "limit", 0))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, shows, nil)
}

// Override godoc
// @Summary Current override
// @Description data is omitted when no override was set.
// @Tags On Air
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /on-air/override [get]
func (h *OnAirHandler) Override(c *gin.Context) {
	view, err := h.service.GetOverride(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view, nil)
}

// SetOverride godoc
// @Summary Override the on-air program
// @Tags On Air
// @Accept json
// @Produce json
// @Param payload body dto.SetOverrideRequest true "Override"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /admin/on-air/override [put]
func (h *OnAirHandler) SetOverride(c *gin.Context) {
	var req dto.SetOverrideRequest
	if err := bindJSON(c, &req, "invalid override payload"); err != nil {
		response.Error(c, err)
		return
	}
	view, err := h.service.SetOverride(c.Request.Context(), req, actorID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view, nil)
}

// ClearOverride godoc
// @Summary Remove the override
// @Tags On Air
// @Success 204
// @Router /admin/on-air/override [delete]
func (h *OnAirHandler) ClearOverride(c *gin.Context) {
	if err := h.service.ClearOverride(c.Request.Context()); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
