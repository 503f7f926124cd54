package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/radio-cms-api/internal/dto"
	"github.com/noah-isme/radio-cms-api/internal/models"
	"github.com/noah-isme/radio-cms-api/pkg/response"
)

type publishService interface {
	Run(ctx context.Context, req dto.RunUpdateRequest, actorID string, preview bool) (*models.LastUpdateResult, error)
	Last(ctx context.Context) (*models.LastUpdateResult, error)
}

// UpdateHandler triggers site publishes.
type UpdateHandler struct {
	service publishService
}

// NewUpdateHandler creates the handler.
func NewUpdateHandler(svc publishService) *UpdateHandler {
	return &UpdateHandler{service: svc}
}

// Run godoc
// @Summary Publish content sections
// @Description Queues a background publish. With preview=true nothing is queued.
// @Tags Updates
// @Accept json
// @Produce json
// @Param preview query bool false "Dry run"
// @Param payload body dto.RunUpdateRequest false "Sections, all when empty"
// @Success 200 {object} response.Envelope
// @Success 202 {object} response.Envelope
// @Failure 503 {object} response.Envelope
// @Router /admin/updates [post]
func (h *UpdateHandler) Run(c *gin.Context) {
	var req dto.RunUpdateRequest
	if c.Request.ContentLength != 0 {
		if err := bindJSON(c, &req, "invalid update payload"); err != nil {
			response.Error(c, err)
			return
		}
	}
	preview, _ := strconv.ParseBool(c.Query("preview"))

	result, err := h.service.Run(c.Request.Context(), req, actorID(c), preview)
	if err != nil {
		response.Error(c, err)
		return
	}
	status := http.StatusAccepted
	if preview {
		status = http.StatusOK
	}
	response.JSON(c, status, result, nil)
}

// Last godoc
// @Summary Outcome of the last publish
// @Tags Updates
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /admin/updates/last [get]
func (h *UpdateHandler) Last(c *gin.Context) {
	last, err := h.service.Last(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, last, nil)
}
