package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/radio-cms-api/internal/dto"
	"github.com/noah-isme/radio-cms-api/internal/models"
	"github.com/noah-isme/radio-cms-api/pkg/response"
)

type scheduleService interface {
	List(ctx context.Context) ([]models.ProgramSlot, error)
	GroupByDay(ctx context.Context) ([]models.ScheduleDay, error)
	ForDay(ctx context.Context, day string) ([]models.ProgramSlot, error)
	Add(ctx context.Context, req dto.CreateProgramRequest) ([]models.ProgramSlot, error)
	Update(ctx context.Context, req dto.UpdateProgramRequest) (*models.ProgramSlot, error)
	Delete(ctx context.Context, name, day string) error
	ImportLegacy(ctx context.Context, req dto.LegacyImportRequest) (*dto.LegacyImportResult, error)
	Export(ctx context.Context, format string) ([]byte, string, error)
}

// ScheduleHandler serves the weekly program table.
type ScheduleHandler struct {
	service scheduleService
}

// NewScheduleHandler creates the handler.
func NewScheduleHandler(svc scheduleService) *ScheduleHandler {
	return &ScheduleHandler{service: svc}
}

// List godoc
// @Summary Weekly schedule
// @Description Every slot sorted by day and start time. group=day buckets them by day specifier.
// @Tags Schedule
// @Produce json
// @Param group query string false "Set to 'day' to group"
// @Success 200 {object} response.Envelope
// @Router /schedule [get]
func (h *ScheduleHandler) List(c *gin.Context) {
	if c.Query("group") == "day" {
		days, err := h.service.GroupByDay(c.Request.Context())
		if err != nil {
			response.Error(c, err)
			return
		}
		response.JSON(c, http.StatusOK, days, nil)
		return
	}

	slots, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, slots, nil)
}

// ForDay godoc
// @Summary Schedule for one day
// @Tags Schedule
// @Produce json
// @Param day path string true "Weekday name or day specifier"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /schedule/{day} [get]
func (h *ScheduleHandler) ForDay(c *gin.Context) {
	slots, err := h.service.ForDay(c.Request.Context(), c.Param("day"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, slots, nil)
}

// Export godoc
// @Summary Download the schedule
// @Tags Schedule
// @Produce text/csv
// @Produce application/pdf
// @Param format query string false "csv (default) or pdf"
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Router /schedule/export [get]
func (h *ScheduleHandler) Export(c *gin.Context) {
	format := c.DefaultQuery("format", "csv")
	body, contentType, err := h.service.Export(c.Request.Context(), format)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"schedule.%s\"", format))
	c.Data(http.StatusOK, contentType, body)
}

// Add godoc
// @Summary Add a program
// @Description Creates one slot per listed day.
// @Tags Programs
// @Accept json
// @Produce json
// @Param payload body dto.CreateProgramRequest true "Program"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /admin/programs [post]
func (h *ScheduleHandler) Add(c *gin.Context) {
	var req dto.CreateProgramRequest
	if err := bindJSON(c, &req, "invalid program payload"); err != nil {
		response.Error(c, err)
		return
	}
	created, err := h.service.Add(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, created)
}

// Update godoc
// @Summary Edit a program slot
// @Tags Programs
// @Accept json
// @Produce json
// @Param payload body dto.UpdateProgramRequest true "Program"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /admin/programs [put]
func (h *ScheduleHandler) Update(c *gin.Context) {
	var req dto.UpdateProgramRequest
	if err := bindJSON(c, &req, "invalid program payload"); err != nil {
		response.Error(c, err)
		return
	}
	slot, err := h.service.Update(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, slot, nil)
}

// Delete godoc
// @Summary Remove a program from one day
// @Tags Programs
// @Param name query string true "Program name"
// @Param day query string true "Day specifier"
// @Success 204
// @Failure 404 {object} response.Envelope
// @Router /admin/programs [delete]
func (h *ScheduleHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Query("name"), c.Query("day")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ImportLegacy godoc
// @Summary Import legacy programs
// @Description Accepts programs whose times embed the day, e.g. "Sundays 3:00 PM CST".
// @Tags Programs
// @Accept json
// @Produce json
// @Param payload body dto.LegacyImportRequest true "Legacy programs"
// @Success 200 {object} response.Envelope
// @Router /admin/programs/legacy [post]
func (h *ScheduleHandler) ImportLegacy(c *gin.Context) {
	var req dto.LegacyImportRequest
	if err := bindJSON(c, &req, "invalid import payload"); err != nil {
		response.Error(c, err)
		return
	}
	result, err := h.service.ImportLegacy(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}
