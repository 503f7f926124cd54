package handler

import (
	"context"
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/radio-cms-api/internal/dto"
	"github.com/noah-isme/radio-cms-api/internal/models"
	"github.com/noah-isme/radio-cms-api/internal/service"
	appErrors "github.com/noah-isme/radio-cms-api/pkg/errors"
	"github.com/noah-isme/radio-cms-api/pkg/response"
)

const photoField = "photo"

type djService interface {
	List(ctx context.Context) ([]models.DJProfile, error)
	Get(ctx context.Context, id string) (*models.DJProfile, error)
	Create(ctx context.Context, req dto.DJProfileRequest, photo *service.PhotoUpload) (*models.DJProfile, error)
	Update(ctx context.Context, id string, req dto.DJProfileRequest, photo *service.PhotoUpload) (*models.DJProfile, error)
	Delete(ctx context.Context, id string) error
}

// DJHandler manages DJ profiles. Create and Update take multipart/form-data
// with name, bio and an optional photo file.
type DJHandler struct {
	service djService
}

// NewDJHandler creates the handler.
func NewDJHandler(svc djService) *DJHandler {
	return &DJHandler{service: svc}
}

// List godoc
// @Summary DJ roster
// @Tags DJs
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /djs [get]
func (h *DJHandler) List(c *gin.Context) {
	profiles, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, profiles, nil)
}

// Get godoc
// @Summary DJ profile
// @Tags DJs
// @Produce json
// @Param id path string true "DJ ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /djs/{id} [get]
func (h *DJHandler) Get(c *gin.Context) {
	profile, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, profile, nil)
}

// Create godoc
// @Summary Add a DJ
// @Tags DJs
// @Accept multipart/form-data
// @Produce json
// @Param name formData string true "Name"
// @Param bio formData string false "Biography"
// @Param photo formData file false "Photo"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Failure 413 {object} response.Envelope
// @Router /admin/djs [post]
func (h *DJHandler) Create(c *gin.Context) {
	req, photo, cleanup, err := bindDJForm(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer cleanup()

	profile, err := h.service.Create(c.Request.Context(), req, photo)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, profile)
}

// Update godoc
// @Summary Edit a DJ
// @Description A new photo replaces the stored one; omitting it keeps it.
// @Tags DJs
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "DJ ID"
// @Param name formData string true "Name"
// @Param bio formData string false "Biography"
// @Param photo formData file false "Photo"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /admin/djs/{id} [put]
func (h *DJHandler) Update(c *gin.Context) {
	req, photo, cleanup, err := bindDJForm(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer cleanup()

	profile, err := h.service.Update(c.Request.Context(), c.Param("id"), req, photo)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, profile, nil)
}

// Delete godoc
// @Summary Remove a DJ
// @Tags DJs
// @Param id path string true "DJ ID"
// @Success 204
// @Failure 404 {object} response.Envelope
// @Router /admin/djs/{id} [delete]
func (h *DJHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

func bindDJForm(c *gin.Context) (dto.DJProfileRequest, *service.PhotoUpload, func(), error) {
	noop := func() {}
	var req dto.DJProfileRequest
	if err := c.ShouldBind(&req); err != nil {
		return req, nil, noop, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid dj payload")
	}

	header, err := c.FormFile(photoField)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return req, nil, noop, nil
		}
		return req, nil, noop, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid photo upload")
	}
	file, err := header.Open()
	if err != nil {
		return req, nil, noop, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to read photo")
	}
	return req, &service.PhotoUpload{Body: file, Size: header.Size}, closer(file), nil
}

func closer(file multipart.File) func() {
	return func() { _ = file.Close() }
}
