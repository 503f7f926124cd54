package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/radio-cms-api/internal/dto"
	"github.com/noah-isme/radio-cms-api/internal/models"
	"github.com/noah-isme/radio-cms-api/pkg/response"
)

type nowPlayingService interface {
	Get(ctx context.Context) (*models.NowPlaying, error)
	Update(ctx context.Context, req dto.UpdateNowPlayingRequest, actorID string) (*models.NowPlaying, error)
	Clear(ctx context.Context) error
}

type themeService interface {
	Get(ctx context.Context) (*models.ThemeSettings, error)
	Update(ctx context.Context, theme models.ThemeSettings, actorID string) (*models.ThemeSettings, error)
}

type stationService interface {
	Get(ctx context.Context) (*models.StationInformation, error)
	Update(ctx context.Context, info models.StationInformation, actorID string) (*models.StationInformation, error)
}

type weatherService interface {
	Get(ctx context.Context) (*models.WeatherData, error)
	Replace(ctx context.Context, req dto.UpdateWeatherRequest, actorID string) (*models.WeatherData, error)
}

type countdownService interface {
	Current() models.Countdown
}

// ContentHandler serves the small site documents: now playing, theme,
// station information, weather and the holiday countdown.
type ContentHandler struct {
	nowPlaying nowPlayingService
	theme      themeService
	station    stationService
	weather    weatherService
	countdown  countdownService
}

// NewContentHandler creates the handler.
func NewContentHandler(nowPlaying nowPlayingService, theme themeService, station stationService, weather weatherService, countdown countdownService) *ContentHandler {
	return &ContentHandler{nowPlaying: nowPlaying, theme: theme, station: station, weather: weather, countdown: countdown}
}

// NowPlaying godoc
// @Summary Track now playing
// @Tags Content
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /now-playing [get]
func (h *ContentHandler) NowPlaying(c *gin.Context) {
	current, err := h.nowPlaying.Get(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, current, nil)
}

// UpdateNowPlaying godoc
// @Summary Announce a track
// @Tags Content
// @Accept json
// @Produce json
// @Param payload body dto.UpdateNowPlayingRequest true "Track"
// @Success 200 {object} response.Envelope
// @Router /admin/now-playing [put]
func (h *ContentHandler) UpdateNowPlaying(c *gin.Context) {
	var req dto.UpdateNowPlayingRequest
	if err := bindJSON(c, &req, "invalid now playing payload"); err != nil {
		response.Error(c, err)
		return
	}
	current, err := h.nowPlaying.Update(c.Request.Context(), req, actorID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, current, nil)
}

// ClearNowPlaying godoc
// @Summary Clear the announced track
// @Tags Content
// @Success 204
// @Router /admin/now-playing [delete]
func (h *ContentHandler) ClearNowPlaying(c *gin.Context) {
	if err := h.nowPlaying.Clear(c.Request.Context()); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Theme godoc
// @Summary Site theme
// @Tags Content
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /theme [get]
func (h *ContentHandler) Theme(c *gin.Context) {
	theme, err := h.theme.Get(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, theme, nil)
}

// UpdateTheme godoc
// @Summary Save the site theme
// @Tags Content
// @Accept json
// @Produce json
// @Param payload body models.ThemeSettings true "Theme"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /admin/theme [put]
func (h *ContentHandler) UpdateTheme(c *gin.Context) {
	var theme models.ThemeSettings
	if err := bindJSON(c, &theme, "invalid theme payload"); err != nil {
		response.Error(c, err)
		return
	}
	saved, err := h.theme.Update(c.Request.Context(), theme, actorID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, saved, nil)
}

// Station godoc
// @Summary Station information
// @Tags Content
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /station [get]
func (h *ContentHandler) Station(c *gin.Context) {
	info, err := h.station.Get(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, info, nil)
}

// UpdateStation godoc
// @Summary Save station information
// @Tags Content
// @Accept json
// @Produce json
// @Param payload body models.StationInformation true "Station information"
// @Success 200 {object} response.Envelope
// @Router /admin/station [put]
func (h *ContentHandler) UpdateStation(c *gin.Context) {
	var info models.StationInformation
	if err := bindJSON(c, &info, "invalid station information"); err != nil {
		response.Error(c, err)
		return
	}
	saved, err := h.station.Update(c.Request.Context(), info, actorID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, saved, nil)
}

// Weather godoc
// @Summary Forecast
// @Tags Content
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /weather [get]
func (h *ContentHandler) Weather(c *gin.Context) {
	data, err := h.weather.Get(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, data, nil)
}

// ReplaceWeather godoc
// @Summary Replace the forecast
// @Tags Content
// @Accept json
// @Produce json
// @Param payload body dto.UpdateWeatherRequest true "Forecast"
// @Success 200 {object} response.Envelope
// @Router /admin/weather [put]
func (h *ContentHandler) ReplaceWeather(c *gin.Context) {
	var req dto.UpdateWeatherRequest
	if err := bindJSON(c, &req, "invalid weather payload"); err != nil {
		response.Error(c, err)
		return
	}
	data, err := h.weather.Replace(c.Request.Context(), req, actorID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, data, nil)
}

// Countdown godoc
// @Summary Time left until Christmas
// @Tags Content
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /countdown [get]
func (h *ContentHandler) Countdown(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.countdown.Current(), nil)
}
