package handler

import (
	"net/http"
	"strings"

	"agribot/internal/service"

	"github.com/gin-gonic/gin"
)

// WeatherHandler handles weather HTTP requests
type WeatherHandler struct {
	weather *service.WeatherService
}

// NewWeatherHandler creates a new weather handler
func NewWeatherHandler(weather *service.WeatherService) *WeatherHandler {
	return &WeatherHandler{weather: weather}
}

// GetWeather handles GET /api/v1/weather/:city
func (h *WeatherHandler) GetWeather(c *gin.Context) {
	if !h.weather.IsEnabled() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": service.ErrWeatherDisabled.Error()})
		return
	}

	city := strings.TrimSpace(c.Param("city"))
	if city == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid city"})
		return
	}

	report := h.weather.Report(c.Request.Context(), city)
	if report == nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Weather data unavailable for " + city})
		return
	}

	c.JSON(http.StatusOK, report)
}
