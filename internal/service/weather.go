package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"agribot/internal/config"
	"agribot/internal/metrics"
	"agribot/internal/model"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

// Alert thresholds
const (
	DroughtHumidity = 30
	HeatTemperature = 38.0
	forecastSteps   = 8
)

// Alert messages
const (
	AlertDrought = "Alerte sécheresse : Humidité très faible, irrigation recommandée"
	AlertHeat    = "🌡️ Alerte chaleur : Températures extrêmes, protégez vos cultures"
	AlertRain    = "🌧️ Alerte pluie : Précipitations attendues, vérifiez le drainage"
)

// ErrWeatherDisabled is returned when no API key is configured
var ErrWeatherDisabled = errors.New("weather service is not enabled (missing API key)")

// WeatherProvider fetches weather data for a city
type WeatherProvider interface {
	Current(ctx context.Context, city string) (*model.WeatherReport, error)
	Forecast(ctx context.Context, city string) ([]model.ForecastEntry, error)
	IsEnabled() bool
}

// WeatherClient handles OpenWeatherMap API interactions
type WeatherClient struct {
	config     *config.WeatherConfig
	httpClient *http.Client
	logger     *zap.Logger
}

// NewWeatherClient creates a new OpenWeatherMap client
func NewWeatherClient(cfg *config.WeatherConfig, logger *zap.Logger) *WeatherClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := time.Duration(cfg.Timeout) * time.Second
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &WeatherClient{
		config:     cfg,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// IsEnabled returns whether the client is configured and ready
func (c *WeatherClient) IsEnabled() bool {
	return c.config.Enabled
}

// Current returns the current conditions of a city
func (c *WeatherClient) Current(ctx context.Context, city string) (*model.WeatherReport, error) {
	body, err := c.get(ctx, "weather", city)
	if err != nil {
		return nil, err
	}

	data := gjson.ParseBytes(body)
	if !data.Get("main.temp").Exists() {
		return nil, fmt.Errorf("weather response for %s has no temperature", city)
	}

	name := data.Get("name").String()
	if name == "" {
		name = city
	}
	return &model.WeatherReport{
		City:        name,
		Temperature: round1(data.Get("main.temp").Float()),
		Humidity:    int(data.Get("main.humidity").Int()),
		Description: data.Get("weather.0.description").String(),
	}, nil
}

// Forecast returns the next forecast steps (3 hours each) of a city
func (c *WeatherClient) Forecast(ctx context.Context, city string) ([]model.ForecastEntry, error) {
	body, err := c.get(ctx, "forecast", city)
	if err != nil {
		return nil, err
	}

	entries := []model.ForecastEntry{}
	gjson.GetBytes(body, "list").ForEach(func(_, item gjson.Result) bool {
		entries = append(entries, model.ForecastEntry{
			Time:        item.Get("dt_txt").String(),
			Temperature: round1(item.Get("main.temp").Float()),
			Description: item.Get("weather.0.description").String(),
			Humidity:    int(item.Get("main.humidity").Int()),
		})
		return len(entries) < forecastSteps
	})
	return entries, nil
}

func (c *WeatherClient) get(ctx context.Context, endpoint, city string) ([]byte, error) {
	if !c.config.Enabled {
		return nil, ErrWeatherDisabled
	}

	params := url.Values{}
	q := city
	if c.config.CountryCode != "" {
		q = fmt.Sprintf("%s,%s", city, c.config.CountryCode)
	}
	params.Set("q", q)
	params.Set("appid", c.config.APIKey)
	params.Set("units", "metric")
	if c.config.Language != "" {
		params.Set("lang", c.config.Language)
	}

	reqURL := fmt.Sprintf("%s/%s?%s", strings.TrimRight(c.config.BaseURL, "/"), endpoint, params.Encode())
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		metrics.IncWeatherRequest(endpoint, false)
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.IncWeatherRequest(endpoint, false)
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		metrics.IncWeatherRequest(endpoint, false)
		return nil, fmt.Errorf("weather request failed with status %d: %s", resp.StatusCode, gjson.GetBytes(body, "message").String())
	}

	metrics.IncWeatherRequest(endpoint, true)
	return body, nil
}

// WeatherAlerts lists the alerts raised by current conditions
func WeatherAlerts(report *model.WeatherReport) []string {
	alerts := []string{}
	if report == nil {
		return alerts
	}
	if report.Humidity < DroughtHumidity {
		alerts = append(alerts, AlertDrought)
	}
	if report.Temperature > HeatTemperature {
		alerts = append(alerts, AlertHeat)
	}
	desc := strings.ToLower(report.Description)
	if strings.Contains(desc, "pluie") || strings.Contains(desc, "orage") {
		alerts = append(alerts, AlertRain)
	}
	return alerts
}

// WeatherService assembles weather reports and never fails: provider errors
// are logged and yield a nil report
type WeatherService struct {
	provider WeatherProvider
	logger   *zap.Logger
}

// NewWeatherService creates a weather service over provider
func NewWeatherService(provider WeatherProvider, logger *zap.Logger) *WeatherService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WeatherService{provider: provider, logger: logger}
}

// IsEnabled returns whether weather data can be fetched
func (s *WeatherService) IsEnabled() bool {
	return s != nil && s.provider != nil && s.provider.IsEnabled()
}

// Report returns current conditions, alerts and forecast of a city, or nil
// when the current conditions cannot be fetched. A failed forecast leaves
// the forecast empty.
func (s *WeatherService) Report(ctx context.Context, city string) *model.WeatherReport {
	if !s.IsEnabled() {
		return nil
	}

	report, err := s.provider.Current(ctx, city)
	if err != nil {
		s.logger.Warn("current weather unavailable", zap.String("city", city), zap.Error(err))
		return nil
	}
	report.Alerts = WeatherAlerts(report)

	forecast, err := s.provider.Forecast(ctx, city)
	if err != nil {
		s.logger.Warn("weather forecast unavailable", zap.String("city", city), zap.Error(err))
		forecast = []model.ForecastEntry{}
	}
	report.Forecast = forecast
	return report
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// Ensure WeatherClient implements WeatherProvider
var _ WeatherProvider = (*WeatherClient)(nil)
