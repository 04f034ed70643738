package handler

import (
	"context"
	"net/http"
	"strings"

	"agribot/internal/config"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// BuildInfo is reported by /health and /version
type BuildInfo struct {
	Version   string `json:"version"`
	BuildTime string `json:"build_time"`
	GitCommit string `json:"git_commit"`
}

// Pinger reports whether the knowledge store is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handlers groups the API handlers mounted by NewRouter
type Handlers struct {
	Chat      *ChatHandler
	Knowledge *KnowledgeHandler
	Weather   *WeatherHandler
}

// NewRouter builds the gin engine with CORS, sessions and all API routes.
// store may be nil.
func NewRouter(cfg config.ServerConfig, info BuildInfo, store Pinger, h Handlers) *gin.Engine {
	router := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = splitList(cfg.AllowedOrigins)
	corsConfig.AllowMethods = splitList(cfg.AllowedMethods)
	corsConfig.AllowHeaders = splitList(cfg.AllowedHeaders)
	if len(corsConfig.AllowOrigins) == 0 || (len(corsConfig.AllowOrigins) == 1 && corsConfig.AllowOrigins[0] == "*") {
		corsConfig.AllowOrigins = nil
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowCredentials = true
	}
	router.Use(cors.New(corsConfig))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		status, code := "healthy", http.StatusOK
		if store != nil {
			if err := store.Ping(c.Request.Context()); err != nil {
				status, code = "degraded", http.StatusServiceUnavailable
			}
		}
		c.JSON(code, gin.H{
			"status":     status,
			"service":    "agribot",
			"version":    info.Version,
			"build_time": info.BuildTime,
			"git_commit": info.GitCommit,
		})
	})

	router.GET("/version", func(c *gin.Context) {
		c.JSON(http.StatusOK, info)
	})

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	apiV1 := router.Group("/api/v1")
	{
		chat := apiV1.Group("/chat", Session(cfg.SessionTTL, cfg.SecureCookie))
		chat.POST("", h.Chat.Chat)
		chat.DELETE("", h.Chat.Reset)
		chat.POST("/reset", h.Chat.Reset)
		chat.GET("/history", h.Chat.History)
		chat.GET("/stats", h.Chat.Stats)

		if h.Knowledge != nil {
			apiV1.GET("/crops/:name", h.Knowledge.GetCrop)
			apiV1.GET("/soils", h.Knowledge.ListSoils)
			apiV1.GET("/search", h.Knowledge.Search)
		}

		apiV1.GET("/weather/:city", h.Weather.GetWeather)
	}

	return router
}

func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
