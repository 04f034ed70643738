//go:build embed
// +build embed

package main

import (
	"io/fs"
	"net/http"
	"strings"

	"agribot/web"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// setupStaticFiles serves the chat page embedded in the binary
func setupStaticFiles(router *gin.Engine, logger *zap.Logger) {
	logger.Info("using embedded chat page")

	index, err := fs.ReadFile(web.Dist, "index.html")
	if err != nil {
		logger.Fatal("failed to read embedded index.html", zap.Error(err))
	}

	router.GET("/", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", index)
	})

	router.NoRoute(func(c *gin.Context) {
		// Skip API routes (they are handled by other routes)
		if strings.HasPrefix(c.Request.URL.Path, "/api") {
			c.JSON(http.StatusNotFound, gin.H{"error": "API endpoint not found"})
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", index)
	})
}
