//go:build !embed
// +build !embed

package main

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// setupStaticFiles serves the chat page from the working tree so it can be
// edited without rebuilding
func setupStaticFiles(router *gin.Engine, logger *zap.Logger) {
	logger.Info("using local filesystem for the chat page (development mode)",
		zap.String("path", "./web/index.html"))

	router.StaticFile("/", "./web/index.html")

	router.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api") {
			c.JSON(http.StatusNotFound, gin.H{"error": "API endpoint not found"})
			return
		}
		c.Redirect(http.StatusFound, "/")
	})
}
