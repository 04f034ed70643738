package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"agribot/internal/model"

	"github.com/gin-gonic/gin"
)

// KnowledgeReader is the part of the knowledge store exposed over HTTP
type KnowledgeReader interface {
	GetCropProfile(ctx context.Context, name string) (*model.CropProfile, error)
	ListSoils(ctx context.Context) ([]model.SoilRecord, error)
	Search(ctx context.Context, keyword string, limit int) (*model.SearchResults, error)
}

const defaultSearchLimit = 10

// KnowledgeHandler handles knowledge base HTTP requests
type KnowledgeHandler struct {
	store KnowledgeReader
}

// NewKnowledgeHandler creates a new knowledge handler
func NewKnowledgeHandler(store KnowledgeReader) *KnowledgeHandler {
	return &KnowledgeHandler{store: store}
}

// GetCrop handles GET /api/v1/crops/:name
func (h *KnowledgeHandler) GetCrop(c *gin.Context) {
	name := strings.TrimSpace(c.Param("name"))
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid crop name"})
		return
	}

	profile, err := h.store.GetCropProfile(c.Request.Context(), name)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get crop: " + err.Error()})
		return
	}

	if profile == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Crop not found"})
		return
	}

	c.JSON(http.StatusOK, profile)
}

// ListSoils handles GET /api/v1/soils
func (h *KnowledgeHandler) ListSoils(c *gin.Context) {
	soils, err := h.store.ListSoils(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list soils: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"soils": soils, "total": len(soils)})
}

// Search handles GET /api/v1/search?q=&limit=
func (h *KnowledgeHandler) Search(c *gin.Context) {
	keyword := strings.TrimSpace(c.Query("q"))
	if keyword == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Query parameter q is required"})
		return
	}

	limit := defaultSearchLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit: " + raw})
			return
		}
		limit = n
	}

	results, err := h.store.Search(c.Request.Context(), keyword, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, results)
}
