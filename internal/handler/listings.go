package handler

import (
	"net/http"
	"strconv"
	"strings"

	"estates/internal/model"
	"estates/internal/service"

	"github.com/gin-gonic/gin"
)

// ListingsHandler handles listing browse HTTP requests
type ListingsHandler struct {
	catalog *service.CatalogService
}

// NewListingsHandler creates a new listings handler
func NewListingsHandler(catalog *service.CatalogService) *ListingsHandler {
	return &ListingsHandler{catalog: catalog}
}

// Browse handles GET /api/v1/listings
func (h *ListingsHandler) Browse(c *gin.Context) {
	criteria := parseCriteria(c)
	sortKey := model.ParseSortKey(c.Query("sort"))
	page := parseIntDefault(c.Query("page"), 1)

	response := h.catalog.Browse(c.Request.Context(), criteria, sortKey, page)
	c.JSON(http.StatusOK, response)
}

// GetListing handles GET /api/v1/listings/:id
func (h *ListingsHandler) GetListing(c *gin.Context) {
	id := c.Param("id")

	listing, err := h.catalog.GetListing(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get listing: " + err.Error()})
		return
	}
	if listing == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Listing not found"})
		return
	}

	c.JSON(http.StatusOK, listing)
}

// Projects handles GET /api/v1/projects
func (h *ListingsHandler) Projects(c *gin.Context) {
	projects, err := h.catalog.Projects(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get projects: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"projects": projects, "total": len(projects)})
}

// Refresh handles POST /api/v1/refresh - re-runs the collection fetch
func (h *ListingsHandler) Refresh(c *gin.Context) {
	count := h.catalog.Load(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"loaded": count})
}

// parseCriteria builds FilterCriteria from query parameters. Parsing is
// permissive: a malformed value is treated as if the criterion were absent,
// so bad input narrows nothing and never produces an error response.
func parseCriteria(c *gin.Context) model.FilterCriteria {
	criteria := model.FilterCriteria{
		Action:      c.Query("action"),
		Category:    c.Query("category"),
		Type:        c.Query("type"),
		Area:        c.Query("area"),
		Developer:   c.Query("developer"),
		Beds:        c.Query("beds"),
		Baths:       c.Query("baths"),
		Furnished:   c.Query("furnished"),
		Parking:     c.Query("parking"),
		PropertyAge: c.Query("property_age"),
		Completion:  c.Query("completion"),
		Search:      c.Query("search"),
		PriceMin:    parseFloatQuery(c.Query("price_min")),
		PriceMax:    parseFloatQuery(c.Query("price_max")),
		SqftMin:     parseFloatQuery(c.Query("sqft_min")),
		SqftMax:     parseFloatQuery(c.Query("sqft_max")),
		HasVideo:    c.Query("has_video") == "true",
	}

	if features := c.Query("features"); features != "" {
		for _, f := range strings.Split(features, ",") {
			if f = strings.TrimSpace(f); f != "" {
				criteria.Features = append(criteria.Features, f)
			}
		}
	}

	return criteria
}

// parseFloatQuery returns nil for empty or non-numeric values
func parseFloatQuery(s string) *float64 {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return nil
	}
	return &v
}

// parseIntDefault returns the fallback for empty or non-numeric values
func parseIntDefault(s string, fallback int) int {
	if s == "" {
		return fallback
	}
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fallback
	}
	return v
}
