package handler

import (
	"net/http"

	"estates/internal/model"
	"estates/internal/service"

	"github.com/gin-gonic/gin"
)

// InquiryHandler handles inquiry and floor-plan form submissions
type InquiryHandler struct {
	catalog *service.CatalogService
}

// NewInquiryHandler creates a new inquiry handler
func NewInquiryHandler(catalog *service.CatalogService) *InquiryHandler {
	return &InquiryHandler{catalog: catalog}
}

// Submit handles POST /api/v1/inquiries
func (h *InquiryHandler) Submit(c *gin.Context) {
	var req model.InquiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	// Validate subject
	validSubjects := map[string]bool{
		"buying":  true,
		"selling": true,
		"renting": true,
		"viewing": true,
		"general": true,
	}

	if !validSubjects[req.Subject] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid subject. Must be one of: buying, selling, renting, viewing, general"})
		return
	}

	inq, err := h.catalog.SubmitInquiry(c.Request.Context(), &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit inquiry: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, model.SubmitResponse{
		Success: true,
		ID:      inq.ID,
		Message: "Inquiry submitted successfully",
	})
}

// RequestFloorPlan handles POST /api/v1/floorplans
func (h *InquiryHandler) RequestFloorPlan(c *gin.Context) {
	var payload model.FloorPlanRequestPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	req, err := h.catalog.RequestFloorPlan(c.Request.Context(), &payload)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit floor plan request: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, model.SubmitResponse{
		Success: true,
		ID:      req.ID,
		Message: "Floor plan request submitted successfully",
	})
}
