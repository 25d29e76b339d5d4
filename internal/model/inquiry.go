package model

import "time"

// Inquiry represents a contact/inquiry form submission
type Inquiry struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email" db:"email"`
	Phone     string    `json:"phone" db:"phone"`
	Subject   string    `json:"subject" db:"subject"`
	Message   string    `json:"message" db:"message"`
	ListingID *string   `json:"listing_id,omitempty" db:"listing_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// InquiryRequest is the inbound payload for POST /api/v1/inquiries
type InquiryRequest struct {
	Name      string  `json:"name" binding:"required"`
	Email     string  `json:"email" binding:"required,email"`
	Phone     string  `json:"phone,omitempty"`
	Subject   string  `json:"subject" binding:"required"`
	Message   string  `json:"message" binding:"required"`
	ListingID *string `json:"listing_id,omitempty"`
}

// FloorPlanRequest represents a request for a project floor plan
type FloorPlanRequest struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email" db:"email"`
	Phone     string    `json:"phone" db:"phone"`
	ProjectID string    `json:"project_id" db:"project_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// FloorPlanRequestPayload is the inbound payload for POST /api/v1/floorplans
type FloorPlanRequestPayload struct {
	Name      string `json:"name" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Phone     string `json:"phone,omitempty"`
	ProjectID string `json:"project_id" binding:"required"`
}

// SubmitResponse is the envelope returned by the write endpoints
type SubmitResponse struct {
	Success bool   `json:"success"`
	ID      string `json:"id,omitempty"`
	Message string `json:"message,omitempty"`
}
