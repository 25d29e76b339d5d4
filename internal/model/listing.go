package model

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// Source-collection tags attached by the fetcher.
const (
	SourcePrimary = "listings"
	SourceAgent   = "agent_listings"
)

// ListingDocument is a raw listing row as stored in the document tables.
// The Doc payload is heterogeneous: which fields are present, and what type
// they carry (price may be a number or a numeric string, features an array
// or a comma-separated string), varies across sources and submitters.
type ListingDocument struct {
	ID        string    `json:"id" db:"id"`
	Source    string    `json:"source" db:"-"`
	Doc       JSONMap   `json:"doc" db:"doc"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// NormalizedListing is the canonical view-model every raw document resolves
// into. All ambiguity in ListingDocument is gone: each field holds a concrete
// value or a documented fallback. Furnished stays three-valued because
// filtering treats "unspecified" differently from "unfurnished".
type NormalizedListing struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Status      string    `json:"status"`
	Category    string    `json:"category"`
	Type        string    `json:"type"`
	Location    string    `json:"location"`
	Beds        int       `json:"beds"`
	Baths       int       `json:"baths"`
	Sqft        float64   `json:"sqft"`
	Furnished   *bool     `json:"furnished"`
	Parking     string    `json:"parking"`
	PropertyAge string    `json:"property_age"`
	Completion  string    `json:"completion"`
	Developer   string    `json:"developer"`
	AgentName   string    `json:"agent_name"`
	Features    []string  `json:"features"`
	Image       string    `json:"image"`
	VideoURL    string    `json:"video_url"`
	Featured    bool      `json:"featured"`
	Source      string    `json:"source"`
	ListedAt    time.Time `json:"listed_at"`

	// LocationText concatenates every raw location field for text matching;
	// it is not part of the API payload.
	LocationText string `json:"-"`
}

// Project represents a development project showcased on the site
type Project struct {
	ID          string    `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Developer   string    `json:"developer" db:"developer"`
	Location    string    `json:"location" db:"location"`
	Status      string    `json:"status" db:"status"`
	Description string    `json:"description" db:"description"`
	Image       string    `json:"image" db:"image"`
	Gallery     JSONArray `json:"gallery" db:"gallery"`
	Published   bool      `json:"published" db:"published"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// JSONMap represents a JSON object field
type JSONMap map[string]interface{}

// Value implements driver.Valuer interface
func (j JSONMap) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

// Scan implements sql.Scanner interface
func (j *JSONMap) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return json.Unmarshal([]byte(value.(string)), j)
	}
	return json.Unmarshal(bytes, j)
}

// JSONArray represents a JSON array field
type JSONArray []string

// Value implements driver.Valuer interface
func (j JSONArray) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

// Scan implements sql.Scanner interface
func (j *JSONArray) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return json.Unmarshal([]byte(value.(string)), j)
	}
	return json.Unmarshal(bytes, j)
}
